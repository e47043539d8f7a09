package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/testutil"
)

// TestAddStep_DefaultPlacement tests that an unanchored step lands
// immediately before the result step and becomes active.
func TestAddStep_DefaultPlacement(t *testing.T) {
	ed, _ := testutil.NewEditor("id")

	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	q2 := ed.AddStep(quiz.StepQuestion, "Q2", "")
	require.NotEmpty(t, q1)
	require.NotEmpty(t, q2)

	doc, _ := ed.Snapshot()
	require.Len(t, doc.Steps, 4)
	assert.Equal(t, q1, doc.Steps[1].ID)
	assert.Equal(t, q2, doc.Steps[2].ID)
	assert.Equal(t, quiz.StepResult, doc.Steps[3].Type)
	assert.Equal(t, q2, ed.ActiveStepID())
}

// TestAddStep_Anchored tests insertion after a named step.
func TestAddStep_Anchored(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	q2 := ed.AddStep(quiz.StepQuestion, "Q2", "")

	between := ed.AddStep(quiz.StepPromo, "P", q1)
	require.NotEmpty(t, between)

	doc, _ := ed.Snapshot()
	assert.Equal(t, []string{"id-3", q1, between, q2, "id-4"}, stepIDs(doc))
}

// TestAddStep_Rejections tests the silent no-op cases: anchor types,
// unknown step types, anchoring after the result step.
func TestAddStep_Rejections(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	rev := ed.Revision()

	assert.Empty(t, ed.AddStep(quiz.StepIntro, "again", ""))
	assert.Empty(t, ed.AddStep(quiz.StepResult, "again", ""))
	assert.Empty(t, ed.AddStep(quiz.StepType("mystery"), "x", ""))
	assert.Empty(t, ed.AddStep(quiz.StepQuestion, "Q", "id-4"), "anchoring after result")
	assert.Empty(t, ed.AddStep(quiz.StepQuestion, "Q", "missing"))

	doc, newRev := ed.Snapshot()
	assert.Len(t, doc.Steps, 2)
	assert.Equal(t, rev, newRev)
}

// TestDeleteStep tests removal, the fixed-step guard, and active-step
// fallback to the preceding step.
func TestDeleteStep(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	q2 := ed.AddStep(quiz.StepQuestion, "Q2", "")
	assert.Equal(t, q2, ed.ActiveStepID())

	ed.DeleteStep(q2)
	doc, _ := ed.Snapshot()
	assert.Equal(t, []string{"id-3", q1, "id-4"}, stepIDs(doc))
	assert.Equal(t, q1, ed.ActiveStepID(), "preceding step becomes active")

	ed.DeleteStep("id-3")
	ed.DeleteStep("id-4")
	doc, _ = ed.Snapshot()
	assert.Len(t, doc.Steps, 3, "anchors can never be deleted")
}

// TestDeleteStep_ClearsBlockSelection tests that deleting the step that
// owns the selected block clears the selection.
func TestDeleteStep_ClearsBlockSelection(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	blockID := ed.AddBlock(q1, quiz.BlockText, -1)
	require.Equal(t, blockID, ed.SelectedBlockID())

	ed.DeleteStep(q1)
	assert.Empty(t, ed.SelectedBlockID())
}

// TestDuplicateStep tests the copy semantics: placed after the original,
// fresh ids throughout, " (copy)" label, duplicate becomes active.
func TestDuplicateStep(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	blockID := ed.AddBlock(q1, quiz.BlockOptions, -1)

	dupID := ed.DuplicateStep(q1)
	require.NotEmpty(t, dupID)
	assert.NotEqual(t, q1, dupID)
	assert.Equal(t, dupID, ed.ActiveStepID())

	doc, _ := ed.Snapshot()
	original, _ := doc.FindStep(q1)
	dup, idx := doc.FindStep(dupID)
	require.NotNil(t, dup)
	assert.Equal(t, 2, idx, "duplicate sits right after the original")
	assert.Equal(t, "Q1 (copy)", dup.Label)
	require.Len(t, dup.Blocks, 1)
	assert.NotEqual(t, blockID, dup.Blocks[0].ID)
	assert.Equal(t, original.Blocks[0].Type, dup.Blocks[0].Type)

	assert.Empty(t, ed.DuplicateStep("id-3"), "fixed steps cannot be duplicated")
}

// TestReorderSteps tests splice reordering and the guard cases.
func TestReorderSteps(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	q2 := ed.AddStep(quiz.StepQuestion, "Q2", "")
	q3 := ed.AddStep(quiz.StepPromo, "P", "")

	ed.ReorderSteps(1, 3)
	doc, _ := ed.Snapshot()
	assert.Equal(t, []string{"id-3", q2, q3, q1, "id-4"}, stepIDs(doc))

	rev := ed.Revision()
	ed.ReorderSteps(2, 2) // no-op move
	ed.ReorderSteps(0, 2) // intro is fixed
	ed.ReorderSteps(1, 4) // destination at result
	ed.ReorderSteps(1, 0) // destination at intro
	doc, newRev := ed.Snapshot()
	assert.Equal(t, []string{"id-3", q2, q3, q1, "id-4"}, stepIDs(doc))
	assert.Equal(t, rev, newRev)
}

// TestReorderSteps_AnchorsHold is the structural property behind every
// reorder: the intro stays first and the result stays last no matter what
// index pairs arrive.
func TestReorderSteps_AnchorsHold(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	for i := 0; i < 4; i++ {
		ed.AddStep(quiz.StepQuestion, "Q", "")
	}

	for from := -1; from <= 6; from++ {
		for to := -1; to <= 6; to++ {
			ed.ReorderSteps(from, to)
			doc, _ := ed.Snapshot()
			require.Equal(t, quiz.StepIntro, doc.Steps[0].Type)
			require.Equal(t, quiz.StepResult, doc.Steps[len(doc.Steps)-1].Type)
			require.Len(t, doc.Steps, 6)
		}
	}
}

// TestUpdateStepLabel tests renaming and the unchanged-value no-op.
func TestUpdateStepLabel(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")

	ed.UpdateStepLabel(q1, "Favorite color")
	doc, _ := ed.Snapshot()
	step, _ := doc.FindStep(q1)
	assert.Equal(t, "Favorite color", step.Label)

	rev := ed.Revision()
	ed.UpdateStepLabel(q1, "Favorite color")
	ed.UpdateStepLabel("missing", "x")
	assert.Equal(t, rev, ed.Revision())
}

// TestUpdateStepSettings tests settings replacement.
func TestUpdateStepSettings(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")

	ed.UpdateStepSubtitle(q1, "Pick one")
	ed.UpdateStepSettings(q1, quiz.StepSettings{HideProgress: true, ButtonLabel: "Next"})

	doc, _ := ed.Snapshot()
	step, _ := doc.FindStep(q1)
	assert.Equal(t, "Pick one", step.Subtitle)
	require.NotNil(t, step.Settings)
	assert.True(t, step.Settings.HideProgress)
	assert.Equal(t, "Next", step.Settings.ButtonLabel)
}

func stepIDs(doc *quiz.Document) []string {
	ids := make([]string, len(doc.Steps))
	for i, s := range doc.Steps {
		ids[i] = s.ID
	}
	return ids
}
