package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/testutil"
)

// TestNew tests the initial session state: default document, intro
// active, nothing selected.
func TestNew(t *testing.T) {
	ed, _ := testutil.NewEditor("id")

	doc, rev := ed.Snapshot()
	require.Len(t, doc.Steps, 2)
	assert.Equal(t, int64(0), rev)
	assert.Equal(t, "id-3", ed.ActiveStepID())
	assert.Empty(t, ed.SelectedOutcomeID())
	assert.Empty(t, ed.SelectedBlockID())
}

// TestSnapshot_Isolation tests that snapshots and the live document never
// share memory in either direction.
func TestSnapshot_Isolation(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	before, _ := ed.Snapshot()

	ed.AddStep(quiz.StepQuestion, "Q1", "")
	assert.Len(t, before.Steps, 2, "snapshot must not see later edits")

	after, _ := ed.Snapshot()
	after.Steps[0].Label = "scribbled"
	current, _ := ed.Snapshot()
	assert.Equal(t, "Intro", current.Steps[0].Label)
}

// TestChanges_CoalescingSignal tests that mutations raise the change
// signal and that bursts coalesce into a single pending receive.
func TestChanges_CoalescingSignal(t *testing.T) {
	ed, _ := testutil.NewEditor("id")

	ed.AddStep(quiz.StepQuestion, "Q1", "")
	ed.AddStep(quiz.StepQuestion, "Q2", "")
	ed.AddStep(quiz.StepQuestion, "Q3", "")

	select {
	case <-ed.Changes():
	default:
		t.Fatal("expected a pending change signal")
	}
	select {
	case <-ed.Changes():
		t.Fatal("signals must coalesce, not queue")
	default:
	}
}

// TestChanges_NoSignalOnRejection tests that a rejected operation is
// fully silent: no revision bump, no signal.
func TestChanges_NoSignalOnRejection(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	rev := ed.Revision()

	ed.DeleteStep("id-3") // intro is fixed
	ed.ReorderSteps(0, 1) // fixed anchor
	ed.AddStep(quiz.StepIntro, "second intro", "")

	assert.Equal(t, rev, ed.Revision())
	select {
	case <-ed.Changes():
		t.Fatal("rejected operations must not signal")
	default:
	}
}

// TestSetActiveStep tests selection rules: activating a regular step
// clears outcome and block selection; activating the result step keeps
// the outcome, auto-selecting the first when none is selected.
func TestSetActiveStep(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	qID := ed.AddStep(quiz.StepQuestion, "Q1", "")
	outcomeID := ed.CreateOutcome("A") // activates result, selects outcome

	resultID := "id-4"
	assert.Equal(t, resultID, ed.ActiveStepID())
	assert.Equal(t, outcomeID, ed.SelectedOutcomeID())

	ed.SetActiveStep(qID)
	assert.Equal(t, qID, ed.ActiveStepID())
	assert.Empty(t, ed.SelectedOutcomeID(), "leaving the result step clears the outcome")
	assert.Empty(t, ed.SelectedBlockID())

	ed.SetActiveStep(resultID)
	assert.Equal(t, outcomeID, ed.SelectedOutcomeID(), "first outcome auto-selected")

	ed.SetActiveStep("missing")
	assert.Equal(t, resultID, ed.ActiveStepID(), "unknown id is a no-op")
}

// TestSelectBlock_Scope tests that only blocks of the active step or the
// selected outcome are selectable.
func TestSelectBlock_Scope(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	qID := ed.AddStep(quiz.StepQuestion, "Q1", "")
	blockID := ed.AddBlock(qID, quiz.BlockText, -1)

	ed.SetActiveStep("id-3")
	ed.SelectBlock(blockID)
	assert.Empty(t, ed.SelectedBlockID(), "block belongs to an inactive step")

	ed.SetActiveStep(qID)
	ed.SelectBlock(blockID)
	assert.Equal(t, blockID, ed.SelectedBlockID())

	ed.SelectBlock("missing")
	assert.Equal(t, blockID, ed.SelectedBlockID(), "unknown id is a no-op")
}

// TestSelectOutcome tests outcome selection and its block-clearing side
// effect.
func TestSelectOutcome(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	first := ed.CreateOutcome("A")
	second := ed.CreateOutcome("B")

	blockID := ed.AddOutcomeBlock(second, quiz.BlockText, -1)
	assert.Equal(t, blockID, ed.SelectedBlockID())

	ed.SelectOutcome(first)
	assert.Equal(t, first, ed.SelectedOutcomeID())
	assert.Empty(t, ed.SelectedBlockID())

	ed.SelectOutcome("missing")
	assert.Equal(t, first, ed.SelectedOutcomeID())
}

// TestRequestAddStep tests the pending add-step flag lifecycle.
func TestRequestAddStep(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	assert.False(t, ed.AddStepRequested())

	ed.RequestAddStep()
	assert.True(t, ed.AddStepRequested())

	ed.AddStep(quiz.StepQuestion, "Q1", "")
	assert.False(t, ed.AddStepRequested(), "AddStep fulfills the request")
}

// TestInitialize tests loading persisted content: not an edit, first step
// active, selection cleared.
func TestInitialize(t *testing.T) {
	ed, gen := testutil.NewEditor("id")
	ed.CreateOutcome("stale")
	<-ed.Changes() // drain the edit signal before loading
	rev := ed.Revision()

	loadedGen := quiz.NewSeqGenerator("loaded")
	loaded := quiz.NewDocument(loadedGen)
	loaded.Steps = []*quiz.Step{
		loaded.Steps[0],
		testutil.QuestionStep(gen, "Q1", "Yes", "No"),
		loaded.Steps[1],
	}

	ed.Initialize(loaded.Steps, loaded.Outcomes)

	doc, newRev := ed.Snapshot()
	require.Len(t, doc.Steps, 3)
	assert.Equal(t, rev, newRev, "loading is not an edit")
	assert.Equal(t, "loaded-3", ed.ActiveStepID())
	assert.Empty(t, ed.SelectedOutcomeID())
	select {
	case <-ed.Changes():
		t.Fatal("Initialize must not signal")
	default:
	}
}

// TestReplace_RepairsSelection tests that Replace keeps selection that
// still resolves and repairs what does not.
func TestReplace_RepairsSelection(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	qID := ed.AddStep(quiz.StepQuestion, "Q1", "")
	rev := ed.Revision()

	doc, _ := ed.Snapshot()
	ed.Replace(doc)
	assert.Equal(t, qID, ed.ActiveStepID(), "surviving selection is kept")
	assert.Equal(t, rev, ed.Revision())

	// A replacement without the active step falls back to the first step.
	stripped := doc.Clone()
	stripped.Steps = []*quiz.Step{stripped.Steps[0], stripped.Steps[2]}
	ed.Replace(stripped)
	assert.Equal(t, stripped.Steps[0].ID, ed.ActiveStepID())
}

// TestReplaceIfRevision tests that the guarded swap lands only when the
// session has not moved past the snapshot it was computed from.
func TestReplaceIfRevision(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	doc, rev := ed.Snapshot()
	doc.Steps[0].Label = "Transformed"

	// An edit after the snapshot wins over the stale swap.
	qID := ed.AddStep(quiz.StepQuestion, "Q1", "")
	assert.False(t, ed.ReplaceIfRevision(doc, rev))
	cur, _ := ed.Snapshot()
	assert.Equal(t, "Intro", cur.Steps[0].Label)
	_, idx := cur.FindStep(qID)
	assert.GreaterOrEqual(t, idx, 0)

	doc, rev = ed.Snapshot()
	doc.Steps[0].Label = "Transformed"
	assert.True(t, ed.ReplaceIfRevision(doc, rev))
	cur, _ = ed.Snapshot()
	assert.Equal(t, "Transformed", cur.Steps[0].Label)
	assert.Equal(t, rev, ed.Revision(), "the swap is not an edit")
}
