package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/testutil"
)

// TestAddBlock tests insertion with index clamping and auto-selection.
func TestAddBlock(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")

	first := ed.AddBlock(q1, quiz.BlockText, -1)
	second := ed.AddBlock(q1, quiz.BlockOptions, 99)
	atFront := ed.AddBlock(q1, quiz.BlockHeading, 0)
	require.NotEmpty(t, first)
	require.NotEmpty(t, second)
	require.NotEmpty(t, atFront)

	doc, _ := ed.Snapshot()
	step, _ := doc.FindStep(q1)
	assert.Equal(t, []string{atFront, first, second}, blockIDs(step.Blocks))
	assert.Equal(t, atFront, ed.SelectedBlockID())

	assert.Empty(t, ed.AddBlock("missing", quiz.BlockText, 0))
	assert.Empty(t, ed.AddBlock(q1, quiz.BlockType("sparkles"), 0))
}

// TestUpdateBlock tests config replacement and the type-identity rule: a
// block never changes type, so a mismatched config is a silent no-op.
func TestUpdateBlock(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	blockID := ed.AddBlock(q1, quiz.BlockOptions, -1)

	ed.UpdateBlock(q1, blockID, &quiz.OptionsConfig{
		Multiple: true,
		Items:    []quiz.OptionItem{{ID: "o-1", Label: "Red"}},
	})
	doc, _ := ed.Snapshot()
	step, _ := doc.FindStep(q1)
	block, _ := step.FindBlock(blockID)
	cfg := block.Config.(*quiz.OptionsConfig)
	assert.True(t, cfg.Multiple)
	require.Len(t, cfg.Items, 1)

	rev := ed.Revision()
	ed.UpdateBlock(q1, blockID, &quiz.TextConfig{Text: "wrong shape"})
	assert.Equal(t, rev, ed.Revision())
	doc, _ = ed.Snapshot()
	step, _ = doc.FindStep(q1)
	block, _ = step.FindBlock(blockID)
	assert.IsType(t, &quiz.OptionsConfig{}, block.Config)
}

// TestUpdateBlock_CopiesConfig tests that the editor stores its own copy
// of the supplied config, not the caller's pointer.
func TestUpdateBlock_CopiesConfig(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	blockID := ed.AddBlock(q1, quiz.BlockText, -1)

	cfg := &quiz.TextConfig{Text: "original"}
	ed.UpdateBlock(q1, blockID, cfg)
	cfg.Text = "mutated by caller"

	doc, _ := ed.Snapshot()
	step, _ := doc.FindStep(q1)
	block, _ := step.FindBlock(blockID)
	assert.Equal(t, "original", block.Config.(*quiz.TextConfig).Text)
}

// TestDeleteBlock tests removal and selection clearing.
func TestDeleteBlock(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	keep := ed.AddBlock(q1, quiz.BlockText, -1)
	victim := ed.AddBlock(q1, quiz.BlockText, -1)
	require.Equal(t, victim, ed.SelectedBlockID())

	ed.DeleteBlock(q1, victim)
	doc, _ := ed.Snapshot()
	step, _ := doc.FindStep(q1)
	assert.Equal(t, []string{keep}, blockIDs(step.Blocks))
	assert.Empty(t, ed.SelectedBlockID())

	rev := ed.Revision()
	ed.DeleteBlock(q1, "missing")
	assert.Equal(t, rev, ed.Revision())
}

// TestDuplicateBlock tests copy placement and id disjointness down to
// option items.
func TestDuplicateBlock(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	blockID := ed.AddBlock(q1, quiz.BlockOptions, -1)
	ed.UpdateBlock(q1, blockID, &quiz.OptionsConfig{
		Items: []quiz.OptionItem{{ID: "o-1", Label: "Yes"}, {ID: "o-2", Label: "No"}},
	})

	dupID := ed.DuplicateBlock(q1, blockID)
	require.NotEmpty(t, dupID)
	assert.Equal(t, dupID, ed.SelectedBlockID())

	doc, _ := ed.Snapshot()
	step, _ := doc.FindStep(q1)
	require.Len(t, step.Blocks, 2)
	assert.Equal(t, blockID, step.Blocks[0].ID)
	assert.Equal(t, dupID, step.Blocks[1].ID)

	dupCfg := step.Blocks[1].Config.(*quiz.OptionsConfig)
	require.Len(t, dupCfg.Items, 2)
	assert.NotEqual(t, "o-1", dupCfg.Items[0].ID)
	assert.Equal(t, "Yes", dupCfg.Items[0].Label)
}

// TestReorderBlocks tests splice semantics within a step, including the
// unchanged-order no-op.
func TestReorderBlocks(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	a := ed.AddBlock(q1, quiz.BlockText, -1)
	b := ed.AddBlock(q1, quiz.BlockText, -1)
	c := ed.AddBlock(q1, quiz.BlockText, -1)

	ed.ReorderBlocks(q1, 0, 2)
	doc, _ := ed.Snapshot()
	step, _ := doc.FindStep(q1)
	assert.Equal(t, []string{b, c, a}, blockIDs(step.Blocks))

	rev := ed.Revision()
	ed.ReorderBlocks(q1, 1, 1) // same position
	ed.ReorderBlocks(q1, 7, 0) // source out of range
	assert.Equal(t, rev, ed.Revision())

	ed.ReorderBlocks(q1, 0, 99) // destination clamps to append
	doc, _ = ed.Snapshot()
	step, _ = doc.FindStep(q1)
	assert.Equal(t, []string{c, a, b}, blockIDs(step.Blocks))
}

// TestToggleBlock tests the enabled flip in place.
func TestToggleBlock(t *testing.T) {
	ed, _ := testutil.NewEditor("id")
	q1 := ed.AddStep(quiz.StepQuestion, "Q1", "")
	a := ed.AddBlock(q1, quiz.BlockText, -1)
	b := ed.AddBlock(q1, quiz.BlockText, -1)

	ed.ToggleBlock(q1, a)
	doc, _ := ed.Snapshot()
	step, _ := doc.FindStep(q1)
	assert.False(t, step.Blocks[0].Enabled)
	assert.True(t, step.Blocks[1].Enabled)
	assert.Equal(t, []string{a, b}, blockIDs(step.Blocks), "toggle preserves order")

	ed.ToggleBlock(q1, a)
	doc, _ = ed.Snapshot()
	step, _ = doc.FindStep(q1)
	assert.True(t, step.Blocks[0].Enabled)
}

func blockIDs(blocks []*quiz.Block) []string {
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids
}
