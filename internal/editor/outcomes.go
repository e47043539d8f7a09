package editor

import (
	"slices"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
)

// AddOutcome appends an outcome to the document. An outcome arriving with
// no blocks is populated with the default outcome blocks. The result step
// becomes active and the new outcome selected.
//
// Returns the outcome's id, or "" when rejected.
func (e *Editor) AddOutcome(o *quiz.Outcome) string {
	if o == nil {
		return ""
	}
	var id string
	e.mutate(func(d *quiz.Document) bool {
		result, idx := resultStep(d)
		if idx < 0 {
			return false
		}
		added := o.Clone()
		if len(added.Blocks) == 0 {
			added.Blocks = quiz.DefaultOutcomeBlocks(e.gen)
		}
		d.Outcomes = append(d.Outcomes, added)
		id = added.ID
		e.activeStepID = result.ID
		e.selectedOutcomeID = added.ID
		e.selectedBlockID = ""
		return true
	})
	return id
}

// CreateOutcome builds a named outcome with default blocks and adds it.
func (e *Editor) CreateOutcome(name string) string {
	return e.AddOutcome(quiz.NewOutcome(e.gen, name))
}

// DeleteOutcome removes an outcome and every block it owns. The last
// remaining outcome can never be deleted. When the deleted outcome was
// selected, the first remaining outcome becomes selected.
func (e *Editor) DeleteOutcome(id string) {
	e.mutate(func(d *quiz.Document) bool {
		if len(d.Outcomes) <= 1 {
			return false
		}
		outcome, idx := d.FindOutcome(id)
		if outcome == nil {
			return false
		}
		if _, i := outcome.FindBlock(e.selectedBlockID); i >= 0 {
			e.selectedBlockID = ""
		}
		d.Outcomes = slices.Delete(d.Outcomes, idx, idx+1)
		if e.selectedOutcomeID == id {
			e.selectedOutcomeID = d.Outcomes[0].ID
		}
		return true
	})
}

// DuplicateOutcome deep-copies an outcome with fresh ids and " (copy)"
// appended to the name. The duplicate is inserted after the original and
// becomes selected.
//
// Returns the duplicate's id, or "" when rejected.
func (e *Editor) DuplicateOutcome(id string) string {
	var dupID string
	e.mutate(func(d *quiz.Document) bool {
		outcome, idx := d.FindOutcome(id)
		if outcome == nil {
			return false
		}
		dup := outcome.CloneFresh(e.gen)
		d.Outcomes = slices.Insert(d.Outcomes, idx+1, dup)
		dupID = dup.ID
		e.selectedOutcomeID = dup.ID
		e.selectedBlockID = ""
		return true
	})
	return dupID
}

// UpdateOutcomeName renames an outcome. Unknown ids are a no-op.
func (e *Editor) UpdateOutcomeName(id, name string) {
	e.mutate(func(d *quiz.Document) bool {
		outcome, _ := d.FindOutcome(id)
		if outcome == nil || outcome.Name == name {
			return false
		}
		outcome.Name = name
		return true
	})
}

// AddOutcomeBlock creates a block inside an outcome at index at.
// Out-of-range indices append. The new block becomes selected.
//
// Returns the new block's id, or "" when rejected.
func (e *Editor) AddOutcomeBlock(outcomeID string, t quiz.BlockType, at int) string {
	if !quiz.ValidBlockTypes[t] {
		return ""
	}
	var id string
	e.mutate(func(d *quiz.Document) bool {
		outcome, _ := d.FindOutcome(outcomeID)
		if outcome == nil {
			return false
		}
		block := quiz.NewBlock(e.gen, t)
		idx := quiz.ClampIndex(at, len(outcome.Blocks))
		outcome.Blocks = slices.Insert(outcome.Blocks, idx, block)
		id = block.ID
		e.selectedBlockID = block.ID
		return true
	})
	return id
}

// UpdateOutcomeBlock replaces an outcome block's configuration. The config
// must match the block's type.
func (e *Editor) UpdateOutcomeBlock(outcomeID, blockID string, cfg quiz.BlockConfig) {
	e.mutate(func(d *quiz.Document) bool {
		outcome, _ := d.FindOutcome(outcomeID)
		if outcome == nil {
			return false
		}
		return replaceConfig(outcome.Blocks, blockID, cfg)
	})
}

// DeleteOutcomeBlock removes a block from an outcome. When the deleted
// block was selected, block selection is cleared.
func (e *Editor) DeleteOutcomeBlock(outcomeID, blockID string) {
	e.mutate(func(d *quiz.Document) bool {
		outcome, _ := d.FindOutcome(outcomeID)
		if outcome == nil {
			return false
		}
		_, idx := outcome.FindBlock(blockID)
		if idx < 0 {
			return false
		}
		outcome.Blocks = slices.Delete(outcome.Blocks, idx, idx+1)
		if e.selectedBlockID == blockID {
			e.selectedBlockID = ""
		}
		return true
	})
}

// DuplicateOutcomeBlock deep-copies an outcome block immediately after the
// original with a fresh id. The duplicate becomes selected.
//
// Returns the duplicate's id, or "" when rejected.
func (e *Editor) DuplicateOutcomeBlock(outcomeID, blockID string) string {
	var dupID string
	e.mutate(func(d *quiz.Document) bool {
		outcome, _ := d.FindOutcome(outcomeID)
		if outcome == nil {
			return false
		}
		block, idx := outcome.FindBlock(blockID)
		if block == nil {
			return false
		}
		dup := block.CloneFresh(e.gen)
		outcome.Blocks = slices.Insert(outcome.Blocks, idx+1, dup)
		dupID = dup.ID
		e.selectedBlockID = dup.ID
		return true
	})
	return dupID
}

// ReorderOutcomeBlocks moves a block within an outcome with array-splice
// semantics. The source index must be in range; the destination is clamped.
func (e *Editor) ReorderOutcomeBlocks(outcomeID string, from, to int) {
	e.mutate(func(d *quiz.Document) bool {
		outcome, _ := d.FindOutcome(outcomeID)
		if outcome == nil {
			return false
		}
		var ok bool
		outcome.Blocks, ok = spliceBlocks(outcome.Blocks, from, to)
		return ok
	})
}

// ToggleOutcomeBlock flips an outcome block's enabled flag.
func (e *Editor) ToggleOutcomeBlock(outcomeID, blockID string) {
	e.mutate(func(d *quiz.Document) bool {
		outcome, _ := d.FindOutcome(outcomeID)
		if outcome == nil {
			return false
		}
		block, _ := outcome.FindBlock(blockID)
		if block == nil {
			return false
		}
		block.Enabled = !block.Enabled
		return true
	})
}

func resultStep(d *quiz.Document) (*quiz.Step, int) {
	idx := d.ResultIndex()
	if idx < 0 {
		return nil, -1
	}
	return d.Steps[idx], idx
}
