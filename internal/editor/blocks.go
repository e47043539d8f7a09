package editor

import (
	"slices"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
)

// AddBlock creates a block of the given type inside a step and inserts it
// at index at. Out-of-range indices append. The new block becomes selected.
//
// Returns the new block's id, or "" when the step does not exist.
func (e *Editor) AddBlock(stepID string, t quiz.BlockType, at int) string {
	if !quiz.ValidBlockTypes[t] {
		return ""
	}
	var id string
	e.mutate(func(d *quiz.Document) bool {
		step, _ := d.FindStep(stepID)
		if step == nil {
			return false
		}
		block := quiz.NewBlock(e.gen, t)
		idx := quiz.ClampIndex(at, len(step.Blocks))
		step.Blocks = slices.Insert(step.Blocks, idx, block)
		id = block.ID
		e.selectedBlockID = block.ID
		return true
	})
	return id
}

// UpdateBlock replaces a block's configuration. The config must match the
// block's type; a block never changes type after creation, so a mismatched
// config is a no-op.
func (e *Editor) UpdateBlock(stepID, blockID string, cfg quiz.BlockConfig) {
	e.mutate(func(d *quiz.Document) bool {
		step, _ := d.FindStep(stepID)
		if step == nil {
			return false
		}
		return replaceConfig(step.Blocks, blockID, cfg)
	})
}

// DeleteBlock removes a block from a step. When the deleted block was
// selected, block selection is cleared.
func (e *Editor) DeleteBlock(stepID, blockID string) {
	e.mutate(func(d *quiz.Document) bool {
		step, _ := d.FindStep(stepID)
		if step == nil {
			return false
		}
		_, idx := step.FindBlock(blockID)
		if idx < 0 {
			return false
		}
		step.Blocks = slices.Delete(step.Blocks, idx, idx+1)
		if e.selectedBlockID == blockID {
			e.selectedBlockID = ""
		}
		return true
	})
}

// DuplicateBlock deep-copies a block immediately after the original with
// a fresh id. The duplicate becomes selected.
//
// Returns the duplicate's id, or "" when rejected.
func (e *Editor) DuplicateBlock(stepID, blockID string) string {
	var dupID string
	e.mutate(func(d *quiz.Document) bool {
		step, _ := d.FindStep(stepID)
		if step == nil {
			return false
		}
		block, idx := step.FindBlock(blockID)
		if block == nil {
			return false
		}
		dup := block.CloneFresh(e.gen)
		step.Blocks = slices.Insert(step.Blocks, idx+1, dup)
		dupID = dup.ID
		e.selectedBlockID = dup.ID
		return true
	})
	return dupID
}

// ReorderBlocks moves a block within a step with array-splice semantics.
// The source index must be in range; the destination is clamped, with
// out-of-range treated as append.
func (e *Editor) ReorderBlocks(stepID string, from, to int) {
	e.mutate(func(d *quiz.Document) bool {
		step, _ := d.FindStep(stepID)
		if step == nil {
			return false
		}
		var ok bool
		step.Blocks, ok = spliceBlocks(step.Blocks, from, to)
		return ok
	})
}

// ToggleBlock flips a block's enabled flag without altering its position
// or configuration.
func (e *Editor) ToggleBlock(stepID, blockID string) {
	e.mutate(func(d *quiz.Document) bool {
		step, _ := d.FindStep(stepID)
		if step == nil {
			return false
		}
		block, _ := step.FindBlock(blockID)
		if block == nil {
			return false
		}
		block.Enabled = !block.Enabled
		return true
	})
}

// replaceConfig swaps the config of the block with the given id, enforcing
// that the new config's concrete type matches the old one.
func replaceConfig(blocks []*quiz.Block, blockID string, cfg quiz.BlockConfig) bool {
	for _, b := range blocks {
		if b.ID != blockID {
			continue
		}
		if !sameConfigType(b.Config, cfg) {
			return false
		}
		b.Config = cfg.Clone()
		return true
	}
	return false
}

func sameConfigType(a, b quiz.BlockConfig) bool {
	switch a.(type) {
	case *quiz.HeadingConfig:
		_, ok := b.(*quiz.HeadingConfig)
		return ok
	case *quiz.TextConfig:
		_, ok := b.(*quiz.TextConfig)
		return ok
	case *quiz.MediaConfig:
		_, ok := b.(*quiz.MediaConfig)
		return ok
	case *quiz.OptionsConfig:
		_, ok := b.(*quiz.OptionsConfig)
		return ok
	case *quiz.FieldsConfig:
		_, ok := b.(*quiz.FieldsConfig)
		return ok
	case *quiz.PricingConfig:
		_, ok := b.(*quiz.PricingConfig)
		return ok
	case *quiz.ButtonConfig:
		_, ok := b.(*quiz.ButtonConfig)
		return ok
	case *quiz.AlertConfig:
		_, ok := b.(*quiz.AlertConfig)
		return ok
	case *quiz.ListConfig:
		_, ok := b.(*quiz.ListConfig)
		return ok
	default:
		return false
	}
}

// spliceBlocks removes the block at from and reinserts it at to (clamped).
// Returns the updated slice and whether anything changed.
func spliceBlocks(blocks []*quiz.Block, from, to int) ([]*quiz.Block, bool) {
	if from < 0 || from >= len(blocks) {
		return blocks, false
	}
	block := blocks[from]
	out := slices.Delete(slices.Clone(blocks), from, from+1)
	idx := quiz.ClampIndex(to, len(out))
	if idx == from {
		return blocks, false
	}
	out = slices.Insert(out, idx, block)
	return out, true
}
