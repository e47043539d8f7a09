package editor

import (
	"slices"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
)

// AddStep creates a step of the given type and inserts it. With no anchor
// the step lands immediately before the result step; with afterID set it
// lands immediately after that step, provided the position stays strictly
// before the result step. The new step becomes active, block selection is
// cleared, and any pending add-step request is fulfilled.
//
// Returns the new step's id, or "" when the insertion was rejected.
// Intro and result are anchors that exist exactly once; requesting either
// type is rejected.
func (e *Editor) AddStep(t quiz.StepType, label, afterID string) string {
	if t == quiz.StepIntro || t == quiz.StepResult || !quiz.ValidStepTypes[t] {
		return ""
	}

	var id string
	e.mutate(func(d *quiz.Document) bool {
		idx := d.StepInsertIndex(afterID)
		if idx < 0 {
			return false
		}
		step := quiz.NewStep(e.gen, t, label)
		d.Steps = slices.Insert(d.Steps, idx, step)
		id = step.ID
		e.activeStepID = step.ID
		e.selectedBlockID = ""
		e.selectedOutcomeID = ""
		e.addStepRequested = false
		return true
	})
	return id
}

// DeleteStep removes a step and every block it owns. Fixed steps are a
// no-op. When the deleted step was active, the step immediately preceding
// it becomes active.
func (e *Editor) DeleteStep(id string) {
	e.mutate(func(d *quiz.Document) bool {
		step, idx := d.FindStep(id)
		if step == nil || step.IsFixed {
			return false
		}
		if _, i := step.FindBlock(e.selectedBlockID); i >= 0 {
			e.selectedBlockID = ""
		}
		d.Steps = slices.Delete(d.Steps, idx, idx+1)
		if e.activeStepID == id {
			// idx >= 1 always: the intro anchor sits at 0 and cannot
			// be deleted.
			e.activeStepID = d.Steps[idx-1].ID
		}
		return true
	})
}

// DuplicateStep deep-copies a step immediately after the original, with
// fresh ids for the step and every block in it and " (copy)" appended to
// the label. Fixed steps are a no-op. The duplicate becomes active.
//
// Returns the duplicate's id, or "" when rejected.
func (e *Editor) DuplicateStep(id string) string {
	var dupID string
	e.mutate(func(d *quiz.Document) bool {
		step, idx := d.FindStep(id)
		if step == nil || step.IsFixed {
			return false
		}
		dup := step.CloneFresh(e.gen)
		d.Steps = slices.Insert(d.Steps, idx+1, dup)
		dupID = dup.ID
		e.activeStepID = dup.ID
		e.selectedBlockID = ""
		return true
	})
	return dupID
}

// ReorderSteps moves the step at from to position to with array-splice
// semantics. Rejected (no-op) when the moved step is fixed, when the
// destination is at or outside either anchor, or when from == to.
func (e *Editor) ReorderSteps(from, to int) {
	e.mutate(func(d *quiz.Document) bool {
		if !d.CanMoveStep(from, to) {
			return false
		}
		step := d.Steps[from]
		d.Steps = slices.Delete(d.Steps, from, from+1)
		d.Steps = slices.Insert(d.Steps, to, step)
		return true
	})
}

// UpdateStepLabel renames a step. Unknown ids are a no-op.
func (e *Editor) UpdateStepLabel(id, label string) {
	e.mutate(func(d *quiz.Document) bool {
		step, _ := d.FindStep(id)
		if step == nil || step.Label == label {
			return false
		}
		step.Label = label
		return true
	})
}

// UpdateStepSubtitle sets a step's subtitle. Unknown ids are a no-op.
func (e *Editor) UpdateStepSubtitle(id, subtitle string) {
	e.mutate(func(d *quiz.Document) bool {
		step, _ := d.FindStep(id)
		if step == nil || step.Subtitle == subtitle {
			return false
		}
		step.Subtitle = subtitle
		return true
	})
}

// UpdateStepSettings replaces a step's settings. Unknown ids are a no-op.
func (e *Editor) UpdateStepSettings(id string, settings quiz.StepSettings) {
	e.mutate(func(d *quiz.Document) bool {
		step, _ := d.FindStep(id)
		if step == nil {
			return false
		}
		s := settings
		step.Settings = &s
		return true
	})
}
