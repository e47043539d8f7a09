package editor

import (
	"sync"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
)

// Editor is the reactive state container for one document editing session.
//
// Thread-safety model:
//   - all operations are safe from any goroutine (internal mutex)
//   - each operation is atomic: no partially applied state is ever visible
//   - Changes() is a coalescing signal safe to select on from one consumer
type Editor struct {
	mu  sync.Mutex
	gen quiz.IDGenerator
	doc *quiz.Document

	// Derived selection state. Never persisted.
	activeStepID      string
	selectedOutcomeID string
	selectedBlockID   string

	// addStepRequested is the pending "add step" UI request; AddStep
	// fulfills and clears it.
	addStepRequested bool

	clock  revisionClock
	signal chan struct{}
}

// New creates an editor holding the default two-step document.
func New(gen quiz.IDGenerator) *Editor {
	e := &Editor{
		gen:    gen,
		doc:    quiz.NewDocument(gen),
		signal: make(chan struct{}, 1),
	}
	e.activeStepID = e.doc.Steps[0].ID
	return e
}

// Initialize replaces the session state with previously persisted steps and
// outcomes. The first step becomes active and all selection is cleared.
// Loading is not an edit: the revision does not advance and no change
// signal fires.
func (e *Editor) Initialize(steps []*quiz.Step, outcomes []*quiz.Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := &quiz.Document{Steps: steps, Outcomes: outcomes}
	e.doc = doc.Clone()
	e.activeStepID = ""
	if len(e.doc.Steps) > 0 {
		e.activeStepID = e.doc.Steps[0].ID
	}
	e.selectedOutcomeID = ""
	e.selectedBlockID = ""
}

// Replace swaps in a transformed copy of the document, preserving selection
// where it still resolves. The autosave pipeline uses this to feed migrated
// asset references back into the session so later commits see durable URLs.
// Like Initialize, this is not an edit and does not signal.
func (e *Editor) Replace(doc *quiz.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.replaceLocked(doc)
}

// ReplaceIfRevision swaps in the document only if the session still sits at
// the given revision. A commit snapshots the document and then suspends on
// network I/O; if the user edited in the meantime the revision has moved on
// and an unconditional swap would erase those edits. The skipped feedback is
// harmless: the still-inline assets re-migrate to the same paths on the next
// cycle.
//
// Reports whether the swap happened.
func (e *Editor) ReplaceIfRevision(doc *quiz.Document, rev int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clock.current() != rev {
		return false
	}
	e.replaceLocked(doc)
	return true
}

func (e *Editor) replaceLocked(doc *quiz.Document) {
	e.doc = doc.Clone()
	if _, i := e.doc.FindStep(e.activeStepID); i < 0 {
		e.activeStepID = ""
		if len(e.doc.Steps) > 0 {
			e.activeStepID = e.doc.Steps[0].ID
		}
	}
	if _, i := e.doc.FindOutcome(e.selectedOutcomeID); i < 0 {
		e.selectedOutcomeID = ""
	}
}

// Snapshot returns a deep copy of the current document and the revision it
// was taken at. The copy is the caller's to keep; later operations never
// touch it.
func (e *Editor) Snapshot() (*quiz.Document, int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone(), e.clock.current()
}

// Revision returns the current revision number.
func (e *Editor) Revision() int64 {
	return e.clock.current()
}

// Changes returns the coalescing change signal. A receive means at least
// one structural mutation happened since the last receive.
func (e *Editor) Changes() <-chan struct{} {
	return e.signal
}

// ActiveStepID returns the active step's id, or "".
func (e *Editor) ActiveStepID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeStepID
}

// SelectedOutcomeID returns the selected outcome's id, or "".
func (e *Editor) SelectedOutcomeID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedOutcomeID
}

// SelectedBlockID returns the selected block's id, or "".
func (e *Editor) SelectedBlockID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedBlockID
}

// SetActiveStep activates the step with the given id. Activating a
// non-result step clears both outcome and block selection. Activating the
// result step keeps the selected outcome, auto-selecting the first outcome
// when none is selected, and clears only the block selection. Unknown ids
// are a no-op.
func (e *Editor) SetActiveStep(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	step, _ := e.doc.FindStep(id)
	if step == nil {
		return
	}
	e.activeStepID = id
	e.selectedBlockID = ""
	if step.Type != quiz.StepResult {
		e.selectedOutcomeID = ""
		return
	}
	if e.selectedOutcomeID == "" && len(e.doc.Outcomes) > 0 {
		e.selectedOutcomeID = e.doc.Outcomes[0].ID
	}
}

// SelectBlock marks a block as selected. The block must belong to the
// active step or the selected outcome; anything else is a no-op.
func (e *Editor) SelectBlock(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if step, _ := e.doc.FindStep(e.activeStepID); step != nil {
		if b, _ := step.FindBlock(id); b != nil {
			e.selectedBlockID = id
			return
		}
	}
	if o, _ := e.doc.FindOutcome(e.selectedOutcomeID); o != nil {
		if b, _ := o.FindBlock(id); b != nil {
			e.selectedBlockID = id
		}
	}
}

// SelectOutcome marks an outcome as selected. Unknown ids are a no-op.
func (e *Editor) SelectOutcome(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, i := e.doc.FindOutcome(id); i < 0 {
		return
	}
	e.selectedOutcomeID = id
	e.selectedBlockID = ""
}

// RequestAddStep records that the UI asked for a new step. The request
// stays pending until the next AddStep fulfills it.
func (e *Editor) RequestAddStep() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.addStepRequested = true
}

// AddStepRequested reports whether an add-step request is pending.
func (e *Editor) AddStepRequested() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addStepRequested
}

// mutate runs fn against a clone of the document. When fn reports success
// the clone becomes current, the revision advances, and the change signal
// fires. When fn reports failure the clone is discarded and nothing
// observable happens; this is how every invariant rejection stays silent.
// fn runs with the mutex held and may adjust selection state directly.
func (e *Editor) mutate(fn func(d *quiz.Document) bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.doc.Clone()
	if !fn(next) {
		return
	}
	e.doc = next
	e.clock.next()

	// Coalescing notify: a full buffer already means "changed".
	select {
	case e.signal <- struct{}{}:
	default:
	}
}
