package quiz

// Document is the whole editable quiz: an ordered step sequence bracketed by
// the fixed intro and result steps, plus independent named outcomes.
//
// Selection state (active step, selected outcome, selected block) is derived
// UI state and deliberately not part of this type; it lives in
// internal/editor and is never persisted.
type Document struct {
	Steps    []*Step    `json:"steps"`
	Outcomes []*Outcome `json:"outcomes"`
}

// DefaultIntroTitle is the starter heading of a fresh document. A document
// whose intro still carries it (and nothing else) has no content of its own.
const DefaultIntroTitle = "Welcome"

// NewDocument creates the default two-step document: a fixed intro step
// pre-populated with starter blocks and a fixed empty result step, with zero
// outcomes.
func NewDocument(gen IDGenerator) *Document {
	heading := NewBlock(gen, BlockHeading)
	heading.Config = &HeadingConfig{Title: DefaultIntroTitle}
	button := NewBlock(gen, BlockButton)

	intro := &Step{
		ID:      gen.NewID(),
		Type:    StepIntro,
		Label:   "Intro",
		IsFixed: true,
		Blocks:  []*Block{heading, button},
	}
	result := &Step{
		ID:      gen.NewID(),
		Type:    StepResult,
		Label:   "Result",
		IsFixed: true,
		Blocks:  []*Block{},
	}
	return &Document{
		Steps:    []*Step{intro, result},
		Outcomes: []*Outcome{},
	}
}

// Clone returns a deep copy sharing no memory with the receiver. Every
// structural operation works on a clone, so a snapshot taken before an
// operation stays valid afterwards.
func (d *Document) Clone() *Document {
	cp := &Document{
		Steps:    make([]*Step, len(d.Steps)),
		Outcomes: make([]*Outcome, len(d.Outcomes)),
	}
	for i, s := range d.Steps {
		cp.Steps[i] = s.Clone()
	}
	for i, o := range d.Outcomes {
		cp.Outcomes[i] = o.Clone()
	}
	return cp
}

// IntroIndex returns the index of the intro step, or -1 if absent.
// A well-formed document always returns 0.
func (d *Document) IntroIndex() int {
	for i, s := range d.Steps {
		if s.Type == StepIntro {
			return i
		}
	}
	return -1
}

// ResultIndex returns the index of the result step, or -1 if absent.
// A well-formed document always returns len(Steps)-1.
func (d *Document) ResultIndex() int {
	for i, s := range d.Steps {
		if s.Type == StepResult {
			return i
		}
	}
	return -1
}

// FindStep returns the step with the given id and its index, or (nil, -1).
func (d *Document) FindStep(id string) (*Step, int) {
	for i, s := range d.Steps {
		if s.ID == id {
			return s, i
		}
	}
	return nil, -1
}

// FindOutcome returns the outcome with the given id and its index, or
// (nil, -1).
func (d *Document) FindOutcome(id string) (*Outcome, int) {
	for i, o := range d.Outcomes {
		if o.ID == id {
			return o, i
		}
	}
	return nil, -1
}

// StepInsertIndex resolves where a new step may be inserted.
//
// With no anchor (afterID == ""), the insertion point is immediately before
// the result step. With an anchor, the insertion point is immediately after
// the anchor step, but only if that position stays strictly before the
// result step. Returns -1 when the insertion is not allowed: the caller
// must treat that as a no-op.
func (d *Document) StepInsertIndex(afterID string) int {
	result := d.ResultIndex()
	if result < 0 {
		return -1
	}
	if afterID == "" {
		return result
	}
	_, at := d.FindStep(afterID)
	if at < 0 {
		return -1
	}
	idx := at + 1
	if idx > result {
		// The anchor would place the step at or past the result anchor.
		return -1
	}
	return idx
}

// CanMoveStep reports whether moving the step at from to position to is
// legal: the moved step must not be fixed, both positions must lie strictly
// between the intro and result steps, and the move must not be a no-op.
func (d *Document) CanMoveStep(from, to int) bool {
	if from == to {
		return false
	}
	if from < 0 || from >= len(d.Steps) || to < 0 || to >= len(d.Steps) {
		return false
	}
	if d.Steps[from].IsFixed {
		return false
	}
	intro := d.IntroIndex()
	result := d.ResultIndex()
	if to <= intro || to >= result {
		return false
	}
	return true
}

// ClampIndex clamps a block insertion index to [0, length]; out-of-range
// indices (including negatives) are treated as append.
func ClampIndex(idx, length int) int {
	if idx < 0 || idx > length {
		return length
	}
	return idx
}
