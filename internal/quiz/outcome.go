package quiz

// Outcome is a named result variant with its own ordered block list.
// Outcomes are independent of steps; they render only while the result step
// is active. A document that has any outcome must always keep at least one.
type Outcome struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Blocks []*Block `json:"blocks"`
}

// NewOutcome creates an outcome with a fresh ID and no blocks. Callers that
// want the starter content use DefaultOutcomeBlocks.
func NewOutcome(gen IDGenerator, name string) *Outcome {
	return &Outcome{
		ID:     gen.NewID(),
		Name:   name,
		Blocks: []*Block{},
	}
}

// DefaultOutcomeBlocks returns the starter blocks for an outcome added with
// no content: a heading and a text body.
func DefaultOutcomeBlocks(gen IDGenerator) []*Block {
	heading := NewBlock(gen, BlockHeading)
	heading.Config = &HeadingConfig{Title: "Your result"}
	text := NewBlock(gen, BlockText)
	return []*Block{heading, text}
}

// Clone returns a deep copy of the outcome, preserving all IDs.
func (o *Outcome) Clone() *Outcome {
	cp := *o
	cp.Blocks = cloneBlocks(o.Blocks)
	return &cp
}

// CloneFresh returns a deep copy with freshly generated outcome and block
// IDs and " (copy)" appended to the name.
func (o *Outcome) CloneFresh(gen IDGenerator) *Outcome {
	cp := o.Clone()
	cp.ID = gen.NewID()
	cp.Name = o.Name + " (copy)"
	cp.Blocks = make([]*Block, len(o.Blocks))
	for i, b := range o.Blocks {
		cp.Blocks[i] = b.CloneFresh(gen)
	}
	return cp
}

// FindBlock returns the block with the given id and its index, or (nil, -1).
func (o *Outcome) FindBlock(id string) (*Block, int) {
	for i, b := range o.Blocks {
		if b.ID == id {
			return b, i
		}
	}
	return nil, -1
}
