package quiz

// StepType identifies the role of a step within the document.
type StepType string

const (
	// StepIntro is the fixed first step.
	StepIntro StepType = "intro"
	// StepQuestion is a reorderable step carrying option blocks.
	StepQuestion StepType = "question"
	// StepLeadCapture is a reorderable step carrying a fields block.
	StepLeadCapture StepType = "lead-capture"
	// StepPromo is a reorderable step carrying promotional content.
	StepPromo StepType = "promo"
	// StepResult is the fixed last step; outcomes render while it is active.
	StepResult StepType = "result"
)

// ValidStepTypes enumerates the closed set of step types.
var ValidStepTypes = map[StepType]bool{
	StepIntro:       true,
	StepQuestion:    true,
	StepLeadCapture: true,
	StepPromo:       true,
	StepResult:      true,
}

// StepSettings holds presentation knobs that travel with a step.
type StepSettings struct {
	HideProgress bool   `json:"hideProgress,omitempty"`
	ButtonLabel  string `json:"buttonLabel,omitempty"`
}

// Step is an ordered stage of the document owning an ordered list of blocks.
//
// IsFixed marks the intro and result anchors. Fixed steps can never be
// deleted, duplicated, or moved; everything in between is fair game.
type Step struct {
	ID       string        `json:"id"`
	Type     StepType      `json:"type"`
	Label    string        `json:"label"`
	IsFixed  bool          `json:"isFixed"`
	Subtitle string        `json:"subtitle,omitempty"`
	Blocks   []*Block      `json:"blocks"`
	Settings *StepSettings `json:"settings,omitempty"`
}

// NewStep creates a movable step of the given type with a fresh ID and no
// blocks. Intro and result steps are only created through NewDocument.
func NewStep(gen IDGenerator, t StepType, label string) *Step {
	return &Step{
		ID:     gen.NewID(),
		Type:   t,
		Label:  label,
		Blocks: []*Block{},
	}
}

// Clone returns a deep copy of the step, preserving all IDs.
func (s *Step) Clone() *Step {
	cp := *s
	cp.Blocks = cloneBlocks(s.Blocks)
	if s.Settings != nil {
		settings := *s.Settings
		cp.Settings = &settings
	}
	return &cp
}

// CloneFresh returns a deep copy with freshly generated step and block IDs
// and " (copy)" appended to the label. Used by step duplication: the
// duplicate must never share identity with the original.
func (s *Step) CloneFresh(gen IDGenerator) *Step {
	cp := s.Clone()
	cp.ID = gen.NewID()
	cp.Label = s.Label + " (copy)"
	cp.Blocks = make([]*Block, len(s.Blocks))
	for i, b := range s.Blocks {
		cp.Blocks[i] = b.CloneFresh(gen)
	}
	return cp
}

// FindBlock returns the block with the given id and its index, or (nil, -1).
func (s *Step) FindBlock(id string) (*Block, int) {
	for i, b := range s.Blocks {
		if b.ID == id {
			return b, i
		}
	}
	return nil, -1
}

// HeadingBlock returns the first heading block, or nil. The intro step's
// heading is where document metadata (title, description) comes from.
func (s *Step) HeadingBlock() *HeadingConfig {
	for _, b := range s.Blocks {
		if cfg, ok := b.Config.(*HeadingConfig); ok {
			return cfg
		}
	}
	return nil
}

// MediaBlock returns the first media block's config, or nil.
func (s *Step) MediaBlock() *MediaConfig {
	for _, b := range s.Blocks {
		if cfg, ok := b.Config.(*MediaConfig); ok {
			return cfg
		}
	}
	return nil
}

// FieldsBlock returns the first fields block's config, or nil.
func (s *Step) FieldsBlock() *FieldsConfig {
	for _, b := range s.Blocks {
		if cfg, ok := b.Config.(*FieldsConfig); ok {
			return cfg
		}
	}
	return nil
}
