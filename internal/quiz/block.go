package quiz

import (
	"encoding/json"
	"fmt"
)

// BlockType identifies one of the closed set of content block variants.
// A block never changes its type after creation.
type BlockType string

const (
	// BlockHeading is a title plus optional description.
	BlockHeading BlockType = "heading"
	// BlockText is free-form text.
	BlockText BlockType = "text"
	// BlockMedia references an image or video. Its URL fields may
	// transiently hold an inline-encoded asset before migration.
	BlockMedia BlockType = "media"
	// BlockOptions is a list of selectable items, single or multi select.
	BlockOptions BlockType = "options"
	// BlockFields is a set of form inputs for lead capture.
	BlockFields BlockType = "fields"
	// BlockPricing is a list of priced items.
	BlockPricing BlockType = "pricing"
	// BlockButton is a call-to-action button.
	BlockButton BlockType = "button"
	// BlockAlert is a highlighted banner.
	BlockAlert BlockType = "alert"
	// BlockList is a bulleted list.
	BlockList BlockType = "list"
)

// ValidBlockTypes enumerates the closed set of block types.
var ValidBlockTypes = map[BlockType]bool{
	BlockHeading: true,
	BlockText:    true,
	BlockMedia:   true,
	BlockOptions: true,
	BlockFields:  true,
	BlockPricing: true,
	BlockButton:  true,
	BlockAlert:   true,
	BlockList:    true,
}

// BlockConfig is the polymorphic configuration of a block, selected by the
// block's type. The interface is sealed: only the config structs in this
// package implement it.
type BlockConfig interface {
	// Clone returns a deep copy sharing no memory with the receiver.
	Clone() BlockConfig

	blockConfig()
}

// HeadingConfig configures a heading block.
type HeadingConfig struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TextConfig configures a free text block.
type TextConfig struct {
	Text string `json:"text"`
}

// MediaConfig configures a media block. URL and VideoThumbnail may hold an
// inline-encoded asset until the migration pipeline replaces it with a
// durable reference.
type MediaConfig struct {
	URL            string `json:"url"`
	VideoThumbnail string `json:"videoThumbnail,omitempty"`
	Alt            string `json:"alt,omitempty"`
}

// OptionItem is a single selectable choice. ImageURL may hold an
// inline-encoded asset until migration. OutcomeID optionally links the
// choice to an outcome shown on the result step.
type OptionItem struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	ImageURL  string `json:"imageUrl,omitempty"`
	OutcomeID string `json:"outcomeId,omitempty"`
}

// OptionsConfig configures an options block.
type OptionsConfig struct {
	Multiple bool         `json:"multiple"`
	Items    []OptionItem `json:"items"`
}

// FieldKind identifies a form input variant.
type FieldKind string

const (
	FieldText  FieldKind = "text"
	FieldEmail FieldKind = "email"
	FieldPhone FieldKind = "phone"
)

// FormField is a single input in a fields block.
type FormField struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
}

// FieldsConfig configures a lead-capture form block.
type FieldsConfig struct {
	Fields []FormField `json:"fields"`
}

// PriceItem is a single priced entry. Amounts are integer cents so the
// model stays float-free end to end.
type PriceItem struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	AmountCents int64  `json:"amountCents"`
}

// PricingConfig configures a pricing block.
type PricingConfig struct {
	Currency string      `json:"currency"`
	Items    []PriceItem `json:"items"`
}

// ButtonConfig configures an action button block.
type ButtonConfig struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// AlertTone selects the visual tone of an alert block.
type AlertTone string

const (
	AlertInfo    AlertTone = "info"
	AlertWarning AlertTone = "warning"
	AlertSuccess AlertTone = "success"
)

// AlertConfig configures an alert banner block.
type AlertConfig struct {
	Tone AlertTone `json:"tone"`
	Text string    `json:"text"`
}

// ListConfig configures a bulleted list block.
type ListConfig struct {
	Items []string `json:"items"`
}

func (*HeadingConfig) blockConfig() {}
func (*TextConfig) blockConfig()    {}
func (*MediaConfig) blockConfig()   {}
func (*OptionsConfig) blockConfig() {}
func (*FieldsConfig) blockConfig()  {}
func (*PricingConfig) blockConfig() {}
func (*ButtonConfig) blockConfig()  {}
func (*AlertConfig) blockConfig()   {}
func (*ListConfig) blockConfig()    {}

// Clone returns a deep copy of the config.
func (c *HeadingConfig) Clone() BlockConfig {
	cp := *c
	return &cp
}

// Clone returns a deep copy of the config.
func (c *TextConfig) Clone() BlockConfig {
	cp := *c
	return &cp
}

// Clone returns a deep copy of the config.
func (c *MediaConfig) Clone() BlockConfig {
	cp := *c
	return &cp
}

// Clone returns a deep copy of the config, including the items slice.
func (c *OptionsConfig) Clone() BlockConfig {
	cp := *c
	cp.Items = make([]OptionItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}

// Clone returns a deep copy of the config, including the fields slice.
func (c *FieldsConfig) Clone() BlockConfig {
	cp := *c
	cp.Fields = make([]FormField, len(c.Fields))
	copy(cp.Fields, c.Fields)
	return &cp
}

// Clone returns a deep copy of the config, including the items slice.
func (c *PricingConfig) Clone() BlockConfig {
	cp := *c
	cp.Items = make([]PriceItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}

// Clone returns a deep copy of the config.
func (c *ButtonConfig) Clone() BlockConfig {
	cp := *c
	return &cp
}

// Clone returns a deep copy of the config.
func (c *AlertConfig) Clone() BlockConfig {
	cp := *c
	return &cp
}

// Clone returns a deep copy of the config, including the items slice.
func (c *ListConfig) Clone() BlockConfig {
	cp := *c
	cp.Items = make([]string, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}

// Block is a single typed unit of content owned by exactly one Step or
// Outcome. Enabled lets a block exist without being shown; it is independent
// of ordering.
type Block struct {
	ID      string
	Type    BlockType
	Enabled bool
	Config  BlockConfig
}

// NewBlock creates a block of the given type with a fresh ID and a
// structurally valid default configuration. Defaults never need validation:
// an options block starts with no items in single-select mode, a fields
// block starts with one required name field, and so on.
func NewBlock(gen IDGenerator, t BlockType) *Block {
	return &Block{
		ID:      gen.NewID(),
		Type:    t,
		Enabled: true,
		Config:  defaultConfig(gen, t),
	}
}

func defaultConfig(gen IDGenerator, t BlockType) BlockConfig {
	switch t {
	case BlockHeading:
		return &HeadingConfig{}
	case BlockText:
		return &TextConfig{}
	case BlockMedia:
		return &MediaConfig{}
	case BlockOptions:
		return &OptionsConfig{Multiple: false, Items: []OptionItem{}}
	case BlockFields:
		return &FieldsConfig{Fields: []FormField{
			{ID: gen.NewID(), Label: "Name", Kind: FieldText, Required: true},
		}}
	case BlockPricing:
		return &PricingConfig{Currency: "USD", Items: []PriceItem{}}
	case BlockButton:
		return &ButtonConfig{Label: "Continue"}
	case BlockAlert:
		return &AlertConfig{Tone: AlertInfo}
	case BlockList:
		return &ListConfig{Items: []string{}}
	default:
		// Unknown types cannot be constructed through the public API;
		// ValidBlockTypes gates every entry point.
		panic(fmt.Sprintf("quiz: unknown block type %q", t))
	}
}

// Clone returns a deep copy of the block. The copy keeps the same ID; use
// CloneFresh when duplicating into a new identity.
func (b *Block) Clone() *Block {
	cp := *b
	cp.Config = b.Config.Clone()
	return &cp
}

// CloneFresh returns a deep copy with a newly generated ID. Item-level IDs
// inside the config (option items, form fields, price items) are regenerated
// as well, so a duplicate never shares identity with its original.
func (b *Block) CloneFresh(gen IDGenerator) *Block {
	cp := b.Clone()
	cp.ID = gen.NewID()
	switch cfg := cp.Config.(type) {
	case *OptionsConfig:
		for i := range cfg.Items {
			cfg.Items[i].ID = gen.NewID()
		}
	case *FieldsConfig:
		for i := range cfg.Fields {
			cfg.Fields[i].ID = gen.NewID()
		}
	case *PricingConfig:
		for i := range cfg.Items {
			cfg.Items[i].ID = gen.NewID()
		}
	}
	return cp
}

// blockJSON is the wire form of a block. Config is kept raw until the type
// discriminator has been read.
type blockJSON struct {
	ID      string          `json:"id"`
	Type    BlockType       `json:"type"`
	Enabled bool            `json:"enabled"`
	Config  json.RawMessage `json:"config"`
}

// MarshalJSON encodes the block with its type as discriminator.
func (b *Block) MarshalJSON() ([]byte, error) {
	cfg, err := json.Marshal(b.Config)
	if err != nil {
		return nil, fmt.Errorf("marshal block %s config: %w", b.ID, err)
	}
	return json.Marshal(blockJSON{
		ID:      b.ID,
		Type:    b.Type,
		Enabled: b.Enabled,
		Config:  cfg,
	})
}

// UnmarshalJSON decodes the block, selecting the config variant by type.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal block: %w", err)
	}
	if !ValidBlockTypes[raw.Type] {
		return fmt.Errorf("unmarshal block %s: unknown type %q", raw.ID, raw.Type)
	}
	cfg := emptyConfig(raw.Type)
	if len(raw.Config) > 0 {
		if err := json.Unmarshal(raw.Config, cfg); err != nil {
			return fmt.Errorf("unmarshal block %s config: %w", raw.ID, err)
		}
	}
	b.ID = raw.ID
	b.Type = raw.Type
	b.Enabled = raw.Enabled
	b.Config = cfg
	return nil
}

// emptyConfig returns a zero-valued config for decoding. Unlike
// defaultConfig it allocates no IDs.
func emptyConfig(t BlockType) BlockConfig {
	switch t {
	case BlockHeading:
		return &HeadingConfig{}
	case BlockText:
		return &TextConfig{}
	case BlockMedia:
		return &MediaConfig{}
	case BlockOptions:
		return &OptionsConfig{}
	case BlockFields:
		return &FieldsConfig{}
	case BlockPricing:
		return &PricingConfig{}
	case BlockButton:
		return &ButtonConfig{}
	case BlockAlert:
		return &AlertConfig{}
	case BlockList:
		return &ListConfig{}
	default:
		panic(fmt.Sprintf("quiz: unknown block type %q", t))
	}
}

// cloneBlocks deep-copies a block slice, preserving IDs.
func cloneBlocks(blocks []*Block) []*Block {
	out := make([]*Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}
