// Package testutil provides shared fixtures for tests: deterministic ID
// wiring and pre-built documents in known shapes.
package testutil

import (
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/editor"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
)

// A tiny inline-encoded PNG ("img" as base64). Small on purpose: tests
// exercise the format-prefix detection, not image decoding.
const InlinePNG = "data:image/png;base64,aW1n"

// NewEditor creates an editor over the default document with sequential
// ids "<prefix>-1", "<prefix>-2", ...
//
// The default document allocates four ids: intro heading block, intro
// button block, intro step, result step, in that order.
func NewEditor(prefix string) (*editor.Editor, *quiz.SeqGenerator) {
	gen := quiz.NewSeqGenerator(prefix)
	return editor.New(gen), gen
}

// QuestionStep builds a question step with an options block holding the
// given labels, allocating ids from gen.
func QuestionStep(gen quiz.IDGenerator, label string, optionLabels ...string) *quiz.Step {
	step := quiz.NewStep(gen, quiz.StepQuestion, label)
	block := quiz.NewBlock(gen, quiz.BlockOptions)
	cfg := block.Config.(*quiz.OptionsConfig)
	for _, l := range optionLabels {
		cfg.Items = append(cfg.Items, quiz.OptionItem{ID: gen.NewID(), Label: l})
	}
	step.Blocks = append(step.Blocks, block)
	return step
}

// MediaStep builds a promo step with a media block whose URL holds an
// inline-encoded asset, allocating ids from gen.
func MediaStep(gen quiz.IDGenerator, label string) *quiz.Step {
	step := quiz.NewStep(gen, quiz.StepPromo, label)
	block := quiz.NewBlock(gen, quiz.BlockMedia)
	block.Config = &quiz.MediaConfig{URL: InlinePNG}
	step.Blocks = append(step.Blocks, block)
	return step
}
