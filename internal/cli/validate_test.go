package cli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardFormatter() *OutputFormatter {
	return &OutputFormatter{Format: "text", Writer: io.Discard, ErrWriter: io.Discard}
}

func validRecord() map[string]any {
	return map[string]any{
		"id":      "doc-1",
		"ownerId": "owner-1",
		"title":   "Color personality",
		"steps": []any{
			map[string]any{
				"id": "s-intro", "type": "intro", "label": "Intro", "isFixed": true,
				"blocks": []any{
					map[string]any{
						"id": "b-1", "type": "heading", "enabled": true,
						"config": map[string]any{"title": "Welcome"},
					},
				},
			},
			map[string]any{
				"id": "s-q1", "type": "question", "label": "Q1", "isFixed": false,
				"blocks": []any{},
			},
			map[string]any{
				"id": "s-result", "type": "result", "label": "Result", "isFixed": true,
				"blocks": []any{},
			},
		},
		"outcomes": []any{
			map[string]any{"id": "o-1", "name": "A", "blocks": []any{}},
		},
		"isPublished": false,
	}
}

// TestValidateRecord_Valid tests that a well-formed record passes both
// the schema and the ordering checks.
func TestValidateRecord_Valid(t *testing.T) {
	issues := validateRecord(validRecord(), discardFormatter())
	assert.Empty(t, issues)
}

// TestValidateRecord_SchemaViolations tests the CUE schema surface:
// unknown enum values and missing required fields.
func TestValidateRecord_SchemaViolations(t *testing.T) {
	rec := validRecord()
	steps := rec["steps"].([]any)
	steps[1].(map[string]any)["type"] = "carousel"

	issues := validateRecord(rec, discardFormatter())
	assert.NotEmpty(t, issues)

	missingOwner := validRecord()
	delete(missingOwner, "ownerId")
	issues = validateRecord(missingOwner, discardFormatter())
	assert.NotEmpty(t, issues)
}

// TestValidateOrdering tests the anchor rules the schema cannot express.
func TestValidateOrdering(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, validateOrdering(validRecord()))
	})

	t.Run("intro not first", func(t *testing.T) {
		rec := validRecord()
		steps := rec["steps"].([]any)
		steps[0], steps[1] = steps[1], steps[0]
		issues := validateOrdering(rec)
		require.NotEmpty(t, issues)
	})

	t.Run("missing result", func(t *testing.T) {
		rec := validRecord()
		steps := rec["steps"].([]any)
		rec["steps"] = steps[:2]
		issues := validateOrdering(rec)
		require.NotEmpty(t, issues)
	})

	t.Run("movable step marked fixed", func(t *testing.T) {
		rec := validRecord()
		steps := rec["steps"].([]any)
		steps[1].(map[string]any)["isFixed"] = true
		issues := validateOrdering(rec)
		require.Len(t, issues, 1)
		assert.Equal(t, "steps[1]", issues[0].Field)
	})

	t.Run("duplicate intro", func(t *testing.T) {
		rec := validRecord()
		steps := rec["steps"].([]any)
		extra := map[string]any{
			"id": "s-intro2", "type": "intro", "label": "Again", "isFixed": true,
			"blocks": []any{},
		}
		rec["steps"] = []any{steps[0], extra, steps[1], steps[2]}
		issues := validateOrdering(rec)
		require.NotEmpty(t, issues)
	})

	t.Run("too few steps", func(t *testing.T) {
		rec := validRecord()
		rec["steps"] = []any{}
		issues := validateOrdering(rec)
		require.NotEmpty(t, issues)
	})
}

// TestValidateNoInlineAssets tests the durable-reference rule at any
// depth of the record.
func TestValidateNoInlineAssets(t *testing.T) {
	assert.Empty(t, validateNoInlineAssets(validRecord()))

	rec := validRecord()
	steps := rec["steps"].([]any)
	blocks := steps[0].(map[string]any)["blocks"].([]any)
	blocks[0].(map[string]any)["config"] = map[string]any{
		"url": "data:image/png;base64,aW1n",
	}

	issues := validateNoInlineAssets(rec)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Field, "steps[0]")
}
