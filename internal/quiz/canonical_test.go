package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarshalCanonical_KeyOrder tests UTF-16 code unit key ordering.
func TestMarshalCanonical_KeyOrder(t *testing.T) {
	out, err := MarshalCanonical(map[string]any{
		"zebra": "z",
		"alpha": "a",
		"Beta":  "B",
	})
	require.NoError(t, err)
	// Uppercase code units sort before lowercase.
	assert.Equal(t, `{"Beta":"B","alpha":"a","zebra":"z"}`, string(out))
}

// TestMarshalCanonical_UTF16Order tests the case where UTF-16 and UTF-8
// orderings disagree: a supplementary-plane character encodes as a
// surrogate pair and must sort before a high BMP character.
func TestMarshalCanonical_UTF16Order(t *testing.T) {
	out, err := MarshalCanonical(map[string]any{
		"דּ":     1, // BMP, above the surrogate range in UTF-8 order
		"\U0001F600": 2, // supplementary, leads with surrogate 0xD83D
	})
	require.NoError(t, err)
	assert.Equal(t, `{"😀":2,"דּ":1}`, string(out))
}

// TestMarshalCanonical_NFC tests that decomposed sequences normalize
// before serialization, so visually identical strings hash identical.
func TestMarshalCanonical_NFC(t *testing.T) {
	composed, err := MarshalCanonical("café")
	require.NoError(t, err)
	decomposed, err := MarshalCanonical("café")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

// TestMarshalCanonical_NoHTMLEscaping tests that < > & pass through raw.
func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	out, err := MarshalCanonical("<b>&</b>")
	require.NoError(t, err)
	assert.Equal(t, `"<b>&</b>"`, string(out))
}

// TestMarshalCanonical_Numbers tests integer and json.Number handling.
func TestMarshalCanonical_Numbers(t *testing.T) {
	out, err := MarshalCanonical(map[string]any{
		"int":    42,
		"int64":  int64(1999),
		"number": json.Number("7"),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"int":42,"int64":1999,"number":7}`, string(out))
}

// TestMarshalCanonical_RejectsFloats tests the integer-only rule.
func TestMarshalCanonical_RejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(float64(1.5))
	require.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"price": 19.99})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")
}

// TestMarshalCanonical_RejectsNull tests that absence must be expressed
// by omission, never by null.
func TestMarshalCanonical_RejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	require.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"cover": nil})
	require.Error(t, err)

	_, err = MarshalCanonical([]any{"a", nil})
	require.Error(t, err)
}

// TestMarshalCanonical_Nested tests arrays and objects together.
func TestMarshalCanonical_Nested(t *testing.T) {
	out, err := MarshalCanonical(map[string]any{
		"steps": []any{
			map[string]any{"id": "s-1", "blocks": []any{}},
		},
		"isPublished": false,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"isPublished":false,"steps":[{"blocks":[],"id":"s-1"}]}`, string(out))
}
