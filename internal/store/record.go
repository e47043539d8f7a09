package store

import (
	"errors"
	"fmt"
)

// Record is a JSON-like nested map holding one quiz document plus its
// metadata. Well-known keys the core reads and writes:
//
//	id, ownerId, title, description, coverUrl, leadCapture,
//	steps, outcomes, isPublished, publishedAt, publishedSnapshot,
//	createdAt, updatedAt
//
// Fields the core does not own (publish state, prior published snapshot,
// timestamps set by others) survive merge writes untouched.
type Record = map[string]any

// ErrNotFound is returned by Get when no record exists for the id.
var ErrNotFound = errors.New("store: record not found")

// ErrNilValue is returned by Set when the record contains a nil value at
// any depth. Records express absence by omitting the key.
var ErrNilValue = errors.New("store: record contains nil value")

// findNil walks a record and returns the path of the first nil value
// found, or "" when the record is clean.
func findNil(path string, v any) string {
	switch val := v.(type) {
	case nil:
		return path
	case map[string]any:
		for k, elem := range val {
			if p := findNil(path+"."+k, elem); p != "" {
				return p
			}
		}
	case []any:
		for i, elem := range val {
			if p := findNil(fmt.Sprintf("%s[%d]", path, i), elem); p != "" {
				return p
			}
		}
	}
	return ""
}

// StripNulls returns a copy of the record with every nil value removed, at
// any depth. Callers that assemble records from optional fields run this
// before Set so a missing cover image (for example) is an absent key rather
// than a rejected write.
func StripNulls(rec Record) Record {
	out, _ := stripNullsValue(rec).(map[string]any)
	return out
}

func stripNullsValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			if elem == nil {
				continue
			}
			out[k] = stripNullsValue(elem)
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, elem := range val {
			if elem == nil {
				continue
			}
			out = append(out, stripNullsValue(elem))
		}
		return out
	default:
		return v
	}
}

// deepMerge merges src into dst recursively. Nested maps merge key by key;
// everything else (including slices) is replaced wholesale. dst is not
// modified; the merged result is returned.
func deepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		if srcMap, ok := v.(map[string]any); ok {
			if dstMap, ok := out[k].(map[string]any); ok {
				out[k] = deepMerge(dstMap, srcMap)
				continue
			}
		}
		out[k] = v
	}
	return out
}
