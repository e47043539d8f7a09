package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Set writes the record for the given id.
//
// With merge=true, the incoming record is deep-merged over the stored one:
// nested maps merge key by key, scalar and array fields are replaced. This
// is how the autosave pipeline preserves fields it does not own. With
// merge=false the record replaces whatever was stored.
//
// Records containing nil values are rejected with ErrNilValue. The
// denormalized owner_id and is_published columns are kept in sync with the
// record's ownerId and isPublished fields.
func (s *Store) Set(ctx context.Context, id string, rec Record, merge bool) error {
	if p := findNil("record", rec); p != "" {
		return fmt.Errorf("set %s: %w at %s", id, ErrNilValue, p)
	}

	final := rec
	if merge {
		existing, err := s.Get(ctx, id)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("set %s: read existing: %w", id, err)
		}
		if existing != nil {
			final = deepMerge(existing, rec)
		}
	}

	encoded, err := marshalRecord(final)
	if err != nil {
		return fmt.Errorf("set %s: %w", id, err)
	}

	ownerID, _ := final["ownerId"].(string)
	published := false
	if b, ok := final["isPublished"].(bool); ok {
		published = b
	}
	createdAt, _ := final["createdAt"].(string)
	updatedAt, _ := final["updatedAt"].(string)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quizzes (id, owner_id, is_published, created_at, updated_at, record)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			is_published = excluded.is_published,
			updated_at = excluded.updated_at,
			record = excluded.record
	`,
		id, ownerID, boolToInt(published), createdAt, updatedAt, string(encoded),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", id, err)
	}
	return nil
}

// Delete removes the record for the given id. Deleting a missing record is
// not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// marshalRecord encodes a record without HTML escaping, so block content
// containing < > & survives a round trip byte-identical.
func marshalRecord(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	out := buf.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
