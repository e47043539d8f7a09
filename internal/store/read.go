package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Get returns the record stored for the given id, or ErrNotFound.
//
// Numbers decode as json.Number so integer fields never degrade to float64
// on the way through a read-modify-write cycle.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	var encoded string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM quizzes WHERE id = ?`, id).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return unmarshalRecord([]byte(encoded))
}

// Query returns all records for the owner with the given publish state,
// ordered by creation time then id for deterministic results.
func (s *Store) Query(ctx context.Context, ownerID string, published bool) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record FROM quizzes
		WHERE owner_id = ? AND is_published = ?
		ORDER BY created_at ASC, id ASC
	`, ownerID, boolToInt(published))
	if err != nil {
		return nil, fmt.Errorf("query owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("query owner %s: scan: %w", ownerID, err)
		}
		rec, err := unmarshalRecord([]byte(encoded))
		if err != nil {
			return nil, fmt.Errorf("query owner %s: %w", ownerID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query owner %s: %w", ownerID, err)
	}
	return records, nil
}

// CountByOwner returns how many records the owner has in the given publish
// state. Used by the quota checks before creating or publishing a document.
func (s *Store) CountByOwner(ctx context.Context, ownerID string, published bool) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM quizzes WHERE owner_id = ? AND is_published = ?
	`, ownerID, boolToInt(published)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count owner %s: %w", ownerID, err)
	}
	return n, nil
}

func unmarshalRecord(encoded []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}
