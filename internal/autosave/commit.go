package autosave

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/assets"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/editor"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/store"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/tier"
)

// Committer runs the commit procedure for one document: snapshot, skip
// checks, quota, asset migration, metadata derivation, merge write, and the
// migration feedback into the editor.
//
// Thread-safety: Commit serializes through an internal mutex; there is
// never more than one commit in flight for the document.
type Committer struct {
	docID   string
	ownerID string
	ed      *editor.Editor
	st      *store.Store
	pipe    *assets.Pipeline
	limits  tier.Limits
	log     *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	lastFP    string // fingerprint after the last successful commit
	failedFP  string // fingerprint of content rejected by a quota
	failedErr error  // the quota error to resurface for failedFP
	committed bool   // true once the document has ever been committed
}

// NewCommitter wires a committer for the given document and owner. A nil
// logger defaults to slog.Default; a nil now defaults to time.Now.
func NewCommitter(docID, ownerID string, ed *editor.Editor, st *store.Store, pipe *assets.Pipeline, limits tier.Limits, log *slog.Logger, now func() time.Time) *Committer {
	if log == nil {
		log = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Committer{
		docID:   docID,
		ownerID: ownerID,
		ed:      ed,
		st:      st,
		pipe:    pipe,
		limits:  limits,
		log:     log,
		now:     now,
	}
}

// HasCommitted reports whether the document has ever been committed in this
// session (or was marked as pre-existing via MarkCommitted). The scheduler
// uses this to pick the short first-save window versus the steady window.
func (c *Committer) HasCommitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed
}

// MarkCommitted seeds the committer for a document that already exists in
// the store, so the session starts on the steady debounce window and the
// unchanged content is not rewritten. fp is the fingerprint of the loaded
// document.
func (c *Committer) MarkCommitted(fp string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.committed = true
	c.lastFP = fp
}

// Commit runs one commit attempt against the current editor snapshot.
//
// Returns (false, nil) when the commit was skipped: content unchanged since
// the last successful commit, or nothing meaningful to persist yet.
// Returns (false, err) on quota rejection or persistence failure; the
// fingerprint is not advanced, so identical content retries on the next
// cycle, except quota-rejected content which is memoized until it changes.
func (c *Committer) Commit(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, rev := c.ed.Snapshot()
	fp, err := quiz.Fingerprint(doc)
	if err != nil {
		return false, fmt.Errorf("commit %s: %w", c.docID, err)
	}

	if fp == c.lastFP {
		return false, nil
	}
	if fp == c.failedFP {
		// Same content already failed a quota check; do not hammer the
		// store until the document changes.
		return false, c.failedErr
	}
	if !HasMeaningfulContent(doc) {
		return false, nil
	}

	exists, err := c.st.Exists(ctx, c.docID)
	if err != nil {
		return false, newPersistenceError("check existing record", err)
	}

	if !exists {
		count, err := c.st.CountByOwner(ctx, c.ownerID, false)
		if err != nil {
			return false, newPersistenceError("count drafts", err)
		}
		if !c.limits.AllowsDraft(count) {
			quotaErr := newDraftLimitError(c.ownerID, count, c.limits.DraftLimit)
			c.failedFP = fp
			c.failedErr = quotaErr
			return false, quotaErr
		}
	}

	// Blob authorization reads the document record to check ownership, so
	// a brand-new document with inline assets needs a skeleton record in
	// place before any upload can succeed.
	if !exists && assets.HasInlineAssets(doc) {
		if err := c.st.Set(ctx, c.docID, c.skeletonRecord(), false); err != nil {
			return false, newPersistenceError("write skeleton record", err)
		}
		exists = true
	}

	migrated, moved, err := c.pipe.Migrate(ctx, c.docID, doc)
	if err != nil {
		return false, newPersistenceError("migrate assets", err)
	}

	rec, err := c.buildRecord(migrated, !exists)
	if err != nil {
		return false, fmt.Errorf("commit %s: %w", c.docID, err)
	}
	if err := c.st.Set(ctx, c.docID, rec, true); err != nil {
		return false, newPersistenceError("write record", err)
	}

	if moved > 0 {
		// Feed durable references back into the session so the next
		// commit fingerprints (and never re-migrates) the same assets.
		// The swap is revision-guarded: edits made while the commit was
		// in flight win over the feedback, and the next cycle migrates
		// the remaining inline assets to the same paths.
		c.ed.ReplaceIfRevision(migrated, rev)
		fp, err = quiz.Fingerprint(migrated)
		if err != nil {
			return false, fmt.Errorf("commit %s: %w", c.docID, err)
		}
	}

	c.lastFP = fp
	c.failedFP = ""
	c.failedErr = nil
	c.committed = true
	c.log.Debug("committed document",
		"doc", c.docID,
		"revision", rev,
		"migrated_assets", moved)
	return true, nil
}

// skeletonRecord is the minimal record persisted before asset migration of
// a brand-new document: identity and ownership, empty structural payload.
func (c *Committer) skeletonRecord() store.Record {
	ts := c.now().UTC().Format(time.RFC3339)
	return store.Record{
		"id":          c.docID,
		"ownerId":     c.ownerID,
		"steps":       []any{},
		"outcomes":    []any{},
		"isPublished": false,
		"createdAt":   ts,
		"updatedAt":   ts,
	}
}

// buildRecord assembles the merge payload: derived top-level metadata plus
// the migrated structural document. Fields the core does not own (publish
// state, prior published snapshot) are absent here and survive the merge.
func (c *Committer) buildRecord(doc *quiz.Document, creating bool) (store.Record, error) {
	structural, err := structuralPayload(doc)
	if err != nil {
		return nil, err
	}

	rec := store.Record{
		"id":       c.docID,
		"ownerId":  c.ownerID,
		"steps":    structural["steps"],
		"outcomes": structural["outcomes"],
	}
	for k, v := range DeriveMetadata(doc) {
		rec[k] = v
	}

	ts := c.now().UTC().Format(time.RFC3339)
	rec["updatedAt"] = ts
	if creating {
		rec["createdAt"] = ts
		rec["isPublished"] = false
	}
	return store.StripNulls(rec), nil
}

// structuralPayload converts the document to JSON-shaped maps, keeping
// numbers as json.Number so the record round-trips without floats.
func structuralPayload(doc *quiz.Document) (map[string]any, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var generic map[string]any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return generic, nil
}

// HasMeaningfulContent reports whether the document is worth persisting: at
// least one non-fixed step, or at least one outcome, or an intro heading
// with a non-empty title or description. A document of untouched default
// steps is never committed.
func HasMeaningfulContent(doc *quiz.Document) bool {
	for _, s := range doc.Steps {
		if !s.IsFixed {
			return true
		}
	}
	if len(doc.Outcomes) > 0 {
		return true
	}
	intro := doc.IntroIndex()
	if intro < 0 {
		return false
	}
	if h := doc.Steps[intro].HeadingBlock(); h != nil {
		// The starter heading of a fresh document is not content.
		if (h.Title != "" && h.Title != quiz.DefaultIntroTitle) || h.Description != "" {
			return true
		}
	}
	return false
}

// DeriveMetadata locates well-known blocks in well-known steps and lifts
// them to top-level record fields: the intro heading becomes title and
// description, the intro media block becomes the cover reference, and the
// first lead-capture step's fields block becomes the lead capture config.
// Every derived key is always emitted, empty when its source block is
// absent, so the merge write overwrites values whose source was deleted
// instead of preserving them forever. Never nulls.
func DeriveMetadata(doc *quiz.Document) map[string]any {
	title, description, cover := "", "", ""
	if intro := doc.IntroIndex(); intro >= 0 {
		step := doc.Steps[intro]
		if h := step.HeadingBlock(); h != nil {
			title = h.Title
			description = h.Description
		}
		if m := step.MediaBlock(); m != nil {
			cover = m.URL
		}
	}
	// The merge write deep-merges nested maps, so the disabled shape
	// carries every key a previous enabled shape may have written.
	meta := map[string]any{
		"title":       title,
		"description": description,
		"coverUrl":    cover,
		"leadCapture": map[string]any{
			"enabled": false,
			"stepId":  "",
			"fields":  []any{},
		},
	}

	for _, s := range doc.Steps {
		if s.Type != quiz.StepLeadCapture {
			continue
		}
		f := s.FieldsBlock()
		if f == nil {
			break
		}
		fields := make([]any, 0, len(f.Fields))
		for _, field := range f.Fields {
			fields = append(fields, map[string]any{
				"id":       field.ID,
				"label":    field.Label,
				"kind":     string(field.Kind),
				"required": field.Required,
			})
		}
		meta["leadCapture"] = map[string]any{
			"enabled": true,
			"stepId":  s.ID,
			"fields":  fields,
		}
		break
	}
	return meta
}

// LoadFingerprint fetches the stored record for a document and computes the
// fingerprint of its structural payload. Used when resuming an editing
// session over an existing document: the committer is seeded with it so the
// first unchanged cycle skips.
func LoadFingerprint(ctx context.Context, st *store.Store, docID string) (string, error) {
	rec, err := st.Get(ctx, docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	doc, err := DocumentFromRecord(rec)
	if err != nil {
		return "", err
	}
	return quiz.Fingerprint(doc)
}

// DocumentFromRecord decodes the structural payload of a stored record.
func DocumentFromRecord(rec store.Record) (*quiz.Document, error) {
	payload := map[string]any{
		"steps":    rec["steps"],
		"outcomes": rec["outcomes"],
	}
	if payload["steps"] == nil {
		payload["steps"] = []any{}
	}
	if payload["outcomes"] == nil {
		payload["outcomes"] = []any{}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode record payload: %w", err)
	}
	var doc quiz.Document
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("decode record payload: %w", err)
	}
	return &doc, nil
}
