package autosave

import (
	"context"
	"fmt"
	"time"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/store"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/tier"
)

// Publish transitions a stored document to published, after checking the
// owner's published-document quota. Publishing an already-published
// document is a no-op. On quota rejection the document's state is left
// unchanged and a distinguishable PublishLimitReached error is returned.
//
// The current structural payload is snapshotted into publishedSnapshot so
// later draft edits do not alter what viewers see.
//
// The quota check is read-then-act, not transactional. Two publishes racing
// through the same narrow window can overshoot the limit by one; limits are
// product guardrails, not security boundaries.
func Publish(ctx context.Context, st *store.Store, limits tier.Limits, docID, ownerID string, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}

	rec, err := st.Get(ctx, docID)
	if err != nil {
		return newPersistenceError(fmt.Sprintf("load document %s", docID), err)
	}
	if owner, _ := rec["ownerId"].(string); owner != ownerID {
		return newPersistenceError(fmt.Sprintf("document %s is not owned by %s", docID, ownerID), nil)
	}
	if published, _ := rec["isPublished"].(bool); published {
		return nil
	}

	count, err := st.CountByOwner(ctx, ownerID, true)
	if err != nil {
		return newPersistenceError("count published documents", err)
	}
	if !limits.AllowsPublish(count) {
		return newPublishLimitError(ownerID, count, limits.PublishedLimit)
	}

	snapshot := map[string]any{}
	if steps, ok := rec["steps"]; ok {
		snapshot["steps"] = steps
	}
	if outcomes, ok := rec["outcomes"]; ok {
		snapshot["outcomes"] = outcomes
	}

	ts := now().UTC().Format(time.RFC3339)
	patch := store.Record{
		"isPublished":       true,
		"publishedAt":       ts,
		"updatedAt":         ts,
		"publishedSnapshot": snapshot,
	}
	if err := st.Set(ctx, docID, patch, true); err != nil {
		return newPersistenceError(fmt.Sprintf("publish document %s", docID), err)
	}
	return nil
}
