// Package store provides SQLite-backed durable storage for quiz document
// records.
//
// A record is a JSON-like nested map. The store offers the narrow contract
// the autosave pipeline depends on:
//
//   - Get(id) -> record | ErrNotFound
//   - Set(id, record, merge) with deep-merge semantics on merge=true
//   - Query(ownerId, isPublished) -> records
//   - CountByOwner(ownerId, isPublished) for quota checks
//
// Set rejects records containing nil values. Absent means absent; callers
// strip optional fields (see StripNulls) instead of writing null sentinels.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// The connection pool is limited to a single connection because SQLite
// supports one writer at a time; this avoids SQLITE_BUSY under load.
package store
