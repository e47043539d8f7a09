// Package editor holds the in-memory, single-writer state of one editing
// session: the document plus derived selection state.
//
// An Editor is constructed per session and dependency-injected into
// whatever owns the session. Nothing in this package is global, so multiple
// documents can be edited in isolated editors within one process.
//
// # Mutation model
//
// Every structural operation clones the document, applies the change to the
// clone, and swaps the pointer under the mutex. A snapshot taken before an
// operation is never observably mutated by it. Operations that violate a
// structural invariant are silent no-ops: the prior state stays current,
// the revision does not advance, and no change signal fires.
//
// # Observing changes
//
// Each completed structural mutation bumps a monotonic revision and signals
// a coalescing change channel. The autosave scheduler selects on that
// channel to arm its debounce timer. Selection-only changes (activating a
// step, selecting a block) are derived state and do not signal: they are
// never persisted, so they must not wake the scheduler.
package editor
