// Package autosave owns durability for an editing session: it watches the
// editor for structural changes, debounces bursts, migrates inline assets,
// enforces tier quotas, and commits the document to the store.
//
// # State machine
//
// Idle -> Pending (a change armed the debounce timer)
// Pending -> Committing (the timer fired or a flush was requested)
// Committing -> Idle (success or failure; failures surface to the caller,
// they are never silently retried)
//
// # Ordering
//
// A commit operates on the document as of the moment the timer fired or the
// flush was requested. Edits made while a commit is in flight are picked up
// by the next debounce cycle; they are never interleaved into the in-flight
// payload and never lost. There is at most one commit in flight per
// document: a flush arriving mid-commit waits for it to finish.
//
// # Idempotence
//
// The committer fingerprints the document after every successful commit and
// skips any commit whose snapshot fingerprints equal. A commit rejected by
// a quota also records its fingerprint, so identical content does not hammer
// a known-failing quota on every debounce cycle; editing the document clears
// the memo.
package autosave
