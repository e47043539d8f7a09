// Package quiz defines the ordered document model: typed content blocks,
// the steps and outcomes that own them, and the whole-document container.
//
// # Structural Invariants
//
// A Document always has exactly one intro step at index 0 and exactly one
// result step at the last index. Both are fixed: they can never be deleted,
// duplicated, or reordered. Every other step lives strictly between them.
// Once a document has any outcome, it must keep at least one.
//
// Every Block is owned by exactly one container (a Step or an Outcome).
// Reordering moves a block within its owner; it never changes ownership.
//
// The package is pure data plus invariant predicates. Mutation policy lives
// in internal/editor; this package only answers "would that move be legal".
//
// # Identity
//
// All IDs are generated through the IDGenerator interface. Production code
// uses UUIDv7 (time-sortable); tests use FixedGenerator for deterministic
// output.
//
// # Fingerprints
//
// Fingerprint computes a content-addressed hash of a document over canonical
// JSON (sorted keys, NFC-normalized strings, no HTML escaping). Two documents
// with equal structure always produce equal fingerprints, which is what the
// autosave scheduler uses to skip redundant commits.
package quiz
