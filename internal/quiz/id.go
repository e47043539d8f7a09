package quiz

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces unique identifiers for documents, steps, outcomes,
// blocks, and item-level entries.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator generates time-sortable UUIDv7 identifiers.
//
// UUIDv7 embeds a timestamp in the most significant bits, so IDs created
// later in an editing session sort after earlier ones. That keeps blob
// storage listings and debug output in creation order for free.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// NewID returns a new UUIDv7 as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined IDs for testing.
//
// This enables deterministic test execution and golden file comparison.
// Tests provide a known sequence and verify exact output.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
//
// Example:
//
//	gen := NewFixedGenerator("blk-1", "blk-2")
//	gen.NewID() // "blk-1"
//	gen.NewID() // "blk-2"
//	gen.NewID() // panic: all ids exhausted
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// NewID returns the next predetermined id.
//
// Panics when the sequence is exhausted. Fail-fast catches tests that
// allocate more IDs than they declared.
func (g *FixedGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// SeqGenerator returns "<prefix>-1", "<prefix>-2", ... without a declared
// bound. Useful in tests that allocate an unpredictable number of IDs.
type SeqGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSeqGenerator creates a sequential generator with the given prefix.
func NewSeqGenerator(prefix string) *SeqGenerator {
	return &SeqGenerator{prefix: prefix}
}

// NewID returns the next sequential id.
func (g *SeqGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
