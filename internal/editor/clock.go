package editor

import "sync/atomic"

// revisionClock is a monotonic logical clock stamping document revisions.
//
// Every committed mutation gets a strictly increasing revision number.
// The autosave scheduler uses revisions (not wall time) to tell which
// snapshot a commit was computed from.
//
// Thread-safety: safe for concurrent use via atomic operations, though the
// editor's single-writer design means one goroutine typically calls next().
type revisionClock struct {
	rev atomic.Int64
}

// next returns the next revision number and advances the clock.
func (c *revisionClock) next() int64 {
	return c.rev.Add(1)
}

// current returns the latest revision without advancing.
func (c *revisionClock) current() int64 {
	return c.rev.Load()
}
