package autosave

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/editor"
)

// Debounce window defaults. A document that has never been committed saves
// quickly so a brand-new draft is not lost to a closed tab; after the first
// commit the window stretches to batch bursts of edits.
const (
	DefaultFirstSaveWindow = 3 * time.Second
	DefaultSteadyWindow    = 30 * time.Second
)

// Scheduler debounces editor changes into commits.
//
// Thread-safety model:
//   - Run(): must be called from exactly one goroutine
//   - ForceFlush(), Cancel(), IsSaving(): safe from any goroutine
//
// All commits execute inside the Run loop, so there is never more than one
// in flight; a ForceFlush arriving while a commit runs is served after it
// finishes.
type Scheduler struct {
	ed        *editor.Editor
	committer *Committer
	log       *slog.Logger

	firstWindow  time.Duration
	steadyWindow time.Duration
	onError      func(error)

	flushCh  chan chan error
	cancelCh chan struct{}
	done     chan struct{}
	saving   atomic.Bool
}

// ErrSchedulerStopped reports a flush requested after the Run loop exited.
// The loop performs its own best-effort flush on the way out, so there is
// nothing left for the caller to save.
var ErrSchedulerStopped = errors.New("autosave: scheduler stopped")

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithWindows overrides the debounce windows. Tests use millisecond
// windows; production keeps the defaults.
func WithWindows(first, steady time.Duration) Option {
	return func(s *Scheduler) {
		s.firstWindow = first
		s.steadyWindow = steady
	}
}

// WithOnError installs a callback for commit failures on the debounce path,
// where no caller is waiting for a result. ForceFlush errors are returned
// to the flusher and do not reach the callback.
func WithOnError(fn func(error)) Option {
	return func(s *Scheduler) {
		s.onError = fn
	}
}

// NewScheduler creates a scheduler observing ed and committing through
// committer. A nil logger defaults to slog.Default.
func NewScheduler(ed *editor.Editor, committer *Committer, log *slog.Logger, opts ...Option) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	s := &Scheduler{
		ed:           ed,
		committer:    committer,
		log:          log,
		firstWindow:  DefaultFirstSaveWindow,
		steadyWindow: DefaultSteadyWindow,
		flushCh:      make(chan chan error),
		cancelCh:     make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run is the scheduler event loop. It blocks until ctx is cancelled, then
// performs one best-effort flush and returns ctx.Err().
//
// Each editor change (re)arms the debounce timer: pure debounce, a fresh
// change always cancels and restarts the countdown. Content is never
// last-write-wins, only the timer is; changes accumulate in the editor and
// the commit snapshots whatever is current when it starts.
func (s *Scheduler) Run(ctx context.Context) error {
	defer close(s.done)

	var timer *time.Timer
	var timerC <-chan time.Time

	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	changes := s.ed.Changes()
	for {
		select {
		case <-ctx.Done():
			stopTimer()
			s.teardownFlush()
			return ctx.Err()

		case <-changes:
			stopTimer()
			window := s.steadyWindow
			if !s.committer.HasCommitted() {
				window = s.firstWindow
			}
			timer = time.NewTimer(window)
			timerC = timer.C

		case <-timerC:
			timer = nil
			timerC = nil
			if err := s.commit(ctx); err != nil {
				s.log.Warn("autosave commit failed", "error", err)
				if s.onError != nil {
					s.onError(err)
				}
			}

		case result := <-s.flushCh:
			stopTimer()
			result <- s.commit(ctx)

		case <-s.cancelCh:
			stopTimer()
		}
	}
}

// ForceFlush cancels any pending debounce timer and commits immediately.
// If a commit is already in flight the flush waits for it, then runs.
// The returned error is the commit's outcome; a skipped commit (unchanged
// or not yet meaningful content) returns nil. Flushing after the Run loop
// exited returns ErrSchedulerStopped.
func (s *Scheduler) ForceFlush(ctx context.Context) error {
	result := make(chan error, 1)
	select {
	case s.flushCh <- result:
	case <-s.done:
		return ErrSchedulerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel clears a pending debounce timer without committing. A commit
// already in flight is not interrupted.
func (s *Scheduler) Cancel() {
	select {
	case s.cancelCh <- struct{}{}:
	default:
	}
}

// Close is the user-initiated end of session: one best-effort flush with a
// bounded wait, failures logged rather than surfaced. Closing a scheduler
// whose Run loop already exited returns immediately; the loop flushed on
// the way out. Callers that want the error use ForceFlush.
func (s *Scheduler) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.ForceFlush(ctx)
	if err != nil && !errors.Is(err, ErrSchedulerStopped) {
		s.log.Warn("close flush failed", "error", err)
	}
}

// IsSaving reports whether a commit is currently in flight. Read-only UI
// feedback; by the time the caller acts on it the answer may have changed.
func (s *Scheduler) IsSaving() bool {
	return s.saving.Load()
}

func (s *Scheduler) commit(ctx context.Context) error {
	s.saving.Store(true)
	defer s.saving.Store(false)

	_, err := s.committer.Commit(ctx)
	return err
}

// teardownFlush is the end-of-session best-effort save: fire-and-forget,
// bounded, outcome logged but not surfaced. The editing session is over;
// nobody is left to act on a failure.
func (s *Scheduler) teardownFlush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.committer.Commit(ctx); err != nil {
		s.log.Warn("teardown flush failed", "error", err)
	}
}
