package throttle

import (
	"sync"
	"time"
)

// DefaultDelay is the window used for resize handling.
const DefaultDelay = 100 * time.Millisecond

// Option configures a Limiter.
type Option func(*config)

type config struct {
	clock Clock
}

// WithClock sets the time source. A nil clock is ignored.
func WithClock(c Clock) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// Limiter rate-limits calls to a single callback. The zero value is not
// usable; create one with [New] or [Wrap].
type Limiter[T any] struct {
	fn    func(T)
	delay time.Duration
	clock Clock

	mu       sync.Mutex
	lastRun  time.Time
	ran      bool
	pending  Timer
	arg      T
	gen      uint64
	disposed bool

	// trailing counts timer-driven invocations still running.
	trailing sync.WaitGroup
}

// New returns a limiter that invokes fn at most once per delay, on the
// leading and trailing edge of each burst. A non-positive delay lets every
// call through immediately.
func New[T any](fn func(T), delay time.Duration, opts ...Option) *Limiter[T] {
	cfg := config{clock: realClock{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Limiter[T]{fn: fn, delay: delay, clock: cfg.clock}
}

// Wrap is a convenience for callers that only need the call and dispose
// functions.
func Wrap[T any](fn func(T), delay time.Duration, opts ...Option) (call func(T), dispose func()) {
	l := New(fn, delay, opts...)
	return l.Call, l.Dispose
}

// Delay returns the limiter's window.
func (l *Limiter[T]) Delay() time.Duration { return l.delay }

// Call requests an invocation of the callback with arg. It runs the callback
// synchronously when the window since the last run has elapsed, and otherwise
// schedules a trailing run that supersedes any earlier pending one.
func (l *Limiter[T]) Call(arg T) {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}

	now := l.clock.Now()
	elapsed := now.Sub(l.lastRun)
	if !l.ran || elapsed >= l.delay {
		l.cancelLocked()
		l.lastRun, l.ran = now, true
		l.mu.Unlock()
		l.fn(arg)
		return
	}

	l.cancelLocked()
	l.arg = arg
	gen := l.gen
	l.pending = l.clock.AfterFunc(l.delay-elapsed, func() { l.fire(gen) })
	l.mu.Unlock()
}

// fire runs the trailing invocation scheduled under generation gen. A timer
// that was superseded after it had already started firing finds a newer
// generation and does nothing.
func (l *Limiter[T]) fire(gen uint64) {
	l.mu.Lock()
	if l.disposed || l.pending == nil || gen != l.gen {
		l.mu.Unlock()
		return
	}
	arg := l.takeLocked()
	l.lastRun, l.ran = l.clock.Now(), true
	l.trailing.Add(1)
	l.mu.Unlock()
	defer l.trailing.Done()
	l.fn(arg)
}

// Pending reports whether a trailing invocation is scheduled.
func (l *Limiter[T]) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending != nil
}

// Flush runs a pending trailing invocation now instead of at its scheduled
// time. It reports whether there was one.
func (l *Limiter[T]) Flush() bool {
	l.mu.Lock()
	if l.disposed || l.pending == nil {
		l.mu.Unlock()
		return false
	}
	l.pending.Stop()
	arg := l.takeLocked()
	l.lastRun, l.ran = l.clock.Now(), true
	l.mu.Unlock()
	l.fn(arg)
	return true
}

// Dispose cancels any pending invocation and waits for a trailing
// invocation that has already started to return. Calls made after Dispose
// are dropped. Dispose is idempotent. It must not be called from inside a
// trailing invocation of the same limiter.
func (l *Limiter[T]) Dispose() {
	l.mu.Lock()
	l.cancelLocked()
	l.disposed = true
	l.mu.Unlock()
	l.trailing.Wait()
}

// cancelLocked stops the pending timer, if any, and advances the generation
// so a timer already in flight cannot run.
func (l *Limiter[T]) cancelLocked() {
	if l.pending != nil {
		l.pending.Stop()
		l.pending = nil
	}
	var zero T
	l.arg = zero
	l.gen++
}

// takeLocked clears the pending state and returns the remembered argument.
func (l *Limiter[T]) takeLocked() T {
	arg := l.arg
	var zero T
	l.arg = zero
	l.pending = nil
	l.gen++
	return arg
}
