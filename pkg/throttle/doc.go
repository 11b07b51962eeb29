// Package throttle coalesces bursts of calls into bounded-frequency
// invocations of a callback, firing on both the leading and trailing edge.
//
// # Behaviour
//
// A [Limiter] wraps one callback and a delay. When [Limiter.Call] arrives and
// at least delay has passed since the callback last ran (or it never ran), the
// callback runs immediately on the caller's goroutine. Otherwise the call is
// deferred until delay has passed since that last run; further calls inside
// the window replace both the deferred timer and its argument, so the trailing
// invocation always sees the most recent argument of the burst.
//
//	t=0    Call("a")  → runs "a"
//	t=50   Call("b")  → deferred to t=100
//	t=80   Call("c")  → replaces "b", still due at t=100
//	t=100             → runs "c"
//
// # Lifecycle
//
// Each limiter owns its state; two wrapped callbacks never share it.
// [Limiter.Dispose] cancels any pending trailing call, waits for one that is
// already running, and makes later calls no-ops. Owners should dispose when the scope that created the limiter ends:
//
//	call, dispose := throttle.Wrap(onResize, 100*time.Millisecond)
//	defer dispose()
//
// # Concurrency
//
// Trailing calls fire on a timer goroutine, so the limiter guards its state
// with a mutex. The callback itself always runs outside that lock and may call
// back into the limiter, though a trailing run must not dispose it. Callers that need the callback serialised with their
// own state must synchronise inside the callback.
package throttle
