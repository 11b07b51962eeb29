package resize

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/tilegrid/pkg/grid"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/throttle"
)

// Handler receives a throttled width and the column count it yields.
type Handler func(width float64, columns int)

// Options configures a Subscription. Zero values take defaults.
type Options struct {
	// Delay is the throttle window. Defaults to throttle.DefaultDelay.
	Delay time.Duration

	// CellWidth and Gap feed grid.ColumnCount.
	CellWidth float64
	Gap       float64

	// Clock replaces the wall clock in tests.
	Clock throttle.Clock
}

// Subscription feeds a Source through one throttled handler.
type Subscription struct {
	src     Source
	limiter *throttle.Limiter[float64]
	opts    Options

	mu  sync.Mutex
	ctx context.Context

	closeOnce sync.Once
	closeErr  error
}

// New wraps h with a throttle and binds it to src. Nothing is read until
// Run or Notify is called.
func New(src Source, h Handler, opts Options) *Subscription {
	if opts.Delay == 0 {
		opts.Delay = throttle.DefaultDelay
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = grid.DefaultCellWidth
	}

	s := &Subscription{src: src, opts: opts, ctx: context.Background()}

	var topts []throttle.Option
	if opts.Clock != nil {
		topts = append(topts, throttle.WithClock(opts.Clock))
	}
	s.limiter = throttle.New(func(w float64) {
		cols := grid.ColumnCount(w, s.opts.CellWidth, s.opts.Gap)
		observability.Resize().OnRecompute(s.context(), w, cols)
		h(w, cols)
	}, opts.Delay, topts...)
	return s
}

func (s *Subscription) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// Notify feeds one raw width through the throttle.
func (s *Subscription) Notify(width float64) {
	observability.Resize().OnResize(s.context(), width)
	s.limiter.Call(width)
}

// Pending reports whether a trailing recompute is scheduled.
func (s *Subscription) Pending() bool { return s.limiter.Pending() }

// Run reads the source until it ends or ctx is done, then closes the
// subscription. It returns ctx.Err() on cancellation and nil when the
// source ends.
func (s *Subscription) Run(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	defer s.Close()

	var stop <-chan struct{}
	if cs, ok := s.src.(interface{ Done() <-chan struct{} }); ok {
		stop = cs.Done()
	}

	widths := s.src.Widths()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case w, ok := <-widths:
			if !ok {
				return nil
			}
			s.Notify(w)
		}
	}
}

// Close cancels any pending trailing recompute and closes the source. It is
// safe to call more than once.
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		s.limiter.Dispose()
		s.closeErr = s.src.Close()
	})
	return s.closeErr
}
