package resize

import "sync"

// Source delivers viewport widths in pixels. The channel is closed when the
// source ends.
type Source interface {
	Widths() <-chan float64
	Close() error
}

// ChanSource adapts a caller-owned channel. Close stops the subscription
// from reading but leaves the channel to its owner.
type ChanSource struct {
	ch   <-chan float64
	once sync.Once
	done chan struct{}
}

// NewChanSource wraps ch.
func NewChanSource(ch <-chan float64) *ChanSource {
	return &ChanSource{ch: ch, done: make(chan struct{})}
}

// Widths returns the wrapped channel.
func (s *ChanSource) Widths() <-chan float64 { return s.ch }

// Done is closed by Close.
func (s *ChanSource) Done() <-chan struct{} { return s.done }

// Close implements Source.
func (s *ChanSource) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}
