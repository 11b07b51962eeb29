//go:build unix

package resize

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// DefaultColumnPixels converts terminal columns to pixels when the
// terminal does not report its pixel size.
const DefaultColumnPixels = 8.0

// SignalSource reports the width of a terminal on SIGWINCH. It emits the
// current width once on start.
type SignalSource struct {
	fd      int
	scale   float64
	sig     chan os.Signal
	out     chan float64
	done    chan struct{}
	once    sync.Once
	stopped sync.WaitGroup
}

// NewSignalSource watches the terminal on f. scale is pixels per column and
// defaults to [DefaultColumnPixels].
func NewSignalSource(f *os.File, scale float64) (*SignalSource, error) {
	if scale <= 0 {
		scale = DefaultColumnPixels
	}
	fd := int(f.Fd())
	if _, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ); err != nil {
		return nil, fmt.Errorf("%s is not a terminal: %w", f.Name(), err)
	}

	s := &SignalSource{
		fd:    fd,
		scale: scale,
		sig:   make(chan os.Signal, 1),
		out:   make(chan float64, 1),
		done:  make(chan struct{}),
	}
	signal.Notify(s.sig, syscall.SIGWINCH)

	s.stopped.Add(1)
	go s.loop()
	return s, nil
}

func (s *SignalSource) loop() {
	defer s.stopped.Done()
	defer close(s.out)

	if !s.emit() {
		return
	}
	for {
		select {
		case <-s.done:
			return
		case <-s.sig:
			if !s.emit() {
				return
			}
		}
	}
}

func (s *SignalSource) emit() bool {
	w, ok := s.width()
	if !ok {
		return true
	}
	select {
	case s.out <- w:
		return true
	case <-s.done:
		return false
	}
}

// width prefers the pixel width the terminal reports and falls back to
// columns times scale.
func (s *SignalSource) width() (float64, bool) {
	ws, err := unix.IoctlGetWinsize(s.fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, false
	}
	if ws.Xpixel > 0 {
		return float64(ws.Xpixel), true
	}
	return float64(ws.Col) * s.scale, true
}

// Widths implements Source.
func (s *SignalSource) Widths() <-chan float64 { return s.out }

// Close stops signal delivery and waits for the reader goroutine.
func (s *SignalSource) Close() error {
	s.once.Do(func() {
		signal.Stop(s.sig)
		close(s.done)
	})
	s.stopped.Wait()
	return nil
}
