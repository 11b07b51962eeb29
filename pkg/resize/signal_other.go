//go:build !unix

package resize

import (
	"os"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// DefaultColumnPixels converts terminal columns to pixels.
const DefaultColumnPixels = 8.0

// SignalSource is not available on this platform.
type SignalSource struct{ ChanSource }

// NewSignalSource reports UNSUPPORTED: there is no SIGWINCH here.
func NewSignalSource(f *os.File, scale float64) (*SignalSource, error) {
	return nil, errors.New(errors.ErrCodeUnsupported, "terminal resize signals are not supported on this platform")
}
