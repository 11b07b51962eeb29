package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tgerrors "github.com/matzehuels/tilegrid/pkg/errors"
)

// ErrReported marks an error whose details were already printed. main exits
// non-zero without printing it again.
var ErrReported = errors.New("already reported")

type reportedError struct{ err error }

func (e *reportedError) Error() string   { return e.err.Error() }
func (e *reportedError) Unwrap() []error { return []error{e.err, ErrReported} }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// guard runs one render step. A panic becomes an INTERNAL_ERROR and an
// invalid layout is shown as a recovery panel on w instead of failing with a
// raw error.
func guard(w io.Writer, step func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = tgerrors.New(tgerrors.ErrCodeInternal, "render step panicked: %v", r)
		}
		if tgerrors.Is(err, tgerrors.ErrCodeInvalidLayout) {
			fmt.Fprintln(w, layoutErrorPanel(err))
			err = reported(err)
		}
	}()
	return step()
}

var (
	panelTitle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	panelHint  = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
)

// layoutErrorPanel renders an INVALID_LAYOUT error as a bordered panel.
func layoutErrorPanel(err error) string {
	var b strings.Builder
	b.WriteString(panelTitle.Render("Grid layout error"))
	b.WriteString("\n\n")

	if details := tgerrors.Details(err); len(details) > 0 {
		for _, d := range details {
			b.WriteString(styleIconError.Render(iconError) + " " + d.Message + "\n")
		}
	} else {
		b.WriteString(tgerrors.UserMessage(err) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(panelHint.Render("Fix the items above and run the command again."))
	return stylePanel.Render(b.String())
}
