package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	tgerrors "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
	tgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/render"
	"github.com/matzehuels/tilegrid/pkg/resize"
	"github.com/matzehuels/tilegrid/pkg/throttle"
)

type watchOpts struct {
	grid     gridFlags
	throttle time.Duration
	scale    float64 // pixels per terminal column
	plain    bool
}

// watchCommand re-validates a layout every time the terminal is resized.
func (c *CLI) watchCommand() *cobra.Command {
	var opts watchOpts

	cmd := &cobra.Command{
		Use:   "watch <layout>",
		Short: "Re-validate a layout live as the terminal is resized",
		Long: `Watch treats the terminal as the screen: its width (in columns times --scale
pixels) drives the column count, and the layout is re-validated and redrawn
on every resize. Resize bursts are throttled so the grid is recomputed at
most once per --throttle window, always ending on the final size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.throttle == 0 {
				opts.throttle = c.Config.Watch.Throttle.Duration
			}
			layout, err := tgio.ImportLayout(args[0])
			if err != nil {
				return err
			}
			popts := opts.grid.options(c.Config, layout)
			if opts.plain {
				return c.runWatchPlain(cmd.Context(), cmd.OutOrStdout(), layout.Items, popts, &opts)
			}
			return c.runWatchTUI(cmd.Context(), args[0], layout.Items, popts, &opts)
		},
	}

	opts.grid.register(cmd.Flags())
	cmd.Flags().DurationVar(&opts.throttle, "throttle", 0, "minimum time between recomputes (default 100ms)")
	cmd.Flags().Float64Var(&opts.scale, "scale", resize.DefaultColumnPixels, "pixels per terminal column")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print one line per recompute instead of the interactive view")
	return cmd
}

// =============================================================================
// Interactive view
// =============================================================================

// recomputeMsg carries one throttled resize into the bubbletea loop.
type recomputeMsg struct {
	width   float64
	columns int
}

// mailbox hands the latest recompute to the model. Older undelivered values
// are dropped.
type mailbox struct {
	ch   chan recomputeMsg
	done chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{ch: make(chan recomputeMsg, 1), done: make(chan struct{})}
}

func (m *mailbox) put(msg recomputeMsg) {
	for {
		select {
		case m.ch <- msg:
			return
		default:
			select {
			case <-m.ch:
			default:
			}
		}
	}
}

// next waits for the following recompute.
func (m *mailbox) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.ch:
			return msg
		case <-m.done:
			return nil
		}
	}
}

func (m *mailbox) close() { close(m.done) }

// watchModel is the bubbletea model behind "tilegrid watch".
type watchModel struct {
	title string
	items []grid.Item
	opts  pipeline.Options
	scale float64
	sub   *resize.Subscription
	box   *mailbox

	width      float64
	columns    int
	result     grid.Result
	preview    string
	recomputes int
}

func newWatchModel(title string, items []grid.Item, opts pipeline.Options, wo *watchOpts, clock throttle.Clock) *watchModel {
	m := &watchModel{
		title: title,
		items: items,
		opts:  opts,
		scale: wo.scale,
		box:   newMailbox(),
	}
	if m.scale <= 0 {
		m.scale = resize.DefaultColumnPixels
	}
	m.sub = resize.New(resize.NewChanSource(nil), func(width float64, columns int) {
		m.box.put(recomputeMsg{width: width, columns: columns})
	}, resize.Options{
		Delay:     wo.throttle,
		CellWidth: opts.CellWidth,
		Gap:       opts.Gap,
		Clock:     clock,
	})
	return m
}

func (m *watchModel) Init() tea.Cmd {
	return m.box.next()
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.sub.Notify(float64(msg.Width) * m.scale)
	case recomputeMsg:
		m.recompute(msg)
		return m, m.box.next()
	}
	return m, nil
}

func (m *watchModel) recompute(msg recomputeMsg) {
	m.width = msg.width
	m.columns = msg.columns
	if m.opts.Columns > 0 {
		m.columns = m.opts.Columns
	}
	m.result = grid.Validate(m.items, m.columns)
	preview, err := render.RenderText(render.Build(m.items, m.columns, m.opts.RenderOptions()))
	if err != nil {
		preview = StyleError.Render(tgerrors.UserMessage(err))
	}
	m.preview = preview
	m.recomputes++
}

var (
	watchValid   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	watchInvalid = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

func (m *watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("resize the terminal to re-flow  q quit"))
	b.WriteString("\n\n")

	if m.recomputes == 0 {
		b.WriteString(StyleDim.Render("waiting for terminal size..."))
		return b.String()
	}

	status := watchValid.Render(iconSuccess + " valid")
	if !m.result.Valid {
		status = watchInvalid.Render(fmt.Sprintf("%s %d errors", iconError, len(m.result.Errors)))
	}
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		StyleNumber.Render(fmt.Sprintf("%gpx", m.width)),
		StyleValue.Render(fmt.Sprintf("%d columns", m.columns)),
		status))
	for _, e := range m.result.Errors {
		b.WriteString(StyleError.Render("  "+e.Message) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.preview)
	return b.String()
}

func (m *watchModel) close() {
	m.sub.Close()
	m.box.close()
}

func (c *CLI) runWatchTUI(ctx context.Context, input string, items []grid.Item, opts pipeline.Options, wo *watchOpts) error {
	m := newWatchModel(appName+" watch · "+input, items, opts, wo, nil)
	defer m.close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// =============================================================================
// Plain output
// =============================================================================

// runWatchPlain prints one status line per recompute until ctx ends.
func (c *CLI) runWatchPlain(ctx context.Context, out io.Writer, items []grid.Item, opts pipeline.Options, wo *watchOpts) error {
	src, err := resize.NewSignalSource(os.Stdout, wo.scale)
	if err != nil {
		return err
	}
	sub := resize.New(src, func(width float64, columns int) {
		if opts.Columns > 0 {
			columns = opts.Columns
		}
		res := grid.Validate(items, columns)
		if res.Valid {
			printSuccess(out, "%gpx · %d columns · valid", width, columns)
			return
		}
		printError(out, "%gpx · %d columns · %d errors", width, columns, len(res.Errors))
		for _, e := range res.Errors {
			printDetail(out, "%s", e.Message)
		}
	}, resize.Options{
		Delay:     wo.throttle,
		CellWidth: opts.CellWidth,
		Gap:       opts.Gap,
	})
	loggerFromContext(ctx).Info("watching terminal width", "items", len(items))
	return sub.Run(ctx)
}
