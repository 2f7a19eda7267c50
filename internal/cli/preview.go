package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pagemarks/pkg/errors"
	"github.com/matzehuels/pagemarks/pkg/geom"
	"github.com/matzehuels/pagemarks/pkg/markers"
	"github.com/matzehuels/pagemarks/pkg/scene"
)

var (
	previewBreakStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewMarkerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewFrameStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true).BorderForeground(colorDim)
	previewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	previewMarginWidth = 8
	previewPageWidth   = 44
	previewMinRows     = 8
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var step float64

	cmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "Scroll through a scene and watch markers re-layout",
		Long: `Scroll through a scene in the terminal.

The document scrolls under the viewport with ↑/↓ (or j/k) and PgUp/PgDn.
Every scroll runs a layout cycle and the margins show the placed markers
next to the page breaks they label. Press v to toggle between scrolling and
paginated flow, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			c.applySceneDefaults(sc)

			m, err := c.newPreviewModel(cmd.Context(), sc, step)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	cmd.Flags().Float64Var(&step, "step", 20, "scroll distance per key press")
	return cmd
}

// previewModel is the bubbletea model behind `pagemarks preview`.
type previewModel struct {
	ctx    context.Context
	scene  *scene.Scene
	layout *markers.Layout
	doc    *scene.DocumentRenderer
	step   float64
	rows   int

	markers map[markers.Edge][]markers.Marker
	breaks  []markers.Anchor
	stats   markers.CycleStats
	err     error
}

// layoutDoneMsg carries the outcome of one layout cycle.
type layoutDoneMsg struct {
	markers map[markers.Edge][]markers.Marker
	breaks  []markers.Anchor
	stats   markers.CycleStats
	err     error
}

func (c *CLI) newPreviewModel(ctx context.Context, sc *scene.Scene, step float64) (previewModel, error) {
	axis, err := geom.ParseAxis(sc.Axis)
	if err != nil {
		return previewModel{}, perrors.Wrap(perrors.ErrCodeInvalidScene, err, "axis")
	}
	if axis != geom.AxisVertical {
		return previewModel{}, perrors.New(perrors.ErrCodeUnsupported, "preview only draws vertical-axis scenes")
	}

	// Log lines would tear the alternate screen.
	l, doc, err := sc.NewLayout(
		markers.WithLogger(log.New(io.Discard)),
		markers.WithRelaxationPasses(c.Config.RelaxationPasses),
		markers.WithFetchTimeout(c.Config.FetchTimeout.Duration),
	)
	if err != nil {
		return previewModel{}, err
	}
	if step <= 0 {
		step = 20
	}
	return previewModel{ctx: ctx, scene: sc, layout: l, doc: doc, step: step, rows: 24}, nil
}

// relayout runs one cycle and reports the placed markers.
func (m previewModel) relayout() tea.Cmd {
	return func() tea.Msg {
		if err := m.layout.UpdatePageBreaks(m.ctx); err != nil {
			return layoutDoneMsg{err: err}
		}
		breaks, _ := m.doc.VisiblePageBreaks(m.ctx, m.layout.Viewport())
		return layoutDoneMsg{
			markers: m.layout.Snapshot(),
			breaks:  breaks,
			stats:   m.layout.LastCycle(),
		}
	}
}

func (m previewModel) Init() tea.Cmd {
	return m.relayout()
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.doc.ScrollBy(-m.step)
		case "down", "j":
			m.doc.ScrollBy(m.step)
		case "pgup":
			m.doc.ScrollBy(-m.scene.Viewport.Height)
		case "pgdown", " ":
			m.doc.ScrollBy(m.scene.Viewport.Height)
		case "home", "g":
			m.doc.ScrollTo(0)
		case "end", "G":
			m.doc.ScrollTo(m.doc.Extent())
		case "v":
			m.doc.SetVertical(!m.doc.IsVerticalLayout())
		default:
			return m, nil
		}
		return m, m.relayout()
	case tea.WindowSizeMsg:
		m.rows = max(msg.Height-6, previewMinRows)
	case layoutDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.markers, m.breaks, m.stats, m.err = msg.markers, msg.breaks, msg.stats, nil
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	flow := "paginated"
	if m.doc.IsVerticalLayout() {
		flow = "scrolling"
	}
	b.WriteString(StyleTitle.Render(m.scene.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  scroll %s/%s · %s",
		formatFloat(m.doc.Scroll()), formatFloat(m.doc.Extent()), flow)))
	b.WriteString("\n\n")

	b.WriteString(previewFrameStyle.Render(strings.Join(m.renderRows(), "\n")))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render("layout: " + m.err.Error()))
	} else {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d markers · %d dropped · %d passes",
			m.stats.TotalMarkers(), m.stats.Dropped, m.stats.TotalPasses())))
	}
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("↑/↓ scroll  pgup/pgdn page  v flow  q quit"))
	return b.String()
}

// renderRows draws the viewport as text rows: leading margin, page area with
// a rule at every visible page break, trailing margin.
func (m previewModel) renderRows() []string {
	vp := m.scene.Viewport
	scale := vp.Height / float64(m.rows)
	row := func(screenTop float64) int {
		return int(math.Floor(screenTop / scale))
	}

	leading := make([]string, m.rows)
	trailing := make([]string, m.rows)
	page := make([]string, m.rows)

	for _, a := range m.breaks {
		r := row(a.ScreenRect().Top - vp.Top)
		if r >= 0 && r < m.rows {
			title := runewidth.Truncate(a.Title, previewMarginWidth*2, "…")
			page[r] = strings.Repeat("╌", previewPageWidth-runewidth.StringWidth(title)-1) + " " + title
		}
	}
	place := func(col []string, ms []markers.Marker) {
		for _, mk := range ms {
			r := row(mk.Rect.Top)
			if r < 0 {
				r = 0
			}
			// Markers squeezed into one row push later ones down a line.
			for r < m.rows && col[r] != "" {
				r++
			}
			if r < m.rows {
				col[r] = runewidth.Truncate(mk.Title, previewMarginWidth, "…")
			}
		}
	}
	place(leading, m.markers[markers.EdgeLeading])
	place(trailing, m.markers[markers.EdgeTrailing])

	lines := make([]string, m.rows)
	for i := range lines {
		lines[i] = previewMarkerStyle.Render(runewidth.FillLeft(leading[i], previewMarginWidth)) +
			" " + previewBreakStyle.Render(runewidth.FillRight(page[i], previewPageWidth)) + " " +
			previewMarkerStyle.Render(runewidth.FillRight(trailing[i], previewMarginWidth))
	}
	return lines
}
