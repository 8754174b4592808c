package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/toldot/toldot/pkg/filter"
	"github.com/toldot/toldot/pkg/layout"
	"github.com/toldot/toldot/pkg/layout/viewport"
	"github.com/toldot/toldot/pkg/pipeline"
	"github.com/toldot/toldot/pkg/timeline"
)

// browseCommand creates the browse command, an interactive terminal timeline.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		lang string
		ff   filterFlags
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore the timeline interactively",
		Long: `Explore the timeline in the terminal.

Keys:
  ↑/↓ j/k    select person
  ←/→ h/l    pan
  +/-        zoom
  f          fly to the selected person
  1-9        toggle period
  /          search by name
  0          reset filters and view
  q          quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := c.loadView(cmd, &ff)
			if err != nil {
				return err
			}
			defer v.runner.Close()
			if err := v.opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			m := newBrowseModel(v.dataset, v.opts, lang)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "name language: ru, en, he")
	ff.register(cmd)
	return cmd
}

// =============================================================================
// browseModel
// =============================================================================

// Browse styles
var (
	browseSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	browseNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	browseDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
	browsePeriodStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorMuted)
)

const (
	browseNameWidth  = 22
	browseMinBarCols = 20
	browsePanStep    = 0.1
	browseZoomStep   = 1.25
	browseMaxScale   = 50
)

// browseModel is the bubbletea model of the browse command. The layout is
// recomputed whenever the filter changes; panning and zooming only move the
// viewport transform.
type browseModel struct {
	dataset timeline.Dataset
	opts    pipeline.Options
	lang    string
	initial filter.State

	layout     pipeline.Layout
	placements []layout.Placement

	nav       viewport.Navigator
	transform viewport.Transform

	cursor    int
	offset    int
	height    int
	width     int
	searching bool
	query     string
}

func newBrowseModel(ds timeline.Dataset, opts pipeline.Options, lang string) browseModel {
	m := browseModel{
		dataset:   ds,
		opts:      opts,
		lang:      lang,
		initial:   opts.Filter,
		nav:       viewport.New(viewport.WithScaleLimits(1, browseMaxScale), viewport.WithBounds(viewport.Bounds{MinX: math.NaN(), MaxX: 0, MinY: 0, MaxY: 0})),
		transform: viewport.Identity,
		height:    20,
		width:     100,
		query:     opts.Filter.Query(),
	}
	m.recompute()
	return m
}

// recompute filters and lays out the dataset again, keeping the cursor on
// the selected person when it survives the filter.
func (m *browseModel) recompute() {
	selected := m.selectedSlug()
	people := filter.Apply(m.dataset.People, m.opts.Filter)
	m.layout = pipeline.ComputeLayout(people, m.dataset.Periods, m.opts)
	m.placements = m.layout.Result.Placements()

	m.cursor = 0
	for i, p := range m.placements {
		if p.Slug == selected {
			m.cursor = i
			break
		}
	}
	m.scrollToCursor()
}

func (m browseModel) selectedSlug() string {
	if m.cursor < 0 || m.cursor >= len(m.placements) {
		return ""
	}
	return m.placements[m.cursor].Slug
}

// viewportWidth is the full timeline width in layout pixels; at scale 1 the
// whole domain fits the bar area.
func (m browseModel) viewportWidth() float64 {
	return float64(max(m.layout.Bounds.Span(), 1)) * m.layout.PxPerYear
}

// window returns the visible year span.
func (m browseModel) window() (float64, float64) {
	return viewport.VisibleWindow(m.transform, m.layout.Bounds.MinYear, m.layout.PxPerYear, m.viewportWidth())
}

func (m *browseModel) scrollToCursor() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(msg.Height-8, 5)
		m.scrollToCursor()
	}
	return m, nil
}

func (m browseModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.viewportWidth()
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.scrollToCursor()
		}
	case "down", "j":
		if m.cursor < len(m.placements)-1 {
			m.cursor++
			m.scrollToCursor()
		}
	case "left", "h":
		m.transform = m.nav.PanBy(m.transform, w*browsePanStep, 0)
	case "right", "l":
		m.transform = m.nav.PanBy(m.transform, -w*browsePanStep, 0)
	case "+", "=":
		m.transform = m.nav.ZoomAt(m.transform, w/2, 0, browseZoomStep)
	case "-", "_":
		m.transform = m.nav.ZoomAt(m.transform, w/2, 0, 1/browseZoomStep)
	case "f":
		if m.cursor < len(m.placements) {
			p := m.placements[m.cursor]
			pad := max((p.End-p.Start)/2, 10)
			m.transform = m.nav.ApplyViewport(m.transform, p.Start-pad, p.End+pad,
				m.layout.Bounds.MinYear, m.layout.PxPerYear, w)
		}
	case "/":
		m.searching = true
	case "0":
		m.opts.Filter = filter.Reset(m.initial.Periods())
		m.query = ""
		m.transform = viewport.Identity
		m.recompute()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.dataset.Periods) {
				m.opts.Filter = m.opts.Filter.TogglePeriod(m.dataset.Periods[i].ID)
				m.recompute()
			}
		}
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	default:
		return m, nil
	}
	m.opts.Filter = m.opts.Filter.WithQuery(m.query)
	m.recompute()
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	lo, hi := m.window()
	b.WriteString(StyleTitle.Render(m.opts.Title))
	b.WriteString("  ")
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("%d – %d  ×%.2f", int(math.Round(lo)), int(math.Round(hi)), m.transform.Scale)))
	b.WriteString("\n")
	b.WriteString(m.periodLine())
	b.WriteString("\n")
	if m.searching || m.query != "" {
		b.WriteString(browseDimStyle.Render("search: "))
		b.WriteString(m.query)
		if m.searching {
			b.WriteString("▏")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	cols := max(m.width-browseNameWidth-4, browseMinBarCols)
	b.WriteString(strings.Repeat(" ", browseNameWidth+2))
	b.WriteString(browseDimStyle.Render(axisLine(m.layout.Ticks, lo, hi, cols)))
	b.WriteString("\n")

	if len(m.placements) == 0 {
		b.WriteString(browseDimStyle.Render("  no persons match"))
		b.WriteString("\n")
	}

	end := min(m.offset+m.height, len(m.placements))
	lastPeriod := ""
	if m.offset > 0 {
		lastPeriod = m.placements[m.offset-1].Period
	}
	for i := m.offset; i < end; i++ {
		pl := m.placements[i]
		if pl.Period != lastPeriod {
			lastPeriod = pl.Period
			name := pl.Period
			if pd, ok := m.dataset.Period(pl.Period); ok {
				name = pd.DisplayName()
				if m.lang == "en" && pd.NameEN != "" {
					name = pd.NameEN
				}
			}
			b.WriteString(browsePeriodStyle.Render(name))
			b.WriteString("\n")
		}

		name := pl.Slug
		if p, ok := m.dataset.Person(pl.Slug); ok {
			name = personName(p, m.lang)
		}
		label := fmt.Sprintf("%-*s", browseNameWidth, truncate(name, browseNameWidth))
		bar := barLine(pl, lo, hi, cols)
		if i == m.cursor {
			b.WriteString(browseSelectedStyle.Render("▸ " + label))
			b.WriteString(browseSelectedStyle.Render(bar))
		} else {
			b.WriteString(browseNormalStyle.Render("  " + label))
			b.WriteString(browseDimStyle.Render(bar))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	status := fmt.Sprintf("  [%d/%d]", min(m.cursor+1, len(m.placements)), len(m.placements))
	if m.cursor < len(m.placements) {
		pl := m.placements[m.cursor]
		span := fmt.Sprintf("%d–%d", pl.Start, pl.End)
		if pl.Estimated {
			span = "~" + span
		}
		status += "  " + pl.Slug + "  " + span
	}
	b.WriteString(browseDimStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("  ↑/↓ select  ←/→ pan  +/- zoom  f fly  1-9 period  / search  0 reset  q quit"))
	return b.String()
}

// periodLine lists the numbered period toggles, dimming inactive ones.
func (m browseModel) periodLine() string {
	active := m.opts.Filter.Periods()
	parts := make([]string, 0, len(m.dataset.Periods))
	for i, p := range m.dataset.Periods {
		if i >= 9 {
			break
		}
		name := p.ID
		if m.lang == "en" && p.NameEN != "" {
			name = p.NameEN
		}
		item := fmt.Sprintf("%d %s", i+1, name)
		if len(active) == 0 || m.opts.Filter.HasPeriod(p.ID) {
			parts = append(parts, StyleHighlight.Render(item))
		} else {
			parts = append(parts, browseDimStyle.Render(item))
		}
	}
	return strings.Join(parts, "  ")
}

// column maps year onto [0, cols) for the window [lo, hi].
func column(year, lo, hi float64, cols int) int {
	if hi <= lo {
		return 0
	}
	return int(math.Floor((year - lo) / (hi - lo) * float64(cols)))
}

// barLine draws a placement as a run of block characters clipped to the
// window. Estimated spans use a lighter shade.
func barLine(pl layout.Placement, lo, hi float64, cols int) string {
	line := []rune(strings.Repeat(" ", cols))
	from := column(float64(pl.Start), lo, hi, cols)
	to := column(float64(pl.End), lo, hi, cols)
	if to < 0 || from >= cols {
		return string(line)
	}
	from = max(from, 0)
	to = min(max(to, from), cols-1)
	fill := '█'
	if pl.Estimated {
		fill = '▒'
	}
	for i := from; i <= to; i++ {
		line[i] = fill
	}
	return string(line)
}

// axisLine writes tick labels at their columns, skipping labels that would
// overlap the previous one.
func axisLine(ticks []int, lo, hi float64, cols int) string {
	line := []rune(strings.Repeat(" ", cols))
	next := 0
	for _, t := range ticks {
		c := column(float64(t), lo, hi, cols)
		label := []rune(fmt.Sprint(t))
		if c < next || c < 0 || c+len(label) > cols {
			continue
		}
		copy(line[c:], label)
		next = c + len(label) + 1
	}
	return string(line)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
