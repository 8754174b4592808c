package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/toldot/toldot/pkg/filter"
	"github.com/toldot/toldot/pkg/layout"
	"github.com/toldot/toldot/pkg/pipeline"
	"github.com/toldot/toldot/pkg/source"
	"github.com/toldot/toldot/pkg/timeline"
)

func sampleDataset(t *testing.T) timeline.Dataset {
	t.Helper()
	ds, err := source.SampleSource{}.Load(context.Background())
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	return ds
}

func newTestBrowseModel(t *testing.T, f filter.State) browseModel {
	t.Helper()
	opts := pipeline.Options{Filter: f}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	return newBrowseModel(sampleDataset(t), opts, "en")
}

func press(m browseModel, keys ...string) browseModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(browseModel)
	}
	return m
}

func TestBrowseCursor(t *testing.T) {
	m := newTestBrowseModel(t, filter.New("rishonim"))
	if len(m.placements) != 7 {
		t.Fatalf("placements = %d, want 7", len(m.placements))
	}

	m = press(m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.cursor)
	}
	m = press(m, "down", "down", "j")
	if m.cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.cursor)
	}
	m = press(m, "down", "down", "down", "down", "down")
	if m.cursor != 6 {
		t.Errorf("cursor = %d, want clamped to 6", m.cursor)
	}
}

func TestBrowseZoomAndPan(t *testing.T) {
	m := newTestBrowseModel(t, filter.New("rishonim"))
	lo0, hi0 := m.window()

	m = press(m, "+")
	lo1, hi1 := m.window()
	if hi1-lo1 >= hi0-lo0 {
		t.Errorf("zoom in did not narrow the window: %v..%v -> %v..%v", lo0, hi0, lo1, hi1)
	}

	m = press(m, "l")
	lo2, _ := m.window()
	if lo2 <= lo1 {
		t.Errorf("pan right did not move the window forward: %v -> %v", lo1, lo2)
	}

	m = press(m, "-", "-", "-", "-")
	if m.transform.Scale != 1 {
		t.Errorf("scale = %v, want clamped to 1", m.transform.Scale)
	}
	m = press(m, "h", "h", "h", "h", "h", "h", "h", "h", "h", "h", "h", "h")
	if m.transform.X > 0 {
		t.Errorf("panned before the first year: x = %v", m.transform.X)
	}
}

func TestBrowseFlyTo(t *testing.T) {
	m := newTestBrowseModel(t, filter.New("rishonim"))
	target := m.placements[m.cursor]
	m = press(m, "f")

	lo, hi := m.window()
	if float64(target.Start) < lo || float64(target.End) > hi {
		t.Errorf("window %v..%v does not contain %s %d..%d", lo, hi, target.Slug, target.Start, target.End)
	}
	if m.transform.Scale <= 1 {
		t.Errorf("fly should zoom in, scale = %v", m.transform.Scale)
	}
}

func TestBrowseSearch(t *testing.T) {
	m := newTestBrowseModel(t, filter.State{})
	all := len(m.placements)

	m = press(m, "/", "r", "a", "s", "h", "i")
	if !m.searching {
		t.Fatal("expected search mode")
	}
	if len(m.placements) != 1 || m.placements[0].Slug != "rashi" {
		t.Errorf("search placements = %v, want only rashi", slugsOf(m.placements))
	}
	if !strings.Contains(m.View(), "search: rashi") {
		t.Error("view should show the search query")
	}

	m = press(m, "backspace", "backspace", "backspace", "backspace", "backspace", "enter")
	if m.searching {
		t.Error("enter should leave search mode")
	}
	if len(m.placements) <= 1 {
		t.Errorf("shorter query should match more persons, got %d", len(m.placements))
	}

	m = press(m, "0")
	if len(m.placements) != all || m.query != "" {
		t.Errorf("reset: %d placements, query %q; want %d and empty", len(m.placements), m.query, all)
	}
}

func TestBrowseTogglePeriod(t *testing.T) {
	m := newTestBrowseModel(t, filter.State{})
	first := m.dataset.Periods[0].ID

	m = press(m, "1")
	if !m.opts.Filter.HasPeriod(first) {
		t.Fatalf("key 1 should select %s", first)
	}
	for _, p := range m.placements {
		if p.Period != first {
			t.Errorf("placement %s in %s, want only %s", p.Slug, p.Period, first)
		}
	}

	m = press(m, "1")
	if m.opts.Filter.HasPeriod(first) {
		t.Error("second key 1 should clear the period")
	}
}

func TestBrowseKeepsSelectionAcrossFilters(t *testing.T) {
	m := newTestBrowseModel(t, filter.New("rishonim"))
	m = press(m, "down", "down")
	slug := m.selectedSlug()

	m = press(m, "/", "a", "enter")
	if m.selectedSlug() != slug && containsSlug(m.placements, slug) {
		t.Errorf("selection moved off %s although it still matches", slug)
	}
}

func TestBrowseView(t *testing.T) {
	m := newTestBrowseModel(t, filter.New("rishonim"))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(browseModel)

	view := m.View()
	for _, want := range []string{"Rishonim", "Rashi", "[1/7]", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBrowseQuit(t *testing.T) {
	m := newTestBrowseModel(t, filter.State{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBarLine(t *testing.T) {
	tests := []struct {
		name string
		pl   layout.Placement
		want string
	}{
		{"inside", layout.Placement{Start: 20, End: 50}, "  ████    "},
		{"estimated", layout.Placement{Start: 20, End: 50, Estimated: true}, "  ▒▒▒▒    "},
		{"clipped left", layout.Placement{Start: -50, End: 15}, "██        "},
		{"outside", layout.Placement{Start: 120, End: 150}, "          "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := barLine(tt.pl, 0, 100, 10); got != tt.want {
				t.Errorf("barLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAxisLine(t *testing.T) {
	got := axisLine([]int{1000, 1005, 1050}, 1000, 1100, 20)
	if !strings.HasPrefix(got, "1000 ") || !strings.Contains(got, "1050") {
		t.Errorf("axisLine() = %q", got)
	}
	if strings.Contains(got, "1005") {
		t.Errorf("overlapping tick 1005 should be skipped: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Rabbeinu Tam", 8); got != "Rabbein…" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("Rashi", 8); got != "Rashi" {
		t.Errorf("truncate() = %q", got)
	}
}

func slugsOf(pls []layout.Placement) []string {
	out := make([]string, len(pls))
	for i, p := range pls {
		out[i] = p.Slug
	}
	return out
}

func containsSlug(pls []layout.Placement, slug string) bool {
	for _, p := range pls {
		if p.Slug == slug {
			return true
		}
	}
	return false
}
