package sink

import (
	"encoding/json"

	"github.com/toldot/toldot/pkg/bounds"
	"github.com/toldot/toldot/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style      string
	placements bool
	lang       string
}

// WithJSONStyle records the style name for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONPlacements adds the flattened absolute rectangles.
func WithJSONPlacements() JSONOption { return func(r *jsonRenderer) { r.placements = true } }

// WithJSONLanguage picks the language of the labels.
func WithJSONLanguage(lang string) JSONOption { return func(r *jsonRenderer) { r.lang = lang } }

type jsonOutput struct {
	Title      string             `json:"title,omitempty"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Style      string             `json:"style,omitempty"`
	Bounds     bounds.Bounds      `json:"bounds"`
	Ticks      []int              `json:"ticks,omitempty"`
	Counts     layout.Counts      `json:"counts"`
	Blocks     []jsonBlock        `json:"blocks"`
	Labels     map[string]string  `json:"labels,omitempty"`
	Placements []layout.Placement `json:"placements,omitempty"`
	Dropped    []string           `json:"dropped,omitempty"`
	Density    []float64          `json:"density,omitempty"`
}

type jsonBlock struct {
	ID     string       `json:"id"`
	Label  string       `json:"label"`
	Start  int          `json:"startYear"`
	End    int          `json:"endYear"`
	Color  string       `json:"color"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Lane   int          `json:"lane"`
	Rows   []layout.Row `json:"rows"`
}

// RenderJSON exports the layout as pretty-printed JSON. Person labels are
// keyed by slug so clients can draw without the source dataset.
func RenderJSON(doc Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{lang: "ru"}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := doc.Layout.Size()
	out := jsonOutput{
		Title:   doc.Title,
		Width:   w,
		Height:  h,
		Style:   r.style,
		Bounds:  doc.Bounds,
		Ticks:   doc.Ticks,
		Counts:  doc.Layout.Counts(),
		Blocks:  make([]jsonBlock, 0, len(doc.Layout.Blocks)),
		Dropped: doc.Layout.Dropped,
		Density: doc.Density,
	}

	for _, b := range doc.Layout.Blocks {
		color := b.Period.Color
		if color == "" {
			color = stylesColor(b.Period.ID)
		}
		out.Blocks = append(out.Blocks, jsonBlock{
			ID:     b.Period.ID,
			Label:  periodLabel(b.Period, r.lang),
			Start:  b.Period.StartYear,
			End:    b.Period.EndYear,
			Color:  color,
			X:      b.X,
			Y:      b.Y,
			Width:  b.Width,
			Height: b.Height,
			Lane:   b.Lane,
			Rows:   b.Rows,
		})
	}

	people := doc.peopleBySlug()
	placements := doc.Layout.Placements()
	if len(placements) > 0 {
		out.Labels = make(map[string]string, len(placements))
		for _, p := range placements {
			out.Labels[p.Slug] = personLabel(people[p.Slug], p.Slug, r.lang)
		}
	}
	if r.placements {
		out.Placements = placements
	}

	return json.MarshalIndent(out, "", "  ")
}
