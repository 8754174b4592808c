package pipeline

import (
	"encoding/json"

	"github.com/toldot/toldot/pkg/bounds"
	"github.com/toldot/toldot/pkg/layout"
	"github.com/toldot/toldot/pkg/timeline"
)

// Layout is the serializable output of the layout stage: the year domain,
// axis ticks, minimap density and the positioned period blocks.
//
// Group.People is not serialized, so a Layout read back from the cache
// carries slugs only. Renderers resolve persons through the filtered
// person list instead.
type Layout struct {
	Bounds    bounds.Bounds `json:"bounds"`
	Ticks     []int         `json:"ticks"`
	TickStep  int           `json:"tick_step"`
	PxPerYear float64       `json:"px_per_year"`
	Density   []float64     `json:"density,omitempty"`
	Result    layout.Result `json:"result"`
}

// Projection returns the year to x mapping the layout was computed with.
func (l Layout) Projection() layout.Projection {
	return layout.Linear(l.Bounds.MinYear, l.PxPerYear, 0)
}

// ComputeLayout derives bounds, ticks and blocks for people. It is pure:
// the same inputs always give the same Layout.
func ComputeLayout(people []timeline.Person, periods []timeline.Period, opts Options) Layout {
	opts.SetLayoutDefaults()

	b := bounds.GetTimelineBounds(people, periods, opts.Padding)
	step := opts.TickStep
	if step == 0 {
		step = bounds.TickStep(b.Span())
	}
	pxPerYear := opts.EffectivePxPerYear()

	layoutOpts := []layout.Option{
		layout.WithEpsilon(opts.Epsilon),
		layout.WithMinLabelWidth(opts.MinLabelWidth),
	}
	if opts.SkipEmpty {
		layoutOpts = append(layoutOpts, layout.WithSkipEmptyPeriods())
	}

	return Layout{
		Bounds:    b,
		Ticks:     bounds.BuildTickMarks(b.MinYear, b.MaxYear, step),
		TickStep:  step,
		PxPerYear: pxPerYear,
		Density:   bounds.DensityBins(people, b, bounds.DefaultBins),
		Result:    layout.Build(people, periods, layout.Linear(b.MinYear, pxPerYear, 0), layoutOpts...),
	}
}

// MarshalLayout serializes l for caching.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.Marshal(l)
}

// UnmarshalLayout reads a layout written by [MarshalLayout].
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	err := json.Unmarshal(data, &l)
	return l, err
}
