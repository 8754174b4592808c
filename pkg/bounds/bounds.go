// Package bounds computes the visible year domain of a timeline and the tick
// marks of its axis.
package bounds

import (
	"github.com/toldot/toldot/pkg/dates"
	"github.com/toldot/toldot/pkg/timeline"
)

// Default values used when callers pass zero options.
const (
	DefaultPadding = 50
	DefaultStep    = 50

	// FallbackMinYear and FallbackMaxYear bound a timeline with no dated input.
	FallbackMinYear = -1000
	FallbackMaxYear = 2025
)

// Bounds is an inclusive year domain. MinYear < MaxYear always holds for
// values returned by this package.
type Bounds struct {
	MinYear int `json:"minYear"`
	MaxYear int `json:"maxYear"`
}

// Span returns MaxYear - MinYear.
func (b Bounds) Span() int { return b.MaxYear - b.MinYear }

// Contains reports whether year lies within the domain.
func (b Bounds) Contains(year int) bool {
	return year >= b.MinYear && year <= b.MaxYear
}

// GetTimelineBounds returns the padded union of every resolvable person span
// and every period span. Persons without a resolvable lifespan are ignored.
// With nothing to measure it returns the fixed fallback domain.
func GetTimelineBounds(people []timeline.Person, periods []timeline.Period, paddingYears int) Bounds {
	var (
		lo, hi int
		seen   bool
	)
	add := func(y int) {
		if !seen {
			lo, hi, seen = y, y, true
			return
		}
		lo = min(lo, y)
		hi = max(hi, y)
	}

	for _, p := range people {
		if r, ok := dates.DeriveLifespanRange(p); ok {
			add(r.Start)
			add(r.End)
		}
	}
	for _, p := range periods {
		add(p.StartYear)
		add(p.EndYear)
	}

	if !seen {
		return Bounds{MinYear: FallbackMinYear, MaxYear: FallbackMaxYear}
	}

	b := Bounds{MinYear: lo - paddingYears, MaxYear: hi + paddingYears}
	if b.MaxYear <= b.MinYear {
		b.MaxYear = b.MinYear + 1
	}
	return b
}

// BuildTickMarks returns years from floor(minYear/step)*step up to and
// including maxYear, spaced by step. A non-positive step or an inverted
// domain yields no ticks.
func BuildTickMarks(minYear, maxYear, step int) []int {
	if step <= 0 || minYear > maxYear {
		return nil
	}
	ticks := make([]int, 0, (maxYear-minYear)/step+2)
	for year := floorDiv(minYear, step) * step; year <= maxYear; year += step {
		ticks = append(ticks, year)
	}
	return ticks
}

// TickStep picks an axis step for a domain span: 200 above 2000 years, 100
// above 1200 years and 50 otherwise.
func TickStep(span int) int {
	switch {
	case span > 2000:
		return 200
	case span > 1200:
		return 100
	default:
		return DefaultStep
	}
}

// IsMajor reports whether a tick gets a label on the rendered axis.
func IsMajor(year int) bool {
	return year%100 == 0
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
