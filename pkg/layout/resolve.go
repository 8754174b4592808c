package layout

import (
	"math"

	"github.com/toldot/toldot/pkg/dates"
	"github.com/toldot/toldot/pkg/timeline"
)

// ResolveRange returns the span used to place p inside period.
//
// Dated persons use [dates.DeriveLifespanRange]. Otherwise a flourit year
// becomes a ±[FlouritSpread] estimate, and as a last resort the person is
// centred on its sub-period, its generation's share of the period, or the
// period midpoint with a ±[FallbackSpread] estimate. The result always has
// Start <= End.
func ResolveRange(p timeline.Person, period timeline.Period) timeline.LifespanRange {
	if r, ok := dates.DeriveLifespanRange(p); ok {
		return r.Normalized()
	}
	if p.FlouritYear != nil {
		y := *p.FlouritYear
		return timeline.LifespanRange{Start: y - FlouritSpread, End: y + FlouritSpread, Estimated: true}
	}
	c := fallbackCentre(p, period)
	return timeline.LifespanRange{
		Start:     int(math.Floor(c - FallbackSpread)),
		End:       int(math.Floor(c + FallbackSpread)),
		Estimated: true,
	}.Normalized()
}

func fallbackCentre(p timeline.Person, period timeline.Period) float64 {
	sp, hasSub := period.SubPeriod(p.SubPeriod)
	if hasSub && sp.Bounded() {
		return (float64(*sp.StartYear) + float64(*sp.EndYear)) / 2
	}

	gen := p.Generation
	if gen == nil && hasSub {
		gen = sp.Generation
	}
	if gen != nil {
		maxGen := max(1, period.MaxGeneration())
		frac := min(0.95, max(0.05, float64(*gen)/float64(maxGen)))
		span := float64(period.EndYear - period.StartYear)
		return float64(period.StartYear) + span*frac
	}

	return (float64(period.StartYear) + float64(period.EndYear)) / 2
}
