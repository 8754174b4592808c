package bounds

import (
	"github.com/toldot/toldot/pkg/dates"
	"github.com/toldot/toldot/pkg/timeline"
)

// DefaultBins is the bin count of the minimap density strip.
const DefaultBins = 100

// DensityBins histograms people over b into n equal-width bins and scales the
// counts to [0, 1] by the fullest bin. A person with no anchor year counts at
// b.MinYear. Years outside b are clamped into the edge bins.
func DensityBins(people []timeline.Person, b Bounds, n int) []float64 {
	if n <= 0 {
		return nil
	}
	bins := make([]float64, n)
	span := float64(max(b.Span(), 1))

	for _, p := range people {
		year, ok := dates.AnchorYear(p)
		if !ok {
			year = b.MinYear
		}
		idx := int(float64(year-b.MinYear) / span * float64(n))
		idx = max(0, min(n-1, idx))
		bins[idx]++
	}

	peak := 1.0
	for _, v := range bins {
		peak = max(peak, v)
	}
	for i := range bins {
		bins[i] /= peak
	}
	return bins
}
