package filter

import (
	"slices"
	"strings"

	"github.com/toldot/toldot/pkg/dates"
	"github.com/toldot/toldot/pkg/timeline"
)

// Apply returns the people that pass every active axis, in input order.
//
// A person without a region (or generation) is never excluded by the region
// (or generation) axis. A person whose lifespan cannot be resolved is never
// excluded by the date axis.
func Apply(people []timeline.Person, s State) []timeline.Person {
	out := make([]timeline.Person, 0, len(people))
	for _, p := range people {
		if s.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Match reports whether p passes every active axis of s.
func (s State) Match(p timeline.Person) bool {
	if len(s.periods) > 0 && !s.HasPeriod(p.Period) {
		return false
	}
	if len(s.regions) > 0 && p.Region != "" && !s.HasRegion(p.Region) {
		return false
	}
	if len(s.generations) > 0 && p.Generation != nil && !s.HasGeneration(*p.Generation) {
		return false
	}
	if lo, hi, ok := s.DateRange(); ok {
		if r, resolved := dates.DeriveLifespanRange(p); resolved && !r.Overlaps(lo, hi) {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(s.query)); q != "" {
		if !strings.Contains(p.SearchText(), q) {
			return false
		}
	}
	return true
}

// AvailableGenerations lists every generation used by a person or declared by
// a sub-period, ascending.
func AvailableGenerations(people []timeline.Person, periods []timeline.Period) []int {
	seen := make(map[int]struct{})
	for _, p := range people {
		if p.Generation != nil {
			seen[*p.Generation] = struct{}{}
		}
	}
	for _, period := range periods {
		for _, sp := range period.SubPeriods {
			if sp.Generation != nil {
				seen[*sp.Generation] = struct{}{}
			}
		}
	}
	gens := make([]int, 0, len(seen))
	for g := range seen {
		gens = append(gens, g)
	}
	slices.Sort(gens)
	return gens
}
