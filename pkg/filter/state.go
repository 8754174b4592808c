package filter

import (
	"slices"
	"strings"

	"github.com/toldot/toldot/pkg/timeline"
)

// State is a filter snapshot. The zero value filters nothing.
type State struct {
	periods     map[string]struct{}
	regions     map[timeline.Region]struct{}
	generations map[int]struct{}
	query       string
	dateRange   *[2]int
}

// New returns a State with the given periods selected.
func New(periods ...string) State {
	return State{}.WithPeriods(periods)
}

// =============================================================================
// Accessors
// =============================================================================

// Periods returns the selected period ids, sorted.
func (s State) Periods() []string { return sortedKeys(s.periods) }

// Regions returns the selected regions, sorted.
func (s State) Regions() []timeline.Region { return sortedKeys(s.regions) }

// Generations returns the selected generations, sorted.
func (s State) Generations() []int { return sortedKeys(s.generations) }

// Query returns the raw search query.
func (s State) Query() string { return s.query }

// DateRange returns the inclusive year window, if one is set.
func (s State) DateRange() (lo, hi int, ok bool) {
	if s.dateRange == nil {
		return 0, 0, false
	}
	return s.dateRange[0], s.dateRange[1], true
}

// HasPeriod reports whether id is selected.
func (s State) HasPeriod(id string) bool {
	_, ok := s.periods[id]
	return ok
}

// HasRegion reports whether r is selected.
func (s State) HasRegion(r timeline.Region) bool {
	_, ok := s.regions[r]
	return ok
}

// HasGeneration reports whether g is selected.
func (s State) HasGeneration(g int) bool {
	_, ok := s.generations[g]
	return ok
}

// IsZero reports whether no axis constrains the result.
func (s State) IsZero() bool {
	return len(s.periods) == 0 && len(s.regions) == 0 && len(s.generations) == 0 &&
		strings.TrimSpace(s.query) == "" && s.dateRange == nil
}

// =============================================================================
// Reducers
// =============================================================================

// TogglePeriod adds id if absent and removes it otherwise.
func (s State) TogglePeriod(id string) State {
	s.periods = toggle(s.periods, id)
	return s
}

// ToggleRegion adds r if absent and removes it otherwise.
func (s State) ToggleRegion(r timeline.Region) State {
	s.regions = toggle(s.regions, r)
	return s
}

// ToggleGeneration adds g if absent and removes it otherwise.
func (s State) ToggleGeneration(g int) State {
	s.generations = toggle(s.generations, g)
	return s
}

// WithQuery replaces the search query.
func (s State) WithQuery(q string) State {
	s.query = q
	return s
}

// WithDateRange sets an inclusive year window. Reversed bounds are swapped.
func (s State) WithDateRange(lo, hi int) State {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.dateRange = &[2]int{lo, hi}
	return s
}

// WithoutDateRange clears the year window.
func (s State) WithoutDateRange() State {
	s.dateRange = nil
	return s
}

// WithPeriods replaces the selected periods.
func (s State) WithPeriods(ids []string) State {
	s.periods = setOf(ids)
	return s
}

// WithRegions replaces the selected regions.
func (s State) WithRegions(rs []timeline.Region) State {
	s.regions = setOf(rs)
	return s
}

// WithGenerations replaces the selected generations.
func (s State) WithGenerations(gs []int) State {
	s.generations = setOf(gs)
	return s
}

// Reset clears every axis and reselects initialPeriods.
func Reset(initialPeriods []string) State {
	return New(initialPeriods...)
}

// =============================================================================
// Helpers
// =============================================================================

func toggle[K comparable](set map[K]struct{}, k K) map[K]struct{} {
	next := make(map[K]struct{}, len(set)+1)
	for key := range set {
		next[key] = struct{}{}
	}
	if _, ok := next[k]; ok {
		delete(next, k)
	} else {
		next[k] = struct{}{}
	}
	return next
}

func setOf[K comparable](items []K) map[K]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[K]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func sortedKeys[K interface{ ~string | ~int }](set map[K]struct{}) []K {
	keys := make([]K, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
