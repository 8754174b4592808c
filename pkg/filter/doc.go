// Package filter narrows a person list for a timeline view.
//
// A [State] is an immutable snapshot of the active filters. Every mutator
// returns a new State, so a State can be shared between goroutines, used as a
// cache key through [State.Key], and sent over the wire through [State.Encode].
//
//	s := filter.New(periodIDs...).
//	    ToggleRegion(timeline.RegionFrance).
//	    WithQuery("rashi")
//	visible := filter.Apply(people, s)
//
// An empty axis (no periods, no regions, no generations, blank query, no
// date range) does not constrain anything.
package filter
