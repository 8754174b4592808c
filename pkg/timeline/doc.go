// Package timeline defines the data model shared by every toldot stage.
//
// A [Dataset] holds the persons and historical periods that the rest of the
// module transforms:
//
//   - pkg/dates resolves a person's lifespan and region from loose fields
//   - pkg/bounds computes the visible year domain and axis ticks
//   - pkg/filter narrows the person list for a view
//   - pkg/layout partitions persons into positioned period blocks
//
// # Core Types
//
//   - [Person]: a historical figure, already normalized for layout
//   - [Period]: a named era with a year span and optional [SubPeriod] list
//   - [LifespanRange]: a resolved [start, end] span with an estimated flag
//   - [Region]: a closed set of geographic or movement identifiers
//
// Values of these types are treated as immutable while a render pass runs.
// Loading and normalizing raw transport records lives in pkg/source.
//
// # Wire Format
//
// JSON field names follow the timeline API payload:
//
//	{
//	  "slug": "rashi",
//	  "name_en": "Rashi",
//	  "birthYear": 1040,
//	  "deathYear": 1105,
//	  "period": "rishonim",
//	  "region": "france"
//	}
package timeline
