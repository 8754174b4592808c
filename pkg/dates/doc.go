// Package dates infers lifespans, regions and generations from loosely
// structured person records.
//
// Every function is pure. Failure to infer is reported through a boolean
// result and never through an error:
//
//	r, ok := dates.ParseLifespan("c. 1040–1105")
//	// r == LifespanRange{Start: 1040, End: 1105, Estimated: true}, ok == true
//
// [DeriveLifespanRange] encodes the precedence used everywhere a person must be
// placed on the year axis: an explicit range wins, then birth and death years,
// then the parsed free-text lifespan.
package dates
