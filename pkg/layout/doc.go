// Package layout turns filtered persons and their periods into positioned
// rectangles.
//
// # Overview
//
// [Build] packs persons on three levels:
//
//   - Period blocks: one [PeriodBlock] per period, spanning
//     [yearToX(start), yearToX(end)] horizontally.
//   - Rows: one [Row] per declared sub-period that has persons, in declaration
//     order, followed by an "ungrouped" row for everyone else.
//   - Groups: inside a row, persons whose resolved lifespans overlap (within
//     an epsilon tolerance) are clustered into a [Group] by a single sorted
//     sweep.
//
// Inside a group every person gets its own track, so no two rectangles of a
// group share vertical space. Horizontal placement comes from the caller's
// [Projection]; widths are never smaller than the minimum label width.
//
// # Coordinates
//
// Block coordinates are absolute. Row Y is relative to its block, group Y to
// its row, and person Y to its group. Person X is absolute so a renderer can
// draw bars without re-projecting years. [Result.Placements] flattens
// everything to absolute rectangles.
//
// Blocks whose horizontal extents collide are moved to separate lanes. Lanes
// are stacked top to bottom with [BlockGap] between them.
//
// # Unresolvable Dates
//
// [ResolveRange] never fails. A person without usable years is placed on a
// short estimated span derived from the flourit year, the sub-period bounds,
// the generation's share of the period, or the period midpoint, in that
// order.
//
// # Determinism
//
// Build is a pure function: identical inputs produce identical output,
// including order. Persons whose period id is unknown are not laid out and
// are listed in [Result.Dropped].
//
// # Options
//
//   - [WithEpsilon]: overlap tolerance in years (default 0)
//   - [WithMinLabelWidth]: minimum bar width in pixels (default 120)
//   - [WithSkipEmptyPeriods]: omit blocks for periods without persons
package layout
