package layout

// Vertical metrics in pixels.
const (
	PeriodHeader = 40.0
	RowHeader    = 24.0
	GroupHeader  = 24.0
	TrackHeight  = 56.0
	TrackGap     = 8.0
	GroupGap     = 12.0
	BlockGap     = 32.0

	EmptyRowHeight = TrackHeight
)

// DefaultMinLabelWidth keeps short lifespans wide enough for a name.
const DefaultMinLabelWidth = 120.0

// Fallback spans in years for persons without resolvable dates.
const (
	FlouritSpread  = 20
	FallbackSpread = 3
)

// Row identifiers that do not come from a sub-period.
const (
	UngroupedRowID   = "ungrouped"
	UngroupedLabel   = "Other"
	PlaceholderRowID = "empty"
)

// Projection maps a year to a horizontal pixel coordinate. It must be
// monotonically non-decreasing.
type Projection func(year int) float64

// Linear returns a projection placing minYear at offset and advancing
// pxPerYear pixels per year.
func Linear(minYear int, pxPerYear, offset float64) Projection {
	return func(year int) float64 {
		return offset + float64(year-minYear)*pxPerYear
	}
}

func groupHeight(n int) float64 {
	if n == 0 {
		return GroupHeader
	}
	return GroupHeader + float64(n)*TrackHeight + float64(n-1)*TrackGap
}

func trackY(i int) float64 {
	return GroupHeader + float64(i)*(TrackHeight+TrackGap)
}
