package timeline

// Region identifies where (or in which movement) a person or period belongs.
type Region string

// Known regions. The last four are movement groupings rather than geography
// and carry no display label.
const (
	RegionEretzIsrael      Region = "eretz_israel"
	RegionBabylonia        Region = "babylonia"
	RegionGermany          Region = "germany"
	RegionFrance           Region = "france"
	RegionEngland          Region = "england"
	RegionProvence         Region = "provence"
	RegionSepharad         Region = "sepharad"
	RegionItaly            Region = "italy"
	RegionNorthAfrica      Region = "north_africa"
	RegionKairouan         Region = "kairouan"
	RegionYemen            Region = "yemen"
	RegionEgypt            Region = "egypt"
	RegionEarlyAchronim    Region = "early_achronim"
	RegionOrthodox         Region = "orthodox"
	RegionAdmorim          Region = "admorim"
	RegionReligiousZionism Region = "religious_zionism"
)

var allRegions = []Region{
	RegionEretzIsrael, RegionBabylonia, RegionGermany, RegionFrance,
	RegionEngland, RegionProvence, RegionSepharad, RegionItaly,
	RegionNorthAfrica, RegionKairouan, RegionYemen, RegionEgypt,
	RegionEarlyAchronim, RegionOrthodox, RegionAdmorim, RegionReligiousZionism,
}

// RegionLabel holds the display names of a region.
type RegionLabel struct {
	NameRU string
	NameEN string
}

var regionLabels = map[Region]RegionLabel{
	RegionEretzIsrael: {NameRU: "Земля Израиля", NameEN: "Eretz Israel"},
	RegionBabylonia:   {NameRU: "Вавилония", NameEN: "Babylonia"},
	RegionGermany:     {NameRU: "Германия", NameEN: "Germany"},
	RegionFrance:      {NameRU: "Франция", NameEN: "France"},
	RegionEngland:     {NameRU: "Англия", NameEN: "England"},
	RegionProvence:    {NameRU: "Прованс", NameEN: "Provence"},
	RegionSepharad:    {NameRU: "Сфарад", NameEN: "Sepharad"},
	RegionItaly:       {NameRU: "Италия", NameEN: "Italy"},
	RegionNorthAfrica: {NameRU: "Северная Африка", NameEN: "North Africa"},
	RegionYemen:       {NameRU: "Йемен", NameEN: "Yemen"},
	RegionEgypt:       {NameRU: "Египет", NameEN: "Egypt"},
}

// AllRegions returns every known region in declaration order.
func AllRegions() []Region {
	return append([]Region(nil), allRegions...)
}

// Regions returns the regions that have display labels, in declaration order.
// [AllRegions] adds the unlabeled movement groupings.
func Regions() []Region {
	var out []Region
	for _, r := range allRegions {
		if _, ok := regionLabels[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Valid reports whether r is a known region.
func (r Region) Valid() bool {
	for _, known := range allRegions {
		if r == known {
			return true
		}
	}
	return false
}

// Label returns the display name in lang ("ru" or "en"). Unlabeled regions
// fall back to their identifier.
func (r Region) Label(lang string) string {
	l, ok := regionLabels[r]
	if !ok {
		return string(r)
	}
	if lang == "en" {
		return l.NameEN
	}
	return l.NameRU
}

// ParseRegion converts an identifier to a Region.
func ParseRegion(s string) (Region, bool) {
	r := Region(s)
	return r, r.Valid()
}
