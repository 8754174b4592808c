package timeline

import "strings"

// =============================================================================
// Person
// =============================================================================

// Person is a historical figure placed on the timeline.
//
// Only Slug and Period are required. Every year field is optional; the layout
// resolves a drawable span through the precedence implemented in pkg/dates.
type Person struct {
	Slug   string `json:"slug" yaml:"slug" toml:"slug"`
	NameEN string `json:"name_en" yaml:"name_en" toml:"name_en"`
	NameHE string `json:"name_he" yaml:"name_he" toml:"name_he"`
	NameRU string `json:"name_ru,omitempty" yaml:"name_ru,omitempty" toml:"name_ru,omitempty"`

	BirthYear     *int           `json:"birthYear,omitempty" yaml:"birthYear,omitempty" toml:"birthYear,omitempty"`
	DeathYear     *int           `json:"deathYear,omitempty" yaml:"deathYear,omitempty" toml:"deathYear,omitempty"`
	FlouritYear   *int           `json:"flouritYear,omitempty" yaml:"flouritYear,omitempty" toml:"flouritYear,omitempty"`
	Lifespan      string         `json:"lifespan,omitempty" yaml:"lifespan,omitempty" toml:"lifespan,omitempty"`
	LifespanRange *LifespanRange `json:"lifespan_range,omitempty" yaml:"lifespan_range,omitempty" toml:"lifespan_range,omitempty"`

	Period     string `json:"period" yaml:"period" toml:"period"`
	SubPeriod  string `json:"subPeriod,omitempty" yaml:"subPeriod,omitempty" toml:"subPeriod,omitempty"`
	Generation *int   `json:"generation,omitempty" yaml:"generation,omitempty" toml:"generation,omitempty"`
	Region     Region `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty"`

	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty" toml:"summary,omitempty"`
	Images       []string `json:"images,omitempty" yaml:"images,omitempty" toml:"images,omitempty"`
	Categories   []string `json:"categories,omitempty" yaml:"categories,omitempty" toml:"categories,omitempty"`
	DisplayOrder *int     `json:"displayOrder,omitempty" yaml:"displayOrder,omitempty" toml:"displayOrder,omitempty"`
	Color        string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Verified     bool     `json:"is_verified,omitempty" yaml:"is_verified,omitempty" toml:"is_verified,omitempty"`
}

// DisplayName returns the Russian name, then the English name, then the slug.
func (p Person) DisplayName() string {
	for _, s := range []string{p.NameRU, p.NameEN} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return p.Slug
}

// SearchText is the lowercased haystack matched by free-text search.
func (p Person) SearchText() string {
	return strings.ToLower(p.NameEN + " " + p.NameRU + " " + p.NameHE)
}

// LifespanRange is a resolved year span. Estimated marks approximate data and
// only affects rendering.
type LifespanRange struct {
	Start     int  `json:"start" yaml:"start" toml:"start" bson:"start"`
	End       int  `json:"end" yaml:"end" toml:"end" bson:"end"`
	Estimated bool `json:"estimated" yaml:"estimated" toml:"estimated" bson:"estimated"`
}

// Normalized returns the range with Start <= End.
func (r LifespanRange) Normalized() LifespanRange {
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Overlaps reports whether r intersects the closed interval [lo, hi].
func (r LifespanRange) Overlaps(lo, hi int) bool {
	return !(r.End < lo || r.Start > hi)
}

// =============================================================================
// Period
// =============================================================================

// Period is a named historical era. StartYear < EndYear is checked when a
// dataset is loaded, not by the layout.
type Period struct {
	ID         string      `json:"id" yaml:"id" toml:"id" bson:"id"`
	NameEN     string      `json:"name_en,omitempty" yaml:"name_en,omitempty" toml:"name_en,omitempty" bson:"name_en,omitempty"`
	NameHE     string      `json:"name_he,omitempty" yaml:"name_he,omitempty" toml:"name_he,omitempty" bson:"name_he,omitempty"`
	NameRU     string      `json:"name_ru" yaml:"name_ru" toml:"name_ru" bson:"name_ru"`
	StartYear  int         `json:"startYear" yaml:"startYear" toml:"startYear" bson:"startYear"`
	EndYear    int         `json:"endYear" yaml:"endYear" toml:"endYear" bson:"endYear"`
	Color      string      `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty" bson:"color,omitempty"`
	Region     Region      `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty" bson:"region,omitempty"`
	SubPeriods []SubPeriod `json:"subPeriods,omitempty" yaml:"subPeriods,omitempty" toml:"subPeriods,omitempty" bson:"subPeriods,omitempty"`
}

// DisplayName returns the Russian name, then the English name, then the id.
func (p Period) DisplayName() string {
	for _, s := range []string{p.NameRU, p.NameEN} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return p.ID
}

// Midpoint is the integer centre of the period span.
func (p Period) Midpoint() int {
	return p.StartYear + (p.EndYear-p.StartYear)/2
}

// SubPeriod looks up a declared sub-period by id.
func (p Period) SubPeriod(id string) (SubPeriod, bool) {
	for _, sp := range p.SubPeriods {
		if sp.ID == id {
			return sp, true
		}
	}
	return SubPeriod{}, false
}

// MaxGeneration returns the largest generation declared by a sub-period, or 0.
func (p Period) MaxGeneration() int {
	maxGen := 0
	for _, sp := range p.SubPeriods {
		if sp.Generation != nil && *sp.Generation > maxGen {
			maxGen = *sp.Generation
		}
	}
	return maxGen
}

// SubPeriod is a generation or school inside a period.
type SubPeriod struct {
	ID         string `json:"id" yaml:"id" toml:"id" bson:"id"`
	NameEN     string `json:"name_en,omitempty" yaml:"name_en,omitempty" toml:"name_en,omitempty" bson:"name_en,omitempty"`
	NameHE     string `json:"name_he,omitempty" yaml:"name_he,omitempty" toml:"name_he,omitempty" bson:"name_he,omitempty"`
	NameRU     string `json:"name_ru" yaml:"name_ru" toml:"name_ru" bson:"name_ru"`
	Generation *int   `json:"generation,omitempty" yaml:"generation,omitempty" toml:"generation,omitempty" bson:"generation,omitempty"`
	StartYear  *int   `json:"startYear,omitempty" yaml:"startYear,omitempty" toml:"startYear,omitempty" bson:"startYear,omitempty"`
	EndYear    *int   `json:"endYear,omitempty" yaml:"endYear,omitempty" toml:"endYear,omitempty" bson:"endYear,omitempty"`
	Region     Region `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty" bson:"region,omitempty"`
}

// DisplayName returns the Russian name, then the English name, then the id.
func (sp SubPeriod) DisplayName() string {
	for _, s := range []string{sp.NameRU, sp.NameEN} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return sp.ID
}

// Bounded reports whether both sub-period years are known.
func (sp SubPeriod) Bounded() bool {
	return sp.StartYear != nil && sp.EndYear != nil
}

// Year returns a pointer to y, for populating optional year fields.
func Year(y int) *int { return &y }
