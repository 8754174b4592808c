package source

import (
	"github.com/toldot/toldot/pkg/timeline"
)

// RawPerson is a person record as served by the timeline and profile APIs.
// Besides the canonical fields it carries the loose alternatives older
// payloads use: title_* names, author display names under facts, and an
// HTML summary.
type RawPerson struct {
	Slug   string `json:"slug" yaml:"slug" toml:"slug" bson:"slug"`
	NameEN string `json:"name_en,omitempty" yaml:"name_en,omitempty" toml:"name_en,omitempty" bson:"name_en,omitempty"`
	NameHE string `json:"name_he,omitempty" yaml:"name_he,omitempty" toml:"name_he,omitempty" bson:"name_he,omitempty"`
	NameRU string `json:"name_ru,omitempty" yaml:"name_ru,omitempty" toml:"name_ru,omitempty" bson:"name_ru,omitempty"`

	TitleEN string `json:"title_en,omitempty" yaml:"title_en,omitempty" toml:"title_en,omitempty" bson:"title_en,omitempty"`
	TitleHE string `json:"title_he,omitempty" yaml:"title_he,omitempty" toml:"title_he,omitempty" bson:"title_he,omitempty"`
	TitleRU string `json:"title_ru,omitempty" yaml:"title_ru,omitempty" toml:"title_ru,omitempty" bson:"title_ru,omitempty"`
	Facts   *Facts `json:"facts,omitempty" yaml:"facts,omitempty" toml:"facts,omitempty" bson:"facts,omitempty"`

	BirthYear     *int                    `json:"birthYear,omitempty" yaml:"birthYear,omitempty" toml:"birthYear,omitempty" bson:"birthYear,omitempty"`
	DeathYear     *int                    `json:"deathYear,omitempty" yaml:"deathYear,omitempty" toml:"deathYear,omitempty" bson:"deathYear,omitempty"`
	FlouritYear   *int                    `json:"flouritYear,omitempty" yaml:"flouritYear,omitempty" toml:"flouritYear,omitempty" bson:"flouritYear,omitempty"`
	Lifespan      string                  `json:"lifespan,omitempty" yaml:"lifespan,omitempty" toml:"lifespan,omitempty" bson:"lifespan,omitempty"`
	LifespanRange *timeline.LifespanRange `json:"lifespan_range,omitempty" yaml:"lifespan_range,omitempty" toml:"lifespan_range,omitempty" bson:"lifespan_range,omitempty"`

	Period     string `json:"period,omitempty" yaml:"period,omitempty" toml:"period,omitempty" bson:"period,omitempty"`
	SubPeriod  string `json:"subPeriod,omitempty" yaml:"subPeriod,omitempty" toml:"subPeriod,omitempty" bson:"subPeriod,omitempty"`
	Generation *int   `json:"generation,omitempty" yaml:"generation,omitempty" toml:"generation,omitempty" bson:"generation,omitempty"`
	Region     string `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty" bson:"region,omitempty"`

	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty" toml:"summary,omitempty" bson:"summary,omitempty"`
	SummaryHTML string   `json:"summary_html,omitempty" yaml:"summary_html,omitempty" toml:"summary_html,omitempty" bson:"summary_html,omitempty"`
	Images      []string `json:"images,omitempty" yaml:"images,omitempty" toml:"images,omitempty" bson:"images,omitempty"`
	Categories  []string `json:"categories,omitempty" yaml:"categories,omitempty" toml:"categories,omitempty" bson:"categories,omitempty"`

	DisplayOrder *int   `json:"displayOrder,omitempty" yaml:"displayOrder,omitempty" toml:"displayOrder,omitempty" bson:"displayOrder,omitempty"`
	Color        string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty" bson:"color,omitempty"`
	Verified     bool   `json:"is_verified,omitempty" yaml:"is_verified,omitempty" toml:"is_verified,omitempty" bson:"is_verified,omitempty"`
}

// Facts is the structured profile block; only the author display names
// are read.
type Facts struct {
	Author struct {
		Display struct {
			NameEN string `json:"name_en,omitempty" yaml:"name_en,omitempty" toml:"name_en,omitempty" bson:"name_en,omitempty"`
			NameRU string `json:"name_ru,omitempty" yaml:"name_ru,omitempty" toml:"name_ru,omitempty" bson:"name_ru,omitempty"`
		} `json:"display" yaml:"display" toml:"display" bson:"display"`
	} `json:"author" yaml:"author" toml:"author" bson:"author"`
}

// Payload is the document shape shared by dataset files and the timeline
// API response. Stats is ignored on input and recomputed.
type Payload struct {
	People  []RawPerson       `json:"people" yaml:"people" toml:"people"`
	Periods []timeline.Period `json:"periods" yaml:"periods" toml:"periods"`
	Stats   *timeline.Stats   `json:"stats,omitempty" yaml:"-" toml:"-"`
}

func (f *Facts) displayEN() string {
	if f == nil {
		return ""
	}
	return f.Author.Display.NameEN
}

func (f *Facts) displayRU() string {
	if f == nil {
		return ""
	}
	return f.Author.Display.NameRU
}
