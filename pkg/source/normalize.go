package source

import (
	"math"
	"strings"

	"github.com/toldot/toldot/pkg/dates"
	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/timeline"
)

// DefaultPeriod is assigned to records that name no period.
const DefaultPeriod = "achronim"

// Normalize converts a transport record into a layout-ready person.
//
// Names fall back from the canonical field to the title_* and author display
// fields, and finally to the slug for the English and Hebrew names. A
// free-text lifespan is parsed into LifespanRange unless both birth and death
// years are given, which always take precedence. A missing or unknown region is inferred from
// the summary and categories, then inherited from the declared sub-period.
// A missing generation is taken from the sub-period or read from its id.
func Normalize(raw RawPerson, periods []timeline.Period) timeline.Person {
	slug := strings.TrimSpace(raw.Slug)
	p := timeline.Person{
		Slug:          slug,
		NameEN:        firstNonEmpty(raw.NameEN, raw.Facts.displayEN(), raw.TitleEN, slug),
		NameHE:        firstNonEmpty(raw.NameHE, raw.TitleHE, slug),
		NameRU:        firstNonEmpty(raw.NameRU, raw.TitleRU, raw.Facts.displayRU()),
		BirthYear:     raw.BirthYear,
		DeathYear:     raw.DeathYear,
		FlouritYear:   raw.FlouritYear,
		Lifespan:      strings.TrimSpace(raw.Lifespan),
		LifespanRange: raw.LifespanRange,
		Period:        firstNonEmpty(strings.TrimSpace(raw.Period), DefaultPeriod),
		SubPeriod:     strings.TrimSpace(raw.SubPeriod),
		Generation:    raw.Generation,
		Summary:       firstNonEmpty(strings.TrimSpace(raw.Summary), StripHTML(raw.SummaryHTML)),
		Images:        raw.Images,
		Categories:    raw.Categories,
		DisplayOrder:  raw.DisplayOrder,
		Color:         raw.Color,
		Verified:      raw.Verified,
	}

	explicit := p.BirthYear != nil && p.DeathYear != nil
	if p.LifespanRange == nil && !explicit && p.Lifespan != "" {
		if r, ok := dates.ParseLifespan(p.Lifespan); ok {
			p.LifespanRange = &r
		}
	}

	var sub *timeline.SubPeriod
	if period, ok := findPeriod(periods, p.Period); ok && p.SubPeriod != "" {
		if sp, ok := period.SubPeriod(p.SubPeriod); ok {
			sub = &sp
		}
	}

	if r, ok := timeline.ParseRegion(strings.TrimSpace(raw.Region)); ok {
		p.Region = r
	} else if r, ok := dates.InferRegionFromText(p.Summary, p.Categories); ok {
		p.Region = r
	} else if sub != nil && sub.Region != "" {
		p.Region = sub.Region
	}

	if p.Generation == nil {
		if sub != nil && sub.Generation != nil {
			p.Generation = timeline.Year(*sub.Generation)
		} else if g, ok := dates.ExtractGeneration(strings.ReplaceAll(p.SubPeriod, "_", " ")); ok {
			p.Generation = timeline.Year(g)
		}
	}
	return p
}

// Report lists the records dropped by [NormalizeAll].
type Report struct {
	MissingSlug int      `json:"missingSlug,omitempty"`
	Duplicates  []string `json:"duplicates,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// NormalizeAll normalizes every record, dropping records without a slug and
// later records that repeat an earlier slug.
func NormalizeAll(raws []RawPerson, periods []timeline.Period) ([]timeline.Person, Report) {
	var rep Report
	seen := make(map[string]bool, len(raws))
	people := make([]timeline.Person, 0, len(raws))
	for _, raw := range raws {
		p := Normalize(raw, periods)
		switch {
		case p.Slug == "":
			rep.MissingSlug++
		case seen[p.Slug]:
			rep.Duplicates = append(rep.Duplicates, p.Slug)
		default:
			seen[p.Slug] = true
			people = append(people, p)
		}
	}
	return people, rep
}

// WithBounds gives a person without any dates a six-year span inside its
// period: centred at the period midpoint, or at generation/maxGeneration of
// the period span (clamped to [0.05, 0.95]) when the generation is known.
// The synthesized range is marked estimated. Persons with dates, or whose
// period is unknown, are returned unchanged.
func WithBounds(p timeline.Person, periods []timeline.Period) timeline.Person {
	if p.BirthYear != nil || p.DeathYear != nil || p.LifespanRange != nil {
		return p
	}
	period, ok := findPeriod(periods, p.Period)
	if !ok {
		return p
	}

	fraction := 0.5
	if p.Generation != nil && len(period.SubPeriods) > 0 {
		maxGen := max(1, period.MaxGeneration())
		fraction = min(0.95, max(0.05, float64(*p.Generation)/float64(maxGen)))
	}
	center := float64(period.StartYear) + float64(period.EndYear-period.StartYear)*fraction
	start := int(math.Floor(center - 3))
	end := int(math.Floor(center + 3))

	p.BirthYear = timeline.Year(start)
	p.DeathYear = timeline.Year(end)
	p.LifespanRange = &timeline.LifespanRange{Start: start, End: end, Estimated: true}
	return p
}

// NormalizePeriods validates a period list. Ids are trimmed and must be
// unique and non-empty. A reversed year span is swapped and an empty one
// widened by a year; both produce a warning instead of an error.
func NormalizePeriods(periods []timeline.Period) ([]timeline.Period, []string, error) {
	var warnings []string
	seen := make(map[string]bool, len(periods))
	out := make([]timeline.Period, 0, len(periods))

	for i, p := range periods {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, nil, apperr.New(apperr.ErrCodeInvalidDataset, "period #%d has no id", i+1)
		}
		if seen[p.ID] {
			return nil, nil, apperr.New(apperr.ErrCodeInvalidDataset, "duplicate period id %q", p.ID)
		}
		seen[p.ID] = true

		switch {
		case p.EndYear < p.StartYear:
			warnings = append(warnings, "period "+p.ID+": end year before start year, swapped")
			p.StartYear, p.EndYear = p.EndYear, p.StartYear
		case p.EndYear == p.StartYear:
			warnings = append(warnings, "period "+p.ID+": empty year span, widened by one year")
			p.EndYear++
		}

		subs := make([]timeline.SubPeriod, len(p.SubPeriods))
		for j, sp := range p.SubPeriods {
			if sp.Bounded() && *sp.EndYear < *sp.StartYear {
				warnings = append(warnings, "sub-period "+p.ID+"/"+sp.ID+": years swapped")
				sp.StartYear, sp.EndYear = sp.EndYear, sp.StartYear
			}
			subs[j] = sp
		}
		p.SubPeriods = subs
		out = append(out, p)
	}
	return out, warnings, nil
}

// BuildDataset validates a payload and normalizes its people. An empty
// period list is replaced by the built-in catalogue.
func BuildDataset(p Payload) (timeline.Dataset, Report, error) {
	periods := p.Periods
	if len(periods) == 0 {
		periods = DefaultPeriods()
	}
	periods, warnings, err := NormalizePeriods(periods)
	if err != nil {
		return timeline.Dataset{}, Report{}, err
	}
	people, rep := NormalizeAll(p.People, periods)
	rep.Warnings = append(warnings, rep.Warnings...)
	return timeline.Dataset{People: people, Periods: periods}, rep, nil
}

func findPeriod(periods []timeline.Period, id string) (timeline.Period, bool) {
	for _, p := range periods {
		if p.ID == id {
			return p, true
		}
	}
	return timeline.Period{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
