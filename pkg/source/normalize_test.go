package source

import (
	"testing"

	"github.com/toldot/toldot/pkg/dates"
	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/timeline"
)

var testPeriods = []timeline.Period{
	{
		ID: "amoraim_babylonia", StartYear: 220, EndYear: 500,
		SubPeriods: []timeline.SubPeriod{
			{ID: "gen1", Generation: timeline.Year(1)},
			{ID: "gen4", Generation: timeline.Year(4), Region: timeline.RegionBabylonia},
		},
	},
	{ID: "geonim", StartYear: 600, EndYear: 1000},
}

func TestNormalizeNames(t *testing.T) {
	raw := RawPerson{Slug: "rashi", TitleEN: "Rashi (title)", TitleRU: "Раши", TitleHE: "רש״י"}
	raw.Facts = &Facts{}
	raw.Facts.Author.Display.NameEN = "Rashi"

	p := Normalize(raw, nil)
	if p.NameEN != "Rashi" {
		t.Errorf("NameEN = %q, want author display name", p.NameEN)
	}
	if p.NameRU != "Раши" {
		t.Errorf("NameRU = %q, want title_ru", p.NameRU)
	}
	if p.NameHE != "רש״י" {
		t.Errorf("NameHE = %q", p.NameHE)
	}

	bare := Normalize(RawPerson{Slug: " anon "}, nil)
	if bare.Slug != "anon" || bare.NameEN != "anon" || bare.NameHE != "anon" {
		t.Errorf("bare record = %+v, want slug used as English and Hebrew name", bare)
	}
	if bare.Period != DefaultPeriod {
		t.Errorf("Period = %q, want %q", bare.Period, DefaultPeriod)
	}
}

func TestNormalizeLifespanAndSummary(t *testing.T) {
	p := Normalize(RawPerson{
		Slug:        "rambam",
		Lifespan:    "c. 1138-1204",
		SummaryHTML: "<p>Born in <b>Córdoba</b>, Spain.</p><script>x()</script>",
	}, nil)

	if p.LifespanRange == nil || p.LifespanRange.Start != 1138 || p.LifespanRange.End != 1204 || !p.LifespanRange.Estimated {
		t.Errorf("LifespanRange = %+v, want estimated 1138..1204", p.LifespanRange)
	}
	if p.Summary != "Born in Córdoba, Spain." {
		t.Errorf("Summary = %q", p.Summary)
	}
	if p.Region != timeline.RegionSepharad {
		t.Errorf("Region = %q, want inferred sepharad", p.Region)
	}
}

func TestNormalizeExplicitYearsBeatLifespanText(t *testing.T) {
	tests := []struct {
		name string
		raw  RawPerson
		want timeline.LifespanRange
	}{
		{
			"birth and death win",
			RawPerson{Slug: "rashi", BirthYear: timeline.Year(1040), DeathYear: timeline.Year(1105), Lifespan: "c. 1000-1100"},
			timeline.LifespanRange{Start: 1040, End: 1105},
		},
		{
			"birth alone falls back to text",
			RawPerson{Slug: "rashi", BirthYear: timeline.Year(1040), Lifespan: "c. 1000-1100"},
			timeline.LifespanRange{Start: 1000, End: 1100, Estimated: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dates.DeriveLifespanRange(Normalize(tt.raw, nil))
			if !ok || got != tt.want {
				t.Errorf("DeriveLifespanRange = %+v, %v, want %+v", got, ok, tt.want)
			}
		})
	}
}

func TestNormalizeRegionAndGeneration(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawPerson
		region  timeline.Region
		genWant int
	}{
		{
			name:   "explicit region kept",
			raw:    RawPerson{Slug: "a", Region: "france", Summary: "lived in Germany"},
			region: timeline.RegionFrance,
		},
		{
			name:   "unknown region inferred from categories",
			raw:    RawPerson{Slug: "b", Region: "atlantis", Categories: []string{"Yemen"}},
			region: timeline.RegionYemen,
		},
		{
			name:    "sub-period supplies region and generation",
			raw:     RawPerson{Slug: "c", Period: "amoraim_babylonia", SubPeriod: "gen4"},
			region:  timeline.RegionBabylonia,
			genWant: 4,
		},
		{
			name:    "generation read from undeclared sub-period id",
			raw:     RawPerson{Slug: "d", Period: "geonim", SubPeriod: "3rd_generation"},
			genWant: 3,
		},
		{
			name:    "explicit generation wins",
			raw:     RawPerson{Slug: "e", Period: "amoraim_babylonia", SubPeriod: "gen4", Generation: timeline.Year(2)},
			region:  timeline.RegionBabylonia,
			genWant: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(tt.raw, testPeriods)
			if p.Region != tt.region {
				t.Errorf("Region = %q, want %q", p.Region, tt.region)
			}
			got := 0
			if p.Generation != nil {
				got = *p.Generation
			}
			if got != tt.genWant {
				t.Errorf("Generation = %d, want %d", got, tt.genWant)
			}
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	people, rep := NormalizeAll([]RawPerson{
		{Slug: "a"}, {Slug: ""}, {Slug: "b"}, {Slug: "a", NameEN: "second"},
	}, nil)
	if len(people) != 2 {
		t.Fatalf("got %d people, want 2", len(people))
	}
	if people[0].NameEN != "a" {
		t.Errorf("first occurrence should win, got %+v", people[0])
	}
	if rep.MissingSlug != 1 || len(rep.Duplicates) != 1 || rep.Duplicates[0] != "a" {
		t.Errorf("report = %+v", rep)
	}
}

func TestWithBounds(t *testing.T) {
	tests := []struct {
		name       string
		p          timeline.Person
		start, end int
		changed    bool
	}{
		{"dated person untouched", timeline.Person{Period: "geonim", BirthYear: timeline.Year(900)}, 0, 0, false},
		{"unknown period untouched", timeline.Person{Period: "nowhere"}, 0, 0, false},
		{"period midpoint", timeline.Person{Period: "geonim"}, 797, 803, true},
		{"generation fraction", timeline.Person{Period: "amoraim_babylonia", Generation: timeline.Year(2)}, 357, 363, true},
		{"fraction clamped high", timeline.Person{Period: "amoraim_babylonia", Generation: timeline.Year(9)}, 483, 489, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithBounds(tt.p, testPeriods)
			if !tt.changed {
				if got.LifespanRange != nil {
					t.Errorf("person should be unchanged, got range %+v", got.LifespanRange)
				}
				return
			}
			if got.LifespanRange == nil {
				t.Fatal("no range synthesized")
			}
			r := *got.LifespanRange
			if r.Start != tt.start || r.End != tt.end || !r.Estimated {
				t.Errorf("range = %+v, want estimated %d..%d", r, tt.start, tt.end)
			}
			if *got.BirthYear != tt.start || *got.DeathYear != tt.end {
				t.Errorf("birth/death = %d/%d", *got.BirthYear, *got.DeathYear)
			}
		})
	}
}

func TestNormalizePeriods(t *testing.T) {
	got, warnings, err := NormalizePeriods([]timeline.Period{
		{ID: " a ", StartYear: 100, EndYear: 50},
		{ID: "b", StartYear: 10, EndYear: 10},
		{ID: "c", StartYear: 0, EndYear: 100, SubPeriods: []timeline.SubPeriod{
			{ID: "s", StartYear: timeline.Year(80), EndYear: timeline.Year(20)},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].ID != "a" || got[0].StartYear != 50 || got[0].EndYear != 100 {
		t.Errorf("reversed period = %+v", got[0])
	}
	if got[1].EndYear != 11 {
		t.Errorf("empty period end = %d, want 11", got[1].EndYear)
	}
	if sp := got[2].SubPeriods[0]; *sp.StartYear != 20 || *sp.EndYear != 80 {
		t.Errorf("sub-period = %d..%d, want 20..80", *sp.StartYear, *sp.EndYear)
	}
	if len(warnings) != 3 {
		t.Errorf("warnings = %v, want 3", warnings)
	}

	for _, bad := range [][]timeline.Period{
		{{ID: "x", EndYear: 1}, {ID: "x", EndYear: 1}},
		{{ID: "  ", EndYear: 1}},
	} {
		if _, _, err := NormalizePeriods(bad); !apperr.Is(err, apperr.ErrCodeInvalidDataset) {
			t.Errorf("NormalizePeriods(%+v) err = %v, want INVALID_DATASET", bad, err)
		}
	}
}

func TestBuildDatasetDefaultsPeriods(t *testing.T) {
	ds, _, err := BuildDataset(Payload{People: []RawPerson{{Slug: "x", Period: "geonim"}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ds.Period("geonim"); !ok {
		t.Error("built-in periods should be used when the payload has none")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain   text", "plain text"},
		{"<p>One</p><p>Two</p>", "One Two"},
		{"a &amp; b", "a & b"},
		{"<style>p{}</style>Visible<noscript>hidden</noscript>", "Visible"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
