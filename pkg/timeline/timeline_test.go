package timeline

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPersonDisplayName(t *testing.T) {
	tests := []struct {
		name string
		p    Person
		want string
	}{
		{"russian first", Person{Slug: "rashi", NameEN: "Rashi", NameRU: "Раши"}, "Раши"},
		{"english fallback", Person{Slug: "rashi", NameEN: "Rashi"}, "Rashi"},
		{"blank names use slug", Person{Slug: "rashi", NameEN: "  "}, "rashi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPersonSearchText(t *testing.T) {
	p := Person{NameEN: "Rashi", NameRU: "Раши", NameHE: "רש״י"}
	got := p.SearchText()
	if !strings.Contains(got, "rashi") || !strings.Contains(got, "раши") {
		t.Errorf("SearchText() = %q, want lowercased english and russian names", got)
	}
}

func TestLifespanRange(t *testing.T) {
	r := LifespanRange{Start: 1105, End: 1040}.Normalized()
	if r.Start != 1040 || r.End != 1105 {
		t.Errorf("Normalized() = %+v, want 1040..1105", r)
	}

	tests := []struct {
		lo, hi int
		want   bool
	}{
		{1000, 1039, false},
		{1000, 1040, true},
		{1100, 1200, true},
		{1106, 1200, false},
		{1050, 1060, true},
	}
	for _, tt := range tests {
		if got := r.Overlaps(tt.lo, tt.hi); got != tt.want {
			t.Errorf("Overlaps(%d, %d) = %v, want %v", tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestPeriodHelpers(t *testing.T) {
	p := Period{
		ID:        "amoraim_babylonia",
		NameEN:    "Amoraim (Babylonia)",
		StartYear: 220,
		EndYear:   500,
		SubPeriods: []SubPeriod{
			{ID: "gen1", NameRU: "Первое поколение", Generation: Year(1)},
			{ID: "gen7", NameRU: "Седьмое поколение", Generation: Year(7)},
			{ID: "misc", NameRU: "Другие"},
		},
	}

	if got := p.DisplayName(); got != "Amoraim (Babylonia)" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := p.Midpoint(); got != 360 {
		t.Errorf("Midpoint() = %d, want 360", got)
	}
	if got := p.MaxGeneration(); got != 7 {
		t.Errorf("MaxGeneration() = %d, want 7", got)
	}
	if sp, ok := p.SubPeriod("gen7"); !ok || sp.DisplayName() != "Седьмое поколение" {
		t.Errorf("SubPeriod(gen7) = %+v, %v", sp, ok)
	}
	if _, ok := p.SubPeriod("missing"); ok {
		t.Error("SubPeriod(missing) should not be found")
	}
}

func TestRegion(t *testing.T) {
	if !RegionFrance.Valid() {
		t.Error("france should be valid")
	}
	if Region("atlantis").Valid() {
		t.Error("atlantis should be invalid")
	}
	if got := RegionFrance.Label("en"); got != "France" {
		t.Errorf("Label(en) = %q", got)
	}
	if got := RegionFrance.Label("ru"); got != "Франция" {
		t.Errorf("Label(ru) = %q", got)
	}
	if got := RegionAdmorim.Label("en"); got != "admorim" {
		t.Errorf("unlabeled region Label = %q, want identifier", got)
	}
	if got := len(Regions()); got != 11 {
		t.Errorf("Regions() has %d entries, want 11", got)
	}
	if rs := Regions(); rs[0] != RegionEretzIsrael || rs[len(rs)-1] != RegionEgypt {
		t.Errorf("Regions() = %v, want eretz_israel first and egypt last", rs)
	}
	if got := len(AllRegions()); got != 16 {
		t.Errorf("AllRegions() has %d entries, want 16", got)
	}
}

func TestComputeStats(t *testing.T) {
	people := []Person{
		{Slug: "a", Period: "rishonim", Region: RegionFrance},
		{Slug: "b", Period: "rishonim", Region: RegionGermany},
		{Slug: "c", Period: "geonim"},
	}
	s := ComputeStats(people)
	if s.TotalPeople != 3 {
		t.Errorf("TotalPeople = %d, want 3", s.TotalPeople)
	}
	if s.ByPeriod["rishonim"] != 2 || s.ByPeriod["geonim"] != 1 {
		t.Errorf("ByPeriod = %v", s.ByPeriod)
	}
	if len(s.ByRegion) != 2 || s.ByRegion[RegionFrance] != 1 {
		t.Errorf("ByRegion = %v", s.ByRegion)
	}
}

func TestPersonJSONFieldNames(t *testing.T) {
	p := Person{
		Slug:          "rashi",
		BirthYear:     Year(1040),
		LifespanRange: &LifespanRange{Start: 1040, End: 1105},
		SubPeriod:     "tosafists",
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"birthYear":1040`, `"lifespan_range"`, `"subPeriod":"tosafists"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("JSON %s missing %s", data, field)
		}
	}
}
