package hierarchy

import (
	"strings"
	"testing"

	"github.com/toldot/toldot/pkg/layout"
	"github.com/toldot/toldot/pkg/timeline"
)

func testResult() layout.Result {
	periods := []timeline.Period{
		{ID: "tannaim", NameEN: "Tannaim", StartYear: 0, EndYear: 200,
			SubPeriods: []timeline.SubPeriod{{ID: "gen1", NameEN: "Gen 1"}}},
		{ID: "geonim", NameEN: "Geonim", StartYear: 600, EndYear: 1000},
	}
	people := []timeline.Person{
		{Slug: "hillel", Period: "tannaim", SubPeriod: "gen1", BirthYear: timeline.Year(10), DeathYear: timeline.Year(50)},
		{Slug: "shammai", Period: "tannaim", SubPeriod: "gen1", BirthYear: timeline.Year(20), DeathYear: timeline.Year(60)},
		{Slug: "nittai", Period: "tannaim"},
	}
	return layout.Build(people, periods, layout.Linear(0, 1, 0))
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testResult(), Options{})

	for _, want := range []string{
		"digraph timeline {",
		"rankdir=TB;",
		`"tannaim" -> "tannaim/gen1";`,
		`"tannaim/gen1" [label="Gen 1 (2)"];`,
		`"tannaim/gen1" -> "tannaim/gen1/0";`,
		`"tannaim/ungrouped" [label="Other (1)"];`,
		`"geonim/empty" [label="(empty)"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "person/") {
		t.Error("person leaves should be off by default")
	}
}

func TestToDOTWithPeople(t *testing.T) {
	dot := ToDOT(testResult(), Options{People: true, LeftToRight: true})
	for _, want := range []string{
		"rankdir=LR;",
		`"tannaim/gen1/0" -> "person/hillel";`,
		`"person/nittai" [label="nittai", shape=plaintext, style="", fontcolor=grey40];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q", want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := string(normalizeViewBox([]byte("<svg></svg>"))); got != "<svg></svg>" {
		t.Errorf("no viewBox should be unchanged, got %s", got)
	}
}
