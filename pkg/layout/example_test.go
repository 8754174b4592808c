package layout_test

import (
	"fmt"

	"github.com/toldot/toldot/pkg/layout"
	"github.com/toldot/toldot/pkg/timeline"
)

func ExampleBuild() {
	periods := []timeline.Period{{ID: "rishonim", StartYear: 1000, EndYear: 1500}}
	people := []timeline.Person{
		{Slug: "rashi", Period: "rishonim", BirthYear: timeline.Year(1040), DeathYear: timeline.Year(1105)},
		{Slug: "rabbeinu-tam", Period: "rishonim", BirthYear: timeline.Year(1100), DeathYear: timeline.Year(1171)},
		{Slug: "rambam", Period: "rishonim", BirthYear: timeline.Year(1138), DeathYear: timeline.Year(1204)},
		{Slug: "rosh", Period: "rishonim", BirthYear: timeline.Year(1250), DeathYear: timeline.Year(1327)},
	}

	res := layout.Build(people, periods, layout.Linear(1000, 2, 0))
	for _, g := range res.Blocks[0].Rows[0].Groups {
		fmt.Println(g.Label, len(g.Layouts))
	}
	// Output:
	// 1040–1204 3
	// 1250–1327 1
}
