package sink

import (
	"fmt"
	"strings"

	"github.com/toldot/toldot/pkg/bounds"
	"github.com/toldot/toldot/pkg/layout"
	"github.com/toldot/toldot/pkg/timeline"
)

// Document is everything a sink needs to draw one timeline.
type Document struct {
	Title   string
	Layout  layout.Result
	People  []timeline.Person
	Bounds  bounds.Bounds
	Ticks   []int
	YearToX layout.Projection
	Density []float64
}

func (d Document) projection() layout.Projection {
	if d.YearToX != nil {
		return d.YearToX
	}
	return layout.Linear(d.Bounds.MinYear, 1, 0)
}

func (d Document) peopleBySlug() map[string]timeline.Person {
	m := make(map[string]timeline.Person, len(d.People))
	for _, p := range d.People {
		m[p.Slug] = p
	}
	return m
}

// personLabel returns the display name in lang, falling back to the slug.
func personLabel(p timeline.Person, slug, lang string) string {
	if p.Slug == "" {
		return slug
	}
	if lang == "en" && strings.TrimSpace(p.NameEN) != "" {
		return p.NameEN
	}
	if lang == "he" && strings.TrimSpace(p.NameHE) != "" {
		return p.NameHE
	}
	return p.DisplayName()
}

func periodLabel(p timeline.Period, lang string) string {
	if lang == "en" && strings.TrimSpace(p.NameEN) != "" {
		return p.NameEN
	}
	if lang == "he" && strings.TrimSpace(p.NameHE) != "" {
		return p.NameHE
	}
	return p.DisplayName()
}

// yearSpan formats a lifespan, marking estimated ranges with "c.".
func yearSpan(r timeline.LifespanRange) string {
	s := fmt.Sprintf("%s–%s", formatYear(r.Start), formatYear(r.End))
	if r.Estimated {
		return "c. " + s
	}
	return s
}

func formatYear(y int) string {
	if y < 0 {
		return fmt.Sprintf("%d BCE", -y)
	}
	return fmt.Sprintf("%d", y)
}
