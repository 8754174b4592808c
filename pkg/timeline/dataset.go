package timeline

// Dataset is the full input of a render pass.
type Dataset struct {
	People  []Person `json:"people" yaml:"people" toml:"people"`
	Periods []Period `json:"periods" yaml:"periods" toml:"periods"`
}

// Stats summarizes a person list.
type Stats struct {
	TotalPeople int            `json:"totalPeople"`
	ByPeriod    map[string]int `json:"byPeriod"`
	ByRegion    map[Region]int `json:"byRegion"`
}

// ComputeStats counts people per period and per region. Persons without a
// region are only counted in the total and per-period figures.
func ComputeStats(people []Person) Stats {
	s := Stats{
		TotalPeople: len(people),
		ByPeriod:    make(map[string]int),
		ByRegion:    make(map[Region]int),
	}
	for _, p := range people {
		s.ByPeriod[p.Period]++
		if p.Region != "" {
			s.ByRegion[p.Region]++
		}
	}
	return s
}

// Stats returns ComputeStats over the dataset's people.
func (d Dataset) Stats() Stats {
	return ComputeStats(d.People)
}

// PeriodIndex maps period ids to their position in d.Periods.
func (d Dataset) PeriodIndex() map[string]int {
	idx := make(map[string]int, len(d.Periods))
	for i, p := range d.Periods {
		idx[p.ID] = i
	}
	return idx
}

// Period looks up a period by id.
func (d Dataset) Period(id string) (Period, bool) {
	for _, p := range d.Periods {
		if p.ID == id {
			return p, true
		}
	}
	return Period{}, false
}

// PeriodIDs returns the period ids in dataset order.
func (d Dataset) PeriodIDs() []string {
	ids := make([]string, len(d.Periods))
	for i, p := range d.Periods {
		ids[i] = p.ID
	}
	return ids
}

// Person looks up a person by slug.
func (d Dataset) Person(slug string) (Person, bool) {
	for _, p := range d.People {
		if p.Slug == slug {
			return p, true
		}
	}
	return Person{}, false
}
