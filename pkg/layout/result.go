package layout

import "math"

// Placement is a person's bar in absolute coordinates.
type Placement struct {
	Slug      string  `json:"slug"`
	Period    string  `json:"period"`
	Row       string  `json:"row"`
	Group     string  `json:"group"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Start     int     `json:"start"`
	End       int     `json:"end"`
	Estimated bool    `json:"estimated"`
}

// Placements flattens the result in block, row, group, track order.
func (r Result) Placements() []Placement {
	var out []Placement
	for _, b := range r.Blocks {
		for _, row := range b.Rows {
			for _, g := range row.Groups {
				for _, pl := range g.Layouts {
					out = append(out, Placement{
						Slug:      pl.Slug,
						Period:    b.Period.ID,
						Row:       row.ID,
						Group:     g.ID,
						X:         pl.X,
						Y:         b.Y + row.Y + g.Y + pl.Y,
						Width:     pl.Width,
						Height:    pl.Height,
						Start:     pl.Range.Start,
						End:       pl.Range.End,
						Estimated: pl.Range.Estimated,
					})
				}
			}
		}
	}
	return out
}

// Find returns the placement of slug.
func (r Result) Find(slug string) (Placement, bool) {
	for _, p := range r.Placements() {
		if p.Slug == slug {
			return p, true
		}
	}
	return Placement{}, false
}

// Size returns the right-most and bottom-most coordinates used by blocks or
// bars. An empty result has size 0x0.
func (r Result) Size() (width, height float64) {
	for _, b := range r.Blocks {
		width = math.Max(width, b.X+b.Width)
		height = math.Max(height, b.Y+b.Height)
	}
	for _, p := range r.Placements() {
		width = math.Max(width, p.X+p.Width)
	}
	return width, height
}

// Counts tallies the laid-out structure.
type Counts struct {
	Blocks  int `json:"blocks"`
	Rows    int `json:"rows"`
	Groups  int `json:"groups"`
	People  int `json:"people"`
	Dropped int `json:"dropped"`
}

// Counts returns the number of blocks, non-placeholder rows, groups, placed
// persons and dropped persons.
func (r Result) Counts() Counts {
	c := Counts{Blocks: len(r.Blocks), Dropped: len(r.Dropped)}
	for _, b := range r.Blocks {
		for _, row := range b.Rows {
			if row.Placeholder {
				continue
			}
			c.Rows++
			c.Groups += len(row.Groups)
			for _, g := range row.Groups {
				c.People += len(g.Layouts)
			}
		}
	}
	return c
}
