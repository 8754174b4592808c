package layout

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/toldot/toldot/pkg/timeline"
)

// PeriodBlock is the laid-out area of one period.
type PeriodBlock struct {
	Period timeline.Period `json:"period"`
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Lane   int             `json:"lane"`
	Rows   []Row           `json:"rows"`
}

// Row is a horizontal band of a block. Y is relative to the block.
type Row struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Y           float64 `json:"y"`
	Height      float64 `json:"height"`
	Placeholder bool    `json:"placeholder,omitempty"`
	Groups      []Group `json:"groups"`
}

// Group is a cluster of persons with overlapping lifespans. Y is relative to
// the row; Start and End span every member.
type Group struct {
	ID      string            `json:"id"`
	Label   string            `json:"label"`
	Y       float64           `json:"y"`
	Height  float64           `json:"height"`
	Start   int               `json:"start"`
	End     int               `json:"end"`
	People  []timeline.Person `json:"-"`
	Layouts []PersonLayout    `json:"people"`
}

// PersonLayout is one person's bar. X is absolute, Y is relative to the group.
type PersonLayout struct {
	Slug   string                 `json:"slug"`
	X      float64                `json:"x"`
	Y      float64                `json:"y"`
	Width  float64                `json:"width"`
	Height float64                `json:"height"`
	Track  int                    `json:"track"`
	Range  timeline.LifespanRange `json:"range"`
}

// Result is the output of [Build].
type Result struct {
	Blocks  []PeriodBlock `json:"blocks"`
	Dropped []string      `json:"dropped,omitempty"`
}

// Build lays out people grouped by their periods. Periods keep the caller's
// order; people whose period is not in periods are reported in
// Result.Dropped instead of being placed.
func Build(people []timeline.Person, periods []timeline.Period, yearToX Projection, opts ...Option) Result {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	index := make(map[string]int, len(periods))
	for i, p := range periods {
		if _, dup := index[p.ID]; !dup {
			index[p.ID] = i
		}
	}

	buckets := make([][]timeline.Person, len(periods))
	var dropped []string
	for _, p := range people {
		i, ok := index[p.Period]
		if !ok {
			dropped = append(dropped, p.Slug)
			continue
		}
		buckets[i] = append(buckets[i], p)
	}

	blocks := make([]PeriodBlock, 0, len(periods))
	for i, period := range periods {
		if cfg.skipEmpty && len(buckets[i]) == 0 {
			continue
		}
		blocks = append(blocks, buildBlock(period, buckets[i], yearToX, cfg))
	}
	packLanes(blocks)

	return Result{Blocks: blocks, Dropped: dropped}
}

func buildBlock(period timeline.Period, people []timeline.Person, yearToX Projection, cfg config) PeriodBlock {
	x := yearToX(period.StartYear)
	b := PeriodBlock{
		Period: period,
		X:      x,
		Width:  math.Max(0, yearToX(period.EndYear)-x),
	}

	rows := partitionRows(period, people, yearToX, cfg)
	if len(rows) == 0 {
		rows = []Row{{ID: PlaceholderRowID, Height: EmptyRowHeight, Placeholder: true}}
	}

	y := PeriodHeader + RowHeader
	height := PeriodHeader
	for i := range rows {
		rows[i].Y = y
		y += rows[i].Height + RowHeader
		height += RowHeader + rows[i].Height
	}
	b.Rows = rows
	b.Height = height
	return b
}

// partitionRows splits people by declared sub-period. Persons without a
// sub-period, or with one the period does not declare, share the trailing
// ungrouped row.
func partitionRows(period timeline.Period, people []timeline.Person, yearToX Projection, cfg config) []Row {
	if len(people) == 0 {
		return nil
	}

	declared := make(map[string]int, len(period.SubPeriods))
	for i, sp := range period.SubPeriods {
		if _, dup := declared[sp.ID]; !dup {
			declared[sp.ID] = i
		}
	}

	buckets := make([][]timeline.Person, len(period.SubPeriods))
	var ungrouped []timeline.Person
	for _, p := range people {
		if i, ok := declared[p.SubPeriod]; ok && p.SubPeriod != "" {
			buckets[i] = append(buckets[i], p)
		} else {
			ungrouped = append(ungrouped, p)
		}
	}

	var rows []Row
	for i, sp := range period.SubPeriods {
		if len(buckets[i]) == 0 {
			continue
		}
		rows = append(rows, buildRow(period, sp.ID, sp.DisplayName(), buckets[i], yearToX, cfg))
	}
	if len(ungrouped) > 0 {
		rows = append(rows, buildRow(period, UngroupedRowID, UngroupedLabel, ungrouped, yearToX, cfg))
	}
	return rows
}

type entry struct {
	person timeline.Person
	span   timeline.LifespanRange
}

func buildRow(period timeline.Period, id, label string, people []timeline.Person, yearToX Projection, cfg config) Row {
	entries := make([]entry, len(people))
	for i, p := range people {
		entries[i] = entry{person: p, span: ResolveRange(p, period)}
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.span.Start, b.span.Start)
	})

	row := Row{ID: id, Label: label}
	var y float64
	for n, members := range sweep(entries, cfg.epsilon) {
		g := buildGroup(fmt.Sprintf("%s/%s/%d", period.ID, id, n), members, yearToX, cfg)
		g.Y = y
		y += g.Height + GroupGap
		row.Groups = append(row.Groups, g)
	}
	row.Height = y - GroupGap
	return row
}

// sweep clusters entries sorted by start. A new cluster opens when the next
// start lies more than epsilon years past the running end.
func sweep(entries []entry, epsilon int) [][]entry {
	var clusters [][]entry
	var runningEnd int
	for i, e := range entries {
		if i == 0 || e.span.Start > runningEnd+epsilon {
			clusters = append(clusters, []entry{e})
			runningEnd = e.span.End
			continue
		}
		last := len(clusters) - 1
		clusters[last] = append(clusters[last], e)
		runningEnd = max(runningEnd, e.span.End)
	}
	return clusters
}

func buildGroup(id string, members []entry, yearToX Projection, cfg config) Group {
	g := Group{
		ID:     id,
		Start:  members[0].span.Start,
		End:    members[0].span.End,
		Height: groupHeight(len(members)),
	}
	for i, m := range members {
		g.End = max(g.End, m.span.End)
		x := yearToX(m.span.Start)
		g.People = append(g.People, m.person)
		g.Layouts = append(g.Layouts, PersonLayout{
			Slug:   m.person.Slug,
			X:      x,
			Y:      trackY(i),
			Width:  math.Max(cfg.minLabelWidth, yearToX(m.span.End)-x),
			Height: TrackHeight,
			Track:  i,
			Range:  m.span,
		})
	}
	g.Label = fmt.Sprintf("%d–%d", g.Start, g.End)
	return g
}

// packLanes assigns each block to the first lane whose right edge plus
// BlockGap does not pass the block's left edge, then stacks the lanes.
func packLanes(blocks []PeriodBlock) {
	order := make([]int, len(blocks))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(blocks[a].X, blocks[b].X)
	})

	type lane struct{ right, height float64 }
	var lanes []lane
	for _, i := range order {
		b := &blocks[i]
		k := slices.IndexFunc(lanes, func(l lane) bool { return l.right+BlockGap <= b.X })
		if k < 0 {
			lanes = append(lanes, lane{right: math.Inf(-1)})
			k = len(lanes) - 1
		}
		lanes[k].right = math.Max(lanes[k].right, b.X+b.Width)
		lanes[k].height = math.Max(lanes[k].height, b.Height)
		b.Lane = k
	}

	offsets := make([]float64, len(lanes))
	for k := 1; k < len(lanes); k++ {
		offsets[k] = offsets[k-1] + lanes[k-1].height + BlockGap
	}
	for i := range blocks {
		blocks[i].Y = offsets[blocks[i].Lane]
	}
}
