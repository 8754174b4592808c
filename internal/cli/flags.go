package cli

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toldot/toldot/pkg/filter"
	"github.com/toldot/toldot/pkg/pipeline"
	"github.com/toldot/toldot/pkg/source"
	"github.com/toldot/toldot/pkg/timeline"
)

// filterFlags are the dataset narrowing flags shared by most commands.
type filterFlags struct {
	periods     []string
	regions     []string
	generations []string
	query       string
	from, to    int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVarP(&f.periods, "period", "p", nil, "keep only these period ids (repeatable or comma-separated)")
	fs.StringSliceVarP(&f.regions, "region", "r", nil, "keep only these regions")
	fs.StringSliceVarP(&f.generations, "generation", "g", nil, "keep only these generations")
	fs.StringVarP(&f.query, "query", "q", "", "case-insensitive name search")
	fs.IntVar(&f.from, "from", 0, "start of a year window (requires --to)")
	fs.IntVar(&f.to, "to", 0, "end of a year window (requires --from)")

	cmd.RegisterFlagCompletionFunc("period", completeValues(periodIDs))
	cmd.RegisterFlagCompletionFunc("region", completeValues(regionNames))
}

// periodIDs offers the bundled period ids. Custom datasets may declare others.
func periodIDs() []string {
	var ids []string
	for _, p := range source.DefaultPeriods() {
		ids = append(ids, p.ID+"\t"+p.NameEN)
	}
	return ids
}

func regionNames() []string {
	var names []string
	for _, r := range timeline.AllRegions() {
		names = append(names, string(r)+"\t"+r.Label("en"))
	}
	return names
}

func completeValues(values func() []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values(), cobra.ShellCompDirectiveNoFileComp
	}
}

// state converts the flags into a filter state. The flags are encoded as
// query parameters so the API and the CLI share one validation path.
func (f *filterFlags) state(cmd *cobra.Command) (filter.State, error) {
	v := url.Values{}
	if len(f.periods) > 0 {
		v.Set(filter.ParamPeriods, strings.Join(f.periods, ","))
	}
	if len(f.regions) > 0 {
		v.Set(filter.ParamRegions, strings.Join(f.regions, ","))
	}
	if len(f.generations) > 0 {
		v.Set(filter.ParamGenerations, strings.Join(f.generations, ","))
	}
	if f.query != "" {
		v.Set(filter.ParamQuery, f.query)
	}
	if cmd.Flags().Changed("from") {
		v.Set(filter.ParamStart, strconv.Itoa(f.from))
	}
	if cmd.Flags().Changed("to") {
		v.Set(filter.ParamEnd, strconv.Itoa(f.to))
	}
	return filter.Decode(v)
}

// layoutFlags override the configured layout settings.
type layoutFlags struct {
	zoom      float64
	pxPerYear float64
	padding   int
	epsilon   int
	tickStep  int
	skipEmpty bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64VarP(&f.zoom, "zoom", "z", pipeline.DefaultZoom, "horizontal zoom factor")
	fs.Float64Var(&f.pxPerYear, "px-per-year", pipeline.DefaultPxPerYear, "pixels per year at zoom 1")
	fs.IntVar(&f.padding, "padding", 0, "years of padding around the data")
	fs.IntVar(&f.epsilon, "epsilon", 0, "years two lifespans may be apart and still share a group")
	fs.IntVar(&f.tickStep, "tick-step", 0, "axis tick spacing in years (0 picks one from the span)")
	fs.BoolVar(&f.skipEmpty, "skip-empty", false, "omit periods without persons")
}

func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("zoom") {
		opts.Zoom = f.zoom
	}
	if fs.Changed("px-per-year") {
		opts.PxPerYear = f.pxPerYear
	}
	if fs.Changed("padding") {
		opts.Padding = f.padding
	}
	if fs.Changed("epsilon") {
		opts.Epsilon = f.epsilon
	}
	if fs.Changed("tick-step") {
		opts.TickStep = f.tickStep
	}
	if fs.Changed("skip-empty") {
		opts.SkipEmpty = f.skipEmpty
	}
}

// renderFlags override the configured render settings.
type renderFlags struct {
	style     string
	language  string
	title     string
	axis      bool
	legend    bool
	minimap   bool
	seed      uint64
	columns   int
	personURL string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple, handdrawn")
	fs.StringVarP(&f.language, "lang", "l", pipeline.DefaultLanguage, "label language: ru, en, he")
	fs.StringVar(&f.title, "title", pipeline.DefaultTitle, "title drawn above the timeline")
	fs.BoolVar(&f.axis, "axis", true, "draw the year axis")
	fs.BoolVar(&f.legend, "legend", true, "draw the period legend")
	fs.BoolVar(&f.minimap, "minimap", false, "draw the density minimap")
	fs.Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed for the handdrawn style")
	fs.IntVar(&f.columns, "columns", 0, "width of the text gauge column (txt format)")
	fs.StringVar(&f.personURL, "person-url", "", "link bars to this URL; {slug} is replaced")

	cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions([]string{"simple", "handdrawn"}, cobra.ShellCompDirectiveNoFileComp))
	cmd.RegisterFlagCompletionFunc("lang", cobra.FixedCompletions([]string{"ru", "en", "he"}, cobra.ShellCompDirectiveNoFileComp))
}

func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("style") {
		opts.Style = f.style
	}
	if fs.Changed("lang") {
		opts.Language = f.language
	}
	if fs.Changed("title") {
		opts.Title = f.title
	}
	if fs.Changed("axis") {
		opts.Axis = f.axis
	}
	if fs.Changed("legend") {
		opts.Legend = f.legend
	}
	if fs.Changed("minimap") {
		opts.Minimap = f.minimap
	}
	if fs.Changed("seed") {
		opts.Seed = f.seed
	}
	if fs.Changed("person-url") {
		opts.PersonURL = f.personURL
	}
	opts.Columns = f.columns
}
