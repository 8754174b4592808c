package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toldot/toldot/pkg/filter"
	"github.com/toldot/toldot/pkg/pipeline"
	"github.com/toldot/toldot/pkg/timeline"
)

// statsReport is the --json output of the stats command.
type statsReport struct {
	timeline.Stats
	Generations []int `json:"generations"`
	Placed      int   `json:"placed"`
	Unplaced    int   `json:"unplaced"`
	Groups      int   `json:"groups"`
}

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		asJSON bool
		lang   string
		ff     filterFlags
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count persons per period and region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := c.loadView(cmd, &ff)
			if err != nil {
				return err
			}
			defer v.runner.Close()
			people, ds := v.people, v.dataset
			counts := pipeline.ComputeLayout(people, ds.Periods, v.opts).Result.Counts()

			report := statsReport{
				Stats:       timeline.ComputeStats(people),
				Generations: filter.AvailableGenerations(people, ds.Periods),
				Placed:      counts.People,
				Unplaced:    counts.Dropped,
				Groups:      counts.Groups,
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printStatsReport(cmd.OutOrStdout(), report, ds, lang)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "label language: ru, en")
	ff.register(cmd)
	return cmd
}

func printStatsReport(w io.Writer, r statsReport, ds timeline.Dataset, lang string) {
	fmt.Fprintln(w, StyleTitle.Render("Dataset"))
	fmt.Fprintln(w, keyValue("People", StyleNumber.Render(strconv.Itoa(r.TotalPeople))))
	fmt.Fprintln(w, keyValue("Placed", StyleNumber.Render(strconv.Itoa(r.Placed))))
	if r.Unplaced > 0 {
		fmt.Fprintln(w, keyValue("Unplaced", StyleWarning.Render(strconv.Itoa(r.Unplaced))))
	}
	fmt.Fprintln(w, keyValue("Groups", StyleNumber.Render(strconv.Itoa(r.Groups))))
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("By period"))
	for _, p := range ds.Periods {
		name := p.DisplayName()
		if lang == "en" && p.NameEN != "" {
			name = p.NameEN
		}
		fmt.Fprintln(w, keyValue(strconv.Itoa(r.ByPeriod[p.ID]), name))
	}
	fmt.Fprintln(w)

	if len(r.ByRegion) > 0 {
		fmt.Fprintln(w, StyleTitle.Render("By region"))
		for _, region := range timeline.AllRegions() {
			if n := r.ByRegion[region]; n > 0 {
				fmt.Fprintln(w, keyValue(strconv.Itoa(n), region.Label(lang)))
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Generations) > 0 {
		gens := make([]string, len(r.Generations))
		for i, g := range r.Generations {
			gens[i] = strconv.Itoa(g)
		}
		fmt.Fprintln(w, keyValue("Generations", strings.Join(gens, ", ")))
	}
}
