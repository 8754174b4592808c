package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toldot/toldot/pkg/bounds"
)

// boundsCommand creates the bounds command, which prints the year domain
// and the axis ticks.
func (c *CLI) boundsCommand() *cobra.Command {
	var (
		padding int
		step    int
		ff      filterFlags
	)

	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Print the timeline year domain and axis ticks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := c.loadView(cmd, &ff)
			if err != nil {
				return err
			}
			defer v.runner.Close()

			if !cmd.Flags().Changed("padding") {
				padding = bounds.DefaultPadding
				if v.opts.Padding > 0 {
					padding = v.opts.Padding
				}
			}
			b := bounds.GetTimelineBounds(v.people, v.dataset.Periods, padding)
			if step <= 0 {
				step = bounds.TickStep(b.Span())
			}
			ticks := bounds.BuildTickMarks(b.MinYear, b.MaxYear, step)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", StyleDim.Render("min  "), b.MinYear)
			fmt.Fprintf(out, "%s %d\n", StyleDim.Render("max  "), b.MaxYear)
			fmt.Fprintf(out, "%s %d\n", StyleDim.Render("span "), b.Span())
			fmt.Fprintf(out, "%s %d\n", StyleDim.Render("step "), step)
			fmt.Fprintf(out, "%s %s\n", StyleDim.Render("ticks"), tickText(ticks))
			return nil
		},
	}

	cmd.Flags().IntVar(&padding, "padding", bounds.DefaultPadding, "years of padding around the data")
	cmd.Flags().IntVar(&step, "step", 0, "tick spacing (0 picks one from the span)")
	ff.register(cmd)
	return cmd
}

// tickText joins ticks, highlighting century marks.
func tickText(ticks []int) string {
	parts := make([]string, len(ticks))
	for i, t := range ticks {
		s := strconv.Itoa(t)
		if bounds.IsMajor(t) {
			s = StyleHighlight.Render(s)
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}
