package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// layoutCommand creates the layout command, which prints the computed
// layout as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		ff     filterFlags
		lf     layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the timeline layout and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.baseOptions()
			f, err := ff.state(cmd)
			if err != nil {
				return err
			}
			opts.Filter = f
			lf.apply(cmd, &opts)
			if err := opts.ValidateForLoad(); err != nil {
				return err
			}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			ds, err := runner.Load(ctx, opts)
			if err != nil {
				return err
			}
			people := runner.Filter(ctx, ds.People, opts.Filter)
			l, _, hit, err := runner.LayoutWithCacheInfo(ctx, ds, people, opts)
			if err != nil {
				return err
			}
			counts := l.Result.Counts()
			prog.done("Laid out %s", plural(counts.People, "person", "people"))
			c.Logger.Debug("layout", "blocks", counts.Blocks, "rows", counts.Rows, "groups", counts.Groups, "cached", hit)

			data, err := json.MarshalIndent(l, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := writeArtifact(output, data); err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout())
			out.success("Wrote layout")
			out.file(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	ff.register(cmd)
	lf.register(cmd)
	return cmd
}
