package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/pipeline"
)

// defaultOutputBase names output files when --output is not given.
const defaultOutputBase = "timeline"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		refresh    bool
		ff         filterFlags
		lf         layoutFlags
		rf         renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the timeline to SVG, PNG, PDF, JSON, text or DOT",
		Example: `  toldot render -o rishonim.svg -p rishonim
  toldot render -s people.yaml -f svg,png --minimap
  toldot render -f txt -o - -q rashi`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			f, err := ff.state(cmd)
			if err != nil {
				return err
			}
			opts.Filter = f
			opts.Refresh = refresh
			opts.Formats = parseFormats(formatsStr)
			lf.apply(cmd, &opts)
			rf.apply(cmd, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			if output == "-" && len(opts.Formats) != 1 {
				return fmt.Errorf("--output - needs exactly one format, got %d", len(opts.Formats))
			}
			return c.runRender(cmd, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, base path for several formats, or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, txt, dot (comma-separated)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload a remote dataset instead of using the cache")
	ff.register(cmd)
	lf.register(cmd)
	rf.register(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, output string) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering timeline...")
	if output != "-" {
		spinner.Start()
	}
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], res.Artifacts[format]); err != nil {
			return err
		}
	}

	out := newPrinter(cmd.OutOrStdout())
	out.success("Rendered %s", strings.Join(opts.Formats, ", "))
	out.summary(res.Stats.Filtered, res.Stats.Periods, res.Stats.Dropped, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	for _, format := range opts.Formats {
		out.file(paths[format])
	}
	if res.Stats.Filtered == 0 {
		out.warn("No persons matched the filter")
	}
	return nil
}

// outputPaths maps each format to its file. A single format uses output as
// given; several formats share output minus any format extension as base.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, falling back to
// defaultOutputBase.
func basePath(output string) string {
	if output == "" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if err := apperr.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
