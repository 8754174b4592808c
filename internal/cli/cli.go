package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/toldot/toldot/internal/config"
	"github.com/toldot/toldot/pkg/buildinfo"
	"github.com/toldot/toldot/pkg/cache"
	"github.com/toldot/toldot/pkg/pipeline"
	"github.com/toldot/toldot/pkg/timeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "toldot"

// annotationConfigOptional marks commands that run without a readable
// config file.
const annotationConfigOptional = "toldot/config-optional"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	loader     *config.Loader
	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		loader: config.NewLoader(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Toldot lays out historical figures on a period timeline",
		Long:         `Toldot loads persons and historical periods from files, the timeline API or MongoDB, places them on a year axis grouped by period and overlap, and renders the result as SVG, PNG, PDF, JSON or text.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "config file (default: ~/.config/toldot/config.yaml)")
	pf.StringP("source", "s", "", "dataset: file (.json/.yaml/.toml), API base URL, mongodb:// URI or sample:")
	pf.String("cache", "", "cache backend: directory, memory, redis://... or none")
	pf.Bool("no-cache", false, "disable caching")
	c.bindFlag("source", pf.Lookup("source"))
	c.bindFlag("cache.backend", pf.Lookup("cache"))
	c.bindFlag("cache.disabled", pf.Lookup("no-cache"))

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.boundsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// bindFlag lets a persistent flag override a config key.
func (c *CLI) bindFlag(key string, f *pflag.Flag) {
	if err := c.loader.BindFlag(key, f); err != nil {
		panic(err)
	}
}

// loadConfig merges config file, environment and bound flags.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := c.loader.Load(c.configFile)
	if err != nil {
		if _, ok := cmd.Annotations[annotationConfigOptional]; !ok {
			return err
		}
		c.Logger.Debug("config not loaded", "error", err)
		cfg = config.Default()
	}
	c.Config = cfg
	if f := c.loader.FileUsed(); f != "" {
		c.Logger.Debug("using config file", "path", f)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// view is a loaded and filtered dataset shared by the inspection commands.
type view struct {
	runner  *pipeline.Runner
	opts    pipeline.Options
	dataset timeline.Dataset
	people  []timeline.Person
}

// loadView loads the configured dataset and applies the filter flags. The
// caller closes v.runner.
func (c *CLI) loadView(cmd *cobra.Command, ff *filterFlags) (*view, error) {
	ctx := cmd.Context()
	opts := c.baseOptions()
	f, err := ff.state(cmd)
	if err != nil {
		return nil, err
	}
	opts.Filter = f

	runner, err := c.newRunner(ctx)
	if err != nil {
		return nil, err
	}
	prog := newProgress(loggerFromContext(ctx))
	ds, err := runner.Load(ctx, opts)
	if err != nil {
		runner.Close()
		return nil, err
	}
	people := runner.Filter(ctx, ds.People, opts.Filter)
	prog.done("Loaded %s, %d after filtering", plural(len(ds.People), "person", "people"), len(people))

	return &view{runner: runner, opts: opts, dataset: ds, people: people}, nil
}

// newCache opens the configured backend. Without one it uses the file cache
// under the XDG cache directory, and no cache at all if that is unavailable.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if backend := c.Config.Cache.Backend; backend != "" {
		return cache.Open(ctx, backend)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// baseOptions returns pipeline options from the loaded configuration.
func (c *CLI) baseOptions() pipeline.Options {
	opts := c.Config.PipelineOptions()
	opts.Logger = c.Logger
	return opts
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/toldot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
