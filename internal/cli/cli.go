// Package cli implements the radialtree command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtree/pkg/buildinfo"
	"github.com/matzehuels/radialtree/pkg/cache"
	"github.com/matzehuels/radialtree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "radialtree"

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Radialtree lays out graphs on concentric rings",
		Long:         `Radialtree places nodes with polar coordinates onto a grid of concentric rings, one node per slot, and routes edges as smooth arcs along the shorter way around.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/radialtree/).
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

// layoutFlags are the geometry flags shared by layout and grid.
type layoutFlags struct {
	config  string
	noCache bool
	opts    pipeline.Options
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "options file (.toml, .yaml, .json; default: ./"+pipeline.DefaultConfigFile+" if present)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.Float64Var(&f.opts.Width, "width", 0, "frame width (default 500)")
	fl.Float64Var(&f.opts.Height, "height", 0, "frame height (default 500)")
	fl.Float64Var(&f.opts.Radius, "radius", 0, "frame radius, used when --outer-radius is unset (default 250)")
	fl.Float64Var(&f.opts.InnerRadius, "inner-radius", 0, "innermost ring radius (default 125)")
	fl.Float64Var(&f.opts.OuterRadius, "outer-radius", 0, "outermost ring radius")
	fl.Float64Var(&f.opts.RadiusMinStep, "radius-step", 0, "minimum gap between rings (default 15)")
	fl.Float64Var(&f.opts.AngleMinStep, "angle-step", 0, "minimum arc length between slots (default 35)")
	fl.Float64SliceVar(&f.opts.AngleExtent, "angle-extent", nil, "angle domain as lo,hi (default 0,360)")
	fl.Float64SliceVar(&f.opts.RadiusExtent, "radius-extent", nil, "radius domain as lo,hi (default: observed)")
	fl.StringVar(&f.opts.IDField, "id-field", "", "node field holding the id (default \"id\")")
	fl.StringVar(&f.opts.RadiusField, "radius-field", "", "node field holding the radius (default \"r\")")
	fl.StringVar(&f.opts.AngleField, "angle-field", "", "node field holding the angle (default \"a\")")
	fl.BoolVar(&f.opts.Refresh, "refresh", false, "recompute even when cached")
}

// resolve loads the config file and overlays flags the user set explicitly.
func (f *layoutFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	path := f.config
	if path == "" {
		if _, err := os.Stat(pipeline.DefaultConfigFile); err == nil {
			path = pipeline.DefaultConfigFile
		}
	}

	var opts pipeline.Options
	if path != "" {
		loaded, err := pipeline.LoadOptionsFile(path)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts = loaded
	}
	return overlayFlags(cmd, opts, f.opts), nil
}

// overlayFlags copies every explicitly set flag value from flags onto base.
func overlayFlags(cmd *cobra.Command, base, flags pipeline.Options) pipeline.Options {
	changed := cmd.Flags().Changed
	set := func(name string, dst *float64, v float64) {
		if changed(name) {
			*dst = v
		}
	}
	set("width", &base.Width, flags.Width)
	set("height", &base.Height, flags.Height)
	set("radius", &base.Radius, flags.Radius)
	set("inner-radius", &base.InnerRadius, flags.InnerRadius)
	set("outer-radius", &base.OuterRadius, flags.OuterRadius)
	set("radius-step", &base.RadiusMinStep, flags.RadiusMinStep)
	set("angle-step", &base.AngleMinStep, flags.AngleMinStep)
	if changed("angle-extent") {
		base.AngleExtent = flags.AngleExtent
	}
	if changed("radius-extent") {
		base.RadiusExtent = flags.RadiusExtent
	}
	if changed("id-field") {
		base.IDField = flags.IDField
	}
	if changed("radius-field") {
		base.RadiusField = flags.RadiusField
	}
	if changed("angle-field") {
		base.AngleField = flags.AngleField
	}
	base.Refresh = flags.Refresh
	return base
}
