// Package cli implements the stopover command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stopover/pkg/buildinfo"
	"github.com/matzehuels/stopover/pkg/cache"
	"github.com/matzehuels/stopover/pkg/config"
	"github.com/matzehuels/stopover/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "stopover"

	// defaultRunsLimit is how many runs `runs list` shows by default.
	defaultRunsLimit = 20

	// resultKeyScope versions cached reports. Bump it when report.Report
	// changes shape.
	resultKeyScope = "v1:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config flag. Empty means built-in defaults.
	ConfigPath string
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
		Use:   appName,
		Short: "Stopover finds flight itineraries that visit the most airports",
		Long: `Stopover searches a flight schedule for round trips from a home airport
that visit as many distinct destinations as possible, subject to layover,
overnight and trip-length rules. The search is split across parallel
workers and each worker reports its own best itinerary.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.ConfigPath, "config", "c", "", "config file (.toml, .yaml or .yml)")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the configuration named by --config.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", c.ConfigPath, "home", cfg.Search.Home, "data", cfg.Data.Path)
	return cfg, nil
}

// newRunner creates a pipeline runner backed by the configured cache and
// store. An unreachable backend degrades to none with a warning.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) *pipeline.Runner {
	resultCache := c.openCache(ctx, cfg, noCache)
	runs := c.openStore(ctx, cfg)
	return pipeline.NewRunner(resultCache, cache.NewScopedKeyer(nil, resultKeyScope), runs, c.Logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatText}
	}
	return strings.Split(s, ",")
}
