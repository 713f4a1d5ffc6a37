package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stopover/pkg/config"
	"github.com/matzehuels/stopover/pkg/errors"
	"github.com/matzehuels/stopover/pkg/observability"
	"github.com/matzehuels/stopover/pkg/pipeline"
	"github.com/matzehuels/stopover/pkg/report"
	"github.com/matzehuels/stopover/pkg/search"
)

// interruptedWarning is printed when a search is stopped before every worker
// finished.
const interruptedWarning = "Search interrupted; interrupted workers report no itinerary, showing finished workers only"

// searchOpts holds the command-line flags for the search command.
type searchOpts struct {
	data       string // overrides data.path
	home       string // overrides search.home
	workers    int    // overrides search.workers when positive
	formats    string // comma-separated output formats
	output     string // output directory; empty prints text and json to stdout
	noCache    bool
	refresh    bool
	tui        bool
	statusAddr string
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var opts searchOpts

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find the itinerary with the most destinations",
		Long: `Search the flight schedule for round trips from the home airport.

The starting flights are split across workers and every worker searches its
share independently. Each worker reports its own best itinerary; results
are not merged.

Identical searches (same schedule file, same search-relevant settings) are
answered from the result cache. Use --refresh to search again, or
--no-cache to bypass the cache entirely.

Press Ctrl+C to stop early. Interrupted workers report no itinerary; only
workers that finished their share are shown.`,
		Example: `  stopover search --config stopover.toml
  stopover search --workers 8 --tui
  stopover search -f text,svg -o out/ --status-addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.data, "data", "", "flight schedule CSV (overrides data.path)")
	cmd.Flags().StringVar(&opts.home, "home", "", "home airport (overrides search.home)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel workers (default: config, else all CPUs but one)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): text (default), json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: print to stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and search again")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show live per-worker progress")
	cmd.Flags().StringVar(&opts.statusAddr, "status-addr", "", "serve progress and metrics over HTTP on this address")

	return cmd
}

// applyOverrides copies flag overrides into cfg and revalidates it.
func (o searchOpts) applyOverrides(cfg *config.Config) error {
	if o.data == "" && o.home == "" {
		return nil
	}
	if o.data != "" {
		cfg.Data.Path = o.data
	}
	if o.home != "" {
		cfg.Search.Home = o.home
	}
	return cfg.Validate()
}

func (c *CLI) runSearch(ctx context.Context, opts searchOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.applyOverrides(cfg); err != nil {
		return err
	}

	runner := c.newRunner(ctx, cfg, opts.noCache)
	defer runner.Close()

	popts := pipeline.Options{Config: cfg, Workers: opts.workers, Refresh: opts.refresh}
	popts.Progress = search.NewProgress(popts.ResolvedWorkers())

	if opts.statusAddr != "" {
		reg := registerMetrics()
		defer observability.Reset()
		stop, err := serveStatus(opts.statusAddr, &statusServer{
			progress: popts.Progress,
			rules:    cfg.Rules(),
			cfg:      cfg.SearchConfig(),
			gatherer: reg,
			started:  time.Now(),
		}, c.Logger)
		if err != nil {
			return fmt.Errorf("status server: %w", err)
		}
		defer stop()
	}

	var res *pipeline.Result
	if opts.tui {
		res, err = c.executeWithTUI(ctx, runner, popts)
	} else {
		res, err = c.executeWithSpinner(ctx, runner, popts)
	}
	interrupted := errors.Is(err, errors.ErrCodeInterrupted) && res != nil
	if err != nil && !interrupted {
		return err
	}

	if interrupted {
		printWarning(interruptedWarning)
	}
	printStats(res.Stats, res.CacheHit)
	if werr := c.writeOutputs(ctx, res.Report, formats, opts.output); werr != nil {
		return werr
	}
	if res.Run != nil {
		printNextStep("Inspect this run", fmt.Sprintf("%s runs show %s", appName, res.Run.ID))
	}
	return err
}

func (c *CLI) executeWithSpinner(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinner(ctx, "Searching", func() string {
		if n := opts.Progress.Processed(); n > 0 {
			return formatCount(n) + " plans"
		}
		return ""
	})
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	spinner.Stop()
	return res, err
}

// executeWithTUI runs the search behind the progress display. Logging is
// limited to errors while the display owns the terminal.
func (c *CLI) executeWithTUI(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	level := c.Logger.GetLevel()
	c.Logger.SetLevel(LogError)
	defer c.Logger.SetLevel(level)

	p := tea.NewProgram(NewProgressModel(opts.Progress, cancel), tea.WithOutput(os.Stderr))
	done := make(chan searchDoneMsg, 1)
	go func() {
		res, err := runner.Execute(searchCtx, opts)
		msg := searchDoneMsg{result: res, err: err}
		done <- msg
		p.Send(msg)
	}()

	final, err := p.Run()
	if err != nil {
		// The display failed; keep searching without it.
		c.Logger.SetLevel(level)
		c.Logger.Warn("progress display unavailable", "err", err)
		msg := <-done
		return msg.result, msg.err
	}
	m := final.(ProgressModel)
	return m.Result, m.Err
}

// writeOutputs renders the report. Without an output directory, text and
// JSON go to stdout and diagrams to the working directory.
func (c *CLI) writeOutputs(ctx context.Context, rep *report.Report, formats []string, dir string) error {
	artifacts, err := pipeline.Render(ctx, rep, formats)
	if err != nil {
		return err
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	var written []string
	for _, a := range artifacts {
		if dir == "" && (a.Format == pipeline.FormatText || a.Format == pipeline.FormatJSON) {
			if _, err := stdout.Write(a.Data); err != nil {
				return err
			}
			continue
		}
		path := filepath.Join(dir, a.Name)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	if len(written) > 0 {
		printSuccess("Wrote %d file(s)", len(written))
		for _, p := range written {
			printFile(p)
		}
	}
	return nil
}
