package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stopover/pkg/render"
	"github.com/matzehuels/stopover/pkg/store"
)

// runsCommand creates the run history command.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the history of searches",
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())
	cmd.AddCommand(c.runsDeleteCommand())

	return cmd
}

// withStore opens the configured run store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	s, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer s.Close()
	return fn(s)
}

func (c *CLI) runsListCommand() *cobra.Command {
	limit := defaultRunsLimit
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				runs, err := s.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					printInfo("No runs recorded")
					return nil
				}
				fmt.Fprintln(stdout, runsTable(runs))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", limit, "maximum runs to list (0 for all)")
	return cmd
}

func (c *CLI) runsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recorded run and its itineraries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				run, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printKeyValue("Run", run.ID)
				printKeyValue("Created", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				printKeyValue("Schedule", run.DataPath)
				printKeyValue("Config hash", shortHash(run.ConfigHash))
				printKeyValue("Workers", fmt.Sprint(run.Workers))
				printKeyValue("Source", runSource(run))
				fmt.Fprintln(stdout)
				if run.Report == nil {
					printInfo("Run has no report")
					return nil
				}
				return render.Text(stdout, run.Report)
			})
		},
	}
}

func (c *CLI) runsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete recorded runs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				for _, id := range args {
					if err := s.Delete(cmd.Context(), id); err != nil {
						return err
					}
				}
				printSuccess("Deleted %d run(s)", len(args))
				return nil
			})
		},
	}
}

func runsTable(runs []*store.Run) string {
	rows := make([][]string, len(runs))
	for i, r := range runs {
		found, workers := "—", fmt.Sprint(r.Workers)
		if r.Report != nil {
			found = fmt.Sprintf("%d/%d workers", len(r.Report.Found()), len(r.Report.Workers))
		}
		rows[i] = []string{
			r.ID,
			r.CreatedAt.Local().Format("Jan 2 15:04"),
			workers,
			found,
			runSource(r),
		}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Created", "Workers", "Found", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}

func runSource(r *store.Run) string {
	switch {
	case r.CacheHit:
		return iconCached
	case r.Report != nil && r.Report.Interrupted:
		return "interrupted"
	}
	return iconFresh
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
