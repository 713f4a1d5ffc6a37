package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stopover/pkg/pipeline"
	"github.com/matzehuels/stopover/pkg/render/nodelink"
)

type graphOpts struct {
	data string
	top  int
	dot  string // write the airport network as DOT here
	svg  string // write the airport network as SVG here
}

// graphCommand creates the graph command for inspecting the flight graph.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{top: 10}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show statistics of the flight connection graph",
		Long: `Load the schedule, build the graph of legal connections and print its
size, the number of starting flights and the busiest hubs.

With --dot or --svg the airport network (one edge per route, weighted by
onward connections) is also written to a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.data, "data", "", "flight schedule CSV (overrides data.path)")
	cmd.Flags().IntVarP(&opts.top, "top", "n", opts.top, "number of hubs to list (0 for all)")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the airport network as DOT")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write the airport network as SVG")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, opts graphOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.data != "" {
		cfg.Data.Path = opts.data
	}

	logger := loggerFromContext(ctx)
	st := startStage(logger, "loaded flight graph")
	spinner := newSpinner(ctx, "Loading "+cfg.Data.Path, nil)
	spinner.Start()
	ds, err := pipeline.Load(ctx, cfg, logger)
	spinner.Stop()
	if err != nil {
		return err
	}
	st.done("airports", len(ds.Catalog.Airports()), "edges", ds.Graph.EdgeCount())

	fmt.Fprintln(stdout, StyleTitle.Render("Flight graph"))
	printKeyValue("Schedule", cfg.Data.Path)
	printKeyValue("Records", fmt.Sprint(len(ds.Records)))
	printKeyValue("Airports", fmt.Sprint(len(ds.Catalog.Airports())))
	printKeyValue("Flights", fmt.Sprint(ds.Graph.FlightCount()))
	printKeyValue("Connections", fmt.Sprint(ds.Graph.EdgeCount()))
	printKeyValue("Starts", fmt.Sprintf("%d from %s", len(ds.Starts(cfg)), cfg.Search.Home))
	fmt.Fprintln(stdout)

	if hubs := ds.Hubs(opts.top); len(hubs) > 0 {
		fmt.Fprintln(stdout, hubTable(hubs))
	}

	if opts.dot == "" && opts.svg == "" {
		return nil
	}
	dot := nodelink.NetworkDOT(ds.Graph.AirportLinks(), nodelink.Options{Home: cfg.Search.Home})
	if opts.dot != "" {
		if err := os.WriteFile(opts.dot, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.dot, err)
		}
		printFile(opts.dot)
	}
	if opts.svg != "" {
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render network: %w", err)
		}
		if err := os.WriteFile(opts.svg, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.svg, err)
		}
		printFile(opts.svg)
	}
	return nil
}

func hubTable(hubs []pipeline.Hub) string {
	rows := make([][]string, len(hubs))
	for i, h := range hubs {
		rows[i] = []string{h.Airport, fmt.Sprint(h.Routes), fmt.Sprint(h.Flights), fmt.Sprint(h.Connections)}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Hub", "Routes", "Flights", "Connections").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return StyleNumber
			}
			return StyleValue
		}).
		Render()
}
