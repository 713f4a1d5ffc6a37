package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stopover/pkg/pipeline"
	"github.com/matzehuels/stopover/pkg/search"
)

const tuiRefresh = 250 * time.Millisecond

var (
	tuiHeaderStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tuiDoneStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	tuiRunningStyle = lipgloss.NewStyle().Foreground(colorWhite)
	tuiDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

type tickMsg time.Time

// searchDoneMsg carries the outcome of Runner.Execute into the model.
type searchDoneMsg struct {
	result *pipeline.Result
	err    error
}

func tick() tea.Cmd {
	return tea.Tick(tuiRefresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// =============================================================================
// ProgressModel - live per-worker search progress
// =============================================================================

// ProgressModel is the bubbletea model behind `search --tui`. It polls a
// search.Progress and quits when the search reports back. Pressing q
// cancels the search; the model then waits for the interrupted result.
type ProgressModel struct {
	progress *search.Progress
	cancel   context.CancelFunc
	started  time.Time
	now      time.Time
	stopping bool

	Result *pipeline.Result
	Err    error
}

// NewProgressModel creates a model over p. cancel stops the search.
func NewProgressModel(p *search.Progress, cancel context.CancelFunc) ProgressModel {
	now := time.Now()
	return ProgressModel{progress: p, cancel: cancel, started: now, now: now}
}

func (m ProgressModel) Init() tea.Cmd {
	return tick()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.stopping {
				m.stopping = true
				m.cancel()
			}
		}
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	case searchDoneMsg:
		m.Result, m.Err = msg.result, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Searching itineraries"))
	b.WriteString("  ")
	b.WriteString(tuiDimStyle.Render(m.now.Sub(m.started).Round(time.Second).String()))
	b.WriteString("\n\n")

	snap := m.progress.Snapshot()
	rows := make([][]string, len(snap))
	for i, w := range snap {
		rows[i] = []string{
			fmt.Sprint(w.Worker),
			fmt.Sprint(w.Starts),
			formatCount(w.Processed),
			formatCount(w.Frontier),
			bestSummary(w),
			workerState(w),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Worker", "Starts", "Plans", "Frontier", "Best", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tuiHeaderStyle
			}
			if row < len(snap) && snap[row].Done {
				return tuiDoneStyle
			}
			return tuiRunningStyle
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	footer := fmt.Sprintf("  %s plans", formatCount(m.progress.Processed()))
	if m.stopping {
		footer += " · stopping..."
	} else {
		footer += " · q stop"
	}
	b.WriteString(tuiDimStyle.Render(footer))
	b.WriteString("\n")
	return b.String()
}

func bestSummary(w search.WorkerStatus) string {
	if w.Best == nil {
		return "—"
	}
	s := w.Best.Stats
	return fmt.Sprintf("%d dests · %d days · %d flights", s.UniqueDestinations, s.Days, s.Flights)
}

func workerState(w search.WorkerStatus) string {
	if w.Done {
		return "done"
	}
	return "running"
}

// formatCount abbreviates large counters: 950, 12.3k, 4.56M.
func formatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(n)/1e6)
	case n >= 10_000:
		return fmt.Sprintf("%.1fk", float64(n)/1e3)
	}
	return fmt.Sprint(n)
}
