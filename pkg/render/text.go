package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stopover/pkg/report"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorAmber = lipgloss.Color("220")
	colorGreen = lipgloss.Color("35")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleNight   = lipgloss.NewStyle().Foreground(colorAmber)
	styleHome    = lipgloss.NewStyle().Foreground(colorGreen)
	styleDefault = lipgloss.NewStyle()
)

// Layover markers.
const (
	MarkNight = "night"
	MarkHome  = "home"
)

// Text writes a table per worker. Workers without an itinerary get a single
// line saying why.
func Text(w io.Writer, r *report.Report) error {
	var b strings.Builder
	for i, wk := range r.Workers {
		if i > 0 {
			b.WriteString("\n")
		}
		writeWorker(&b, wk)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeWorker(b *strings.Builder, wk report.Worker) {
	title := fmt.Sprintf("Worker %d", wk.Worker)
	if wk.Best == nil {
		reason := "no itinerary met the minimum destination count"
		if wk.Interrupted {
			reason = "interrupted"
		}
		fmt.Fprintf(b, "%s  %s\n", styleTitle.Render(title), styleDim.Render(reason))
		return
	}

	t := wk.Best
	fmt.Fprintf(b, "%s  %s\n", styleTitle.Render(title), Summary(t))
	b.WriteString(Table(t))
	b.WriteString("\n")
	fmt.Fprintf(b, "%s %s\n", styleDim.Render("airports"), strings.Join(t.Airports, " "))
	if n := len(t.Legs); n > 0 {
		elapsed := t.Legs[n-1].Arrival.Sub(t.Legs[0].Departure)
		fmt.Fprintf(b, "%s %s\n", styleDim.Render("elapsed "), Duration(elapsed))
	}
}

// Summary is the one-line description of a trip.
func Summary(t *report.Trip) string {
	return fmt.Sprintf("%d destinations · %d days · %d flights · %s effective",
		t.UniqueDestinations, t.Days, t.Flights, Duration(t.Duration))
}

// LayoverNote describes the wait after leg l, or "" after the last leg.
func LayoverNote(l report.Leg, last bool) string {
	if last {
		return ""
	}
	note := Duration(l.Layover)
	switch {
	case l.HomeRest:
		note += " " + MarkHome
	case l.Overnight:
		note += " " + MarkNight
	}
	return note
}

// Table renders a trip's legs as a bordered table.
func Table(t *report.Trip) string {
	rows := make([][]string, len(t.Legs))
	for i, l := range t.Legs {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(l.Number),
			l.Origin,
			l.Destination,
			LocalTime(l.LocalDeparture()),
			LocalTime(l.LocalArrival()),
			LayoverNote(l, i == len(t.Legs)-1),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("#", "Flight", "From", "To", "Departs", "Arrives", "Layover").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col != 6 || row >= len(t.Legs) {
				return styleDefault
			}
			switch l := t.Legs[row]; {
			case l.HomeRest:
				return styleHome
			case l.Overnight:
				return styleNight
			}
			return styleDefault
		}).
		Render()
}
