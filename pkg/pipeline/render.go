package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/stopover/pkg/render"
	"github.com/matzehuels/stopover/pkg/render/nodelink"
	"github.com/matzehuels/stopover/pkg/report"
)

// Artifact is one rendered output.
type Artifact struct {
	// Name is a file name suggestion: "itinerary.txt", "report.json",
	// "worker-3.svg".
	Name   string
	Format string
	Data   []byte
}

// Render produces artifacts in the requested formats. Text and JSON cover
// the whole report. DOT and SVG draw one diagram per worker that found a
// trip.
func Render(ctx context.Context, rep *report.Report, formats []string) ([]Artifact, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	var out []Artifact
	for _, format := range formats {
		switch format {
		case FormatText:
			var buf bytes.Buffer
			if err := render.Text(&buf, rep); err != nil {
				return nil, fmt.Errorf("render text: %w", err)
			}
			out = append(out, Artifact{Name: "itinerary.txt", Format: format, Data: buf.Bytes()})

		case FormatJSON:
			var buf bytes.Buffer
			if err := render.JSON(&buf, rep); err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			out = append(out, Artifact{Name: "report.json", Format: format, Data: buf.Bytes()})

		case FormatDOT, FormatSVG:
			for _, w := range rep.Found() {
				dot := nodelink.ItineraryDOT(w.Best, nodelink.Options{Home: rep.Home, Detailed: true})
				data := []byte(dot)
				if format == FormatSVG {
					var err error
					if data, err = nodelink.RenderSVG(ctx, dot); err != nil {
						return nil, fmt.Errorf("render svg for worker %d: %w", w.Worker, err)
					}
				}
				out = append(out, Artifact{
					Name:   fmt.Sprintf("worker-%d.%s", w.Worker, format),
					Format: format,
					Data:   data,
				})
			}
		}
	}
	return out, nil
}
