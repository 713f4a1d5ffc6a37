package render

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/stopover/pkg/report"
)

// JSON writes r as indented JSON.
func JSON(w io.Writer, r *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
