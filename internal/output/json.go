package output

import (
	"encoding/json"
	"os"

	"vendor-risk-assessor/internal/model"
)

// Report file names inside the output directory.
const (
	JSONFile         = "vendor-risk-report.json"
	RedactedJSONFile = "vendor-risk-report-redacted.json"
	MarkdownFile     = "vendor-risk-report.md"
	HTMLFile         = "vendor-risk-report.html"
	SummaryFile      = "vendor-risk-summary.html"
	CSVDir           = "csv"
)

func WriteJSON(path string, r *model.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
