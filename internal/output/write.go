package output

import (
	"fmt"
	"os"
	"path/filepath"

	"vendor-risk-assessor/internal/model"
)

// Supported report formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatCSV      = "csv"
)

// Options selects which reports WriteAll produces.
type Options struct {
	Formats []string
	Redact  bool
}

// WriteAll writes every requested format into outDir and returns the paths
// written, in the order written. The html format also produces the
// executive summary page.
func WriteAll(outDir string, r *model.Report, opts Options) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	write := func(name string, fn func(string, *model.Report) error) error {
		path := filepath.Join(outDir, name)
		if err := fn(path, r); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	for _, format := range opts.Formats {
		var err error
		switch format {
		case FormatJSON:
			err = write(JSONFile, WriteJSON)
		case FormatMarkdown:
			err = write(MarkdownFile, WriteMarkdown)
		case FormatHTML:
			if err = write(HTMLFile, WriteHTML); err == nil {
				err = write(SummaryFile, WriteSummary)
			}
		case FormatCSV:
			if err = WriteCSV(outDir, r); err == nil {
				written = append(written, filepath.Join(outDir, CSVDir))
			}
		default:
			err = fmt.Errorf("unknown report format %q", format)
		}
		if err != nil {
			return written, err
		}
	}

	if opts.Redact {
		if err := write(RedactedJSONFile, WriteRedactedJSON); err != nil {
			return written, err
		}
	}
	return written, nil
}
