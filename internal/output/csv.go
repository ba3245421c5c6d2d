package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"vendor-risk-assessor/internal/model"
)

// WriteCSV writes one CSV file per report section to outDir/csv/.
// Files are UTF-8 with BOM for clean Excel opening on Windows.
func WriteCSV(outDir string, r *model.Report) error {
	dir := filepath.Join(outDir, CSVDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("csv: mkdir: %w", err)
	}
	writers := []func(string, *model.Report) error{
		writeVendorScoresCSV,
		writeQuestionsCSV,
		writeMissedControlsCSV,
		writeCategoryScoresCSV,
		writeRemediationCSV,
		writeDiagnosticsCSV,
	}
	for _, fn := range writers {
		if err := fn(dir, r); err != nil {
			return err
		}
	}
	return nil
}

func csvFile(dir, name string) (*os.File, *csv.Writer, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, nil, err
	}
	// UTF-8 BOM for Excel
	_, _ = f.Write([]byte{0xEF, 0xBB, 0xBF})
	return f, csv.NewWriter(f), nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func writeVendorScoresCSV(dir string, r *model.Report) error {
	f, w, err := csvFile(dir, "vendor-scores.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Vendor", "Source", "Risk Score %", "Risk Score", "Max Possible Score", "Posture", "Maturity", "Questions Answered", "Missed Controls"})
	for _, v := range r.Vendors {
		_ = w.Write([]string{v.Vendor, v.Source, num(v.RiskScorePercent), strconv.Itoa(v.RiskScore), strconv.Itoa(v.MaxPossibleScore), v.Posture, v.Maturity, strconv.Itoa(v.QuestionsAnswered), strings.Join(v.MissedControls, ";")})
	}
	w.Flush()
	return w.Error()
}

// writeQuestionsCSV writes the answer matrix: one row per control, one
// column per vendor.
func writeQuestionsCSV(dir string, r *model.Report) error {
	f, w, err := csvFile(dir, "questions.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	vendors := reportVendors(r)
	header := []string{"Question", "Category", "Sub Category", "Risk Level", "Expected", "Missed By"}
	_ = w.Write(append(header, vendors...))
	for _, q := range r.Questions {
		row := []string{q.Question, q.Category, q.SubCategory, q.RiskLevel, q.ExpectedOutcome, ""}
		missed := 0
		for _, v := range vendors {
			row = append(row, q.Answers[v])
			if q.Missed(v) {
				missed++
			}
		}
		row[5] = strconv.Itoa(missed)
		_ = w.Write(row)
	}
	w.Flush()
	return w.Error()
}

func writeMissedControlsCSV(dir string, r *model.Report) error {
	f, w, err := csvFile(dir, "missed-controls.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Question", "Vendors Missing"})
	// Rows follow the questions list so the file is stable across runs.
	for _, q := range r.Questions {
		if n, ok := r.MissedControlsFrequency[q.Question]; ok {
			_ = w.Write([]string{q.Question, strconv.Itoa(n)})
		}
	}
	w.Flush()
	return w.Error()
}

func writeCategoryScoresCSV(dir string, r *model.Report) error {
	f, w, err := csvFile(dir, "category-scores.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Vendor", "Category", "Weighted Misses"})
	for _, v := range r.Vendors {
		for _, c := range sortedKeys(v.CategoryScores) {
			_ = w.Write([]string{v.Vendor, c, num(v.CategoryScores[c])})
		}
	}
	if r.Metrics != nil {
		for _, c := range sortedKeys(r.Metrics.CategoryAvgScores) {
			_ = w.Write([]string{"(average)", c, num(r.Metrics.CategoryAvgScores[c])})
		}
	}
	w.Flush()
	return w.Error()
}

func writeRemediationCSV(dir string, r *model.Report) error {
	f, w, err := csvFile(dir, "remediation.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Vendor", "Priority", "Control", "Category", "Sub Category", "Risk Level", "Expected", "Actual", "Title"})
	for _, v := range r.Vendors {
		for _, s := range v.Remediation {
			_ = w.Write([]string{v.Vendor, strconv.Itoa(s.Priority), s.Control, s.Category, s.SubCategory, s.RiskLevel, s.Expected, s.Actual, s.Title})
		}
	}
	w.Flush()
	return w.Error()
}

func writeDiagnosticsCSV(dir string, r *model.Report) error {
	f, w, err := csvFile(dir, "diagnostics.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Kind", "Vendor", "Source", "Question", "Item", "Message"})
	for _, d := range r.Diagnostics {
		_ = w.Write([]string{string(d.Kind), d.Vendor, d.Source, d.Question, d.Item, d.Message})
	}
	w.Flush()
	return w.Error()
}

// reportVendors returns vendor identifiers in report order, falling back to
// the sorted score keys when no per-vendor summaries are present.
func reportVendors(r *model.Report) []string {
	if len(r.Vendors) > 0 {
		out := make([]string, 0, len(r.Vendors))
		for _, v := range r.Vendors {
			out = append(out, v.Vendor)
		}
		return out
	}
	return sortedKeys(r.SystemRiskScores)
}
