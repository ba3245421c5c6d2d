package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/output"
	"vendor-risk-assessor/internal/trend"
)

const (
	maxEntries = 200
	recentRuns = 10
)

type IndexEntry struct {
	TimestampUTC      string  `json:"timestampUtc"`
	RunID             string  `json:"runId"`
	Vendors           int     `json:"vendors"`
	AverageRiskScore  float64 `json:"averageRiskScore"`
	HighestRiskVendor string  `json:"highestRiskVendor,omitempty"`
	TopControlMissed  string  `json:"topControlMissed,omitempty"`
	JSONFile          string  `json:"jsonFile"`
	MDFile            string  `json:"mdFile,omitempty"`
	HTMLFile          string  `json:"htmlFile,omitempty"`
}

type Index struct {
	Entries []IndexEntry `json:"entries"`
}

func indexPath(outDir string) string {
	return filepath.Join(outDir, "history", "index.json")
}

// Trend compares current average risk with the last recorded run under
// outDir without recording anything. Recent ends with current.
func Trend(outDir string, current float64) (model.TrendSummary, error) {
	idx, err := ReadIndex(indexPath(outDir))
	if err != nil {
		return model.TrendSummary{}, err
	}

	recent := idx.Entries
	if len(recent) > recentRuns-1 {
		recent = recent[len(recent)-(recentRuns-1):]
	}
	lastN := make([]float64, 0, len(recent)+1)
	for _, e := range recent {
		lastN = append(lastN, e.AverageRiskScore)
	}
	lastN = append(lastN, current)

	if len(idx.Entries) == 0 {
		return model.TrendSummary{Label: trend.FirstRun, Current: current, Recent: lastN}, nil
	}
	prev := idx.Entries[len(idx.Entries)-1]
	t := trend.Compute(prev.AverageRiskScore, current)
	return model.TrendSummary{
		Label:        t.RiskLabel(),
		Previous:     t.From,
		Current:      t.To,
		Delta:        t.DeltaScore,
		DeltaPercent: t.DeltaPercent,
		Recent:       lastN,
	}, nil
}

// Record archives r under outDir/history and appends it to the run index.
// Markdown and HTML reports already written to outDir are archived alongside.
func Record(outDir string, r *model.Report) error {
	historyDir := filepath.Join(outDir, "history")
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return err
	}

	idxPath := indexPath(outDir)
	idx, err := ReadIndex(idxPath)
	if err != nil {
		return err
	}

	at := r.Run.EndedAt
	if at.IsZero() {
		at = time.Now()
	}
	at = at.UTC()
	ts := at.Format("20060102-150405")

	jsonName := fmt.Sprintf("vendor-risk-report-%s.json", ts)
	mdName := fmt.Sprintf("vendor-risk-report-%s.md", ts)
	htmlName := fmt.Sprintf("vendor-risk-report-%s.html", ts)

	if err := output.WriteJSON(filepath.Join(historyDir, jsonName), r); err != nil {
		return err
	}

	entry := IndexEntry{
		TimestampUTC:     at.Format(time.RFC3339),
		RunID:            r.Run.RunID,
		AverageRiskScore: r.AverageRisk(),
		JSONFile:         filepath.ToSlash(filepath.Join("history", jsonName)),
	}
	if r.Metrics != nil {
		entry.Vendors = r.Metrics.VendorCount
		entry.HighestRiskVendor = r.Metrics.HighestRiskVendor
		entry.TopControlMissed = r.Metrics.TopControlMissed
	}
	if copyIfExists(filepath.Join(outDir, output.MarkdownFile), filepath.Join(historyDir, mdName)) {
		entry.MDFile = filepath.ToSlash(filepath.Join("history", mdName))
	}
	if copyIfExists(filepath.Join(outDir, output.HTMLFile), filepath.Join(historyDir, htmlName)) {
		entry.HTMLFile = filepath.ToSlash(filepath.Join("history", htmlName))
	}

	idx.Entries = append(idx.Entries, entry)
	if len(idx.Entries) > maxEntries {
		idx.Entries = idx.Entries[len(idx.Entries)-maxEntries:]
	}

	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(idxPath, raw, 0o644)
}

// ReadIndex loads the run index at path. A missing or empty file is an
// empty index; an unreadable one is an error so history is never silently
// truncated.
func ReadIndex(path string) (Index, error) {
	var idx Index
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return idx, nil
	}
	if err != nil {
		return idx, err
	}
	if len(raw) == 0 {
		return idx, nil
	}
	if err := json.Unmarshal(raw, &idx); err != nil {
		return idx, fmt.Errorf("history index %s: %w", path, err)
	}
	return idx, nil
}

func copyIfExists(src, dst string) bool {
	raw, err := os.ReadFile(src)
	if err != nil {
		return false
	}
	return os.WriteFile(dst, raw, 0o644) == nil
}
