package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"vendor-risk-assessor/internal/model"
)

// WriteRedactedJSON writes a copy of the report with vendor identities
// replaced by opaque tokens.
func WriteRedactedJSON(path string, r *model.Report) error {
	red, err := Redact(r)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(red, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Redact returns a deep copy of r in which every vendor identifier becomes
// vendor-N, numbered in report order, and source paths are dropped. Scores,
// answers and controls are preserved.
func Redact(r *model.Report) (*model.Report, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("redact: %w", err)
	}
	var out model.Report
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("redact: %w", err)
	}

	tokens := map[string]string{}
	token := func(vendor string) string {
		if vendor == "" {
			return ""
		}
		t, ok := tokens[vendor]
		if !ok {
			t = fmt.Sprintf("vendor-%d", len(tokens)+1)
			tokens[vendor] = t
		}
		return t
	}
	for _, v := range r.Vendors {
		token(v.Vendor)
	}
	for _, v := range sortedKeys(r.SystemRiskScores) {
		token(v)
	}

	for i := range out.Vendors {
		out.Vendors[i].Vendor = token(out.Vendors[i].Vendor)
		out.Vendors[i].Source = "[redacted]"
	}

	scores := make(map[string]float64, len(out.SystemRiskScores))
	for v, s := range out.SystemRiskScores {
		scores[token(v)] = s
	}
	out.SystemRiskScores = scores

	for i := range out.Questions {
		answers := make(map[string]string, len(out.Questions[i].Answers))
		for v, a := range out.Questions[i].Answers {
			answers[token(v)] = a
		}
		out.Questions[i].Answers = answers
	}

	if out.Metrics != nil {
		out.Metrics.HighestRiskVendor = token(out.Metrics.HighestRiskVendor)
		out.Metrics.LowestRiskVendor = token(out.Metrics.LowestRiskVendor)
	}

	for i := range out.Diagnostics {
		out.Diagnostics[i].Vendor = token(out.Diagnostics[i].Vendor)
		if out.Diagnostics[i].Source != "" {
			out.Diagnostics[i].Source = "[redacted]"
		}
	}

	if c := out.Comparison; c != nil {
		for i, v := range c.VendorsAdded {
			c.VendorsAdded[i] = token(v)
		}
		for i, v := range c.VendorsRemoved {
			c.VendorsRemoved[i] = token(v)
		}
		for i := range c.ScoreChanges {
			c.ScoreChanges[i].Vendor = token(c.ScoreChanges[i].Vendor)
		}
	}

	if out.Run.VendorDir != "" {
		out.Run.VendorDir = "[redacted]"
	}
	return &out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
