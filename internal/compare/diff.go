package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/risk"
)

// Diff compares prev against curr and returns a ComparisonSummary for curr.
// Every list in the result is sorted.
func Diff(prev, curr *model.Report) model.ComparisonSummary {
	r := model.ComparisonSummary{
		PreviousRunID:       prev.Run.RunID,
		PreviousAverageRisk: prev.AverageRisk(),
		AverageRiskDelta:    risk.Round(curr.AverageRisk()-prev.AverageRisk(), 2),
	}
	if !prev.Run.EndedAt.IsZero() {
		r.PreviousGeneratedAt = prev.Run.EndedAt.UTC().Format(time.RFC3339)
	}

	vendors := setDelta(keys(prev.SystemRiskScores), keys(curr.SystemRiskScores))
	r.VendorsAdded, r.VendorsRemoved = vendors.added, vendors.removed

	for v, to := range curr.SystemRiskScores {
		from, ok := prev.SystemRiskScores[v]
		if !ok || from == to {
			continue
		}
		r.ScoreChanges = append(r.ScoreChanges, model.VendorDelta{
			Vendor: v,
			From:   from,
			To:     to,
			Delta:  risk.Round(to-from, 2),
		})
	}
	sort.Slice(r.ScoreChanges, func(i, j int) bool {
		return r.ScoreChanges[i].Vendor < r.ScoreChanges[j].Vendor
	})

	controls := setDelta(keys(prev.MissedControlsFrequency), keys(curr.MissedControlsFrequency))
	r.ControlsNewlyMissed, r.ControlsResolved = controls.added, controls.removed

	return r
}

// Load reads a report previously written by the JSON writer.
func Load(path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}
	return &r, nil
}

type delta struct {
	added   []string
	removed []string
}

func keys[V any](m map[string]V) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func setDelta(prev, curr map[string]struct{}) delta {
	var d delta
	for k := range curr {
		if _, ok := prev[k]; !ok {
			d.added = append(d.added, k)
		}
	}
	for k := range prev {
		if _, ok := curr[k]; !ok {
			d.removed = append(d.removed, k)
		}
	}
	sort.Strings(d.added)
	sort.Strings(d.removed)
	return d
}
