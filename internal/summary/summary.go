// Package summary derives population-level statistics from a folded Dataset.
package summary

import (
	"log/slog"
	"sort"

	"vendor-risk-assessor/internal/logging"
	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/risk"
)

const topN = 5

// Calculate computes Metrics over ds without mutating it. Every max/min pick
// keeps the first candidate in dataset order: vendors in fold order,
// questions and categories in first-seen order. An empty dataset yields
// zero Metrics and a NO_VENDOR_DATA warning.
func Calculate(ds *model.Dataset, logger *slog.Logger) model.Metrics {
	log := logging.OrDiscard(logger)
	if ds == nil || len(ds.SystemRiskScores) == 0 {
		log.Warn("no vendor data to summarize", "kind", model.NoVendorData)
		return model.Metrics{}
	}

	m := model.Metrics{
		VendorCount:            len(ds.VendorOrder),
		Top5Risks:              []string{},
		FullySatisfiedControls: []string{},
		CategoryAvgScores:      map[string]float64{},
		Top5MissedControls:     []model.ControlFrequency{},
	}

	vendorRisk(ds, &m)
	controlRisk(ds, &m)
	categoryRisk(ds, &m)
	missedControls(ds, &m)

	log.Info("summary computed",
		"vendors", m.VendorCount,
		"average_risk_score", m.AverageRiskScore,
		"highest_risk_vendor", m.HighestRiskVendor,
		"top_control_missed", m.TopControlMissed)
	return m
}

func vendorRisk(ds *model.Dataset, m *model.Metrics) {
	scores := make([]float64, 0, len(ds.VendorOrder))
	for i, v := range ds.VendorOrder {
		s := ds.SystemRiskScores[v]
		scores = append(scores, s)
		if i == 0 || s > ds.SystemRiskScores[m.HighestRiskVendor] {
			m.HighestRiskVendor = v
		}
		if i == 0 || s < ds.SystemRiskScores[m.LowestRiskVendor] {
			m.LowestRiskVendor = v
		}
	}
	m.AverageRiskScore = risk.Mean(scores)
}

// ControlMisses lists the vendors that missed one control.
type ControlMisses struct {
	Question string
	Vendors  []string
}

// ControlScores recomputes, from the recorded answers, which vendors diverged
// from each question's expected outcome. Only questions with at least one
// miss are returned, in first-seen order.
func ControlScores(ds *model.Dataset) []ControlMisses {
	var out []ControlMisses
	for _, q := range ds.QuestionOrder {
		rec := ds.Questions[q]
		var missed []string
		for _, v := range ds.VendorOrder {
			if rec.Missed(v) {
				missed = append(missed, v)
			}
		}
		if len(missed) > 0 {
			out = append(out, ControlMisses{Question: q, Vendors: missed})
		}
	}
	return out
}

func controlRisk(ds *model.Dataset, m *model.Metrics) {
	scores := ControlScores(ds)
	missed := make(map[string]bool, len(scores))
	var most, least int
	for i, c := range scores {
		missed[c.Question] = true
		n := len(c.Vendors)
		if i == 0 || n > most {
			m.HighestRiskControl, most = c.Question, n
		}
		if i == 0 || n < least {
			m.LowestRiskControl, least = c.Question, n
		}
	}
	m.TopControlSatisfied = m.LowestRiskControl

	ranked := make([]ControlMisses, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].Vendors) > len(ranked[j].Vendors)
	})
	for i := 0; i < len(ranked) && i < topN; i++ {
		m.Top5Risks = append(m.Top5Risks, ranked[i].Question)
	}
	if len(m.Top5Risks) > 0 {
		m.TopControlMissed = m.Top5Risks[0]
	}

	for _, q := range ds.QuestionOrder {
		if !missed[q] {
			m.FullySatisfiedControls = append(m.FullySatisfiedControls, q)
		}
	}
}

func categoryRisk(ds *model.Dataset, m *model.Metrics) {
	var order []string
	values := map[string][]float64{}
	for _, v := range ds.VendorOrder {
		cs := ds.CategoryScores[v]
		for _, c := range cs.Categories() {
			score, _ := cs.Get(c)
			if _, seen := values[c]; !seen {
				order = append(order, c)
			}
			values[c] = append(values[c], score)
		}
	}

	// Picks compare the unrounded means; only the reported values are rounded.
	means := make(map[string]float64, len(order))
	for i, c := range order {
		avg := risk.Average(values[c])
		means[c] = avg
		m.CategoryAvgScores[c] = risk.Round(avg, 2)
		if i == 0 || avg > means[m.TopCategoryFailing] {
			m.TopCategoryFailing = c
		}
		if i == 0 || avg < means[m.TopCategoryPassed] {
			m.TopCategoryPassed = c
		}
	}
}

func missedControls(ds *model.Dataset, m *model.Metrics) {
	ranked := make([]model.ControlFrequency, 0, len(ds.MissOrder))
	for _, q := range ds.MissOrder {
		ranked = append(ranked, model.ControlFrequency{Question: q, Count: ds.MissedControlsFrequency[q]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	m.Top5MissedControls = ranked
}
