// Package remediation turns a vendor's missed controls into a prioritized
// follow-up list.
package remediation

import (
	"fmt"
	"sort"

	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/taxonomy"
)

// Priority maps a risk level to a follow-up priority: High first, then
// Medium, then Low and anything unrated.
func Priority(level string) int {
	switch level {
	case taxonomy.High:
		return 1
	case taxonomy.Medium:
		return 2
	default:
		return 3
	}
}

// Generate produces one step per control vendor missed, sorted by priority.
// Steps of equal priority keep the order in which the controls were missed.
// Controls absent from ds are skipped.
func Generate(ds *model.Dataset, vendor string, missed []string) []model.RemediationStep {
	steps := make([]model.RemediationStep, 0, len(missed))
	seen := make(map[string]bool, len(missed))
	for _, q := range missed {
		if seen[q] {
			continue
		}
		seen[q] = true
		rec, ok := ds.Questions[q]
		if !ok {
			continue
		}
		steps = append(steps, stepFor(rec, vendor))
	}

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Priority < steps[j].Priority
	})
	return steps
}

func stepFor(rec *model.ScoredQuestion, vendor string) model.RemediationStep {
	actual := rec.Answers[vendor]
	s := model.RemediationStep{
		Priority:    Priority(rec.RiskLevel),
		Control:     rec.Question,
		Category:    rec.Category,
		SubCategory: rec.SubCategory,
		RiskLevel:   rec.RiskLevel,
		Expected:    rec.ExpectedOutcome,
		Actual:      actual,
	}
	switch s.Priority {
	case 1:
		s.Title = fmt.Sprintf("Close high-risk gap in %s", categoryLabel(rec))
	case 2:
		s.Title = fmt.Sprintf("Address %s control", categoryLabel(rec))
	default:
		s.Title = fmt.Sprintf("Review %s control", categoryLabel(rec))
	}
	if actual == "" {
		s.Detail = fmt.Sprintf("No answer given; expected %q.", rec.ExpectedOutcome)
	} else {
		s.Detail = fmt.Sprintf("Answered %q; expected %q.", actual, rec.ExpectedOutcome)
	}
	return s
}

func categoryLabel(rec *model.ScoredQuestion) string {
	if rec.SubCategory == "" || rec.SubCategory == taxonomy.UnknownSubCategory {
		return rec.Category
	}
	return rec.Category + " / " + rec.SubCategory
}
