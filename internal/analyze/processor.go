package analyze

import (
	"fmt"
	"log/slog"
	"strings"

	"vendor-risk-assessor/internal/logging"
	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/risk"
	"vendor-risk-assessor/internal/taxonomy"
)

// Resolver resolves a question against the risk taxonomy, returning the
// default entry and false when the question is unknown.
type Resolver interface {
	Resolve(question string) (taxonomy.Entry, bool)
}

// ProcessVendor scores one vendor's answers. Every resolved control adds its
// weight to the maximum possible score; a control whose answer differs from
// the expected outcome (exact, case-sensitive) adds its weight to the vendor
// score and its category, and is listed as missed. Unreadable items are
// skipped with a diagnostic and never stop the run.
func ProcessVendor(items []model.SourceItem, tax Resolver, vendor, source string, logger *slog.Logger) model.VendorResult {
	log := logging.OrDiscard(logger).With("vendor", vendor, "source", source)

	res := model.VendorResult{
		Vendor:         vendor,
		Source:         source,
		Records:        make(map[string]model.ScoredQuestion, len(items)),
		QuestionOrder:  make([]string, 0, len(items)),
		CategoryScores: model.NewCategoryScores(),
		MissedControls: []string{},
	}

	for i, item := range items {
		if item.Problem != "" {
			res.Diagnostics = append(res.Diagnostics, malformed(vendor, source, i, item, item.Problem, log))
			continue
		}
		question := strings.TrimSpace(item.Question)
		if question == "" {
			res.Diagnostics = append(res.Diagnostics, malformed(vendor, source, i, item, "missing question text", log))
			continue
		}

		entry, known := tax.Resolve(question)
		if !known {
			d := model.Diagnostic{
				Kind:     model.UnresolvedQuestion,
				Vendor:   vendor,
				Source:   source,
				Question: question,
				Message: fmt.Sprintf("question not found in risk taxonomy, added with defaults (category=%s, risk_level=%s, expected=%s)",
					entry.Category, entry.RiskLevel, entry.Expected),
			}
			log.Warn(d.Message, "kind", d.Kind, "question", question)
			res.Diagnostics = append(res.Diagnostics, d)
		}

		weight := taxonomy.RiskWeight(entry.RiskLevel)
		res.MaxPossibleScore += weight
		if item.Answer != entry.Expected {
			res.RiskScore += weight
			res.CategoryScores.Add(entry.Category, float64(weight))
			res.MissedControls = append(res.MissedControls, question)
		}

		if _, dup := res.Records[question]; dup {
			log.Warn("question answered more than once, keeping the last answer", "question", question)
		} else {
			res.QuestionOrder = append(res.QuestionOrder, question)
		}
		res.Records[question] = model.ScoredQuestion{
			Question:        question,
			Category:        entry.Category,
			SubCategory:     entry.SubCategory,
			RiskLevel:       entry.RiskLevel,
			ExpectedOutcome: entry.Expected,
			Answers:         map[string]string{vendor: item.Answer},
		}
	}

	res.RiskScorePercent = risk.Percent(res.RiskScore, res.MaxPossibleScore)
	return res
}

func malformed(vendor, source string, pos int, item model.SourceItem, problem string, log *slog.Logger) model.Diagnostic {
	d := model.Diagnostic{
		Kind:    model.MalformedVendorItem,
		Vendor:  vendor,
		Source:  source,
		Item:    item.Raw,
		Message: fmt.Sprintf("item %d skipped: %s", pos, problem),
	}
	log.Warn(d.Message, "kind", d.Kind, "item", item.Raw)
	return d
}
