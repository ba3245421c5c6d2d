package analyze

import (
	"log/slog"

	"vendor-risk-assessor/internal/logging"
	"vendor-risk-assessor/internal/model"
)

// Aggregator folds vendor results into one Dataset. It is the single writer
// of the Dataset and is not safe for concurrent use; callers that score
// vendors in parallel must hand results to Fold one at a time.
type Aggregator struct {
	tax    Resolver
	logger *slog.Logger

	ds          *model.Dataset
	results     []model.VendorResult
	diagnostics []model.Diagnostic
}

func NewAggregator(tax Resolver, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		tax:    tax,
		logger: logging.OrDiscard(logger),
		ds:     model.NewDataset(),
	}
}

// Aggregate scores and folds every source in the given order.
func Aggregate(sources []model.VendorSource, tax Resolver, logger *slog.Logger) *Aggregator {
	a := NewAggregator(tax, logger)
	for _, src := range sources {
		a.Add(src)
	}
	return a
}

// Add scores src and folds the result. It returns false when the source was
// rejected because its vendor has already been folded.
func (a *Aggregator) Add(src model.VendorSource) (model.VendorResult, bool) {
	if a.ds.HasVendor(src.Vendor) {
		a.Skip(model.Diagnostic{
			Kind:    model.UnreadableSource,
			Vendor:  src.Vendor,
			Source:  src.Label,
			Message: "source skipped: vendor already aggregated in this run",
		})
		return model.VendorResult{}, false
	}
	res := ProcessVendor(src.Items, a.tax, src.Vendor, src.Label, a.logger)
	a.Fold(res)
	return res, true
}

// Fold merges one vendor result into the dataset.
func (a *Aggregator) Fold(res model.VendorResult) {
	ds := a.ds
	for _, q := range res.QuestionOrder {
		rec := res.Records[q]
		merged, ok := ds.Questions[q]
		if !ok {
			merged = &model.ScoredQuestion{Question: q, Answers: map[string]string{}}
			ds.Questions[q] = merged
			ds.QuestionOrder = append(ds.QuestionOrder, q)
		}
		merged.Category = rec.Category
		merged.SubCategory = rec.SubCategory
		merged.RiskLevel = rec.RiskLevel
		merged.ExpectedOutcome = rec.ExpectedOutcome
		merged.Answers[res.Vendor] = rec.Answers[res.Vendor]
	}

	if !ds.HasVendor(res.Vendor) {
		ds.VendorOrder = append(ds.VendorOrder, res.Vendor)
	}
	ds.SystemRiskScores[res.Vendor] = res.RiskScorePercent
	ds.CategoryScores[res.Vendor] = res.CategoryScores

	for _, q := range res.MissedControls {
		if _, ok := ds.MissedControlsFrequency[q]; !ok {
			ds.MissOrder = append(ds.MissOrder, q)
		}
		ds.MissedControlsFrequency[q]++
	}

	a.diagnostics = append(a.diagnostics, res.Diagnostics...)
	res.Records = nil
	a.results = append(a.results, res)

	a.logger.Info("vendor scored",
		"vendor", res.Vendor,
		"risk_score_percent", res.RiskScorePercent,
		"missed", len(res.MissedControls),
		"answered", len(res.QuestionOrder))
}

// Skip records a source that contributes nothing to the dataset.
func (a *Aggregator) Skip(d model.Diagnostic) {
	if d.Kind == "" {
		d.Kind = model.UnreadableSource
	}
	a.logger.Warn(d.Message, "kind", d.Kind, "vendor", d.Vendor, "source", d.Source)
	a.diagnostics = append(a.diagnostics, d)
}

func (a *Aggregator) Dataset() *model.Dataset { return a.ds }

// Results returns the folded vendor results in fold order, without their
// per-question records.
func (a *Aggregator) Results() []model.VendorResult {
	out := make([]model.VendorResult, len(a.results))
	copy(out, a.results)
	return out
}

func (a *Aggregator) Diagnostics() []model.Diagnostic {
	out := make([]model.Diagnostic, len(a.diagnostics))
	copy(out, a.diagnostics)
	return out
}
