// Package assess runs one vendor risk assessment end to end: load the
// taxonomy and vendor sources, score and aggregate them, and assemble the
// report handed to the writers.
package assess

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vendor-risk-assessor/internal/analyze"
	"vendor-risk-assessor/internal/ingest"
	"vendor-risk-assessor/internal/logging"
	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/remediation"
	"vendor-risk-assessor/internal/risk"
	"vendor-risk-assessor/internal/summary"
	"vendor-risk-assessor/internal/taxonomy"
)

type Options struct {
	TaxonomyPath string
	VendorDir    string
	Concurrency  int
	Logger       *slog.Logger

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Run loads its inputs from disk and assembles the report. A taxonomy that
// cannot be loaded or is empty aborts the run with an error wrapping
// taxonomy.ErrEmptyTaxonomy or the underlying load failure; an unreadable
// vendor directory is also fatal. Everything below that level is recovered
// and reported as diagnostics.
func Run(ctx context.Context, opts Options) (*model.Report, error) {
	logger := logging.OrDiscard(opts.Logger)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	started := now().UTC()

	tax, err := ingest.LoadTaxonomyFile(opts.TaxonomyPath, logger)
	if err != nil {
		if errors.Is(err, taxonomy.ErrEmptyTaxonomy) {
			logger.Error("taxonomy is empty, aborting run", "kind", model.EmptyTaxonomy, "taxonomy", opts.TaxonomyPath)
		} else {
			logger.Error("taxonomy could not be loaded, aborting run", "taxonomy", opts.TaxonomyPath, "error", err)
		}
		return nil, err
	}
	logger.Info("taxonomy loaded", "taxonomy", opts.TaxonomyPath, "form", tax.Form(), "entries", tax.Len())

	loaded, err := ingest.LoadVendorDir(ctx, opts.VendorDir, ingest.LoadOptions{
		Concurrency: opts.Concurrency,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	r := Assemble(tax, loaded, logger)
	r.Run.RunID = uuid.NewString()
	r.Run.StartedAt = started
	r.Run.TaxonomySource = opts.TaxonomyPath
	r.Run.VendorDir = opts.VendorDir
	r.Run.EndedAt = now().UTC()
	r.Run.DurationSeconds = risk.Round(r.Run.EndedAt.Sub(started).Seconds(), 3)
	return r, nil
}

// Assemble scores the loaded sources in order and builds the report body.
// Run metadata other than the counts is left to the caller.
func Assemble(tax *taxonomy.Index, loaded *ingest.Loaded, logger *slog.Logger) *model.Report {
	logger = logging.OrDiscard(logger)

	agg := analyze.NewAggregator(tax, logger)
	for _, d := range loaded.Skipped {
		agg.Skip(d)
	}
	for _, src := range loaded.Sources {
		agg.Add(src)
	}

	ds := agg.Dataset()
	metrics := summary.Calculate(ds, logger)

	r := model.NewReport("", time.Time{})
	r.Run.TaxonomySize = tax.Len()
	r.Run.SourcesSeen = loaded.Seen
	r.Run.SourcesSkipped = loaded.Seen - len(ds.VendorOrder)

	r.Questions = ds.QuestionList()
	for v, s := range ds.SystemRiskScores {
		r.SystemRiskScores[v] = s
	}
	for q, n := range ds.MissedControlsFrequency {
		r.MissedControlsFrequency[q] = n
	}

	r.Diagnostics = agg.Diagnostics()
	if metrics.IsEmpty() {
		r.Diagnostics = append(r.Diagnostics, model.Diagnostic{
			Kind:    model.NoVendorData,
			Message: "no vendor source could be scored; metrics are empty",
		})
	} else {
		r.Metrics = &metrics
	}

	for _, res := range agg.Results() {
		rating := risk.FromRiskPercent(res.RiskScorePercent)
		r.Vendors = append(r.Vendors, model.VendorSummary{
			Vendor:            res.Vendor,
			Source:            res.Source,
			RiskScorePercent:  res.RiskScorePercent,
			RiskScore:         res.RiskScore,
			MaxPossibleScore:  res.MaxPossibleScore,
			Posture:           string(rating.Posture),
			Maturity:          rating.Maturity,
			QuestionsAnswered: len(res.QuestionOrder),
			MissedControls:    res.MissedControls,
			CategoryScores:    res.CategoryScores.Map(),
			Remediation:       remediation.Generate(ds, res.Vendor, res.MissedControls),
		})
	}
	return &r
}
