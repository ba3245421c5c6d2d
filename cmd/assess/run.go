package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"vendor-risk-assessor/internal/assess"
	"vendor-risk-assessor/internal/compare"
	"vendor-risk-assessor/internal/config"
	"vendor-risk-assessor/internal/history"
	"vendor-risk-assessor/internal/logging"
	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/output"
	"vendor-risk-assessor/internal/telemetry"
	"vendor-risk-assessor/internal/trend"
)

func newRunCmd(f *cliFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Score all vendors and write the reports (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssessment(cmd, f, stdout, stderr)
		},
	}
}

func newLogger(cfg config.Config, stderr io.Writer) *slog.Logger {
	return logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Log.Level),
		JSON:    cfg.Log.JSON,
		Output:  stderr,
		Service: model.ToolName,
	})
}

func runAssessment(cmd *cobra.Command, f *cliFlags, stdout, stderr io.Writer) error {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, stderr)

	report, err := assess.Run(cmd.Context(), assess.Options{
		TaxonomyPath: cfg.Taxonomy,
		VendorDir:    cfg.VendorDir,
		Concurrency:  cfg.Concurrency,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	applyComparison(report, cfg.Compare, logger)

	if cfg.History {
		tr, err := history.Trend(cfg.OutDir, report.AverageRisk())
		if err != nil {
			logger.Warn("history skipped", "error", err)
		} else {
			report.Trend = &tr
		}
	}

	written, err := output.WriteAll(cfg.OutDir, report, output.Options{Formats: cfg.Formats, Redact: cfg.Redact})
	if err != nil {
		return err
	}

	if cfg.History && report.Trend != nil {
		if err := history.Record(cfg.OutDir, report); err != nil {
			logger.Warn("history not recorded", "error", err)
		}
	}

	if cfg.MetricsFile != "" {
		rec := telemetry.NewRecorder()
		rec.Observe(report)
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("metrics textfile not written", "path", cfg.MetricsFile, "error", err)
		}
	}

	gate := checkGate(report, cfg.MaxAverageRisk)
	if f.ci {
		printCISummary(stdout, report, cfg.MaxAverageRisk, gate == nil)
	} else {
		printHuman(stdout, report, written, cfg.MaxAverageRisk, gate == nil)
	}
	return gate
}

// applyComparison loads a previous report and attaches the diff. A previous
// report that cannot be read is logged and skipped.
func applyComparison(r *model.Report, path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	prev, err := compare.Load(path)
	if err != nil {
		logger.Warn("comparison skipped", "compare", path, "error", err)
		return
	}
	diff := compare.Diff(prev, r)
	r.Comparison = &diff
}

func checkGate(r *model.Report, max float64) error {
	if avg := r.AverageRisk(); avg > max {
		return &gateError{average: avg, max: max}
	}
	return nil
}

func printCISummary(w io.Writer, r *model.Report, max float64, passed bool) {
	s := model.RunSummary{
		RunID:            r.Run.RunID,
		TimestampUtc:     time.Now().UTC().Format(time.RFC3339),
		Vendors:          len(r.SystemRiskScores),
		AverageRiskScore: r.AverageRisk(),
		Status:           "PASSED",
		MaxAverageRisk:   max,
		Diagnostics:      len(r.Diagnostics),
	}
	if r.Metrics != nil {
		s.HighestRiskVendor = r.Metrics.HighestRiskVendor
	}
	if !passed {
		s.Status = "FAILED"
	}
	if r.Trend != nil {
		s.Trend = r.Trend.Label
		s.Delta = r.Trend.Delta
	}
	raw, _ := json.Marshal(s)
	fmt.Fprintln(w, string(raw))
}

func printHuman(w io.Writer, r *model.Report, written []string, max float64, passed bool) {
	fmt.Fprintf(w, "Assessment complete: %d vendor(s) scored, %d source(s) skipped.\n",
		len(r.SystemRiskScores), r.Run.SourcesSkipped)
	if m := r.Metrics; m != nil {
		fmt.Fprintf(w, "Average risk: %.2f%%\n", m.AverageRiskScore)
		fmt.Fprintf(w, "Highest risk vendor: %s\n", m.HighestRiskVendor)
		if m.TopControlMissed != "" {
			fmt.Fprintf(w, "Most missed control: %s\n", m.TopControlMissed)
		}
	} else {
		fmt.Fprintln(w, "No vendor data was scored.")
	}
	if t := r.Trend; t != nil {
		if t.Label == trend.FirstRun {
			fmt.Fprintln(w, "Trend: FIRST RUN (no previous run recorded)")
		} else {
			fmt.Fprintf(w, "Trend: %s (%+.2f) Previous: %.2f, Current: %.2f\n", t.Label, t.Delta, t.Previous, t.Current)
		}
	}
	if len(r.Diagnostics) > 0 {
		fmt.Fprintf(w, "Diagnostics: %d (see report)\n", len(r.Diagnostics))
	}
	for _, p := range written {
		fmt.Fprintln(w, "Wrote:", p)
	}
	if passed {
		fmt.Fprintln(w, "Risk gate: PASSED")
	} else {
		fmt.Fprintf(w, "Risk gate: FAILED (average risk above %.2f)\n", max)
	}
}
