package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"vendor-risk-assessor/internal/model"
)

func WriteMarkdown(path string, r *model.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	renderMarkdown(f, r)
	return f.Close()
}

func renderMarkdown(w io.Writer, r *model.Report) {
	fmt.Fprintf(w, "# Vendor Risk Assessment Report\n\n")
	fmt.Fprintf(w, "- Run: `%s`\n", r.Run.RunID)
	if !r.Run.EndedAt.IsZero() {
		fmt.Fprintf(w, "- Generated: %s\n", r.Run.EndedAt.UTC().Format(time.RFC3339))
	}
	if r.Run.TaxonomySource != "" {
		fmt.Fprintf(w, "- Taxonomy: %s (%d controls)\n", r.Run.TaxonomySource, r.Run.TaxonomySize)
	}
	fmt.Fprintf(w, "- Sources: %d seen, %d skipped\n\n", r.Run.SourcesSeen, r.Run.SourcesSkipped)

	m := r.Metrics
	if m == nil || m.IsEmpty() {
		fmt.Fprintf(w, "No vendor data was scored.\n")
		writeDiagnosticsMarkdown(w, r.Diagnostics)
		return
	}

	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(w, "| Vendors assessed | %d |\n", m.VendorCount)
	fmt.Fprintf(w, "| Average risk score | %.2f%% |\n", m.AverageRiskScore)
	fmt.Fprintf(w, "| Highest risk vendor | %s |\n", cell(m.HighestRiskVendor))
	fmt.Fprintf(w, "| Lowest risk vendor | %s |\n", cell(m.LowestRiskVendor))
	fmt.Fprintf(w, "| Top control missed | %s |\n", cell(m.TopControlMissed))
	fmt.Fprintf(w, "| Top control satisfied | %s |\n", cell(m.TopControlSatisfied))
	fmt.Fprintf(w, "| Top category failing | %s |\n", cell(m.TopCategoryFailing))
	fmt.Fprintf(w, "| Top category passed | %s |\n", cell(m.TopCategoryPassed))
	if r.Trend != nil {
		fmt.Fprintf(w, "| Trend | %s (%+.2f) |\n", r.Trend.Label, r.Trend.Delta)
	}
	fmt.Fprintln(w)

	if len(r.Vendors) > 0 {
		fmt.Fprintf(w, "## Vendor Risk Scores\n\n")
		fmt.Fprintf(w, "| Vendor | Risk %% | Posture | Maturity | Missed | Answered |\n|---|---:|---|---|---:|---:|\n")
		for _, v := range r.Vendors {
			fmt.Fprintf(w, "| %s | %.2f | %s | %s | %d | %d |\n",
				cell(v.Vendor), v.RiskScorePercent, v.Posture, v.Maturity, len(v.MissedControls), v.QuestionsAnswered)
		}
		fmt.Fprintln(w)
	}

	if len(m.Top5MissedControls) > 0 {
		fmt.Fprintf(w, "## Most Missed Controls\n\n")
		fmt.Fprintf(w, "| Control | Vendors missing |\n|---|---:|\n")
		for _, c := range m.Top5MissedControls {
			fmt.Fprintf(w, "| %s | %d |\n", cell(c.Question), c.Count)
		}
		fmt.Fprintln(w)
	}

	if len(m.CategoryAvgScores) > 0 {
		fmt.Fprintf(w, "## Category Averages\n\n")
		fmt.Fprintf(w, "| Category | Average weighted misses |\n|---|---:|\n")
		for _, c := range rankedCategories(m.CategoryAvgScores) {
			fmt.Fprintf(w, "| %s | %.2f |\n", cell(c), m.CategoryAvgScores[c])
		}
		fmt.Fprintln(w)
	}

	if len(m.FullySatisfiedControls) > 0 {
		fmt.Fprintf(w, "## Controls Met by Every Vendor\n\n")
		for _, q := range m.FullySatisfiedControls {
			fmt.Fprintf(w, "- %s\n", q)
		}
		fmt.Fprintln(w)
	}

	var withSteps []model.VendorSummary
	for _, v := range r.Vendors {
		if len(v.Remediation) > 0 {
			withSteps = append(withSteps, v)
		}
	}
	if len(withSteps) > 0 {
		fmt.Fprintf(w, "## Remediation\n\n")
		for _, v := range withSteps {
			fmt.Fprintf(w, "### %s (%s)\n\n", v.Vendor, v.Posture)
			for _, s := range v.Remediation {
				fmt.Fprintf(w, "- **P%d** [%s] %s: %s %s\n", s.Priority, s.RiskLevel, s.Title, s.Control, s.Detail)
			}
			fmt.Fprintln(w)
		}
	}

	if c := r.Comparison; c != nil {
		fmt.Fprintf(w, "## Comparison with %s\n\n", c.PreviousRunID)
		fmt.Fprintf(w, "- Average risk: %.2f -> %.2f (%+.2f)\n", c.PreviousAverageRisk, m.AverageRiskScore, c.AverageRiskDelta)
		writeList(w, "Vendors added", c.VendorsAdded)
		writeList(w, "Vendors removed", c.VendorsRemoved)
		for _, d := range c.ScoreChanges {
			fmt.Fprintf(w, "- %s: %.2f -> %.2f (%+.2f)\n", d.Vendor, d.From, d.To, d.Delta)
		}
		writeList(w, "Newly missed controls", c.ControlsNewlyMissed)
		writeList(w, "Resolved controls", c.ControlsResolved)
		fmt.Fprintln(w)
	}

	writeDiagnosticsMarkdown(w, r.Diagnostics)
}

func writeDiagnosticsMarkdown(w io.Writer, diags []model.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(w, "## Diagnostics\n\n")
	for _, d := range diags {
		fmt.Fprintf(w, "- %s\n", d.String())
	}
}

func writeList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "- %s: %s\n", label, strings.Join(items, ", "))
}

// rankedCategories orders categories by average score, worst first, then name.
func rankedCategories(avg map[string]float64) []string {
	out := sortedKeys(avg)
	sort.SliceStable(out, func(i, j int) bool { return avg[out[i]] > avg[out[j]] })
	return out
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
