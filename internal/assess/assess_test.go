package assess

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/taxonomy"
)

const taxonomyJSON = `{
  "MFA": {"Category": "Access", "Sub Category": "Authentication", "Risk Level": "High", "Expected": "Yes"},
  "Encryption": {"Category": "Data", "Sub Category": "At rest", "Risk Level": "Medium", "Expected": "Yes"},
  "Logging": {"Category": "Monitoring", "Sub Category": "Audit", "Risk Level": "Low", "Expected": "Yes"}
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func fixture(t *testing.T) Options {
	t.Helper()
	root := t.TempDir()
	vendors := filepath.Join(root, "vendors")
	require.NoError(t, os.MkdirAll(vendors, 0o755))

	writeFile(t, vendors, "acme.json", `[
  {"Question": "MFA", "Answer": "No"},
  {"Question": "Encryption", "Answer": "Yes"},
  {"Answer": "orphan"}
]`)
	writeFile(t, vendors, "globex.yaml", "MFA: \"No\"\nLogging: \"No\"\nPen testing: \"Yes\"\n")
	writeFile(t, vendors, "initech.json", `{"Question": "Encryption", "Answer": "Yes"}`)
	writeFile(t, vendors, "broken.json", `{"Question": "MFA", "Answer": `)
	writeFile(t, vendors, "notes.txt", "ignored")

	clock := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	return Options{
		TaxonomyPath: writeFile(t, root, "taxonomy.json", taxonomyJSON),
		VendorDir:    vendors,
		Concurrency:  2,
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
}

func TestRun(t *testing.T) {
	opts := fixture(t)
	r, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.NotEmpty(t, r.Run.RunID)
	assert.Equal(t, model.ToolName, r.Run.Tool)
	assert.Equal(t, 3, r.Run.TaxonomySize)
	assert.Equal(t, 4, r.Run.SourcesSeen)
	assert.Equal(t, 1, r.Run.SourcesSkipped)
	assert.Equal(t, 1.0, r.Run.DurationSeconds)

	assert.Equal(t, map[string]float64{"acme": 60, "globex": 66.67, "initech": 0}, r.SystemRiskScores)
	assert.NotContains(t, r.SystemRiskScores, "broken")
	assert.Equal(t, map[string]int{"MFA": 2, "Logging": 1}, r.MissedControlsFrequency)

	var questions []string
	for _, q := range r.Questions {
		questions = append(questions, q.Question)
	}
	assert.Equal(t, []string{"MFA", "Encryption", "Logging", "Pen testing"}, questions)
	assert.Equal(t, "Unknown", r.Questions[3].Category)
	assert.Equal(t, "Medium", r.Questions[3].RiskLevel)
	assert.Equal(t, "Yes", r.Questions[3].ExpectedOutcome)

	require.NotNil(t, r.Metrics)
	assert.Equal(t, 3, r.Metrics.VendorCount)
	assert.Equal(t, 42.22, r.Metrics.AverageRiskScore)
	assert.Equal(t, "globex", r.Metrics.HighestRiskVendor)
	assert.Equal(t, "initech", r.Metrics.LowestRiskVendor)
	assert.Equal(t, "MFA", r.Metrics.TopControlMissed)

	require.Len(t, r.Vendors, 3)
	acme := r.Vendors[0]
	assert.Equal(t, "acme", acme.Vendor)
	assert.Equal(t, "acme.json", acme.Source)
	assert.Equal(t, 2, acme.QuestionsAnswered)
	assert.Equal(t, "CRITICAL", acme.Posture)
	require.Len(t, acme.Remediation, 1)
	assert.Equal(t, "MFA", acme.Remediation[0].Control)

	initech := r.Vendors[2]
	assert.Equal(t, "LOW", initech.Posture)
	assert.Equal(t, "PLATINUM", initech.Maturity)
	assert.Empty(t, initech.Remediation)

	kinds := map[model.DiagnosticKind]int{}
	for _, d := range r.Diagnostics {
		kinds[d.Kind]++
	}
	assert.Equal(t, map[model.DiagnosticKind]int{
		model.UnreadableSource:    1,
		model.MalformedVendorItem: 1,
		model.UnresolvedQuestion:  1,
	}, kinds)
}

func TestRunEmptyTaxonomyIsFatal(t *testing.T) {
	opts := fixture(t)
	opts.TaxonomyPath = writeFile(t, t.TempDir(), "taxonomy.json", "{}")

	r, err := Run(context.Background(), opts)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, taxonomy.ErrEmptyTaxonomy)
}

func TestRunMissingTaxonomyIsFatal(t *testing.T) {
	opts := fixture(t)
	opts.TaxonomyPath = filepath.Join(t.TempDir(), "missing.json")

	_, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunNoVendorData(t *testing.T) {
	opts := fixture(t)
	opts.VendorDir = t.TempDir()
	writeFile(t, opts.VendorDir, "broken.json", "not json")

	r, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Nil(t, r.Metrics)
	assert.Empty(t, r.Questions)
	assert.Empty(t, r.SystemRiskScores)
	require.Len(t, r.Diagnostics, 2)
	assert.Equal(t, model.UnreadableSource, r.Diagnostics[0].Kind)
	assert.Equal(t, model.NoVendorData, r.Diagnostics[1].Kind)
}

func TestRunIsDeterministic(t *testing.T) {
	opts := fixture(t)
	first, err := Run(context.Background(), opts)
	require.NoError(t, err)
	second, err := Run(context.Background(), opts)
	require.NoError(t, err)

	second.Run = first.Run
	assert.Equal(t, first, second)
}
