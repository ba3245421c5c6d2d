package analyze

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/taxonomy"
)

func testTaxonomy(t *testing.T) *taxonomy.Index {
	t.Helper()
	idx, err := taxonomy.NewKeyed(
		[]string{"MFA", "Encryption", "Logging", "Unrated"},
		map[string]taxonomy.Entry{
			"MFA":        {Category: "Access", SubCategory: "Authentication", RiskLevel: taxonomy.High, Expected: "Yes"},
			"Encryption": {Category: "Data", SubCategory: "At rest", RiskLevel: taxonomy.Medium, Expected: "Yes"},
			"Logging":    {Category: "Monitoring", SubCategory: "Audit", RiskLevel: taxonomy.Low, Expected: "Yes"},
			"Unrated":    {Category: "Data", SubCategory: "Misc", RiskLevel: "", Expected: "No"},
		})
	require.NoError(t, err)
	return idx
}

func answers(pairs ...string) []model.SourceItem {
	out := make([]model.SourceItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.SourceItem{VendorAnswer: model.VendorAnswer{Question: pairs[i], Answer: pairs[i+1]}})
	}
	return out
}

func source(vendor string, items []model.SourceItem) model.VendorSource {
	return model.VendorSource{Vendor: vendor, Label: vendor + ".json", Shape: model.ShapeAnswerMap, Items: items}
}

func TestProcessVendorScenarioA(t *testing.T) {
	idx, err := taxonomy.NewKeyed([]string{"Q1"}, map[string]taxonomy.Entry{"Q1": {RiskLevel: "High", Expected: "Yes"}})
	require.NoError(t, err)

	res := ProcessVendor(answers("Q1", "No"), idx, "Acme", "Acme.json", nil)
	assert.Equal(t, 100.0, res.RiskScorePercent)
	assert.Equal(t, []string{"Q1"}, res.MissedControls)
}

func TestProcessVendorScenarioB(t *testing.T) {
	idx, err := taxonomy.NewKeyed([]string{"Q1"}, map[string]taxonomy.Entry{"Q1": {RiskLevel: "High", Expected: "Yes"}})
	require.NoError(t, err)

	res := ProcessVendor(answers("Q1", "Yes"), idx, "Acme", "Acme.json", nil)
	assert.Equal(t, 0.0, res.RiskScorePercent)
	assert.Empty(t, res.MissedControls)
	assert.Equal(t, 0, res.CategoryScores.Len())
}

func TestProcessVendorScoring(t *testing.T) {
	tests := []struct {
		name    string
		items   []model.SourceItem
		percent float64
		score   int
		max     int
		missed  []string
	}{
		{
			name:    "all compliant",
			items:   answers("MFA", "Yes", "Encryption", "Yes", "Logging", "Yes"),
			percent: 0, score: 0, max: 6,
			missed: []string{},
		},
		{
			name:    "all high risk missed",
			items:   answers("MFA", "No"),
			percent: 100, score: 3, max: 3,
			missed: []string{"MFA"},
		},
		{
			name:    "medium missed out of six",
			items:   answers("MFA", "Yes", "Encryption", "No", "Logging", "Yes"),
			percent: 33.33, score: 2, max: 6,
			missed: []string{"Encryption"},
		},
		{
			name:    "comparison is case-sensitive",
			items:   answers("MFA", "yes", "Logging", "Yes"),
			percent: 75, score: 3, max: 4,
			missed: []string{"MFA"},
		},
		{
			name:    "unweighted control never moves the score",
			items:   answers("Unrated", "Yes"),
			percent: 0, score: 0, max: 0,
			missed: []string{"Unrated"},
		},
		{
			name:    "no answers",
			items:   nil,
			percent: 0, score: 0, max: 0,
			missed: []string{},
		},
	}
	idx := testTaxonomy(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ProcessVendor(tt.items, idx, "acme", "acme.json", nil)
			assert.Equal(t, tt.percent, res.RiskScorePercent)
			assert.Equal(t, tt.score, res.RiskScore)
			assert.Equal(t, tt.max, res.MaxPossibleScore)
			assert.Equal(t, tt.missed, res.MissedControls)
			assert.GreaterOrEqual(t, res.RiskScorePercent, 0.0)
			assert.LessOrEqual(t, res.RiskScorePercent, 100.0)
		})
	}
}

func TestProcessVendorCategoryScores(t *testing.T) {
	res := ProcessVendor(answers("MFA", "No", "Unrated", "Yes", "Logging", "Yes", "Encryption", "No"),
		testTaxonomy(t), "acme", "acme.json", nil)

	assert.Equal(t, []string{"Access", "Data"}, res.CategoryScores.Categories())
	v, _ := res.CategoryScores.Get("Access")
	assert.Equal(t, 3.0, v)
	v, _ = res.CategoryScores.Get("Data")
	assert.Equal(t, 2.0, v)
	_, ok := res.CategoryScores.Get("Monitoring")
	assert.False(t, ok)

	zero := ProcessVendor(answers("Unrated", "Yes"), testTaxonomy(t), "acme", "acme.json", nil)
	v, ok = zero.CategoryScores.Get("Data")
	assert.True(t, ok, "a zero-weight miss still registers its category")
	assert.Equal(t, 0.0, v)
}

func TestProcessVendorUnknownQuestion(t *testing.T) {
	res := ProcessVendor(answers("Do you pentest annually?", "No"), testTaxonomy(t), "acme", "acme.json", nil)

	rec := res.Records["Do you pentest annually?"]
	assert.Equal(t, "Unknown", rec.Category)
	assert.Equal(t, "Unknown", rec.SubCategory)
	assert.Equal(t, "Medium", rec.RiskLevel)
	assert.Equal(t, "Yes", rec.ExpectedOutcome)
	assert.Equal(t, 100.0, res.RiskScorePercent)

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, model.UnresolvedQuestion, d.Kind)
	assert.Equal(t, "acme", d.Vendor)
	assert.Equal(t, "acme.json", d.Source)
	assert.Equal(t, "Do you pentest annually?", d.Question)
	assert.Contains(t, d.Message, "defaults")
}

func TestProcessVendorSkipsMalformedItems(t *testing.T) {
	items := []model.SourceItem{
		{Raw: `{Answer: "Yes"}`, Problem: "record has no Question field"},
		{VendorAnswer: model.VendorAnswer{Question: "   ", Answer: "Yes"}, Raw: `{Question: "   "}`},
		{VendorAnswer: model.VendorAnswer{Question: "  MFA ", Answer: "No"}},
	}
	res := ProcessVendor(items, testTaxonomy(t), "acme", "acme.json", nil)

	assert.Equal(t, []string{"MFA"}, res.QuestionOrder, "question text is trimmed")
	assert.Equal(t, 100.0, res.RiskScorePercent)
	require.Len(t, res.Diagnostics, 2)
	for _, d := range res.Diagnostics {
		assert.Equal(t, model.MalformedVendorItem, d.Kind)
		assert.Equal(t, "acme", d.Vendor)
		assert.NotEmpty(t, d.Item)
	}
	assert.Contains(t, res.Diagnostics[1].Message, "missing question text")
}

func TestAggregateMergesVendors(t *testing.T) {
	idx := testTaxonomy(t)
	agg := Aggregate([]model.VendorSource{
		source("acme", answers("MFA", "No", "Encryption", "Yes")),
		source("globex", answers("MFA", "No", "Logging", "No", "New question", "Yes")),
	}, idx, nil)
	ds := agg.Dataset()

	assert.Equal(t, []string{"MFA", "Encryption", "Logging", "New question"}, ds.QuestionOrder)
	assert.Equal(t, map[string]string{"acme": "No", "globex": "No"}, ds.Questions["MFA"].Answers)
	assert.Equal(t, map[string]string{"acme": "Yes"}, ds.Questions["Encryption"].Answers)
	assert.Equal(t, "Unknown", ds.Questions["New question"].Category)

	assert.Equal(t, []string{"acme", "globex"}, ds.VendorOrder)
	assert.Equal(t, 60.0, ds.SystemRiskScores["acme"])
	assert.Equal(t, 66.67, ds.SystemRiskScores["globex"])

	assert.Equal(t, map[string]int{"MFA": 2, "Logging": 1}, ds.MissedControlsFrequency)
	assert.Equal(t, []string{"MFA", "Logging"}, ds.MissOrder)

	access, _ := ds.CategoryScores["globex"].Get("Access")
	assert.Equal(t, 3.0, access)

	require.Len(t, agg.Diagnostics(), 1)
	assert.Equal(t, model.UnresolvedQuestion, agg.Diagnostics()[0].Kind)
	require.Len(t, agg.Results(), 2)
	assert.Nil(t, agg.Results()[0].Records)
}

func TestAggregateFrequencyMatchesAnswers(t *testing.T) {
	agg := Aggregate([]model.VendorSource{
		source("a", answers("MFA", "No", "Encryption", "No", "Logging", "Yes")),
		source("b", answers("MFA", "Yes", "Encryption", "No")),
		source("c", answers("Logging", "No", "Unrated", "Yes", "Other", "Nope")),
	}, testTaxonomy(t), nil)
	ds := agg.Dataset()

	for _, q := range ds.MissOrder {
		count := 0
		for _, v := range ds.VendorOrder {
			if ds.Questions[q].Missed(v) {
				count++
			}
		}
		assert.Equal(t, count, ds.MissedControlsFrequency[q], q)
	}
}

func TestAggregateRejectsRepeatedVendor(t *testing.T) {
	agg := NewAggregator(testTaxonomy(t), nil)
	_, ok := agg.Add(source("acme", answers("MFA", "No")))
	require.True(t, ok)
	_, ok = agg.Add(source("acme", answers("MFA", "No")))
	assert.False(t, ok)

	assert.Equal(t, 1, agg.Dataset().MissedControlsFrequency["MFA"])
	diags := agg.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, model.UnreadableSource, diags[0].Kind)
}

func TestAggregateSkipLeavesNoTrace(t *testing.T) {
	agg := NewAggregator(testTaxonomy(t), nil)
	agg.Skip(model.Diagnostic{Vendor: "broken", Source: "broken.json", Message: "source skipped: malformed JSON"})
	agg.Add(source("acme", answers("MFA", "Yes")))

	ds := agg.Dataset()
	assert.False(t, ds.HasVendor("broken"))
	assert.Equal(t, []string{"acme"}, ds.VendorOrder)
	assert.Equal(t, model.UnreadableSource, agg.Diagnostics()[0].Kind)
}

func TestAggregateIsDeterministic(t *testing.T) {
	sources := []model.VendorSource{
		source("a", answers("MFA", "No", "Encryption", "No", "Logging", "Yes")),
		source("b", answers("Encryption", "Yes", "Unknown one", "No")),
	}
	first, err := json.Marshal(Aggregate(sources, testTaxonomy(t), nil).Dataset())
	require.NoError(t, err)
	second, err := json.Marshal(Aggregate(sources, testTaxonomy(t), nil).Dataset())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
