package summary

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendor-risk-assessor/internal/analyze"
	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/taxonomy"
)

func testTaxonomy(t *testing.T) *taxonomy.Index {
	t.Helper()
	idx, err := taxonomy.NewKeyed(
		[]string{"MFA", "Encryption", "Logging", "Backups"},
		map[string]taxonomy.Entry{
			"MFA":        {Category: "Access", SubCategory: "Authentication", RiskLevel: taxonomy.High, Expected: "Yes"},
			"Encryption": {Category: "Data", SubCategory: "At rest", RiskLevel: taxonomy.Medium, Expected: "Yes"},
			"Logging":    {Category: "Monitoring", SubCategory: "Audit", RiskLevel: taxonomy.Low, Expected: "Yes"},
			"Backups":    {Category: "Resilience", SubCategory: "Recovery", RiskLevel: taxonomy.High, Expected: "Yes"},
		})
	require.NoError(t, err)
	return idx
}

func vendor(name string, pairs ...string) model.VendorSource {
	src := model.VendorSource{Vendor: name, Label: name + ".json", Shape: model.ShapeAnswerMap}
	for i := 0; i+1 < len(pairs); i += 2 {
		src.Items = append(src.Items, model.SourceItem{VendorAnswer: model.VendorAnswer{Question: pairs[i], Answer: pairs[i+1]}})
	}
	return src
}

func dataset(t *testing.T, sources ...model.VendorSource) *model.Dataset {
	t.Helper()
	return analyze.Aggregate(sources, testTaxonomy(t), nil).Dataset()
}

func TestCalculate(t *testing.T) {
	ds := dataset(t,
		vendor("a", "MFA", "No", "Encryption", "No", "Logging", "Yes", "Backups", "Yes"),
		vendor("b", "MFA", "No", "Encryption", "Yes", "Logging", "No", "Backups", "Yes"),
		vendor("c", "MFA", "Yes", "Encryption", "Yes", "Logging", "Yes", "Backups", "Yes"),
	)
	m := Calculate(ds, nil)

	assert.Equal(t, 3, m.VendorCount)
	assert.Equal(t, 33.33, m.AverageRiskScore)
	assert.Equal(t, "a", m.HighestRiskVendor)
	assert.Equal(t, "c", m.LowestRiskVendor)

	assert.Equal(t, "MFA", m.HighestRiskControl)
	assert.Equal(t, "Encryption", m.LowestRiskControl)
	assert.Equal(t, []string{"MFA", "Encryption", "Logging"}, m.Top5Risks)
	assert.Equal(t, "MFA", m.TopControlMissed)
	assert.Equal(t, "Encryption", m.TopControlSatisfied)
	assert.Equal(t, []string{"Backups"}, m.FullySatisfiedControls)

	assert.Equal(t, map[string]float64{"Access": 3, "Data": 2, "Monitoring": 1}, m.CategoryAvgScores)
	assert.Equal(t, "Access", m.TopCategoryFailing)
	assert.Equal(t, "Monitoring", m.TopCategoryPassed)

	assert.Equal(t, []model.ControlFrequency{
		{Question: "MFA", Count: 2},
		{Question: "Encryption", Count: 1},
		{Question: "Logging", Count: 1},
	}, m.Top5MissedControls)
}

func TestCalculateSharedHighRiskMiss(t *testing.T) {
	ds := dataset(t,
		vendor("acme", "MFA", "No", "Backups", "Yes"),
		vendor("globex", "MFA", "No", "Logging", "Yes"),
	)
	m := Calculate(ds, nil)

	assert.Equal(t, "MFA", m.TopControlMissed)
	assert.Equal(t, 2, ds.MissedControlsFrequency["MFA"])
}

func TestCalculateTiesKeepFirstSeen(t *testing.T) {
	ds := dataset(t,
		vendor("a", "MFA", "No", "Backups", "Yes"),
		vendor("b", "Backups", "No", "MFA", "Yes"),
	)
	m := Calculate(ds, nil)

	assert.Equal(t, "a", m.HighestRiskVendor)
	assert.Equal(t, "a", m.LowestRiskVendor)
	assert.Equal(t, "MFA", m.HighestRiskControl)
	assert.Equal(t, "MFA", m.LowestRiskControl)
	assert.Equal(t, "Access", m.TopCategoryFailing)
	assert.Equal(t, "Access", m.TopCategoryPassed)
}

func TestCalculateTopFiveIsStable(t *testing.T) {
	var many []string
	for i := 1; i <= 7; i++ {
		many = append(many, fmt.Sprintf("Q%d", i), "No")
	}
	ds := dataset(t,
		vendor("a", many...),
		vendor("b", "Q6", "No", "Q7", "No"),
	)
	m := Calculate(ds, nil)

	assert.Equal(t, []string{"Q6", "Q7", "Q1", "Q2", "Q3"}, m.Top5Risks)
	require.Len(t, m.Top5MissedControls, 5)
	assert.Equal(t, model.ControlFrequency{Question: "Q6", Count: 2}, m.Top5MissedControls[0])
	assert.Equal(t, model.ControlFrequency{Question: "Q3", Count: 1}, m.Top5MissedControls[4])
	assert.Equal(t, map[string]float64{"Unknown": 9}, m.CategoryAvgScores)
}

func TestCalculateNoMisses(t *testing.T) {
	m := Calculate(dataset(t, vendor("a", "MFA", "Yes")), nil)

	assert.Equal(t, 0.0, m.AverageRiskScore)
	assert.Empty(t, m.HighestRiskControl)
	assert.Empty(t, m.TopControlMissed)
	assert.Empty(t, m.TopControlSatisfied)
	assert.Empty(t, m.TopCategoryFailing)
	assert.Equal(t, []string{"MFA"}, m.FullySatisfiedControls)
	assert.Empty(t, m.Top5MissedControls)
}

// Data averages 8/13 (0.615...) and Access 5/8 (0.625). Both display as
// 0.62, but Access is the higher mean and must be the failing category.
func TestCalculateCategoryPicksUseUnroundedMeans(t *testing.T) {
	ds := model.NewDataset()
	for i := 0; i < 13; i++ {
		v := fmt.Sprintf("v%02d", i+1)
		cs := model.NewCategoryScores()
		data := 0.0
		if i < 8 {
			data = 1
		}
		cs.Add("Data", data)
		if i < 8 {
			access := 0.0
			if i < 5 {
				access = 1
			}
			cs.Add("Access", access)
		}
		ds.VendorOrder = append(ds.VendorOrder, v)
		ds.SystemRiskScores[v] = 10
		ds.CategoryScores[v] = cs
	}

	m := Calculate(ds, nil)
	assert.Equal(t, map[string]float64{"Data": 0.62, "Access": 0.62}, m.CategoryAvgScores)
	assert.Equal(t, "Access", m.TopCategoryFailing)
	assert.Equal(t, "Data", m.TopCategoryPassed)
}

func TestCalculateEmptyDataset(t *testing.T) {
	assert.True(t, Calculate(model.NewDataset(), nil).IsEmpty())
	assert.True(t, Calculate(nil, nil).IsEmpty())
}

func TestCalculateDoesNotMutate(t *testing.T) {
	ds := dataset(t,
		vendor("a", "MFA", "No", "Encryption", "No"),
		vendor("b", "Logging", "No"),
	)
	before, err := json.Marshal(ds)
	require.NoError(t, err)
	Calculate(ds, nil)
	after, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestTopMissedControlsEncoding(t *testing.T) {
	m := Calculate(dataset(t, vendor("a", "MFA", "No")), nil)
	raw, err := json.Marshal(m.Top5MissedControls)
	require.NoError(t, err)
	assert.JSONEq(t, `[["MFA",1]]`, string(raw))
}
