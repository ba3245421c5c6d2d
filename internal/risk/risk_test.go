package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromScorePosture(t *testing.T) {
	tests := []struct {
		score    float64
		posture  Posture
		maturity string
	}{
		{100, Low, "PLATINUM"},
		{90, Low, "PLATINUM"},
		{89.99, Moderate, "GOLD"},
		{75, Moderate, "GOLD"},
		{70, Moderate, "SILVER"},
		{50, High, "SILVER"},
		{49.5, Critical, "BRONZE"},
		{0, Critical, "BRONZE"},
	}
	for _, tt := range tests {
		r := FromScore(tt.score)
		assert.Equal(t, tt.posture, r.Posture, "score %v", tt.score)
		assert.Equal(t, tt.maturity, r.Maturity, "score %v", tt.score)
	}
}

func TestFromRiskPercent(t *testing.T) {
	r := FromRiskPercent(0)
	assert.Equal(t, Low, r.Posture)
	assert.Equal(t, 100.0, r.Compliance)
	assert.Equal(t, 0.0, r.RiskScore)

	r = FromRiskPercent(100)
	assert.Equal(t, Critical, r.Posture)
	assert.Equal(t, 0.0, r.Compliance)

	r = FromRiskPercent(33.33)
	assert.Equal(t, High, r.Posture)
	assert.Equal(t, "SILVER", r.Maturity)
	assert.Equal(t, 66.67, r.Compliance)
	assert.Equal(t, 33.33, r.RiskScore)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.Equal(t, 100.0, Percent(3, 3))
	assert.Equal(t, 33.33, Percent(1, 3))
	assert.Equal(t, 66.67, Percent(2, 3))
	assert.Equal(t, 28.57, Percent(2, 7))
	assert.Equal(t, 3.12, Percent(1, 32), "exact ties round half to even")
	assert.Equal(t, 9.38, Percent(3, 32))
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{3.125, 3.12},
		{0.375, 0.38},
		{-3.125, -3.12},
		{1.005, 1.0},    // stored as 1.00499999...
		{2.675, 2.67},   // stored as 2.67499999...
		{66.665, 66.67}, // stored as 66.66500000000000625...
		{12, 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in, 2), "Round(%v, 2)", tt.in)
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 50.0, Mean([]float64{100, 0}))
	assert.Equal(t, 44.44, Mean([]float64{33.33, 100, 0}))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.InDelta(t, 4.0/3.0, Average([]float64{1, 1, 2}), 1e-12)
}
