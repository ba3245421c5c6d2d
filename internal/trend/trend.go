package trend

import (
	"math"

	"vendor-risk-assessor/internal/risk"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

// Labels for a change in average risk. Lower risk is an improvement.
const (
	FirstRun  = "FIRST_RUN"
	Improving = "IMPROVING"
	Declining = "DECLINING"
	Same      = "SAME"
)

type Trend struct {
	DeltaScore   float64   `json:"deltaScore"`
	DeltaPercent float64   `json:"deltaPercent"`
	Direction    Direction `json:"direction"`
	From         float64   `json:"from"`
	To           float64   `json:"to"`
}

func Compute(prev, curr float64) Trend {
	d := curr - prev

	dir := Flat
	if d > 0.00001 {
		dir = Up
	} else if d < -0.00001 {
		dir = Down
	}

	dp := 0.0
	if math.Abs(prev) > 0.00001 {
		dp = (d / prev) * 100.0
	}

	return Trend{
		DeltaScore:   risk.Round(d, 2),
		DeltaPercent: risk.Round(dp, 2),
		Direction:    dir,
		From:         risk.Round(prev, 2),
		To:           risk.Round(curr, 2),
	}
}

// RiskLabel names a movement in average risk.
func (t Trend) RiskLabel() string {
	switch t.Direction {
	case Up:
		return Declining
	case Down:
		return Improving
	default:
		return Same
	}
}
