package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tr := Compute(40, 30)
	assert.Equal(t, Down, tr.Direction)
	assert.Equal(t, -10.0, tr.DeltaScore)
	assert.Equal(t, -25.0, tr.DeltaPercent)
	assert.Equal(t, Improving, tr.RiskLabel())

	tr = Compute(20, 25.5)
	assert.Equal(t, Up, tr.Direction)
	assert.Equal(t, 5.5, tr.DeltaScore)
	assert.Equal(t, Declining, tr.RiskLabel())

	tr = Compute(12.5, 12.5)
	assert.Equal(t, Flat, tr.Direction)
	assert.Equal(t, Same, tr.RiskLabel())
}

func TestComputeFromZero(t *testing.T) {
	tr := Compute(0, 10)
	assert.Equal(t, Up, tr.Direction)
	assert.Equal(t, 0.0, tr.DeltaPercent, "percent change from zero is reported as 0")
}
