package risk

import "github.com/shopspring/decimal"

// exact returns the exact decimal value of the binary float v. The exponent
// is below any float64 exponent, so no digits are dropped.
func exact(v float64) decimal.Decimal {
	return decimal.NewFromFloatWithExponent(v, -1100)
}

// Round rounds v to places decimal digits, half to even on the exact binary
// value: 3.125 rounds to 3.12 and 1.005, stored just below, rounds to 1.
func Round(v float64, places int32) float64 {
	return exact(v).RoundBank(places).InexactFloat64()
}

// Percent returns 100*part/whole rounded to two places, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return Round(float64(part)/float64(whole)*100, 2)
}

// Average returns the unrounded arithmetic mean of vs, 0 when empty.
func Average(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// Mean returns Average rounded to two places.
func Mean(vs []float64) float64 {
	return Round(Average(vs), 2)
}
