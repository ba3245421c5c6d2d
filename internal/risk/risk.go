package risk

type Posture string

const (
	Low      Posture = "LOW"
	Moderate Posture = "MODERATE"
	High     Posture = "HIGH"
	Critical Posture = "CRITICAL"
)

type Rating struct {
	RiskScore  float64 `json:"riskScore"`
	Compliance float64 `json:"compliance"`
	Maturity   string  `json:"maturity"`
	Posture    Posture `json:"posture"`
}

// FromScore rates a compliance score on the 0-100 scale, where 100 means
// every control was satisfied.
func FromScore(score float64) Rating {
	p := Critical
	switch {
	case score >= 90:
		p = Low
	case score >= 70:
		p = Moderate
	case score >= 50:
		p = High
	default:
		p = Critical
	}
	return Rating{
		RiskScore:  Round(100-score, 2),
		Compliance: Round(score, 2),
		Maturity:   Maturity(score),
		Posture:    p,
	}
}

// FromRiskPercent rates a vendor by its risk percentage (0 = no missed weight).
func FromRiskPercent(pct float64) Rating {
	return FromScore(clamp(100 - pct))
}

func Maturity(score float64) string {
	switch {
	case score >= 90:
		return "PLATINUM"
	case score >= 75:
		return "GOLD"
	case score >= 50:
		return "SILVER"
	default:
		return "BRONZE"
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
