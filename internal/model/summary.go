package model

// RunSummary is the single-line machine-readable result printed in CI mode.
type RunSummary struct {
	RunID             string  `json:"runId"`
	TimestampUtc      string  `json:"timestampUtc"`
	Vendors           int     `json:"vendors"`
	AverageRiskScore  float64 `json:"averageRiskScore"`
	HighestRiskVendor string  `json:"highestRiskVendor,omitempty"`
	Status            string  `json:"status"` // PASSED/FAILED
	MaxAverageRisk    float64 `json:"maxAverageRisk"`
	Trend             string  `json:"trend"`
	Delta             float64 `json:"delta"`
	Diagnostics       int     `json:"diagnostics"`
}
