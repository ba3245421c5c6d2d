package model

// VendorResult is the transient outcome of scoring one vendor source.
type VendorResult struct {
	Vendor string `json:"vendor"`
	Source string `json:"source"`

	// Records holds this vendor's partial record per question; QuestionOrder
	// lists those questions in the order they were first answered.
	Records       map[string]ScoredQuestion `json:"records"`
	QuestionOrder []string                  `json:"questionOrder"`

	RiskScore        int             `json:"riskScore"`
	MaxPossibleScore int             `json:"maxPossibleScore"`
	RiskScorePercent float64         `json:"riskScorePercent"`
	CategoryScores   *CategoryScores `json:"categoryScores"`
	MissedControls   []string        `json:"missedControls"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}
