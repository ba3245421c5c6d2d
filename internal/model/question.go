package model

// ScoredQuestion is the merged, cross-referenced view of one control.
// Answers maps vendor identifier to that vendor's raw answer.
type ScoredQuestion struct {
	Question        string            `json:"question"`
	Category        string            `json:"category"`
	SubCategory     string            `json:"sub_category"`
	RiskLevel       string            `json:"risk_level"`
	ExpectedOutcome string            `json:"expected_outcome"`
	Answers         map[string]string `json:"answers"`
}

// Missed reports whether vendor answered this question and diverged from
// the expected outcome.
func (q *ScoredQuestion) Missed(vendor string) bool {
	a, ok := q.Answers[vendor]
	return ok && a != q.ExpectedOutcome
}
