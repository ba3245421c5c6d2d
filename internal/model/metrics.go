package model

import (
	"encoding/json"
	"fmt"
)

// ControlFrequency pairs a control with the number of vendors that missed it.
// It is encoded as a two-element JSON array: ["question", count].
type ControlFrequency struct {
	Question string
	Count    int
}

func (c ControlFrequency) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Question, c.Count})
}

func (c *ControlFrequency) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("control frequency: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Question); err != nil {
		return fmt.Errorf("control frequency question: %w", err)
	}
	if err := json.Unmarshal(pair[1], &c.Count); err != nil {
		return fmt.Errorf("control frequency count: %w", err)
	}
	return nil
}

// Metrics are the population-level statistics derived from a Dataset.
type Metrics struct {
	VendorCount int `json:"vendor_count"`

	AverageRiskScore  float64 `json:"average_risk_score"`
	HighestRiskVendor string  `json:"highest_risk_vendor"`
	LowestRiskVendor  string  `json:"lowest_risk_vendor"`

	HighestRiskControl  string   `json:"highest_risk_control"`
	LowestRiskControl   string   `json:"lowest_risk_control"`
	Top5Risks           []string `json:"top_5_risks"`
	TopControlMissed    string   `json:"top_control_missed"`
	TopControlSatisfied string   `json:"top_control_satisfied"`

	// FullySatisfiedControls lists controls no vendor missed. They never
	// qualify as TopControlSatisfied, which only ranks missed controls.
	FullySatisfiedControls []string `json:"fully_satisfied_controls"`

	CategoryAvgScores  map[string]float64 `json:"category_avg_scores"`
	TopCategoryFailing string             `json:"top_category_failing"`
	TopCategoryPassed  string             `json:"top_category_passed"`

	Top5MissedControls []ControlFrequency `json:"top_5_missed_controls"`
}

// IsEmpty reports whether the metrics were computed without any vendor data.
func (m Metrics) IsEmpty() bool {
	return m.VendorCount == 0
}
