// Package taxonomy holds the shared risk taxonomy: the control definitions
// every vendor answer is scored against.
package taxonomy

import "errors"

// ErrEmptyTaxonomy is returned when a taxonomy has no usable entries.
// Nothing can be scored without one, so callers treat it as fatal.
var ErrEmptyTaxonomy = errors.New("risk taxonomy is empty")

const (
	High   = "High"
	Medium = "Medium"
	Low    = "Low"
)

// Fallback values for controls, or fields of controls, the taxonomy does not define.
const (
	UnknownCategory    = "Unknown"
	UnknownSubCategory = "Unknown"
	DefaultRiskLevel   = Medium
	DefaultExpected    = "Yes"
)

// Entry is one control definition.
type Entry struct {
	Question    string `json:"Question" yaml:"Question"`
	Category    string `json:"Category" yaml:"Category"`
	SubCategory string `json:"Sub Category" yaml:"Sub Category"`
	RiskLevel   string `json:"Risk Level" yaml:"Risk Level"`
	Expected    string `json:"Expected" yaml:"Expected"`
}

// DefaultEntry is the entry synthesized for a question the taxonomy does not know.
func DefaultEntry(question string) Entry {
	return Entry{
		Question:    question,
		Category:    UnknownCategory,
		SubCategory: UnknownSubCategory,
		RiskLevel:   DefaultRiskLevel,
		Expected:    DefaultExpected,
	}
}

// RiskWeight maps a risk level to its scoring weight. Unrecognized or empty
// levels weigh nothing.
func RiskWeight(level string) int {
	switch level {
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	default:
		return 0
	}
}

// KnownRiskLevel reports whether level carries a non-zero weight.
func KnownRiskLevel(level string) bool {
	return RiskWeight(level) > 0
}
