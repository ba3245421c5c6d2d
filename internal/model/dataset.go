package model

// Dataset is the merged, cross-vendor view built by folding VendorResults.
// Maps carry the data; the *Order slices fix a deterministic iteration order
// (question first seen, vendor folded, control first missed).
type Dataset struct {
	Questions     map[string]*ScoredQuestion
	QuestionOrder []string

	SystemRiskScores map[string]float64
	VendorOrder      []string

	CategoryScores map[string]*CategoryScores

	MissedControlsFrequency map[string]int
	MissOrder               []string
}

func NewDataset() *Dataset {
	return &Dataset{
		Questions:               map[string]*ScoredQuestion{},
		QuestionOrder:           []string{},
		SystemRiskScores:        map[string]float64{},
		VendorOrder:             []string{},
		CategoryScores:          map[string]*CategoryScores{},
		MissedControlsFrequency: map[string]int{},
		MissOrder:               []string{},
	}
}

// QuestionList returns copies of every merged question in first-seen order.
func (d *Dataset) QuestionList() []ScoredQuestion {
	out := make([]ScoredQuestion, 0, len(d.QuestionOrder))
	for _, q := range d.QuestionOrder {
		rec := *d.Questions[q]
		answers := make(map[string]string, len(rec.Answers))
		for v, a := range rec.Answers {
			answers[v] = a
		}
		rec.Answers = answers
		out = append(out, rec)
	}
	return out
}

func (d *Dataset) Vendors() []string {
	out := make([]string, len(d.VendorOrder))
	copy(out, d.VendorOrder)
	return out
}

func (d *Dataset) HasVendor(vendor string) bool {
	_, ok := d.SystemRiskScores[vendor]
	return ok
}
