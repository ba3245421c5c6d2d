package taxonomy

// Audit summarizes data-quality issues in a loaded taxonomy.
type Audit struct {
	Entries            int            `json:"entries"`
	Form               Form           `json:"form"`
	DuplicateQuestions []string       `json:"duplicateQuestions,omitempty"`
	UnweightedControls []string       `json:"unweightedControls,omitempty"`
	BlankQuestions     int            `json:"blankQuestions,omitempty"`
	ByRiskLevel        map[string]int `json:"byRiskLevel"`
	ByCategory         map[string]int `json:"byCategory"`
}

// Clean reports whether the audit found nothing to fix.
func (a Audit) Clean() bool {
	return len(a.DuplicateQuestions) == 0 && len(a.UnweightedControls) == 0 && a.BlankQuestions == 0
}

// Inspect audits the index. Duplicates can only occur in the sequence form,
// where every duplicate after the first is unreachable by Lookup.
func Inspect(x *Index) Audit {
	a := Audit{
		Entries:     x.Len(),
		Form:        x.Form(),
		ByRiskLevel: map[string]int{},
		ByCategory:  map[string]int{},
	}
	seen := map[string]int{}
	for _, e := range x.Entries() {
		if e.Question == "" {
			a.BlankQuestions++
			continue
		}
		seen[e.Question]++
		if seen[e.Question] == 2 {
			a.DuplicateQuestions = append(a.DuplicateQuestions, e.Question)
		}
		if !KnownRiskLevel(e.RiskLevel) {
			a.UnweightedControls = append(a.UnweightedControls, e.Question)
		}
		a.ByRiskLevel[e.RiskLevel]++
		a.ByCategory[e.Category]++
	}
	return a
}
