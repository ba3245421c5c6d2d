package model

import (
	"encoding/json"
	"sort"
)

// CategoryScores accumulates weighted miss scores per category and remembers
// the order in which categories were first scored.
type CategoryScores struct {
	order  []string
	scores map[string]float64
}

func NewCategoryScores() *CategoryScores {
	return &CategoryScores{scores: map[string]float64{}}
}

func (c *CategoryScores) Add(category string, weight float64) {
	if _, ok := c.scores[category]; !ok {
		c.order = append(c.order, category)
	}
	c.scores[category] += weight
}

func (c *CategoryScores) Get(category string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c.scores[category]
	return v, ok
}

// Categories returns categories in first-scored order.
func (c *CategoryScores) Categories() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *CategoryScores) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Map returns a copy of the scores keyed by category.
func (c *CategoryScores) Map() map[string]float64 {
	out := make(map[string]float64, c.Len())
	if c == nil {
		return out
	}
	for k, v := range c.scores {
		out[k] = v
	}
	return out
}

func (c *CategoryScores) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

func (c *CategoryScores) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	c.order = c.order[:0]
	c.scores = map[string]float64{}
	for k, v := range m {
		c.order = append(c.order, k)
		c.scores[k] = v
	}
	sort.Strings(c.order)
	return nil
}
