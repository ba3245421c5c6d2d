package model

import "time"

const (
	SchemaVersion = "1.0.0"
	ToolName      = "vendor-risk-assessor"
	ToolVersion   = "0.3.0"
)

// Report is the document handed to the writers. The field names of the
// questions, scores, frequency and metrics blocks are the published contract.
type Report struct {
	SchemaVersion string  `json:"schemaVersion"`
	Run           RunInfo `json:"run"`

	Questions               []ScoredQuestion   `json:"questions"`
	SystemRiskScores        map[string]float64 `json:"system_risk_scores"`
	MissedControlsFrequency map[string]int     `json:"missed_controls_frequency"`

	// Metrics is nil when no vendor source could be scored.
	*Metrics

	Vendors     []VendorSummary `json:"vendors,omitempty"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`

	// Comparison holds the diff against a previous report when --compare is used.
	Comparison *ComparisonSummary `json:"comparison,omitempty"`
	// Trend holds the delta against the previous recorded run.
	Trend *TrendSummary `json:"trend,omitempty"`
}

type RunInfo struct {
	RunID           string    `json:"runId"`
	Tool            string    `json:"tool"`
	ToolVersion     string    `json:"toolVersion"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	DurationSeconds float64   `json:"durationSeconds"`
	TaxonomySource  string    `json:"taxonomySource,omitempty"`
	TaxonomySize    int       `json:"taxonomySize"`
	VendorDir       string    `json:"vendorDir,omitempty"`
	SourcesSeen     int       `json:"sourcesSeen"`
	SourcesSkipped  int       `json:"sourcesSkipped"`
}

// VendorSummary is the per-vendor slice of the report.
type VendorSummary struct {
	Vendor            string             `json:"vendor"`
	Source            string             `json:"source"`
	RiskScorePercent  float64            `json:"riskScorePercent"`
	RiskScore         int                `json:"riskScore"`
	MaxPossibleScore  int                `json:"maxPossibleScore"`
	Posture           string             `json:"posture"`
	Maturity          string             `json:"maturity"`
	QuestionsAnswered int                `json:"questionsAnswered"`
	MissedControls    []string           `json:"missedControls"`
	CategoryScores    map[string]float64 `json:"categoryScores"`
	Remediation       []RemediationStep  `json:"remediation,omitempty"`
}

// RemediationStep is one prioritized follow-up for a missed control.
type RemediationStep struct {
	Priority    int    `json:"priority"` // 1=High risk, 2=Medium, 3=Low/unrated
	Control     string `json:"control"`
	Title       string `json:"title"`
	Detail      string `json:"detail"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	RiskLevel   string `json:"riskLevel"`
	Expected    string `json:"expected"`
	Actual      string `json:"actual"`
}

// TrendSummary compares this run's average risk with the last recorded run.
type TrendSummary struct {
	Label        string  `json:"label"` // IMPROVING / DECLINING / SAME / FIRST_RUN
	Previous     float64 `json:"previous"`
	Current      float64 `json:"current"`
	Delta        float64 `json:"delta"`
	DeltaPercent float64 `json:"deltaPercent"`
	// Recent lists the average risk of the last recorded runs, oldest first,
	// ending with this one.
	Recent []float64 `json:"recent,omitempty"`
}

// ComparisonSummary is the diff of this report against a previous one.
type ComparisonSummary struct {
	PreviousRunID       string  `json:"previousRunId"`
	PreviousGeneratedAt string  `json:"previousGeneratedAt"`
	PreviousAverageRisk float64 `json:"previousAverageRisk"`
	AverageRiskDelta    float64 `json:"averageRiskDelta"`

	VendorsAdded   []string      `json:"vendorsAdded,omitempty"`
	VendorsRemoved []string      `json:"vendorsRemoved,omitempty"`
	ScoreChanges   []VendorDelta `json:"scoreChanges,omitempty"`

	ControlsNewlyMissed []string `json:"controlsNewlyMissed,omitempty"`
	ControlsResolved    []string `json:"controlsResolved,omitempty"`
}

type VendorDelta struct {
	Vendor string  `json:"vendor"`
	From   float64 `json:"from"`
	To     float64 `json:"to"`
	Delta  float64 `json:"delta"`
}

func NewReport(runID string, started time.Time) Report {
	return Report{
		SchemaVersion: SchemaVersion,
		Run: RunInfo{
			RunID:       runID,
			Tool:        ToolName,
			ToolVersion: ToolVersion,
			StartedAt:   started,
		},
		Questions:               []ScoredQuestion{},
		SystemRiskScores:        map[string]float64{},
		MissedControlsFrequency: map[string]int{},
	}
}

// AverageRisk returns the report's average vendor risk, 0 without metrics.
func (r *Report) AverageRisk() float64 {
	if r.Metrics == nil {
		return 0
	}
	return r.Metrics.AverageRiskScore
}
