package output

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"vendor-risk-assessor/internal/model"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"lower": strings.ToLower,
	"ranked": func(m map[string]float64) []string {
		return rankedCategories(m)
	},
	"answer": func(q model.ScoredQuestion, vendor string) string {
		a, ok := q.Answers[vendor]
		if !ok {
			return "-"
		}
		return a
	},
	"missed": func(q model.ScoredQuestion, vendor string) bool {
		return q.Missed(vendor)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Vendor Risk Assessment Report</title>
<style>
body { font-family: Arial; margin: 40px; }
h1 { color: #333; }
.score { font-size: 24px; font-weight: bold; }
.meta { color: #666; font-size: 13px; }
table { border-collapse: collapse; width: 100%; margin-top: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; }
th { background-color: #f2f2f2; text-align: left; }
td.num { text-align: right; }
.miss { background-color: #fdecea; }
.posture-critical { color: #b91c1c; font-weight: bold; }
.posture-high { color: #c2410c; font-weight: bold; }
.posture-moderate { color: #7d6608; }
.posture-low { color: #1a7a1a; }
</style>
</head>
<body>

<h1>Vendor Risk Assessment Report</h1>
<p class="meta">Run {{.Run.RunID}} &middot; {{.Run.SourcesSeen}} sources seen, {{.Run.SourcesSkipped}} skipped{{if .Run.TaxonomySource}} &middot; taxonomy {{.Run.TaxonomySource}} ({{.Run.TaxonomySize}} controls){{end}}</p>

{{with .Metrics}}
<div class="score">Average risk score: {{pct .AverageRiskScore}}%</div>
{{with $.Trend}}<p>Trend: {{.Label}} ({{pct .Delta}})</p>{{end}}

<table>
<tr><th>Vendors assessed</th><td>{{.VendorCount}}</td></tr>
<tr><th>Highest risk vendor</th><td>{{.HighestRiskVendor}}</td></tr>
<tr><th>Lowest risk vendor</th><td>{{.LowestRiskVendor}}</td></tr>
<tr><th>Highest risk control</th><td>{{.HighestRiskControl}}</td></tr>
<tr><th>Top control missed</th><td>{{.TopControlMissed}}</td></tr>
<tr><th>Top control satisfied</th><td>{{.TopControlSatisfied}}</td></tr>
<tr><th>Top category failing</th><td>{{.TopCategoryFailing}}</td></tr>
<tr><th>Top category passed</th><td>{{.TopCategoryPassed}}</td></tr>
</table>

<h3>Vendor Risk Scores</h3>
<table>
<tr><th>Vendor</th><th>Risk %</th><th>Posture</th><th>Maturity</th><th>Missed</th><th>Answered</th></tr>
{{range $.Vendors}}
<tr>
<td>{{.Vendor}}</td>
<td class="num">{{pct .RiskScorePercent}}</td>
<td class="posture-{{lower .Posture}}">{{.Posture}}</td>
<td>{{.Maturity}}</td>
<td class="num">{{len .MissedControls}}</td>
<td class="num">{{.QuestionsAnswered}}</td>
</tr>
{{end}}
</table>

{{if .Top5MissedControls}}
<h3>Most Missed Controls</h3>
<table>
<tr><th>Control</th><th>Vendors missing</th></tr>
{{range .Top5MissedControls}}<tr><td>{{.Question}}</td><td class="num">{{.Count}}</td></tr>
{{end}}
</table>
{{end}}

{{if .CategoryAvgScores}}
<h3>Category Averages</h3>
<table>
<tr><th>Category</th><th>Average weighted misses</th></tr>
{{$avg := .CategoryAvgScores}}{{range ranked $avg}}<tr><td>{{.}}</td><td class="num">{{pct (index $avg .)}}</td></tr>
{{end}}
</table>
{{end}}
{{else}}
<p>No vendor data was scored.</p>
{{end}}

{{if .Questions}}
<h3>Answers</h3>
<table>
<tr><th>Control</th><th>Category</th><th>Risk</th><th>Expected</th>{{range .Vendors}}<th>{{.Vendor}}</th>{{end}}</tr>
{{range $q := .Questions}}
<tr>
<td>{{$q.Question}}</td>
<td>{{$q.Category}}</td>
<td>{{$q.RiskLevel}}</td>
<td>{{$q.ExpectedOutcome}}</td>
{{range $.Vendors}}<td{{if missed $q .Vendor}} class="miss"{{end}}>{{answer $q .Vendor}}</td>{{end}}
</tr>
{{end}}
</table>
{{end}}

{{if .Diagnostics}}
<h3>Diagnostics</h3>
<table>
<tr><th>Kind</th><th>Vendor</th><th>Question</th><th>Message</th></tr>
{{range .Diagnostics}}
<tr><td>{{.Kind}}</td><td>{{.Vendor}}</td><td>{{.Question}}</td><td>{{.Message}}</td></tr>
{{end}}
</table>
{{end}}

</body>
</html>
`))

func WriteHTML(path string, r *model.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, r); err != nil {
		return err
	}
	return f.Close()
}
