package output

import (
	"bytes"
	"fmt"
	"html"
	"os"

	"vendor-risk-assessor/internal/model"
	"vendor-risk-assessor/internal/risk"
	"vendor-risk-assessor/internal/trend"
)

const summaryTopActions = 10

// WriteSummary writes a print-optimised single-page executive summary to path.
func WriteSummary(path string, r *model.Report) error {
	var buf bytes.Buffer
	buildSummary(&buf, r)
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func postureColor(p string) string {
	switch risk.Posture(p) {
	case risk.Critical:
		return "#c0392b"
	case risk.High:
		return "#d35400"
	case risk.Moderate:
		return "#7d6608"
	case risk.Low:
		return "#1a7a1a"
	}
	return "#555"
}

func buildSummary(buf *bytes.Buffer, r *model.Report) {
	w := func(s string) { buf.WriteString(s) }
	wf := func(f string, a ...any) { buf.WriteString(fmt.Sprintf(f, a...)) }
	e := html.EscapeString

	w(`<!DOCTYPE html><html lang="en"><head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>Vendor Risk Executive Summary</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{background:#fff;color:#111;font-family:"Segoe UI",Arial,sans-serif;font-size:13px;line-height:1.5;padding:32px 40px}
h1{font-size:1.4em;font-weight:700;margin-bottom:2px}
h2{font-size:1em;font-weight:600;margin:18px 0 6px;border-bottom:1px solid #e0e0e0;padding-bottom:3px}
.meta{color:#555;font-size:.82em;margin-bottom:20px}
.score-hero{display:flex;align-items:center;gap:24px;margin-bottom:20px;padding:16px 20px;border:1px solid #e0e0e0;border-radius:6px;background:#fafafa}
.score-big{font-size:3.2em;font-weight:800;line-height:1}
.badge{display:inline-block;padding:4px 14px;border-radius:14px;font-weight:700;font-size:1em;border:2px solid}
.bar{background:#e0e0e0;border-radius:3px;height:4px;margin-top:4px;width:120px}
.fill{height:4px;border-radius:3px;background:#555}
table{width:100%;border-collapse:collapse;margin-top:4px;font-size:.84em}
th{background:#f0f0f0;text-align:left;padding:5px 8px;border-bottom:1px solid #ccc;font-weight:600}
td{padding:5px 8px;border-bottom:1px solid #e8e8e8;vertical-align:top}
.ok{color:#1a7a1a}.bad{color:#c0392b}
.footer{margin-top:28px;color:#888;font-size:.78em;border-top:1px solid #e0e0e0;padding-top:10px}
.print-btn{display:inline-block;margin-bottom:20px;padding:7px 18px;background:#1a1a2e;color:#fff;border:none;border-radius:4px;cursor:pointer;font-size:.86em}
@media print{
  .print-btn{display:none}
  body{padding:16px 20px}
  @page{margin:1.5cm}
}
</style></head><body>
`)

	w(`<button class="print-btn" onclick="window.print()">Print / Save as PDF</button>`)
	w(`<h1>Third-Party Vendor Risk: Executive Summary</h1>`)
	wf(`<div class="meta">Run: %s &nbsp;|&nbsp; Sources: %d seen, %d skipped</div>`,
		e(r.Run.RunID), r.Run.SourcesSeen, r.Run.SourcesSkipped)

	m := r.Metrics
	if m == nil || m.IsEmpty() {
		w(`<p class="bad">No vendor data was scored.</p>`)
		summaryFooter(buf, r)
		return
	}

	overall := risk.FromRiskPercent(m.AverageRiskScore)
	color := postureColor(string(overall.Posture))
	wf(`<div class="score-hero">
<div class="score-big">%.1f<span style="font-size:.4em;color:#555">%% avg risk</span></div>
<div>
<div class="badge" style="color:%s;border-color:%s">%s</div>
<div style="color:#555;font-size:.82em;margin-top:6px">Vendors: %d &nbsp; Highest: %s &nbsp; Lowest: %s</div>
</div>
</div>`,
		m.AverageRiskScore, color, color, e(string(overall.Posture)),
		m.VendorCount, e(m.HighestRiskVendor), e(m.LowestRiskVendor))

	if t := r.Trend; t != nil && t.Label != trend.FirstRun {
		cls := "ok"
		if t.Delta > 0 {
			cls = "bad"
		}
		wf(`<p class="%s">Trend since last run: %s (%+.2f)</p>`, cls, e(t.Label), t.Delta)
	}

	w(`<h2>Vendors</h2>`)
	w(`<table><thead><tr><th>Vendor</th><th>Risk</th><th>Posture</th><th>Missed controls</th></tr></thead><tbody>`)
	for _, v := range r.Vendors {
		wf(`<tr><td>%s</td><td>%.2f%%<div class="bar"><div class="fill" style="width:%.0f%%"></div></div></td><td style="color:%s;font-weight:600">%s</td><td>%d</td></tr>`,
			e(v.Vendor), v.RiskScorePercent, v.RiskScorePercent, postureColor(v.Posture), e(v.Posture), len(v.MissedControls))
	}
	w(`</tbody></table>`)

	if len(m.Top5MissedControls) > 0 {
		w(`<h2>Most Missed Controls</h2>`)
		w(`<table><thead><tr><th>Control</th><th>Vendors</th></tr></thead><tbody>`)
		for _, c := range m.Top5MissedControls {
			wf(`<tr><td>%s</td><td>%d</td></tr>`, e(c.Question), c.Count)
		}
		w(`</tbody></table>`)
	}

	// Priority 1 actions across all vendors, in vendor order.
	type action struct {
		vendor string
		step   model.RemediationStep
	}
	var p1 []action
	total := 0
	for _, v := range r.Vendors {
		for _, s := range v.Remediation {
			if s.Priority == 1 {
				total++
				if len(p1) < summaryTopActions {
					p1 = append(p1, action{v.Vendor, s})
				}
			}
		}
	}
	if len(p1) > 0 {
		w(`<h2>Priority Actions</h2>`)
		w(`<table><thead><tr><th>Vendor</th><th>Category</th><th>Control</th><th>Answer</th></tr></thead><tbody>`)
		for _, a := range p1 {
			wf(`<tr><td style="width:120px">%s</td><td>%s</td><td>%s</td><td class="bad">%s</td></tr>`,
				e(a.vendor), e(a.step.Category), e(a.step.Control), e(a.step.Actual))
		}
		w(`</tbody></table>`)
		if total > summaryTopActions {
			wf(`<p style="color:#555;font-size:.82em;margin-top:4px">Showing %d of %d high-risk gaps. See the full report for the complete list.</p>`, summaryTopActions, total)
		}
	} else {
		w(`<p class="ok">No high-risk controls missed.</p>`)
	}

	summaryFooter(buf, r)
}

func summaryFooter(buf *bytes.Buffer, r *model.Report) {
	fmt.Fprintf(buf, `<div class="footer">Generated by %s %s &nbsp;|&nbsp; Run ID: %s</div>`,
		html.EscapeString(r.Run.Tool), html.EscapeString(r.Run.ToolVersion), html.EscapeString(r.Run.RunID))
	buf.WriteString(`</body></html>`)
}
