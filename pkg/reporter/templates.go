package reporter

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Audit Report - {{.Result.URL}}</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; margin: 0; background: #0f172a; color: #e2e8f0; }
.container { max-width: 960px; margin: 0 auto; padding: 32px 24px; }
h1 { font-size: 1.6em; margin-bottom: 4px; }
h2 { font-size: 1.2em; border-bottom: 1px solid #334155; padding-bottom: 8px; margin-top: 40px; }
.meta { color: #94a3b8; font-size: 0.9em; }
.score-grid { display: flex; gap: 16px; margin: 24px 0; flex-wrap: wrap; }
.score-card { background: #1e293b; border-radius: 12px; padding: 16px 24px; min-width: 120px; }
.score-card .value { font-size: 1.8em; font-weight: 700; }
.score-card .label { color: #94a3b8; font-size: 0.8em; text-transform: uppercase; }
.issue { background: #1e293b; border-radius: 12px; padding: 16px 20px; margin: 12px 0; }
.issue h3 { margin: 0 0 8px; font-size: 1em; }
.badge { display: inline-block; border-radius: 9999px; padding: 2px 10px; font-size: 0.75em; font-weight: 600; margin-right: 6px; }
.badge.critical { background: #7f1d1d; color: #fecaca; }
.badge.warning { background: #78350f; color: #fde68a; }
.badge.info { background: #1e3a8a; color: #bfdbfe; }
.badge.good { background: #14532d; color: #bbf7d0; }
.badge.cat { background: #334155; color: #cbd5e1; }
pre { background: #020617; border-radius: 8px; padding: 12px; overflow-x: auto; font-size: 0.85em; }
table { width: 100%; border-collapse: collapse; margin: 16px 0; }
th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #334155; font-size: 0.9em; }
th { color: #94a3b8; text-transform: uppercase; font-size: 0.75em; }
.summary { background: #1e293b; border-left: 3px solid #6366f1; border-radius: 0 12px 12px 0; padding: 16px 20px; }
</style>
</head>
<body>
<div class="container">
<h1>Audit Report</h1>
<p class="meta">{{.Result.URL}} &middot; {{.Result.AuditType}} audit &middot; {{.GeneratedAt}}</p>

{{if enabled "overview"}}
<div class="score-grid">
<div class="score-card"><div class="value">{{printf "%.0f" .Result.OverallScore}}</div><div class="label">Overall</div></div>
<div class="score-card"><div class="value">{{printf "%.0f" .Result.CategoryScores.Technical}}</div><div class="label">Technical</div></div>
<div class="score-card"><div class="value">{{printf "%.0f" .Result.CategoryScores.Content}}</div><div class="label">Content</div></div>
<div class="score-card"><div class="value">{{printf "%.0f" .Result.CategoryScores.UX}}</div><div class="label">UX / Mobile</div></div>
<div class="score-card"><div class="value">{{printf "%.0f" .Result.CategoryScores.Authority}}</div><div class="label">Authority</div></div>
</div>
<div class="summary">{{.Result.Summary}}</div>
{{end}}

{{if enabled "issues"}}
<h2>Issues ({{len .Issues}})</h2>
{{range .Issues}}
<div class="issue">
<h3>{{.Title}}</h3>
<span class="badge {{lower (printf "%s" .Severity)}}">{{.Severity}}</span>
<span class="badge cat">{{.Category}}</span>
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{if .Recommendation}}<p>{{.Recommendation}}</p>{{end}}
{{if .HasFix}}
<pre>{{.CodeFix.Current}}</pre>
<pre>{{.CodeFix.Optimized}}</pre>
<p class="meta">{{.CodeFix.Explanation}}</p>
{{end}}
</div>
{{end}}
{{end}}

{{if and (enabled "competitors") .Result.Competitors}}
<h2>Competitors</h2>
<table>
<tr><th>Name</th><th>Position</th><th>Overlap</th><th>Monthly Traffic</th><th>DA</th><th>Backlinks</th></tr>
{{range .Result.Competitors}}
<tr><td>{{.Name}}</td><td>{{.MarketPosition}}</td><td>{{printf "%.0f" .OverlapScore}}</td><td>{{printf "%.0f" .Metrics.MonthlyTraffic}}</td><td>{{printf "%.0f" .Metrics.DomainAuthority}}</td><td>{{printf "%.0f" .Metrics.Backlinks}}</td></tr>
{{end}}
</table>
{{end}}

{{if and (enabled "keywords") .Result.KeywordAnalysis}}
<h2>Keywords</h2>
<table>
<tr><th>Keyword</th><th>Count</th><th>Density</th></tr>
{{range .Result.KeywordAnalysis.TopKeywords}}
<tr><td>{{.Keyword}}</td><td>{{.Count}}</td><td>{{printf "%.1f%%" .Density}}</td></tr>
{{end}}
</table>
<p>{{.Result.KeywordAnalysis.Recommendation}}</p>
{{end}}

{{if and (enabled "forecast") .Result.TrafficForecast}}
<h2>Traffic Forecast</h2>
<table>
<tr><th>Month</th><th>Current</th><th>Projected</th></tr>
{{range .Result.TrafficForecast}}
<tr><td>{{.Month}}</td><td>{{printf "%.0f" .Current}}</td><td>{{printf "%.0f" .Projected}}</td></tr>
{{end}}
</table>
{{end}}

{{if and (enabled "roadmap") .Result.Roadmap}}
<h2>Roadmap</h2>
{{range .Result.Roadmap}}
<h3>{{.Stage}}</h3>
<ul>
{{range .Tasks}}<li>{{.Task}} (impact: {{.Impact}}, effort: {{.Effort}})</li>{{end}}
</ul>
{{end}}
{{end}}

</div>
</body>
</html>`
