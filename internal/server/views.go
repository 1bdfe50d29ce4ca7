package server

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/auditpro/auditpro/internal/models"
)

var landingTmpl = template.Must(template.New("landing").Parse(landingHTML))

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"lower": strings.ToLower,
}).Parse(dashboardHTML))

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	data := struct{ AnalysisFailed bool }{
		AnalysisFailed: r.URL.Query().Get("error") == "analysis",
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := landingTmpl.Execute(w, data); err != nil {
		s.log.Error("landing render failed", zap.Error(err))
	}
}

type dashboardData struct {
	Result     *models.AuditResult
	Issues     []models.Issue
	Active     models.Category
	Categories []models.Category
	Counts     map[models.Severity]int
}

// handleDashboard renders one audit. The category query param narrows the
// issue list; the four category tabs partition exactly the full list.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result, ok := s.getResult(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	active := models.Category(strings.ToUpper(r.URL.Query().Get("category")))
	switch active {
	case models.CategoryTechnical, models.CategoryContent, models.CategoryUXMobile, models.CategoryAuthority:
	default:
		active = models.CategoryAll
	}

	data := dashboardData{
		Result:     result,
		Issues:     models.FilterIssues(result.Issues, active),
		Active:     active,
		Categories: models.Categories(),
		Counts:     result.CountBySeverity(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		s.log.Error("dashboard render failed", zap.String("resultId", id), zap.Error(err))
	}
}

const landingHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AuditPro - AI-Powered SEO &amp; ASO Audits</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; margin: 0; background: #0f172a; color: #e2e8f0; }
.container { max-width: 960px; margin: 0 auto; padding: 48px 24px; }
.hero h1 { font-size: 2.4em; margin-bottom: 8px; }
.hero p { color: #94a3b8; font-size: 1.1em; }
form { background: #1e293b; border-radius: 16px; padding: 24px; margin: 32px 0; }
input, select { background: #0f172a; color: #e2e8f0; border: 1px solid #334155; border-radius: 8px; padding: 10px 14px; margin: 6px 8px 6px 0; font-size: 1em; }
input[type=url] { width: 60%; }
button { background: #6366f1; color: white; border: none; border-radius: 8px; padding: 10px 24px; font-size: 1em; cursor: pointer; }
.features { display: grid; grid-template-columns: repeat(auto-fit, minmax(260px, 1fr)); gap: 16px; margin: 48px 0; }
.feature { background: #1e293b; border-radius: 12px; padding: 20px; }
.feature h3 { margin-top: 0; }
.pricing { display: flex; gap: 16px; flex-wrap: wrap; }
.plan { background: #1e293b; border-radius: 12px; padding: 24px; flex: 1; min-width: 220px; }
.plan .price { font-size: 1.8em; font-weight: 700; }
.plan.featured { border: 1px solid #6366f1; }
.error-banner { background: #7f1d1d; color: #fecaca; border-radius: 8px; padding: 12px 16px; margin: 16px 0; }
</style>
</head>
<body>
<div class="container">
<div class="hero">
<h1>AuditPro</h1>
<p>AI-powered SEO and App Store audits with competitor intelligence, traffic forecasts, and prioritized fixes.</p>
</div>

{{if .AnalysisFailed}}<div class="error-banner">The audit could not be completed. Check the URL and try again.</div>{{end}}

<form method="post" action="/api/analyze" id="audit-form">
<input type="url" name="url" placeholder="https://yoursite.com" required>
<select name="auditType">
<option value="WEB">Website</option>
<option value="APP">App Store Listing</option>
</select>
<input type="text" name="targetAudience" placeholder="Target audience (optional)">
<input type="text" name="geo" placeholder="Region (optional)">
<button type="submit">Run Audit</button>
</form>

<div class="features">
<div class="feature"><h3>Deep Issue Analysis</h3><p>Findings across technical, content, UX and authority dimensions, each with a severity and a concrete fix.</p></div>
<div class="feature"><h3>Competitor Intelligence</h3><p>Realistic traffic, authority and backlink estimates for your closest competitors.</p></div>
<div class="feature"><h3>Code-Level Fixes</h3><p>Before-and-after snippets for technical issues, ready to paste.</p></div>
<div class="feature"><h3>Growth Forecast</h3><p>A six-month traffic projection assuming the recommendations ship.</p></div>
</div>

<h2>Pricing</h2>
<div class="pricing">
<div class="plan"><h3>Starter</h3><div class="price">$0</div><p>3 audits per month, dashboard access.</p></div>
<div class="plan featured"><h3>Pro</h3><div class="price">$29/mo</div><p>Unlimited audits, chat follow-ups, PDF export.</p></div>
<div class="plan"><h3>Agency</h3><div class="price">$99/mo</div><p>Team seats, white-label reports, API access.</p></div>
</div>
</div>
</body>
</html>`

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Audit - {{.Result.URL}}</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; margin: 0; background: #0f172a; color: #e2e8f0; }
.container { max-width: 960px; margin: 0 auto; padding: 32px 24px; }
.meta { color: #94a3b8; font-size: 0.9em; }
.score-grid { display: flex; gap: 16px; margin: 24px 0; flex-wrap: wrap; }
.score-card { background: #1e293b; border-radius: 12px; padding: 16px 24px; min-width: 110px; }
.score-card .value { font-size: 1.8em; font-weight: 700; }
.score-card .label { color: #94a3b8; font-size: 0.8em; text-transform: uppercase; }
.tabs { display: flex; gap: 8px; margin: 24px 0 8px; flex-wrap: wrap; }
.tab { border-radius: 9999px; padding: 6px 16px; font-size: 0.85em; text-decoration: none; color: #cbd5e1; background: #1e293b; }
.tab.active { background: #6366f1; color: white; }
.issue { background: #1e293b; border-radius: 12px; padding: 16px 20px; margin: 12px 0; }
.issue h3 { margin: 0 0 8px; font-size: 1em; }
.badge { display: inline-block; border-radius: 9999px; padding: 2px 10px; font-size: 0.75em; font-weight: 600; margin-right: 6px; }
.badge.critical { background: #7f1d1d; color: #fecaca; }
.badge.warning { background: #78350f; color: #fde68a; }
.badge.info { background: #1e3a8a; color: #bfdbfe; }
.badge.good { background: #14532d; color: #bbf7d0; }
details { margin-top: 10px; }
summary { cursor: pointer; color: #a5b4fc; font-size: 0.85em; }
pre { background: #020617; border-radius: 8px; padding: 12px; overflow-x: auto; font-size: 0.85em; }
.summary-box { background: #1e293b; border-left: 3px solid #6366f1; border-radius: 0 12px 12px 0; padding: 16px 20px; }
.export { margin: 24px 0; }
.export a { color: #a5b4fc; margin-right: 16px; }
</style>
</head>
<body>
<div class="container">
<h1>Audit Dashboard</h1>
<p class="meta">{{.Result.URL}} &middot; {{.Result.AuditType}} audit</p>

<div class="score-grid">
<div class="score-card"><div class="value">{{printf "%.0f" .Result.OverallScore}}</div><div class="label">Overall</div></div>
<div class="score-card"><div class="value">{{printf "%.0f" .Result.CategoryScores.Technical}}</div><div class="label">Technical</div></div>
<div class="score-card"><div class="value">{{printf "%.0f" .Result.CategoryScores.Content}}</div><div class="label">Content</div></div>
<div class="score-card"><div class="value">{{printf "%.0f" .Result.CategoryScores.UX}}</div><div class="label">UX / Mobile</div></div>
<div class="score-card"><div class="value">{{printf "%.0f" .Result.CategoryScores.Authority}}</div><div class="label">Authority</div></div>
</div>

<div class="summary-box">{{.Result.Summary}}</div>

<div class="tabs">
<a class="tab{{if eq .Active "ALL"}} active{{end}}" href="/dashboard/{{.Result.ID}}">All ({{len .Result.Issues}})</a>
{{$active := .Active}}{{$id := .Result.ID}}
{{range .Categories}}
<a class="tab{{if eq $active .}} active{{end}}" href="/dashboard/{{$id}}?category={{.}}">{{.}}</a>
{{end}}
</div>

{{range .Issues}}
<div class="issue">
<h3>{{.Title}}</h3>
<span class="badge {{lower (printf "%s" .Severity)}}">{{.Severity}}</span>
<span class="badge info">{{.Category}}</span>
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{if .Recommendation}}<p>{{.Recommendation}}</p>{{end}}
{{if .HasFix}}
<details>
<summary>View Fix</summary>
<pre>{{.CodeFix.Current}}</pre>
<pre>{{.CodeFix.Optimized}}</pre>
<p class="meta">{{.CodeFix.Explanation}}</p>
</details>
{{end}}
</div>
{{else}}
<p class="meta">No issues in this category.</p>
{{end}}

<div class="export">
<a href="/api/results/{{.Result.ID}}/export?format=pdf">Export PDF</a>
<a href="/api/results/{{.Result.ID}}/export?format=markdown">Export Markdown</a>
<a href="/api/results/{{.Result.ID}}/export?format=json">Export JSON</a>
</div>
</div>
</body>
</html>`
