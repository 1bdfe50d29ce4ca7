// Package reporter renders an AuditResult into the supported report
// formats. Rendering never mutates the result; section selection affects
// presentation only.
package reporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/auditpro/auditpro/internal/models"
	"github.com/auditpro/auditpro/pkg/utils"
)

// Report section names usable for export selection.
const (
	SectionOverview    = "overview"
	SectionIssues      = "issues"
	SectionCompetitors = "competitors"
	SectionKeywords    = "keywords"
	SectionSpecs       = "specs"
	SectionForecast    = "forecast"
	SectionRoadmap     = "roadmap"
)

// DefaultSections lists every section in display order.
func DefaultSections() []string {
	return []string{
		SectionOverview, SectionIssues, SectionCompetitors,
		SectionKeywords, SectionSpecs, SectionForecast, SectionRoadmap,
	}
}

// Reporter handles report generation in various formats.
type Reporter struct{}

// New creates a new Reporter instance.
func New() *Reporter {
	return &Reporter{}
}

// Options controls what a rendering includes.
type Options struct {
	// Sections restricts output to the named sections; nil means all.
	Sections []string
	// Category filters the issue list; empty or CategoryAll shows all.
	Category models.Category
}

func (o Options) enabled(section string) bool {
	if len(o.Sections) == 0 {
		return true
	}
	for _, s := range o.Sections {
		if s == section {
			return true
		}
	}
	return false
}

func (o Options) issues(r *models.AuditResult) []models.Issue {
	cat := o.Category
	if cat == "" {
		cat = models.CategoryAll
	}
	issues := models.FilterIssues(r.Issues, cat)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Rank() < issues[j].Severity.Rank()
	})
	return issues
}

// Generate creates a report in the specified format (json, markdown, html).
func (rep *Reporter) Generate(result *models.AuditResult, format string, opts Options) (string, error) {
	switch format {
	case "json":
		return rep.generateJSON(result)
	case "markdown":
		return rep.generateMarkdown(result, opts)
	case "html":
		return rep.generateHTML(result, opts)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// ExportFilename sanitizes the subject URL into a filesystem-safe artifact
// name.
func ExportFilename(url, ext string) string {
	token := utils.HostToken(url)
	if token == "" {
		token = "audit"
	}
	return fmt.Sprintf("auditpro_%s.%s", token, ext)
}

func (rep *Reporter) generateJSON(result *models.AuditResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}

func (rep *Reporter) generateMarkdown(result *models.AuditResult, opts Options) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Audit Report for %s\n\n", result.URL)
	fmt.Fprintf(&buf, "*%s audit, generated on %s*\n\n",
		result.AuditType, time.UnixMilli(result.Timestamp).Format("January 2, 2006"))

	if opts.enabled(SectionOverview) {
		fmt.Fprintf(&buf, "## Overview\n\n")
		fmt.Fprintf(&buf, "**Overall Score:** %.0f/100\n\n", result.OverallScore)
		fmt.Fprintf(&buf, "| Dimension | Score |\n")
		fmt.Fprintf(&buf, "|-----------|-------|\n")
		fmt.Fprintf(&buf, "| Technical | %.0f |\n", result.CategoryScores.Technical)
		fmt.Fprintf(&buf, "| Content | %.0f |\n", result.CategoryScores.Content)
		fmt.Fprintf(&buf, "| UX / Mobile | %.0f |\n", result.CategoryScores.UX)
		fmt.Fprintf(&buf, "| Authority | %.0f |\n\n", result.CategoryScores.Authority)
		fmt.Fprintf(&buf, "%s\n\n", result.Summary)
		if len(result.TechStack) > 0 {
			fmt.Fprintf(&buf, "**Detected stack:** %s\n\n", strings.Join(result.TechStack, ", "))
		}
	}

	if opts.enabled(SectionIssues) {
		issues := opts.issues(result)
		if len(issues) > 0 {
			fmt.Fprintf(&buf, "## Issues (%d)\n\n", len(issues))
			for _, is := range issues {
				fmt.Fprintf(&buf, "### %s\n", is.Title)
				fmt.Fprintf(&buf, "- **Severity:** %s\n", is.Severity)
				fmt.Fprintf(&buf, "- **Category:** %s\n", is.Category)
				if is.Effort != "" {
					fmt.Fprintf(&buf, "- **Effort:** %s\n", is.Effort)
				}
				if is.Description != "" {
					fmt.Fprintf(&buf, "- **Description:** %s\n", is.Description)
				}
				if is.Recommendation != "" {
					fmt.Fprintf(&buf, "- **Recommendation:** %s\n", is.Recommendation)
				}
				if is.HasFix() {
					fmt.Fprintf(&buf, "\n```\n%s\n```\n\nSuggested:\n\n```\n%s\n```\n\n%s\n",
						is.CodeFix.Current, is.CodeFix.Optimized, is.CodeFix.Explanation)
				}
				fmt.Fprintf(&buf, "\n")
			}
		}
	}

	if opts.enabled(SectionCompetitors) && len(result.Competitors) > 0 {
		fmt.Fprintf(&buf, "## Competitors\n\n")
		fmt.Fprintf(&buf, "| Name | Position | Overlap | Monthly Traffic | DA | Backlinks |\n")
		fmt.Fprintf(&buf, "|------|----------|---------|-----------------|----|-----------|\n")
		for _, c := range result.Competitors {
			fmt.Fprintf(&buf, "| %s | %s | %.0f | %.0f | %.0f | %.0f |\n",
				c.Name, c.MarketPosition, c.OverlapScore,
				c.Metrics.MonthlyTraffic, c.Metrics.DomainAuthority, c.Metrics.Backlinks)
		}
		fmt.Fprintf(&buf, "\n")
	}

	if opts.enabled(SectionKeywords) && result.KeywordAnalysis != nil {
		fmt.Fprintf(&buf, "## Keywords\n\n")
		fmt.Fprintf(&buf, "| Keyword | Count | Density |\n")
		fmt.Fprintf(&buf, "|---------|-------|--------|\n")
		for _, k := range result.KeywordAnalysis.TopKeywords {
			fmt.Fprintf(&buf, "| %s | %d | %.1f%% |\n", k.Keyword, k.Count, k.Density)
		}
		fmt.Fprintf(&buf, "\n%s\n\n", result.KeywordAnalysis.Recommendation)
	}

	if opts.enabled(SectionSpecs) {
		if s := result.Specs; s != nil {
			fmt.Fprintf(&buf, "## Technical Specs\n\n")
			fmt.Fprintf(&buf, "- Title: %s (%d chars)\n", s.TitleTag, s.TitleLength)
			fmt.Fprintf(&buf, "- Meta description: %d chars\n", s.MetaDescriptionLength)
			fmt.Fprintf(&buf, "- H1 count: %d\n", s.H1Count)
			fmt.Fprintf(&buf, "- Word count: %d\n", s.WordCount)
			fmt.Fprintf(&buf, "- Images: %d (%d without alt)\n", s.ImageCount, s.ImagesWithoutAlt)
			fmt.Fprintf(&buf, "- Links: %d internal, %d external\n", s.InternalLinkCount, s.ExternalLinkCount)
			if s.CanonicalTag != nil {
				fmt.Fprintf(&buf, "- Canonical: %s\n", *s.CanonicalTag)
			}
			fmt.Fprintf(&buf, "\n")
		}
		if a := result.AsoSpecs; a != nil {
			fmt.Fprintf(&buf, "## App Store Specs\n\n")
			fmt.Fprintf(&buf, "- App name: %s (%d chars)\n", a.AppName, a.AppNameLength)
			fmt.Fprintf(&buf, "- Rating: %.1f (%d reviews)\n", a.Rating, a.ReviewCount)
			fmt.Fprintf(&buf, "- Description length: %d\n", a.DescriptionLength)
			if len(a.KeywordsDetected) > 0 {
				fmt.Fprintf(&buf, "- Keywords: %s\n", strings.Join(a.KeywordsDetected, ", "))
			}
			fmt.Fprintf(&buf, "\n")
		}
	}

	if opts.enabled(SectionForecast) && len(result.TrafficForecast) > 0 {
		fmt.Fprintf(&buf, "## Traffic Forecast\n\n")
		fmt.Fprintf(&buf, "| Month | Current | Projected |\n")
		fmt.Fprintf(&buf, "|-------|---------|----------|\n")
		for _, p := range result.TrafficForecast {
			fmt.Fprintf(&buf, "| %s | %.0f | %.0f |\n", p.Month, p.Current, p.Projected)
		}
		fmt.Fprintf(&buf, "\n")
	}

	if opts.enabled(SectionRoadmap) && len(result.Roadmap) > 0 {
		fmt.Fprintf(&buf, "## Roadmap\n\n")
		for _, stage := range result.Roadmap {
			fmt.Fprintf(&buf, "### %s\n\n", strings.ReplaceAll(stage.Stage, "_", " "))
			for _, task := range stage.Tasks {
				fmt.Fprintf(&buf, "- %s (impact: %s, effort: %s)\n", task.Task, task.Impact, task.Effort)
			}
			fmt.Fprintf(&buf, "\n")
		}
	}

	return buf.String(), nil
}

type htmlData struct {
	Result      *models.AuditResult
	Issues      []models.Issue
	GeneratedAt string
	Opts        Options
}

func (rep *Reporter) generateHTML(result *models.AuditResult, opts Options) (string, error) {
	t, err := template.New("report").Funcs(template.FuncMap{
		"lower":   strings.ToLower,
		"enabled": opts.enabled,
	}).Parse(htmlReportTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	data := htmlData{
		Result:      result,
		Issues:      opts.issues(result),
		GeneratedAt: time.UnixMilli(result.Timestamp).Format("January 2, 2006"),
		Opts:        opts,
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
