package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditpro/auditpro/internal/models"
)

func sampleResult() *models.AuditResult {
	canonical := "https://example.com/"
	return &models.AuditResult{
		ID:           "res-1",
		Timestamp:    1724900000000,
		URL:          "https://example.com",
		AuditType:    models.AuditWeb,
		OverallScore: 72,
		CategoryScores: models.CategoryScores{
			Technical: 68, Content: 75, UX: 80, Authority: 65,
		},
		Summary: "Solid foundation with fixable technical gaps.",
		Specs: &models.TechSpecs{
			TitleTag:    "Example",
			TitleLength: 7,
			H1Count:     1,
			WordCount:   850,
			CanonicalTag: &canonical,
		},
		Issues: []models.Issue{
			{
				ID: "i-1", Title: "Missing meta description",
				Severity: models.SeverityCritical, Category: models.CategoryTechnical,
				Recommendation: "Add a 150-160 char description.",
				CodeFix: &models.CodeFix{
					Current:     "<head></head>",
					Optimized:   `<head><meta name="description" content="..."></head>`,
					Explanation: "Search engines use this snippet.",
				},
			},
			{
				ID: "i-2", Title: "Thin pricing page",
				Severity: models.SeverityWarning, Category: models.CategoryContent,
			},
		},
		TechStack: []string{"Next.js", "Cloudflare"},
		Competitors: []models.Competitor{
			{
				Name: "Rival Co", URL: "https://rival.example", OverlapScore: 60,
				MarketPosition: "LEADER",
				Metrics: models.CompetitorMetrics{
					MonthlyTraffic: 120000, DomainAuthority: 71, Backlinks: 5400, OrganicKeywords: 900,
				},
			},
		},
		KeywordAnalysis: &models.KeywordAnalysis{
			TopKeywords:    []models.KeywordMetric{{Keyword: "example tool", Count: 14, Density: 1.8}},
			Recommendation: "Target long-tail comparison queries.",
		},
		TrafficForecast: []models.TrafficPoint{
			{Month: "Month 1", Current: 1000, Projected: 1100},
			{Month: "Month 2", Current: 1000, Projected: 1300},
		},
		Roadmap: []models.RoadmapStage{
			{Stage: "IMMEDIATE", Tasks: []models.RoadmapTask{{Task: "Fix meta tags", Impact: "HIGH", Effort: "LOW"}}},
		},
	}
}

func TestGenerateJSONRoundTrip(t *testing.T) {
	rep := New()
	out, err := rep.Generate(sampleResult(), "json", Options{})
	require.NoError(t, err)

	var back models.AuditResult
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Equal(t, "res-1", back.ID)
	assert.Equal(t, models.AuditWeb, back.AuditType)
	assert.Len(t, back.Issues, 2)
}

func TestGenerateMarkdownSections(t *testing.T) {
	rep := New()
	out, err := rep.Generate(sampleResult(), "markdown", Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "# Audit Report for https://example.com")
	assert.Contains(t, out, "**Overall Score:** 72/100")
	assert.Contains(t, out, "Missing meta description")
	assert.Contains(t, out, "Rival Co")
	assert.Contains(t, out, "example tool")
	assert.Contains(t, out, "Month 2")
	assert.Contains(t, out, "Fix meta tags")
	// codeFix present only for the issue that carries one
	assert.Contains(t, out, "<head></head>")
}

func TestDefaultSectionsMatchFullRender(t *testing.T) {
	rep := New()
	full, err := rep.Generate(sampleResult(), "markdown", Options{})
	require.NoError(t, err)
	explicit, err := rep.Generate(sampleResult(), "markdown", Options{Sections: DefaultSections()})
	require.NoError(t, err)
	assert.Equal(t, full, explicit)
}

func TestGenerateMarkdownSectionSelection(t *testing.T) {
	rep := New()
	out, err := rep.Generate(sampleResult(), "markdown", Options{
		Sections: []string{SectionOverview, SectionIssues},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "## Overview")
	assert.Contains(t, out, "## Issues")
	assert.NotContains(t, out, "## Competitors")
	assert.NotContains(t, out, "## Roadmap")
}

func TestGenerateMarkdownCategoryFilter(t *testing.T) {
	rep := New()
	out, err := rep.Generate(sampleResult(), "markdown", Options{
		Sections: []string{SectionIssues},
		Category: models.CategoryContent,
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Thin pricing page")
	assert.NotContains(t, out, "Missing meta description")
}

func TestGenerateHTML(t *testing.T) {
	rep := New()
	out, err := rep.Generate(sampleResult(), "html", Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "Missing meta description")
	// fix affordance only where a codeFix exists: exactly one issue has one
	assert.Equal(t, 2, strings.Count(out, "<pre>"))
}

func TestGenerateHTMLNoFixNoPre(t *testing.T) {
	r := sampleResult()
	for i := range r.Issues {
		r.Issues[i].CodeFix = nil
	}
	out, err := New().Generate(r, "html", Options{})
	require.NoError(t, err)
	assert.NotContains(t, out, "<pre>")
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	_, err := New().Generate(sampleResult(), "docx", Options{})
	assert.Error(t, err)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	err := New().WritePDF(sampleResult(), Options{}, &buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "auditpro_example-com.pdf", ExportFilename("https://example.com", "pdf"))
	assert.Equal(t, "auditpro_audit.pdf", ExportFilename("", "pdf"))
}
