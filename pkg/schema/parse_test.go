package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditpro/auditpro/internal/models"
)

const validWebReply = `{
  "auditType": "WEB",
  "overallScore": 68,
  "categoryScores": {"technical": 70, "content": 60, "ux": 75, "authority": 65},
  "summary": "Solid technical base, thin content.",
  "specs": {
    "titleTag": "Example", "titleLength": 7,
    "metaDescription": "An example site", "metaDescriptionLength": 15,
    "canonicalTag": null, "robotsMeta": "index,follow", "viewportMeta": "width=device-width", "charset": "UTF-8",
    "h1Count": 1, "h1Content": "Welcome", "headingStructure": "H1>H2>H2",
    "wordCount": 430, "textToHtmlRatio": 0.18,
    "imageCount": 12, "imagesWithoutAlt": 3,
    "internalLinkCount": 24, "externalLinkCount": 6,
    "linkStats": {"internal": {"dofollow": 22, "nofollow": 1, "broken": 1}, "external": {"dofollow": 4, "nofollow": 2, "broken": 0}},
    "schemaTypes": ["Organization"], "openGraphTags": true, "twitterCard": false, "favicon": true
  },
  "asoSpecs": null,
  "issues": [
    {"id": "iss-1", "title": "Short meta description", "description": "Below 120 chars.",
     "severity": "WARNING", "category": "CONTENT", "recommendation": "Expand to 120-160 chars.",
     "codeFix": {"current": "<meta name=\"description\" content=\"An example site\">",
                 "optimized": "<meta name=\"description\" content=\"An example site for testing meta description length guidance.\">",
                 "explanation": "Longer description improves snippet quality."},
     "impact": "Moderate CTR loss", "effort": "LOW"}
  ],
  "roadmap": [{"stage": "IMMEDIATE", "tasks": [{"task": "Fix meta description", "impact": "MEDIUM", "effort": "LOW"}]}],
  "contentAnalysis": {"tone": "Informational", "readabilityLevel": "Grade 8", "sentiment": "NEUTRAL", "topEntities": ["Example"]},
  "keywordAnalysis": {"topKeywords": [{"keyword": "example", "count": 14, "density": 3.2}], "recommendation": "Broaden long-tail coverage."},
  "socialPreview": {"title": "Example", "description": null, "image": null, "siteName": "Example"},
  "techStack": ["WordPress", "GA4"],
  "keywordStrategy": ["example testing", "sample sites"],
  "contentGapAnalysis": "No comparison pages.",
  "trafficForecast": [
    {"month": "Jan", "current": 1000, "projected": 1000},
    {"month": "Feb", "current": 1000, "projected": 1100},
    {"month": "Mar", "current": 1000, "projected": 1180},
    {"month": "Apr", "current": 1000, "projected": 1260},
    {"month": "May", "current": 1000, "projected": 1350},
    {"month": "Jun", "current": 1000, "projected": 1450}
  ],
  "competitors": [
    {"name": "Rival", "url": "rival.com", "overlapScore": 62, "marketPosition": "LEADER",
     "strengths": ["brand"], "weaknesses": ["slow site"],
     "scores": {"technical": 80, "content": 72, "ux": 78, "authority": 85},
     "metrics": {"monthlyTraffic": 250000, "organicKeywords": 12000, "domainAuthority": 72, "backlinks": 340000, "topKeywords": ["rival"]}}
  ]
}`

func mutate(t *testing.T, base string, fn func(m map[string]any)) []byte {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(base), &m))
	fn(m)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return out
}

func TestParseResultValid(t *testing.T) {
	r, err := ParseResult([]byte(validWebReply), models.AuditWeb)
	require.NoError(t, err)

	assert.Equal(t, models.AuditWeb, r.AuditType)
	assert.NotNil(t, r.Specs)
	assert.Nil(t, r.AsoSpecs)
	assert.Equal(t, float64(68), r.OverallScore)
	assert.Len(t, r.Issues, 1)
	assert.True(t, r.Issues[0].HasFix())
	assert.Nil(t, r.Specs.CanonicalTag, "null contract field maps to absent")
	assert.Len(t, r.TrafficForecast, 6)
}

func TestParseResultNotJSON(t *testing.T) {
	_, err := ParseResult([]byte("not json"), models.AuditWeb)
	assert.ErrorIs(t, err, ErrContract)
}

func TestParseResultEmpty(t *testing.T) {
	_, err := ParseResult([]byte("  "), models.AuditWeb)
	assert.ErrorIs(t, err, ErrContract)
}

func TestParseResultMissingRequired(t *testing.T) {
	for _, field := range []string{"overallScore", "categoryScores", "summary", "issues", "competitors", "trafficForecast"} {
		raw := mutate(t, validWebReply, func(m map[string]any) { delete(m, field) })
		_, err := ParseResult(raw, models.AuditWeb)
		assert.ErrorIs(t, err, ErrContract, "dropping %s must fail", field)

		raw = mutate(t, validWebReply, func(m map[string]any) { m[field] = nil })
		_, err = ParseResult(raw, models.AuditWeb)
		assert.ErrorIs(t, err, ErrContract, "null %s must fail", field)
	}
}

func TestParseResultInvalidEnums(t *testing.T) {
	raw := mutate(t, validWebReply, func(m map[string]any) {
		m["issues"].([]any)[0].(map[string]any)["severity"] = "URGENT"
	})
	_, err := ParseResult(raw, models.AuditWeb)
	assert.ErrorIs(t, err, ErrContract)

	raw = mutate(t, validWebReply, func(m map[string]any) {
		m["issues"].([]any)[0].(map[string]any)["category"] = "SPEED"
	})
	_, err = ParseResult(raw, models.AuditWeb)
	assert.ErrorIs(t, err, ErrContract)

	raw = mutate(t, validWebReply, func(m map[string]any) {
		m["competitors"].([]any)[0].(map[string]any)["marketPosition"] = "MONOPOLY"
	})
	_, err = ParseResult(raw, models.AuditWeb)
	assert.ErrorIs(t, err, ErrContract)
}

func TestParseResultPartialCodeFix(t *testing.T) {
	raw := mutate(t, validWebReply, func(m map[string]any) {
		m["issues"].([]any)[0].(map[string]any)["codeFix"] = map[string]any{"current": "<x>"}
	})
	_, err := ParseResult(raw, models.AuditWeb)
	assert.ErrorIs(t, err, ErrContract)
}

func TestParseResultNegativeMetric(t *testing.T) {
	raw := mutate(t, validWebReply, func(m map[string]any) {
		comp := m["competitors"].([]any)[0].(map[string]any)
		comp["metrics"].(map[string]any)["backlinks"] = -1
	})
	_, err := ParseResult(raw, models.AuditWeb)
	assert.ErrorIs(t, err, ErrContract)
}

func TestParseResultSpecsMissingForKind(t *testing.T) {
	raw := mutate(t, validWebReply, func(m map[string]any) { m["specs"] = nil })
	_, err := ParseResult(raw, models.AuditWeb)
	assert.ErrorIs(t, err, ErrContract)

	// An APP audit of the same payload must fail too: no asoSpecs present.
	_, err = ParseResult([]byte(validWebReply), models.AuditApp)
	assert.ErrorIs(t, err, ErrContract)
}

func TestParseResultDropsMismatchedSpecs(t *testing.T) {
	raw := mutate(t, validWebReply, func(m map[string]any) {
		// Model echoes both sets; the requested kind wins.
		m["asoSpecs"] = map[string]any{
			"appName": "Example App", "appNameLength": 11, "subtitle": nil,
			"shortDescription": nil, "promotionalText": nil, "descriptionLength": 0,
			"keywordsDetected": []any{}, "rating": 4.2, "reviewCount": 10,
			"lastUpdated": nil, "version": nil, "hasVideoPreview": false,
		}
	})
	r, err := ParseResult(raw, models.AuditWeb)
	require.NoError(t, err)
	assert.NotNil(t, r.Specs)
	assert.Nil(t, r.AsoSpecs)
}

func TestResponseSchemaShape(t *testing.T) {
	s := ResponseSchema()
	assert.Equal(t, "OBJECT", s["type"])

	props := s["properties"].(map[string]any)
	for _, f := range []string{"overallScore", "categoryScores", "summary", "specs", "asoSpecs",
		"issues", "competitors", "trafficForecast", "roadmap", "keywordAnalysis", "techStack"} {
		assert.Contains(t, props, f)
	}
	assert.ElementsMatch(t, []string{"overallScore", "categoryScores", "summary", "issues", "competitors", "trafficForecast"},
		s["required"].([]string))

	// Competitor metrics must not be nullable.
	competitors := props["competitors"].(map[string]any)
	item := competitors["items"].(map[string]any)
	metrics := item["properties"].(map[string]any)["metrics"].(map[string]any)
	assert.NotContains(t, metrics, "nullable")

	// The schema must survive JSON encoding; it ships inside the request.
	_, err := json.Marshal(s)
	require.NoError(t, err)
}
