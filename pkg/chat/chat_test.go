package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditpro/auditpro/internal/models"
	"github.com/auditpro/auditpro/pkg/gemini"
)

type fakeGenerator struct {
	lastReq gemini.GenerateRequest
	reply   string
	err     error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, req gemini.GenerateRequest) (string, error) {
	f.lastReq = req
	return f.reply, f.err
}

func threeIssueResult() *models.AuditResult {
	return &models.AuditResult{
		URL:          "example.com",
		OverallScore: 71,
		Summary:      "Decent site.",
		TechStack:    []string{"WordPress", "GA4"},
		Issues: []models.Issue{
			{Title: "Missing canonical", Severity: models.SeverityCritical, Category: models.CategoryTechnical,
				Recommendation: "Add a canonical tag.",
				CodeFix:        &models.CodeFix{Current: "SECRET_CURRENT", Optimized: "SECRET_OPTIMIZED", Explanation: "SECRET_WHY"}},
			{Title: "Thin content", Severity: models.SeverityWarning, Category: models.CategoryContent,
				Recommendation: "Expand key pages."},
			{Title: "Slow LCP", Severity: models.SeverityWarning, Category: models.CategoryUXMobile,
				Recommendation: "Compress hero image."},
		},
	}
}

func TestContextBlockReducedProjections(t *testing.T) {
	block := ContextBlock(threeIssueResult())

	assert.Contains(t, block, "example.com")
	assert.Contains(t, block, "71/100")
	assert.Contains(t, block, "Total Issues Found: 3")
	assert.Contains(t, block, "WordPress, GA4")

	// Exactly 3 reduced issue projections.
	assert.Equal(t, 3, strings.Count(block, `"title"`))
	assert.Contains(t, block, "Missing canonical")
	assert.Contains(t, block, "Add a canonical tag.")

	// Code-fix bodies are dropped from the context.
	assert.NotContains(t, block, "SECRET_CURRENT")
	assert.NotContains(t, block, "SECRET_OPTIMIZED")
	assert.NotContains(t, block, "SECRET_WHY")
}

func TestAskSendsHistoryAndMessage(t *testing.T) {
	gen := &fakeGenerator{reply: "Fix the canonical tag first."}
	c := New(gen)

	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "What should I fix first?"},
		{Role: models.RoleModel, Content: "Start with the critical issue."},
	}
	reply, err := c.Ask(context.Background(), history, "Show me how.", threeIssueResult())
	require.NoError(t, err)
	assert.Equal(t, "Fix the canonical tag first.", reply)

	req := gen.lastReq
	assert.NotEmpty(t, req.SystemInstruction)
	assert.Nil(t, req.ResponseSchema, "chat replies are free text")
	require.Len(t, req.Contents, 3)
	assert.Equal(t, models.RoleUser, req.Contents[0].Role)
	assert.Equal(t, models.RoleModel, req.Contents[1].Role)
	assert.Equal(t, "Show me how.", req.Contents[2].Parts[0].Text)
}

func TestAskFailures(t *testing.T) {
	gen := &fakeGenerator{err: gemini.ErrMissingAPIKey}
	c := New(gen)

	_, err := c.Ask(context.Background(), nil, "hello", threeIssueResult())
	assert.ErrorIs(t, err, gemini.ErrMissingAPIKey)

	_, err = c.Ask(context.Background(), nil, "  ", threeIssueResult())
	assert.Error(t, err)

	_, err = c.Ask(context.Background(), nil, "hello", nil)
	assert.Error(t, err)
}
