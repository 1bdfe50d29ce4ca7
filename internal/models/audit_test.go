package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleIssues() []Issue {
	return []Issue{
		{ID: "1", Title: "Missing title tag", Severity: SeverityCritical, Category: CategoryTechnical},
		{ID: "2", Title: "Thin content", Severity: SeverityWarning, Category: CategoryContent},
		{ID: "3", Title: "No viewport meta", Severity: SeverityCritical, Category: CategoryUXMobile},
		{ID: "4", Title: "Few backlinks", Severity: SeverityInfo, Category: CategoryAuthority},
		{ID: "5", Title: "Good heading structure", Severity: SeverityGood, Category: CategoryTechnical},
	}
}

func TestFilterIssuesByCategory(t *testing.T) {
	issues := sampleIssues()

	technical := FilterIssues(issues, CategoryTechnical)
	assert.Len(t, technical, 2)
	for _, is := range technical {
		assert.Equal(t, CategoryTechnical, is.Category)
	}

	all := FilterIssues(issues, CategoryAll)
	assert.Equal(t, issues, all)
}

func TestFilterIssuesPartition(t *testing.T) {
	issues := sampleIssues()

	// The four category filters together must partition the full list:
	// nothing dropped, nothing duplicated.
	seen := make(map[string]int)
	total := 0
	for _, cat := range Categories() {
		for _, is := range FilterIssues(issues, cat) {
			seen[is.ID]++
			total++
		}
	}
	assert.Equal(t, len(issues), total)
	for id, n := range seen {
		assert.Equal(t, 1, n, "issue %s appeared %d times", id, n)
	}
}

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityCritical.Rank(), SeverityWarning.Rank())
	assert.Less(t, SeverityWarning.Rank(), SeverityInfo.Rank())
	assert.Less(t, SeverityInfo.Rank(), SeverityGood.Rank())
	assert.Greater(t, Severity("BOGUS").Rank(), SeverityGood.Rank())
}

func TestHasFix(t *testing.T) {
	with := Issue{CodeFix: &CodeFix{Current: "<title>", Optimized: "<title>Home</title>", Explanation: "add text"}}
	without := Issue{}
	assert.True(t, with.HasFix())
	assert.False(t, without.HasFix())
}

func TestCountBySeverity(t *testing.T) {
	r := AuditResult{Issues: sampleIssues()}
	counts := r.CountBySeverity()
	assert.Equal(t, 2, counts[SeverityCritical])
	assert.Equal(t, 1, counts[SeverityWarning])
	assert.Equal(t, 1, counts[SeverityInfo])
	assert.Equal(t, 1, counts[SeverityGood])
}

func TestToHistoryItem(t *testing.T) {
	r := AuditResult{
		ID:           "abc",
		URL:          "example.com",
		Timestamp:    1700000000000,
		AuditType:    AuditWeb,
		OverallScore: 72,
		Issues:       sampleIssues(),
	}
	item := r.ToHistoryItem()
	assert.Equal(t, "abc", item.ID)
	assert.Equal(t, "example.com", item.URL)
	assert.Equal(t, int64(1700000000000), item.Timestamp)
	assert.Equal(t, float64(72), item.Score)
	assert.Equal(t, 5, item.ErrorCount)
	assert.Equal(t, AuditWeb, item.Type)
}
