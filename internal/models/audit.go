package models

// AuditType selects which specialized field set populates a result.
type AuditType string

const (
	AuditWeb AuditType = "WEB"
	AuditApp AuditType = "APP"
)

// Severity ranks the urgency of an issue, most urgent first.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
	SeverityGood     Severity = "GOOD"
)

// Rank returns the ordering position of a severity, 0 being most urgent.
// Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	case SeverityGood:
		return 3
	}
	return 4
}

// Category is one of the four fixed analytical dimensions.
type Category string

const (
	CategoryTechnical Category = "TECHNICAL"
	CategoryContent   Category = "CONTENT"
	CategoryUXMobile  Category = "UX_MOBILE"
	CategoryAuthority Category = "AUTHORITY"

	// CategoryAll is the filter selector matching every issue. It is never
	// a valid issue category.
	CategoryAll Category = "ALL"
)

// Categories lists the four issue categories in display order.
func Categories() []Category {
	return []Category{CategoryTechnical, CategoryContent, CategoryUXMobile, CategoryAuthority}
}

// CategoryScores is the per-dimension score breakdown (each 0-100).
type CategoryScores struct {
	Technical float64 `json:"technical"`
	Content   float64 `json:"content"`
	UX        float64 `json:"ux"`
	Authority float64 `json:"authority"`
}

// CodeFix is a before/after code suggestion attached to an issue. It is
// either fully present or absent, never partial.
type CodeFix struct {
	Current     string `json:"current"`
	Optimized   string `json:"optimized"`
	Explanation string `json:"explanation"`
}

// Issue is one audit finding.
type Issue struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Severity       Severity `json:"severity"`
	Category       Category `json:"category"`
	Recommendation string   `json:"recommendation"`
	CodeFix        *CodeFix `json:"codeFix,omitempty"`
	Impact         string   `json:"impact"`
	Effort         string   `json:"effort"`
}

// HasFix reports whether a fix view should be offered for this issue.
func (i Issue) HasFix() bool {
	return i.CodeFix != nil
}

// CompetitorMetrics holds estimated quantitative metrics for a competitor.
// The analysis contract marks these non-nullable so the model estimates
// rather than omits; values are always present and non-negative.
type CompetitorMetrics struct {
	MonthlyTraffic  float64  `json:"monthlyTraffic"`
	OrganicKeywords float64  `json:"organicKeywords"`
	DomainAuthority float64  `json:"domainAuthority"`
	Backlinks       float64  `json:"backlinks"`
	TopKeywords     []string `json:"topKeywords"`
}

// Competitor is one competing site or app identified by the analysis.
type Competitor struct {
	Name           string            `json:"name"`
	URL            string            `json:"url"`
	OverlapScore   float64           `json:"overlapScore"`
	MarketPosition string            `json:"marketPosition"` // LEADER | CHALLENGER | NICHE
	Strengths      []string          `json:"strengths"`
	Weaknesses     []string          `json:"weaknesses"`
	Scores         CategoryScores    `json:"scores"`
	Metrics        CompetitorMetrics `json:"metrics"`
}

// RoadmapTask is one remediation step.
type RoadmapTask struct {
	Task   string `json:"task"`
	Impact string `json:"impact"` // HIGH | MEDIUM | LOW
	Effort string `json:"effort"` // LOW | MEDIUM | HIGH
}

// RoadmapStage groups remediation tasks by time horizon.
type RoadmapStage struct {
	Stage string        `json:"stage"` // IMMEDIATE | SHORT_TERM | LONG_TERM
	Tasks []RoadmapTask `json:"tasks"`
}

// ContentAnalysis summarizes tone and readability of the audited content.
type ContentAnalysis struct {
	Tone             string   `json:"tone"`
	ReadabilityLevel string   `json:"readabilityLevel"`
	Sentiment        string   `json:"sentiment"` // POSITIVE | NEUTRAL | NEGATIVE
	TopEntities      []string `json:"topEntities"`
}

// KeywordMetric is one keyword with its frequency and density.
type KeywordMetric struct {
	Keyword string  `json:"keyword"`
	Count   int     `json:"count"`
	Density float64 `json:"density"` // percentage 0-100
}

// KeywordAnalysis holds the top keywords and an overall recommendation.
type KeywordAnalysis struct {
	TopKeywords    []KeywordMetric `json:"topKeywords"`
	Recommendation string          `json:"recommendation"`
}

// SocialPreview mirrors the Open Graph style share card of the page.
// Null fields mean "absent/unknown".
type SocialPreview struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	SiteName    *string `json:"siteName"`
}

// TrafficPoint is one month of the 6-point forecast: current stays flat,
// projected assumes the recommendations are implemented.
type TrafficPoint struct {
	Month     string  `json:"month"`
	Current   float64 `json:"current"`
	Projected float64 `json:"projected"`
}

// LinkBreakdown splits a link set into dofollow/nofollow/broken counts.
type LinkBreakdown struct {
	Dofollow int `json:"dofollow"`
	Nofollow int `json:"nofollow"`
	Broken   int `json:"broken"`
}

// LinkStats is the internal/external link classification.
type LinkStats struct {
	Internal LinkBreakdown `json:"internal"`
	External LinkBreakdown `json:"external"`
}

// TechSpecs is the web-specific technical field set. Pointer fields are
// nullable in the contract and map null to absent.
type TechSpecs struct {
	TitleTag              string     `json:"titleTag"`
	TitleLength           int        `json:"titleLength"`
	MetaDescription       string     `json:"metaDescription"`
	MetaDescriptionLength int        `json:"metaDescriptionLength"`
	CanonicalTag          *string    `json:"canonicalTag"`
	RobotsMeta            *string    `json:"robotsMeta"`
	ViewportMeta          *string    `json:"viewportMeta"`
	Charset               *string    `json:"charset"`
	H1Count               int        `json:"h1Count"`
	H1Content             string     `json:"h1Content"`
	HeadingStructure      string     `json:"headingStructure"`
	WordCount             int        `json:"wordCount"`
	TextToHTMLRatio       float64    `json:"textToHtmlRatio"`
	ImageCount            int        `json:"imageCount"`
	ImagesWithoutAlt      int        `json:"imagesWithoutAlt"`
	InternalLinkCount     int        `json:"internalLinkCount"`
	ExternalLinkCount     int        `json:"externalLinkCount"`
	LinkStats             *LinkStats `json:"linkStats,omitempty"`
	SchemaTypes           []string   `json:"schemaTypes"`
	OpenGraphTags         bool       `json:"openGraphTags"`
	TwitterCard           bool       `json:"twitterCard"`
	Favicon               bool       `json:"favicon"`
}

// AsoSpecs is the app-store-specific field set.
type AsoSpecs struct {
	AppName          string   `json:"appName"`
	AppNameLength    int      `json:"appNameLength"`
	Subtitle         *string  `json:"subtitle"`
	ShortDescription *string  `json:"shortDescription"`
	PromotionalText  *string  `json:"promotionalText"`
	DescriptionLength int     `json:"descriptionLength"`
	KeywordsDetected []string `json:"keywordsDetected"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"reviewCount"`
	LastUpdated      *string  `json:"lastUpdated"`
	Version          *string  `json:"version"`
	HasVideoPreview  bool     `json:"hasVideoPreview"`
}

// AuditResult is the canonical output of one analysis: the parsed model
// response stamped with request metadata. Immutable once composed.
// Exactly one of Specs/AsoSpecs is populated, selected by AuditType.
type AuditResult struct {
	ID             string    `json:"id"`
	Timestamp      int64     `json:"timestamp"` // unix milliseconds
	URL            string    `json:"url"`
	AuditType      AuditType `json:"auditType"`
	TargetAudience string    `json:"targetAudience,omitempty"`
	Geo            string    `json:"geo,omitempty"`

	OverallScore   float64        `json:"overallScore"`
	CategoryScores CategoryScores `json:"categoryScores"`
	Summary        string         `json:"summary"`

	Specs    *TechSpecs `json:"specs"`
	AsoSpecs *AsoSpecs  `json:"asoSpecs"`

	Issues             []Issue          `json:"issues"`
	KeywordStrategy    []string         `json:"keywordStrategy"`
	KeywordAnalysis    *KeywordAnalysis `json:"keywordAnalysis"`
	TechStack          []string         `json:"techStack"`
	SocialPreview      *SocialPreview   `json:"socialPreview"`
	ContentGapAnalysis string           `json:"contentGapAnalysis"`
	Competitors        []Competitor     `json:"competitors"`
	TrafficForecast    []TrafficPoint   `json:"trafficForecast"`
	Roadmap            []RoadmapStage   `json:"roadmap"`
	ContentAnalysis    *ContentAnalysis `json:"contentAnalysis"`
}

// FilterIssues returns the issues whose category equals cat, or all issues
// when cat is CategoryAll. The result preserves order and shares no
// backing array growth with the input.
func FilterIssues(issues []Issue, cat Category) []Issue {
	if cat == CategoryAll {
		out := make([]Issue, len(issues))
		copy(out, issues)
		return out
	}
	out := make([]Issue, 0, len(issues))
	for _, is := range issues {
		if is.Category == cat {
			out = append(out, is)
		}
	}
	return out
}

// CountBySeverity tallies issues per severity.
func (r *AuditResult) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int, 4)
	for _, is := range r.Issues {
		counts[is.Severity]++
	}
	return counts
}

// ToHistoryItem condenses the result into its persisted summary form.
func (r *AuditResult) ToHistoryItem() HistoryItem {
	return HistoryItem{
		ID:         r.ID,
		URL:        r.URL,
		Timestamp:  r.Timestamp,
		Score:      r.OverallScore,
		ErrorCount: len(r.Issues),
		Type:       r.AuditType,
	}
}
