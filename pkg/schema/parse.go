package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/auditpro/auditpro/internal/models"
)

// ErrContract marks a response that was present but does not match the
// result contract. Callers treat it like a transport failure: no partial
// result is ever produced.
var ErrContract = errors.New("response does not match result contract")

var requiredFields = []string{
	"overallScore", "categoryScores", "summary", "issues", "competitors", "trafficForecast",
}

// ParseResult validates the model's raw JSON reply against the contract and
// returns the typed result, normalized for the given audit kind. It fails
// closed: any missing required field, enum violation, partial codeFix,
// negative or absent competitor metric, or absent kind-matching spec set
// yields an error wrapping ErrContract.
//
// The returned result still lacks the client-stamped fields (id, timestamp,
// url, audience, geo); the analysis client merges those in.
func ParseResult(raw []byte, kind models.AuditType) (*models.AuditResult, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrContract)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContract, err)
	}
	for _, f := range requiredFields {
		v, ok := top[f]
		if !ok || isNull(v) {
			return nil, fmt.Errorf("%w: missing required field %q", ErrContract, f)
		}
	}

	var r models.AuditResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContract, err)
	}

	if r.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", ErrContract)
	}
	for idx, is := range r.Issues {
		if err := validateIssue(is); err != nil {
			return nil, fmt.Errorf("%w: issue %d: %v", ErrContract, idx, err)
		}
	}
	for idx, c := range r.Competitors {
		if err := validateCompetitor(c); err != nil {
			return nil, fmt.Errorf("%w: competitor %d: %v", ErrContract, idx, err)
		}
	}
	for idx, s := range r.Roadmap {
		if !oneOf(s.Stage, "IMMEDIATE", "SHORT_TERM", "LONG_TERM") {
			return nil, fmt.Errorf("%w: roadmap %d: invalid stage %q", ErrContract, idx, s.Stage)
		}
	}
	if ca := r.ContentAnalysis; ca != nil && ca.Sentiment != "" {
		if !oneOf(ca.Sentiment, "POSITIVE", "NEUTRAL", "NEGATIVE") {
			return nil, fmt.Errorf("%w: invalid sentiment %q", ErrContract, ca.Sentiment)
		}
	}

	if err := normalizeSpecs(&r, kind); err != nil {
		return nil, err
	}
	return &r, nil
}

func validateIssue(is models.Issue) error {
	if is.Title == "" {
		return errors.New("empty title")
	}
	if is.Severity.Rank() > models.SeverityGood.Rank() {
		return fmt.Errorf("invalid severity %q", is.Severity)
	}
	switch is.Category {
	case models.CategoryTechnical, models.CategoryContent, models.CategoryUXMobile, models.CategoryAuthority:
	default:
		return fmt.Errorf("invalid category %q", is.Category)
	}
	if is.Effort != "" && !oneOf(is.Effort, "LOW", "MEDIUM", "HIGH") {
		return fmt.Errorf("invalid effort %q", is.Effort)
	}
	if fix := is.CodeFix; fix != nil {
		if fix.Current == "" || fix.Optimized == "" || fix.Explanation == "" {
			return errors.New("partial codeFix")
		}
	}
	return nil
}

func validateCompetitor(c models.Competitor) error {
	if c.MarketPosition != "" && !oneOf(c.MarketPosition, "LEADER", "CHALLENGER", "NICHE") {
		return fmt.Errorf("invalid market position %q", c.MarketPosition)
	}
	m := c.Metrics
	if m.MonthlyTraffic < 0 || m.OrganicKeywords < 0 || m.DomainAuthority < 0 || m.Backlinks < 0 {
		return errors.New("negative metric value")
	}
	return nil
}

// normalizeSpecs enforces the exactly-one-spec-set invariant. The kind
// requested by the caller wins over whatever auditType the model echoed:
// the mismatched set is dropped, and a missing matching set is a contract
// violation.
func normalizeSpecs(r *models.AuditResult, kind models.AuditType) error {
	r.AuditType = kind
	switch kind {
	case models.AuditWeb:
		r.AsoSpecs = nil
		if r.Specs == nil {
			return fmt.Errorf("%w: specs missing for WEB audit", ErrContract)
		}
	case models.AuditApp:
		r.Specs = nil
		if r.AsoSpecs == nil {
			return fmt.Errorf("%w: asoSpecs missing for APP audit", ErrContract)
		}
	default:
		return fmt.Errorf("%w: unknown audit kind %q", ErrContract, kind)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
