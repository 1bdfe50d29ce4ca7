// Package chat answers follow-up questions scoped to one produced audit.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/auditpro/auditpro/internal/models"
	"github.com/auditpro/auditpro/pkg/gemini"
)

// Fallback is the static apology shown when a chat turn fails; the
// conversation stays open for another attempt.
const Fallback = "Sorry, I couldn't process that question right now. Please try again."

// Generator is the model call the chat client depends on.
type Generator interface {
	GenerateContent(ctx context.Context, req gemini.GenerateRequest) (string, error)
}

// Client forwards follow-up questions with a condensed report context.
type Client struct {
	gen Generator
}

// New creates a chat client on top of a model client.
func New(gen Generator) *Client {
	return &Client{gen: gen}
}

// reducedIssue is the per-issue projection included in the chat context.
// Code-fix bodies are dropped to bound context size.
type reducedIssue struct {
	Title          string `json:"title"`
	Severity       string `json:"severity"`
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
}

// ContextBlock builds the condensed system context for one result: subject
// URL, score, summary, issue count, tech stack, and one reduced projection
// per issue. The model is told to answer only from this data.
func ContextBlock(result *models.AuditResult) string {
	reduced := make([]reducedIssue, len(result.Issues))
	for i, is := range result.Issues {
		reduced[i] = reducedIssue{
			Title:          is.Title,
			Severity:       string(is.Severity),
			Category:       string(is.Category),
			Recommendation: is.Recommendation,
		}
	}
	issuesJSON, _ := json.Marshal(reduced)

	return fmt.Sprintf(`You are the AI Auditor for this SEO report.

REPORT DATA:
- Target URL: %s
- Overall Health Score: %.0f/100
- Executive Summary: %s
- Total Issues Found: %d
- Detected Tech Stack: %s

DETAILED ISSUES:
%s

INSTRUCTIONS:
- Answer the user's questions specifically about *this* audit data.
- If they ask for a fix, provide code examples or specific instructions.
- Be professional, technical, and concise.
- Do not make up issues that are not in the data.`,
		result.URL,
		result.OverallScore,
		result.Summary,
		len(result.Issues),
		strings.Join(result.TechStack, ", "),
		issuesJSON)
}

// Ask forwards the new message with the full prior history and the
// condensed result context, and returns the model's free-text reply. The
// reply is not validated beyond being non-empty text.
func (c *Client) Ask(ctx context.Context, history []models.ChatMessage, newMessage string, result *models.AuditResult) (string, error) {
	if result == nil {
		return "", errors.New("chat: no audit result in scope")
	}
	if strings.TrimSpace(newMessage) == "" {
		return "", errors.New("chat: empty message")
	}

	contents := make([]gemini.Content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, gemini.Content{
			Role:  msg.Role,
			Parts: []gemini.Part{{Text: msg.Content}},
		})
	}
	contents = append(contents, gemini.Content{
		Role:  models.RoleUser,
		Parts: []gemini.Part{{Text: newMessage}},
	})

	reply, err := c.gen.GenerateContent(ctx, gemini.GenerateRequest{
		SystemInstruction: ContextBlock(result),
		Contents:          contents,
	})
	if err != nil {
		return "", fmt.Errorf("chat failed: %w", err)
	}
	return reply, nil
}
