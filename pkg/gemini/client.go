// Package gemini is a minimal client for the Gemini generateContent API.
// It covers exactly what the audit flows need: one-shot generation with an
// optional structural response schema, and chat-style generation with a
// system instruction plus role-tagged history.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 120 * time.Second
)

// ErrMissingAPIKey is returned before any network I/O when no credential is
// configured. Callers surface it as "check configuration".
var ErrMissingAPIKey = errors.New("gemini: api key not configured")

// ErrEmptyResponse is returned when the call succeeded but carried no text.
var ErrEmptyResponse = errors.New("gemini: empty response")

// Client talks to the Gemini REST API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Part is one text fragment of a content block.
type Part struct {
	Text string `json:"text"`
}

// Content is one role-tagged message (role "user" or "model").
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerateRequest describes one generateContent call.
type GenerateRequest struct {
	// SystemInstruction, when non-empty, is sent as the system-level
	// instruction block.
	SystemInstruction string
	// Contents is the ordered message sequence; the last entry is the
	// message being answered.
	Contents []Content
	// ResponseSchema, when non-nil, constrains the reply to a single JSON
	// document of this shape.
	ResponseSchema map[string]any
	// Temperature controls sampling; the analysis flow keeps it low for
	// determinism. Zero leaves the field unset so the API default applies,
	// which is what the chat flow wants.
	Temperature float64
}

type generationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
}

type apiRequest struct {
	SystemInstruction *Content         `json:"systemInstruction,omitempty"`
	Contents          []Content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type apiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewClient creates a client. An empty apiKey is allowed at construction;
// every call then fails with ErrMissingAPIKey before touching the network.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// SetBaseURL overrides the API base URL. Used in tests.
func (c *Client) SetBaseURL(url string) { c.baseURL = url }

// SetTimeout overrides the per-call HTTP timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// GenerateContent issues one generateContent call and returns the reply
// text. No retry is attempted.
func (c *Client) GenerateContent(ctx context.Context, req GenerateRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := apiRequest{
		Contents: req.Contents,
	}
	if req.Temperature > 0 {
		payload.GenerationConfig.Temperature = &req.Temperature
	}
	if req.SystemInstruction != "" {
		payload.SystemInstruction = &Content{Parts: []Part{{Text: req.SystemInstruction}}}
	}
	if req.ResponseSchema != nil {
		payload.GenerationConfig.ResponseMIMEType = "application/json"
		payload.GenerationConfig.ResponseSchema = req.ResponseSchema
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("gemini: parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini: api error: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var text bytes.Buffer
	for _, p := range parsed.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}
