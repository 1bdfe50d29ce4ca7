package models

// HistoryItem is the condensed, persisted summary of a past audit.
type HistoryItem struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Timestamp  int64     `json:"timestamp"`
	Score      float64   `json:"score"`
	ErrorCount int       `json:"errorCount,omitempty"`
	Type       AuditType `json:"type"`
}

// Chat message roles as the model API expects them.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of an open chat session. Sessions are
// append-only and never persisted.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
