package models

import "time"

// Audit operations
const (
	AuditOperationChat  = "chat"
	AuditOperationEmbed = "embed"
)

// AuditEntry records a single remote provider call
type AuditEntry struct {
	ID         string    `json:"id" badgerhold:"key"`
	Timestamp  time.Time `json:"timestamp" badgerhold:"index"`
	Provider   string    `json:"provider"`
	Operation  string    `json:"operation" badgerhold:"index"`
	Model      string    `json:"model"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	QueryText  string    `json:"query_text,omitempty"`
}
