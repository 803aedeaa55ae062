package llm

import (
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
)

// NullAuditLogger discards entries. It is used when auditing is disabled.
type NullAuditLogger struct{}

// NewNullAuditLogger creates an audit logger that records nothing
func NewNullAuditLogger() *NullAuditLogger {
	return &NullAuditLogger{}
}

func (NullAuditLogger) Record(entry *models.AuditEntry) error { return nil }

func (NullAuditLogger) Recent(limit int) ([]models.AuditEntry, error) {
	return []models.AuditEntry{}, nil
}

func (NullAuditLogger) LogQueries() bool { return false }

func (NullAuditLogger) Close() error { return nil }

// RecordCall writes one audit entry for a remote call. Audit failures are
// logged and never returned to the caller.
func RecordCall(audit interfaces.AuditLogger, logger arbor.ILogger, provider, operation, model string, start time.Time, callErr error, queryText string) {
	if audit == nil {
		return
	}

	entry := &models.AuditEntry{
		ID:         common.NewAuditID(),
		Timestamp:  start.UTC(),
		Provider:   provider,
		Operation:  operation,
		Model:      model,
		Success:    callErr == nil,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if callErr != nil {
		entry.Error = callErr.Error()
	}
	if audit.LogQueries() {
		entry.QueryText = queryText
	}

	if err := audit.Record(entry); err != nil {
		logger.Warn().Err(err).Str("operation", operation).Msg("Failed to record audit entry")
	}
}
