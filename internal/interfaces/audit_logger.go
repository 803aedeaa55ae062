package interfaces

import (
	"github.com/ternarybob/credence/internal/models"
)

// AuditLogger records remote provider calls
type AuditLogger interface {
	// Record stores a single entry
	Record(entry *models.AuditEntry) error

	// Recent returns up to limit entries, newest first
	Recent(limit int) ([]models.AuditEntry, error)

	// LogQueries reports whether prompt text should be stored with entries
	LogQueries() bool

	Close() error
}
