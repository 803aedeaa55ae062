package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// DefaultRecentLimit caps Recent when the caller passes no limit
const DefaultRecentLimit = 100

// AuditStorage implements interfaces.AuditLogger on Badger
type AuditStorage struct {
	db         *BadgerDB
	logQueries bool
	logger     arbor.ILogger
}

// NewAuditStorage creates an audit log backed by db
func NewAuditStorage(db *BadgerDB, logQueries bool, logger arbor.ILogger) *AuditStorage {
	return &AuditStorage{
		db:         db,
		logQueries: logQueries,
		logger:     logger,
	}
}

// Record stores one entry
func (s *AuditStorage) Record(entry *models.AuditEntry) error {
	if entry == nil {
		return fmt.Errorf("audit entry is nil")
	}
	if entry.ID == "" {
		return fmt.Errorf("audit entry ID is required")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if err := s.db.Store().Insert(entry.ID, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries first
func (s *AuditStorage) Recent(limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var entries []models.AuditEntry
	query := badgerhold.Where("ID").Ne("").SortBy("Timestamp").Reverse().Limit(limit)
	if err := s.db.Store().Find(&entries, query); err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	return entries, nil
}

// Count returns the number of stored entries, optionally for one operation
func (s *AuditStorage) Count(operation string) (int, error) {
	query := badgerhold.Where("ID").Ne("")
	if operation != "" {
		query = badgerhold.Where("Operation").Eq(operation)
	}
	n, err := s.db.Store().Count(&models.AuditEntry{}, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return int(n), nil
}

// Prune deletes entries recorded before cutoff
func (s *AuditStorage) Prune(cutoff time.Time) error {
	query := badgerhold.Where("Timestamp").Lt(cutoff)
	if err := s.db.Store().DeleteMatching(&models.AuditEntry{}, query); err != nil {
		return fmt.Errorf("failed to prune audit entries: %w", err)
	}
	s.logger.Debug().Str("cutoff", cutoff.Format(time.RFC3339)).Msg("Pruned audit entries")
	return nil
}

// LogQueries reports whether prompt text is stored with each entry
func (s *AuditStorage) LogQueries() bool {
	return s.logQueries
}

// Close closes the underlying database
func (s *AuditStorage) Close() error {
	return s.db.Close()
}

var _ interfaces.AuditLogger = (*AuditStorage)(nil)
