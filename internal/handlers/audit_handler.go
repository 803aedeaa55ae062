package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditHandler lists recent remote-call audit entries
type AuditHandler struct {
	audit  AuditReader
	logger arbor.ILogger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(audit AuditReader, logger arbor.ILogger) *AuditHandler {
	return &AuditHandler{
		audit:  audit,
		logger: logger,
	}
}

// ListHandler handles GET /api/v1/audit?limit=N
func (h *AuditHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit, err := GetLimitParam(r, defaultAuditLimit, maxAuditLimit)
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "Invalid limit", err.Error())
		return
	}

	entries, err := h.audit.Recent(limit)
	if err != nil {
		WriteServiceError(w, h.logger, "audit.list", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}
