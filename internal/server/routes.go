// -----------------------------------------------------------------------
// Last Modified: Monday, 19th October 2026 10:40:12 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Service info; "/" also catches every unmatched path
	mux.HandleFunc("/", s.app.APIHandler.RootHandler)
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/ready", s.app.APIHandler.ReadyHandler)
	mux.HandleFunc("/api/v1/version", s.app.APIHandler.VersionHandler)

	// API routes - Content
	mux.HandleFunc("/api/v1/summarize", s.app.ContentHandler.SummarizeHandler)
	mux.HandleFunc("/api/v1/translate", s.app.ContentHandler.TranslateHandler)
	mux.HandleFunc("/api/v1/translate/batch", s.app.ContentHandler.BatchTranslateHandler)
	mux.HandleFunc("/api/v1/translate/languages", s.app.ContentHandler.LanguagesHandler)
	mux.HandleFunc("/api/v1/translate/detect", s.app.ContentHandler.DetectLanguageHandler)
	mux.HandleFunc("/api/v1/moderate", s.app.ContentHandler.ModerateHandler)

	// API routes - Credibility
	mux.HandleFunc("/api/v1/credibility/calculate", s.app.CredibilityHandler.CalculateHandler)
	mux.HandleFunc("/api/v1/credibility/batch", s.app.CredibilityHandler.BatchHandler)
	mux.HandleFunc("/api/v1/credibility/badge/", s.app.CredibilityHandler.BadgeHandler) // GET /{score}

	// API routes - Audit
	mux.HandleFunc("/api/v1/audit", s.app.AuditHandler.ListHandler)

	return mux
}
