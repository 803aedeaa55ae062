package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
)

// Endpoints lists the public routes reported by the root endpoint
var Endpoints = map[string]string{
	"health":            "GET /health",
	"ready":             "GET /ready",
	"version":           "GET /api/v1/version",
	"summarize":         "POST /api/v1/summarize",
	"translate":         "POST /api/v1/translate",
	"languages":         "GET /api/v1/translate/languages",
	"detect_language":   "POST /api/v1/translate/detect",
	"batch_translate":   "POST /api/v1/translate/batch",
	"moderate":          "POST /api/v1/moderate",
	"credibility":       "POST /api/v1/credibility/calculate",
	"credibility_batch": "POST /api/v1/credibility/batch",
	"credibility_badge": "GET /api/v1/credibility/badge/{score}",
	"audit":             "GET /api/v1/audit",
}

type APIHandler struct {
	llmService  interfaces.LLMService
	embedder    interfaces.EmbeddingService
	environment string
	logger      arbor.ILogger
}

// NewAPIHandler creates the service info handler. embedder may be nil.
func NewAPIHandler(llmService interfaces.LLMService, embedder interfaces.EmbeddingService, environment string, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		llmService:  llmService,
		embedder:    embedder,
		environment: environment,
		logger:      logger,
	}
}

// RootHandler returns service information and the endpoint map
func (h *APIHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFoundHandler(w, r)
		return
	}
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"service":   common.ServiceName,
		"version":   common.GetVersion(),
		"status":    "running",
		"endpoints": Endpoints,
	})
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, common.VersionInfo())
}

// HealthHandler returns health check status with provider configuration
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	configured := h.configuredProviders()
	providers := map[string]bool{}
	modelNames := map[string]string{}
	for _, p := range []models.Provider{models.ProviderClaude, models.ProviderGemini} {
		providers[string(p)] = configured[p]
		if configured[p] {
			modelNames[string(p)] = h.llmService.DefaultModel(p)
		}
	}

	embeddings := map[string]interface{}{"configured": h.embedder != nil}
	if h.embedder != nil {
		embeddings["model"] = h.embedder.ModelName()
		embeddings["dimension"] = h.embedder.Dimension()
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"service":     common.ServiceName,
		"version":     common.GetVersion(),
		"environment": h.environment,
		"providers":   providers,
		"models":      modelNames,
		"embeddings":  embeddings,
	})
}

// ReadyHandler reports whether at least one completion provider is configured.
// Not ready is reported with 503 so orchestrators hold traffic back.
func (h *APIHandler) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	configured := h.configuredProviders()
	checks := map[string]bool{
		"claude_configured":     configured[models.ProviderClaude],
		"gemini_configured":     configured[models.ProviderGemini],
		"embeddings_configured": h.embedder != nil,
	}
	ready := checks["claude_configured"] || checks["gemini_configured"]

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, status, map[string]interface{}{
		"ready":  ready,
		"checks": checks,
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, CodeNotFound, "Not Found", "The requested endpoint does not exist: "+r.URL.Path)
}

func (h *APIHandler) configuredProviders() map[models.Provider]bool {
	result := map[models.Provider]bool{}
	if h.llmService == nil {
		return result
	}
	for _, p := range h.llmService.Configured() {
		result[p] = true
	}
	return result
}
