package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/models"
	"github.com/ternarybob/credence/internal/services/credibility"
)

// CredibilityHandler serves the credibility scoring endpoints
type CredibilityHandler struct {
	scorer CredibilityScorer
	logger arbor.ILogger
}

// NewCredibilityHandler creates a new CredibilityHandler
func NewCredibilityHandler(scorer CredibilityScorer, logger arbor.ILogger) *CredibilityHandler {
	return &CredibilityHandler{
		scorer: scorer,
		logger: logger,
	}
}

// CalculateHandler handles POST /api/v1/credibility/calculate
func (h *CredibilityHandler) CalculateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.CalculateCredibilityRequest
	if !DecodeJSON(w, r, &req) || !ValidateRequest(w, &req) {
		return
	}

	score, err := h.scorer.Calculate(r.Context(), req.Article, req.RelatedArticles)
	if err != nil {
		WriteServiceError(w, h.logger, "credibility.calculate", err)
		return
	}

	WriteJSON(w, http.StatusOK, credibility.WithBadge(score))
}

// BatchHandler handles POST /api/v1/credibility/batch
func (h *CredibilityHandler) BatchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.BatchCredibilityRequest
	if !DecodeJSON(w, r, &req) || !ValidateRequest(w, &req) {
		return
	}

	result, err := h.scorer.CalculateBatch(r.Context(), req.Articles)
	if err != nil {
		WriteServiceError(w, h.logger, "credibility.batch", err)
		return
	}

	h.logger.Info().
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Msg("Batch credibility scoring complete")

	WriteJSON(w, http.StatusOK, credibility.BatchWithBadges(result))
}

// BadgeHandler handles GET /api/v1/credibility/badge/{score}
func (h *CredibilityHandler) BadgeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/credibility/badge/")
	score, err := strconv.ParseFloat(raw, 64)
	if raw == "" || err != nil || math.IsNaN(score) {
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "Invalid score", "score must be a number")
		return
	}

	WriteJSON(w, http.StatusOK, credibility.GetBadge(score))
}
