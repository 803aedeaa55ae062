package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/models"
	"github.com/ternarybob/credence/internal/services/content"
)

// ContentHandler serves the summarize, translate and moderate endpoints
type ContentHandler struct {
	summarizer ArticleSummarizer
	translator TextTranslator
	moderator  ContentModerator
	logger     arbor.ILogger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(summarizer ArticleSummarizer, translator TextTranslator, moderator ContentModerator, logger arbor.ILogger) *ContentHandler {
	return &ContentHandler{
		summarizer: summarizer,
		translator: translator,
		moderator:  moderator,
		logger:     logger,
	}
}

// SummarizeHandler handles POST /api/v1/summarize
func (h *ContentHandler) SummarizeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.SummarizeRequest
	if !DecodeJSON(w, r, &req) || !ValidateRequest(w, &req) {
		return
	}

	resp, err := h.summarizer.Summarize(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, h.logger, "summarize", err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// TranslateHandler handles POST /api/v1/translate
func (h *ContentHandler) TranslateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.TranslateRequest
	if !DecodeJSON(w, r, &req) || !ValidateRequest(w, &req) {
		return
	}

	resp, err := h.translator.Translate(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, h.logger, "translate", err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// BatchTranslateHandler handles POST /api/v1/translate/batch
func (h *ContentHandler) BatchTranslateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.BatchTranslateRequest
	if !DecodeJSON(w, r, &req) || !ValidateRequest(w, &req) {
		return
	}

	results, err := h.translator.TranslateBatch(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, h.logger, "translate.batch", err)
		return
	}
	WriteJSON(w, http.StatusOK, results)
}

// LanguagesHandler handles GET /api/v1/translate/languages
func (h *ContentHandler) LanguagesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	WriteJSON(w, http.StatusOK, content.SupportedLanguageList())
}

// DetectLanguageHandler handles POST /api/v1/translate/detect
func (h *ContentHandler) DetectLanguageHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.DetectLanguageRequest
	if !DecodeJSON(w, r, &req) || !ValidateRequest(w, &req) {
		return
	}
	WriteJSON(w, http.StatusOK, content.DetectLanguage(req.Content))
}

// ModerateHandler handles POST /api/v1/moderate
func (h *ContentHandler) ModerateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.ModerateRequest
	if !DecodeJSON(w, r, &req) || !ValidateRequest(w, &req) {
		return
	}

	resp, err := h.moderator.Moderate(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, h.logger, "moderate", err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}
