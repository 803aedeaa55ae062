package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/services/llm"
)

// Error codes carried in the error envelope
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

// MaxBodyBytes caps request bodies; batch requests carry full article text
const MaxBodyBytes = 10 << 20

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error     string    `json:"error"`
	Detail    string    `json:"detail,omitempty"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		WriteError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", r.Method+" is not supported on "+r.URL.Path)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, statusCode int, code, message, detail string) error {
	return WriteJSON(w, statusCode, ErrorResponse{
		Error:     message,
		Detail:    detail,
		Code:      code,
		Timestamp: time.Now().UTC(),
	})
}

// WriteServiceError maps a service error onto the envelope: invalid input is
// 422, an unconfigured provider is 400 and anything else is 500.
func WriteServiceError(w http.ResponseWriter, logger arbor.ILogger, operation string, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		WriteError(w, http.StatusUnprocessableEntity, CodeValidation, "Validation Error", err.Error())
	case errors.Is(err, llm.ErrProviderNotConfigured):
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "Provider not configured", err.Error())
	case errors.Is(err, context.Canceled):
		logger.Debug().Str("operation", operation).Msg("Request cancelled by client")
	default:
		logger.Error().Err(err).Str("operation", operation).Msg("Request failed")
		WriteError(w, http.StatusInternalServerError, CodeInternal, "Internal Server Error", err.Error())
	}
}

// DecodeJSON reads a JSON request body into v. It writes a 400 envelope and
// returns false when the body is missing or malformed.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		detail := err.Error()
		if errors.Is(err, io.EOF) {
			detail = "request body is empty"
		}
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body", detail)
		return false
	}
	return true
}

// ValidateRequest checks struct tags on v and writes a 422 envelope on failure.
func ValidateRequest(w http.ResponseWriter, v interface{}) bool {
	if err := common.Validate(v); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, CodeValidation, "Validation Error", err.Error())
		return false
	}
	return true
}

// GetLimitParam reads the "limit" query parameter, falling back to def and
// capping at max.
func GetLimitParam(r *http.Request, def, max int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	if limit > max {
		limit = max
	}
	return limit, nil
}
