package models

import "time"

// Canonical source types counted by the diversity factor. SourceType is an open
// string; other values are accepted and counted as distinct types.
const (
	SourceTypeMainstream    = "mainstream"
	SourceTypeIndependent   = "independent"
	SourceTypeInternational = "international"
)

// Source bias labels
const (
	BiasLeft    = "left"
	BiasCenter  = "center"
	BiasRight   = "right"
	BiasNeutral = "neutral"
)

// Content formats accepted on article input
const (
	ContentFormatText = "text"
	ContentFormatHTML = "html"
)

// ArticleMetadata is the identity and attributes of an article used for scoring
type ArticleMetadata struct {
	ID                string    `json:"id" yaml:"id" validate:"required"`
	Title             string    `json:"title" yaml:"title" validate:"required"`
	Content           string    `json:"content" yaml:"content" validate:"required"`
	ContentFormat     string    `json:"content_format,omitempty" yaml:"content_format,omitempty" validate:"omitempty,oneof=text html"`
	SourceName        string    `json:"source_name" yaml:"source_name" validate:"required"`
	SourceType        string    `json:"source_type" yaml:"source_type" validate:"required"`
	SourceBias        string    `json:"source_bias,omitempty" yaml:"source_bias,omitempty"`
	SourceCredibility float64   `json:"source_credibility" yaml:"source_credibility" validate:"gte=0,lte=100"`
	PublishedAt       time.Time `json:"published_at" yaml:"published_at" validate:"required"`
	Category          string    `json:"category" yaml:"category"`

	// Embedding optionally seeds the per-request embedding cache. It is never persisted.
	Embedding []float32 `json:"embedding,omitempty" yaml:"embedding,omitempty"`
}

// EmbeddingText returns the text embedded for similarity: title plus the first
// 500 characters of content.
func (a *ArticleMetadata) EmbeddingText() string {
	return a.Title + " " + Truncate(a.Content, 500)
}

// Truncate returns at most n characters of s without splitting a rune
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
