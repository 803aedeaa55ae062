package handlers

import (
	"context"

	"github.com/ternarybob/credence/internal/models"
)

// CredibilityScorer defines the interface for scoring articles.
type CredibilityScorer interface {
	Calculate(ctx context.Context, target *models.ArticleMetadata, candidates []*models.ArticleMetadata) (*models.CredibilityScore, error)
	CalculateBatch(ctx context.Context, articles []*models.ArticleMetadata) (*models.BatchScoreResult, error)
}

// ArticleSummarizer defines the interface for summarizing articles.
type ArticleSummarizer interface {
	Summarize(ctx context.Context, req *models.SummarizeRequest) (*models.SummarizeResponse, error)
}

// TextTranslator defines the interface for translating text.
type TextTranslator interface {
	Translate(ctx context.Context, req *models.TranslateRequest) (*models.TranslateResponse, error)
	TranslateBatch(ctx context.Context, req *models.BatchTranslateRequest) ([]*models.TranslateResponse, error)
}

// ContentModerator defines the interface for moderating text.
type ContentModerator interface {
	Moderate(ctx context.Context, req *models.ModerateRequest) (*models.ModerateResponse, error)
}

// AuditReader defines the interface for listing recent audit entries.
type AuditReader interface {
	Recent(limit int) ([]models.AuditEntry, error)
}
