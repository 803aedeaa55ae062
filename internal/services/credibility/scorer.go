package credibility

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
	"github.com/ternarybob/credence/internal/services/content"
	"golang.org/x/sync/errgroup"
)

// Scorer runs the credibility pipeline: clustering, then the factor
// calculators alongside the AI verifier, then aggregation. It holds no state
// between calls and is safe for concurrent use.
type Scorer struct {
	embedder         interfaces.EmbeddingService
	factChecker      *FactChecker
	verifier         *Verifier
	embedTimeout     time.Duration
	embedConcurrency int
	batchConcurrency int
	logger           arbor.ILogger
}

// NewScorer creates a scorer. Either service may be nil; the affected factors
// then fall back to their neutral values.
func NewScorer(llmService interfaces.LLMService, embedder interfaces.EmbeddingService, config *common.CredibilityConfig, logger arbor.ILogger) *Scorer {
	completionTimeout := common.ParseDuration(config.CompletionTimeout, 20*time.Second)

	embedConcurrency := config.EmbedConcurrency
	if embedConcurrency <= 0 {
		embedConcurrency = 8
	}
	batchConcurrency := config.BatchConcurrency
	if batchConcurrency <= 0 {
		batchConcurrency = 4
	}

	return &Scorer{
		embedder:         embedder,
		factChecker:      NewFactChecker(llmService, config.FactCheckMaxTokens, completionTimeout, logger),
		verifier:         NewVerifier(llmService, config.VerifierMaxTokens, completionTimeout, logger),
		embedTimeout:     common.ParseDuration(config.EmbedTimeout, 8*time.Second),
		embedConcurrency: embedConcurrency,
		batchConcurrency: batchConcurrency,
		logger:           logger,
	}
}

// Calculate scores target against the candidate set. Candidates may include
// the target itself; it is never counted as similar. An error is returned only
// for invalid input or a cancelled context. Provider failures degrade factors
// to neutral values instead.
func (s *Scorer) Calculate(ctx context.Context, target *models.ArticleMetadata, candidates []*models.ArticleMetadata) (*models.CredibilityScore, error) {
	return s.score(ctx, target, candidates, s.newCache())
}

func (s *Scorer) newCache() *embeddingCache {
	return newEmbeddingCache(s.embedder, s.embedTimeout, s.logger)
}

func (s *Scorer) score(ctx context.Context, target *models.ArticleMetadata, candidates []*models.ArticleMetadata, cache *embeddingCache) (*models.CredibilityScore, error) {
	if err := validateArticle(target); err != nil {
		return nil, err
	}
	for i, c := range candidates {
		if c == nil {
			return nil, fmt.Errorf("%w: related article %d is empty", common.ErrValidation, i)
		}
		if err := common.Validate(c); err != nil {
			return nil, fmt.Errorf("invalid related article %d: %w", i, err)
		}
	}

	start := time.Now()
	target = prepareArticle(target)
	prepared := make([]*models.ArticleMetadata, len(candidates))
	for i, c := range candidates {
		prepared[i] = prepareArticle(c)
	}

	similar, embedFailures := findSimilar(ctx, cache, s.embedConcurrency, target, prepared)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		factCheck    FactorResult
		verification VerificationResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		factCheck = s.factChecker.Check(gctx, target, similar)
		return nil
	})
	g.Go(func() error {
		verification = s.verifier.Verify(gctx, target, len(similar))
		return nil
	})

	factors := Factors{
		CrossCoverage:    CrossCoverageScore(len(similar)),
		SourceDiversity:  SourceDiversityScore(target, similar),
		SourceReputation: SourceReputationScore(target, similar),
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	factors.FactConsistency = factCheck.Value
	factors.AIVerification = verification.Score

	result := Aggregate(target.ID, factors, similar, verification)

	fallbacks := make(map[string]string)
	if embedFailures > 0 {
		fallbacks["similarity"] = fmt.Sprintf("%d embedding(s) unavailable, zero vector used", embedFailures)
	}
	if factCheck.Fallback {
		fallbacks[models.FactorFactConsistency] = factCheck.Reason
	}
	if verification.Fallback {
		fallbacks[models.FactorAIVerification] = verification.Reason
	}
	if len(fallbacks) > 0 {
		result.Fallbacks = fallbacks
	}

	s.logger.Info().
		Str("article_id", target.ID).
		Float64("score", result.Score).
		Str("status", string(result.VerificationStatus)).
		Int("similar", len(similar)).
		Int("fallbacks", len(fallbacks)).
		Dur("duration", time.Since(start)).
		Msg("Credibility score calculated")

	return result, nil
}

// Aggregate combines the factors into the final score record
func Aggregate(articleID string, factors Factors, similar []*models.ArticleMetadata, verification VerificationResult) *models.CredibilityScore {
	score := WeightedScore(factors)

	similarIDs := make([]string, len(similar))
	for i, a := range similar {
		similarIDs[i] = a.ID
	}

	return &models.CredibilityScore{
		ArticleID:          articleID,
		Score:              score,
		Confidence:         verification.Confidence,
		Factors:            factors.Map(),
		SimilarArticles:    similarIDs,
		SourceCount:        len(similar) + 1,
		SourceDiversity:    factors.SourceDiversity,
		FactConsistency:    factors.FactConsistency,
		VerificationStatus: DetermineStatus(score),
		Explanation:        GenerateExplanation(factors, len(similar)),
		Flags:              nonNil(verification.Flags),
		Strengths:          nonNil(verification.Strengths),
	}
}

// validateArticle checks one article against its validation tags
func validateArticle(a *models.ArticleMetadata) error {
	if a == nil {
		return fmt.Errorf("%w: article is required", common.ErrValidation)
	}
	if err := common.Validate(a); err != nil {
		return fmt.Errorf("invalid article: %w", err)
	}
	return nil
}

// prepareArticle returns the article with HTML content reduced to plain text.
// The caller's value is never modified.
func prepareArticle(a *models.ArticleMetadata) *models.ArticleMetadata {
	if a.ContentFormat != models.ContentFormatHTML {
		return a
	}
	copied := *a
	copied.Content = content.PlainText(a.Content)
	copied.ContentFormat = models.ContentFormatText
	return &copied
}
