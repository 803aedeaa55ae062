package credibility

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/models"
	"golang.org/x/sync/errgroup"
)

// articleScorer scores one article against a candidate set using a shared cache
type articleScorer interface {
	score(ctx context.Context, target *models.ArticleMetadata, candidates []*models.ArticleMetadata, cache *embeddingCache) (*models.CredibilityScore, error)
}

// CalculateBatch scores every article against the others. Articles run in
// parallel up to the configured concurrency and share one embedding cache.
// Each article is validated once; an invalid or failing article is counted
// with its error and never aborts the batch or enters the candidate sets.
func (s *Scorer) CalculateBatch(ctx context.Context, articles []*models.ArticleMetadata) (*models.BatchScoreResult, error) {
	return runBatch(ctx, s, s.newCache(), s.batchConcurrency, articles, s.logger)
}

func runBatch(ctx context.Context, scorer articleScorer, cache *embeddingCache, concurrency int, articles []*models.ArticleMetadata, logger arbor.ILogger) (*models.BatchScoreResult, error) {
	scores := make([]*models.CredibilityScore, len(articles))
	errs := make([]error, len(articles))

	valid := make([]*models.ArticleMetadata, 0, len(articles))
	validIndex := make([]int, 0, len(articles))
	for i, article := range articles {
		if err := validateArticle(article); err != nil {
			errs[i] = err
			continue
		}
		valid = append(valid, article)
		validIndex = append(validIndex, i)
	}

	if concurrency <= 0 {
		concurrency = 1
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for k, article := range valid {
		i := validIndex[k]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("panic while scoring: %v", r)
					logger.Error().Str("panic", fmt.Sprintf("%v", r)).Int("index", i).Msg("Recovered from panic in batch scoring")
				}
			}()
			scores[i], errs[i] = scorer.score(ctx, article, others(valid, k), cache)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &models.BatchScoreResult{
		Scores: make([]*models.CredibilityScore, 0, len(articles)),
	}
	for i, err := range errs {
		if err != nil || scores[i] == nil {
			result.Failed++
			if result.Errors == nil {
				result.Errors = make(map[string]string)
			}
			if err == nil {
				err = fmt.Errorf("no score produced")
			}
			result.Errors[articleKey(articles[i], i)] = err.Error()

			logger.Warn().Err(err).Int("index", i).Msg("Batch article scoring failed")
			continue
		}
		result.Scores = append(result.Scores, scores[i])
		result.Processed++
	}

	logger.Info().
		Int("articles", len(articles)).
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Msg("Batch credibility scoring completed")

	return result, nil
}

// others returns every article except the one at index i
func others(articles []*models.ArticleMetadata, i int) []*models.ArticleMetadata {
	rest := make([]*models.ArticleMetadata, 0, len(articles))
	for j, a := range articles {
		if j != i && a != nil {
			rest = append(rest, a)
		}
	}
	return rest
}

func articleKey(a *models.ArticleMetadata, i int) string {
	if a != nil && a.ID != "" {
		return a.ID
	}
	return fmt.Sprintf("index_%d", i)
}
