package credibility

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/models"
)

// failingScorer fails for the configured article IDs and panics for others on request
type failingScorer struct {
	failIDs  map[string]bool
	panicIDs map[string]bool
}

func (f *failingScorer) score(ctx context.Context, target *models.ArticleMetadata, candidates []*models.ArticleMetadata, cache *embeddingCache) (*models.CredibilityScore, error) {
	if f.panicIDs[target.ID] {
		panic("scorer exploded")
	}
	if f.failIDs[target.ID] {
		return nil, errors.New("scoring failed")
	}
	return &models.CredibilityScore{ArticleID: target.ID, Score: 60, SourceCount: len(candidates) + 1}, nil
}

func TestRunBatch_FailureIsIsolated(t *testing.T) {
	articles := []*models.ArticleMetadata{
		newArticle("a", baseTime),
		newArticle("b", baseTime),
		newArticle("c", baseTime),
	}
	scorer := &failingScorer{failIDs: map[string]bool{"b": true}}

	result, err := runBatch(context.Background(), scorer, nil, 2, articles, arbor.NewLogger())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Scores, 2)
	assert.Equal(t, "a", result.Scores[0].ArticleID)
	assert.Equal(t, "c", result.Scores[1].ArticleID)
	assert.Equal(t, 3, result.Scores[0].SourceCount, "each article sees the other two as candidates")
	assert.Contains(t, result.Errors, "b")
}

func TestRunBatch_PanicCountsAsFailure(t *testing.T) {
	articles := []*models.ArticleMetadata{newArticle("a", baseTime), newArticle("b", baseTime)}
	scorer := &failingScorer{panicIDs: map[string]bool{"a": true}}

	result, err := runBatch(context.Background(), scorer, nil, 1, articles, arbor.NewLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Failed)
}

func TestOthers(t *testing.T) {
	articles := []*models.ArticleMetadata{newArticle("a", baseTime), newArticle("b", baseTime), newArticle("c", baseTime)}

	rest := others(articles, 1)
	require.Len(t, rest, 2)
	assert.Equal(t, "a", rest[0].ID)
	assert.Equal(t, "c", rest[1].ID)
	assert.Len(t, articles, 3, "input slice is not modified")
}

func TestScorer_CalculateBatch(t *testing.T) {
	llmService := new(MockLLMService)
	llmService.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("offline"))

	embedder := new(MockEmbeddingService)
	embedder.On("Embed", mock.Anything, mock.Anything).Return(axisVector(), nil)

	scorer := NewScorer(llmService, embedder, testConfig(), arbor.NewLogger())

	invalid := newArticle("b", baseTime)
	invalid.SourceCredibility = 150
	articles := []*models.ArticleMetadata{newArticle("a", baseTime), invalid, newArticle("c", baseTime)}

	result, err := scorer.CalculateBatch(context.Background(), articles)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Contains(t, result.Errors, "b")
	assert.Contains(t, result.Errors["b"], "invalid article")
	assert.NotContains(t, result.Errors, "a")
	assert.NotContains(t, result.Errors, "c")

	require.Len(t, result.Scores, 2)
	assert.Equal(t, []string{"c"}, result.Scores[0].SimilarArticles, "invalid articles are not candidates")
	assert.Equal(t, []string{"a"}, result.Scores[1].SimilarArticles)
	embedder.AssertNumberOfCalls(t, "Embed", 2)
}

func TestScorer_CalculateBatchNilArticle(t *testing.T) {
	scorer := NewScorer(nil, nil, testConfig(), arbor.NewLogger())

	result, err := scorer.CalculateBatch(context.Background(), []*models.ArticleMetadata{newArticle("a", baseTime), nil})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors, "index_1")
}

func TestScorer_CalculateBatchEmbeddingFallbackPerArticle(t *testing.T) {
	llmService := new(MockLLMService)
	llmService.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("offline"))

	embedder := new(MockEmbeddingService)
	embedder.On("Embed", mock.Anything, "Article c Content of article c").Return(nil, errors.New("provider down"))
	embedder.On("Embed", mock.Anything, mock.Anything).Return(axisVector(), nil)

	config := testConfig()
	config.BatchConcurrency = 1
	scorer := NewScorer(llmService, embedder, config, arbor.NewLogger())

	articles := []*models.ArticleMetadata{newArticle("a", baseTime), newArticle("b", baseTime), newArticle("c", baseTime)}
	result, err := scorer.CalculateBatch(context.Background(), articles)
	require.NoError(t, err)
	require.Len(t, result.Scores, 3)

	for _, score := range result.Scores {
		assert.Equal(t, "1 embedding(s) unavailable, zero vector used", score.Fallbacks["similarity"], "article %s", score.ArticleID)
	}
	assert.Equal(t, []string{"b"}, result.Scores[0].SimilarArticles)
	assert.Empty(t, result.Scores[2].SimilarArticles)
	embedder.AssertNumberOfCalls(t, "Embed", 3)
}

func TestScorer_CalculateBatchSharesEmbeddings(t *testing.T) {
	llmService := new(MockLLMService)
	llmService.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("offline"))

	embedder := new(MockEmbeddingService)
	embedder.On("Embed", mock.Anything, mock.Anything).Return(axisVector(), nil)

	scorer := NewScorer(llmService, embedder, testConfig(), arbor.NewLogger())
	articles := []*models.ArticleMetadata{newArticle("a", baseTime), newArticle("b", baseTime), newArticle("c", baseTime)}

	result, err := scorer.CalculateBatch(context.Background(), articles)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 0, result.Failed)
	for _, score := range result.Scores {
		assert.Len(t, score.SimilarArticles, 2)
	}
	embedder.AssertNumberOfCalls(t, "Embed", 3)
}
