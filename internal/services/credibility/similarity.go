package credibility

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// CosineSimilarity returns dot(a, b) / (|a| * |b|), computed in float64.
// Vectors of different length or with a zero norm have similarity 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// withinWindow reports whether two publication times are at most TimeWindow apart
func withinWindow(a, b time.Time) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= TimeWindow
}

// embeddingCache memoizes article embeddings by ID for one scoring invocation.
// Concurrent lookups of the same ID share a single provider call.
type embeddingCache struct {
	embedder  interfaces.EmbeddingService
	timeout   time.Duration
	dimension int
	logger    arbor.ILogger

	mu      sync.Mutex
	vectors map[string][]float32
	failed  map[string]bool
	group   singleflight.Group
}

func newEmbeddingCache(embedder interfaces.EmbeddingService, timeout time.Duration, logger arbor.ILogger) *embeddingCache {
	dimension := EmbeddingDimension
	if embedder != nil && embedder.Dimension() > 0 {
		dimension = embedder.Dimension()
	}
	return &embeddingCache{
		embedder:  embedder,
		timeout:   timeout,
		dimension: dimension,
		logger:    logger,
		vectors:   make(map[string][]float32),
		failed:    make(map[string]bool),
	}
}

// vector returns the article's embedding, computing it at most once.
// A caller-supplied embedding of the right dimension is used as-is.
func (c *embeddingCache) vector(ctx context.Context, article *models.ArticleMetadata) []float32 {
	c.mu.Lock()
	if v, ok := c.vectors[article.ID]; ok {
		c.mu.Unlock()
		return v
	}
	if len(article.Embedding) == c.dimension {
		c.vectors[article.ID] = article.Embedding
		c.mu.Unlock()
		return article.Embedding
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(article.ID, func() (interface{}, error) {
		c.mu.Lock()
		if v, ok := c.vectors[article.ID]; ok {
			c.mu.Unlock()
			return v, nil
		}
		c.mu.Unlock()

		vec := c.embed(ctx, article)

		c.mu.Lock()
		c.vectors[article.ID] = vec
		c.mu.Unlock()
		return vec, nil
	})
	return v.([]float32)
}

// embed calls the provider, substituting a zero vector on any failure
func (c *embeddingCache) embed(ctx context.Context, article *models.ArticleMetadata) []float32 {
	if c.embedder == nil {
		c.recordFailure(article.ID)
		return make([]float32, c.dimension)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	vec, err := c.embedder.Embed(callCtx, article.EmbeddingText())
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("article_id", article.ID).
			Msg("Embedding failed, using zero vector")
		c.recordFailure(article.ID)
		return make([]float32, c.dimension)
	}
	return vec
}

func (c *embeddingCache) recordFailure(id string) {
	c.mu.Lock()
	c.failed[id] = true
	c.mu.Unlock()
}

// isFailed reports whether the article's embedding fell back to the zero vector
func (c *embeddingCache) isFailed(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed[id]
}

// failureCount returns how many embeddings fell back to the zero vector
func (c *embeddingCache) failureCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.failed)
}

// findSimilar returns the candidates covering the same story as target, in
// input order. A candidate must have a different ID, fall within TimeWindow
// and reach SimilarityThreshold. Only in-window candidates are embedded.
// The count is how many of the compared articles, target included, were
// compared using a zero vector.
func findSimilar(ctx context.Context, cache *embeddingCache, concurrency int, target *models.ArticleMetadata, candidates []*models.ArticleMetadata) ([]*models.ArticleMetadata, int) {
	seen := map[string]bool{target.ID: true}
	inWindow := make([]*models.ArticleMetadata, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil || seen[candidate.ID] {
			continue
		}
		seen[candidate.ID] = true
		if !withinWindow(target.PublishedAt, candidate.PublishedAt) {
			continue
		}
		inWindow = append(inWindow, candidate)
	}
	if len(inWindow) == 0 {
		return []*models.ArticleMetadata{}, 0
	}

	if concurrency <= 0 {
		concurrency = 1
	}

	var targetVec []float32
	vectors := make([][]float32, len(inWindow))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	g.Go(func() error {
		targetVec = cache.vector(gctx, target)
		return nil
	})
	for i, candidate := range inWindow {
		g.Go(func() error {
			vectors[i] = cache.vector(gctx, candidate)
			return nil
		})
	}
	_ = g.Wait()

	degraded := 0
	if cache.isFailed(target.ID) {
		degraded++
	}
	similar := make([]*models.ArticleMetadata, 0, len(inWindow))
	for i, candidate := range inWindow {
		if cache.isFailed(candidate.ID) {
			degraded++
		}
		if CosineSimilarity(targetVec, vectors[i]) >= SimilarityThreshold {
			similar = append(similar, candidate)
		}
	}
	return similar, degraded
}
