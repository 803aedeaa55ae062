package credibility

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/models"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0, 0}, []float32{1, 2, 3}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-6)
		})
	}
}

func TestWithinWindow(t *testing.T) {
	assert.True(t, withinWindow(baseTime, baseTime.Add(72*time.Hour)))
	assert.True(t, withinWindow(baseTime, baseTime.Add(-72*time.Hour)))
	assert.False(t, withinWindow(baseTime, baseTime.Add(72*time.Hour+time.Second)))
}

func seeded(id string, published time.Time, embedding []float32) *models.ArticleMetadata {
	a := newArticle(id, published)
	a.Embedding = embedding
	return a
}

func TestFindSimilar_WindowAndThreshold(t *testing.T) {
	cache := newEmbeddingCache(nil, time.Second, arbor.NewLogger())

	target := seeded("target", baseTime, axisVector())
	candidates := []*models.ArticleMetadata{
		seeded("four-days", baseTime.Add(96*time.Hour), unitVector(0.95)),
		seeded("two-days-080", baseTime.Add(-48*time.Hour), unitVector(0.80)),
		seeded("target", baseTime, axisVector()),
		seeded("one-day-070", baseTime.Add(24*time.Hour), unitVector(0.70)),
		seeded("three-days-090", baseTime.Add(72*time.Hour), unitVector(0.90)),
		seeded("same-time-076", baseTime, unitVector(0.76)),
	}

	similar, _ := findSimilar(context.Background(), cache, 4, target, candidates)

	ids := make([]string, len(similar))
	for i, a := range similar {
		ids[i] = a.ID
	}
	assert.Equal(t, []string{"two-days-080", "three-days-090", "same-time-076"}, ids)
}

func TestFindSimilar_NeverIncludesSelf(t *testing.T) {
	cache := newEmbeddingCache(nil, time.Second, arbor.NewLogger())
	target := seeded("a", baseTime, axisVector())

	similar, _ := findSimilar(context.Background(), cache, 2, target, []*models.ArticleMetadata{target, target})
	assert.Empty(t, similar)
}

func TestFindSimilar_DuplicateCandidatesCountOnce(t *testing.T) {
	cache := newEmbeddingCache(nil, time.Second, arbor.NewLogger())
	target := seeded("a", baseTime, axisVector())
	dup := seeded("b", baseTime, unitVector(0.9))

	similar, _ := findSimilar(context.Background(), cache, 2, target, []*models.ArticleMetadata{dup, dup})
	assert.Len(t, similar, 1)
}

func TestFindSimilar_EmbedsOnlyInWindowCandidates(t *testing.T) {
	embedder := new(MockEmbeddingService)
	embedder.On("Embed", mock.Anything, "Article target Content of article target").Return(axisVector(), nil).Once()
	embedder.On("Embed", mock.Anything, "Article near Content of article near").Return(unitVector(0.9), nil).Once()

	cache := newEmbeddingCache(embedder, time.Second, arbor.NewLogger())
	target := newArticle("target", baseTime)
	near := newArticle("near", baseTime.Add(time.Hour))
	far := newArticle("far", baseTime.Add(10*24*time.Hour))

	similar, _ := findSimilar(context.Background(), cache, 4, target, []*models.ArticleMetadata{far, near})

	require.Len(t, similar, 1)
	assert.Equal(t, "near", similar[0].ID)
	embedder.AssertExpectations(t)
	embedder.AssertNumberOfCalls(t, "Embed", 2)
}

func TestFindSimilar_EmbeddingFailureUsesZeroVector(t *testing.T) {
	embedder := new(MockEmbeddingService)
	embedder.On("Embed", mock.Anything, mock.Anything).Return(nil, errors.New("provider down"))

	cache := newEmbeddingCache(embedder, time.Second, arbor.NewLogger())
	target := newArticle("target", baseTime)
	other := newArticle("other", baseTime)

	similar, _ := findSimilar(context.Background(), cache, 4, target, []*models.ArticleMetadata{other})

	assert.Empty(t, similar)
	assert.Equal(t, 2, cache.failureCount())
	assert.Len(t, cache.vector(context.Background(), target), EmbeddingDimension)
}

func TestEmbeddingCache_ComputesOncePerID(t *testing.T) {
	embedder := new(MockEmbeddingService)
	embedder.On("Embed", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { time.Sleep(10 * time.Millisecond) }).
		Return(axisVector(), nil)

	cache := newEmbeddingCache(embedder, time.Second, arbor.NewLogger())
	a := newArticle("a", baseTime)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.vector(context.Background(), a)
		}()
	}
	wg.Wait()
	cache.vector(context.Background(), a)

	embedder.AssertNumberOfCalls(t, "Embed", 1)
}

func TestEmbeddingCache_WrongDimensionSeedIsIgnored(t *testing.T) {
	embedder := new(MockEmbeddingService)
	embedder.On("Embed", mock.Anything, mock.Anything).Return(axisVector(), nil).Once()

	cache := newEmbeddingCache(embedder, time.Second, arbor.NewLogger())
	a := newArticle("a", baseTime)
	a.Embedding = []float32{1, 2, 3}

	vec := cache.vector(context.Background(), a)
	assert.Len(t, vec, EmbeddingDimension)
	embedder.AssertExpectations(t)
}
