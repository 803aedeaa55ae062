package credibility

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
)

// MockLLMService is a mock implementation of interfaces.LLMService for testing
type MockLLMService struct {
	mock.Mock
}

func (m *MockLLMService) Chat(ctx context.Context, messages []interfaces.Message, opts interfaces.ChatOptions) (*interfaces.ChatResult, error) {
	args := m.Called(ctx, messages, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.ChatResult), args.Error(1)
}

func (m *MockLLMService) Configured() []models.Provider {
	return []models.Provider{models.ProviderClaude}
}

func (m *MockLLMService) DefaultModel(provider models.Provider) string {
	return "mock-model"
}

func (m *MockLLMService) Close() error {
	return nil
}

// MockEmbeddingService is a mock implementation of interfaces.EmbeddingService for testing
type MockEmbeddingService struct {
	mock.Mock
}

func (m *MockEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockEmbeddingService) ModelName() string { return "mock-embed" }
func (m *MockEmbeddingService) Dimension() int    { return EmbeddingDimension }

// promptContains matches a chat call whose user prompt contains substr
func promptContains(substr string) interface{} {
	return mock.MatchedBy(func(messages []interfaces.Message) bool {
		for _, msg := range messages {
			if msg.Role == "user" && strings.Contains(msg.Content, substr) {
				return true
			}
		}
		return false
	})
}

func chatResult(text string) *interfaces.ChatResult {
	return &interfaces.ChatResult{Text: text, Provider: models.ProviderClaude, Model: "mock-model"}
}

// unitVector returns a full-dimension vector whose cosine with axisVector() is cos
func unitVector(cos float64) []float32 {
	v := make([]float32, EmbeddingDimension)
	v[0] = float32(cos)
	v[1] = float32(math.Sqrt(1 - cos*cos))
	return v
}

func axisVector() []float32 {
	return unitVector(1)
}

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newArticle(id string, published time.Time) *models.ArticleMetadata {
	return &models.ArticleMetadata{
		ID:                id,
		Title:             "Article " + id,
		Content:           "Content of article " + id,
		SourceName:        "Source " + id,
		SourceType:        models.SourceTypeMainstream,
		SourceCredibility: 80,
		PublishedAt:       published,
		Category:          "politics",
	}
}
