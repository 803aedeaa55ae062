package embeddings

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
	"github.com/ternarybob/credence/internal/services/llm"
)

// MaxInputChars caps the text sent to the embedding provider
const MaxInputChars = 8000

// Service implements EmbeddingService interface
type Service struct {
	provider    interfaces.EmbeddingProvider
	auditLogger interfaces.AuditLogger
	dimension   int
	timeout     time.Duration
	logger      arbor.ILogger
}

// NewService creates a new embedding service
func NewService(provider interfaces.EmbeddingProvider, auditLogger interfaces.AuditLogger, dimension int, timeout time.Duration, logger arbor.ILogger) *Service {
	if auditLogger == nil {
		auditLogger = llm.NewNullAuditLogger()
	}
	return &Service{
		provider:    provider,
		auditLogger: auditLogger,
		dimension:   dimension,
		timeout:     timeout,
		logger:      logger,
	}
}

// NewServiceFromConfig selects the embedding provider named in config.
// The provider's API key is resolved from the environment first.
func NewServiceFromConfig(ctx context.Context, config *common.EmbeddingsConfig, auditLogger interfaces.AuditLogger, logger arbor.ILogger) (*Service, error) {
	timeout := common.ParseDuration(config.Timeout, 30*time.Second)
	interval := common.ParseDuration(config.RateLimit, 100*time.Millisecond)

	var provider interfaces.EmbeddingProvider
	switch config.Provider {
	case "gemini":
		apiKey, err := common.ResolveAPIKey("gemini_api_key", config.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve Gemini API key for embeddings: %w", err)
		}
		model := config.Model
		if model == "text-embedding-3-small" {
			model = ""
		}
		provider, err = NewGeminiEmbedder(ctx, apiKey, model, config.Dimension, interval)
		if err != nil {
			return nil, err
		}
	case "openai", "":
		apiKey, err := common.ResolveAPIKey("openai_api_key", config.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve OpenAI API key for embeddings: %w", err)
		}
		provider = NewOpenAIEmbedder(apiKey, config.Model, config.Endpoint, config.Dimension, timeout, interval)
	default:
		return nil, fmt.Errorf("unsupported embeddings provider '%s'", config.Provider)
	}

	logger.Info().
		Str("provider", provider.Name()).
		Str("model", provider.ModelName()).
		Int("dimension", config.Dimension).
		Msg("Embedding service initialized")

	return NewService(provider, auditLogger, config.Dimension, timeout, logger), nil
}

// Embed creates a vector embedding for text
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	text = models.Truncate(text, MaxInputChars)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	embedding, err := s.provider.Embed(callCtx, text)
	if err == nil && len(embedding) != s.dimension {
		err = fmt.Errorf("embedding dimension %d does not match expected %d", len(embedding), s.dimension)
	}
	duration := time.Since(start)

	llm.RecordCall(s.auditLogger, s.logger, s.provider.Name(), models.AuditOperationEmbed, s.provider.ModelName(), start, err, text)

	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	s.logger.Debug().
		Str("provider", s.provider.Name()).
		Int("input_length", len(text)).
		Int("embedding_dim", len(embedding)).
		Dur("duration", duration).
		Msg("Generated embedding")

	return embedding, nil
}

// ModelName returns the embedding model
func (s *Service) ModelName() string {
	return s.provider.ModelName()
}

// Dimension returns the expected vector length
func (s *Service) Dimension() int {
	return s.dimension
}

var _ interfaces.EmbeddingService = (*Service)(nil)
