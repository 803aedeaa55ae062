package interfaces

import (
	"context"
)

// EmbeddingService generates vector embeddings
type EmbeddingService interface {
	// Generate embedding for raw text
	Embed(ctx context.Context, text string) ([]float32, error)

	// Get model information
	ModelName() string
	Dimension() int
}

// EmbeddingProvider is a remote embedding backend wrapped by EmbeddingService
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Name() string
	ModelName() string
}
