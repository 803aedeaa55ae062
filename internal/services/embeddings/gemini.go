package embeddings

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// GeminiEmbedder generates embeddings with the Gemini EmbedContent API
type GeminiEmbedder struct {
	client     *genai.Client
	model      string
	dimensions int32
	limiter    *rate.Limiter
}

// NewGeminiEmbedder creates a Gemini embedder for the given API key
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dimensions int, interval time.Duration) (*GeminiEmbedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = "gemini-embedding-001"
	}

	return &GeminiEmbedder{
		client:     client,
		model:      model,
		dimensions: int32(dimensions),
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Name returns the provider name
func (e *GeminiEmbedder) Name() string { return "gemini" }

// ModelName returns the embedding model
func (e *GeminiEmbedder) ModelName() string { return e.model }

// Embed generates a vector embedding for the given text
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embed: rate limiter wait failed: %w", err)
	}

	outputDim := e.dimensions
	result, err := e.client.Models.EmbedContent(ctx,
		e.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{
			OutputDimensionality: &outputDim,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("embed: gemini call failed: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("embed: gemini returned no embeddings")
	}

	return result.Embeddings[0].Values, nil
}
