package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// OpenAIEmbedder generates embeddings via an OpenAI-compatible /v1/embeddings endpoint.
type OpenAIEmbedder struct {
	apiKey     string
	model      string
	endpoint   string
	dimensions int
	client     *http.Client
	limiter    *rate.Limiter
	backoffs   []time.Duration
}

// openAIEmbedRequest represents the request body for the embeddings API.
type openAIEmbedRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

// openAIEmbedResponse represents the response from the embeddings API.
type openAIEmbedResponse struct {
	Data  []openAIEmbedding `json:"data"`
	Model string            `json:"model"`
}

// openAIEmbedding represents a single embedding in the response.
type openAIEmbedding struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

// NewOpenAIEmbedder creates a new OpenAIEmbedder.
func NewOpenAIEmbedder(apiKey, model, endpoint string, dimensions int, timeout, interval time.Duration) *OpenAIEmbedder {
	if model == "" {
		model = "text-embedding-3-small"
	}
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/embeddings"
	}
	return &OpenAIEmbedder{
		apiKey:     apiKey,
		model:      model,
		endpoint:   endpoint,
		dimensions: dimensions,
		client:     &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		backoffs:   []time.Duration{500 * time.Millisecond, 1 * time.Second},
	}
}

// Name returns the provider name
func (e *OpenAIEmbedder) Name() string { return "openai" }

// ModelName returns the embedding model
func (e *OpenAIEmbedder) ModelName() string { return e.model }

// Embed generates a vector embedding for the given text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := openAIEmbedRequest{
		Model:      e.model,
		Input:      []string{text},
		Dimensions: e.dimensions,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("embed: failed to marshal request: %w", err)
	}

	resp, err := e.doWithRetry(ctx, jsonBody)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embed: openai returned no embeddings")
	}
	return resp.Data[0].Embedding, nil
}

// doWithRetry executes the API request, retrying on HTTP 429 or 5xx.
// On 429, honors the Retry-After header if present.
func (e *OpenAIEmbedder) doWithRetry(ctx context.Context, reqBody []byte) (*openAIEmbedResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= len(e.backoffs); attempt++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("embed: rate limiter wait failed: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("embed: failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+e.apiKey)

		resp, err := e.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("embed: request cancelled: %w", ctx.Err())
			}
			return nil, fmt.Errorf("embed: request failed: %w", err)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("embed: failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			var embedResp openAIEmbedResponse
			if err := json.Unmarshal(body, &embedResp); err != nil {
				return nil, fmt.Errorf("embed: failed to parse response: %w", err)
			}
			return &embedResp, nil
		}

		lastErr = fmt.Errorf("embed: openai returned status %d: %s", resp.StatusCode, string(body))
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		if !retryable || attempt == len(e.backoffs) {
			break
		}

		delay := e.backoffs[attempt]
		if resp.StatusCode == http.StatusTooManyRequests {
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
					delay = time.Duration(seconds) * time.Second
					if delay > 10*time.Second {
						delay = 10 * time.Second
					}
				}
			}
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("embed: request cancelled during retry: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return nil, lastErr
}
