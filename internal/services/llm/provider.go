package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
	"golang.org/x/time/rate"
)

// ErrProviderNotConfigured is returned when a call names a provider without an API key
var ErrProviderNotConfigured = errors.New("provider is not configured")

// ContentRequest represents a provider-agnostic content generation request
type ContentRequest struct {
	Messages    []interfaces.Message
	Model       string
	Temperature float32
	MaxTokens   int
	JSON        bool // Ask for a JSON response body where the provider supports it
}

// ContentResponse represents a provider-agnostic content generation response
type ContentResponse struct {
	Text     string
	Provider models.Provider
	Model    string
}

// Provider defines the interface for AI content generation
type Provider interface {
	GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error)
	GetProviderType() models.Provider
	Close() error
}

// providerEntry is a constructed provider with its call budget
type providerEntry struct {
	provider     Provider
	limiter      *rate.Limiter
	timeout      time.Duration
	defaultModel string
}

// ProviderFactory routes chat calls to the configured providers. Clients are
// created once by NewProviderFactory and are read-only afterwards.
type ProviderFactory struct {
	defaultProvider models.Provider
	providers       map[models.Provider]*providerEntry
	audit           interfaces.AuditLogger
	logger          arbor.ILogger
}

// NewProviderFactory resolves API keys and builds a client for every provider
// that has one. A provider without a key is skipped, not an error.
func NewProviderFactory(ctx context.Context, config *common.Config, audit interfaces.AuditLogger, logger arbor.ILogger) (*ProviderFactory, error) {
	f := newProviderFactory(models.Provider(config.LLM.DefaultProvider), audit, logger)

	if apiKey, err := common.ResolveAPIKey("anthropic_api_key", config.Claude.APIKey); err == nil {
		f.register(NewClaudeProvider(apiKey, &config.Claude),
			config.Claude.Model,
			common.ParseDuration(config.Claude.Timeout, 60*time.Second),
			common.ParseDuration(config.Claude.RateLimit, 200*time.Millisecond))
	} else {
		logger.Debug().Msg("Claude provider not configured (no API key)")
	}

	if apiKey, err := common.ResolveAPIKey("gemini_api_key", config.Gemini.APIKey); err == nil {
		gemini, err := NewGeminiProvider(ctx, apiKey, &config.Gemini)
		if err != nil {
			return nil, err
		}
		f.register(gemini,
			config.Gemini.Model,
			common.ParseDuration(config.Gemini.Timeout, 60*time.Second),
			common.ParseDuration(config.Gemini.RateLimit, 4*time.Second))
	} else {
		logger.Debug().Msg("Gemini provider not configured (no API key)")
	}

	logger.Info().
		Str("default_provider", string(f.defaultProvider)).
		Int("configured", len(f.providers)).
		Msg("LLM provider factory initialized")

	return f, nil
}

func newProviderFactory(defaultProvider models.Provider, audit interfaces.AuditLogger, logger arbor.ILogger) *ProviderFactory {
	if defaultProvider == "" {
		defaultProvider = models.ProviderClaude
	}
	if audit == nil {
		audit = NewNullAuditLogger()
	}
	return &ProviderFactory{
		defaultProvider: defaultProvider,
		providers:       make(map[models.Provider]*providerEntry),
		audit:           audit,
		logger:          logger,
	}
}

func (f *ProviderFactory) register(p Provider, defaultModel string, timeout, interval time.Duration) {
	f.providers[p.GetProviderType()] = &providerEntry{
		provider:     p,
		limiter:      rate.NewLimiter(rate.Every(interval), 1),
		timeout:      timeout,
		defaultModel: defaultModel,
	}
}

// DetectProvider determines the provider type from an explicit choice or a model string.
// Model strings can be:
// - "claude-sonnet-4-20250514" -> Claude
// - "claude/claude-sonnet-4-20250514" -> Claude (with prefix)
// - "gemini-2.0-flash" -> Gemini
// - "gemini/gemini-2.0-flash" -> Gemini (with prefix)
// - Empty string -> uses default provider from config
func (f *ProviderFactory) DetectProvider(explicit models.Provider, model string) models.Provider {
	if explicit != "" {
		return explicit
	}

	model = strings.ToLower(model)
	switch {
	case strings.HasPrefix(model, "claude/"), strings.HasPrefix(model, "anthropic/"), strings.HasPrefix(model, "claude-"):
		return models.ProviderClaude
	case strings.HasPrefix(model, "gemini/"), strings.HasPrefix(model, "google/"), strings.HasPrefix(model, "gemini-"):
		return models.ProviderGemini
	}

	return f.defaultProvider
}

// NormalizeModel removes provider prefix from model name if present
func NormalizeModel(model string) string {
	prefixes := []string{"claude/", "anthropic/", "gemini/", "google/"}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToLower(model), prefix) {
			return model[len(prefix):]
		}
	}
	return model
}

// Chat implements interfaces.LLMService with a single rate-limited, time-bounded attempt
func (f *ProviderFactory) Chat(ctx context.Context, messages []interfaces.Message, opts interfaces.ChatOptions) (*interfaces.ChatResult, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("messages cannot be empty for chat completion")
	}

	providerType := f.DetectProvider(opts.Provider, opts.Model)
	entry, ok := f.providers[providerType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, providerType)
	}

	model := NormalizeModel(opts.Model)
	if model == "" {
		model = entry.defaultModel
	}

	if err := entry.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, entry.timeout)
	defer cancel()

	start := time.Now()
	resp, err := entry.provider.GenerateContent(callCtx, &ContentRequest{
		Messages:    messages,
		Model:       model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		JSON:        opts.JSON,
	})
	duration := time.Since(start)

	RecordCall(f.audit, f.logger, string(providerType), models.AuditOperationChat, model, start, err, lastUserMessage(messages))

	if err != nil {
		f.logger.Debug().
			Str("provider", string(providerType)).
			Str("model", model).
			Dur("duration", duration).
			Err(err).
			Msg("Chat completion failed")
		return nil, err
	}

	f.logger.Debug().
		Str("provider", string(providerType)).
		Str("model", model).
		Int("message_count", len(messages)).
		Int("response_length", len(resp.Text)).
		Dur("duration", duration).
		Msg("Chat completion completed")

	return &interfaces.ChatResult{
		Text:     resp.Text,
		Provider: resp.Provider,
		Model:    resp.Model,
	}, nil
}

// Configured returns the providers with clients, default provider first
func (f *ProviderFactory) Configured() []models.Provider {
	result := make([]models.Provider, 0, len(f.providers))
	if _, ok := f.providers[f.defaultProvider]; ok {
		result = append(result, f.defaultProvider)
	}
	for _, p := range []models.Provider{models.ProviderClaude, models.ProviderGemini} {
		if _, ok := f.providers[p]; ok && p != f.defaultProvider {
			result = append(result, p)
		}
	}
	return result
}

// DefaultModel returns the configured model for a provider
func (f *ProviderFactory) DefaultModel(provider models.Provider) string {
	if provider == "" {
		provider = f.defaultProvider
	}
	if entry, ok := f.providers[provider]; ok {
		return entry.defaultModel
	}
	return ""
}

// Close closes all provider clients
func (f *ProviderFactory) Close() error {
	for name, entry := range f.providers {
		if err := entry.provider.Close(); err != nil {
			f.logger.Warn().Err(err).Str("provider", string(name)).Msg("Failed to close provider")
		}
	}
	return nil
}

func lastUserMessage(messages []interfaces.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

var _ interfaces.LLMService = (*ProviderFactory)(nil)
