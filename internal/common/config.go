package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment"` // "development" or "production"
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
	LLM         LLMConfig         `toml:"llm"`
	Claude      ClaudeConfig      `toml:"claude"`
	Gemini      GeminiConfig      `toml:"gemini"`
	Embeddings  EmbeddingsConfig  `toml:"embeddings"`
	Credibility CredibilityConfig `toml:"credibility"`
	Retry       RetryConfig       `toml:"retry"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Audit       AuditConfig       `toml:"audit"`
}

type ServerConfig struct {
	Port           int      `toml:"port"`
	Host           string   `toml:"host"`
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins; "*" allows all
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// LLMProvider represents the completion provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains provider selection shared by all completion callers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "claude" or "gemini" (default: "claude")
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key (ANTHROPIC_API_KEY or CREDENCE_CLAUDE_API_KEY take precedence)
	Model       string  `toml:"model"`       // Completion model
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 4096)
	Timeout     string  `toml:"timeout"`     // Per-call timeout as duration string (default: "60s")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between calls (default: "200ms")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Gemini API key (GEMINI_API_KEY or CREDENCE_GEMINI_API_KEY take precedence)
	Model       string  `toml:"model"`       // Completion model
	Timeout     string  `toml:"timeout"`     // Per-call timeout as duration string (default: "60s")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between calls (default: "4s" for 15 RPM)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// EmbeddingsConfig selects and configures the embedding provider
type EmbeddingsConfig struct {
	Provider  string `toml:"provider"`   // "openai" or "gemini" (default: "openai")
	APIKey    string `toml:"api_key"`    // Provider key; falls back to the provider's standard env var
	Model     string `toml:"model"`      // Embedding model (default: "text-embedding-3-small")
	Endpoint  string `toml:"endpoint"`   // OpenAI-compatible endpoint
	Dimension int    `toml:"dimension"`  // Vector dimension (default: 1536)
	Timeout   string `toml:"timeout"`    // HTTP client timeout (default: "30s")
	RateLimit string `toml:"rate_limit"` // Minimum interval between calls (default: "100ms")
}

// CredibilityConfig tunes the resource model of the scoring pipeline.
// Scoring constants (weights, thresholds, window) are fixed in code.
type CredibilityConfig struct {
	EmbedTimeout       string `toml:"embed_timeout"`         // Bound on a single embedding call (default: "8s")
	CompletionTimeout  string `toml:"completion_timeout"`    // Bound on verifier and fact-check calls (default: "20s")
	BatchConcurrency   int    `toml:"batch_concurrency"`     // Articles scored in parallel in batch mode (default: 4)
	EmbedConcurrency   int    `toml:"embed_concurrency"`     // Outstanding embedding calls per request (default: 8)
	VerifierMaxTokens  int    `toml:"verifier_max_tokens"`   // default: 512
	FactCheckMaxTokens int    `toml:"fact_check_max_tokens"` // default: 1024
}

// RetryConfig controls exponential backoff for summarize and translate calls
type RetryConfig struct {
	MaxAttempts    int     `toml:"max_attempts"`    // Total attempts including the first (default: 3)
	InitialBackoff string  `toml:"initial_backoff"` // default: "2s"
	MaxBackoff     string  `toml:"max_backoff"`     // default: "10s"
	Multiplier     float64 `toml:"multiplier"`      // default: 2.0
}

// RateLimitConfig limits inbound HTTP requests
type RateLimitConfig struct {
	Enabled   bool `toml:"enabled"`
	PerMinute int  `toml:"per_minute"`
}

// AuditConfig controls the remote-call audit log
type AuditConfig struct {
	Enabled       bool   `toml:"enabled"`
	Path          string `toml:"path"`           // Badger directory
	LogQueries    bool   `toml:"log_queries"`    // Store prompt text with each entry
	Retention     string `toml:"retention"`      // Entries older than this are pruned (default: "168h")
	PruneSchedule string `toml:"prune_schedule"` // Cron expression for pruning while running; empty disables (default: "@hourly")
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:           8000,
			Host:           "0.0.0.0",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout"},
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderClaude,
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Timeout:     "60s",
			RateLimit:   "200ms",
			Temperature: 0.7,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			Timeout:     "60s",
			RateLimit:   "4s",
			Temperature: 0.7,
		},
		Embeddings: EmbeddingsConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			Endpoint:  "https://api.openai.com/v1/embeddings",
			Dimension: 1536,
			Timeout:   "30s",
			RateLimit: "100ms",
		},
		Credibility: CredibilityConfig{
			EmbedTimeout:       "8s",
			CompletionTimeout:  "20s",
			BatchConcurrency:   4,
			EmbedConcurrency:   8,
			VerifierMaxTokens:  512,
			FactCheckMaxTokens: 1024,
		},
		Retry: RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: "2s",
			MaxBackoff:     "10s",
			Multiplier:     2.0,
		},
		RateLimit: RateLimitConfig{
			Enabled:   true,
			PerMinute: 60,
		},
		Audit: AuditConfig{
			Enabled:       false,
			Path:          "./data/audit",
			Retention:     "168h",
			PruneSchedule: "@hourly",
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> env
// Later files override earlier files. CLI flags are applied afterwards by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal merges into the existing values
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CREDENCE_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("CREDENCE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("CREDENCE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if origins := os.Getenv("CREDENCE_ALLOWED_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = splitList(origins)
	}

	if level := os.Getenv("CREDENCE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if provider := os.Getenv("CREDENCE_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(strings.ToLower(provider))
	}
	if model := os.Getenv("CREDENCE_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if model := os.Getenv("CREDENCE_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if maxTokens := os.Getenv("CREDENCE_MAX_TOKENS"); maxTokens != "" {
		if n, err := strconv.Atoi(maxTokens); err == nil {
			config.Claude.MaxTokens = n
		}
	}
	if temperature := os.Getenv("CREDENCE_TEMPERATURE"); temperature != "" {
		if t, err := strconv.ParseFloat(temperature, 32); err == nil {
			config.Claude.Temperature = float32(t)
			config.Gemini.Temperature = float32(t)
		}
	}

	if provider := os.Getenv("CREDENCE_EMBEDDINGS_PROVIDER"); provider != "" {
		config.Embeddings.Provider = strings.ToLower(provider)
	}
	if model := os.Getenv("CREDENCE_EMBEDDINGS_MODEL"); model != "" {
		config.Embeddings.Model = model
	}

	if retries := os.Getenv("CREDENCE_MAX_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil {
			config.Retry.MaxAttempts = n
		}
	}

	if enabled := os.Getenv("CREDENCE_RATE_LIMIT_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.RateLimit.Enabled = b
		}
	}
	if perMinute := os.Getenv("CREDENCE_RATE_LIMIT_PER_MINUTE"); perMinute != "" {
		if n, err := strconv.Atoi(perMinute); err == nil {
			config.RateLimit.PerMinute = n
		}
	}

	if enabled := os.Getenv("CREDENCE_AUDIT_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Audit.Enabled = b
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// apiKeyEnvVars maps a key name to the environment variables consulted for it,
// project-prefixed names first, then the provider's standard name.
var apiKeyEnvVars = map[string][]string{
	"anthropic_api_key": {"CREDENCE_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
	"gemini_api_key":    {"CREDENCE_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"openai_api_key":    {"CREDENCE_OPENAI_API_KEY", "OPENAI_API_KEY"},
}

// ResolveAPIKey resolves an API key by name.
// Resolution order: environment variables → config fallback → error
func ResolveAPIKey(name string, configFallback string) (string, error) {
	for _, envVarName := range apiKeyEnvVars[name] {
		if envValue := os.Getenv(envVarName); envValue != "" {
			return envValue, nil
		}
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}

// ParseDuration parses a duration string, returning fallback when empty or invalid
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
