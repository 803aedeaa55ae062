package content

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
	"github.com/ternarybob/credence/internal/services/llm"
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

func chatResult(text string) *interfaces.ChatResult {
	return &interfaces.ChatResult{Text: text, Provider: models.ProviderClaude, Model: "mock-model"}
}

func fastRetry() *llm.RetryConfig {
	return &llm.RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2,
	}
}

// capturedMessages records the messages of every chat call for later inspection
func capturedMessages(calls *[][]interfaces.Message) func(mock.Arguments) {
	return func(args mock.Arguments) {
		*calls = append(*calls, args.Get(1).([]interfaces.Message))
	}
}

func boolPtr(b bool) *bool { return &b }
