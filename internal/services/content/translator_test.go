package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
)

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Spanish", LanguageName("es"))
	assert.Equal(t, "Nepali", LanguageName("ne"))
	assert.Equal(t, "XX", LanguageName("xx"))
}

func TestSupportedLanguageList(t *testing.T) {
	list := SupportedLanguageList()
	assert.Equal(t, len(models.SupportedLanguages), list.Total)
	assert.Len(t, list.Codes, list.Total)
	assert.Equal(t, "English", list.Languages["en"])
	assert.Equal(t, "de", list.Codes[0])
}

func TestBuildTranslationSystemPrompt(t *testing.T) {
	req := &models.TranslateRequest{Content: "hola", SourceLanguage: "es", TargetLanguage: "fr"}
	prompt := buildTranslationSystemPrompt(req)
	assert.Contains(t, prompt, "translate the provided text to French.")
	assert.Contains(t, prompt, "- Translate from Spanish to French")
	assert.Contains(t, prompt, "- Preserve the original formatting")
	assert.Contains(t, prompt, "Provide ONLY the translated text")

	req.SourceLanguage = ""
	req.PreserveFormatting = boolPtr(false)
	prompt = buildTranslationSystemPrompt(req)
	assert.Contains(t, prompt, "- Automatically detect the source language")
	assert.NotContains(t, prompt, "Preserve the original formatting")
}

func TestTranslator_Translate(t *testing.T) {
	var calls [][]interfaces.Message
	mockLLM := new(MockLLMService)
	mockLLM.On("Chat", mock.Anything, mock.Anything, mock.MatchedBy(func(opts interfaces.ChatOptions) bool {
		return opts.Temperature == translationTemperature
	})).Run(capturedMessages(&calls)).Return(chatResult("  Bonjour le monde \n"), nil)

	translator := NewTranslator(mockLLM, fastRetry(), arbor.NewLogger())
	resp, err := translator.Translate(context.Background(), &models.TranslateRequest{
		Content:        "Hello world",
		TargetLanguage: "fr",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bonjour le monde", resp.TranslatedContent)
	assert.Equal(t, "en", resp.SourceLanguage)
	assert.Equal(t, "fr", resp.TargetLanguage)
	require.Len(t, calls, 1)
	assert.Equal(t, "system", calls[0][0].Role)
	assert.Equal(t, interfaces.Message{Role: "user", Content: "Hello world"}, calls[0][1])
}

func TestTranslator_InvalidLanguage(t *testing.T) {
	translator := NewTranslator(new(MockLLMService), fastRetry(), arbor.NewLogger())
	_, err := translator.Translate(context.Background(), &models.TranslateRequest{
		Content:        "Hello",
		TargetLanguage: "xx",
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestTranslator_BatchStopsOnFirstError(t *testing.T) {
	mockLLM := new(MockLLMService)
	mockLLM.On("Chat", mock.Anything, mock.Anything, mock.Anything).
		Return(chatResult("Hola"), nil).Once()
	mockLLM.On("Chat", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("boom"))

	translator := NewTranslator(mockLLM, fastRetry(), arbor.NewLogger())
	_, err := translator.TranslateBatch(context.Background(), &models.BatchTranslateRequest{
		Requests: []models.TranslateRequest{
			{Content: "Hello", TargetLanguage: "es"},
			{Content: "World", TargetLanguage: "es"},
			{Content: "Again", TargetLanguage: "es"},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "request 1")
	// one success plus three attempts on the second request
	mockLLM.AssertNumberOfCalls(t, "Chat", 4)
}

func TestTranslator_Batch(t *testing.T) {
	mockLLM := new(MockLLMService)
	mockLLM.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return(chatResult("Hola"), nil)

	translator := NewTranslator(mockLLM, fastRetry(), arbor.NewLogger())
	results, err := translator.TranslateBatch(context.Background(), &models.BatchTranslateRequest{
		Requests: []models.TranslateRequest{
			{Content: "Hello", TargetLanguage: "es"},
			{Content: "Hi", TargetLanguage: "es", SourceLanguage: "en"},
		},
	})

	require.NoError(t, err)
	assert.Len(t, results, 2)

	_, err = translator.TranslateBatch(context.Background(), &models.BatchTranslateRequest{})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestDetectLanguage(t *testing.T) {
	resp := DetectLanguage("Bonjour")
	assert.Equal(t, "en", resp.Language)
	assert.Equal(t, 0.8, resp.Confidence)
	assert.Equal(t, 7, resp.TextLength)
}
