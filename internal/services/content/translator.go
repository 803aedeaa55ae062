package content

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
	"github.com/ternarybob/credence/internal/services/llm"
)

const (
	translationTemperature = 0.3
	defaultSourceLanguage  = "en"
	detectionConfidence    = 0.8
)

var languageNames = map[string]string{
	"en": "English",
	"ne": "Nepali",
	"hi": "Hindi",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ja": "Japanese",
	"zh": "Chinese",
	"ko": "Korean",
	"ru": "Russian",
}

// LanguageName returns the English name of a language code, or the code in
// upper case when the name is unknown.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}

// LanguageList is the supported-languages listing
type LanguageList struct {
	Languages map[string]string `json:"languages"`
	Total     int               `json:"total"`
	Codes     []string          `json:"codes"`
}

// SupportedLanguageList returns every accepted language code with its name
func SupportedLanguageList() LanguageList {
	languages := make(map[string]string, len(models.SupportedLanguages))
	codes := make([]string, 0, len(models.SupportedLanguages))
	for _, code := range models.SupportedLanguages {
		languages[code] = LanguageName(code)
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return LanguageList{Languages: languages, Total: len(codes), Codes: codes}
}

// Translator translates text between the supported languages
type Translator struct {
	llmService interfaces.LLMService
	retry      *llm.RetryConfig
	logger     arbor.ILogger
}

// NewTranslator creates a translator. A nil retry config uses the default schedule.
func NewTranslator(llmService interfaces.LLMService, retry *llm.RetryConfig, logger arbor.ILogger) *Translator {
	if retry == nil {
		retry = llm.NewDefaultRetryConfig()
	}
	return &Translator{
		llmService: llmService,
		retry:      retry,
		logger:     logger,
	}
}

// Translate translates one request
func (t *Translator) Translate(ctx context.Context, req *models.TranslateRequest) (*models.TranslateResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", common.ErrValidation)
	}
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	start := time.Now()
	source := req.SourceLanguage
	if source == "" {
		source = DetectLanguage(req.Content).Language
		t.logger.Debug().Str("language", source).Msg("Detected source language")
	}

	messages := []interfaces.Message{
		{Role: "system", Content: buildTranslationSystemPrompt(req)},
		{Role: "user", Content: req.Content},
	}
	opts := interfaces.ChatOptions{Provider: req.Provider, Temperature: translationTemperature}

	result, err := llm.Retry(ctx, t.retry, t.logger, "translate", func(ctx context.Context) (*interfaces.ChatResult, error) {
		return t.llmService.Chat(ctx, messages, opts)
	})
	if err != nil {
		t.logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Translation failed")
		return nil, fmt.Errorf("translation failed: %w", err)
	}

	elapsed := time.Since(start)
	t.logger.Info().
		Str("source", source).
		Str("target", req.TargetLanguage).
		Dur("elapsed", elapsed).
		Msg("Translation complete")

	return &models.TranslateResponse{
		TranslatedContent: strings.TrimSpace(result.Text),
		SourceLanguage:    source,
		TargetLanguage:    req.TargetLanguage,
		Provider:          result.Provider,
		Model:             result.Model,
		ProcessingTime:    elapsed.Seconds(),
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// TranslateBatch translates requests in order and stops at the first failure
func (t *Translator) TranslateBatch(ctx context.Context, req *models.BatchTranslateRequest) ([]*models.TranslateResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", common.ErrValidation)
	}
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	results := make([]*models.TranslateResponse, 0, len(req.Requests))
	for i := range req.Requests {
		resp, err := t.Translate(ctx, &req.Requests[i])
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		results = append(results, resp)
	}
	return results, nil
}

// DetectLanguage reports the language of content. Detection is not
// implemented yet; every input is reported as English.
func DetectLanguage(content string) models.DetectLanguageResponse {
	return models.DetectLanguageResponse{
		Language:   defaultSourceLanguage,
		Confidence: detectionConfidence,
		TextLength: len(content),
	}
}

func buildTranslationSystemPrompt(req *models.TranslateRequest) string {
	target := LanguageName(req.TargetLanguage)

	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert translator with deep knowledge of multiple languages and cultures.
Your task is to translate the provided text to %s.

Guidelines:
- Provide accurate and natural translations
- Maintain the meaning and tone of the original text
- Use appropriate cultural context
- Keep technical terms accurate`, target)

	if req.SourceLanguage != "" {
		fmt.Fprintf(&b, "\n- Translate from %s to %s", LanguageName(req.SourceLanguage), target)
	} else {
		b.WriteString("\n- Automatically detect the source language")
	}
	if req.WantPreserveFormatting() {
		b.WriteString("\n- Preserve the original formatting (line breaks, spacing, etc.)")
	}
	b.WriteString("\n\nProvide ONLY the translated text without any explanations or notes.")

	return b.String()
}
