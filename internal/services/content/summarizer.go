package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/models"
	"github.com/ternarybob/credence/internal/services/llm"
)

// Response section markers requested when key points are wanted
const (
	markerSummary   = "[SUMMARY]"
	markerKeyPoints = "[KEY POINTS]"
	markerCategory  = "[CATEGORY]"
)

const defaultCategory = "general"

// Summarizer produces article summaries with key points and a category
type Summarizer struct {
	llmService interfaces.LLMService
	retry      *llm.RetryConfig
	logger     arbor.ILogger
}

// NewSummarizer creates a summarizer. A nil retry config uses the default schedule.
func NewSummarizer(llmService interfaces.LLMService, retry *llm.RetryConfig, logger arbor.ILogger) *Summarizer {
	if retry == nil {
		retry = llm.NewDefaultRetryConfig()
	}
	return &Summarizer{
		llmService: llmService,
		retry:      retry,
		logger:     logger,
	}
}

// Summarize summarizes and classifies one article. HTML content is reduced to
// plain text first.
func (s *Summarizer) Summarize(ctx context.Context, req *models.SummarizeRequest) (*models.SummarizeResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", common.ErrValidation)
	}
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	start := time.Now()
	prepared := *req
	if IsHTML(req.Article.ContentFormat) {
		prepared.Article.Content = PlainText(req.Article.Content)
	}

	messages := []interfaces.Message{
		{Role: "system", Content: buildSummarySystemPrompt(&prepared)},
		{Role: "user", Content: buildSummaryUserPrompt(&prepared)},
	}

	result, err := llm.Retry(ctx, s.retry, s.logger, "summarize", func(ctx context.Context) (*interfaces.ChatResult, error) {
		return s.llmService.Chat(ctx, messages, interfaces.ChatOptions{Provider: req.Provider})
	})
	if err != nil {
		s.logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Summarization failed")
		return nil, fmt.Errorf("summarization failed: %w", err)
	}

	summary, keyPoints, category := parseSummaryResponse(result.Text, prepared.WantKeyPoints())

	original := prepared.Article.Content
	summaryWords := len(strings.Fields(summary))
	originalWords := len(strings.Fields(original))
	reduction := 0.0
	if originalWords > 0 {
		reduction = 1 - float64(summaryWords)/float64(originalWords)
	}
	elapsed := time.Since(start)

	s.logger.Info().
		Int("original_words", originalWords).
		Int("summary_words", summaryWords).
		Float64("reduction_ratio", reduction).
		Str("category", category).
		Dur("elapsed", elapsed).
		Msg("Summarization complete")

	return &models.SummarizeResponse{
		Summary:        summary,
		KeyPoints:      keyPoints,
		Category:       category,
		WordCount:      summaryWords,
		OriginalLength: len(original),
		ReductionRatio: reduction,
		Provider:       result.Provider,
		Model:          result.Model,
		ProcessingTime: elapsed.Seconds(),
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func buildSummarySystemPrompt(req *models.SummarizeRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an expert content summarizer and classifier.
Your task is to:
1. Create a clear, concise, and accurate summary of approximately %d words
2. Extract key points
3. Classify the article into exactly one of these categories: Politics, Sports, Entertainment, Business, Technology, Health, Education, International, Opinion, General

Guidelines:
- Maintain the main ideas and key information
- Use clear and professional language
- Preserve important facts and figures
- Keep the summary coherent and well-structured`, req.Length.TargetWords())

	if req.WantKeyPoints() {
		b.WriteString("\n- After the summary, provide 3-5 key points as a bulleted list")
	}
	if req.Language != "" && req.Language != "en" {
		fmt.Fprintf(&b, "\n- Write the summary and key points in %s language, but keep the category in ENGLISH", strings.ToUpper(req.Language))
	}

	return b.String()
}

func buildSummaryUserPrompt(req *models.SummarizeRequest) string {
	body := req.Article.Content
	if req.Article.Title != "" {
		body = fmt.Sprintf("Title: %s\n\n%s", req.Article.Title, body)
	}

	prompt := "Please summarize and classify the following article:\n\n" + body
	if req.WantKeyPoints() {
		prompt += "\n\nProvide the output in this format:\n[SUMMARY]\n<summary text>\n\n[KEY POINTS]\n- Point 1\n- Point 2\n- Point 3\n\n[CATEGORY]\n<category name>"
	}
	return prompt
}

// parseSummaryResponse splits a marked-up reply into summary, key points and
// category. Without key points the whole reply is the summary.
func parseSummaryResponse(text string, withKeyPoints bool) (string, []string, string) {
	if !withKeyPoints {
		return strings.TrimSpace(text), nil, defaultCategory
	}

	category := defaultCategory
	if before, after, found := strings.Cut(text, markerCategory); found {
		line, _, _ := strings.Cut(strings.TrimSpace(after), "\n")
		category = normalizeCategory(line)
		text = before
	}

	before, after, found := strings.Cut(text, markerKeyPoints)
	if !found {
		return strings.TrimSpace(strings.ReplaceAll(text, markerSummary, "")), nil, category
	}

	summary := strings.TrimSpace(strings.ReplaceAll(before, markerSummary, ""))
	keyPoints := []string{}
	for _, line := range strings.Split(after, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*") {
			keyPoints = append(keyPoints, strings.TrimSpace(strings.TrimLeft(line, "-•*")))
		}
	}

	return summary, keyPoints, category
}

func normalizeCategory(raw string) string {
	category := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range models.SummaryCategories {
		if category == known {
			return category
		}
	}
	return defaultCategory
}
