package content

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

const (
	moderationTemperature = 0.3
	moderationMaxTokens   = 2048

	// Confidence assigned to every category when the reply cannot be parsed
	moderationFallbackConfidence = 0.5
)

// Risk thresholds per mode
const (
	strictBlockThreshold  = 0.3
	strictReviewThreshold = 0.1
	strictSafeThreshold   = 0.3
	normalBlockThreshold  = 0.5
	normalReviewThreshold = 0.2
	normalSafeThreshold   = 0.5
)

const moderationSystemPrompt = `You are a content moderation expert. Your task is to analyze content for safety and appropriateness.

Analyze the provided content for the following categories:
1. hate_speech: Hateful, discriminatory, or prejudiced content
2. violence: Violent, graphic, or threatening content
3. sexual_content: Sexually explicit or inappropriate content
4. harassment: Bullying, harassment, or personal attacks
5. self_harm: Content promoting self-harm or suicide
6. spam: Spam, scams, or misleading content
7. misinformation: False or misleading information

For each category, provide:
- flagged: true/false
- confidence: 0.0 to 1.0 (how confident you are)
- explanation: Brief explanation if flagged

Respond in JSON format:
{
    "categories": {
        "hate_speech": {"flagged": false, "confidence": 0.95, "explanation": ""},
        "violence": {"flagged": false, "confidence": 0.98, "explanation": ""},
        "sexual_content": {"flagged": false, "confidence": 0.99, "explanation": ""},
        "harassment": {"flagged": false, "confidence": 0.97, "explanation": ""},
        "self_harm": {"flagged": false, "confidence": 0.99, "explanation": ""},
        "spam": {"flagged": false, "confidence": 0.90, "explanation": ""},
        "misinformation": {"flagged": false, "confidence": 0.85, "explanation": ""}
    },
    "overall_risk_score": 0.0,
    "recommended_action": "allow"
}

Be thorough but fair. Only flag content that clearly violates policies.`

type categoryVerdict struct {
	Flagged     bool    `json:"flagged"`
	Confidence  float64 `json:"confidence" validate:"gte=0,lte=1"`
	Explanation string  `json:"explanation"`
}

type moderationPayload struct {
	Categories map[string]categoryVerdict `json:"categories" validate:"dive"`
}

// Moderator checks text against the moderation categories
type Moderator struct {
	llmService interfaces.LLMService
	logger     arbor.ILogger
}

// NewModerator creates a moderator
func NewModerator(llmService interfaces.LLMService, logger arbor.ILogger) *Moderator {
	return &Moderator{
		llmService: llmService,
		logger:     logger,
	}
}

// Moderate makes a single completion call and scores the reply. A reply that
// cannot be parsed is treated as every category unflagged.
func (m *Moderator) Moderate(ctx context.Context, req *models.ModerateRequest) (*models.ModerateResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", common.ErrValidation)
	}
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	start := time.Now()
	userMessage := fmt.Sprintf("Analyze this content:\n\n%s\n\nContext:\n- strict_mode: %t\n- content_length: %d",
		req.Content, req.StrictMode, len(req.Content))

	result, err := m.llmService.Chat(ctx, []interfaces.Message{
		{Role: "system", Content: moderationSystemPrompt},
		{Role: "user", Content: userMessage},
	}, interfaces.ChatOptions{
		Provider:    req.Provider,
		Temperature: moderationTemperature,
		MaxTokens:   moderationMaxTokens,
		JSON:        true,
	})
	if err != nil {
		m.logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Moderation failed")
		return nil, fmt.Errorf("moderation failed: %w", err)
	}

	payload := m.parse(result.Text)
	results := make([]models.ModerationResult, 0, len(models.ModerationCategories))
	for _, category := range models.ModerationCategories {
		verdict, ok := payload.Categories[category]
		if !ok {
			continue
		}
		results = append(results, models.ModerationResult{
			Category:    category,
			Flagged:     verdict.Flagged,
			Confidence:  verdict.Confidence,
			Explanation: verdict.Explanation,
		})
	}
	for category := range payload.Categories {
		if !isModerationCategory(category) {
			m.logger.Warn().Str("category", category).Msg("Unknown moderation category")
		}
	}

	risk := overallRisk(payload.Categories)
	action := RecommendedAction(risk, req.StrictMode)
	elapsed := time.Since(start)

	m.logger.Info().
		Float64("risk_score", risk).
		Str("action", action).
		Bool("strict_mode", req.StrictMode).
		Dur("elapsed", elapsed).
		Msg("Moderation complete")

	return &models.ModerateResponse{
		IsSafe:            IsSafe(risk, req.StrictMode),
		OverallRiskScore:  risk,
		Results:           results,
		RecommendedAction: action,
		Provider:          result.Provider,
		Model:             result.Model,
		ProcessingTime:    elapsed.Seconds(),
		CreatedAt:         time.Now().UTC(),
	}, nil
}

func (m *Moderator) parse(text string) moderationPayload {
	var payload moderationPayload
	err := llm.ParseJSON(text, &payload)
	if err == nil {
		err = common.Validate(&payload)
	}
	if err != nil {
		m.logger.Warn().Err(err).Msg("Failed to parse moderation response, using fallback")
		return fallbackModeration()
	}
	return payload
}

func fallbackModeration() moderationPayload {
	categories := make(map[string]categoryVerdict, len(models.ModerationCategories))
	for _, category := range models.ModerationCategories {
		categories[category] = categoryVerdict{Confidence: moderationFallbackConfidence}
	}
	return moderationPayload{Categories: categories}
}

// overallRisk is the sum of flagged confidences divided by the number of
// categories reported, including categories that are not recognised.
func overallRisk(categories map[string]categoryVerdict) float64 {
	if len(categories) == 0 {
		return 0
	}
	total := 0.0
	for _, verdict := range categories {
		if verdict.Flagged {
			total += verdict.Confidence
		}
	}
	return total / float64(len(categories))
}

// RecommendedAction maps a risk score to allow, review or block
func RecommendedAction(risk float64, strict bool) string {
	block, review := normalBlockThreshold, normalReviewThreshold
	if strict {
		block, review = strictBlockThreshold, strictReviewThreshold
	}
	switch {
	case risk > block:
		return models.ModerationBlock
	case risk > review:
		return models.ModerationReview
	default:
		return models.ModerationAllow
	}
}

// IsSafe reports whether a risk score is below the mode's safety threshold
func IsSafe(risk float64, strict bool) bool {
	if strict {
		return risk < strictSafeThreshold
	}
	return risk < normalSafeThreshold
}

func isModerationCategory(category string) bool {
	for _, known := range models.ModerationCategories {
		if category == known {
			return true
		}
	}
	return false
}
