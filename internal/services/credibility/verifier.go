package credibility

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

// verificationPayload is the JSON the model is asked to return
type verificationPayload struct {
	Score       *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
	Confidence  *float64 `json:"confidence" validate:"omitempty,gte=0,lte=1"`
	Flags       []string `json:"flags"`
	Strengths   []string `json:"strengths"`
	Explanation string   `json:"explanation"`
}

// Verifier asks the completion provider for a direct credibility assessment.
// It makes a single attempt per article.
type Verifier struct {
	llmService interfaces.LLMService
	maxTokens  int
	timeout    time.Duration
	logger     arbor.ILogger
}

// NewVerifier creates an AI verifier
func NewVerifier(llmService interfaces.LLMService, maxTokens int, timeout time.Duration, logger arbor.ILogger) *Verifier {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &Verifier{
		llmService: llmService,
		maxTokens:  maxTokens,
		timeout:    timeout,
		logger:     logger,
	}
}

// Verify assesses the article. Missing score or confidence fields default to
// 50 and 0.5; any failure returns score 50, confidence 0.3 and empty lists.
func (v *Verifier) Verify(ctx context.Context, target *models.ArticleMetadata, similarCount int) VerificationResult {
	if v.llmService == nil {
		return v.fallback(target.ID, "completion provider not configured", nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	result, err := v.llmService.Chat(callCtx, []interfaces.Message{
		{Role: "user", Content: buildVerificationPrompt(target, similarCount)},
	}, interfaces.ChatOptions{MaxTokens: v.maxTokens, JSON: true})
	if err != nil {
		return v.fallback(target.ID, "completion call failed", err)
	}

	var payload verificationPayload
	if err := llm.ParseJSON(result.Text, &payload); err != nil {
		return v.fallback(target.ID, "unparseable response", err)
	}
	if err := common.Validate(&payload); err != nil {
		return v.fallback(target.ID, "out-of-range response", err)
	}

	verification := VerificationResult{
		Score:       NeutralScore,
		Confidence:  VerifierDefaultConfidence,
		Flags:       nonNil(payload.Flags),
		Strengths:   nonNil(payload.Strengths),
		Explanation: payload.Explanation,
	}
	if payload.Score != nil {
		verification.Score = *payload.Score
	}
	if payload.Confidence != nil {
		verification.Confidence = *payload.Confidence
	}

	v.logger.Debug().
		Str("article_id", target.ID).
		Float64("score", verification.Score).
		Float64("confidence", verification.Confidence).
		Int("flags", len(verification.Flags)).
		Msg("AI verification completed")

	return verification
}

func (v *Verifier) fallback(articleID, reason string, err error) VerificationResult {
	if err != nil {
		v.logger.Warn().Err(err).Str("article_id", articleID).Str("reason", reason).Msg("AI verification fell back to neutral score")
	} else {
		v.logger.Warn().Str("article_id", articleID).Str("reason", reason).Msg("AI verification fell back to neutral score")
	}

	return fallbackVerification(reason)
}

func buildVerificationPrompt(target *models.ArticleMetadata, similarCount int) string {
	var b strings.Builder

	b.WriteString("Assess the credibility of this news article.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", target.Title)
	fmt.Fprintf(&b, "Source: %s (%s)\n", target.SourceName, target.SourceType)
	fmt.Fprintf(&b, "Content: %s\n\n", models.Truncate(target.Content, verifierContentChars))
	fmt.Fprintf(&b, "Number of similar articles from other sources: %d\n", similarCount)

	b.WriteString(`
Evaluate:
1. Is the content factual and objective?
2. Are there signs of bias or sensationalism?
3. Does it cite sources or provide evidence?
4. Is the information verifiable?

Return JSON:
{
    "score": 0-100,
    "confidence": 0-1,
    "flags": ["flag1", "flag2", ...],
    "strengths": ["strength1", ...],
    "explanation": "brief explanation"
}
`)
	return b.String()
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
