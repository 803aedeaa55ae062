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

// factCheckPayload is the JSON the model is asked to return
type factCheckPayload struct {
	KeyFacts         []string `json:"key_facts"`
	ConsistentFacts  []string `json:"consistent_facts"`
	ConflictingFacts []string `json:"conflicting_facts"`
	ConsistencyScore *float64 `json:"consistency_score" validate:"omitempty,gte=0,lte=100"`
	Explanation      string   `json:"explanation"`
}

// FactChecker asks the completion provider how consistent the key facts are
// across an article and its similar coverage.
type FactChecker struct {
	llmService interfaces.LLMService
	maxTokens  int
	timeout    time.Duration
	logger     arbor.ILogger
}

// NewFactChecker creates a fact checker
func NewFactChecker(llmService interfaces.LLMService, maxTokens int, timeout time.Duration, logger arbor.ILogger) *FactChecker {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &FactChecker{
		llmService: llmService,
		maxTokens:  maxTokens,
		timeout:    timeout,
		logger:     logger,
	}
}

// Check returns the fact-consistency factor. With no similar articles there is
// nothing to compare and 50 is returned without a remote call. Any provider or
// parse failure also yields 50 with Fallback set.
func (c *FactChecker) Check(ctx context.Context, target *models.ArticleMetadata, similar []*models.ArticleMetadata) FactorResult {
	if len(similar) == 0 {
		return FactorResult{Value: NeutralScore}
	}
	if c.llmService == nil {
		return c.fallback(target.ID, "completion provider not configured", nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.llmService.Chat(callCtx, []interfaces.Message{
		{Role: "user", Content: buildFactCheckPrompt(target, similar)},
	}, interfaces.ChatOptions{MaxTokens: c.maxTokens, JSON: true})
	if err != nil {
		return c.fallback(target.ID, "completion call failed", err)
	}

	var payload factCheckPayload
	if err := llm.ParseJSON(result.Text, &payload); err != nil {
		return c.fallback(target.ID, "unparseable response", err)
	}
	if err := common.Validate(&payload); err != nil {
		return c.fallback(target.ID, "out-of-range response", err)
	}
	if payload.ConsistencyScore == nil {
		return c.fallback(target.ID, "response missing consistency_score", nil)
	}

	c.logger.Debug().
		Str("article_id", target.ID).
		Float64("consistency_score", *payload.ConsistencyScore).
		Int("conflicting_facts", len(payload.ConflictingFacts)).
		Msg("Fact consistency checked")

	return FactorResult{Value: *payload.ConsistencyScore}
}

func (c *FactChecker) fallback(articleID, reason string, err error) FactorResult {
	if err != nil {
		c.logger.Warn().Err(err).Str("article_id", articleID).Str("reason", reason).Msg("Fact consistency fell back to neutral score")
	} else {
		c.logger.Warn().Str("article_id", articleID).Str("reason", reason).Msg("Fact consistency fell back to neutral score")
	}

	return FactorResult{Value: NeutralScore, Fallback: true, Reason: reason}
}

func buildFactCheckPrompt(target *models.ArticleMetadata, similar []*models.ArticleMetadata) string {
	var b strings.Builder

	b.WriteString("Analyze the consistency of key facts across these news articles covering the same story.\n\n")
	b.WriteString("Main Article:\n")
	fmt.Fprintf(&b, "Title: %s\n", target.Title)
	fmt.Fprintf(&b, "Source: %s\n", target.SourceName)
	fmt.Fprintf(&b, "Content: %s\n\n", models.Truncate(target.Content, factCheckTargetChars))
	b.WriteString("Similar Articles:\n")

	for i, a := range similar {
		if i == factCheckMaxSimilar {
			break
		}
		fmt.Fprintf(&b, "\nArticle %d:\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "Source: %s\n", a.SourceName)
		fmt.Fprintf(&b, "Content: %s\n", models.Truncate(a.Content, factCheckSimilarChars))
	}

	b.WriteString(`

Extract key facts (names, dates, numbers, events) from each article and compare:
1. Are the core facts consistent across articles?
2. Are there any conflicting claims?
3. What is the consistency score?

Return JSON:
{
    "key_facts": ["fact1", "fact2", ...],
    "consistent_facts": ["fact1", ...],
    "conflicting_facts": ["fact2", ...],
    "consistency_score": 0-100,
    "explanation": "brief explanation"
}
`)
	return b.String()
}
