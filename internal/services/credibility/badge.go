package credibility

import (
	"github.com/ternarybob/credence/internal/models"
)

var (
	badgeVerified = models.Badge{
		Color:       "green",
		Text:        "Verified",
		Icon:        "✓",
		Description: "Highly credible - verified by multiple sources",
	}
	badgeCredible = models.Badge{
		Color:       "blue",
		Text:        "Credible",
		Icon:        "✓",
		Description: "Credible - covered by reputable sources",
	}
	badgeUnverified = models.Badge{
		Color:       "yellow",
		Text:        "Unverified",
		Icon:        "!",
		Description: "Unverified - limited cross-verification",
	}
	badgeQuestionable = models.Badge{
		Color:       "red",
		Text:        "Questionable",
		Icon:        "⚠",
		Description: "Questionable - verify before sharing",
	}
)

// GetBadge maps a score to its display badge using the status bands
func GetBadge(score float64) models.Badge {
	switch DetermineStatus(score) {
	case models.StatusVerified:
		return badgeVerified
	case models.StatusCredible:
		return badgeCredible
	case models.StatusUnverified:
		return badgeUnverified
	default:
		return badgeQuestionable
	}
}

// WithBadge attaches the badge tier to a score
func WithBadge(score *models.CredibilityScore) models.CredibilityResponse {
	return models.NewCredibilityResponse(score, GetBadge(score.Score))
}

// BatchWithBadges attaches badges to every score of a batch result
func BatchWithBadges(result *models.BatchScoreResult) *models.BatchCredibilityResponse {
	scores := make([]models.CredibilityResponse, 0, len(result.Scores))
	for _, s := range result.Scores {
		scores = append(scores, WithBadge(s))
	}
	return &models.BatchCredibilityResponse{
		Scores:    scores,
		Processed: result.Processed,
		Failed:    result.Failed,
		Errors:    result.Errors,
	}
}
