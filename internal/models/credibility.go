package models

// VerificationStatus is the categorical band derived from a credibility score
type VerificationStatus string

const (
	StatusVerified     VerificationStatus = "verified"
	StatusCredible     VerificationStatus = "credible"
	StatusUnverified   VerificationStatus = "unverified"
	StatusQuestionable VerificationStatus = "questionable"
)

// Factor names used as keys of CredibilityScore.Factors
const (
	FactorCrossCoverage    = "cross_coverage"
	FactorSourceDiversity  = "source_diversity"
	FactorSourceReputation = "source_reputation"
	FactorFactConsistency  = "fact_consistency"
	FactorAIVerification   = "ai_verification"
)

// CredibilityScore is the result of scoring one article
type CredibilityScore struct {
	ArticleID          string             `json:"article_id" yaml:"article_id"`
	Score              float64            `json:"score" yaml:"score"`
	Confidence         float64            `json:"confidence" yaml:"confidence"`
	Factors            map[string]float64 `json:"factors" yaml:"factors"`
	SimilarArticles    []string           `json:"similar_articles" yaml:"similar_articles"`
	SourceCount        int                `json:"source_count" yaml:"source_count"`
	SourceDiversity    float64            `json:"source_diversity" yaml:"source_diversity"`
	FactConsistency    float64            `json:"fact_consistency" yaml:"fact_consistency"`
	VerificationStatus VerificationStatus `json:"verification_status" yaml:"verification_status"`
	Explanation        string             `json:"explanation" yaml:"explanation"`

	// Flags and Strengths are reported by the AI verifier
	Flags     []string `json:"flags" yaml:"flags"`
	Strengths []string `json:"strengths" yaml:"strengths"`

	// Fallbacks names the factors that fell back to neutral defaults and why
	Fallbacks map[string]string `json:"fallbacks,omitempty" yaml:"fallbacks,omitempty"`
}

// Badge is the display tier for a score
type Badge struct {
	Color       string `json:"color" yaml:"color"`
	Text        string `json:"text" yaml:"text"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
}

// BatchScoreResult holds the successful scores of a batch and the failure count
type BatchScoreResult struct {
	Scores    []*CredibilityScore `json:"scores" yaml:"scores"`
	Processed int                 `json:"processed" yaml:"processed"`
	Failed    int                 `json:"failed" yaml:"failed"`
	Errors    map[string]string   `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// CalculateCredibilityRequest scores one article against related coverage
type CalculateCredibilityRequest struct {
	Article         *ArticleMetadata   `json:"article" yaml:"article" validate:"required"`
	RelatedArticles []*ArticleMetadata `json:"related_articles" yaml:"related_articles"`
}

// BatchCredibilityRequest scores every article against the rest of the set
type BatchCredibilityRequest struct {
	Articles []*ArticleMetadata `json:"articles" yaml:"articles" validate:"required,min=1"`
}

// CredibilityResponse is a score with its badge tier flattened in
type CredibilityResponse struct {
	CredibilityScore `yaml:",inline"`
	BadgeColor        string `json:"badge_color" yaml:"badge_color"`
	BadgeText         string `json:"badge_text" yaml:"badge_text"`
}

// NewCredibilityResponse attaches a badge to a score
func NewCredibilityResponse(score *CredibilityScore, badge Badge) CredibilityResponse {
	return CredibilityResponse{
		CredibilityScore: *score,
		BadgeColor:       badge.Color,
		BadgeText:        badge.Text,
	}
}

// BatchCredibilityResponse is the batch result with badges attached
type BatchCredibilityResponse struct {
	Scores    []CredibilityResponse `json:"scores" yaml:"scores"`
	Processed int                   `json:"processed" yaml:"processed"`
	Failed    int                   `json:"failed" yaml:"failed"`
	Errors    map[string]string     `json:"errors,omitempty" yaml:"errors,omitempty"`
}
