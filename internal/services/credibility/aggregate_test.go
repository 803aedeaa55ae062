package credibility

import (
	"math"
	"testing"

	"github.com/ternarybob/credence/internal/models"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := WeightCrossCoverage + WeightSourceDiversity + WeightSourceReputation + WeightFactConsistency + WeightAIVerification
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum = %v, want 1", sum)
	}
}

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		name    string
		factors Factors
		want    float64
	}{
		{
			name:    "single source neutral",
			factors: Factors{CrossCoverage: 40, SourceDiversity: 40, SourceReputation: 80, FactConsistency: 50, AIVerification: 50},
			want:    51,
		},
		{
			name:    "all maximum",
			factors: Factors{CrossCoverage: 100, SourceDiversity: 100, SourceReputation: 100, FactConsistency: 100, AIVerification: 100},
			want:    100,
		},
		{
			name:    "all zero",
			factors: Factors{},
			want:    0,
		},
		{
			name:    "rounded to one decimal",
			factors: Factors{CrossCoverage: 75, SourceDiversity: 63.333333, SourceReputation: 71.5, FactConsistency: 82, AIVerification: 77},
			want:    73.3, // 22.5 + 12.6667 + 14.3 + 12.3 + 11.55 = 73.3167
		},
		{
			name:    "out of range inputs clamp",
			factors: Factors{CrossCoverage: 500, SourceDiversity: 500, SourceReputation: 500, FactConsistency: 500, AIVerification: 500},
			want:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightedScore(tt.factors); got != tt.want {
				t.Errorf("WeightedScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{72.25, 72.3},
		{72.24, 72.2},
		{0.05, 0.1},
		{99.99, 100},
	}

	for _, tt := range tests {
		if got := RoundScore(tt.in); got != tt.want {
			t.Errorf("RoundScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// The status is assigned from the rounded score, so a raw sum just under a
// threshold that rounds onto it takes the higher band.
func TestStatusFollowsRoundedScore(t *testing.T) {
	if got := DetermineStatus(RoundScore(89.95)); got != models.StatusVerified {
		t.Errorf("DetermineStatus(RoundScore(89.95)) = %v, want %v", got, models.StatusVerified)
	}
	if got := DetermineStatus(RoundScore(89.94)); got != models.StatusCredible {
		t.Errorf("DetermineStatus(RoundScore(89.94)) = %v, want %v", got, models.StatusCredible)
	}

	f := Factors{CrossCoverage: 89.96, SourceDiversity: 89.96, SourceReputation: 89.96, FactConsistency: 89.96, AIVerification: 89.96}
	result := Aggregate("a", f, nil, VerificationResult{})
	if result.Score != 90 {
		t.Errorf("Score = %v, want 90", result.Score)
	}
	if result.VerificationStatus != models.StatusVerified {
		t.Errorf("VerificationStatus = %v, want %v", result.VerificationStatus, models.StatusVerified)
	}
}

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		score float64
		want  models.VerificationStatus
	}{
		{100, models.StatusVerified},
		{90, models.StatusVerified},
		{89.9, models.StatusCredible},
		{70, models.StatusCredible},
		{69.9, models.StatusUnverified},
		{50, models.StatusUnverified},
		{49.9, models.StatusQuestionable},
		{0, models.StatusQuestionable},
	}

	for _, tt := range tests {
		if got := DetermineStatus(tt.score); got != tt.want {
			t.Errorf("DetermineStatus(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestGenerateExplanation(t *testing.T) {
	tests := []struct {
		name    string
		factors Factors
		similar int
		want    string
	}{
		{
			name:    "single source",
			factors: Factors{SourceDiversity: 40, SourceReputation: 80, FactConsistency: 50},
			similar: 0,
			want:    "Single source - no cross-verification available • limited source diversity • reputable sources",
		},
		{
			name:    "two sources",
			factors: Factors{SourceDiversity: 60, SourceReputation: 65, FactConsistency: 85},
			similar: 1,
			want:    "Covered by 2 sources • moderate source diversity • moderately reputable sources • facts consistent across sources",
		},
		{
			name:    "many sources with inconsistencies",
			factors: Factors{SourceDiversity: 80, SourceReputation: 40, FactConsistency: 30},
			similar: 4,
			want:    "Covered by 5 sources • diverse source types • some fact inconsistencies",
		},
		{
			name:    "mostly consistent",
			factors: Factors{SourceDiversity: 59.9, SourceReputation: 59.9, FactConsistency: 60},
			similar: 2,
			want:    "Covered by 3 sources • limited source diversity • mostly consistent facts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateExplanation(tt.factors, tt.similar); got != tt.want {
				t.Errorf("GenerateExplanation() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	similar := []*models.ArticleMetadata{{ID: "b"}, {ID: "c"}}
	factors := Factors{CrossCoverage: 75, SourceDiversity: 60, SourceReputation: 80, FactConsistency: 90, AIVerification: 70}
	verification := VerificationResult{Score: 70, Confidence: 0.85, Flags: []string{"opinionated"}}

	result := Aggregate("a", factors, similar, verification)

	if result.ArticleID != "a" {
		t.Errorf("ArticleID = %q, want a", result.ArticleID)
	}
	if result.Score != 74.5 { // 22.5 + 12 + 16 + 13.5 + 10.5
		t.Errorf("Score = %v, want 74.5", result.Score)
	}
	if result.VerificationStatus != models.StatusCredible {
		t.Errorf("VerificationStatus = %v, want credible", result.VerificationStatus)
	}
	if result.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want verifier confidence 0.85", result.Confidence)
	}
	if result.SourceCount != 3 {
		t.Errorf("SourceCount = %d, want 3", result.SourceCount)
	}
	if len(result.SimilarArticles) != 2 || result.SimilarArticles[0] != "b" || result.SimilarArticles[1] != "c" {
		t.Errorf("SimilarArticles = %v, want [b c]", result.SimilarArticles)
	}
	if len(result.Factors) != 5 {
		t.Errorf("Factors has %d entries, want 5", len(result.Factors))
	}
	if result.Strengths == nil {
		t.Error("Strengths should be an empty list, not nil")
	}
}
