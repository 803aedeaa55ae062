package credibility

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ternarybob/credence/internal/models"
)

// Factor weights; they sum to 1
const (
	WeightCrossCoverage    = 0.30
	WeightSourceDiversity  = 0.20
	WeightSourceReputation = 0.20
	WeightFactConsistency  = 0.15
	WeightAIVerification   = 0.15
)

// Status thresholds
const (
	ThresholdVerified   = 90.0
	ThresholdCredible   = 70.0
	ThresholdUnverified = 50.0
)

// Explanation phrase thresholds
const (
	phraseHigh   = 80.0
	phraseMedium = 60.0
)

const explanationSeparator = " • "

// Factors holds the five factor values feeding the weighted score
type Factors struct {
	CrossCoverage    float64
	SourceDiversity  float64
	SourceReputation float64
	FactConsistency  float64
	AIVerification   float64
}

// Map returns the factors keyed by their wire names
func (f Factors) Map() map[string]float64 {
	return map[string]float64{
		models.FactorCrossCoverage:    f.CrossCoverage,
		models.FactorSourceDiversity:  f.SourceDiversity,
		models.FactorSourceReputation: f.SourceReputation,
		models.FactorFactConsistency:  f.FactConsistency,
		models.FactorAIVerification:   f.AIVerification,
	}
}

// WeightedScore applies the factor weights and rounds to one decimal.
// The result is kept within [0, 100].
func WeightedScore(f Factors) float64 {
	score := f.CrossCoverage*WeightCrossCoverage +
		f.SourceDiversity*WeightSourceDiversity +
		f.SourceReputation*WeightSourceReputation +
		f.FactConsistency*WeightFactConsistency +
		f.AIVerification*WeightAIVerification

	return RoundScore(ClampFloat64(score, 0, 100))
}

// RoundScore rounds to one decimal place, halves away from zero
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

// DetermineStatus assigns the verification band for a score
func DetermineStatus(score float64) models.VerificationStatus {
	if score >= ThresholdVerified {
		return models.StatusVerified
	}
	if score >= ThresholdCredible {
		return models.StatusCredible
	}
	if score >= ThresholdUnverified {
		return models.StatusUnverified
	}
	return models.StatusQuestionable
}

// GenerateExplanation renders the factor summary, for example
// "Covered by 3 sources • diverse source types • reputable sources".
func GenerateExplanation(f Factors, similarCount int) string {
	phrases := make([]string, 0, 4)

	switch {
	case similarCount == 0:
		phrases = append(phrases, "single source - no cross-verification available")
	case similarCount == 1:
		phrases = append(phrases, "covered by 2 sources")
	default:
		phrases = append(phrases, fmt.Sprintf("covered by %d sources", similarCount+1))
	}

	switch {
	case f.SourceDiversity >= phraseHigh:
		phrases = append(phrases, "diverse source types")
	case f.SourceDiversity >= phraseMedium:
		phrases = append(phrases, "moderate source diversity")
	default:
		phrases = append(phrases, "limited source diversity")
	}

	switch {
	case f.SourceReputation >= phraseHigh:
		phrases = append(phrases, "reputable sources")
	case f.SourceReputation >= phraseMedium:
		phrases = append(phrases, "moderately reputable sources")
	}

	switch {
	case f.FactConsistency >= phraseHigh:
		phrases = append(phrases, "facts consistent across sources")
	case f.FactConsistency >= phraseMedium:
		phrases = append(phrases, "mostly consistent facts")
	case similarCount > 0:
		phrases = append(phrases, "some fact inconsistencies")
	}

	return capitalizeFirst(strings.Join(phrases, explanationSeparator))
}

// capitalizeFirst upper-cases the first rune and leaves the rest untouched
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
