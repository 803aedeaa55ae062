package credibility

import (
	"github.com/ternarybob/credence/internal/models"
)

// Diversity normalisation: the number of canonical source types and bias labels
const (
	canonicalSourceTypes = 3.0
	canonicalBiasLabels  = 4.0
	typeDiversityWeight  = 0.6
	biasDiversityWeight  = 0.4
)

// CrossCoverageScore maps the number of covering sources (similar + 1) to a score:
// 1 -> 40, 2 -> 60, 3 -> 75, 4 -> 85, n >= 5 -> min(95, 85 + (n-4)*2).
func CrossCoverageScore(similarCount int) float64 {
	sources := similarCount + 1
	switch {
	case sources <= 1:
		return 40
	case sources == 2:
		return 60
	case sources == 3:
		return 75
	case sources == 4:
		return 85
	default:
		return ClampFloat64(85+float64(sources-4)*2, 0, 95)
	}
}

// SourceDiversityScore blends distinct source types (60%) with distinct bias
// labels (40%) across the target and its similar articles. With no bias labels
// the bias component is 50. Open-set source types can push the raw blend past
// 100, so the result is clamped.
func SourceDiversityScore(target *models.ArticleMetadata, similar []*models.ArticleMetadata) float64 {
	types := make(map[string]struct{})
	biases := make(map[string]struct{})
	for _, a := range union(target, similar) {
		types[a.SourceType] = struct{}{}
		if a.SourceBias != "" {
			biases[a.SourceBias] = struct{}{}
		}
	}

	typeDiversity := float64(len(types)) / canonicalSourceTypes * 100

	biasDiversity := NeutralScore
	if len(biases) > 0 {
		biasDiversity = float64(len(biases)) / canonicalBiasLabels * 100
	}

	return ClampFloat64(typeDiversity*typeDiversityWeight+biasDiversity*biasDiversityWeight, 0, 100)
}

// SourceReputationScore is the mean source credibility across the target and
// its similar articles, or 50 when there are none.
func SourceReputationScore(target *models.ArticleMetadata, similar []*models.ArticleMetadata) float64 {
	all := union(target, similar)
	if len(all) == 0 {
		return NeutralScore
	}

	sum := 0.0
	for _, a := range all {
		sum += a.SourceCredibility
	}
	return sum / float64(len(all))
}

func union(target *models.ArticleMetadata, similar []*models.ArticleMetadata) []*models.ArticleMetadata {
	all := make([]*models.ArticleMetadata, 0, len(similar)+1)
	if target != nil {
		all = append(all, target)
	}
	for _, a := range similar {
		if a != nil {
			all = append(all, a)
		}
	}
	return all
}

// ClampFloat64 restricts value to [min, max]
func ClampFloat64(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
