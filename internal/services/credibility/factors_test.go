package credibility

import (
	"math"
	"testing"

	"github.com/ternarybob/credence/internal/models"
)

func TestCrossCoverageScore(t *testing.T) {
	tests := []struct {
		similar int
		want    float64
	}{
		{0, 40},
		{1, 60},
		{2, 75},
		{3, 85},
		{4, 87},
		{5, 89},
		{7, 93},
		{8, 95},
		{9, 95},
		{50, 95},
	}

	for _, tt := range tests {
		if got := CrossCoverageScore(tt.similar); got != tt.want {
			t.Errorf("CrossCoverageScore(%d) = %v, want %v", tt.similar, got, tt.want)
		}
	}
}

func article(sourceType, bias string, credibility float64) *models.ArticleMetadata {
	return &models.ArticleMetadata{SourceType: sourceType, SourceBias: bias, SourceCredibility: credibility}
}

func TestSourceDiversityScore(t *testing.T) {
	tests := []struct {
		name    string
		target  *models.ArticleMetadata
		similar []*models.ArticleMetadata
		want    float64
	}{
		{
			name:   "single source without bias",
			target: article("mainstream", "", 80),
			want:   40, // 33.33*0.6 + 50*0.4
		},
		{
			name:   "single source with bias",
			target: article("mainstream", "left", 80),
			want:   30, // 33.33*0.6 + 25*0.4
		},
		{
			name:   "three types, four biases",
			target: article("mainstream", "left", 80),
			similar: []*models.ArticleMetadata{
				article("independent", "right", 70),
				article("international", "center", 70),
				article("mainstream", "neutral", 70),
			},
			want: 100,
		},
		{
			name:   "two types, no biases",
			target: article("mainstream", "", 80),
			similar: []*models.ArticleMetadata{
				article("independent", "", 70),
				article("independent", "", 70),
			},
			want: 60, // 66.67*0.6 + 50*0.4
		},
		{
			name:   "open-set types clamp at 100",
			target: article("mainstream", "left", 80),
			similar: []*models.ArticleMetadata{
				article("independent", "right", 70),
				article("international", "center", 70),
				article("blog", "neutral", 70),
				article("wire", "", 70),
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SourceDiversityScore(tt.target, tt.similar)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SourceDiversityScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSourceReputationScore(t *testing.T) {
	tests := []struct {
		name    string
		target  *models.ArticleMetadata
		similar []*models.ArticleMetadata
		want    float64
	}{
		{"empty union", nil, nil, 50},
		{"target only", article("mainstream", "", 72), nil, 72},
		{"mean across union", article("mainstream", "", 90), []*models.ArticleMetadata{article("independent", "", 60), article("independent", "", 30)}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceReputationScore(tt.target, tt.similar); got != tt.want {
				t.Errorf("SourceReputationScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampFloat64(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{-5, 0, 100, 0},
		{50, 0, 100, 50},
		{150, 0, 100, 100},
	}

	for _, tt := range tests {
		if got := ClampFloat64(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("ClampFloat64(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}
