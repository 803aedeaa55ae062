// Package credibility scores news articles by cross-source evidence: semantic
// clustering of related coverage, source diversity and reputation, AI fact
// consistency and AI verification.
package credibility

import "time"

// Clustering parameters
const (
	SimilarityThreshold = 0.75
	TimeWindow          = 72 * time.Hour
	EmbeddingDimension  = 1536
)

// Prompt content limits in characters
const (
	factCheckTargetChars  = 1000
	factCheckSimilarChars = 800
	factCheckMaxSimilar   = 3
	verifierContentChars  = 1500
)

// Neutral values used when evidence is missing or a remote call fails
const (
	NeutralScore               = 50.0
	VerifierDefaultConfidence  = 0.5
	VerifierFallbackConfidence = 0.3
)

// FactorResult is a factor value computed at a remote-call boundary.
// Fallback is set when Value is a neutral default rather than a model answer.
type FactorResult struct {
	Value    float64
	Fallback bool
	Reason   string
}

// VerificationResult is the AI verifier's assessment of one article
type VerificationResult struct {
	Score       float64
	Confidence  float64
	Flags       []string
	Strengths   []string
	Explanation string
	Fallback    bool
	Reason      string
}

// fallbackVerification is returned whenever the verifier cannot produce an answer
func fallbackVerification(reason string) VerificationResult {
	return VerificationResult{
		Score:      NeutralScore,
		Confidence: VerifierFallbackConfidence,
		Flags:      []string{},
		Strengths:  []string{},
		Fallback:   true,
		Reason:     reason,
	}
}
