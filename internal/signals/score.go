package signals

import (
	"fmt"
	"math"

	"github.com/spacesedan/coinsignal/internal/models"
)

// Weights for the per-post sentiment score.
const (
	compoundWeight  = 0.5
	polarityWeight  = 0.3
	directionWeight = 0.2
)

// SentimentScore collapses VADER-style polarity scores into a single
// weighted value in [-1,1]. The direction term treats a compound of
// exactly 0 as bearish: compound > 0 maps to +1, everything else to -1.
func SentimentScore(s models.PostSentiment) (float64, error) {
	if !isFinite(s.Compound) || !isFinite(s.Positive) || !isFinite(s.Negative) {
		return 0, fmt.Errorf("non-finite sentiment input: %+v", s)
	}

	direction := -1.0
	if s.Compound > 0 {
		direction = 1.0
	}

	weighted := s.Compound*compoundWeight +
		(s.Positive-s.Negative)*polarityWeight +
		direction*directionWeight

	return clamp(weighted, -1.0, 1.0), nil
}

// EngagementImpact maps a raw engagement score onto [0,1] using log
// compression, so a handful of viral posts cannot dominate the signal.
// The value reaches 1.0 exactly when engagement equals minEngagement.
func EngagementImpact(engagement, minEngagement float64) (float64, error) {
	if minEngagement <= 0 {
		return 0, fmt.Errorf("min engagement must be positive, got %v", minEngagement)
	}
	if !isFinite(engagement) {
		return 0, fmt.Errorf("non-finite engagement score: %v", engagement)
	}

	normalized := math.Log1p(math.Max(0, engagement)) / math.Log1p(minEngagement)
	return math.Min(1.0, normalized), nil
}

// MentionConfidence maps a mention count onto [0,1] with the same log
// compression; minMentions mentions yield full confidence.
func MentionConfidence(mentionCount, minMentions int) (float64, error) {
	if minMentions <= 0 {
		return 0, fmt.Errorf("min mentions must be positive, got %d", minMentions)
	}
	if mentionCount < 0 {
		return 0, fmt.Errorf("negative mention count: %d", mentionCount)
	}

	confidence := math.Log1p(float64(mentionCount)) / math.Log1p(float64(minMentions))
	return clamp(confidence, 0.0, 1.0), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
