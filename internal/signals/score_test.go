package signals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/coinsignal/internal/models"
)

func TestSentimentScore(t *testing.T) {
	t.Run("extreme positive input hits the upper bound", func(t *testing.T) {
		score, err := SentimentScore(models.PostSentiment{Compound: 1.0, Positive: 1.0, Negative: 0.0})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("extreme negative input hits the lower bound", func(t *testing.T) {
		score, err := SentimentScore(models.PostSentiment{Compound: -1.0, Positive: 0.0, Negative: 1.0})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, score, 1e-9)
	})

	t.Run("out of range components are clamped", func(t *testing.T) {
		score, err := SentimentScore(models.PostSentiment{Compound: 1.0, Positive: 2.0, Negative: 0.0})
		require.NoError(t, err)
		assert.Equal(t, 1.0, score)
	})

	t.Run("zero compound counts as bearish direction", func(t *testing.T) {
		score, err := SentimentScore(models.PostSentiment{Compound: 0.0, Positive: 0.0, Negative: 0.0, Neutral: 1.0})
		require.NoError(t, err)
		assert.InDelta(t, -0.2, score, 1e-9)
	})

	t.Run("weighted combination", func(t *testing.T) {
		score, err := SentimentScore(models.PostSentiment{Compound: 0.8, Positive: 0.6, Negative: 0.1})
		require.NoError(t, err)
		// 0.8*0.5 + 0.5*0.3 + 0.2
		assert.InDelta(t, 0.75, score, 1e-9)
	})

	t.Run("non-finite input is an error", func(t *testing.T) {
		_, err := SentimentScore(models.PostSentiment{Compound: math.NaN()})
		assert.Error(t, err)

		_, err = SentimentScore(models.PostSentiment{Compound: 0.5, Positive: math.Inf(1)})
		assert.Error(t, err)
	})
}

func TestEngagementImpact(t *testing.T) {
	t.Run("zero engagement maps to zero", func(t *testing.T) {
		impact, err := EngagementImpact(0, 100.0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, impact)
	})

	t.Run("minimum engagement maps to exactly one", func(t *testing.T) {
		impact, err := EngagementImpact(100.0, 100.0)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, impact, 1e-9)
	})

	t.Run("viral engagement is capped at one", func(t *testing.T) {
		impact, err := EngagementImpact(1e9, 100.0)
		require.NoError(t, err)
		assert.Equal(t, 1.0, impact)
	})

	t.Run("negative engagement is treated as zero", func(t *testing.T) {
		impact, err := EngagementImpact(-50.0, 100.0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, impact)
	})

	t.Run("monotonic below the cap", func(t *testing.T) {
		prev := -1.0
		for _, engagement := range []float64{0, 1, 5, 20, 50, 99} {
			impact, err := EngagementImpact(engagement, 100.0)
			require.NoError(t, err)
			assert.Greater(t, impact, prev, "engagement %v", engagement)
			prev = impact
		}
	})

	t.Run("invalid minimum is an error", func(t *testing.T) {
		_, err := EngagementImpact(10.0, 0)
		assert.Error(t, err)
	})

	t.Run("non-finite engagement is an error", func(t *testing.T) {
		_, err := EngagementImpact(math.Inf(1), 100.0)
		assert.Error(t, err)
	})
}

func TestMentionConfidence(t *testing.T) {
	t.Run("zero mentions mean zero confidence", func(t *testing.T) {
		confidence, err := MentionConfidence(0, 5)
		require.NoError(t, err)
		assert.Equal(t, 0.0, confidence)
	})

	t.Run("minimum mentions mean full confidence", func(t *testing.T) {
		confidence, err := MentionConfidence(5, 5)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, confidence, 1e-9)
	})

	t.Run("heavy mention counts are capped at one", func(t *testing.T) {
		confidence, err := MentionConfidence(100, 5)
		require.NoError(t, err)
		assert.Equal(t, 1.0, confidence)
	})

	t.Run("monotonic below the cap", func(t *testing.T) {
		prev := -1.0
		for mentions := 0; mentions <= 5; mentions++ {
			confidence, err := MentionConfidence(mentions, 5)
			require.NoError(t, err)
			assert.Greater(t, confidence, prev, "mentions %d", mentions)
			prev = confidence
		}
	})

	t.Run("negative mention count is an error", func(t *testing.T) {
		_, err := MentionConfidence(-1, 5)
		assert.Error(t, err)
	})

	t.Run("invalid minimum is an error", func(t *testing.T) {
		_, err := MentionConfidence(3, 0)
		assert.Error(t, err)
	})
}
