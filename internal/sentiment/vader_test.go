package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaderAnalyzer(t *testing.T) {
	v := NewVaderAnalyzer()

	t.Run("positive text scores positive", func(t *testing.T) {
		scores, err := v.Analyze("This project is amazing, great work!")
		require.NoError(t, err)
		assert.Greater(t, scores.Compound, 0.0)
		assert.Greater(t, scores.Positive, scores.Negative)
	})

	t.Run("negative text scores negative", func(t *testing.T) {
		scores, err := v.Analyze("This is a terrible scam, awful project.")
		require.NoError(t, err)
		assert.Less(t, scores.Compound, 0.0)
		assert.Greater(t, scores.Negative, scores.Positive)
	})

	t.Run("empty text is fully neutral", func(t *testing.T) {
		scores, err := v.Analyze("")
		require.NoError(t, err)
		assert.Equal(t, 1.0, scores.Neutral)
		assert.Equal(t, 0.0, scores.Compound)
	})

	t.Run("link-only text is fully neutral", func(t *testing.T) {
		scores, err := v.Analyze("https://example.com/chart")
		require.NoError(t, err)
		assert.Equal(t, 1.0, scores.Neutral)
	})
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "positive", LabelFor(0.5))
	assert.Equal(t, "positive", LabelFor(0.05))
	assert.Equal(t, "neutral", LabelFor(0.0))
	assert.Equal(t, "negative", LabelFor(-0.05))
	assert.Equal(t, "negative", LabelFor(-0.5))
}
