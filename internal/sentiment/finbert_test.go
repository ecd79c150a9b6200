package sentiment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	t.Run("short text is untouched", func(t *testing.T) {
		assert.Equal(t, "btc rally", truncateRunes("btc rally", maxTextLength))
	})

	t.Run("ascii text is capped at max", func(t *testing.T) {
		long := strings.Repeat("a", maxTextLength+50)
		assert.Len(t, truncateRunes(long, maxTextLength), maxTextLength)
	})

	t.Run("multi-byte text stays valid utf-8", func(t *testing.T) {
		long := strings.Repeat("é", maxTextLength+50)

		out := truncateRunes(long, maxTextLength)

		assert.True(t, utf8.ValidString(out))
		assert.Equal(t, maxTextLength, utf8.RuneCountInString(out))
	})
}

func TestDistributionFromLabel(t *testing.T) {
	t.Run("positive label", func(t *testing.T) {
		s := distributionFromLabel("positive", 0.8)
		assert.InDelta(t, 0.8, s.Positive, 1e-9)
		assert.InDelta(t, 0.1, s.Negative, 1e-9)
		assert.InDelta(t, 0.7, s.Compound, 1e-9)
	})

	t.Run("negative label", func(t *testing.T) {
		s := distributionFromLabel("negative", 0.6)
		assert.InDelta(t, 0.6, s.Negative, 1e-9)
		assert.InDelta(t, -0.4, s.Compound, 1e-9)
	})

	t.Run("neutral label keeps compound near zero", func(t *testing.T) {
		s := distributionFromLabel("neutral", 0.9)
		assert.InDelta(t, 0.9, s.Neutral, 1e-9)
		assert.InDelta(t, 0.0, s.Compound, 1e-9)
	})
}
