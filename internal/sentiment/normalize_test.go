package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripLinks(t *testing.T) {
	t.Run("markdown links keep their text", func(t *testing.T) {
		assert.Equal(t, "read this", StripLinks("read [this](https://example.com/post)"))
	})

	t.Run("bare urls are removed", func(t *testing.T) {
		assert.Equal(t, "check  out", StripLinks("check https://example.com out"))
		assert.Equal(t, "see ", StripLinks("see www.example.com/page"))
	})
}

func TestNormalizeText(t *testing.T) {
	t.Run("markdown formatting is flattened", func(t *testing.T) {
		assert.Equal(t, "bold and italic", NormalizeText("**bold** and *italic*"))
	})

	t.Run("whitespace is collapsed", func(t *testing.T) {
		assert.Equal(t, "eth is mooning", NormalizeText("eth   is\n\n mooning"))
	})

	t.Run("links disappear from prose", func(t *testing.T) {
		out := NormalizeText("btc analysis [thread](https://example.com/t) and https://example.com/more")
		assert.NotContains(t, out, "example.com")
		assert.Contains(t, out, "thread")
	})
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("BTC  Is Pumping"), cacheKey("btc is\tpumping"))
	assert.NotEqual(t, cacheKey("btc up"), cacheKey("btc down"))
}
