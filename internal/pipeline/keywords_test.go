package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordSetDefaults(t *testing.T) {
	ks := NewKeywordSet()

	assert.Contains(t, ks.Keywords(), "btc")
	assert.Contains(t, ks.Keywords(), "defi")
	assert.Len(t, ks.Keywords(), 10)
}

func TestKeywordSetDetect(t *testing.T) {
	ks := NewKeywordSet()

	t.Run("matching is case-insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"btc", "bitcoin"}, ks.Detect("BTC is pumping! #Bitcoin"))
	})

	t.Run("substring matches count", func(t *testing.T) {
		// "altcoins" contains "altcoin"
		assert.Equal(t, []string{"altcoin"}, ks.Detect("altcoins are lagging"))
	})

	t.Run("one post can match many keywords", func(t *testing.T) {
		matched := ks.Detect("eth and btc lead the crypto market")
		assert.Equal(t, []string{"btc", "eth", "crypto"}, matched)
	})

	t.Run("no match yields nil", func(t *testing.T) {
		assert.Nil(t, ks.Detect("the weather is nice today"))
	})
}

func TestKeywordSetAdd(t *testing.T) {
	ks := NewKeywordSet("btc")

	ks.Add("SOL", " sol ", "", "ada")

	assert.Equal(t, []string{"btc", "sol", "ada"}, ks.Keywords())
	assert.Equal(t, []string{"sol"}, ks.Detect("buying $SOL today"))
}
