package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/coinsignal/internal/models"
)

func scoredPost(compound float64, engagement float64, symbols ...string) models.ScoredPost {
	return models.ScoredPost{
		Sentiment:       models.PostSentiment{Compound: compound},
		AssetSymbols:    symbols,
		EngagementScore: engagement,
	}
}

func TestAggregatorAdd(t *testing.T) {
	a := New()
	a.Add(scoredPost(0.5, 10, "btc"))
	a.Add(scoredPost(-0.1, 20, "btc", "eth"))
	a.Add(scoredPost(0.2, 5))

	result := a.Finalize()

	assert.Equal(t, 3, result.TotalPosts)
	assert.InDelta(t, 0.2, result.AverageSentiment, 1e-9)

	btc := result.Assets["btc"]
	assert.Equal(t, 2, btc.Mentions)
	assert.InDelta(t, 0.2, btc.AvgSentiment, 1e-9)
	assert.InDelta(t, 30, btc.TotalEngagement, 1e-9)

	eth := result.Assets["eth"]
	assert.Equal(t, 1, eth.Mentions)
	assert.InDelta(t, -0.1, eth.AvgSentiment, 1e-9)
	assert.InDelta(t, 20, eth.TotalEngagement, 1e-9)

	// The post with no symbols moved the batch totals but created no asset.
	assert.Len(t, result.Assets, 2)
	assert.Equal(t, []string{"btc", "eth"}, result.Symbols)
}

func TestAggregatorMerge(t *testing.T) {
	left := New()
	left.Add(scoredPost(0.4, 10, "btc"))
	left.Add(scoredPost(0.6, 15, "eth"))

	right := New()
	right.Add(scoredPost(-0.2, 5, "eth", "doge"))

	left.Merge(right)
	result := left.Finalize()

	assert.Equal(t, 3, result.TotalPosts)
	assert.InDelta(t, (0.4+0.6-0.2)/3, result.AverageSentiment, 1e-9)

	eth := result.Assets["eth"]
	assert.Equal(t, 2, eth.Mentions)
	assert.InDelta(t, 0.2, eth.AvgSentiment, 1e-9)
	assert.InDelta(t, 20, eth.TotalEngagement, 1e-9)

	// New symbols from the merged side go after our own, keeping a
	// deterministic order across repeated merges.
	assert.Equal(t, []string{"btc", "eth", "doge"}, result.Symbols)
}

func TestAggregatorEmptyBatch(t *testing.T) {
	result := New().Finalize()

	assert.Equal(t, 0, result.TotalPosts)
	assert.Equal(t, 0.0, result.AverageSentiment)
	assert.Empty(t, result.Assets)
	assert.Empty(t, result.Symbols)
}

func TestAggregatorNeverEmitsZeroMentionAssets(t *testing.T) {
	a := New()
	a.Add(scoredPost(0.3, 10, "btc"))

	result := a.Finalize()
	require.Contains(t, result.Assets, "btc")
	for symbol, data := range result.Assets {
		assert.Greater(t, data.Mentions, 0, "asset %s", symbol)
	}
}
