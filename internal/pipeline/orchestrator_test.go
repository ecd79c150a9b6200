package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/coinsignal/internal/models"
	"github.com/spacesedan/coinsignal/internal/signals"
)

// stubAnalyzer maps fixed texts to fixed scores so runs are fully
// deterministic.
type stubAnalyzer struct {
	scores map[string]models.PostSentiment
	err    error
}

func (s *stubAnalyzer) Analyze(text string) (models.PostSentiment, error) {
	if s.err != nil {
		return models.PostSentiment{}, s.err
	}
	if scores, ok := s.scores[text]; ok {
		return scores, nil
	}
	return models.PostSentiment{Neutral: 1.0}, nil
}

func newTestOrchestrator(analyzer *stubAnalyzer, workers int) *Orchestrator {
	return NewOrchestrator(
		analyzer,
		NewKeywordSet(),
		signals.NewGenerator(signals.DefaultThresholds()),
		workers,
	)
}

func bullishCorpus() ([]models.RawPost, *stubAnalyzer) {
	analyzer := &stubAnalyzer{scores: map[string]models.PostSentiment{}}

	var posts []models.RawPost
	for i := 0; i < 6; i++ {
		text := fmt.Sprintf("btc looking strong today %d", i)
		analyzer.scores[text] = models.PostSentiment{Compound: 0.8, Positive: 0.8, Neutral: 0.2}
		posts = append(posts, models.RawPost{
			PostID:    fmt.Sprintf("p%d", i),
			Source:    "twitter",
			Text:      text,
			Favorites: 100,
			Retweets:  100,
		})
	}
	return posts, analyzer
}

func TestScorePost(t *testing.T) {
	t.Run("attaches sentiment, assets and engagement", func(t *testing.T) {
		analyzer := &stubAnalyzer{scores: map[string]models.PostSentiment{
			"eth is mooning": {Compound: 0.7, Positive: 0.7, Neutral: 0.3},
		}}
		o := newTestOrchestrator(analyzer, 1)

		scored := o.ScorePost(models.RawPost{PostID: "1", Text: "eth is mooning", Favorites: 9, Retweets: 3})

		assert.InDelta(t, 0.7, scored.Sentiment.Compound, 1e-9)
		assert.Equal(t, []string{"eth"}, scored.AssetSymbols)
		assert.InDelta(t, 5.0, scored.EngagementScore, 1e-9)
	})

	t.Run("analyzer failure degrades to neutral and keeps the post", func(t *testing.T) {
		o := newTestOrchestrator(&stubAnalyzer{err: errors.New("model unavailable")}, 1)

		scored := o.ScorePost(models.RawPost{PostID: "1", Text: "btc crashing"})

		assert.Equal(t, models.PostSentiment{}, scored.Sentiment)
		assert.Equal(t, []string{"btc"}, scored.AssetSymbols)
	})
}

func TestRunScenarios(t *testing.T) {
	t.Run("bullish corpus produces a strong buy", func(t *testing.T) {
		posts, analyzer := bullishCorpus()
		o := newTestOrchestrator(analyzer, 2)

		snapshot, err := o.Run(context.Background(), posts)
		require.NoError(t, err)

		assert.Equal(t, 6, snapshot.TotalTweets)
		assert.InDelta(t, 0.8, snapshot.AverageSentiment, 1e-9)

		require.Len(t, snapshot.TradingSignals, 1)
		signal := snapshot.TradingSignals[0]
		assert.Equal(t, "btc", signal.Coin)
		assert.Equal(t, models.SignalStrongBuy, signal.SignalType)
	})

	t.Run("assets under the mention minimum are excluded from signals", func(t *testing.T) {
		analyzer := &stubAnalyzer{scores: map[string]models.PostSentiment{}}
		var posts []models.RawPost
		for i := 0; i < 3; i++ {
			text := fmt.Sprintf("nft flip of the day %d", i)
			analyzer.scores[text] = models.PostSentiment{Compound: 0.9, Positive: 0.9}
			posts = append(posts, models.RawPost{PostID: fmt.Sprintf("n%d", i), Text: text, Favorites: 500})
		}
		o := newTestOrchestrator(analyzer, 1)

		snapshot, err := o.Run(context.Background(), posts)
		require.NoError(t, err)

		// Still visible in the mention rollups, just never classified.
		assert.Equal(t, 3, snapshot.CryptoMentions["nft"].Mentions)
		assert.Empty(t, snapshot.TradingSignals)
	})

	t.Run("empty corpus yields a zeroed snapshot", func(t *testing.T) {
		o := newTestOrchestrator(&stubAnalyzer{}, 4)

		snapshot, err := o.Run(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, 0, snapshot.TotalTweets)
		assert.Equal(t, 0.0, snapshot.AverageSentiment)
		assert.Empty(t, snapshot.CryptoMentions)
		assert.Empty(t, snapshot.TradingSignals)
	})

	t.Run("cancelled context aborts the run", func(t *testing.T) {
		posts, analyzer := bullishCorpus()
		o := newTestOrchestrator(analyzer, 2)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := o.Run(ctx, posts)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunIsDeterministic(t *testing.T) {
	posts, analyzer := bullishCorpus()
	// Mix in a second asset so ordering matters.
	analyzer.scores["eth holding steady"] = models.PostSentiment{Compound: 0.1, Positive: 0.1, Neutral: 0.9}
	for i := 0; i < 5; i++ {
		posts = append(posts, models.RawPost{
			PostID: fmt.Sprintf("e%d", i),
			Text:   "eth holding steady",
		})
	}

	o := newTestOrchestrator(analyzer, 3)

	first, err := o.Run(context.Background(), posts)
	require.NoError(t, err)
	second, err := o.Run(context.Background(), posts)
	require.NoError(t, err)

	// Everything except the generation timestamps must be identical.
	assert.Equal(t, first.TotalTweets, second.TotalTweets)
	assert.Equal(t, first.AverageSentiment, second.AverageSentiment)
	assert.Equal(t, first.CryptoMentions, second.CryptoMentions)
	require.Len(t, second.TradingSignals, len(first.TradingSignals))
	for i := range first.TradingSignals {
		a, b := first.TradingSignals[i], second.TradingSignals[i]
		assert.Equal(t, a.Coin, b.Coin)
		assert.Equal(t, a.SignalType, b.SignalType)
		assert.Equal(t, a.SignalStrength, b.SignalStrength)
		assert.Equal(t, a.Confidence, b.Confidence)
		assert.Equal(t, a.Metrics, b.Metrics)
	}
}

func TestPseudoSentiment(t *testing.T) {
	t.Run("positive average", func(t *testing.T) {
		s := PseudoSentiment(0.8)
		assert.InDelta(t, 0.8, s.Compound, 1e-9)
		assert.InDelta(t, 0.8, s.Positive, 1e-9)
		assert.Equal(t, 0.0, s.Negative)
		assert.InDelta(t, 0.2, s.Neutral, 1e-9)
	})

	t.Run("negative average", func(t *testing.T) {
		s := PseudoSentiment(-0.6)
		assert.InDelta(t, -0.6, s.Compound, 1e-9)
		assert.Equal(t, 0.0, s.Positive)
		assert.InDelta(t, 0.6, s.Negative, 1e-9)
		assert.InDelta(t, 0.4, s.Neutral, 1e-9)
	})

	t.Run("zero average is fully neutral", func(t *testing.T) {
		s := PseudoSentiment(0)
		assert.Equal(t, models.PostSentiment{Neutral: 1.0}, s)
	})
}

func TestAggregateScored(t *testing.T) {
	posts := []models.ScoredPost{
		{Sentiment: models.PostSentiment{Compound: 0.5}, AssetSymbols: []string{"btc"}, EngagementScore: 10},
		{Sentiment: models.PostSentiment{Compound: -0.5}, AssetSymbols: []string{"btc"}, EngagementScore: 20},
	}

	result := AggregateScored(posts)

	assert.Equal(t, 2, result.TotalPosts)
	assert.Equal(t, 0.0, result.AverageSentiment)
	assert.Equal(t, 2, result.Assets["btc"].Mentions)
	assert.InDelta(t, 30, result.Assets["btc"].TotalEngagement, 1e-9)
}

func TestSnapshotUsesFirstSeenOrderForTies(t *testing.T) {
	analyzer := &stubAnalyzer{scores: map[string]models.PostSentiment{}}
	var posts []models.RawPost
	// Two assets with identical rollups; "token" is seen before "altcoin".
	for i := 0; i < 5; i++ {
		tokenText := fmt.Sprintf("token watch %d", i)
		altText := fmt.Sprintf("altcoin watch %d", i)
		analyzer.scores[tokenText] = models.PostSentiment{Compound: 0.6, Positive: 0.6}
		analyzer.scores[altText] = models.PostSentiment{Compound: 0.6, Positive: 0.6}
		posts = append(posts,
			models.RawPost{PostID: fmt.Sprintf("t%d", i), Text: tokenText, Favorites: 150},
			models.RawPost{PostID: fmt.Sprintf("a%d", i), Text: altText, Favorites: 150},
		)
	}

	o := newTestOrchestrator(analyzer, 1)
	snapshot, err := o.Run(context.Background(), posts)
	require.NoError(t, err)

	require.Len(t, snapshot.TradingSignals, 2)
	assert.Equal(t, "token", snapshot.TradingSignals[0].Coin)
	assert.Equal(t, "altcoin", snapshot.TradingSignals[1].Coin)
}
