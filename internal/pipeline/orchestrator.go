package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/spacesedan/coinsignal/internal/aggregation"
	"github.com/spacesedan/coinsignal/internal/models"
	"github.com/spacesedan/coinsignal/internal/sentiment"
	"github.com/spacesedan/coinsignal/internal/signals"
	"github.com/spacesedan/coinsignal/internal/utils"
)

// Orchestrator drives a full batch run: score every post, aggregate per
// asset, classify, and assemble the snapshot document.
type Orchestrator struct {
	analyzer  sentiment.Analyzer
	keywords  *KeywordSet
	generator *signals.Generator
	workers   int
}

func NewOrchestrator(analyzer sentiment.Analyzer, keywords *KeywordSet, generator *signals.Generator, workers int) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		analyzer:  analyzer,
		keywords:  keywords,
		generator: generator,
		workers:   workers,
	}
}

// ScorePost attaches sentiment, detected assets and engagement to a raw
// post. Analyzer failures degrade to neutral scores; the post still
// counts toward batch totals.
func (o *Orchestrator) ScorePost(post models.RawPost) models.ScoredPost {
	scores, err := o.analyzer.Analyze(post.Text)
	if err != nil {
		slog.Warn("[Pipeline] Sentiment analysis failed, using neutral scores",
			slog.String("post_id", post.PostID),
			slog.String("error", err.Error()))
		scores = models.PostSentiment{}
	}

	return models.ScoredPost{
		RawPost:         post,
		Sentiment:       scores,
		AssetSymbols:    o.keywords.Detect(post.Text),
		EngagementScore: EngagementScore(post.Favorites, post.Retweets),
	}
}

// Run processes a full corpus and returns its snapshot. The only error
// is context cancellation; per-post problems are logged and recovered.
func (o *Orchestrator) Run(ctx context.Context, posts []models.RawPost) (*models.TrendSnapshot, error) {
	start := time.Now()

	result, err := o.aggregate(ctx, posts)
	if err != nil {
		return nil, err
	}
	snapshot := o.Snapshot(result)

	slog.Info("[Pipeline] Batch run complete",
		slog.Int("total_posts", snapshot.TotalTweets),
		slog.Int("signals", len(snapshot.TradingSignals)),
		slog.Duration("duration", time.Since(start)))

	return snapshot, nil
}

// aggregate fans posts out across workers. Posts are assigned by stride
// (post i goes to worker i mod N) and worker aggregators are merged in
// worker order, so repeated runs over the same corpus are identical.
func (o *Orchestrator) aggregate(ctx context.Context, posts []models.RawPost) (aggregation.Result, error) {
	workers := o.workers
	if workers > len(posts) {
		workers = len(posts)
	}

	if workers <= 1 {
		aggregator := aggregation.New()
		for _, post := range posts {
			if err := ctx.Err(); err != nil {
				return aggregation.Result{}, err
			}
			aggregator.Add(o.ScorePost(post))
		}
		return aggregator.Finalize(), nil
	}

	aggregators := make([]*aggregation.Aggregator, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		aggregators[w] = aggregation.New()
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(posts); i += workers {
				if ctx.Err() != nil {
					return
				}
				aggregators[w].Add(o.ScorePost(posts[i]))
			}
		}(w)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return aggregation.Result{}, err
	}

	merged := aggregators[0]
	for _, aggregator := range aggregators[1:] {
		merged.Merge(aggregator)
	}
	return merged.Finalize(), nil
}

// AggregateScored folds already-scored posts (e.g. from the scored-posts
// topic) into a finalized result.
func AggregateScored(posts []models.ScoredPost) aggregation.Result {
	aggregator := aggregation.New()
	for _, post := range posts {
		aggregator.Add(post)
	}
	return aggregator.Finalize()
}

// Snapshot filters the rollups to assets with enough mentions, generates
// ranked signals, and assembles the output document. Assets below the
// mention minimum are dropped entirely, never emitted as weak signals.
func (o *Orchestrator) Snapshot(result aggregation.Result) *models.TrendSnapshot {
	minMentions := o.generator.Thresholds().MinMentions

	inputs := make([]signals.CoinInput, 0, len(result.Symbols))
	for _, symbol := range result.Symbols {
		data := result.Assets[symbol]
		if data.Mentions < minMentions {
			continue
		}
		inputs = append(inputs, signals.CoinInput{
			Coin:       symbol,
			Sentiment:  PseudoSentiment(data.AvgSentiment),
			Mentions:   data.Mentions,
			Engagement: data.TotalEngagement,
		})
	}

	return &models.TrendSnapshot{
		TotalTweets:      result.TotalPosts,
		AverageSentiment: result.AverageSentiment,
		CryptoMentions:   result.Assets,
		TradingSignals:   o.generator.GenerateBatch(inputs),
		Timestamp:        time.Now().UTC(),
	}
}

// PseudoSentiment rebuilds component scores from an averaged compound.
// Lossy by construction: the per-post distribution is gone at this point.
func PseudoSentiment(avgSentiment float64) models.PostSentiment {
	return models.PostSentiment{
		Compound: avgSentiment,
		Positive: math.Max(0, avgSentiment),
		Negative: math.Max(0, -avgSentiment),
		Neutral:  1 - math.Abs(avgSentiment),
	}
}

// LoadTwitterDump reads a Twitter135 search dump from disk and extracts
// its posts. Errors here are fatal for the batch: there is nothing to
// partially process.
func LoadTwitterDump(path string, maxPosts int) ([]models.RawPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[Pipeline] Failed to read corpus %s: %w", path, err)
	}

	var resp models.TwitterSearchResponse
	if err := utils.DeserializeFromJSON(data, &resp); err != nil {
		return nil, fmt.Errorf("[Pipeline] Failed to parse corpus %s: %w", path, err)
	}

	return ExtractTweets(&resp, maxPosts), nil
}
