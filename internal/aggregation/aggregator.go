package aggregation

import (
	"github.com/spacesedan/coinsignal/internal/models"
)

// Aggregator accumulates per-asset rollups over a batch of scored posts.
// It is not safe for concurrent use; concurrent pipelines give each
// worker its own Aggregator and merge them afterwards.
type Aggregator struct {
	assets      map[string]*assetRollup
	order       []string
	totalPosts  int
	compoundSum float64
}

type assetRollup struct {
	mentions        int
	sentimentSum    float64
	totalEngagement float64
}

func New() *Aggregator {
	return &Aggregator{
		assets: make(map[string]*assetRollup),
	}
}

// Add folds one scored post into the rollups. A post counts once toward
// the batch totals and once per asset symbol it mentions; posts that
// mention nothing only move the batch totals.
func (a *Aggregator) Add(post models.ScoredPost) {
	a.totalPosts++
	a.compoundSum += post.Sentiment.Compound

	for _, symbol := range post.AssetSymbols {
		rollup, ok := a.assets[symbol]
		if !ok {
			rollup = &assetRollup{}
			a.assets[symbol] = rollup
			a.order = append(a.order, symbol)
		}
		rollup.mentions++
		rollup.sentimentSum += post.Sentiment.Compound
		rollup.totalEngagement += post.EngagementScore
	}
}

// Merge folds another aggregator's rollups into this one. Symbols new to
// this aggregator keep the other's first-seen order, appended after our
// own, so merging workers in a fixed order yields a deterministic result.
func (a *Aggregator) Merge(other *Aggregator) {
	a.totalPosts += other.totalPosts
	a.compoundSum += other.compoundSum

	for _, symbol := range other.order {
		theirs := other.assets[symbol]
		rollup, ok := a.assets[symbol]
		if !ok {
			rollup = &assetRollup{}
			a.assets[symbol] = rollup
			a.order = append(a.order, symbol)
		}
		rollup.mentions += theirs.mentions
		rollup.sentimentSum += theirs.sentimentSum
		rollup.totalEngagement += theirs.totalEngagement
	}
}

// Result is the finalized output of one aggregation pass.
type Result struct {
	TotalPosts       int
	AverageSentiment float64
	Assets           map[string]models.AssetMentionData
	// Symbols lists the asset keys in first-mention order.
	Symbols []string
}

// Finalize averages the running sums. An empty batch yields zero totals
// rather than a division by zero; assets never seen have no entry at all.
func (a *Aggregator) Finalize() Result {
	assets := make(map[string]models.AssetMentionData, len(a.assets))
	for symbol, rollup := range a.assets {
		avg := 0.0
		if rollup.mentions > 0 {
			avg = rollup.sentimentSum / float64(rollup.mentions)
		}
		assets[symbol] = models.AssetMentionData{
			Mentions:        rollup.mentions,
			AvgSentiment:    avg,
			TotalEngagement: rollup.totalEngagement,
		}
	}

	averageSentiment := 0.0
	if a.totalPosts > 0 {
		averageSentiment = a.compoundSum / float64(a.totalPosts)
	}

	symbols := append([]string(nil), a.order...)

	return Result{
		TotalPosts:       a.totalPosts,
		AverageSentiment: averageSentiment,
		Assets:           assets,
		Symbols:          symbols,
	}
}
