package signals

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/spacesedan/coinsignal/internal/models"
)

// Weights for combining the component scores into signal strength.
const (
	sentimentWeight  = 0.5
	engagementWeight = 0.3
	confidenceWeight = 0.2
)

// Generator turns per-asset rollups into discrete trading signals.
type Generator struct {
	thresholds Thresholds
}

func NewGenerator(thresholds Thresholds) *Generator {
	return &Generator{thresholds: thresholds}
}

func (g *Generator) Thresholds() Thresholds {
	return g.thresholds
}

// CoinInput is one asset's aggregated metrics, ready for classification.
type CoinInput struct {
	Coin       string
	Sentiment  models.PostSentiment
	Mentions   int
	Engagement float64
}

// Generate classifies a single asset. Component scoring failures are
// logged and degrade to the neutral 0.0 the same way genuinely neutral
// input would; an error return means the asset must be skipped entirely.
func (g *Generator) Generate(coin string, sentiment models.PostSentiment, mentionCount int, engagementScore float64) (*models.TradingSignal, error) {
	if coin == "" {
		return nil, fmt.Errorf("missing asset symbol")
	}

	sentimentScore, err := SentimentScore(sentiment)
	if err != nil {
		slog.Warn("[SignalGenerator] Sentiment score failed, defaulting to neutral",
			slog.String("coin", coin),
			slog.String("error", err.Error()))
		sentimentScore = 0.0
	}

	engagementImpact, err := EngagementImpact(engagementScore, g.thresholds.MinEngagement)
	if err != nil {
		slog.Warn("[SignalGenerator] Engagement impact failed, defaulting to zero",
			slog.String("coin", coin),
			slog.String("error", err.Error()))
		engagementImpact = 0.0
	}

	confidence, err := MentionConfidence(mentionCount, g.thresholds.MinMentions)
	if err != nil {
		slog.Warn("[SignalGenerator] Mention confidence failed, defaulting to zero",
			slog.String("coin", coin),
			slog.String("error", err.Error()))
		confidence = 0.0
	}

	// The engagement and confidence terms are never negative, so the
	// combined strength lives in [-0.5, 1.0]. It is deliberately not
	// re-clamped: doing so would change which thresholds are reachable.
	strength := sentimentScore*sentimentWeight +
		engagementImpact*engagementWeight +
		confidence*confidenceWeight

	signal := &models.TradingSignal{
		Coin:           coin,
		SignalType:     g.classify(strength),
		SignalStrength: strength,
		Confidence:     confidence,
		Metrics: models.SignalMetrics{
			SentimentScore:   sentimentScore,
			EngagementImpact: engagementImpact,
			MentionCount:     mentionCount,
			RawSentiment:     sentiment,
		},
		Timestamp: time.Now().UTC(),
	}

	return signal, nil
}

// classify picks the signal type for a strength value. Buy-side checks
// run first so a strength sitting exactly on a threshold lands in the
// greater-or-equal branch.
func (g *Generator) classify(strength float64) models.SignalType {
	t := g.thresholds
	switch {
	case strength >= t.StrongBuy:
		return models.SignalStrongBuy
	case strength >= t.Buy:
		return models.SignalBuy
	case strength <= t.StrongSell:
		return models.SignalStrongSell
	case strength <= t.Sell:
		return models.SignalSell
	default:
		return models.SignalNeutral
	}
}

// GenerateBatch classifies every input and returns the signals ranked by
// absolute strength, strongest first. Per-asset failures are logged and
// skipped. The sort is stable: tied strengths keep their input order.
func (g *Generator) GenerateBatch(inputs []CoinInput) []models.TradingSignal {
	generated := make([]models.TradingSignal, 0, len(inputs))

	for _, in := range inputs {
		signal, err := g.Generate(in.Coin, in.Sentiment, in.Mentions, in.Engagement)
		if err != nil {
			slog.Warn("[SignalGenerator] Skipping asset",
				slog.String("coin", in.Coin),
				slog.String("error", err.Error()))
			continue
		}
		generated = append(generated, *signal)
	}

	sort.SliceStable(generated, func(i, j int) bool {
		return math.Abs(generated[i].SignalStrength) > math.Abs(generated[j].SignalStrength)
	})

	return generated
}
