package models

import "time"

type SignalType string

const (
	SignalStrongBuy  SignalType = "STRONG_BUY"
	SignalBuy        SignalType = "BUY"
	SignalNeutral    SignalType = "NEUTRAL"
	SignalSell       SignalType = "SELL"
	SignalStrongSell SignalType = "STRONG_SELL"
)

// SignalMetrics is the per-signal breakdown of the inputs that produced it.
type SignalMetrics struct {
	SentimentScore   float64       `json:"sentiment_score"`
	EngagementImpact float64       `json:"engagement_impact"`
	MentionCount     int           `json:"mention_count"`
	RawSentiment     PostSentiment `json:"raw_sentiment"`
}

// TradingSignal is the per-asset output of the signal generator.
// Immutable once generated.
type TradingSignal struct {
	Coin           string        `json:"coin"`
	SignalType     SignalType    `json:"signal_type"`
	SignalStrength float64       `json:"signal_strength"`
	Confidence     float64       `json:"confidence"`
	Metrics        SignalMetrics `json:"metrics"`
	Timestamp      time.Time     `json:"timestamp"`
}
