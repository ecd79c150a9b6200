package models

import "time"

// AssetMentionData is the finalized per-asset rollup for one batch run.
type AssetMentionData struct {
	Mentions        int     `json:"mentions"`
	AvgSentiment    float64 `json:"avg_sentiment"`
	TotalEngagement float64 `json:"total_engagement"`
}

// TrendSnapshot is the aggregate document one batch run produces. It is
// the contract the dashboard consumes; field names are fixed.
type TrendSnapshot struct {
	TotalTweets      int                         `json:"total_tweets"`
	AverageSentiment float64                     `json:"average_sentiment"`
	CryptoMentions   map[string]AssetMentionData `json:"crypto_mentions"`
	TradingSignals   []TradingSignal             `json:"trading_signals"`
	Commentary       string                      `json:"commentary,omitempty"`
	Timestamp        time.Time                   `json:"timestamp"`
}
