package models

// RawPost is the normalized per-post record the collectors publish,
// regardless of which platform it came from.
type RawPost struct {
	PostID    string `json:"post_id"`
	Source    string `json:"source"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	Favorites int    `json:"favorites"`
	Retweets  int    `json:"retweets"`
}

// ScoredPost is a RawPost after sentiment scoring, asset detection and
// engagement weighting. This is the unit the aggregation engine consumes.
type ScoredPost struct {
	RawPost
	Sentiment       PostSentiment `json:"sentiment"`
	AssetSymbols    []string      `json:"asset_symbols"`
	EngagementScore float64       `json:"engagement_score"`
}
