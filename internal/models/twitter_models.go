package models

// Shapes for the RapidAPI Twitter135 search timeline response. Only the
// fields the extractor reads are mapped; the payload is much larger.

type TwitterSearchResponse struct {
	Data TwitterSearchData `json:"data"`
}

type TwitterSearchData struct {
	SearchByRawQuery TwitterSearchByRawQuery `json:"search_by_raw_query"`
}

type TwitterSearchByRawQuery struct {
	SearchTimeline TwitterSearchTimeline `json:"search_timeline"`
}

type TwitterSearchTimeline struct {
	Timeline TwitterTimeline `json:"timeline"`
}

type TwitterTimeline struct {
	Instructions []TwitterInstruction `json:"instructions"`
}

type TwitterInstruction struct {
	Type    string         `json:"type"`
	Entries []TwitterEntry `json:"entries"`
}

type TwitterEntry struct {
	EntryID string              `json:"entryId"`
	Content TwitterEntryContent `json:"content"`
}

type TwitterEntryContent struct {
	ItemContent TwitterItemContent `json:"itemContent"`
}

type TwitterItemContent struct {
	TweetResults TwitterTweetResults `json:"tweet_results"`
}

type TwitterTweetResults struct {
	Result TwitterTweetResult `json:"result"`
}

type TwitterTweetResult struct {
	RestID string       `json:"rest_id"`
	Legacy *TweetLegacy `json:"legacy"`
}

// TweetLegacy carries the actual tweet payload.
type TweetLegacy struct {
	FullText      string `json:"full_text"`
	CreatedAt     string `json:"created_at"`
	FavoriteCount int    `json:"favorite_count"`
	RetweetCount  int    `json:"retweet_count"`
}
