package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSentimentPayload(t *testing.T) {
	t.Run("flat shape", func(t *testing.T) {
		payload := []byte(`{"compound":0.7,"pos":0.6,"neg":0.1,"neu":0.3}`)

		s, err := ParseSentimentPayload(payload)
		require.NoError(t, err)
		assert.Equal(t, PostSentiment{Compound: 0.7, Positive: 0.6, Negative: 0.1, Neutral: 0.3}, s)
	})

	t.Run("rich shape wins when a scores block is present", func(t *testing.T) {
		payload := []byte(`{"label":"positive","confidence":0.9,"scores":{"positive":0.8,"negative":0.05,"neutral":0.15,"compound":0.75}}`)

		s, err := ParseSentimentPayload(payload)
		require.NoError(t, err)
		assert.Equal(t, PostSentiment{Compound: 0.75, Positive: 0.8, Negative: 0.05, Neutral: 0.15}, s)
	})

	t.Run("missing fields default to zero", func(t *testing.T) {
		s, err := ParseSentimentPayload([]byte(`{"compound":0.4}`))
		require.NoError(t, err)
		assert.Equal(t, PostSentiment{Compound: 0.4}, s)
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		_, err := ParseSentimentPayload([]byte(`{"compound":`))
		assert.Error(t, err)
	})
}

func TestScoredPostAcceptsRichSentiment(t *testing.T) {
	payload := []byte(`{
		"post_id": "1",
		"source": "twitter",
		"text": "btc rally",
		"sentiment": {"label":"positive","confidence":0.9,"scores":{"positive":0.8,"negative":0.1,"neutral":0.1,"compound":0.7}},
		"asset_symbols": ["btc"],
		"engagement_score": 42.0
	}`)

	var post ScoredPost
	require.NoError(t, json.Unmarshal(payload, &post))

	assert.Equal(t, "1", post.PostID)
	assert.Equal(t, PostSentiment{Compound: 0.7, Positive: 0.8, Negative: 0.1, Neutral: 0.1}, post.Sentiment)
	assert.Equal(t, []string{"btc"}, post.AssetSymbols)
}
