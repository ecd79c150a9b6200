package collector

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spacesedan/coinsignal/internal/clients"
	"github.com/spacesedan/coinsignal/internal/clients/kafka_client"
	"github.com/spacesedan/coinsignal/internal/models"
	"github.com/spacesedan/coinsignal/internal/pipeline"
)

const (
	DEFAULT_TWITTER_QUERY = "crypto"
	MAX_TWEETS_PER_FETCH  = 100

	maxQueryTerms = 10
)

// Subreddits polled on every Reddit fetch cycle.
var cryptoSubreddits = []string{"CryptoCurrency", "Bitcoin", "ethereum"}

// FetchTrendingKeywords pulls the current trending coins and registers
// their symbols so asset detection keeps up with market chatter.
func FetchTrendingKeywords(keywords *pipeline.KeywordSet) {
	coins, err := clients.GetCoinGeckoClient().GetTrendingCoins()
	if err != nil {
		slog.Warn("[Collector] Failed to fetch trending coins, keeping current keywords",
			slog.String("error", err.Error()))
		return
	}

	symbols := make([]string, 0, len(coins))
	for _, coin := range coins {
		symbols = append(symbols, coin.Symbol)
	}
	keywords.Add(symbols...)

	slog.Info("[Collector] Refreshed trending keywords",
		slog.Int("trending", len(symbols)),
		slog.Int("total_keywords", len(keywords.Keywords())))
}

// buildSearchQuery ORs the freshest keywords onto the base query so
// searches follow what is currently trending. The keyword list grows
// append-only, so the tail holds the symbols added most recently.
func buildSearchQuery(base string, keywords []string) string {
	terms := make([]string, 0, maxQueryTerms+1)
	if base != "" {
		terms = append(terms, base)
	}

	start := len(keywords) - maxQueryTerms
	if start < 0 {
		start = 0
	}
	for _, keyword := range keywords[start:] {
		if keyword == base {
			continue
		}
		terms = append(terms, keyword)
	}

	return strings.Join(terms, " OR ")
}

// FetchAndPublishTweets searches Twitter for the base query plus the
// current trending keywords, drops posts already seen, and publishes
// the fresh ones as one batch to the raw-posts topic.
func FetchAndPublishTweets(ctx context.Context, keywords *pipeline.KeywordSet) {
	base := os.Getenv("TWITTER_QUERY")
	if base == "" {
		base = DEFAULT_TWITTER_QUERY
	}
	query := buildSearchQuery(base, keywords.Keywords())

	resp, err := clients.GetTwitterClient().SearchTweets(query)
	if err != nil {
		slog.Error("[Collector] Twitter search failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return
	}

	posts := pipeline.ExtractTweets(resp, MAX_TWEETS_PER_FETCH)
	publishFreshPosts(ctx, "twitter", posts)
}

// FetchAndPublishRedditPosts polls the crypto subreddits for the query
// and publishes unseen posts to the raw-posts topic.
func FetchAndPublishRedditPosts(ctx context.Context) {
	query := os.Getenv("REDDIT_QUERY")
	if query == "" {
		query = DEFAULT_TWITTER_QUERY
	}

	reddit := clients.GetRedditClient()
	for _, subreddit := range cryptoSubreddits {
		listing, err := reddit.SearchSubreddit(subreddit, query)
		if err != nil {
			slog.Error("[Collector] Reddit search failed",
				slog.String("subreddit", subreddit),
				slog.String("error", err.Error()))
			continue
		}

		posts := pipeline.ExtractRedditPosts(listing)
		publishFreshPosts(ctx, "reddit", posts)
	}
}

// publishFreshPosts filters out already-processed posts via the dedupe
// set, publishes the remainder, then marks them processed. Marking after
// publish means a failed publish leaves posts eligible for the next
// fetch cycle.
func publishFreshPosts(ctx context.Context, source string, posts []models.RawPost) {
	if len(posts) == 0 {
		return
	}

	valkeyClient := clients.GetValkeyClient()

	fresh := make([]models.RawPost, 0, len(posts))
	for _, post := range posts {
		if valkeyClient.IsPostProcessed(ctx, source, post.PostID) {
			continue
		}
		fresh = append(fresh, post)
	}

	if len(fresh) == 0 {
		slog.Info("[Collector] No new posts this cycle",
			slog.String("source", source),
			slog.Int("fetched", len(posts)))
		return
	}

	if err := kafka_client.PublishToKafka(kafka_client.KAFKA_TOPIC_RAW_POSTS, source, fresh); err != nil {
		slog.Error("[Collector] Failed to publish raw posts",
			slog.String("source", source),
			slog.Int("batch_size", len(fresh)),
			slog.String("error", err.Error()))
		return
	}

	for _, post := range fresh {
		if err := valkeyClient.MarkProcessed(ctx, source, post.PostID); err != nil {
			slog.Warn("[Collector] Failed to mark post processed",
				slog.String("source", source),
				slog.String("post_id", post.PostID),
				slog.String("error", err.Error()))
		}
	}

	slog.Info("[Collector] Published raw posts",
		slog.String("source", source),
		slog.Int("fetched", len(posts)),
		slog.Int("published", len(fresh)))
}
