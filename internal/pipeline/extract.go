package pipeline

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/coinsignal/internal/models"
)

// Engagement contract shared with the dashboard: favorites count once,
// reposts twice, averaged over the weight total.
const (
	favoriteWeight    = 1.0
	retweetWeight     = 2.0
	engagementDivisor = 3.0
)

// EngagementScore quantifies audience reaction to a single post.
func EngagementScore(favorites, retweets int) float64 {
	return (float64(favorites)*favoriteWeight + float64(retweets)*retweetWeight) / engagementDivisor
}

// ExtractTweets flattens a Twitter135 search timeline into RawPosts.
// Entries without a tweet payload (cursors, promoted modules) are logged
// and dropped; they never abort the batch. maxPosts <= 0 means no limit.
func ExtractTweets(resp *models.TwitterSearchResponse, maxPosts int) []models.RawPost {
	var posts []models.RawPost

	for _, instruction := range resp.Data.SearchByRawQuery.SearchTimeline.Timeline.Instructions {
		for _, entry := range instruction.Entries {
			if maxPosts > 0 && len(posts) >= maxPosts {
				return posts
			}

			legacy := entry.Content.ItemContent.TweetResults.Result.Legacy
			if legacy == nil || legacy.FullText == "" {
				slog.Debug("[Extract] Skipping entry without tweet payload",
					slog.String("entry_id", entry.EntryID))
				continue
			}

			postID := entry.Content.ItemContent.TweetResults.Result.RestID
			if postID == "" {
				postID = entry.EntryID
			}

			posts = append(posts, models.RawPost{
				PostID:    postID,
				Source:    "twitter",
				Text:      legacy.FullText,
				CreatedAt: legacy.CreatedAt,
				Favorites: legacy.FavoriteCount,
				Retweets:  legacy.RetweetCount,
			})
		}
	}

	return posts
}

// ExtractRedditPosts maps a Reddit listing onto RawPosts. Upvotes stand
// in for favorites and comment count for reposts in the engagement
// contract.
func ExtractRedditPosts(listing *models.RedditListingResponse) []models.RawPost {
	var posts []models.RawPost

	for _, child := range listing.Data.Children {
		data := child.Data
		text := strings.TrimSpace(data.Title + "\n\n" + data.Selftext)
		if text == "" {
			slog.Debug("[Extract] Skipping empty reddit post",
				slog.String("post_id", data.ID))
			continue
		}

		posts = append(posts, models.RawPost{
			PostID:    data.Name,
			Source:    "reddit",
			Text:      text,
			CreatedAt: time.Unix(int64(data.CreatedUTC), 0).UTC().Format(time.RFC3339),
			Favorites: data.Ups,
			Retweets:  data.NumComments,
		})
	}

	return posts
}
