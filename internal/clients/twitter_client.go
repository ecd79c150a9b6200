package clients

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/spacesedan/coinsignal/internal/models"
	"github.com/spacesedan/coinsignal/internal/utils"
)

const (
	TWITTER_SEARCH_ENDPOINT = "https://twitter135.p.rapidapi.com/Search/"
	TWITTER_RAPIDAPI_HOST   = "twitter135.p.rapidapi.com"
)

var (
	twitterInstance *TwitterClient
	twitterOnce     sync.Once
)

// TwitterClient fetches tweet search timelines through the RapidAPI
// Twitter135 gateway.
type TwitterClient struct {
	Client *http.Client
	APIKey string
}

func GetTwitterClient() *TwitterClient {
	twitterOnce.Do(func() {
		twitterInstance = &TwitterClient{
			Client: &http.Client{Timeout: 30 * time.Second},
			APIKey: os.Getenv("RAPIDAPI_KEY"),
		}
	})
	return twitterInstance
}

// SearchTweets runs a search query and returns the raw timeline response.
// Rate limits and server errors are retried with capped backoff.
func (t *TwitterClient) SearchTweets(query string) (*models.TwitterSearchResponse, error) {
	if t.APIKey == "" {
		slog.Error("[TwitterClient] RAPIDAPI_KEY is missing")
		return nil, errors.New("[TwitterClient] RAPIDAPI_KEY is missing")
	}

	endpoint, err := url.Parse(TWITTER_SEARCH_ENDPOINT)
	if err != nil {
		return nil, err
	}
	queryParams := endpoint.Query()
	queryParams.Add("q", query)
	endpoint.RawQuery = queryParams.Encode()

	backoff := INITIAL_BACKOFF
	var lastErr error

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		slog.Info("[TwitterClient] Fetching tweets",
			slog.String("query", query),
			slog.Int("attempt", attempt))

		req, err := http.NewRequest(http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-rapidapi-host", TWITTER_RAPIDAPI_HOST)
		req.Header.Set("x-rapidapi-key", t.APIKey)
		req.Header.Set("User-Agent", USER_AGENT)

		res, err := t.Client.Do(req)
		if err != nil {
			slog.Warn("[TwitterClient] Request failed",
				slog.String("error", err.Error()))
			lastErr = err
			time.Sleep(backoff)
			backoff = nextBackoff(backoff)
			continue
		}

		switch res.StatusCode {
		case http.StatusOK:
			body, err := io.ReadAll(res.Body)
			res.Body.Close()
			if err != nil {
				slog.Error("[TwitterClient] Failed to read response body",
					slog.String("error", err.Error()))
				return nil, err
			}

			var response models.TwitterSearchResponse
			if err := utils.DeserializeFromJSON(body, &response); err != nil {
				return nil, err
			}

			slog.Info("[TwitterClient] Successfully fetched tweets",
				slog.String("query", query))
			return &response, nil

		case http.StatusUnauthorized, http.StatusForbidden:
			res.Body.Close()
			slog.Error("[TwitterClient] Invalid API key, check credentials")
			return nil, errors.New("[TwitterClient] Invalid API key, check credentials")

		case http.StatusTooManyRequests:
			drainAndClose(res.Body)
			slog.Warn("[TwitterClient] Rate limit exceeded, retrying...",
				slog.Duration("backoff", backoff),
				slog.Int("attempt", attempt))
			time.Sleep(backoff)
			backoff = nextBackoff(backoff)

		default:
			drainAndClose(res.Body)
			if res.StatusCode >= 500 {
				slog.Warn("[TwitterClient] Server error, retrying...",
					slog.Int("status_code", res.StatusCode),
					slog.Duration("backoff", backoff))
				time.Sleep(backoff)
				backoff = nextBackoff(backoff)
				continue
			}
			slog.Warn("[TwitterClient] Unexpected response",
				slog.Int("status_code", res.StatusCode))
			return nil, errors.New("[TwitterClient] Unexpected status code")
		}
	}

	if lastErr == nil {
		lastErr = errors.New("[TwitterClient] Failed after max retries")
	}
	return nil, lastErr
}

func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > MAX_BACKOFF {
		return MAX_BACKOFF
	}
	return next
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	body.Close()
}
