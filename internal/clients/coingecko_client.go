package clients

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/spacesedan/coinsignal/internal/models"
	"github.com/spacesedan/coinsignal/internal/utils"
)

const (
	COINGECKO_BASE_URL          = "https://api.coingecko.com/api/v3"
	COINGECKO_TRENDING_ENDPOINT = COINGECKO_BASE_URL + "/search/trending"
	COINGECKO_PING_ENDPOINT     = COINGECKO_BASE_URL + "/ping"
)

var (
	coinGeckoInstance *CoinGeckoClient
	coinGeckoOnce     sync.Once
)

// CoinGeckoClient fetches the currently trending coins; their symbols
// seed the asset keyword set so fresh narratives get picked up.
type CoinGeckoClient struct {
	Client *http.Client
}

func GetCoinGeckoClient() *CoinGeckoClient {
	coinGeckoOnce.Do(func() {
		coinGeckoInstance = &CoinGeckoClient{
			Client: &http.Client{Timeout: 15 * time.Second},
		}
	})
	return coinGeckoInstance
}

func (c *CoinGeckoClient) GetTrendingCoins() ([]models.CoinGeckoCoinItem, error) {
	backoff := INITIAL_BACKOFF
	var lastErr error

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		req, err := http.NewRequest(http.MethodGet, COINGECKO_TRENDING_ENDPOINT, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", USER_AGENT)

		res, err := c.Client.Do(req)
		if err != nil {
			slog.Warn("[CoinGeckoClient] Request failed, retrying...",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			lastErr = err
			time.Sleep(backoff)
			backoff = nextBackoff(backoff)
			continue
		}

		if res.StatusCode != http.StatusOK {
			drainAndClose(res.Body)
			if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
				slog.Warn("[CoinGeckoClient] Retryable response",
					slog.Int("status_code", res.StatusCode),
					slog.Duration("backoff", backoff))
				time.Sleep(backoff)
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, errors.New("[CoinGeckoClient] Unexpected status code")
		}

		body, err := io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			return nil, err
		}

		var response models.CoinGeckoTrendingResponse
		if err := utils.DeserializeFromJSON(body, &response); err != nil {
			return nil, err
		}

		coins := make([]models.CoinGeckoCoinItem, 0, len(response.Coins))
		for _, coin := range response.Coins {
			coins = append(coins, coin.Item)
		}

		slog.Info("[CoinGeckoClient] Fetched trending coins",
			slog.Int("count", len(coins)))
		return coins, nil
	}

	if lastErr == nil {
		lastErr = errors.New("[CoinGeckoClient] Failed after max retries")
	}
	return nil, lastErr
}

// Ping reports whether the CoinGecko API is reachable.
func (c *CoinGeckoClient) Ping() bool {
	req, err := http.NewRequest(http.MethodGet, COINGECKO_PING_ENDPOINT, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	res, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	drainAndClose(res.Body)

	return res.StatusCode == http.StatusOK
}
