package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/coinsignal/internal/clients"
)

const HEALTHCHECK_TIMER = 15

func MonitorMarketDataHealth(ctx context.Context, healthy *atomic.Bool) {
	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			isHealthy := clients.GetCoinGeckoClient().Ping()
			healthy.Store(isHealthy)
			if !isHealthy {
				slog.Warn("[HealthCheck] CoinGecko is unreachable")
			}
		}
	}
}

func MonitorValkeyHealth(ctx context.Context, healthy *atomic.Bool) {
	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			isHealthy := clients.GetValkeyClient().Ping(ctx)
			healthy.Store(isHealthy)
			if !isHealthy {
				slog.Warn("[HealthCheck] Valkey is unhealthy")
			}
		}
	}
}
