package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/coinsignal/config"
	"github.com/spacesedan/coinsignal/internal/clients"
	"github.com/spacesedan/coinsignal/internal/clients/kafka_client"
	"github.com/spacesedan/coinsignal/internal/collector"
	"github.com/spacesedan/coinsignal/internal/logging"
	"github.com/spacesedan/coinsignal/internal/monitoring"
	"github.com/spacesedan/coinsignal/internal/pipeline"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := kafka_client.GetKafkaConfig()
	for {
		err := kafka_client.InitProducer(cfg)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseProducer()

	clients.InitValkey()
	defer clients.CloseValkey()

	marketDataHealthy := &atomic.Bool{}
	valkeyHealthy := &atomic.Bool{}
	marketDataHealthy.Store(true)
	valkeyHealthy.Store(true)
	go monitoring.MonitorMarketDataHealth(ctx, marketDataHealthy)
	go monitoring.MonitorValkeyHealth(ctx, valkeyHealthy)

	keywordFetchInterval, err := strconv.Atoi(os.Getenv("KEYWORD_FETCH_INTERVAL"))
	if err != nil {
		keywordFetchInterval = 3600
	}

	postFetchInterval, err := strconv.Atoi(os.Getenv("POST_FETCH_INTERVAL"))
	if err != nil {
		postFetchInterval = 300
	}

	keywordTicker := time.NewTicker(time.Duration(keywordFetchInterval) * time.Second)
	postTicker := time.NewTicker(time.Duration(postFetchInterval) * time.Second)
	defer keywordTicker.Stop()
	defer postTicker.Stop()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	keywords := pipeline.NewKeywordSet()

	// Seed keywords and posts on initial run
	collector.FetchTrendingKeywords(keywords)
	collector.FetchAndPublishTweets(ctx, keywords)
	collector.FetchAndPublishRedditPosts(ctx)

	for {
		select {
		case <-keywordTicker.C:
			collector.FetchTrendingKeywords(keywords)

		case <-postTicker.C:
			if !marketDataHealthy.Load() || !valkeyHealthy.Load() {
				slog.Warn("Skipping fetch cycle, dependencies unhealthy",
					slog.Bool("market_data", marketDataHealthy.Load()),
					slog.Bool("valkey", valkeyHealthy.Load()))
				continue
			}
			collector.FetchAndPublishTweets(ctx, keywords)
			collector.FetchAndPublishRedditPosts(ctx)

		case <-stopChan:
			slog.Info("Shutting down collector gracefully...")
			return
		}
	}
}
