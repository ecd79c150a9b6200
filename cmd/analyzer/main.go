package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spacesedan/coinsignal/config"
	"github.com/spacesedan/coinsignal/internal/clients/kafka_client"
	"github.com/spacesedan/coinsignal/internal/collector"
	"github.com/spacesedan/coinsignal/internal/consumers"
	"github.com/spacesedan/coinsignal/internal/db"
	"github.com/spacesedan/coinsignal/internal/logging"
	"github.com/spacesedan/coinsignal/internal/pipeline"
	"github.com/spacesedan/coinsignal/internal/sentiment"
	"github.com/spacesedan/coinsignal/internal/signals"
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

	go func() {
		stopChan := make(chan os.Signal, 1)
		signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
		<-stopChan
		slog.Info("Shutting down analyzer gracefully...")
		cancel()
	}()

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

	db.InitDynamoDB()

	analyzer := buildAnalyzer()

	workers, err := strconv.Atoi(os.Getenv("ANALYZER_WORKERS"))
	if err != nil || workers < 1 {
		workers = 4
	}

	keywords := pipeline.NewKeywordSet()
	go refreshTrendingKeywords(ctx, keywords)

	orchestrator := pipeline.NewOrchestrator(
		analyzer,
		keywords,
		signals.NewGenerator(signals.ThresholdsFromEnv()),
		workers,
	)
	consumers.Init(orchestrator)

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_RAW_POSTS, consumers.StartRawPostsConsumer)
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_SCORED_POSTS, consumers.StartScoredPostsConsumer)

	if err := kafka_client.StartConsumers(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumers",
			slog.String("error", err.Error()))
	}
}

// refreshTrendingKeywords keeps asset detection in step with market
// chatter by folding CoinGecko's trending symbols into the keyword set
// the orchestrator detects with.
func refreshTrendingKeywords(ctx context.Context, keywords *pipeline.KeywordSet) {
	interval, err := strconv.Atoi(os.Getenv("KEYWORD_FETCH_INTERVAL"))
	if err != nil || interval < 1 {
		interval = 3600
	}

	collector.FetchTrendingKeywords(keywords)

	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			collector.FetchTrendingKeywords(keywords)
		}
	}
}

// buildAnalyzer picks the sentiment backend from SENTIMENT_BACKEND
// (vader by default, finbert for the transformer model) and wraps it
// in the LRU cache.
func buildAnalyzer() sentiment.Analyzer {
	var inner sentiment.Analyzer

	switch os.Getenv("SENTIMENT_BACKEND") {
	case "finbert":
		finbert, err := sentiment.NewFinBERTAnalyzer()
		if err != nil {
			slog.Error("[Main] Failed to initialize FinBERT, falling back to VADER",
				slog.String("error", err.Error()))
			inner = sentiment.NewVaderAnalyzer()
		} else {
			inner = finbert
		}
	default:
		inner = sentiment.NewVaderAnalyzer()
	}

	cacheSize, err := strconv.Atoi(os.Getenv("SENTIMENT_CACHE_SIZE"))
	if err != nil || cacheSize < 1 {
		cacheSize = sentiment.DefaultCacheSize
	}

	cached, err := sentiment.NewCachedAnalyzer(inner, cacheSize)
	if err != nil {
		slog.Warn("[Main] Failed to initialize sentiment cache, running uncached",
			slog.String("error", err.Error()))
		return inner
	}
	return cached
}
