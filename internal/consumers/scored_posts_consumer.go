package consumers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/coinsignal/internal/clients/kafka_client"
	"github.com/spacesedan/coinsignal/internal/commentary"
	"github.com/spacesedan/coinsignal/internal/db"
	"github.com/spacesedan/coinsignal/internal/models"
	"github.com/spacesedan/coinsignal/internal/pipeline"
	"github.com/spacesedan/coinsignal/internal/utils"
)

const DEFAULT_SNAPSHOT_INTERVAL = time.Minute

var snapshotBuffer = utils.NewBatchBuffer[models.ScoredPost]()

func snapshotInterval() time.Duration {
	raw := os.Getenv("SNAPSHOT_INTERVAL")
	if raw == "" {
		return DEFAULT_SNAPSHOT_INTERVAL
	}
	interval, err := time.ParseDuration(raw)
	if err != nil || interval <= 0 {
		slog.Warn("[ScoredPostsConsumer] Invalid SNAPSHOT_INTERVAL, using default",
			slog.String("value", raw))
		return DEFAULT_SNAPSHOT_INTERVAL
	}
	return interval
}

// StartScoredPostsConsumer accumulates scored posts and periodically
// rolls them up into a trend snapshot: aggregate, classify, persist,
// and publish the ranked signals.
func StartScoredPostsConsumer(ctx context.Context, consumer *kafka.Consumer) {
	slog.Info("[ScoredPostsConsumer] Starting...")

	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	ticker := time.NewTicker(snapshotInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("[ScoredPostsConsumer] Context cancelled, building final snapshot...")
			flushCtx, cancel := shutdownFlushContext(ctx)
			buildSnapshot(flushCtx, kafka_client.NewCommitHandler(flushCtx, consumer))
			cancel()
			return
		case <-ticker.C:
			if snapshotBuffer.HasData() {
				buildSnapshot(ctx, committer)
			}
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var posts []models.ScoredPost
			if err := utils.DeserializeFromJSON(msg.Value, &posts); err != nil {
				slog.Warn("[ScoredPostsConsumer] Skipping malformed message",
					slog.String("error", err.Error()))
				continue
			}
			if len(posts) == 0 {
				continue
			}

			utils.TrackMessage(posts[0].PostID, msg)

			for _, post := range posts {
				snapshotBuffer.Add(post)
			}
		}
	}
}

// buildSnapshot drains the buffer, aggregates it into a snapshot, stores
// the snapshot and its signals, and publishes the signals downstream.
// Offsets are committed only after the snapshot is safely persisted.
func buildSnapshot(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	snapshotBuffer.LogBatchProcessing("trend_snapshot")
	batch := snapshotBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	result := pipeline.AggregateScored(batch)
	snapshot := orchestrator.Snapshot(result)

	if commentary.Enabled() {
		text, err := commentary.ForSnapshot(ctx, snapshot)
		if err != nil {
			slog.Warn("[ScoredPostsConsumer] Commentary generation failed, continuing without",
				slog.String("error", err.Error()))
		} else {
			snapshot.Commentary = text
		}
	}

	if err := storeWithRetry(ctx, snapshot); err != nil {
		slog.Error("[ScoredPostsConsumer] Failed to persist snapshot, offsets not committed",
			slog.String("error", err.Error()))
		return
	}

	if len(snapshot.TradingSignals) > 0 {
		if err := kafka_client.PublishToKafka(kafka_client.KAFKA_TOPIC_TRADING_SIGNALS, "", snapshot.TradingSignals); err != nil {
			slog.Warn("[ScoredPostsConsumer] Failed to publish trading signals",
				slog.String("error", err.Error()))
		}
	}

	for _, post := range batch {
		msg, ok := utils.GetMessageForPost(post.PostID)
		if !ok {
			continue
		}
		if err := committer.Commit(msg); err != nil {
			slog.Warn("[ScoredPostsConsumer] Failed to commit offset",
				slog.String("post_id", post.PostID),
				slog.String("error", err.Error()))
		}
	}

	slog.Info("[ScoredPostsConsumer] Snapshot complete",
		slog.Int("total_posts", snapshot.TotalTweets),
		slog.Int("signals", len(snapshot.TradingSignals)))
}

func storeWithRetry(ctx context.Context, snapshot *models.TrendSnapshot) error {
	var err error
	for i := 0; i < 3; i++ {
		if err = db.StoreSnapshot(ctx, snapshot); err == nil {
			break
		}
		slog.Warn("[ScoredPostsConsumer] Failed to store snapshot, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(kafka_client.RETRY_DELAY)
	}
	if err != nil {
		return err
	}

	for i := 0; i < 3; i++ {
		if err = db.BatchInsertSignals(ctx, snapshot.TradingSignals); err == nil {
			return nil
		}
		slog.Warn("[ScoredPostsConsumer] Failed to store signals, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(kafka_client.RETRY_DELAY)
	}
	return err
}
