package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/coinsignal/internal/clients/kafka_client"
	"github.com/spacesedan/coinsignal/internal/models"
	"github.com/spacesedan/coinsignal/internal/pipeline"
	"github.com/spacesedan/coinsignal/internal/utils"
)

const SHUTDOWN_FLUSH_TIMEOUT = 30 * time.Second

var (
	orchestrator *pipeline.Orchestrator
	scoredBuffer = utils.NewBatchBuffer[models.ScoredPost]()
)

// Init wires the consumers to the scoring pipeline. Must run before
// StartConsumers.
func Init(o *pipeline.Orchestrator) {
	orchestrator = o
}

// shutdownFlushContext detaches from the cancelled run context so the
// final flush can still publish, persist and commit. Bounded by a
// timeout so shutdown cannot hang on a dead broker.
func shutdownFlushContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), SHUTDOWN_FLUSH_TIMEOUT)
}

// StartRawPostsConsumer scores incoming posts and republishes them in
// batches to the scored-posts topic. Offsets are committed only after
// the scored batch is published.
func StartRawPostsConsumer(ctx context.Context, consumer *kafka.Consumer) {
	slog.Info("[RawPostsConsumer] Starting...")

	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	ticker := time.NewTicker(kafka_client.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("[RawPostsConsumer] Context cancelled, flushing remaining posts...")
			flushCtx, cancel := shutdownFlushContext(ctx)
			flushScoredPosts(kafka_client.NewCommitHandler(flushCtx, consumer))
			cancel()
			return
		case <-ticker.C:
			if scoredBuffer.HasData() {
				flushScoredPosts(committer)
			}
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var posts []models.RawPost
			if err := utils.DeserializeFromJSON(msg.Value, &posts); err != nil {
				slog.Warn("[RawPostsConsumer] Skipping malformed message",
					slog.String("error", err.Error()))
				continue
			}
			if len(posts) == 0 {
				continue
			}

			utils.TrackMessage(posts[0].PostID, msg)

			for _, post := range posts {
				scoredBuffer.Add(orchestrator.ScorePost(post))
			}

			if scoredBuffer.Size() >= kafka_client.BATCH_SIZE {
				flushScoredPosts(committer)
			}
		}
	}
}

// flushScoredPosts publishes the buffered batch and commits the offsets
// of every message whose posts made it into the batch.
func flushScoredPosts(committer *kafka_client.KafkaCommitHandler) {
	scoredBuffer.LogBatchProcessing("scored_posts")
	batch := scoredBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	var err error
	for i := 0; i < 3; i++ {
		err = kafka_client.PublishToKafka(kafka_client.KAFKA_TOPIC_SCORED_POSTS, "", batch)
		if err == nil {
			break
		}
		slog.Warn("[RawPostsConsumer] Failed to publish scored batch, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(kafka_client.RETRY_DELAY)
	}
	if err != nil {
		slog.Error("[RawPostsConsumer] Dropping scored batch after retries",
			slog.Int("batch_size", len(batch)),
			slog.String("error", err.Error()))
		return
	}

	for _, post := range batch {
		msg, ok := utils.GetMessageForPost(post.PostID)
		if !ok {
			continue
		}
		if err := committer.Commit(msg); err != nil {
			slog.Warn("[RawPostsConsumer] Failed to commit offset",
				slog.String("post_id", post.PostID),
				slog.String("error", err.Error()))
		}
	}

	slog.Info("[RawPostsConsumer] Published scored batch",
		slog.Int("batch_size", len(batch)))
}
