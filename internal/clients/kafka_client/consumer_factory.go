package kafka_client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var consumerRegistry = make(map[string]func(context.Context, *kafka.Consumer))

func RegisterConsumer(topic string, consumerFunc func(context.Context, *kafka.Consumer)) {
	consumerRegistry[topic] = consumerFunc
}

// StartConsumers runs one consumer goroutine per registered topic and
// blocks until every consumer returns.
func StartConsumers(ctx context.Context, cfg KafkaConfig) error {
	if len(consumerRegistry) == 0 {
		return fmt.Errorf("[ConsumerFactory] No consumers registered")
	}

	var wg sync.WaitGroup
	for topic, consumerFunc := range consumerRegistry {
		consumer, err := NewConsumer(cfg, topic)
		if err != nil {
			return fmt.Errorf("[ConsumerFactory] Failed to initialize Kafka consumer for %s: %w", topic, err)
		}

		wg.Add(1)
		go func(topic string, consumer *kafka.Consumer, consumerFunc func(context.Context, *kafka.Consumer)) {
			defer wg.Done()
			defer consumer.Close()

			slog.Info("[ConsumerFactory] Starting consumer for topic...",
				slog.String("topic", topic))
			consumerFunc(ctx, consumer)
		}(topic, consumer, consumerFunc)
	}

	wg.Wait()
	return nil
}
