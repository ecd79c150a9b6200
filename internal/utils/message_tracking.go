package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var messageMap sync.Map

// TrackMessage remembers which Kafka message carried a post so the offset
// can be committed once the post clears the pipeline.
func TrackMessage(postID string, msg *kafka.Message) {
	messageMap.Store(postID, msg)
}

// GetMessageForPost returns and forgets the tracked message for a post.
func GetMessageForPost(postID string) (*kafka.Message, bool) {
	msg, ok := messageMap.Load(postID)
	if !ok {
		return nil, false
	}
	messageMap.Delete(postID)
	return msg.(*kafka.Message), true
}
