package kafka_client

import "time"

const (
	KAFKA_TOPIC_RAW_POSTS       = "raw-posts"       // normalized posts from the collectors
	KAFKA_TOPIC_SCORED_POSTS    = "scored-posts"    // posts with sentiment, assets and engagement attached
	KAFKA_TOPIC_TRADING_SIGNALS = "trading-signals" // ranked signals per snapshot run
)

const (
	BATCH_SIZE    = 50
	BATCH_TIMEOUT = 5 * time.Second
	MAX_RETRIES   = 5
	RETRY_DELAY   = 2 * time.Second
)
