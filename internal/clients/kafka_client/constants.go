package kafka_client

import "time"

const (
	KAFKA_TOPIC_ANALYSIS_RESULTS = "analysis-results" // one event per completed submission
)

const (
	MAX_RETRIES   = 3
	RETRY_DELAY   = 500 * time.Millisecond
	FLUSH_TIMEOUT = 5 * time.Second
)
