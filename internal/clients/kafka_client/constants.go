package kafka_client

import "time"

const (
	KAFKA_TOPIC_ANALYSIS_JOBS   = "analysis-jobs"   // queued URL analyses handed to workers
	KAFKA_TOPIC_ANALYSIS_EVENTS = "analysis-events" // usage events batched into storage
)

const (
	BATCH_SIZE    = 25
	BATCH_TIMEOUT = 5 * time.Second
	MAX_RETRIES   = 5
	RETRY_DELAY   = 2 * time.Second
)
