package kafka_client

import (
	"context"

	"github.com/biaslens/biaslens/internal/models"
)

// JobPublisher enqueues analysis jobs for the worker. It satisfies the
// server's JobQueue interface.
type JobPublisher struct{}

func (JobPublisher) Enqueue(ctx context.Context, msg models.JobMessage) error {
	return PublishToKafka(KAFKA_TOPIC_ANALYSIS_JOBS, msg.JobID, msg)
}
