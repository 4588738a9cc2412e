package consumers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/biaslens/biaslens/internal/clients/kafka_client"
	"github.com/biaslens/biaslens/internal/db"
	"github.com/biaslens/biaslens/internal/models"
	"github.com/biaslens/biaslens/internal/utils"
)

var eventBuffer = utils.NewBatchBuffer[models.Event]()

// StartEventConsumer accumulates usage events and writes them to storage
// in batches. Offsets are committed only after their batch lands, so a
// crash redelivers anything still buffered.
func StartEventConsumer(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[EventConsumer] Consumer shutting down...")
			return
		case <-ticker.C:
			flushEvents(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				if errors.Is(err, kafka_client.ErrNoMessage) {
					continue
				}
				utils.HandleConsumerError(err)
				continue
			}

			var event models.Event
			if err := utils.DeserializeFromJSON(msg.Value, &event); err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			utils.TrackMessage(event.EventID, msg)
			eventBuffer.Add(event)
			if eventBuffer.Size() >= utils.BATCH_SIZE {
				flushEvents(ctx, committer)
			}
		}
	}
}

func flushEvents(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	var insertErr error
	batch := eventBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	for i := 0; i < 3; i++ {
		insertErr = db.BatchInsertEvents(ctx, batch)
		if insertErr == nil {
			break
		}
		slog.Error("[EventConsumer] Failed to write events to DB",
			slog.String("error", insertErr.Error()),
			slog.Int("attempt", i+1))
	}
	if insertErr != nil {
		slog.Error("[EventConsumer] Batch not persisted, leaving offsets uncommitted",
			slog.Int("count", len(batch)))
		return
	}

	for _, event := range batch {
		msg, found := utils.GetMessageForEvent(event.EventID)
		if found {
			if err := committer.Commit(msg); err != nil {
				slog.Warn("[EventConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}
