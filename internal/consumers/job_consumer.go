package consumers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/biaslens/biaslens/internal/clients"
	"github.com/biaslens/biaslens/internal/clients/kafka_client"
	"github.com/biaslens/biaslens/internal/db"
	"github.com/biaslens/biaslens/internal/events"
	"github.com/biaslens/biaslens/internal/models"
	"github.com/biaslens/biaslens/internal/pipeline"
	"github.com/biaslens/biaslens/internal/utils"
)

var jobPipeline *pipeline.Pipeline

// InitJobConsumer wires in the pipeline the consumer runs jobs through.
// Must be called before the consumer starts.
func InitJobConsumer(p *pipeline.Pipeline) {
	jobPipeline = p
}

func StartJobConsumer(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[JobConsumer] Consumer shutting down...")
			return
		default:
			if !allHealthy(health) {
				time.Sleep(HEALTH_PAUSE)
				continue
			}

			msg, err := iterator.Next()
			if err != nil {
				if errors.Is(err, kafka_client.ErrNoMessage) {
					continue
				}
				utils.HandleConsumerError(err)
				continue
			}

			var job models.JobMessage
			if err := utils.DeserializeFromJSON(msg.Value, &job); err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			if clients.GetValkeyClient().IsJobProcessed(ctx, job.JobID) {
				slog.Info("[JobConsumer] Skipping already processed job",
					slog.String("job_id", job.JobID))
				if err := committer.Commit(msg); err != nil {
					slog.Warn("[JobConsumer] Failed to commit offset",
						slog.String("error", err.Error()))
				}
				continue
			}

			handleJob(ctx, job)

			if err := clients.GetValkeyClient().MarkJobProcessed(ctx, job.JobID); err != nil {
				slog.Warn("[JobConsumer] Failed to mark job processed",
					slog.String("job_id", job.JobID),
					slog.String("error", err.Error()))
			}
			if err := committer.Commit(msg); err != nil {
				slog.Warn("[JobConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}

func handleJob(ctx context.Context, job models.JobMessage) {
	now := time.Now().UTC()
	record := models.AnalysisJob{
		JobID:     job.JobID,
		SessionID: job.SessionID,
		InputURL:  job.InputURL,
		Status:    models.JobRunning,
		CreatedAt: job.EnqueuedAt,
		UpdatedAt: now,
		ExpiresAt: now.Add(models.JobTTL).Unix(),
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if err := db.SaveJob(ctx, record); err != nil {
		slog.Warn("[JobConsumer] Failed to save running status",
			slog.String("job_id", job.JobID),
			slog.String("error", err.Error()))
	}

	outcome, err := jobPipeline.Run(ctx, job.InputURL, job.SessionID)
	record.UpdatedAt = time.Now().UTC()

	if err != nil {
		record.Status = models.JobFailed
		record.Error = err.Error()
		if saveErr := db.SaveJob(ctx, record); saveErr != nil {
			slog.Error("[JobConsumer] Failed to save failed job",
				slog.String("job_id", job.JobID),
				slog.String("error", saveErr.Error()))
		}
		events.Publish(job.SessionID, models.EventJobFailed, map[string]string{
			"job_id": job.JobID,
			"error":  err.Error(),
		})
		slog.Error("[JobConsumer] Job analysis failed",
			slog.String("job_id", job.JobID),
			slog.String("error", err.Error()))
		return
	}

	record.Status = models.JobCompleted
	record.Result = &outcome
	if saveErr := db.SaveJob(ctx, record); saveErr != nil {
		slog.Error("[JobConsumer] Failed to save completed job",
			slog.String("job_id", job.JobID),
			slog.String("error", saveErr.Error()))
	}

	if histErr := db.StoreHistory(ctx, models.NewHistoryRecord(job.SessionID, outcome)); histErr != nil {
		slog.Warn("[JobConsumer] Failed to store history",
			slog.String("job_id", job.JobID),
			slog.String("error", histErr.Error()))
	}

	events.Publish(job.SessionID, models.EventJobCompleted, map[string]string{
		"job_id":      job.JobID,
		"analysis_id": outcome.AnalysisID,
		"source":      string(outcome.Source),
	})
}
