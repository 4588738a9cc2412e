package events

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/biaslens/biaslens/internal/clients/kafka_client"
	"github.com/biaslens/biaslens/internal/models"
)

const EVENT_TTL = 30 * 24 * time.Hour

var enabled atomic.Bool

// Enable turns publishing on once the Kafka producer is up. Until then
// Publish drops events silently so the API can serve without Kafka.
func Enable() {
	enabled.Store(true)
}

func Publish(sessionID, eventType string, metadata map[string]string) {
	if !enabled.Load() {
		return
	}

	now := time.Now().UTC()
	event := models.Event{
		EventID:   uuid.NewString(),
		SessionID: sessionID,
		EventType: eventType,
		Metadata:  metadata,
		CreatedAt: now,
		ExpiresAt: now.Add(EVENT_TTL).Unix(),
	}

	if err := kafka_client.PublishToKafka(kafka_client.KAFKA_TOPIC_ANALYSIS_EVENTS, event.EventID, event); err != nil {
		slog.Warn("[Events] Failed to publish event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
