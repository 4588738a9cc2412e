package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var messageMap sync.Map

// TrackMessage remembers which Kafka message carried an event so its offset
// can be committed once the batch holding the event has been flushed.
func TrackMessage(eventID string, msg *kafka.Message) {
	messageMap.Store(eventID, msg)
}

func GetMessageForEvent(eventID string) (*kafka.Message, bool) {
	msg, ok := messageMap.Load(eventID)
	if !ok {
		return nil, false
	}
	messageMap.Delete(eventID)
	return msg.(*kafka.Message), true
}
