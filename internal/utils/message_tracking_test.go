package utils

import (
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/require"
)

func TestTrackMessageRoundTrip(t *testing.T) {
	msg := &kafka.Message{Value: []byte("payload")}
	TrackMessage("evt-1", msg)

	got, found := GetMessageForEvent("evt-1")
	require.True(t, found)
	require.Same(t, msg, got)

	// Lookup consumes the entry, so a second read misses.
	_, found = GetMessageForEvent("evt-1")
	require.False(t, found)
}

func TestGetMessageForUnknownEvent(t *testing.T) {
	got, found := GetMessageForEvent("never-tracked")
	require.False(t, found)
	require.Nil(t, got)
}
