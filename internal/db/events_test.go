package db

import (
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"github.com/biaslens/biaslens/internal/models"
)

func TestEventToDynamoDBItem(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	event := models.Event{
		EventID:   "evt-1",
		SessionID: "sess-1",
		EventType: "analysis_completed",
		Metadata:  map[string]string{"source": "center"},
		CreatedAt: created,
		ExpiresAt: created.Add(30 * 24 * time.Hour).Unix(),
	}

	item := EventToDynamoDBItem(event)

	require.Equal(t, &types.AttributeValueMemberS{Value: "evt-1"}, item["event_id"])
	require.Equal(t, &types.AttributeValueMemberS{Value: "sess-1"}, item["session_id"])
	require.Equal(t, &types.AttributeValueMemberS{Value: "analysis_completed"}, item["event_type"])
	require.Equal(t, &types.AttributeValueMemberS{Value: "2026-03-14T09:26:53Z"}, item["created_at"])

	n, ok := item["expires_at"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	require.Equal(t, strconv.FormatInt(event.ExpiresAt, 10), n.Value)

	m, ok := item["metadata"].(*types.AttributeValueMemberM)
	require.True(t, ok)
	require.Equal(t, &types.AttributeValueMemberS{Value: "center"}, m.Value["source"])
}

func TestEventToDynamoDBItemBackfillsTTL(t *testing.T) {
	item := EventToDynamoDBItem(models.Event{EventID: "evt-2", CreatedAt: time.Now()})

	n, ok := item["expires_at"].(*types.AttributeValueMemberN)
	require.True(t, ok)

	expires, err := strconv.ParseInt(n.Value, 10, 64)
	require.NoError(t, err)
	require.Greater(t, expires, time.Now().Add(29*24*time.Hour).Unix())
}

func TestEventToDynamoDBItemOmitsEmptyMetadata(t *testing.T) {
	item := EventToDynamoDBItem(models.Event{EventID: "evt-3", CreatedAt: time.Now()})
	require.NotContains(t, item, "metadata")
}
