package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/biaslens/biaslens/internal/models"
)

func BatchInsertEvents(ctx context.Context, events []models.Event) error {
	const maxBatchSize = 25
	for i := 0; i < len(events); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:

			end := i + maxBatchSize
			if end > len(events) {
				end = len(events)
			}

			writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
			for _, event := range events[i:end] {
				writeRequests = append(writeRequests, types.WriteRequest{
					PutRequest: &types.PutRequest{
						Item: EventToDynamoDBItem(event),
					},
				})
			}

			out, err := client().BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					eventsTable: writeRequests,
				},
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to batch write events: %w", err)
			}

			retryCount := 0
			backoff := 500 * time.Millisecond
			for len(out.UnprocessedItems) > 0 && retryCount < 3 {
				time.Sleep(backoff)
				backoff *= 2

				slog.Warn("[DynamoDB] Retrying unprocessed events...",
					slog.Int("attempt", retryCount+1),
					slog.Int("remaining", len(out.UnprocessedItems[eventsTable])))

				out, err = client().BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
					RequestItems: out.UnprocessedItems,
				})
				if err != nil {
					return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
				}

				retryCount++
			}

			if len(out.UnprocessedItems) > 0 {
				slog.Error("[DynamoDB] Some events were not written even after retries",
					slog.Int("remaining", len(out.UnprocessedItems[eventsTable])))
			}
		}
	}

	slog.Info("[DynamoDB] Successfully stored events", slog.Int("count", len(events)))
	return nil
}

func EventToDynamoDBItem(event models.Event) map[string]types.AttributeValue {
	item := make(map[string]types.AttributeValue)

	item["event_id"] = &types.AttributeValueMemberS{Value: event.EventID}
	item["session_id"] = &types.AttributeValueMemberS{Value: event.SessionID}
	item["event_type"] = &types.AttributeValueMemberS{Value: event.EventType}
	item["created_at"] = &types.AttributeValueMemberS{Value: event.CreatedAt.UTC().Format(time.RFC3339)}

	expiresAt := event.ExpiresAt
	if expiresAt == 0 {
		expiresAt = time.Now().Add(30 * 24 * time.Hour).Unix()
	}
	item["expires_at"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expiresAt)}

	if len(event.Metadata) > 0 {
		metadata := make(map[string]types.AttributeValue, len(event.Metadata))
		for k, v := range event.Metadata {
			metadata[k] = &types.AttributeValueMemberS{Value: v}
		}
		item["metadata"] = &types.AttributeValueMemberM{Value: metadata}
	}

	return item
}
