package db

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/biaslens/biaslens/internal/models"
)

func StoreHistory(ctx context.Context, record models.HistoryRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal history record: %w", err)
	}

	_, err = client().PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(historyTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to store history record: %w", err)
	}

	slog.Info("[DynamoDB] Stored history record",
		slog.String("id", record.ID),
		slog.String("session_id", record.SessionID))
	return nil
}

// GetRecentHistory returns the newest records for a session, newest first.
func GetRecentHistory(ctx context.Context, sessionID string, limit int) ([]models.HistoryItem, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(historyTable),
		FilterExpression: aws.String("session_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: sessionID},
		},
	}

	var records []models.HistoryRecord
	paginator := dynamodb.NewScanPaginator(client(), input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for history failed: %w", err)
		}
		var page []models.HistoryRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal history page", slog.String("error", err.Error()))
			return nil, err
		}
		records = append(records, page...)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	items := make([]models.HistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, models.HistoryItem{
			ID:             r.ID,
			InputURL:       r.InputURL,
			Source:         r.Source,
			ExtractionKind: r.ExtractionKind,
			LeftPct:        r.LeftPct,
			CenterPct:      r.CenterPct,
			RightPct:       r.RightPct,
			CreatedAt:      r.CreatedAt,
		})
	}
	return items, nil
}
