package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/biaslens/biaslens/internal/models"
)

func StoreFeedback(ctx context.Context, fb models.FeedbackRecord) error {
	item, err := attributevalue.MarshalMap(fb)
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal feedback: %w", err)
	}

	_, err = client().PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(feedbackTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to store feedback: %w", err)
	}

	slog.Info("[DynamoDB] Stored feedback",
		slog.String("id", fb.ID),
		slog.String("vote", fb.Vote))
	return nil
}
