package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/biaslens/biaslens/internal/models"
)

// SaveJob writes the full job state. Status transitions are whole-record
// puts since one worker owns a job at a time.
func SaveJob(ctx context.Context, job models.AnalysisJob) error {
	item, err := attributevalue.MarshalMap(job)
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal job: %w", err)
	}

	_, err = client().PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(jobsTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to save job: %w", err)
	}

	slog.Info("[DynamoDB] Saved job",
		slog.String("job_id", job.JobID),
		slog.String("status", string(job.Status)))
	return nil
}

func GetJob(ctx context.Context, jobID string) (models.AnalysisJob, bool, error) {
	var job models.AnalysisJob

	out, err := client().GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(jobsTable),
		Key: map[string]types.AttributeValue{
			"job_id": &types.AttributeValueMemberS{Value: jobID},
		},
	})
	if err != nil {
		return job, false, fmt.Errorf("[DynamoDB] Failed to get job: %w", err)
	}
	if len(out.Item) == 0 {
		return job, false, nil
	}

	if err := attributevalue.UnmarshalMap(out.Item, &job); err != nil {
		return job, false, fmt.Errorf("[DynamoDB] Failed to unmarshal job: %w", err)
	}
	return job, true, nil
}
