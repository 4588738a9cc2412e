package db

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/biaslens/biaslens/internal/models"
)

func GetMetrics(ctx context.Context) (models.Metrics, error) {
	var m models.Metrics
	var err error

	if m.AnalysesTotal, err = countScan(ctx, historyTable, nil, nil, nil); err != nil {
		return m, err
	}
	if m.FeedbackTotal, err = countScan(ctx, feedbackTable, nil, nil, nil); err != nil {
		return m, err
	}
	if m.FeedbackUp, err = countScan(ctx, feedbackTable,
		aws.String("vote = :v"), nil,
		map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: models.VoteUp},
		}); err != nil {
		return m, err
	}
	if m.FeedbackDown, err = countScan(ctx, feedbackTable,
		aws.String("vote = :v"), nil,
		map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: models.VoteDown},
		}); err != nil {
		return m, err
	}
	if m.JobsTotal, err = countScan(ctx, jobsTable, nil, nil, nil); err != nil {
		return m, err
	}
	// "status" is a DynamoDB reserved word, hence the name placeholder.
	if m.JobsFailed, err = countScan(ctx, jobsTable,
		aws.String("#st = :failed"),
		map[string]string{"#st": "status"},
		map[string]types.AttributeValue{
			":failed": &types.AttributeValueMemberS{Value: string(models.JobFailed)},
		}); err != nil {
		return m, err
	}

	return m, nil
}

func countScan(ctx context.Context, table string, filter *string, names map[string]string, values map[string]types.AttributeValue) (int64, error) {
	input := &dynamodb.ScanInput{
		TableName:                 aws.String(table),
		Select:                    types.SelectCount,
		FilterExpression:          filter,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}

	var total int64
	paginator := dynamodb.NewScanPaginator(client(), input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("[DynamoDB] Count scan on %s failed: %w", table, err)
		}
		total += int64(out.Count)
	}
	return total, nil
}
