package db

import (
	"os"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/biaslens/biaslens/internal/clients"
)

var (
	dbClient *dynamodb.Client

	historyTable  = "BiasLensHistory"
	jobsTable     = "BiasLensJobs"
	feedbackTable = "BiasLensFeedback"
	eventsTable   = "BiasLensEvents"
)

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
	historyTable = tableName("DYNAMO_HISTORY_TABLE", "BiasLensHistory")
	jobsTable = tableName("DYNAMO_JOBS_TABLE", "BiasLensJobs")
	feedbackTable = tableName("DYNAMO_FEEDBACK_TABLE", "BiasLensFeedback")
	eventsTable = tableName("DYNAMO_EVENTS_TABLE", "BiasLensEvents")
}

func tableName(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func client() *dynamodb.Client {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}
	return dbClient
}
