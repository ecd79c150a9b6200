package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/coinsignal/internal/clients"
	"github.com/spacesedan/coinsignal/internal/models"
)

const (
	SNAPSHOTS_TABLE_NAME = "TrendSnapshots"
	SIGNALS_TABLE_NAME   = "TradingSignals"

	snapshotTTL = 7 * 24 * time.Hour
	signalTTL   = 24 * time.Hour
)

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

// StoreSnapshot writes one aggregate snapshot document, keyed by its
// generation timestamp.
func StoreSnapshot(ctx context.Context, snapshot *models.TrendSnapshot) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	item, err := attributevalue.MarshalMap(snapshot)
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal snapshot: %w", err)
	}
	item["snapshot_id"] = &types.AttributeValueMemberS{
		Value: snapshot.Timestamp.UTC().Format(time.RFC3339),
	}
	item["expires_at"] = &types.AttributeValueMemberN{
		Value: fmt.Sprintf("%d", time.Now().Add(snapshotTTL).Unix()),
	}

	_, err = dbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: stringPtr(SNAPSHOTS_TABLE_NAME),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to store snapshot: %w", err)
	}

	slog.Info("[DynamoDB] Successfully stored snapshot",
		slog.Int("signals", len(snapshot.TradingSignals)))
	return nil
}

// BatchInsertSignals writes the ranked signals in DynamoDB-sized chunks,
// retrying unprocessed items with backoff.
func BatchInsertSignals(ctx context.Context, signals []models.TradingSignal) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}
	if len(signals) == 0 {
		return nil
	}

	const maxBatchSize = 25
	for i := 0; i < len(signals); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		end := i + maxBatchSize
		if end > len(signals) {
			end = len(signals)
		}

		writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
		for _, signal := range signals[i:end] {
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{
					Item: SignalToDynamoDBItem(signal),
				},
			})
		}

		out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				SIGNALS_TABLE_NAME: writeRequests,
			},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to batch write signals: %w", err)
		}

		retryCount := 0
		backoff := 500 * time.Millisecond
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			time.Sleep(backoff)
			backoff *= 2

			slog.Warn("[DynamoDB] Retrying unprocessed signal items...",
				slog.Int("attempt", retryCount+1),
				slog.Int("remaining", len(out.UnprocessedItems[SIGNALS_TABLE_NAME])))

			out, err = dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Retry error: %w", err)
			}

			retryCount++
		}

		if len(out.UnprocessedItems) > 0 {
			slog.Error("[DynamoDB] Some signal items failed after retries",
				slog.Int("remaining", len(out.UnprocessedItems[SIGNALS_TABLE_NAME])))
		}
	}

	slog.Info("[DynamoDB] Successfully stored trading signals",
		slog.Int("count", len(signals)))
	return nil
}

func SignalToDynamoDBItem(signal models.TradingSignal) map[string]types.AttributeValue {
	item := make(map[string]types.AttributeValue)

	item["coin"] = &types.AttributeValueMemberS{Value: signal.Coin}
	item["generated_at"] = &types.AttributeValueMemberS{Value: signal.Timestamp.UTC().Format(time.RFC3339)}
	item["signal_type"] = &types.AttributeValueMemberS{Value: string(signal.SignalType)}
	item["signal_strength"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", signal.SignalStrength)}
	item["confidence"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", signal.Confidence)}
	item["ttl"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Add(signalTTL).Unix())}

	metrics := map[string]types.AttributeValue{
		"sentiment_score":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", signal.Metrics.SentimentScore)},
		"engagement_impact": &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", signal.Metrics.EngagementImpact)},
		"mention_count":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", signal.Metrics.MentionCount)},
		"raw_compound":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", signal.Metrics.RawSentiment.Compound)},
	}
	item["metrics"] = &types.AttributeValueMemberM{Value: metrics}

	return item
}

func stringPtr(s string) *string {
	return &s
}
