package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/sentiscope/internal/models"
)

const DEFAULT_HANDOFF_TABLE_NAME = "SentiScopeHandoff"

// DynamoDBAPI is the slice of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	TransactGetItems(ctx context.Context, params *dynamodb.TransactGetItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactGetItemsOutput, error)
}

type slotItem struct {
	Slot      string `dynamodbav:"slot"`
	Value     string `dynamodbav:"value"`
	UpdatedAt int64  `dynamodbav:"updated_at"`
}

// DynamoDBStore keeps one item per slot, keyed by "slot".
type DynamoDBStore struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDBStore(client DynamoDBAPI, table string) *DynamoDBStore {
	if table == "" {
		table = DEFAULT_HANDOFF_TABLE_NAME
	}
	return &DynamoDBStore{client: client, table: table}
}

func (d *DynamoDBStore) Save(ctx context.Context, reviews []models.Review, batch models.AnalysisBatch) error {
	reviewsJSON, batchJSON, err := encodeSlots(reviews, batch)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	items := make([]types.TransactWriteItem, 0, 2)
	for _, item := range []slotItem{
		{Slot: SlotReviews, Value: string(reviewsJSON), UpdatedAt: now},
		{Slot: SlotAnalysisResults, Value: string(batchJSON), UpdatedAt: now},
	} {
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("[DynamoDB] marshal %s: %w", item.Slot, err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{TableName: aws.String(d.table), Item: av},
		})
	}

	if _, err := d.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		return fmt.Errorf("[DynamoDB] Failed to write hand-off: %w", err)
	}

	slog.Info("[DynamoDB] Successfully stored hand-off", slog.String("table", d.table))
	return nil
}

// Load reads both slots in one transaction so it never pairs reviews from one save
// with results from another, and never comes back with a slot silently missing.
func (d *DynamoDBStore) Load(ctx context.Context) (Handoff, bool, error) {
	slots := []string{SlotReviews, SlotAnalysisResults}
	gets := make([]types.TransactGetItem, 0, len(slots))
	for _, slot := range slots {
		gets = append(gets, types.TransactGetItem{
			Get: &types.Get{
				TableName: aws.String(d.table),
				Key: map[string]types.AttributeValue{
					"slot": &types.AttributeValueMemberS{Value: slot},
				},
			},
		})
	}

	out, err := d.client.TransactGetItems(ctx, &dynamodb.TransactGetItemsInput{TransactItems: gets})
	if err != nil {
		return Handoff{}, false, fmt.Errorf("[DynamoDB] Failed to read hand-off: %w", err)
	}
	if len(out.Responses) != len(slots) {
		return Handoff{}, false, fmt.Errorf("[DynamoDB] expected %d hand-off responses, got %d", len(slots), len(out.Responses))
	}

	values := make(map[string][]byte, len(slots))
	for i, resp := range out.Responses {
		if resp.Item == nil {
			continue
		}
		var item slotItem
		if err := attributevalue.UnmarshalMap(resp.Item, &item); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal hand-off slot",
				slog.String("slot", slots[i]),
				slog.String("error", err.Error()))
			return Handoff{}, false, err
		}
		values[slots[i]] = []byte(item.Value)
	}

	reviewsJSON, ok := values[SlotReviews]
	if !ok {
		return Handoff{}, false, nil
	}
	h, err := decodeSlots(reviewsJSON, values[SlotAnalysisResults])
	if err != nil {
		return Handoff{}, false, err
	}
	return h, len(h.Reviews) > 0, nil
}

func (d *DynamoDBStore) Close() error {
	return nil
}
