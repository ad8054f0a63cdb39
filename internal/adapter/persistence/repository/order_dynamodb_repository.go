package repository

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName = "repair_orders"

	// folioCounterID is the reserved item that backs NextFolio. It shares the
	// orders table so the sequence survives restarts without a second table.
	folioCounterID = "_folio"
)

type orderItem struct {
	ID         string `dynamodbav:"id"`
	CustomerID string `dynamodbav:"customer_id"`
	DisplayID  string `dynamodbav:"display_id"`
	Status     string `dynamodbav:"status"`
	Doc        string `dynamodbav:"doc"`
}

type folioItem struct {
	ID    string `dynamodbav:"id"`
	Folio int    `dynamodbav:"folio"`
}

// OrderDynamoRepository persists RepairOrder aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The aggregate (services, events, errors, authorizations) is stored as an
// opaque JSON document under the doc attribute; the top-level attributes
// exist only for filtering and inspection. The folio counter lives in the
// same table under a reserved id.

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) LoadAll(ctx context.Context) ([]entities.RepairOrder, error) {
	orders := make([]entities.RepairOrder, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String("#id <> :folio"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":folio": &types.AttributeValueMemberS{Value: folioCounterID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			order, err := fromOrderItem(it)
			if err != nil {
				return nil, err
			}
			orders = append(orders, order)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	// Folios are monotonic, so descending display id is newest first.
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].DisplayID > orders[j].DisplayID
	})
	return orders, nil
}

func (r *OrderDynamoRepository) LoadByID(ctx context.Context, id string) (entities.RepairOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.RepairOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.RepairOrder{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.RepairOrder{}, err
	}
	return fromOrderItem(it)
}

func (r *OrderDynamoRepository) SaveAll(ctx context.Context, orders []entities.RepairOrder) error {
	for _, order := range orders {
		if err := r.Upsert(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderDynamoRepository) Upsert(ctx context.Context, order entities.RepairOrder) error {
	it, err := toOrderItem(order)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *OrderDynamoRepository) NextFolio(ctx context.Context) (int, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: folioCounterID},
		},
		UpdateExpression: aws.String("ADD #folio :one"),
		ExpressionAttributeNames: map[string]string{
			"#folio": "folio",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return 0, err
	}

	var it folioItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return 0, err
	}
	return it.Folio, nil
}

func toOrderItem(order entities.RepairOrder) (orderItem, error) {
	doc, err := json.Marshal(order)
	if err != nil {
		return orderItem{}, err
	}
	return orderItem{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		DisplayID:  order.DisplayID,
		Status:     string(order.Status),
		Doc:        string(doc),
	}, nil
}

func fromOrderItem(it orderItem) (entities.RepairOrder, error) {
	var order entities.RepairOrder
	if err := json.Unmarshal([]byte(it.Doc), &order); err != nil {
		return entities.RepairOrder{}, err
	}
	return order, nil
}
