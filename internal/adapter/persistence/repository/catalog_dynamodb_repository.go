package repository

import (
	"context"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultCustomersTableName = "customers"
	defaultVehiclesTableName  = "vehicles"
)

type customerItem struct {
	ID    string `dynamodbav:"id"`
	Name  string `dynamodbav:"name"`
	Phone string `dynamodbav:"phone"`
	Email string `dynamodbav:"email"`
}

type vehicleItem struct {
	ID         string `dynamodbav:"id"`
	Plate      string `dynamodbav:"plate"`
	Model      string `dynamodbav:"model"`
	CustomerID string `dynamodbav:"customer_id"`
}

// CatalogDynamoRepository persists the customer/vehicle reference data in
// two small DynamoDB tables, both keyed by id.

type CatalogDynamoRepository struct {
	ddb            *dynamodb.Client
	customersTable string
	vehiclesTable  string
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb *dynamodb.Client) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{
		ddb:            ddb,
		customersTable: getenvDefault("CUSTOMERS_TABLE", defaultCustomersTableName),
		vehiclesTable:  getenvDefault("VEHICLES_TABLE", defaultVehiclesTableName),
	}
}

func (r *CatalogDynamoRepository) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	items, err := r.scanAll(ctx, r.customersTable)
	if err != nil {
		return nil, err
	}

	customers := make([]entities.Customer, 0, len(items))
	for _, raw := range items {
		var it customerItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		customers = append(customers, entities.Customer{ID: it.ID, Name: it.Name, Phone: it.Phone, Email: it.Email})
	}
	return customers, nil
}

func (r *CatalogDynamoRepository) ListVehicles(ctx context.Context) ([]entities.Vehicle, error) {
	items, err := r.scanAll(ctx, r.vehiclesTable)
	if err != nil {
		return nil, err
	}

	vehicles := make([]entities.Vehicle, 0, len(items))
	for _, raw := range items {
		var it vehicleItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, entities.Vehicle{ID: it.ID, Plate: it.Plate, Model: it.Model, CustomerID: it.CustomerID})
	}
	return vehicles, nil
}

func (r *CatalogDynamoRepository) SaveCustomers(ctx context.Context, customers []entities.Customer) error {
	for _, c := range customers {
		av, err := attributevalue.MarshalMap(customerItem{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email})
		if err != nil {
			return err
		}
		if err := r.putItem(ctx, r.customersTable, av); err != nil {
			return err
		}
	}
	return nil
}

func (r *CatalogDynamoRepository) SaveVehicles(ctx context.Context, vehicles []entities.Vehicle) error {
	for _, v := range vehicles {
		av, err := attributevalue.MarshalMap(vehicleItem{ID: v.ID, Plate: v.Plate, Model: v.Model, CustomerID: v.CustomerID})
		if err != nil {
			return err
		}
		if err := r.putItem(ctx, r.vehiclesTable, av); err != nil {
			return err
		}
	}
	return nil
}

func (r *CatalogDynamoRepository) scanAll(ctx context.Context, table string) ([]map[string]types.AttributeValue, error) {
	items := make([]map[string]types.AttributeValue, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

func (r *CatalogDynamoRepository) putItem(ctx context.Context, table string, av map[string]types.AttributeValue) error {
	_, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	return err
}
