package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"mecanica_os/internal/domain/entities"
	"mecanica_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultServiceOrdersTableName = "service_orders"

type serviceItemRecord struct {
	ServiceID string `dynamodbav:"service_id"`
	Name      string `dynamodbav:"name"`
	Price     string `dynamodbav:"price"`
}

type partItemRecord struct {
	PartID    string `dynamodbav:"part_id"`
	Name      string `dynamodbav:"name"`
	Quantity  int    `dynamodbav:"quantity"`
	UnitPrice string `dynamodbav:"unit_price"`
}

type serviceOrderItem struct {
	ID              string              `dynamodbav:"id"`
	CustomerID      string              `dynamodbav:"customer_id"`
	VehicleID       string              `dynamodbav:"vehicle_id"`
	Status          string              `dynamodbav:"status"`
	Services        []serviceItemRecord `dynamodbav:"services"`
	PartsSupplies   []partItemRecord    `dynamodbav:"parts_supplies"`
	TotalValue      string              `dynamodbav:"total_value"`
	RejectionReason string              `dynamodbav:"rejection_reason,omitempty"`
	CreatedAt       string              `dynamodbav:"created_at"`
	UpdatedAt       string              `dynamodbav:"updated_at"`
	Version         int64               `dynamodbav:"version"`
}

// ServiceOrderDynamoRepository persists ServiceOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Update writes are conditioned on the version read by the caller, so two
// concurrent transitions cannot both commit; the loser gets a zero value.

type ServiceOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb *dynamodb.Client) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SERVICE_ORDERS_TABLE", defaultServiceOrdersTableName),
	}
}

func (r *ServiceOrderDynamoRepository) Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	o.Version = 1
	it := toServiceOrderItem(o)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceOrder{}, nil
	}

	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

// Update replaces the whole order, conditioned on the version the caller
// read. A conditional check failure returns a zero value instead of an error.
func (r *ServiceOrderDynamoRepository) Update(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	readVersion := o.Version
	o.Version = readVersion + 1

	it := toServiceOrderItem(o)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :read_version"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":read_version": &types.AttributeValueMemberN{Value: strconv.FormatInt(readVersion, 10)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.ServiceOrder{}, nil
		}
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderDynamoRepository) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	orders := make([]entities.ServiceOrder, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Items {
			var it serviceOrderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			orders = append(orders, fromServiceOrderItem(it))
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return orders, nil
}

func toServiceOrderItem(o entities.ServiceOrder) serviceOrderItem {
	services := make([]serviceItemRecord, 0, len(o.ServiceItems))
	for _, s := range o.ServiceItems {
		services = append(services, serviceItemRecord{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Price:     floatToString(s.Price),
		})
	}
	parts := make([]partItemRecord, 0, len(o.PartItems))
	for _, p := range o.PartItems {
		parts = append(parts, partItemRecord{
			PartID:    p.PartID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: floatToString(p.UnitPrice),
		})
	}
	return serviceOrderItem{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		VehicleID:       o.VehicleID,
		Status:          string(o.Status),
		Services:        services,
		PartsSupplies:   parts,
		TotalValue:      floatToString(o.TotalValue),
		RejectionReason: o.RejectionReason,
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       o.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Version:         o.Version,
	}
}

func fromServiceOrderItem(it serviceOrderItem) entities.ServiceOrder {
	services := make([]entities.ServiceItem, 0, len(it.Services))
	for _, s := range it.Services {
		price, _ := strconv.ParseFloat(s.Price, 64)
		services = append(services, entities.ServiceItem{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Price:     price,
		})
	}
	parts := make([]entities.PartItem, 0, len(it.PartsSupplies))
	for _, p := range it.PartsSupplies {
		unitPrice, _ := strconv.ParseFloat(p.UnitPrice, 64)
		parts = append(parts, entities.PartItem{
			PartID:    p.PartID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: unitPrice,
		})
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	totalValue, _ := strconv.ParseFloat(it.TotalValue, 64)
	return entities.ServiceOrder{
		ID:              it.ID,
		CustomerID:      it.CustomerID,
		VehicleID:       it.VehicleID,
		Status:          entities.OSStatus(it.Status),
		ServiceItems:    services,
		PartItems:       parts,
		TotalValue:      totalValue,
		RejectionReason: it.RejectionReason,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		Version:         it.Version,
	}
}
