package repository

import (
	"context"
	"strconv"
	"time"

	"mecanica_os/internal/domain/entities"
	"mecanica_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPartsTableName    = "parts"
	defaultServicesTableName = "services"
)

type catalogItem struct {
	ID          string `dynamodbav:"id"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description,omitempty"`
	Price       string `dynamodbav:"price"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// PartDynamoRepository persists Part catalog entries in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type PartDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPartRepository = (*PartDynamoRepository)(nil)

func NewPartDynamoRepository(ddb *dynamodb.Client) *PartDynamoRepository {
	return &PartDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PARTS_TABLE", defaultPartsTableName),
	}
}

func (r *PartDynamoRepository) Create(ctx context.Context, p entities.Part) (entities.Part, error) {
	if err := putCatalogItem(ctx, r.ddb, r.tableName, catalogItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       floatToString(p.Price),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}); err != nil {
		return entities.Part{}, err
	}
	return p, nil
}

func (r *PartDynamoRepository) GetByID(ctx context.Context, id string) (entities.Part, error) {
	it, found, err := getCatalogItem(ctx, r.ddb, r.tableName, id)
	if err != nil || !found {
		return entities.Part{}, err
	}
	return entities.Part{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       parseFloatOrZero(it.Price),
		CreatedAt:   parseTimeOrZero(it.CreatedAt),
		UpdatedAt:   parseTimeOrZero(it.UpdatedAt),
	}, nil
}

func (r *PartDynamoRepository) List(ctx context.Context) ([]entities.Part, error) {
	items, err := scanCatalogItems(ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	parts := make([]entities.Part, 0, len(items))
	for _, it := range items {
		parts = append(parts, entities.Part{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       parseFloatOrZero(it.Price),
			CreatedAt:   parseTimeOrZero(it.CreatedAt),
			UpdatedAt:   parseTimeOrZero(it.UpdatedAt),
		})
	}
	return parts, nil
}

// ServiceDynamoRepository persists labor catalog entries in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type ServiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb *dynamodb.Client) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SERVICES_TABLE", defaultServicesTableName),
	}
}

func (r *ServiceDynamoRepository) Create(ctx context.Context, s entities.Service) (entities.Service, error) {
	if err := putCatalogItem(ctx, r.ddb, r.tableName, catalogItem{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       floatToString(s.Price),
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   s.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}); err != nil {
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	it, found, err := getCatalogItem(ctx, r.ddb, r.tableName, id)
	if err != nil || !found {
		return entities.Service{}, err
	}
	return entities.Service{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       parseFloatOrZero(it.Price),
		CreatedAt:   parseTimeOrZero(it.CreatedAt),
		UpdatedAt:   parseTimeOrZero(it.UpdatedAt),
	}, nil
}

func (r *ServiceDynamoRepository) List(ctx context.Context) ([]entities.Service, error) {
	items, err := scanCatalogItems(ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	services := make([]entities.Service, 0, len(items))
	for _, it := range items {
		services = append(services, entities.Service{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       parseFloatOrZero(it.Price),
			CreatedAt:   parseTimeOrZero(it.CreatedAt),
			UpdatedAt:   parseTimeOrZero(it.UpdatedAt),
		})
	}
	return services, nil
}

func putCatalogItem(ctx context.Context, ddb *dynamodb.Client, tableName string, it catalogItem) error {
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

func getCatalogItem(ctx context.Context, ddb *dynamodb.Client, tableName, id string) (catalogItem, bool, error) {
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return catalogItem{}, false, err
	}
	if len(out.Item) == 0 {
		return catalogItem{}, false, nil
	}

	var it catalogItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return catalogItem{}, false, err
	}
	return it, true, nil
}

func scanCatalogItems(ctx context.Context, ddb *dynamodb.Client, tableName string) ([]catalogItem, error) {
	items := make([]catalogItem, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Items {
			var it catalogItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, it)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

func parseFloatOrZero(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

func parseTimeOrZero(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}
