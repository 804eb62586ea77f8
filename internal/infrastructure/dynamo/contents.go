package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/visapath-api/internal/domain"
)

// ContentRepo provides typed DynamoDB operations for the contents table.
type ContentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewContentRepo(client *dynamodb.Client, tableName string) *ContentRepo {
	return &ContentRepo{client: client, tableName: tableName}
}

func (r *ContentRepo) Put(ctx context.Context, c *domain.Content) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ContentRepo) Get(ctx context.Context, contentID string) (*domain.Content, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("content_id", contentID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("content not found: %w", domain.ErrNotFound)
	}
	var c domain.Content
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetBySlug looks up a document by its URL slug via GSI.
func (r *ContentRepo) GetBySlug(ctx context.Context, slug string) (*domain.Content, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("slug-index"),
		KeyConditionExpression: aws.String("slug = :s"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":s": &types.AttributeValueMemberS{Value: slug},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("content not found: %w", domain.ErrNotFound)
	}
	var c domain.Content
	if err := attributevalue.UnmarshalMap(out.Items[0], &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Scan returns every document. The content catalogue is small (site pages
// and guides), so a full scan is acceptable here.
func (r *ContentRepo) Scan(ctx context.Context) ([]domain.Content, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var contents []domain.Content
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *ContentRepo) Update(ctx context.Context, contentID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("content_id", contentID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *ContentRepo) HardDelete(ctx context.Context, contentID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("content_id", contentID),
	})
	return err
}
