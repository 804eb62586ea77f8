package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/visapath-api/internal/domain"
)

// InquiryRepo provides typed DynamoDB operations for the inquiries table.
type InquiryRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInquiryRepo(client *dynamodb.Client, tableName string) *InquiryRepo {
	return &InquiryRepo{client: client, tableName: tableName}
}

func (r *InquiryRepo) Put(ctx context.Context, i *domain.Inquiry) error {
	item, err := attributevalue.MarshalMap(i)
	if err != nil {
		return fmt.Errorf("marshal inquiry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ScanPage returns a page of inquiries.
// cursor is a base64-encoded inquiry_id used as ExclusiveStartKey.
func (r *InquiryRepo) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Inquiry, string, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(limit),
	}
	if cursor != "" {
		inquiryID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"inquiry_id": &types.AttributeValueMemberS{Value: inquiryID},
		}
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, "", err
	}
	var inquiries []domain.Inquiry
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &inquiries); err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["inquiry_id"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return inquiries, nextCursor, nil
}

func (r *InquiryRepo) Update(ctx context.Context, inquiryID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("inquiry_id", inquiryID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
