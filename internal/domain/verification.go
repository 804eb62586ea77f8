package domain

// AccountVerification stores password-reset OTPs.
// PK: account_id, SK: type ("password_reset").
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type AccountVerification struct {
	AccountID string `json:"account_id" dynamodbav:"account_id"`
	Type      string `json:"type" dynamodbav:"type"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

const VerificationTypePasswordReset = "password_reset"
