package domain

import "time"

// Inquiry is a visa-inquiry lead captured from the public contact form.
type Inquiry struct {
	InquiryID string    `json:"id" dynamodbav:"inquiry_id"`
	FullName  string    `json:"full_name" dynamodbav:"full_name"`
	Email     string    `json:"email" dynamodbav:"email"`
	Phone     *string   `json:"phone,omitempty" dynamodbav:"phone"`
	VisaType  string    `json:"visa_type" dynamodbav:"visa_type"`
	Message   string    `json:"message" dynamodbav:"message"`
	Status    string    `json:"status" dynamodbav:"status"` // "new" | "contacted" | "closed"
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

type CreateInquiryRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone"`
	VisaType string  `json:"visa_type"`
	Message  string  `json:"message" validate:"required"`
}
