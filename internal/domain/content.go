package domain

import "time"

// Content is a CMS document rendered by the marketing site
// (visa guides, landing-page sections, FAQ entries).
type Content struct {
	ContentID string    `json:"id" dynamodbav:"content_id"`
	Slug      string    `json:"slug" dynamodbav:"slug"`
	Title     string    `json:"title" dynamodbav:"title"`
	Body      string    `json:"body" dynamodbav:"body"`
	Section   string    `json:"section" dynamodbav:"section"`
	Published bool      `json:"published" dynamodbav:"published"`
	CreatedBy string    `json:"created_by" dynamodbav:"created_by"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateContentRequest struct {
	Slug      string `json:"slug" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body" validate:"required"`
	Section   string `json:"section"`
	Published bool   `json:"published"`
}

type UpdateContentRequest struct {
	Slug      *string `json:"slug"`
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Section   *string `json:"section"`
	Published *bool   `json:"published"`
}
