package domain

import "time"

// Account roles. RoleUser and RoleAgency are derived once at registration
// from the sign-up-as-agency flag; RoleAdmin is assigned out of band.
const (
	RoleUser   = "user"
	RoleAgency = "agency"
	RoleAdmin  = "admin"
)

type Account struct {
	AccountID     string     `json:"id" dynamodbav:"account_id"`
	Email         string     `json:"email" dynamodbav:"email"`
	PasswordHash  string     `json:"-" dynamodbav:"password_hash"`
	FirstName     string     `json:"first_name" dynamodbav:"first_name"`
	LastName      string     `json:"last_name" dynamodbav:"last_name"`
	Phone         *string    `json:"phone,omitempty" dynamodbav:"phone"`
	Role          string     `json:"role" dynamodbav:"role"`
	EmailVerified bool       `json:"email_verified" dynamodbav:"email_verified"`
	AuthProvider  string     `json:"auth_provider,omitempty" dynamodbav:"auth_provider"` // "local" | "google"
	GoogleSub     string     `json:"-" dynamodbav:"google_sub"`
	Enable        bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt     time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// RegisterRequest is the payload of POST /auth/register.
// SignUpAsAgency selects the agency role at account creation.
type RegisterRequest struct {
	FirstName      string  `json:"firstName" validate:"required"`
	LastName       string  `json:"lastName" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber    *string `json:"phoneNumber"`
	SignUpAsAgency bool    `json:"signUpAsAgency"`
}

type UpdateAccountRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	Enable    *bool   `json:"enable"`
}
