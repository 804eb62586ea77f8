package http

import (
	"github.com/visapath-api/internal/infrastructure/dynamo"
	"github.com/visapath-api/internal/infrastructure/google"
	jwtinfra "github.com/visapath-api/internal/infrastructure/jwt"
	"github.com/visapath-api/internal/infrastructure/memstore"
	s3infra "github.com/visapath-api/internal/infrastructure/s3"
	"github.com/visapath-api/internal/infrastructure/smtp"
	"github.com/visapath-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo      *dynamo.AccountRepo
	SessionRepo      *dynamo.SessionRepo
	ContentRepo      *dynamo.ContentRepo
	InquiryRepo      *dynamo.InquiryRepo
	FileRepo         *dynamo.FileRepo
	VerificationRepo *dynamo.VerificationRepo
	PendingStore     *memstore.PendingStore
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender      // optional
	JWTProvider      *jwtinfra.Provider // optional, auth routes degrade to pass-through
	GoogleVerifier   *google.Verifier   // optional, Google sign-in disabled when nil
}
