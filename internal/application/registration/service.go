package registration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/visapath-api/internal/domain"
	"github.com/visapath-api/internal/pkg/id"
	"github.com/visapath-api/internal/pkg/validate"
	"github.com/visapath-api/internal/pkg/verifycode"
	"golang.org/x/crypto/bcrypt"
)

// Service is the email-verification-gated registration flow. A registration
// attempt is held in the pending store until the emailed code is confirmed;
// only then does the account materialize in persistence. The hold dies on
// expiry or attempt exhaustion, forcing a clean restart.
type Service interface {
	// Start validates the request and creates or overwrites the pending hold
	// for the email, mailing a fresh verification code. Resubmission for an
	// email with a live hold restarts the hold cleanly: new data, new code,
	// zero attempts, extended window. Returns the normalized email.
	Start(ctx context.Context, req domain.RegisterRequest) (string, error)
	// Verify checks the submitted code against the hold. On match it creates
	// the account (EmailVerified=true) and removes the hold; the hold is
	// removed on expiry and exhaustion but deliberately retained when account
	// creation itself fails, so the user can retry without re-registering.
	Verify(ctx context.Context, email, code string) (*domain.Account, error)
	// Resend rotates the code on an existing live hold, resets attempts,
	// extends the window and mails the new code.
	Resend(ctx context.Context, email string) error
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
}

type pendingStore interface {
	Put(p *domain.PendingRegistration)
	Get(email string) (*domain.PendingRegistration, bool)
	Remove(email string)
	RefreshCode(email, code string) bool
	IncrementAttempts(email string) int
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	accounts accountStore
	pending  pendingStore
	mailer   mailer
	sms      smsSender
	now      func() time.Time
}

type ServiceDeps struct {
	AccountRepo accountStore
	Pending     pendingStore
	Mailer      mailer
	SMSSender   smsSender        // optional, welcome SMS on verified sign-up
	Now         func() time.Time // optional, defaults to time.Now
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		accounts: deps.AccountRepo,
		pending:  deps.Pending,
		mailer:   deps.Mailer,
		sms:      deps.SMSSender,
		now:      now,
	}
}

func (s *service) Start(ctx context.Context, req domain.RegisterRequest) (string, error) {
	if err := validate.Struct(&req); err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	email := normalizeEmail(req.Email)
	if acc, err := s.accounts.GetByEmail(ctx, email); err == nil && acc.EmailVerified {
		return "", fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	// Hash at intake so the plaintext password never sits in the hold.
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	role := domain.RoleUser
	if req.SignUpAsAgency {
		role = domain.RoleAgency
	}
	code := verifycode.New()
	s.pending.Put(&domain.PendingRegistration{
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(hash),
		Phone:        req.PhoneNumber,
		Role:         role,
		Code:         code,
	})
	s.sendCode(email, code)
	return email, nil
}

func (s *service) Verify(ctx context.Context, email, submittedCode string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if acc, err := s.accounts.GetByEmail(ctx, email); err == nil && acc.EmailVerified {
		return nil, fmt.Errorf("log in instead: %w", domain.ErrAlreadyVerified)
	}
	p, ok := s.pending.Get(email)
	if !ok {
		return nil, fmt.Errorf("start registration again: %w", domain.ErrNoPendingRegistration)
	}
	switch evaluate(p.Code, submittedCode, p.Attempts, p.ExpiresAt, s.now()) {
	case outcomeExpired:
		s.pending.Remove(email)
		return nil, fmt.Errorf("start registration again: %w", domain.ErrCodeExpired)
	case outcomeExhausted:
		s.pending.Remove(email)
		return nil, fmt.Errorf("start registration again: %w", domain.ErrAttemptsExhausted)
	case outcomeMismatch:
		n := s.pending.IncrementAttempts(email)
		return nil, fmt.Errorf("%d attempts remaining: %w", maxAttempts-n, domain.ErrInvalidCode)
	}

	now := s.now().UTC()
	acc := &domain.Account{
		AccountID:     id.New(),
		Email:         p.Email,
		PasswordHash:  p.PasswordHash,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Phone:         p.Phone,
		Role:          p.Role,
		EmailVerified: true,
		AuthProvider:  "local",
		Enable:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.accounts.Put(ctx, acc); err != nil {
		// Hold survives a persistence failure so the user can retry
		// verification instead of restarting registration.
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.pending.Remove(email)
	if s.sms != nil && acc.Phone != nil {
		if err := s.sms.SendSMS(ctx, *acc.Phone, "Welcome to VisaPath, your account is ready."); err != nil {
			slog.Warn("failed to send welcome SMS", "account_id", acc.AccountID, "err", err)
		}
	}
	return acc, nil
}

func (s *service) Resend(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	code := verifycode.New()
	if !s.pending.RefreshCode(email, code) {
		return fmt.Errorf("start registration again: %w", domain.ErrNoPendingRegistration)
	}
	s.sendCode(email, code)
	return nil
}

// sendCode mails the verification code fire-and-forget: delivery failures are
// logged, never retried here, and never fail the registration step.
func (s *service) sendCode(email, code string) {
	if err := s.mailer.SendEmail(email, "Verify your email", "Your verification code: "+code); err != nil {
		slog.Warn("failed to send verification email", "email", email, "err", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
