package password

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/visapath-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// resetOTPTTL is the reset-code window. Deliberately shorter than the
// registration hold: the code unlocks an existing account.
const resetOTPTTL = 10 * time.Minute

type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type Service interface {
	// RequestReset mails a 6-digit OTP valid for 10 minutes. The OTP lives in
	// the durable verifications table (TTL-expired), not the in-memory
	// registration store: resets must survive a process restart.
	RequestReset(ctx context.Context, req RequestResetRequest) error
	Reset(ctx context.Context, req ResetRequest) error
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.AccountVerification) error
	Get(ctx context.Context, accountID, verType string) (*domain.AccountVerification, error)
	Delete(ctx context.Context, accountID, verType string) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	accounts      accountStore
	verifications verificationStore
	mailer        mailer
}

func NewService(accounts accountStore, verifications verificationStore, m mailer) Service {
	return &service{accounts: accounts, verifications: verifications, mailer: m}
}

func (s *service) RequestReset(ctx context.Context, req RequestResetRequest) error {
	a, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return err
	}
	otp := fmt.Sprintf("%06d", n.Int64())
	v := &domain.AccountVerification{
		AccountID: a.AccountID,
		Type:      domain.VerificationTypePasswordReset,
		Code:      otp,
		ExpiresAt: time.Now().Add(resetOTPTTL).Unix(),
	}
	if err := s.verifications.Put(ctx, v); err != nil {
		return err
	}
	return s.mailer.SendEmail(a.Email, "Password Reset OTP", "Your OTP: "+otp)
}

func (s *service) Reset(ctx context.Context, req ResetRequest) error {
	a, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	v, err := s.verifications.Get(ctx, a.AccountID, domain.VerificationTypePasswordReset)
	if err != nil {
		return fmt.Errorf("OTP not found: %w", domain.ErrNotFound)
	}
	if v.Code != req.OTP {
		return fmt.Errorf("invalid OTP: %w", domain.ErrUnauthorized)
	}
	if v.ExpiresAt < time.Now().Unix() {
		return fmt.Errorf("OTP expired: %w", domain.ErrUnauthorized)
	}
	if err := s.verifications.Delete(ctx, a.AccountID, domain.VerificationTypePasswordReset); err != nil {
		slog.Warn("failed to delete reset OTP record", "account_id", a.AccountID, "err", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.accounts.Update(ctx, a.AccountID, map[string]interface{}{"password_hash": string(hash)})
}
