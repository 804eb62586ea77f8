package session

import (
	"context"
	"fmt"
	"time"

	"github.com/visapath-api/internal/domain"
	"github.com/visapath-api/internal/infrastructure/google"
	"github.com/visapath-api/internal/pkg/id"
	"github.com/visapath-api/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Bearer       string
	RefreshToken string
	Session      *domain.Session
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// LoginWithGoogle exchanges a verified Google ID token for a session,
	// creating the account on first sign-in. Google-attested emails skip the
	// verification-code hold entirely.
	LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error)
	Refresh(ctx context.Context, refreshToken string) (bearer, newRefreshToken string, err error)
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) error
}

type jwtSigner interface {
	Sign(accountID, role, sessionID string) (string, error)
}

type googleVerifier interface {
	Verify(ctx context.Context, idToken string) (*google.Payload, error)
}

type service struct {
	accounts        accountStore
	sessions        sessionStore
	jwtProvider     jwtSigner
	google          googleVerifier
	refreshTokenDur time.Duration
}

type ServiceDeps struct {
	AccountRepo     accountStore
	SessionRepo     sessionStore
	JWTProvider     jwtSigner
	GoogleVerifier  googleVerifier // optional
	RefreshTokenDur time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts:        deps.AccountRepo,
		sessions:        deps.SessionRepo,
		jwtProvider:     deps.JWTProvider,
		google:          deps.GoogleVerifier,
		refreshTokenDur: deps.RefreshTokenDur,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	a, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !a.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	if !a.EmailVerified {
		return nil, fmt.Errorf("email not verified: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.issueSession(ctx, a)
}

func (s *service) LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error) {
	if s.google == nil {
		return nil, fmt.Errorf("google sign-in not configured: %w", domain.ErrBadRequest)
	}
	p, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if !p.EmailVerified {
		return nil, fmt.Errorf("google account email not verified: %w", domain.ErrUnauthorized)
	}
	a, err := s.accounts.GetByEmail(ctx, p.Email)
	if err != nil {
		now := time.Now().UTC()
		a = &domain.Account{
			AccountID:     id.New(),
			Email:         p.Email,
			FirstName:     p.FirstName,
			LastName:      p.LastName,
			Role:          domain.RoleUser,
			EmailVerified: true,
			AuthProvider:  "google",
			GoogleSub:     p.Sub,
			Enable:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.accounts.Put(ctx, a); err != nil {
			return nil, err
		}
	}
	if !a.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	return s.issueSession(ctx, a)
}

func (s *service) issueSession(ctx context.Context, a *domain.Account) (*LoginResult, error) {
	refreshToken, err := token.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		AccountID:        a.AccountID,
		Enable:           true,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.refreshTokenDur).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	bearer, err := s.jwtProvider.Sign(a.AccountID, a.Role, sess.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Account = a
	return &LoginResult{Bearer: bearer, RefreshToken: refreshToken, Session: sess}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Update(ctx, sessionID, map[string]interface{}{"enable": false})
}

func (s *service) GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Enable {
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	a, err := s.accounts.Get(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}
	sess.Account = a
	return sess, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	sess, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	if !sess.Enable || sess.RefreshExpiresAt < time.Now().Unix() {
		return "", "", fmt.Errorf("refresh token expired: %w", domain.ErrUnauthorized)
	}
	newToken, err := token.NewRefreshToken()
	if err != nil {
		return "", "", err
	}
	newExpiry := time.Now().Add(s.refreshTokenDur).Unix()
	if err := s.sessions.RotateRefreshToken(ctx, sess.SessionID, newToken, newExpiry); err != nil {
		return "", "", err
	}
	a, err := s.accounts.Get(ctx, sess.AccountID)
	if err != nil {
		return "", "", err
	}
	bearer, err := s.jwtProvider.Sign(a.AccountID, a.Role, sess.SessionID)
	if err != nil {
		return "", "", err
	}
	return bearer, newToken, nil
}
