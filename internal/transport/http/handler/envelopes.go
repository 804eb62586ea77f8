package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/visapath-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RegistrationEnvelope wraps register/resend responses. Email echoes the
// normalized address the verification code was sent to.
type RegistrationEnvelope struct {
	Message string `json:"message,omitempty"`
	Email   string `json:"email,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps login/verify responses.
type AuthEnvelope struct {
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	Session      *SafeSession `json:"session,omitempty"`
	Account      *SafeAccount `json:"account,omitempty"`
	Message      string       `json:"message,omitempty"`
	Error        string       `json:"error,omitempty"`
}

// PaginatedEnvelope wraps cursor-paginated list responses.
type PaginatedEnvelope struct {
	Data       interface{} `json:"data"`
	NextCursor string      `json:"next_cursor,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// SafeAccount is the public projection of a domain.Account.
type SafeAccount struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         *string   `json:"phone,omitempty"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created"`
}

// SafeSession is the public projection of a domain.Session.
type SafeSession struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created"`
	Account   *SafeAccount `json:"account,omitempty"`
}

func toSafeAccount(a *domain.Account) *SafeAccount {
	if a == nil {
		return nil
	}
	return &SafeAccount{
		ID:            a.AccountID,
		Email:         a.Email,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Phone:         a.Phone,
		Role:          a.Role,
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
	}
}

func toSafeSession(s *domain.Session) *SafeSession {
	if s == nil {
		return nil
	}
	return &SafeSession{
		ID:        s.SessionID,
		CreatedAt: s.CreatedAt,
		Account:   toSafeAccount(s.Account),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors to HTTP statuses.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrCodeExpired), errors.Is(err, domain.ErrAttemptsExhausted):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, domain.ErrNoPendingRegistration):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyVerified), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
