package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/visapath-api/internal/domain"
)

// --- mock ---

type mockRegistrationSvc struct{ mock.Mock }

func (m *mockRegistrationSvc) Start(ctx context.Context, req domain.RegisterRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockRegistrationSvc) Verify(ctx context.Context, email, code string) (*domain.Account, error) {
	args := m.Called(ctx, email, code)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationSvc) Resend(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func validRegisterBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(domain.RegisterRequest{
		FirstName: "Alice", LastName: "Smith",
		Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	return body
}

// --- Register tests ---

func TestRegister_InvalidBody(t *testing.T) {
	svc := &mockRegistrationSvc{}
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_ValidationFailure(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Start", mock.Anything, mock.Anything).Return("", domain.ErrBadRequest)
	h := NewRegistrationHandler(svc)
	body, _ := json.Marshal(domain.RegisterRequest{Email: "alice@example.com"}) // missing required fields
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestRegister_VerifiedAccountExists(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Start", mock.Anything, mock.Anything).Return("", domain.ErrConflict)
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(validRegisterBody(t)))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusConflict, rr.Code)
	svc.AssertExpectations(t)
}

func TestRegister_HappyPath(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Start", mock.Anything, mock.Anything).Return("alice@example.com", nil)
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(validRegisterBody(t)))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusAccepted, rr.Code)
	var resp RegistrationEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "alice@example.com", resp.Email)
	svc.AssertExpectations(t)
}

// --- VerifyEmail tests ---

func verifyBody(t *testing.T, email, code string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "code": code})
	require.NoError(t, err)
	return body
}

func TestVerifyEmail_MissingFields(t *testing.T) {
	svc := &mockRegistrationSvc{}
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-email", bytes.NewReader(verifyBody(t, "alice@example.com", "")))
	rr := httptest.NewRecorder()
	h.VerifyEmail(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerifyEmail_WrongCode(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Verify", mock.Anything, "alice@example.com", "0000").Return(nil, domain.ErrInvalidCode)
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-email", bytes.NewReader(verifyBody(t, "alice@example.com", "0000")))
	rr := httptest.NewRecorder()
	h.VerifyEmail(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertExpectations(t)
}

func TestVerifyEmail_ExpiredCode(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Verify", mock.Anything, "alice@example.com", "1234").Return(nil, domain.ErrCodeExpired)
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-email", bytes.NewReader(verifyBody(t, "alice@example.com", "1234")))
	rr := httptest.NewRecorder()
	h.VerifyEmail(rr, r)
	assert.Equal(t, http.StatusGone, rr.Code)
}

func TestVerifyEmail_AttemptsExhausted(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Verify", mock.Anything, "alice@example.com", "1234").Return(nil, domain.ErrAttemptsExhausted)
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-email", bytes.NewReader(verifyBody(t, "alice@example.com", "1234")))
	rr := httptest.NewRecorder()
	h.VerifyEmail(rr, r)
	assert.Equal(t, http.StatusGone, rr.Code)
}

func TestVerifyEmail_NoPendingRegistration(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Verify", mock.Anything, "ghost@example.com", "1234").Return(nil, domain.ErrNoPendingRegistration)
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-email", bytes.NewReader(verifyBody(t, "ghost@example.com", "1234")))
	rr := httptest.NewRecorder()
	h.VerifyEmail(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVerifyEmail_AlreadyVerified(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Verify", mock.Anything, "alice@example.com", "1234").Return(nil, domain.ErrAlreadyVerified)
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-email", bytes.NewReader(verifyBody(t, "alice@example.com", "1234")))
	rr := httptest.NewRecorder()
	h.VerifyEmail(rr, r)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestVerifyEmail_HappyPath(t *testing.T) {
	svc := &mockRegistrationSvc{}
	a := &domain.Account{AccountID: "a1", Email: "alice@example.com", EmailVerified: true, Role: domain.RoleUser}
	svc.On("Verify", mock.Anything, "alice@example.com", "1234").Return(a, nil)
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-email", bytes.NewReader(verifyBody(t, "alice@example.com", "1234")))
	rr := httptest.NewRecorder()
	h.VerifyEmail(rr, r)
	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Account)
	assert.Equal(t, "alice@example.com", resp.Account.Email)
	assert.True(t, resp.Account.EmailVerified)
	svc.AssertExpectations(t)
}

// --- Resend tests ---

func TestResend_MissingEmail(t *testing.T) {
	svc := &mockRegistrationSvc{}
	h := NewRegistrationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/resend-verification", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()
	h.Resend(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestResend_NoHold(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Resend", mock.Anything, "ghost@example.com").Return(domain.ErrNoPendingRegistration)
	h := NewRegistrationHandler(svc)
	body, _ := json.Marshal(map[string]string{"email": "ghost@example.com"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/resend-verification", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Resend(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertExpectations(t)
}

func TestResend_HappyPath(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Resend", mock.Anything, "alice@example.com").Return(nil)
	h := NewRegistrationHandler(svc)
	body, _ := json.Marshal(map[string]string{"email": "alice@example.com"})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/resend-verification", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Resend(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
