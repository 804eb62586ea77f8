package handler

import (
	"encoding/json"
	"net/http"

	"github.com/visapath-api/internal/application/registration"
	"github.com/visapath-api/internal/domain"
)

// RegistrationHandler handles the email-verification registration flow.
type RegistrationHandler struct {
	svc registration.Service
}

func NewRegistrationHandler(svc registration.Service) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

// Register places a registration hold and sends a verification code.
// No account exists until the code is confirmed.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email, err := h.svc.Start(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, RegistrationEnvelope{
		Message: "verification code sent",
		Email:   email,
	})
}

// VerifyEmail confirms the 4-digit code and creates the account.
func (h *RegistrationHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "email and code required")
		return
	}
	a, err := h.svc.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthEnvelope{
		Message: "email verified",
		Account: toSafeAccount(a),
	})
}

// Resend rotates the verification code on an existing hold.
func (h *RegistrationHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email required")
		return
	}
	if err := h.svc.Resend(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RegistrationEnvelope{Message: "verification code sent"})
}
