package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/visapath-api/internal/application/inquiry"
	"github.com/visapath-api/internal/domain"
)

// InquiryHandler handles visa-inquiry lead endpoints.
type InquiryHandler struct {
	svc inquiry.Service
}

func NewInquiryHandler(svc inquiry.Service) *InquiryHandler { return &InquiryHandler{svc: svc} }

// Submit captures a lead from the public contact form.
func (h *InquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	i, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, i)
}

func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	cursor := r.URL.Query().Get("cursor")
	inquiries, next, err := h.svc.List(r.Context(), limit, cursor)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PaginatedEnvelope{Data: inquiries, NextCursor: next})
}

func (h *InquiryHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "status required")
		return
	}
	if err := h.svc.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "status updated"})
}
