package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/visapath-api/internal/application/content"
	"github.com/visapath-api/internal/domain"
	"github.com/visapath-api/internal/pkg/validate"
	"github.com/visapath-api/internal/transport/http/middleware"
)

// ContentHandler handles CMS document endpoints.
type ContentHandler struct {
	svc content.Service
}

func NewContentHandler(svc content.Service) *ContentHandler { return &ContentHandler{svc: svc} }

// ListPublished returns published documents only. Public endpoint.
func (h *ContentHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.List(r.Context(), false)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// GetBySlug returns a single published document by slug. Public endpoint.
func (h *ContentHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpError(w, err)
		return
	}
	if !c.Published {
		writeError(w, http.StatusNotFound, "content not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ListAll returns every document including drafts. Admin endpoint.
func (h *ContentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.List(r.Context(), true)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	c, err := h.svc.Create(r.Context(), req, claims.AccountID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "content deleted"})
}
