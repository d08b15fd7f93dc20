package handlers

import (
	"log/slog"
	"net/http"

	"inkwell/internal/models"
	"inkwell/internal/service"
)

// Newsletter groups the newsletter HTTP handlers.
type Newsletter struct {
	newsletter *service.NewsletterService
}

// NewNewsletter creates a new Newsletter handler group.
func NewNewsletter(newsletter *service.NewsletterService) *Newsletter {
	return &Newsletter{newsletter: newsletter}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe serves POST /api/newsletter/subscribe. Repeat signups with
// the same address succeed quietly.
func (h *Newsletter) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in subscribeRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	sub, err := h.newsletter.Subscribe(in.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	slog.Info("newsletter signup", "id", sub.ID)
	respondJSON(w, http.StatusCreated, sub)
}

// AdminList serves GET /api/admin/subscribers for export.
func (h *Newsletter) AdminList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.newsletter.Subscribers()
	if err != nil {
		respondError(w, err)
		return
	}
	if subs == nil {
		subs = []models.Subscriber{}
	}
	respondJSON(w, http.StatusOK, subs)
}
