package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kunalgolani-work/kachuful-backend/internal/api/apierr"
	"github.com/kunalgolani-work/kachuful-backend/internal/api/middleware"
	"github.com/kunalgolani-work/kachuful-backend/internal/api/request"
	"github.com/kunalgolani-work/kachuful-backend/internal/api/response"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/cards"
)

// CardHandler handles player card endpoints
type CardHandler struct {
	cards *cards.Service
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService *cards.Service) *CardHandler {
	return &CardHandler{cards: cardService}
}

// List handles GET /api/players/cards
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	list, err := h.cards.ListCards(r.Context(), user.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, list)
}

// Upsert handles POST /api/players/cards
func (h *CardHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.UpsertCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ID == "" || req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("card id and name are required"))
		return
	}

	list, err := h.cards.UpsertCard(r.Context(), user.ID, req.ID, req.Name, req.Photo)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, list)
}
