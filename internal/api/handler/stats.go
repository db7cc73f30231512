package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kunalgolani-work/kachuful-backend/internal/api/apierr"
	"github.com/kunalgolani-work/kachuful-backend/internal/api/middleware"
	"github.com/kunalgolani-work/kachuful-backend/internal/api/response"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/stats"
)

// StatsHandler handles player statistics endpoints
type StatsHandler struct {
	aggregator *stats.Aggregator
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(aggregator *stats.Aggregator) *StatsHandler {
	return &StatsHandler{aggregator: aggregator}
}

// Get handles GET /api/users/stats/{cardId}
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	cardID := mux.Vars(r)["cardId"]

	report, err := h.aggregator.ComputeStats(r.Context(), user.ID, cardID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, report)
}
