package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kunalgolani-work/kachuful-backend/internal/api/apierr"
	"github.com/kunalgolani-work/kachuful-backend/internal/api/middleware"
	"github.com/kunalgolani-work/kachuful-backend/internal/api/request"
	"github.com/kunalgolani-work/kachuful-backend/internal/api/response"
	"github.com/kunalgolani-work/kachuful-backend/internal/model"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/gamerecord"
)

// GameHandler handles game record endpoints
type GameHandler struct {
	games *gamerecord.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(games *gamerecord.Controller) *GameHandler {
	return &GameHandler{games: games}
}

// List handles GET /api/games (optional ?gameId= filter)
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(r.URL.Query().Get("gameId"))

	records, err := h.games.List(r.Context(), user.ID, gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, records)
}

// Active handles GET /api/games/active. Responds with JSON null when the
// user has no game in a live phase.
func (h *GameHandler) Active(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	record, err := h.games.Active(r.Context(), user.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, record)
}

// Create handles POST /api/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	record, err := h.games.Create(r.Context(), user.ID, req.Players)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, record)
}

// UpdateState handles PUT /api/games/{gameId}/state
func (h *GameHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["gameId"])

	var req request.UpdateStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	record, err := h.games.MergeState(r.Context(), user.ID, gameID, gamerecord.StatePatch{
		LiveState:    req.GameState,
		CurrentRound: req.CurrentRound,
		Phase:        req.Phase,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, record)
}

// Finish handles POST /api/games/{gameId}/finish
func (h *GameHandler) Finish(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["gameId"])

	var req request.FinishGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	record, err := h.games.Finalize(r.Context(), user.ID, gameID, req.Rounds, req.MayhemRounds)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FinishResponse{
		Message: "Game finished successfully",
		Game:    record,
	})
}

// Delete handles DELETE /api/games/{gameId}, abandoning a session
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["gameId"])

	if err := h.games.Delete(r.Context(), user.ID, gameID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
