package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kunalgolani-work/kachuful-backend/internal/api/handler"
	apimiddleware "github.com/kunalgolani-work/kachuful-backend/internal/api/middleware"
	"github.com/kunalgolani-work/kachuful-backend/internal/api/response"
	"github.com/kunalgolani-work/kachuful-backend/internal/middleware"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/auth"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/cards"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/gamerecord"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *gamerecord.Controller
	CardService    *cards.Service
	StatsService   *stats.Aggregator
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	cardHandler := handler.NewCardHandler(cfg.CardService)
	statsHandler := handler.NewStatsHandler(cfg.StatsService)

	authMiddleware := apimiddleware.Auth(cfg.AuthService)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Auth routes (no auth required)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Game routes
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/active", gameHandler.Active).Methods(http.MethodGet)
	games.HandleFunc("/{gameId}/state", gameHandler.UpdateState).Methods(http.MethodPut)
	games.HandleFunc("/{gameId}/finish", gameHandler.Finish).Methods(http.MethodPost)
	games.HandleFunc("/{gameId}", gameHandler.Delete).Methods(http.MethodDelete)

	// Player card routes
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("/cards", cardHandler.List).Methods(http.MethodGet)
	players.HandleFunc("/cards", cardHandler.Upsert).Methods(http.MethodPost)

	// Derived statistics routes
	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.HandleFunc("/stats/{cardId}", statsHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
