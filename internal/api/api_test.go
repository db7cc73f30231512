package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalgolani-work/kachuful-backend/internal/api"
	"github.com/kunalgolani-work/kachuful-backend/internal/factory"
	"github.com/kunalgolani-work/kachuful-backend/internal/model"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/auth"
	"github.com/kunalgolani-work/kachuful-backend/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{
		Logger: logger,
		AuthConfig: auth.Config{
			Secret: "test-secret",
		},
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		CardService:    app.CardService,
		StatsService:   app.StatsService,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns its token
func (ts *testServer) register(t *testing.T, username string) string {
	t.Helper()

	body := map[string]string{"username": username, "password": "hunter22"}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// createGame starts a game for the token's user and returns its id
func (ts *testServer) createGame(t *testing.T, token string, players []map[string]string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/games", map[string]any{"players": players}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var game struct {
		GameID string `json:"gameId"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	require.NotEmpty(t, game.GameID)
	return game.GameID
}

func defaultPlayers() []map[string]string {
	return []map[string]string{
		{"name": "Alice", "cardId": "card-alice"},
		{"name": "Bob", "cardId": "card-bob"},
	}
}

// Health

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

// Auth

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	body := map[string]string{"username": "alice", "password": "hunter22"}
	rr := ts.request(http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestAuthResponsesOmitPasswordHash(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "hunter22"}
	registered := ts.request(http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, registered.Code)
	assert.NotContains(t, registered.Body.String(), "passwordHash")

	loggedIn := ts.request(http.MethodPost, "/api/auth/login", body, "")
	require.Equal(t, http.StatusOK, loggedIn.Code)
	assert.NotContains(t, loggedIn.Body.String(), "passwordHash")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	body := map[string]string{"username": "alice", "password": "hunter22"}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_EXISTS")
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "123"}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	body := map[string]string{"username": "alice", "password": "wrong"}
	rr := ts.request(http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/games", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLegacyTokenHeaderAccepted(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
	req.Header.Set("x-auth-token", token)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

// Games

func TestCreateAndListGames(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	gameID := ts.createGame(t, token, defaultPlayers())

	rr := ts.request(http.MethodGet, "/api/games", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var games []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	require.Len(t, games, 1)
	assert.Equal(t, gameID, games[0]["gameId"])
}

func TestListGamesFilterByID(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	first := ts.createGame(t, token, defaultPlayers())
	ts.createGame(t, token, defaultPlayers())

	rr := ts.request(http.MethodGet, "/api/games?gameId="+first, nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var games []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	require.Len(t, games, 1)
	assert.Equal(t, first, games[0]["gameId"])
}

func TestCreateGameRejectsEmptyPlayers(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/games", map[string]any{"players": []any{}}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "NO_PLAYERS")
}

func TestCreateGameSchedulesSpecialRounds(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/games", map[string]any{"players": defaultPlayers()}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var game struct {
		MayhemRounds []int `json:"mayhemRounds"`
		GameState    struct {
			MayhemRounds []struct {
				Round      int `json:"round"`
				Multiplier int `json:"multiplier"`
			} `json:"mayhemRounds"`
			JokerRounds []struct {
				Round int    `json:"round"`
				Label string `json:"label"`
			} `json:"jokerRounds"`
			TeamUpRounds []struct {
				Round int `json:"round"`
			} `json:"teamUpRounds"`
		} `json:"gameState"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))

	require.NotEmpty(t, game.MayhemRounds)
	assert.GreaterOrEqual(t, len(game.MayhemRounds), 2)
	assert.LessOrEqual(t, len(game.MayhemRounds), 3)
	for _, m := range game.GameState.MayhemRounds {
		assert.Equal(t, 2, m.Multiplier)
	}
	require.NotEmpty(t, game.GameState.JokerRounds)
	assert.NotEmpty(t, game.GameState.JokerRounds[0].Label)
	// Two players means a single team-up round
	assert.Len(t, game.GameState.TeamUpRounds, 1)
}

func TestActiveGameNullWithoutGames(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodGet, "/api/games/active", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null\n", rr.Body.String())
}

func TestActiveGameReturnsCurrentGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")
	gameID := ts.createGame(t, token, defaultPlayers())

	rr := ts.request(http.MethodGet, "/api/games/active", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var game map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	assert.Equal(t, gameID, game["gameId"])
}

func TestUpdateGameState(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")
	gameID := ts.createGame(t, token, defaultPlayers())

	body := map[string]any{
		"gameState":    map[string]any{"round": 3},
		"currentRound": 3,
	}
	rr := ts.request(http.MethodPut, "/api/games/"+gameID+"/state", body, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var game struct {
		CurrentRound int `json:"currentRound"`
		GameState    struct {
			Round        int             `json:"round"`
			MayhemRounds json.RawMessage `json:"mayhemRounds"`
		} `json:"gameState"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	assert.Equal(t, 3, game.CurrentRound)
	assert.Equal(t, 3, game.GameState.Round)
	// Unmentioned live-state fields survive the patch
	assert.NotEqual(t, "null", string(game.GameState.MayhemRounds))
	assert.NotEqual(t, "[]", string(game.GameState.MayhemRounds))
}

func TestUpdateStateUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodPut, "/api/games/missing/state", map[string]any{}, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestFinishGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")
	gameID := ts.createGame(t, token, defaultPlayers())

	rr := ts.request(http.MethodPost, "/api/games/"+gameID+"/finish", map[string]any{"rounds": 20}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Message string `json:"message"`
		Game    struct {
			Phase  string `json:"phase"`
			Rounds int    `json:"rounds"`
		} `json:"game"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Game finished successfully", resp.Message)
	assert.Equal(t, string(model.PhaseRoundResult), resp.Game.Phase)
	assert.Equal(t, 20, resp.Game.Rounds)
}

func TestDeleteGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")
	gameID := ts.createGame(t, token, defaultPlayers())

	rr := ts.request(http.MethodDelete, "/api/games/"+gameID, nil, token)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/games", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var games []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	assert.Empty(t, games)
}

func TestDeleteGameNotFound(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodDelete, "/api/games/missing", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestGamesAreScopedToUser(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.register(t, "alice")
	bobToken := ts.register(t, "bob")

	ts.createGame(t, aliceToken, defaultPlayers())

	rr := ts.request(http.MethodGet, "/api/games", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var games []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	assert.Empty(t, games)
}

// Player cards

func TestUpsertAndListCards(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	body := map[string]string{"id": "card-alice", "name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/players/cards", body, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/players/cards", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var cards []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "Alice", cards[0]["name"])
}

func TestUpsertCardRequiresIDAndName(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/players/cards", map[string]string{"id": "card-1"}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// Stats

func TestStatsForCardWithFinishedGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/players/cards", map[string]string{"id": "card-alice", "name": "Alice"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	gameID := ts.createGame(t, token, defaultPlayers())
	rr = ts.request(http.MethodPost, "/api/games/"+gameID+"/finish", map[string]any{"rounds": 20}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/users/stats/card-alice", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var report struct {
		PlayerCard struct {
			ID string `json:"id"`
		} `json:"playerCard"`
		Overall struct {
			GamesPlayed int `json:"gamesPlayed"`
		} `json:"overallStats"`
		RecentGames []map[string]any `json:"recentGames"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, "card-alice", report.PlayerCard.ID)
	assert.Equal(t, 1, report.Overall.GamesPlayed)
	assert.Len(t, report.RecentGames, 1)
}

func TestStatsUnknownCard(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodGet, "/api/users/stats/missing", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "CARD_NOT_FOUND")
}
