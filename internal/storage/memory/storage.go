package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/kunalgolani-work/kachuful-backend/internal/model"
	"github.com/kunalgolani-work/kachuful-backend/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Reads
// and writes copy, so callers can mutate what they hold without racing
// the store, matching the isolation the Redis backend gets from JSON.
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	games         map[gameKey]*model.GameRecord
}

type gameKey struct {
	ownerID model.UserID
	gameID  model.GameID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		games:         make(map[gameKey]*model.GameRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// cloneUser copies the user along with the slices callers mutate in place
func cloneUser(user *model.User) *model.User {
	out := *user
	out.PlayerCards = slices.Clone(user.PlayerCards)
	out.Games = slices.Clone(user.Games)
	return &out
}

// cloneGame is a value copy. Live-state slices are replaced wholesale on
// update, never edited element by element, so sharing them is safe.
func cloneGame(game *model.GameRecord) *model.GameRecord {
	out := *game
	return &out
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = cloneUser(user)
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// Game record operations

func (s *Storage) SaveGame(ctx context.Context, game *model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[gameKey{ownerID: game.OwnerID, gameID: game.GameID}] = cloneGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, ownerID model.UserID, id model.GameID) (*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[gameKey{ownerID: ownerID, gameID: id}]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) ListGames(ctx context.Context, ownerID model.UserID) ([]*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.GameRecord, 0)
	for key, game := range s.games {
		if key.ownerID == ownerID {
			games = append(games, cloneGame(game))
		}
	}
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, ownerID model.UserID, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameKey{ownerID: ownerID, gameID: id})
	return nil
}
