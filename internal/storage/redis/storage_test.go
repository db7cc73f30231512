package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/kunalgolani-work/kachuful-backend/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.ActiveGameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:       "user-1",
		Username: "alice",
		PlayerCards: []model.PlayerCard{
			{ID: "card-1", Name: "Alice"},
		},
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.Equal(user.PlayerCards, retrieved.PlayerCards)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	user := &model.User{ID: "user-1", Username: "alice"}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)
}

func (s *StorageSuite) TestGetUserByUsernameNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestPasswordHashRoundTrips() {
	user := &model.User{ID: "user-1", Username: "alice", PasswordHash: "bcrypt-hash"}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	// Login verifies against the stored hash, so the document must carry it
	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("bcrypt-hash", retrieved.PasswordHash)
}

// Game record tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := &model.GameRecord{
		GameID:       "game-1",
		OwnerID:      "user-1",
		Phase:        model.PhaseBidding,
		MayhemRounds: []int{5, 10},
		LiveState: model.LiveState{
			Round: 1,
			Phase: model.PhaseBidding,
		},
	}

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "user-1", "game-1")
	s.Require().NoError(err)
	s.Equal(game.GameID, retrieved.GameID)
	s.Equal([]int{5, 10}, retrieved.MayhemRounds)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "user-1", "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGames() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.GameRecord{GameID: "game-1", OwnerID: "user-1"}))
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.GameRecord{GameID: "game-2", OwnerID: "user-1"}))
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.GameRecord{GameID: "game-3", OwnerID: "user-2"}))

	games, err := s.storage.ListGames(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Len(games, 2)
}

func (s *StorageSuite) TestListGamesEmpty() {
	games, err := s.storage.ListGames(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.GameRecord{GameID: "game-1", OwnerID: "user-1"}))

	err := s.storage.DeleteGame(s.ctx, "user-1", "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "user-1", "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	games, err := s.storage.ListGames(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Empty(games)
}

// TTL tests

func (s *StorageSuite) TestUnfinishedGameGetsTTL() {
	game := &model.GameRecord{GameID: "game-1", OwnerID: "user-1", Phase: model.PhaseBidding}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	ttl := s.mini.TTL(gameRecordKey("user-1", "game-1"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestFinishedGameHasNoTTL() {
	game := &model.GameRecord{
		GameID:  "game-1",
		OwnerID: "user-1",
		Rounds:  20,
		Phase:   model.PhaseRoundResult,
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	ttl := s.mini.TTL(gameRecordKey("user-1", "game-1"))
	s.Equal(time.Duration(0), ttl)
}

func (s *StorageSuite) TestListSkipsExpiredRecords() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.GameRecord{GameID: "game-1", OwnerID: "user-1"}))
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.GameRecord{GameID: "game-2", OwnerID: "user-1"}))

	// Expire one record; its index entry lingers but the list drops it
	s.mini.FastForward(2 * time.Hour)

	games, err := s.storage.ListGames(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestLegacyMayhemEncodingDecodes() {
	// Historical documents carry bare round numbers in the live state
	legacy := `{"gameId":"game-legacy","userId":"user-1","gameState":{"round":4,"phase":"BID","mayhemRounds":[3,9]}}`
	s.mini.Set(gameRecordKey("user-1", "game-legacy"), legacy)

	game, err := s.storage.GetGame(s.ctx, "user-1", "game-legacy")
	s.Require().NoError(err)
	s.Equal([]model.MayhemRound{
		{Round: 3, Multiplier: 2},
		{Round: 9, Multiplier: 2},
	}, game.LiveState.MayhemRounds)
}
