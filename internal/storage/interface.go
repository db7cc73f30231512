package storage

import (
	"context"

	"github.com/kunalgolani-work/kachuful-backend/internal/model"
)

// Storage defines the interface for data persistence.
//
// All operations are independent single-document reads and writes; there is
// no multi-record transaction, so callers must keep compound updates (such
// as finalize's record save plus owner reference append) individually
// idempotent.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Game record operations. Records are keyed by (owner, game); lookups
	// for another owner's record report not-found rather than leaking it.
	SaveGame(ctx context.Context, game *model.GameRecord) error
	GetGame(ctx context.Context, ownerID model.UserID, id model.GameID) (*model.GameRecord, error)
	ListGames(ctx context.Context, ownerID model.UserID) ([]*model.GameRecord, error)
	DeleteGame(ctx context.Context, ownerID model.UserID, id model.GameID) error
}
