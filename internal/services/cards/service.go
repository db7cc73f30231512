package cards

import (
	"context"
	"log/slog"

	"github.com/kunalgolani-work/kachuful-backend/internal/dependencies/clock"
	"github.com/kunalgolani-work/kachuful-backend/internal/imagehost"
	"github.com/kunalgolani-work/kachuful-backend/internal/model"
	"github.com/kunalgolani-work/kachuful-backend/internal/storage"
)

// Service manages a user's player cards. Card statistics are never written
// here; they are derived on demand by the stats aggregator.
type Service struct {
	storage storage.Storage
	images  imagehost.Uploader
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player card service
func New(store storage.Storage, images imagehost.Uploader, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		images:  images,
		clock:   clk,
		logger:  logger,
	}
}

// ListCards returns the user's player cards
func (s *Service) ListCards(ctx context.Context, ownerID model.UserID) ([]model.PlayerCard, error) {
	user, err := s.storage.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if user.PlayerCards == nil {
		return []model.PlayerCard{}, nil
	}
	return user.PlayerCards, nil
}

// UpsertCard creates the card if the id is new, otherwise updates its name
// and, when a photo is supplied, its photo. Returns the full card list.
func (s *Service) UpsertCard(ctx context.Context, ownerID model.UserID, id, name, photo string) ([]model.PlayerCard, error) {
	user, err := s.storage.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	photoURL := s.uploadPhoto(ctx, photo)

	if card := user.FindCard(id); card != nil {
		card.Name = name
		if photoURL != "" {
			card.Photo = photoURL
		}
	} else {
		user.PlayerCards = append(user.PlayerCards, model.PlayerCard{
			ID:    id,
			Name:  name,
			Photo: photoURL,
		})
	}

	user.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user.PlayerCards, nil
}

// uploadPhoto pushes the photo to the image host. Upload failure degrades
// to "no photo" rather than failing the card update.
func (s *Service) uploadPhoto(ctx context.Context, photo string) string {
	if photo == "" {
		return ""
	}

	url, err := s.images.Upload(ctx, photo)
	if err != nil {
		s.logger.Warn("photo upload failed, continuing without photo",
			slog.String("error", err.Error()),
		)
		return ""
	}
	return url
}
