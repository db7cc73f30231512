package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/kunalgolani-work/kachuful-backend/internal/dependencies/clock"
	"github.com/kunalgolani-work/kachuful-backend/internal/dependencies/random"
	"github.com/kunalgolani-work/kachuful-backend/internal/imagehost"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/auth"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/cards"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/gamerecord"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/schedule"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/stats"
	"github.com/kunalgolani-work/kachuful-backend/internal/storage"
	"github.com/kunalgolani-work/kachuful-backend/internal/storage/memory"
	redisstorage "github.com/kunalgolani-work/kachuful-backend/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	Clock  clock.Clock
	Random random.Random

	Scheduler      *schedule.Scheduler
	GameController *gamerecord.Controller
	CardService    *cards.Service
	StatsService   *stats.Aggregator
	AuthService    *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional; no-op when nil)
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string
	// RedisConfig holds Redis connection settings (required for redis)
	RedisConfig *redisstorage.Config
	// AuthConfig holds token signing settings
	AuthConfig auth.Config
	// ImageHost uploads player photos (optional; pass-through when nil)
	ImageHost imagehost.Uploader
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	images := cfg.ImageHost
	if images == nil {
		images = imagehost.Passthrough{}
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg.AuthConfig, images, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	images imagehost.Uploader,
	logger *slog.Logger,
) *App {
	scheduler := schedule.New(rnd, logger)
	gameController := gamerecord.NewController(store, scheduler, clk, logger)
	cardService := cards.New(store, images, clk, logger)
	statsService := stats.New(store, gameController, logger)
	authService := auth.New(store, clk, authCfg, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Scheduler:      scheduler,
		GameController: gameController,
		CardService:    cardService,
		StatsService:   statsService,
		AuthService:    authService,
	}
}
