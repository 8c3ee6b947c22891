package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gamehorizon/gamehorizon/internal/dependencies/clock"
	"github.com/gamehorizon/gamehorizon/internal/services/collection"
	"github.com/gamehorizon/gamehorizon/internal/storage"
	"github.com/gamehorizon/gamehorizon/internal/storage/jsonfile"
	"github.com/gamehorizon/gamehorizon/internal/storage/memory"
	redisstorage "github.com/gamehorizon/gamehorizon/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeJSONFile = "jsonfile"
	StorageTypeRedis    = "redis"
)

// App contains all wired record store components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	CollectionService *collection.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "jsonfile" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// StoragePath is the JSON document path (required if StorageType is "jsonfile")
	StoragePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

func newStorage(cfg Config, logger *slog.Logger) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeJSONFile:
		if cfg.StoragePath == "" {
			return nil, errors.New("StoragePath required when StorageType is jsonfile")
		}
		store, err := jsonfile.New(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		logger.Info("using json document store", slog.String("path", store.Path()))
		return store, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'jsonfile' or 'redis'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	return &App{
		Storage:           store,
		Clock:             clk,
		CollectionService: collection.New(store, clk, logger),
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
