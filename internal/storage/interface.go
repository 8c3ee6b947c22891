package storage

import (
	"context"

	"github.com/gamehorizon/gamehorizon/internal/model"
)

// Storage defines the interface for the game collection.
// Implementations keep insertion order and assign ids from a strictly
// monotonic counter that never reuses an id within a process.
type Storage interface {
	// ListGames returns the full collection in insertion order
	ListGames(ctx context.Context) ([]model.Game, error)
	// GetGame returns model.ErrGameNotFound when id is absent
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	// CreateGame assigns a new id, appends the game and returns the stored copy.
	// Any id already set on game is ignored.
	CreateGame(ctx context.Context, game model.Game) (model.Game, error)
	// UpdateGame replaces the record with game.ID, or returns model.ErrGameNotFound
	UpdateGame(ctx context.Context, game model.Game) error
	// DeleteGame removes the record with id, or returns model.ErrGameNotFound
	DeleteGame(ctx context.Context, id model.GameID) error

	Close() error
}
