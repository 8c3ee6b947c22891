package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/gamehorizon/gamehorizon/internal/dependencies/clock"
	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/storage"
)

// Service owns the authoritative game collection: it normalises and validates
// records before handing them to storage
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a new collection service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		clock:    clock,
		validate: newValidator(),
		logger:   logger,
	}
}

// List returns the full collection in insertion order
func (s *Service) List(ctx context.Context) ([]model.Game, error) {
	return s.storage.ListGames(ctx)
}

// Get returns a single game
func (s *Service) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}

// Create validates game and appends it with a fresh id
func (s *Service) Create(ctx context.Context, game model.Game) (model.Game, error) {
	game.ID = 0
	if err := s.prepare(&game); err != nil {
		return model.Game{}, err
	}

	created, err := s.storage.CreateGame(ctx, game)
	if err != nil {
		s.logger.Error("failed to create game", slog.String("error", err.Error()))
		return model.Game{}, fmt.Errorf("create game: %w", err)
	}

	s.logger.Info("game created",
		slog.String("game_id", created.ID.String()),
		slog.String("title", created.Title))
	return created, nil
}

// Update replaces the game with id. A zero game.ID takes id; a different one is rejected.
func (s *Service) Update(ctx context.Context, id model.GameID, game model.Game) (model.Game, error) {
	if !game.ID.IsZero() && game.ID != id {
		return model.Game{}, model.ErrIDMismatch
	}
	game.ID = id

	if err := s.prepare(&game); err != nil {
		return model.Game{}, err
	}

	if err := s.storage.UpdateGame(ctx, game); err != nil {
		if !errors.Is(err, model.ErrGameNotFound) {
			s.logger.Error("failed to update game",
				slog.String("game_id", id.String()),
				slog.String("error", err.Error()))
		}
		return model.Game{}, fmt.Errorf("update game %s: %w", id, err)
	}

	s.logger.Info("game updated", slog.String("game_id", id.String()))
	return game, nil
}

// Delete removes the game with id; an absent id returns model.ErrGameNotFound
func (s *Service) Delete(ctx context.Context, id model.GameID) error {
	if err := s.storage.DeleteGame(ctx, id); err != nil {
		if !errors.Is(err, model.ErrGameNotFound) {
			s.logger.Error("failed to delete game",
				slog.String("game_id", id.String()),
				slog.String("error", err.Error()))
		}
		return fmt.Errorf("delete game %s: %w", id, err)
	}

	s.logger.Info("game deleted", slog.String("game_id", id.String()))
	return nil
}

// Seed fills an empty collection with the sample games and reports how many
// were added. A non-empty collection is left untouched.
func (s *Service) Seed(ctx context.Context) (int, error) {
	games, err := s.storage.ListGames(ctx)
	if err != nil {
		return 0, err
	}
	if len(games) > 0 {
		return 0, nil
	}

	added := 0
	for _, g := range model.SampleGames() {
		if _, err := s.Create(ctx, g); err != nil {
			return added, err
		}
		added++
	}

	s.logger.Info("collection seeded", slog.Int("count", added))
	return added, nil
}

// CurrentYear is the upper bound for release years
func (s *Service) CurrentYear() int {
	return s.clock.Now().Year()
}

func (s *Service) prepare(game *model.Game) error {
	game.Normalize(s.CurrentYear())
	if err := s.validate.Struct(game); err != nil {
		return toValidationError(err)
	}
	return nil
}
