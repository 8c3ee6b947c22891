package memory

import (
	"context"
	"sync"

	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games  []model.Game
	nextID model.GameID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{nextID: 1}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) ListGames(ctx context.Context) ([]model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]model.Game, len(s.games))
	for i, g := range s.games {
		games[i] = g.Clone()
	}
	return games, nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, model.ErrGameNotFound
	}
	game := s.games[i].Clone()
	return &game, nil
}

func (s *Storage) CreateGame(ctx context.Context, game model.Game) (model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game = game.Clone()
	game.ID = s.nextID
	s.nextID++
	s.games = append(s.games, game)
	return game.Clone(), nil
}

func (s *Storage) UpdateGame(ctx context.Context, game model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(game.ID)
	if i < 0 {
		return model.ErrGameNotFound
	}
	s.games[i] = game.Clone()
	return nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.ErrGameNotFound
	}
	s.games = append(s.games[:i], s.games[i+1:]...)
	return nil
}

// Close is a no-op
func (s *Storage) Close() error {
	return nil
}

// indexOf must be called with the lock held
func (s *Storage) indexOf(id model.GameID) int {
	for i := range s.games {
		if s.games[i].ID == id {
			return i
		}
	}
	return -1
}
