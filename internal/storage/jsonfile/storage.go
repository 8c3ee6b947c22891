package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/storage"
)

// document is the on-disk layout: a single top-level "games" array
type document struct {
	Games []model.Game `json:"games"`
}

// Storage keeps the collection in a single JSON document on disk.
// The file is re-read on every call so it stays the only source of truth,
// and every mutation rewrites it via a temp file and rename before returning.
type Storage struct {
	mu     sync.Mutex
	path   string
	nextID model.GameID
	closed bool
}

// New opens the document at path, creating an empty one if it doesn't exist
func New(path string) (*Storage, error) {
	s := &Storage{path: path, nextID: 1}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		doc = &document{Games: []model.Game{}}
		if err := s.write(doc); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	s.advanceCounter(doc)
	return s, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Path returns the document location
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) ListGames(ctx context.Context) ([]model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Games, nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	i := indexOf(doc.Games, id)
	if i < 0 {
		return nil, model.ErrGameNotFound
	}
	return &doc.Games[i], nil
}

func (s *Storage) CreateGame(ctx context.Context, game model.Game) (model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return model.Game{}, err
	}

	game = game.Clone()
	game.ID = s.nextID
	doc.Games = append(doc.Games, game)

	if err := s.write(doc); err != nil {
		return model.Game{}, err
	}
	s.nextID++
	return game, nil
}

func (s *Storage) UpdateGame(ctx context.Context, game model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(doc.Games, game.ID)
	if i < 0 {
		return model.ErrGameNotFound
	}
	doc.Games[i] = game.Clone()
	return s.write(doc)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(doc.Games, id)
	if i < 0 {
		return model.ErrGameNotFound
	}
	doc.Games = append(doc.Games[:i], doc.Games[i+1:]...)
	return s.write(doc)
}

// Close marks the storage closed; later calls fail with model.ErrStorageClosed
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// load reads the document and keeps the id counter ahead of any id in it.
// Must be called with the lock held.
func (s *Storage) load() (*document, error) {
	if s.closed {
		return nil, model.ErrStorageClosed
	}
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	s.advanceCounter(doc)
	return doc, nil
}

func (s *Storage) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if doc.Games == nil {
		doc.Games = []model.Game{}
	}
	return &doc, nil
}

// write replaces the document atomically: temp file in the same directory,
// fsync, rename over the original, then fsync the directory so the rename is durable
func (s *Storage) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpPath := filepath.Join(dir, "."+filepath.Base(s.path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	if err := d.Sync(); err != nil {
		_ = d.Close()
		return fmt.Errorf("sync %s: %w", dir, err)
	}
	return d.Close()
}

func (s *Storage) advanceCounter(doc *document) {
	for _, g := range doc.Games {
		if g.ID >= s.nextID {
			s.nextID = g.ID + 1
		}
	}
}

func indexOf(games []model.Game, id model.GameID) int {
	for i := range games {
		if games[i].ID == id {
			return i
		}
	}
	return -1
}
