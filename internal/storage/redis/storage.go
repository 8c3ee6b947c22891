package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) ListGames(ctx context.Context) ([]model.Game, error) {
	ids, err := s.client.ZRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []model.Game{}, nil
	}

	values, err := s.client.HMGet(ctx, s.gamesKey(), ids...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]model.Game, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // index entry without a record
		}
		var game model.Game
		if err := json.Unmarshal([]byte(str), &game); err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.HGet(ctx, s.gamesKey(), id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) CreateGame(ctx context.Context, game model.Game) (model.Game, error) {
	next, err := s.client.Incr(ctx, s.counterKey()).Result()
	if err != nil {
		return model.Game{}, err
	}

	game = game.Clone()
	game.ID = model.GameID(next)

	data, err := json.Marshal(game)
	if err != nil {
		return model.Game{}, err
	}

	// Record and index are written in one MULTI/EXEC
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.gamesKey(), game.ID.String(), data)
		pipe.ZAdd(ctx, s.orderKey(), redis.Z{Score: float64(game.ID), Member: game.ID.String()})
		return nil
	})
	if err != nil {
		return model.Game{}, err
	}
	return game, nil
}

func (s *Storage) UpdateGame(ctx context.Context, game model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	field := game.ID.String()
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, s.gamesKey(), field).Result()
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrGameNotFound
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.gamesKey(), field, data)
			return nil
		})
		return err
	}, s.gamesKey())
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	var removed *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.HDel(ctx, s.gamesKey(), id.String())
		pipe.ZRem(ctx, s.orderKey(), id.String())
		return nil
	})
	if err != nil {
		return err
	}
	if removed.Val() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}
