// Package ui drives the collection view: it keeps the client-side store in
// sync with the record store and owns the create/edit form.
package ui

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gamehorizon/gamehorizon/internal/dependencies/clock"
	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/ui/form"
	"github.com/gamehorizon/gamehorizon/internal/ui/state"
)

// Operation labels shown in the error banner
const (
	OpLoad   = "Load games"
	OpCreate = "Add game"
	OpUpdate = "Update game"
	OpDelete = "Delete game"
)

// ErrNoForm is returned when a form action arrives while the form is closed
var ErrNoForm = errors.New("form is not open")

// StoreClient is the subset of the record store client used by the UI
type StoreClient interface {
	ListGames(ctx context.Context) ([]model.Game, error)
	CreateGame(ctx context.Context, game model.Game) (model.Game, error)
	UpdateGame(ctx context.Context, game model.Game) (model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
}

// View is what the page renders
type View struct {
	State state.State
	Form  *form.Form
}

// Controller is the single owner of UI state
type Controller struct {
	client StoreClient
	clock  clock.Clock
	logger *slog.Logger
	store  *state.Store

	mu   sync.Mutex
	form *form.Form
}

// NewController creates a controller. Nothing is loaded until Load is called.
func NewController(client StoreClient, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		client: client,
		clock:  clk,
		logger: logger,
		store:  state.NewStore(),
	}
}

// View returns a snapshot for rendering
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{State: c.store.Snapshot()}
	if c.form != nil {
		v.Form = c.form.Clone()
	}
	return v
}

// CurrentYear is the upper bound for release years
func (c *Controller) CurrentYear() int {
	return c.clock.Now().Year()
}

// Load fetches the whole collection and replaces local state with it
func (c *Controller) Load(ctx context.Context) error {
	tok := c.store.Begin()

	games, err := c.client.ListGames(ctx)
	if err != nil {
		c.fail(tok, OpLoad, err)
		return err
	}

	c.store.Apply(tok, func(s state.State) state.State {
		return state.ClearError(state.WithGames(s, games))
	})
	return nil
}

// OpenCreate opens a blank form and clears the banner
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.form = form.OpenCreate(c.CurrentYear())
	c.store.Update(state.ClearError)
}

// OpenEdit opens the form on a game from the current collection
func (c *Controller) OpenEdit(id model.GameID) error {
	game, i := c.store.Snapshot().Find(id)
	if i < 0 {
		return model.ErrGameNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.form = form.OpenEdit(game, c.CurrentYear())
	c.store.Update(state.ClearError)
	return nil
}

// Cancel discards the form and any error state
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.form = nil
	c.store.Update(state.ClearError)
}

// DismissError hides the banner
func (c *Controller) DismissError() {
	c.store.Update(state.ClearError)
}

// UpdateField applies one incremental change to the open form
func (c *Controller) UpdateField(field form.Field, values []string) (*form.Form, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.form == nil {
		return nil, ErrNoForm
	}
	c.form.Apply(field, values)
	return c.form.Clone(), nil
}

// Submit validates the form and creates or updates the record. Invalid input
// returns a *form.ValidationError without contacting the store. On success the
// form closes and the collection is reloaded.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.form == nil {
		c.mu.Unlock()
		return ErrNoForm
	}
	game, err := c.form.Submission()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	op := OpCreate
	if !game.ID.IsZero() {
		op = OpUpdate
	}

	tok := c.store.Begin()

	var saved model.Game
	if op == OpCreate {
		saved, err = c.client.CreateGame(ctx, game)
	} else {
		saved, err = c.client.UpdateGame(ctx, game)
	}
	if err != nil {
		c.fail(tok, op, err)
		return err
	}

	c.store.Apply(tok, func(s state.State) state.State {
		if op == OpCreate {
			s = state.WithCreated(s, saved)
		} else {
			s = state.WithUpdated(s, saved)
		}
		return state.ClearError(s)
	})

	c.mu.Lock()
	c.form = nil
	c.mu.Unlock()

	// The reload reports its own failure through the banner
	_ = c.Load(ctx)
	return nil
}

// Delete removes a game optimistically. The removal is rolled back if the
// store rejects it; on success the collection is reloaded once.
func (c *Controller) Delete(ctx context.Context, id model.GameID) error {
	removed, index := c.store.Snapshot().Find(id)

	tok := c.store.Begin()
	c.store.Update(func(s state.State) state.State {
		return state.WithoutGame(s, id)
	})

	if err := c.client.DeleteGame(ctx, id); err != nil {
		c.store.Apply(tok, func(s state.State) state.State {
			if index >= 0 {
				s = state.WithRestored(s, removed, index)
			}
			return state.WithError(s, OpDelete, reason(err))
		})
		c.logger.Warn("operation failed",
			slog.String("op", OpDelete),
			slog.String("game_id", id.String()),
			slog.String("error", err.Error()))
		return err
	}

	c.store.Apply(tok, state.ClearError)

	_ = c.Load(ctx)
	return nil
}

func (c *Controller) fail(tok state.Token, op string, err error) {
	c.store.Apply(tok, func(s state.State) state.State {
		return state.WithError(s, op, reason(err))
	})
	c.logger.Warn("operation failed",
		slog.String("op", op),
		slog.String("error", err.Error()))
}

// reason strips the operation prefix client errors carry
func reason(err error) string {
	var r interface{ Reason() string }
	if errors.As(err, &r) {
		return r.Reason()
	}
	return err.Error()
}
