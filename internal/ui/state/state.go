// Package state is the UI's explicit client-side store. State values are
// never mutated in place; every change goes through a pure With* function.
package state

import (
	"slices"

	"github.com/gamehorizon/gamehorizon/internal/model"
)

// Banner is a dismissible error message about a failed operation
type Banner struct {
	Op      string
	Message string
}

// Text renders the banner as "<operation> failed: <message>"
func (b Banner) Text() string {
	return b.Op + " failed: " + b.Message
}

// State is a snapshot of what the UI shows
type State struct {
	Games   []model.Game
	Loading bool
	Loaded  bool
	Banner  *Banner
}

// Clone returns a deep copy
func (s State) Clone() State {
	games := make([]model.Game, len(s.Games))
	for i, g := range s.Games {
		games[i] = g.Clone()
	}
	s.Games = games
	if s.Banner != nil {
		b := *s.Banner
		s.Banner = &b
	}
	return s
}

// Empty reports whether a completed load found no games
func (s State) Empty() bool {
	return s.Loaded && len(s.Games) == 0
}

// Find returns the game with id and its position, or -1
func (s State) Find(id model.GameID) (model.Game, int) {
	i := slices.IndexFunc(s.Games, func(g model.Game) bool { return g.ID == id })
	if i < 0 {
		return model.Game{}, -1
	}
	return s.Games[i].Clone(), i
}

// WithGames replaces the collection wholesale
func WithGames(s State, games []model.Game) State {
	s.Games = make([]model.Game, len(games))
	for i, g := range games {
		s.Games[i] = g.Clone()
	}
	s.Loaded = true
	return s
}

// WithCreated appends a newly created game
func WithCreated(s State, game model.Game) State {
	s = s.Clone()
	s.Games = append(s.Games, game.Clone())
	return s
}

// WithUpdated replaces the game with the same id, keeping its position
func WithUpdated(s State, game model.Game) State {
	s = s.Clone()
	for i := range s.Games {
		if s.Games[i].ID == game.ID {
			s.Games[i] = game.Clone()
		}
	}
	return s
}

// WithoutGame removes the game with id
func WithoutGame(s State, id model.GameID) State {
	s = s.Clone()
	s.Games = slices.DeleteFunc(s.Games, func(g model.Game) bool { return g.ID == id })
	return s
}

// WithRestored puts game back at index unless a game with its id is present
func WithRestored(s State, game model.Game, index int) State {
	if _, i := s.Find(game.ID); i >= 0 {
		return s
	}
	s = s.Clone()
	index = min(max(index, 0), len(s.Games))
	s.Games = slices.Insert(s.Games, index, game.Clone())
	return s
}

// WithError shows a banner for a failed operation
func WithError(s State, op, message string) State {
	s.Banner = &Banner{Op: op, Message: message}
	return s
}

// ClearError removes the banner
func ClearError(s State) State {
	s.Banner = nil
	return s
}
