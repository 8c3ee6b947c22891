package response

import "github.com/gamehorizon/gamehorizon/internal/model"

// Game is a record as it appears on the wire
type Game struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Platforms   []string `json:"platforms"`
	ReleaseYear int      `json:"releaseYear"`
	Rating      float64  `json:"rating"`
	Completed   bool     `json:"completed"`
	Multiplayer bool     `json:"multiplayer"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g model.Game) Game {
	platforms := make([]string, len(g.Platforms))
	for i, p := range g.Platforms {
		platforms[i] = string(p)
	}
	return Game{
		ID:          int64(g.ID),
		Title:       g.Title,
		Genre:       string(g.Genre),
		Platforms:   platforms,
		ReleaseYear: g.ReleaseYear,
		Rating:      g.Rating,
		Completed:   g.Completed,
		Multiplayer: g.Multiplayer,
	}
}

// GamesFromModel converts a collection; an empty collection encodes as []
func GamesFromModel(games []model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
