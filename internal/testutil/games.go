package testutil

import "github.com/gamehorizon/gamehorizon/internal/model"

// Hades returns a valid game without an id
func Hades() model.Game {
	return model.Game{
		Title:       "Hades",
		Genre:       model.GenreRPG,
		Platforms:   []model.Platform{model.PlatformPC},
		ReleaseYear: 2020,
		Rating:      4.5,
		Completed:   true,
		Multiplayer: false,
	}
}
