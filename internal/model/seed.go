package model

// SampleGames is the starter collection used when seeding an empty store.
// Genres and platforms are mapped onto the fixed lists.
func SampleGames() []Game {
	return []Game{
		{
			Title:       "The Legend of Zelda: Breath of the Wild",
			Genre:       GenreAdventure,
			Platforms:   []Platform{PlatformSwitch},
			ReleaseYear: 2017,
			Rating:      4.0,
			Completed:   true,
		},
		{
			Title:       "Elden Ring",
			Genre:       GenreRPG,
			Platforms:   []Platform{PlatformPS5, PlatformXbox, PlatformPC},
			ReleaseYear: 2022,
			Rating:      5.0,
			Multiplayer: true,
		},
		{
			Title:       "Stardew Valley",
			Genre:       GenreSimulation,
			Platforms:   []Platform{PlatformSwitch, PlatformPC, PlatformXbox, PlatformMobile},
			ReleaseYear: 2016,
			Rating:      4.5,
			Completed:   true,
			Multiplayer: true,
		},
		{
			Title:       "Resident Evil 4",
			Genre:       GenreAction,
			Platforms:   []Platform{PlatformPS5, PlatformXbox, PlatformPC},
			ReleaseYear: 2023,
			Rating:      4.5,
		},
		{
			Title:       "Hollow Knight",
			Genre:       GenreAdventure,
			Platforms:   []Platform{PlatformSwitch, PlatformPC, PlatformXbox},
			ReleaseYear: 2017,
			Rating:      4.0,
			Completed:   true,
		},
		{
			Title:       "Sid Meier's Civilization VI",
			Genre:       GenreStrategy,
			Platforms:   []Platform{PlatformPC, PlatformSwitch, PlatformXbox},
			ReleaseYear: 2016,
			Rating:      4.5,
			Multiplayer: true,
		},
		{
			Title:       "Rocket League",
			Genre:       GenreSports,
			Platforms:   []Platform{PlatformXbox, PlatformPC, PlatformSwitch},
			ReleaseYear: 2015,
			Rating:      4.5,
			Multiplayer: true,
		},
		{
			Title:       "Undertale",
			Genre:       GenreRPG,
			Platforms:   []Platform{PlatformPC, PlatformSwitch},
			ReleaseYear: 2015,
			Rating:      5.0,
			Completed:   true,
		},
	}
}
