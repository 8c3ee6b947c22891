package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Record limits
const (
	MaxTitleLength = 100
	MinReleaseYear = 1970
	MinRating      = 1.0
	MaxRating      = 5.0
	RatingStep     = 0.5
)

// GameID uniquely identifies a game within the collection.
// The zero value means "not yet assigned".
type GameID int64

// String returns the decimal form used in URLs
func (id GameID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsZero reports whether no id has been assigned
func (id GameID) IsZero() bool {
	return id == 0
}

// ParseGameID parses an id taken from a URL path or form value
func ParseGameID(s string) (GameID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return GameID(n), nil
}

// UnmarshalJSON accepts both numeric ids and strings holding a number
func (id *GameID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		parsed, err := ParseGameID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, string(data))
	}
	*id = GameID(n)
	return nil
}

// Genre is one of the fixed genre list
type Genre string

const (
	GenreAction     Genre = "Action"
	GenreAdventure  Genre = "Adventure"
	GenreRPG        Genre = "RPG"
	GenreStrategy   Genre = "Strategy"
	GenreSports     Genre = "Sports"
	GenrePuzzle     Genre = "Puzzle"
	GenreSimulation Genre = "Simulation"
)

// Genres lists every genre in display order
var Genres = []Genre{
	GenreAction,
	GenreAdventure,
	GenreRPG,
	GenreStrategy,
	GenreSports,
	GenrePuzzle,
	GenreSimulation,
}

// Valid reports whether g is in the fixed genre list
func (g Genre) Valid() bool {
	return slices.Contains(Genres, g)
}

// Platform is one of the fixed platform list
type Platform string

const (
	PlatformPC     Platform = "PC"
	PlatformPS5    Platform = "PS5"
	PlatformXbox   Platform = "Xbox"
	PlatformSwitch Platform = "Switch"
	PlatformMobile Platform = "Mobile"
)

// Platforms lists every platform in display order
var Platforms = []Platform{
	PlatformPC,
	PlatformPS5,
	PlatformXbox,
	PlatformSwitch,
	PlatformMobile,
}

// Valid reports whether p is in the fixed platform list
func (p Platform) Valid() bool {
	return slices.Contains(Platforms, p)
}

// Ratings lists the selectable ratings, 1.0 to 5.0 in half steps
var Ratings = []float64{1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0}

// ValidRating reports whether r is one of the selectable ratings
func ValidRating(r float64) bool {
	return slices.Contains(Ratings, r)
}

// FormatRating renders a rating with one decimal, e.g. "4.5"
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// Game is a single entry in the collection
type Game struct {
	ID          GameID     `json:"id,omitempty"`
	Title       string     `json:"title" validate:"required,max=100"`
	Genre       Genre      `json:"genre" validate:"genre"`
	Platforms   []Platform `json:"platforms" validate:"min=1,dive,platform"`
	ReleaseYear int        `json:"releaseYear" validate:"min=1970"`
	Rating      float64    `json:"rating" validate:"rating"`
	Completed   bool       `json:"completed"`
	Multiplayer bool       `json:"multiplayer"`
}

// Clone returns a deep copy so callers can't alias the platform slice
func (g Game) Clone() Game {
	g.Platforms = slices.Clone(g.Platforms)
	return g
}

// HasPlatform reports whether p is selected
func (g *Game) HasPlatform(p Platform) bool {
	return slices.Contains(g.Platforms, p)
}

// PlatformNames joins the platforms for display
func (g *Game) PlatformNames() string {
	names := make([]string, len(g.Platforms))
	for i, p := range g.Platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// ClampYear bounds a release year into [MinReleaseYear, currentYear]
func ClampYear(year, currentYear int) int {
	return min(max(year, MinReleaseYear), currentYear)
}

// Normalize trims the title, clamps the release year and removes duplicate platforms.
// It does not validate.
func (g *Game) Normalize(currentYear int) {
	g.Title = strings.TrimSpace(g.Title)
	g.ReleaseYear = ClampYear(g.ReleaseYear, currentYear)

	seen := make(map[Platform]bool, len(g.Platforms))
	platforms := make([]Platform, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		if seen[p] {
			continue
		}
		seen[p] = true
		platforms = append(platforms, p)
	}
	g.Platforms = platforms
}
