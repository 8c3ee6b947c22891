// Package card holds the presentation rules for a single game card
package card

import (
	"strconv"

	"github.com/gamehorizon/gamehorizon/internal/model"
)

// Band is the colour of the rating badge
type Band string

const (
	BandGreen  Band = "green"
	BandYellow Band = "yellow"
	BandRed    Band = "red"
)

// Band thresholds
const (
	GreenThreshold  = 4.5
	YellowThreshold = 4.0
)

// Status labels
const (
	LabelMultiplayer  = "Multiplayer"
	LabelSinglePlayer = "Single Player"
	LabelCompleted    = "Completed"
	LabelInProgress   = "In Progress"
)

// RatingBand maps a rating to its badge colour
func RatingBand(rating float64) Band {
	switch {
	case rating >= GreenThreshold:
		return BandGreen
	case rating >= YellowThreshold:
		return BandYellow
	default:
		return BandRed
	}
}

// PlayersLabel returns the multiplayer badge text
func PlayersLabel(multiplayer bool) string {
	if multiplayer {
		return LabelMultiplayer
	}
	return LabelSinglePlayer
}

// ProgressLabel returns the completion badge text
func ProgressLabel(completed bool) string {
	if completed {
		return LabelCompleted
	}
	return LabelInProgress
}

// FormatRating renders a rating out of five with no trailing zeros, e.g. "5/5" or "4.5/5"
func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64) + "/5"
}

// View is everything a card displays for one record
type View struct {
	ID          model.GameID
	Title       string
	Genre       string
	ReleaseYear string
	Platforms   string
	Rating      string
	Band        Band
	Players     string
	Progress    string
	Multiplayer bool
	Completed   bool
}

// New builds the view for game
func New(game model.Game) View {
	return View{
		ID:          game.ID,
		Title:       game.Title,
		Genre:       string(game.Genre),
		ReleaseYear: strconv.Itoa(game.ReleaseYear),
		Platforms:   game.PlatformNames(),
		Rating:      FormatRating(game.Rating),
		Band:        RatingBand(game.Rating),
		Players:     PlayersLabel(game.Multiplayer),
		Progress:    ProgressLabel(game.Completed),
		Multiplayer: game.Multiplayer,
		Completed:   game.Completed,
	}
}
