package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gamehorizon/gamehorizon/internal/model"
)

// Rating accepts a JSON number or a string holding one ("4.5")
type Rating float64

// UnmarshalJSON implements json.Unmarshaler
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("rating %q is not a number", s)
		}
		*r = Rating(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Rating(f)
	return nil
}

// GameRequest is the body of POST /games and PUT /games/{id}
type GameRequest struct {
	ID          model.GameID     `json:"id,omitempty"`
	Title       string           `json:"title"`
	Genre       model.Genre      `json:"genre"`
	Platforms   []model.Platform `json:"platforms"`
	ReleaseYear int              `json:"releaseYear"`
	Rating      Rating           `json:"rating"`
	Completed   bool             `json:"completed"`
	Multiplayer bool             `json:"multiplayer"`
}

// ToModel converts the request into a model.Game
func (r GameRequest) ToModel() model.Game {
	return model.Game{
		ID:          r.ID,
		Title:       r.Title,
		Genre:       r.Genre,
		Platforms:   r.Platforms,
		ReleaseYear: r.ReleaseYear,
		Rating:      float64(r.Rating),
		Completed:   r.Completed,
		Multiplayer: r.Multiplayer,
	}
}
