package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gamehorizon/gamehorizon/internal/api/response"
	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/ui/card"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// GameList is a whole collection
type GameList []model.Game

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	// Games use the store's wire shape
	switch v := data.(type) {
	case model.Game:
		data = response.GameFromModel(v)
	case GameList:
		data = response.GamesFromModel(v)
	}

	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.Game:
		o.printGame(v)
	case GameList:
		o.printGameList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g model.Game) {
	c := card.New(g)
	fmt.Fprintf(o.w, "#%s %s [%s %s]\n", c.ID, c.Title, c.Rating, c.Band)
	fmt.Fprintf(o.w, "  Genre:     %s\n", c.Genre)
	fmt.Fprintf(o.w, "  Released:  %s\n", c.ReleaseYear)
	fmt.Fprintf(o.w, "  Platforms: %s\n", c.Platforms)
	fmt.Fprintf(o.w, "  %s | %s\n", c.Players, c.Progress)
}

func (o *Output) printGameList(games GameList) {
	if len(games) == 0 {
		fmt.Fprintln(o.w, "No games in your collection yet.")
		return
	}
	for i, g := range games {
		if i > 0 {
			fmt.Fprintln(o.w)
		}
		o.printGame(g)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
