package components_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/testutil"
	"github.com/gamehorizon/gamehorizon/internal/ui"
	"github.com/gamehorizon/gamehorizon/internal/ui/state"
	"github.com/gamehorizon/gamehorizon/internal/web/templates/components"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestAppInitialLoadShowsSpinner(t *testing.T) {
	doc := render(t, components.App(ui.View{State: state.State{Loading: true}}))

	button := doc.Find(".add-button")
	require.Equal(t, 1, button.Length())
	_, disabled := button.Attr("disabled")
	assert.True(t, disabled)
	assert.Equal(t, components.LoadingLabel, button.Text())
	assert.Equal(t, 1, doc.Find(".spinner").Length())
	assert.Equal(t, 0, doc.Find(".empty-state").Length())
}

func TestAppReloadKeepsGridWithoutSpinner(t *testing.T) {
	game := testutil.Hades()
	game.ID = 1
	doc := render(t, components.App(ui.View{State: state.State{
		Games:   []model.Game{game},
		Loading: true,
		Loaded:  true,
	}}))

	_, disabled := doc.Find(".add-button").Attr("disabled")
	assert.True(t, disabled)
	assert.Equal(t, 0, doc.Find(".spinner").Length())
	assert.Equal(t, 1, doc.Find(".game-grid .game-card").Length())
}

func TestAppIdle(t *testing.T) {
	doc := render(t, components.App(ui.View{State: state.State{Loaded: true}}))

	button := doc.Find(".add-button")
	_, disabled := button.Attr("disabled")
	assert.False(t, disabled)
	assert.Equal(t, components.AddLabel, button.Text())
	assert.Equal(t, 0, doc.Find(".spinner").Length())
	assert.Equal(t, components.EmptyMessage, doc.Find(".empty-state").Text())
}

func TestGameCardRendersWholeRating(t *testing.T) {
	game := testutil.Hades()
	game.ID = 3
	game.Rating = 5
	doc := render(t, components.App(ui.View{State: state.State{Games: []model.Game{game}, Loaded: true}}))

	badge := doc.Find(".game-card .rating-badge")
	assert.Equal(t, "5/5", badge.Text())
	assert.True(t, badge.HasClass("rating-green"))
}
