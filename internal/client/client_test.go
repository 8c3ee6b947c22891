package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gamehorizon/gamehorizon/internal/api"
	"github.com/gamehorizon/gamehorizon/internal/client"
	"github.com/gamehorizon/gamehorizon/internal/factory"
	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/testutil"
)

type ClientSuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
	client *client.Client
	ctx    context.Context
}

func (s *ClientSuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:            testutil.NopLogger(),
		CollectionService: s.app.CollectionService,
	}))
	s.client = client.New(s.server.URL + "/")
	s.ctx = context.Background()
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) TestListEmpty() {
	games, err := s.client.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *ClientSuite) TestCreateThenList() {
	created, err := s.client.CreateGame(s.ctx, testutil.Hades())
	s.Require().NoError(err)
	s.False(created.ID.IsZero())

	expected := testutil.Hades()
	expected.ID = created.ID
	s.Equal(expected, created)

	games, err := s.client.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.Game{created}, games)
}

func (s *ClientSuite) TestCreateIgnoresSuppliedID() {
	game := testutil.Hades()
	game.ID = 99

	created, err := s.client.CreateGame(s.ctx, game)
	s.Require().NoError(err)
	s.Equal(model.GameID(1), created.ID)
}

func (s *ClientSuite) TestGetGame() {
	created, err := s.client.CreateGame(s.ctx, testutil.Hades())
	s.Require().NoError(err)

	got, err := s.client.GetGame(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, *got)

	_, err = s.client.GetGame(s.ctx, 404)
	var nf *client.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal(client.OpGet, nf.Op)
}

func (s *ClientSuite) TestUpdateGame() {
	created, err := s.client.CreateGame(s.ctx, testutil.Hades())
	s.Require().NoError(err)

	created.Rating = 3.5
	created.Multiplayer = true
	updated, err := s.client.UpdateGame(s.ctx, created)
	s.Require().NoError(err)
	s.Equal(created, updated)
}

func (s *ClientSuite) TestUpdateMissingGameIsNotFound() {
	game := testutil.Hades()
	game.ID = 7

	_, err := s.client.UpdateGame(s.ctx, game)
	s.ErrorIs(err, model.ErrGameNotFound)

	var nf *client.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal(model.GameID(7), nf.ID)
	s.Equal("update: game 7 not found", err.Error())
}

func (s *ClientSuite) TestUpdateWithoutIDFailsLocally() {
	_, err := s.client.UpdateGame(s.ctx, testutil.Hades())
	s.ErrorIs(err, model.ErrInvalidID)
}

func (s *ClientSuite) TestDeleteGame() {
	created, err := s.client.CreateGame(s.ctx, testutil.Hades())
	s.Require().NoError(err)

	s.Require().NoError(s.client.DeleteGame(s.ctx, created.ID))

	games, err := s.client.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)

	err = s.client.DeleteGame(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ClientSuite) TestValidationFailureIsNetworkError() {
	game := testutil.Hades()
	game.Platforms = nil

	_, err := s.client.CreateGame(s.ctx, game)

	var ne *client.NetworkError
	s.Require().ErrorAs(err, &ne)
	s.Equal(http.StatusBadRequest, ne.Status)
	s.Equal("INVALID_GAME", ne.Code)
	s.Equal(client.OpCreate, ne.Op)
}

func (s *ClientSuite) TestHealth() {
	status, err := s.client.Health(s.ctx)
	s.Require().NoError(err)
	s.Equal("ok", status)
}

func TestListSendsCacheBuster(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query().Get("_"))
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	c := client.New(server.URL)
	for range 2 {
		_, err := c.ListGames(context.Background())
		require.NoError(t, err)
	}

	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.NotEqual(t, seen[0], seen[1])
}

func TestListAcceptsLooseRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"3","title":"Hades","genre":"RPG","platforms":["PC"],"releaseYear":2020,"rating":"4.5"}]`))
	}))
	defer server.Close()

	games, err := client.New(server.URL).ListGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, model.GameID(3), games[0].ID)
	assert.Equal(t, 4.5, games[0].Rating)
}

func TestServerErrorIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := client.New(server.URL).ListGames(context.Background())

	var ne *client.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.StatusBadGateway, ne.Status)
	assert.Equal(t, "list: HTTP 502 Bad Gateway", err.Error())
	assert.False(t, errors.Is(err, model.ErrGameNotFound))
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := client.New(url).DeleteGame(context.Background(), 1)

	var ne *client.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Zero(t, ne.Status)
	assert.Equal(t, client.OpDelete, ne.Op)
	assert.Error(t, errors.Unwrap(err))
}
