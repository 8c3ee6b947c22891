// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/storage"
	"github.com/gamehorizon/gamehorizon/internal/testutil"
)

// Suite runs the storage contract against the backend returned by NewStorage.
// Embed it in a backend test suite and set NewStorage in SetupTest.
type Suite struct {
	suite.Suite
	NewStorage func() storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.NewStorage, "NewStorage must be set")
	s.Storage = s.NewStorage()
	s.Ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.Storage != nil {
		_ = s.Storage.Close()
	}
}

func (s *Suite) create(title string) model.Game {
	g := testutil.Hades()
	g.Title = title
	created, err := s.Storage.CreateGame(s.Ctx, g)
	s.Require().NoError(err)
	return created
}

func (s *Suite) TestListEmpty() {
	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *Suite) TestCreateAssignsID() {
	created, err := s.Storage.CreateGame(s.Ctx, testutil.Hades())
	s.Require().NoError(err)
	s.False(created.ID.IsZero())
	s.Equal("Hades", created.Title)

	retrieved, err := s.Storage.GetGame(s.Ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, *retrieved)
}

func (s *Suite) TestCreateIgnoresSuppliedID() {
	g := testutil.Hades()
	g.ID = 999
	created, err := s.Storage.CreateGame(s.Ctx, g)
	s.Require().NoError(err)
	s.NotEqual(model.GameID(999), created.ID)
}

func (s *Suite) TestCreateAssignsUniqueIDs() {
	seen := make(map[model.GameID]bool)
	for range 25 {
		created := s.create("Rapid")
		s.False(seen[created.ID], "id %d assigned twice", created.ID)
		seen[created.ID] = true
	}
}

func (s *Suite) TestIDsNotReusedAfterDelete() {
	first := s.create("First")
	second := s.create("Second")
	s.Require().NoError(s.Storage.DeleteGame(s.Ctx, second.ID))

	third := s.create("Third")
	s.NotEqual(second.ID, third.ID)
	s.NotEqual(first.ID, third.ID)
	s.Greater(third.ID, second.ID)
}

func (s *Suite) TestListKeepsInsertionOrder() {
	a := s.create("A")
	b := s.create("B")
	c := s.create("C")

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal([]model.GameID{a.ID, b.ID, c.ID}, []model.GameID{games[0].ID, games[1].ID, games[2].ID})
}

func (s *Suite) TestGetNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, 12345)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestUpdateReplacesRecord() {
	created := s.create("Hades")
	s.create("Other")

	updated := created.Clone()
	updated.Rating = 3.5
	updated.Multiplayer = true
	updated.Platforms = []model.Platform{model.PlatformPC, model.PlatformSwitch}
	s.Require().NoError(s.Storage.UpdateGame(s.Ctx, updated))

	retrieved, err := s.Storage.GetGame(s.Ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(updated, *retrieved)

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Len(games, 2)
	s.Equal(created.ID, games[0].ID, "update must keep position")
}

func (s *Suite) TestUpdateNotFound() {
	g := testutil.Hades()
	g.ID = 42
	err := s.Storage.UpdateGame(s.Ctx, g)
	s.ErrorIs(err, model.ErrGameNotFound)

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *Suite) TestDeleteRemovesExactlyOne() {
	a := s.create("A")
	b := s.create("B")
	c := s.create("C")

	s.Require().NoError(s.Storage.DeleteGame(s.Ctx, b.ID))

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal(a.ID, games[0].ID)
	s.Equal(c.ID, games[1].ID)

	_, err = s.Storage.GetGame(s.Ctx, b.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestDeleteNotFoundLeavesCollection() {
	s.create("A")

	err := s.Storage.DeleteGame(s.Ctx, 777)
	s.ErrorIs(err, model.ErrGameNotFound)

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Len(games, 1)
}

func (s *Suite) TestReturnedGamesDoNotAliasStorage() {
	created := s.create("Hades")
	created.Platforms[0] = model.PlatformMobile

	retrieved, err := s.Storage.GetGame(s.Ctx, created.ID)
	s.Require().NoError(err)
	s.Equal([]model.Platform{model.PlatformPC}, retrieved.Platforms)
}
