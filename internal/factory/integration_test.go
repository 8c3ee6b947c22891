package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/storage/jsonfile"
	"github.com/gamehorizon/gamehorizon/internal/storage/memory"
	"github.com/gamehorizon/gamehorizon/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TestCreateEditDeleteScenario() {
	svc := s.app.CollectionService

	created, err := svc.Create(s.ctx, testutil.Hades())
	s.Require().NoError(err)

	edit := created.Clone()
	edit.Rating = 3.5
	edit.Multiplayer = true
	_, err = svc.Update(s.ctx, created.ID, edit)
	s.Require().NoError(err)

	stored, err := svc.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(3.5, stored.Rating)
	s.True(stored.Multiplayer)

	s.Require().NoError(svc.Delete(s.ctx, created.ID))
	games, err := svc.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *IntegrationSuite) TestClockDrivesYearClamp() {
	s.app.MockClock.Set(s.app.MockClock.Now().AddDate(-6, 0, 0))

	g := testutil.Hades()
	g.ReleaseYear = 2025
	created, err := s.app.CollectionService.Create(s.ctx, g)
	s.Require().NoError(err)
	s.Equal(2020, created.ReleaseYear)
}

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	_, ok := app.Storage.(*memory.Storage)
	assert.True(t, ok)
}

func TestNewJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	app, err := New(Config{StorageType: StorageTypeJSONFile, StoragePath: path})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	_, ok := app.Storage.(*jsonfile.Storage)
	require.True(t, ok)

	created, err := app.CollectionService.Create(t.Context(), testutil.Hades())
	require.NoError(t, err)

	reopened, err := New(Config{StorageType: StorageTypeJSONFile, StoragePath: path})
	require.NoError(t, err)
	game, err := reopened.CollectionService.Get(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hades", game.Title)
}

func TestNewRejectsMissingSettings(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeJSONFile})
	assert.Error(t, err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)

	_, err = New(Config{StorageType: "postgres"})
	assert.Error(t, err)
}

func TestSeedSampleGames(t *testing.T) {
	app := NewTestApp()
	added, err := app.CollectionService.Seed(t.Context())
	require.NoError(t, err)

	games, err := app.CollectionService.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, games, added)
	for _, g := range games {
		assert.True(t, g.Genre.Valid(), g.Title)
		for _, p := range g.Platforms {
			assert.True(t, p.Valid(), g.Title)
		}
		assert.True(t, model.ValidRating(g.Rating), g.Title)
	}
}
