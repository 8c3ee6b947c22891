package factory

import (
	"time"

	"github.com/gamehorizon/gamehorizon/internal/dependencies/mocks"
	"github.com/gamehorizon/gamehorizon/internal/storage/memory"
	"github.com/gamehorizon/gamehorizon/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App on memory storage with a mock clock set to mid-2026
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
