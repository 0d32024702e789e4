package factory

import (
	"time"

	"github.com/snippetsapp/snippets/internal/dependencies/mocks"
	"github.com/snippetsapp/snippets/internal/services/auth"
	"github.com/snippetsapp/snippets/internal/storage/memory"
	"github.com/snippetsapp/snippets/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	authCfg := auth.DefaultConfig()
	authCfg.Secret = "test-secret"

	app := newWithDependencies(store, mockClock, authCfg, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
