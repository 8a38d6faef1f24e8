package factory

import (
	"time"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/mocks"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/storage/memory"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing: fixture registries,
// in-memory storage, and mocked clock and randomness.
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	store := memory.New(mockClock)
	logger := testutil.NopLogger()

	pieceReg, cardReg, err := testutil.LoadRegistries()
	if err != nil {
		panic(err)
	}

	app := newWithDependencies(store, mockClock, mockRandom, pieceReg, cardReg, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
