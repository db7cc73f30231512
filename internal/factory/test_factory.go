package factory

import (
	"time"

	"github.com/kunalgolani-work/kachuful-backend/internal/dependencies/mocks"
	"github.com/kunalgolani-work/kachuful-backend/internal/imagehost"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/auth"
	"github.com/kunalgolani-work/kachuful-backend/internal/storage/memory"
	"github.com/kunalgolani-work/kachuful-backend/internal/testutil"
)

// TestApp bundles an App with its controllable dependencies
type TestApp struct {
	*App
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App on in-memory storage with a mock clock and
// mock random source, for tests that need deterministic behavior.
func NewTestApp() *TestApp {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()

	authCfg := auth.Config{Secret: "test-secret", TokenDuration: time.Hour}
	app := newWithDependencies(store, clk, rnd, authCfg, imagehost.Passthrough{}, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  clk,
		MockRandom: rnd,
		Memory:     store,
	}
}
