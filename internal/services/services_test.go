package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wcraske/simpleCalendar/internal/auth"
	"github.com/wcraske/simpleCalendar/internal/config"
	"github.com/wcraske/simpleCalendar/internal/db"
	"github.com/wcraske/simpleCalendar/internal/models"
	"github.com/wcraske/simpleCalendar/internal/repository/sqlite"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

type testEnv struct {
	clock  *testClock
	tm     *auth.TokenManager
	users  *UserService
	events *EventService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	store, err := sqlite.NewStore(gdb)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := &testClock{t: time.Date(2030, 3, 1, 12, 0, 0, 0, time.UTC)}
	tm, err := auth.NewTokenManager("test-secret", time.Hour, auth.WithClock(clock.Now))
	require.NoError(t, err)

	cfg := config.Config{AdminUsername: "admin", AdminPassword: "admin"}
	env := &testEnv{
		clock:  clock,
		tm:     tm,
		users:  NewUserService(store, tm, cfg),
		events: NewEventService(store),
	}
	env.events.now = clock.Now
	return env
}

func (e *testEnv) register(t *testing.T, name string) models.User {
	t.Helper()
	u, _, err := e.users.Register(context.Background(), name, "password")
	require.NoError(t, err)
	return u
}

func (e *testEnv) admin(t *testing.T) models.User {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.users.EnsureAdmin(ctx))
	tok, err := e.users.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	u, err := e.users.Authenticate(ctx, tok.AccessToken)
	require.NoError(t, err)
	return u
}

func sampleInput(name string, start time.Time) EventInput {
	return EventInput{
		Name:        name,
		Description: "desc " + name,
		StartDate:   start,
		EndDate:     start.Add(time.Hour),
	}
}
