package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcraske/simpleCalendar/internal/apperr"
)

func TestCreate_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	start := env.clock.t

	ev, err := env.events.Create(ctx, alice, "", sampleInput("mine", start))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, ev.OwnerID)
	assert.Equal(t, "mine", ev.Name)
	assert.True(t, ev.StartDate.Equal(start))

	ev, err = env.events.Create(ctx, alice, alice.ID, sampleInput("explicit self", start))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, ev.OwnerID)

	_, err = env.events.Create(ctx, alice, bob.ID, sampleInput("for bob", start))
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.events.Create(ctx, admin, "", sampleInput("nobody", start))
	assert.ErrorIs(t, err, apperr.ErrBadRequest)

	ev, err = env.events.Create(ctx, admin, bob.ID, sampleInput("assigned", start))
	require.NoError(t, err)
	assert.Equal(t, bob.ID, ev.OwnerID)

	_, err = env.events.Create(ctx, admin, "no-such-user", sampleInput("orphan", start))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	start := env.clock.t

	tests := []struct {
		name string
		in   EventInput
	}{
		{name: "empty name", in: EventInput{Name: "", StartDate: start, EndDate: start}},
		{name: "long name", in: EventInput{Name: strings.Repeat("n", 101), StartDate: start, EndDate: start}},
		{name: "long description", in: EventInput{Name: "x", Description: strings.Repeat("d", 256), StartDate: start, EndDate: start}},
		{name: "missing start", in: EventInput{Name: "x", EndDate: start}},
		{name: "missing end", in: EventInput{Name: "x", StartDate: start}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.events.Create(ctx, alice, "", tt.in)
			assert.ErrorIs(t, err, apperr.ErrBadRequest)
		})
	}

	// end before start is accepted
	_, err := env.events.Create(ctx, alice, "", EventInput{Name: "x", StartDate: start, EndDate: start.Add(-time.Hour)})
	assert.NoError(t, err)
}

func TestUpdateDelete_OwnerOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	start := env.clock.t

	ev, err := env.events.Create(ctx, alice, "", sampleInput("standup", start))
	require.NoError(t, err)

	change := sampleInput("retro", start.Add(24*time.Hour))

	_, err = env.events.Update(ctx, bob, ev.ID, change)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.ErrorIs(t, env.events.Delete(ctx, bob, ev.ID), apperr.ErrForbidden)

	updated, err := env.events.Update(ctx, alice, ev.ID, change)
	require.NoError(t, err)
	assert.Equal(t, "retro", updated.Name)
	assert.Equal(t, alice.ID, updated.OwnerID)
	assert.Equal(t, ev.ID, updated.ID)

	updated, err = env.events.Update(ctx, admin, ev.ID, sampleInput("by admin", start))
	require.NoError(t, err)
	assert.Equal(t, "by admin", updated.Name)
	assert.Equal(t, alice.ID, updated.OwnerID)

	_, err = env.events.Update(ctx, alice, "missing", change)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, env.events.Delete(ctx, admin, ev.ID))
	assert.ErrorIs(t, env.events.Delete(ctx, alice, ev.ID), apperr.ErrNotFound)

	own, err := env.events.Create(ctx, bob, "", sampleInput("bob's", start))
	require.NoError(t, err)
	require.NoError(t, env.events.Delete(ctx, bob, own.ID))
}

func TestGet_RequiresOwnershipOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	ev, err := env.events.Create(ctx, alice, "", sampleInput("private", env.clock.t))
	require.NoError(t, err)

	got, err := env.events.Get(ctx, alice, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, ev.Name, got.Name)
	assert.True(t, got.StartDate.Equal(ev.StartDate))

	_, err = env.events.Get(ctx, admin, ev.ID)
	require.NoError(t, err)

	_, err = env.events.Get(ctx, bob, ev.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.events.Get(ctx, alice, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestList_Scope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	start := env.clock.t

	for i := 0; i < 3; i++ {
		_, err := env.events.Create(ctx, alice, "", sampleInput(fmt.Sprintf("alice-%d", i), start))
		require.NoError(t, err)
	}
	_, err := env.events.Create(ctx, bob, "", sampleInput("bob-0", start))
	require.NoError(t, err)

	page := ListParams{Limit: DefaultLimit}

	mine, err := env.events.List(ctx, alice, page)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	for _, e := range mine {
		assert.Equal(t, alice.ID, e.OwnerID)
	}

	all, err := env.events.List(ctx, admin, page)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	found, err := env.events.List(ctx, admin, ListParams{Limit: DefaultLimit, Search: "bob"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, bob.ID, found[0].OwnerID)

	found, err = env.events.List(ctx, alice, ListParams{Limit: DefaultLimit, Search: "bob"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestList_Pagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t)
	alice := env.register(t, "alice")
	start := env.clock.t

	for i := 0; i < 150; i++ {
		_, err := env.events.Create(ctx, admin, alice.ID, sampleInput(fmt.Sprintf("e%03d", i), start.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	got, err := env.events.List(ctx, admin, ListParams{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, got, 100)

	got, err = env.events.List(ctx, admin, ListParams{Skip: 100, Limit: 100})
	require.NoError(t, err)
	assert.Len(t, got, 50)

	for _, p := range []ListParams{{Limit: 101}, {Limit: 0}, {Skip: -1, Limit: 10}} {
		_, err := env.events.List(ctx, admin, p)
		assert.ErrorIs(t, err, apperr.ErrBadRequest, "params %+v", p)
	}
}

func TestUpcoming(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t)
	alice := env.register(t, "alice")
	now := env.clock.t

	soon, err := env.events.Create(ctx, alice, "", sampleInput("soon", now.Add(10*time.Minute)))
	require.NoError(t, err)
	_, err = env.events.Create(ctx, alice, "", sampleInput("later", now.Add(45*time.Minute)))
	require.NoError(t, err)
	_, err = env.events.Create(ctx, alice, "", sampleInput("past", now.Add(-5*time.Minute)))
	require.NoError(t, err)
	_, err = env.events.Create(ctx, admin, admin.ID, sampleInput("admin's", now.Add(5*time.Minute)))
	require.NoError(t, err)

	got, err := env.events.Upcoming(ctx, alice, DefaultUpcomingMinutes)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, soon.ID, got[0].ID)

	got, err = env.events.Upcoming(ctx, alice, 60)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = env.events.Upcoming(ctx, alice, 0)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}
