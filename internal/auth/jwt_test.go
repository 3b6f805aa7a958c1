package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestManager(t *testing.T, clock *fakeClock) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecret, time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	return tm
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	require.Error(t, err)
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm, err := NewTokenManager(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, tm.TTL())
}

func TestIssue_SetsSubjectAndExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	tm := newTestManager(t, clock)

	tok, exp, err := tm.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.True(t, exp.Equal(clock.t.Add(time.Hour)))

	claims, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, 0)
}

func TestParse_ExpiryBoundary(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	tm := newTestManager(t, clock)

	tok, _, err := tm.Issue("alice")
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour - time.Second)
	_, err = tm.Parse(tok)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Second)
	_, err = tm.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_Rejects(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tm := newTestManager(t, clock)
	good, _, err := tm.Issue("bob")
	require.NoError(t, err)

	other, err := NewTokenManager("other-secret", time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	foreign, _, err := other.Issue("bob")
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "bob"}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": clock.t.Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "bob",
		"exp": clock.t.Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: foreign},
		{name: "missing exp", token: noExp},
		{name: "missing sub", token: noSub},
		{name: "other algorithm", token: hs512},
		{name: "tampered payload", token: tampered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParse_Issuer(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	a, err := NewTokenManager(testSecret, time.Hour, WithClock(clock.Now), WithIssuer("calendar"))
	require.NoError(t, err)
	b, err := NewTokenManager(testSecret, time.Hour, WithClock(clock.Now), WithIssuer("someone-else"))
	require.NoError(t, err)

	tok, _, err := b.Issue("carol")
	require.NoError(t, err)
	_, err = a.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
