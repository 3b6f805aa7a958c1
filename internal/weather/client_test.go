package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcraske/simpleCalendar/internal/apperr"
)

func TestEmoji(t *testing.T) {
	assert.Equal(t, "☀️", Emoji("Clear"))
	assert.Equal(t, "🌁", Emoji("Haze"))
	assert.Equal(t, UnknownCondition, Emoji("Meteor"))
}

func TestCurrent_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Vancouver", r.URL.Query().Get("q"))
		assert.Equal(t, "key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Vancouver","main":{"temp":11.5},"weather":[{"main":"Rain","description":"light rain"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", time.Second)
	got, err := c.Current(context.Background(), "Vancouver")
	require.NoError(t, err)
	assert.Equal(t, Report{City: "Vancouver", Temperature: 11.5, Description: "light rain", Emoji: "🌧️"}, got)
}

func TestCurrent_Failures(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer notFound.Close()

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer garbage.Close()

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"X","main":{"temp":1},"weather":[]}`))
	}))
	defer empty.Close()

	down := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	down.Close()

	tests := []struct {
		name   string
		client *Client
	}{
		{name: "upstream 404", client: NewClient(notFound.URL, "key", time.Second)},
		{name: "invalid body", client: NewClient(garbage.URL, "key", time.Second)},
		{name: "no conditions", client: NewClient(empty.URL, "key", time.Second)},
		{name: "connection refused", client: NewClient(down.URL, "key", time.Second)},
		{name: "missing key", client: NewClient(notFound.URL, "", time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.client.Current(context.Background(), "Nowhere")
			assert.ErrorIs(t, err, apperr.ErrUpstreamUnavailable)
		})
	}
}
