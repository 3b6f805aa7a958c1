// Package weather looks up current conditions for a city from an
// OpenWeather-compatible API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wcraske/simpleCalendar/internal/apperr"
)

const UnknownCondition = "unknown weather condition"

var emojis = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Drizzle":      "🌦️",
	"Thunderstorm": "⛈️",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Fog":          "🌁",
	"Smoke":        "💨",
	"Haze":         "🌁",
	"Dust":         "🌪️",
	"Sand":         "🏜️",
	"Ash":          "🌋",
	"Squall":       "🌬️",
	"Tornado":      "🌪️",
}

// Emoji maps an upstream condition group ("Rain", "Clear", ...) to a glyph.
func Emoji(condition string) string {
	if e, ok := emojis[condition]; ok {
		return e
	}
	return UnknownCondition
}

type Report struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Emoji       string  `json:"emoji"`
}

type upstreamResp struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Message string `json:"message"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperr.ErrUpstreamUnavailable, fmt.Sprintf(format, args...))
}

// Current makes one call to the provider. Every failure, including a non-200
// answer, is reported as apperr.ErrUpstreamUnavailable.
func (c *Client) Current(ctx context.Context, city string) (Report, error) {
	if c.apiKey == "" {
		return Report{}, unavailable("weather api key not configured")
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Report{}, unavailable("build request: %v", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Report{}, unavailable("weather unavailable: %v", err)
	}
	defer resp.Body.Close()

	var body upstreamResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return Report{}, unavailable("decode response (status %d): %v", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := body.Message
		if msg == "" {
			msg = "failed to fetch weather data"
		}
		return Report{}, unavailable("status %d: %s", resp.StatusCode, msg)
	}
	if len(body.Weather) == 0 {
		return Report{}, unavailable("response has no weather conditions")
	}

	return Report{
		City:        body.Name,
		Temperature: body.Main.Temp,
		Description: body.Weather[0].Description,
		Emoji:       Emoji(body.Weather[0].Main),
	}, nil
}
