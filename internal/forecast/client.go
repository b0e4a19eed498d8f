// Package forecast implements the Open-Meteo forecast client.
package forecast

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"weatherdash/internal/upstream"
	"weatherdash/internal/weather"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// The three field groups requested in a single call.
const (
	currentFields = "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,cloud_cover,is_day"
	hourlyFields  = "temperature_2m,weather_code,is_day"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_probability_max"
)

// Client fetches raw forecast data. One attempt per call; the caller decides
// whether anything is retried.
type Client struct {
	baseURL string
	api     *upstream.Client
}

// Ensure Client implements weather.ForecastSource
var _ weather.ForecastSource = (*Client)(nil)

// NewClient creates a forecast client. An empty baseURL falls back to the
// public endpoint; tests point it at a local stub.
func NewClient(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		api:     upstream.New("forecast", client),
	}
}

// Fetch requests current, hourly and daily data in one call. The resolved
// timezone is passed through explicitly, never "auto", so returned local
// timestamps match the resolved location rather than the server's guess.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, timezone string) (weather.RawForecast, error) {
	if timezone == "" {
		timezone = "UTC"
	}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current", currentFields)
	values.Set("hourly", hourlyFields)
	values.Set("daily", dailyFields)
	values.Set("timezone", timezone)

	var payload weather.RawForecast

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	if err := c.api.GetJSON(ctx, u, &payload); err != nil {
		return weather.RawForecast{}, fmt.Errorf("fetch forecast: %w", err)
	}
	return payload, nil
}

// Timezone probes the forecast API with timezone=auto to learn the IANA zone
// for a coordinate pair. Falls back to "UTC" when the response omits it.
func (c *Client) Timezone(ctx context.Context, lat, lon float64) (string, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current", "temperature_2m")
	values.Set("timezone", "auto")

	var payload struct {
		Timezone string `json:"timezone"`
	}

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	if err := c.api.GetJSON(ctx, u, &payload); err != nil {
		return "", fmt.Errorf("timezone lookup: %w", err)
	}
	if payload.Timezone == "" {
		return "UTC", nil
	}
	return payload.Timezone, nil
}
