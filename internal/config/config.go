package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string

	// HTTPTimeout applies to every outbound upstream call.
	HTTPTimeout time.Duration

	// Upstream base URLs; empty means each client's public default.
	GeocodingURL        string
	ReverseGeocodingURL string
	IPLookupURL         string
	ForecastURL         string

	// FavoritesDBPath is where the saved-locations list persists.
	FavoritesDBPath string

	// RefreshInterval controls how often the current location is re-fetched.
	RefreshInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.GeocodingURL = os.Getenv("GEOCODING_URL")
	cfg.ReverseGeocodingURL = os.Getenv("REVERSE_GEOCODING_URL")
	cfg.IPLookupURL = os.Getenv("IP_LOOKUP_URL")
	cfg.ForecastURL = os.Getenv("FORECAST_URL")

	cfg.FavoritesDBPath = getenvDefault("FAVORITES_DB_PATH", "weatherdash.db")

	// Refresh interval: default 15 minutes.
	intervalStr := getenvDefault("REFRESH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
