package weather

import (
	"context"
)

// LocationResolver abstracts the three location strategies: forward
// geocoding by name, reverse geocoding by coordinates, and the IP-based
// default lookup.
type LocationResolver interface {
	// ResolveCity geocodes a free-text query; the first ranked result wins.
	ResolveCity(ctx context.Context, query string) (ResolvedLocation, error)

	// ReverseGeocode names a coordinate pair. It never fails on missing
	// address fields, only on transport or decode errors.
	ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error)

	// ResolveDefault determines a starting location from the caller's IP,
	// falling back to forward geocoding when the lookup is incomplete.
	ResolveDefault(ctx context.Context) (ResolvedLocation, error)
}

// ForecastSource abstracts the forecast API (e.g. Open-Meteo).
type ForecastSource interface {
	// Fetch retrieves current, hourly and daily data in a single call with
	// the resolved timezone set explicitly.
	Fetch(ctx context.Context, lat, lon float64, timezone string) (RawForecast, error)

	// Timezone probes the API for the IANA zone of a coordinate pair.
	Timezone(ctx context.Context, lat, lon float64) (string, error)
}

// FavoritesStore is the contract the persisted favorites list must satisfy.
type FavoritesStore interface {
	List() ([]string, error)
	Add(city string) ([]string, error)
	Remove(city string) ([]string, error)
}
