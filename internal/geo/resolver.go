// Package geo implements the three location resolution strategies: forward
// geocoding by city name, reverse geocoding by coordinates, and the IP-based
// default lookup.
package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"weatherdash/internal/upstream"
	"weatherdash/internal/weather"
)

const (
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	defaultReverseURL  = "https://nominatim.openstreetmap.org/reverse"
	defaultIPLookupURL = "https://ipapi.co/json/"

	// Used when the IP lookup cannot name a city at all.
	defaultCity = "London"
)

// Resolver talks to the geocoding, reverse-geocoding and IP-geolocation
// upstreams. Each strategy fails independently.
type Resolver struct {
	geocodeURL  string
	reverseURL  string
	ipLookupURL string

	geocode  *upstream.Client
	reverse  *upstream.Client
	ipLookup *upstream.Client
}

// Ensure Resolver implements weather.LocationResolver
var _ weather.LocationResolver = (*Resolver)(nil)

// NewResolver creates a Resolver. Empty base URLs fall back to the public
// endpoints; tests point them at local stubs.
func NewResolver(client *http.Client, geocodeURL, reverseURL, ipLookupURL string) *Resolver {
	if geocodeURL == "" {
		geocodeURL = defaultGeocodeURL
	}
	if reverseURL == "" {
		reverseURL = defaultReverseURL
	}
	if ipLookupURL == "" {
		ipLookupURL = defaultIPLookupURL
	}

	return &Resolver{
		geocodeURL:  geocodeURL,
		reverseURL:  reverseURL,
		ipLookupURL: ipLookupURL,
		geocode:     upstream.New("geocode", client),
		reverse:     upstream.New("reverse-geocode", client),
		ipLookup:    upstream.New("ip-lookup", client),
	}
}

// ResolveCity forward-geocodes a free-text query and takes the first ranked
// result. No fuzzy correction, no disambiguation: first match wins.
func (r *Resolver) ResolveCity(ctx context.Context, query string) (weather.ResolvedLocation, error) {
	values := url.Values{}
	values.Set("name", query)
	values.Set("count", "1")
	values.Set("language", "en")
	values.Set("format", "json")

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Timezone  string  `json:"timezone"`
		} `json:"results"`
	}

	u := fmt.Sprintf("%s?%s", r.geocodeURL, values.Encode())
	if err := r.geocode.GetJSON(ctx, u, &payload); err != nil {
		return weather.ResolvedLocation{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	if len(payload.Results) == 0 {
		return weather.ResolvedLocation{}, fmt.Errorf("geocode %q: %w", query, weather.ErrNotFound)
	}

	first := payload.Results[0]
	tz := first.Timezone
	if tz == "" {
		tz = "UTC"
	}

	return weather.ResolvedLocation{
		Name:      first.Name,
		Country:   first.Country,
		Latitude:  first.Latitude,
		Longitude: first.Longitude,
		Timezone:  tz,
	}, nil
}

// ReverseGeocode names a coordinate pair. The name falls through a priority
// chain (city, town, village, generic display name, "Unknown") and the
// country defaults to empty, so missing address fields never fail the call.
func (r *Resolver) ReverseGeocode(ctx context.Context, lat, lon float64) (weather.Place, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("format", "json")

	var payload struct {
		Name    string `json:"name"`
		Address struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			Country string `json:"country"`
		} `json:"address"`
	}

	u := fmt.Sprintf("%s?%s", r.reverseURL, values.Encode())
	if err := r.reverse.GetJSON(ctx, u, &payload); err != nil {
		return weather.Place{}, fmt.Errorf("reverse geocode: %w", err)
	}

	name := firstNonEmpty(
		payload.Address.City,
		payload.Address.Town,
		payload.Address.Village,
		payload.Name,
	)
	if name == "" {
		name = "Unknown"
	}

	return weather.Place{
		Name:    name,
		Country: payload.Address.Country,
	}, nil
}

// ResolveDefault determines a starting location from the caller's IP. When
// the lookup returns usable latitude, longitude and timezone they are used
// directly; otherwise the reported (or default) city name is forward
// geocoded so that every successful path yields a timezone.
func (r *Resolver) ResolveDefault(ctx context.Context) (weather.ResolvedLocation, error) {
	var payload struct {
		City        string   `json:"city"`
		CountryName string   `json:"country_name"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Timezone    string   `json:"timezone"`
	}

	ipErr := r.ipLookup.GetJSON(ctx, r.ipLookupURL, &payload)
	if ipErr == nil {
		name := payload.City
		if name == "" {
			name = defaultCity
		}
		if payload.Latitude != nil && payload.Longitude != nil && payload.Timezone != "" {
			return weather.ResolvedLocation{
				Name:      name,
				Country:   payload.CountryName,
				Latitude:  *payload.Latitude,
				Longitude: *payload.Longitude,
				Timezone:  payload.Timezone,
			}, nil
		}

		// Incomplete IP data; geocode the reported city instead.
		loc, err := r.ResolveCity(ctx, name)
		if err != nil {
			return weather.ResolvedLocation{}, fmt.Errorf("%w: ip lookup incomplete and fallback failed: %v", weather.ErrUnavailable, err)
		}
		return loc, nil
	}

	// The lookup itself failed; the default city is all we have left.
	loc, err := r.ResolveCity(ctx, defaultCity)
	if err != nil {
		return weather.ResolvedLocation{}, fmt.Errorf("%w: ip lookup failed (%v) and fallback failed: %v", weather.ErrUnavailable, ipErr, err)
	}
	return loc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
