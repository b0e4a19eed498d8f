package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weatherdash/internal/weather"
)

func testHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

func geocodeStub(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		name := r.URL.Query().Get("name")
		if r.URL.Query().Get("count") != "1" {
			t.Errorf("expected count=1, got %q", r.URL.Query().Get("count"))
		}
		if name == "Nowhereville" {
			fmt.Fprint(w, `{"results":[]}`)
			return
		}
		fmt.Fprintf(w, `{"results":[{"name":%q,"country":"France","latitude":48.85,"longitude":2.35,"timezone":"Europe/Paris"}]}`, name)
	}))
}

func TestResolveCity(t *testing.T) {
	srv := geocodeStub(t, nil)
	defer srv.Close()

	r := NewResolver(testHTTPClient(), srv.URL, "", "")
	loc, err := r.ResolveCity(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Name != "Paris" || loc.Country != "France" {
		t.Errorf("unexpected labels: %+v", loc)
	}
	if loc.Latitude != 48.85 || loc.Longitude != 2.35 {
		t.Errorf("unexpected coordinates: %+v", loc)
	}
	if loc.Timezone != "Europe/Paris" {
		t.Errorf("unexpected timezone %q", loc.Timezone)
	}
}

func TestResolveCityNotFound(t *testing.T) {
	srv := geocodeStub(t, nil)
	defer srv.Close()

	r := NewResolver(testHTTPClient(), srv.URL, "", "")
	_, err := r.ResolveCity(context.Background(), "Nowhereville")
	if !errors.Is(err, weather.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveCityTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewResolver(testHTTPClient(), srv.URL, "", "")
	if _, err := r.ResolveCity(context.Background(), "Paris"); err == nil {
		t.Fatal("expected an error on 500")
	}
}

func TestReverseGeocodeNameChain(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		wantName    string
		wantCountry string
	}{
		{
			"city wins",
			`{"name":"somewhere","address":{"city":"Lyon","town":"T","village":"V","country":"France"}}`,
			"Lyon", "France",
		},
		{
			"town next",
			`{"address":{"town":"Giverny","country":"France"}}`,
			"Giverny", "France",
		},
		{
			"village next",
			`{"address":{"village":"Oia","country":"Greece"}}`,
			"Oia", "Greece",
		},
		{
			"generic place name",
			`{"name":"Some Rock","address":{}}`,
			"Some Rock", "",
		},
		{
			"nothing at all",
			`{}`,
			"Unknown", "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			r := NewResolver(testHTTPClient(), "", srv.URL, "")
			place, err := r.ReverseGeocode(context.Background(), 48.85, 2.35)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if place.Name != tc.wantName {
				t.Errorf("name %q, want %q", place.Name, tc.wantName)
			}
			if place.Country != tc.wantCountry {
				t.Errorf("country %q, want %q", place.Country, tc.wantCountry)
			}
		})
	}
}

func TestResolveDefaultDirect(t *testing.T) {
	ip := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"city":"Berlin","country_name":"Germany","latitude":52.52,"longitude":13.41,"timezone":"Europe/Berlin"}`)
	}))
	defer ip.Close()

	var geocodeHits int
	geo := geocodeStub(t, &geocodeHits)
	defer geo.Close()

	r := NewResolver(testHTTPClient(), geo.URL, "", ip.URL)
	loc, err := r.ResolveDefault(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Name != "Berlin" || loc.Timezone != "Europe/Berlin" {
		t.Errorf("unexpected location: %+v", loc)
	}
	if geocodeHits != 0 {
		t.Errorf("complete IP data must not hit geocoding, got %d hits", geocodeHits)
	}
}

func TestResolveDefaultFallsBackWithoutTimezone(t *testing.T) {
	ip := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Coordinates present but no timezone.
		fmt.Fprint(w, `{"city":"Berlin","country_name":"Germany","latitude":52.52,"longitude":13.41}`)
	}))
	defer ip.Close()

	var geocodeHits int
	geo := geocodeStub(t, &geocodeHits)
	defer geo.Close()

	r := NewResolver(testHTTPClient(), geo.URL, "", ip.URL)
	loc, err := r.ResolveDefault(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geocodeHits != 1 {
		t.Fatalf("expected exactly one geocoding fallback call, got %d", geocodeHits)
	}
	if loc.Name != "Berlin" {
		t.Errorf("fallback should geocode the reported city, got %q", loc.Name)
	}
	if loc.Timezone == "" {
		t.Error("every successful path must yield a timezone")
	}
}

func TestResolveDefaultLookupFailure(t *testing.T) {
	ip := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ip.Close()

	var lastQuery string
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.Query().Get("name")
		fmt.Fprint(w, `{"results":[{"name":"London","country":"United Kingdom","latitude":51.5,"longitude":-0.12,"timezone":"Europe/London"}]}`)
	}))
	defer geo.Close()

	r := NewResolver(testHTTPClient(), geo.URL, "", ip.URL)
	loc, err := r.ResolveDefault(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lastQuery != "London" {
		t.Errorf("expected default city fallback, geocoded %q", lastQuery)
	}
	if loc.Timezone != "Europe/London" {
		t.Errorf("unexpected timezone %q", loc.Timezone)
	}
}

func TestResolveDefaultBothFail(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	r := NewResolver(testHTTPClient(), failing.URL, "", failing.URL)
	_, err := r.ResolveDefault(context.Background())
	if !errors.Is(err, weather.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
