package weather

import (
	"context"
	"log"
)

// Flow identifies which user action triggered a fetch. Each flow has its own
// user-facing error message.
type Flow int

const (
	FlowSearch Flow = iota
	FlowCoordinates
	FlowDefault
	FlowRefresh
)

func (f Flow) String() string {
	switch f {
	case FlowSearch:
		return "search"
	case FlowCoordinates:
		return "coordinates"
	case FlowDefault:
		return "default"
	case FlowRefresh:
		return "refresh"
	}
	return "unknown"
}

func (f Flow) message() string {
	switch f {
	case FlowSearch:
		return "Could not fetch weather data for that city. Try a different name."
	case FlowCoordinates:
		return "Could not fetch weather for your GPS location."
	case FlowDefault:
		return "Could not detect your location. Please search for a city."
	case FlowRefresh:
		return "Could not refresh weather data."
	}
	return "Could not fetch weather data."
}

// Service runs the resolve-fetch-normalize pipeline per user action and
// keeps the resulting view model in its Session.
type Service struct {
	resolver LocationResolver
	source   ForecastSource
	session  *Session
}

func NewService(resolver LocationResolver, source ForecastSource) *Service {
	return &Service{
		resolver: resolver,
		source:   source,
		session:  NewSession(),
	}
}

// Session exposes the shared current-weather state.
func (s *Service) Session() *Session {
	return s.session
}

// FetchByCity runs the search flow: forward geocode, then fetch and
// normalize the forecast for the first match.
func (s *Service) FetchByCity(ctx context.Context, city string) (WeatherData, error) {
	tok := s.session.Begin()

	loc, err := s.resolver.ResolveCity(ctx, city)
	if err != nil {
		return WeatherData{}, s.fail(tok, FlowSearch, err)
	}
	return s.fetch(ctx, tok, FlowSearch, loc)
}

// FetchByCoordinates runs the GPS flow: probe the timezone for the
// coordinates, name them via reverse geocoding, then fetch and normalize.
func (s *Service) FetchByCoordinates(ctx context.Context, lat, lon float64) (WeatherData, error) {
	tok := s.session.Begin()

	tz, err := s.source.Timezone(ctx, lat, lon)
	if err != nil {
		return WeatherData{}, s.fail(tok, FlowCoordinates, err)
	}
	place, err := s.resolver.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return WeatherData{}, s.fail(tok, FlowCoordinates, err)
	}

	loc := ResolvedLocation{
		Name:      place.Name,
		Country:   place.Country,
		Latitude:  lat,
		Longitude: lon,
		Timezone:  tz,
	}
	return s.fetch(ctx, tok, FlowCoordinates, loc)
}

// FetchDefault runs the initial-load flow from the caller's IP.
func (s *Service) FetchDefault(ctx context.Context) (WeatherData, error) {
	tok := s.session.Begin()

	loc, err := s.resolver.ResolveDefault(ctx)
	if err != nil {
		return WeatherData{}, s.fail(tok, FlowDefault, err)
	}
	return s.fetch(ctx, tok, FlowDefault, loc)
}

// Refresh re-fetches the most recently displayed location in place. It is a
// no-op until a first fetch has succeeded.
func (s *Service) Refresh(ctx context.Context) error {
	loc, ok := s.session.CurrentLocation()
	if !ok {
		return nil
	}

	tok := s.session.Begin()
	_, err := s.fetch(ctx, tok, FlowRefresh, loc)
	return err
}

func (s *Service) fetch(ctx context.Context, tok Token, flow Flow, loc ResolvedLocation) (WeatherData, error) {
	raw, err := s.source.Fetch(ctx, loc.Latitude, loc.Longitude, loc.Timezone)
	if err != nil {
		return WeatherData{}, s.fail(tok, flow, err)
	}

	data := Normalize(loc, raw)
	if !s.session.Complete(tok, loc, data) {
		log.Printf("weather: %s flow for %q superseded; result discarded", flow, loc.Name)
	}
	return data, nil
}

func (s *Service) fail(tok Token, flow Flow, err error) error {
	log.Printf("weather: %s flow failed: %v", flow, err)
	s.session.Fail(tok, flow.message())
	return &FlowError{Message: flow.message(), Err: err}
}
