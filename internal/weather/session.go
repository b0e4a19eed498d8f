package weather

import (
	"sync"

	"github.com/google/uuid"
)

// Token identifies one in-flight fetch flow.
type Token struct {
	id uuid.UUID
}

// Session owns the shared "current weather" state. Flows are not ordered
// relative to each other, so each one gets a token on Begin; a result is
// installed only if its token still matches the most recent Begin. A
// superseded flow completes its round trip but its result is discarded.
type Session struct {
	mu      sync.Mutex
	active  uuid.UUID
	loading bool
	data    *WeatherData
	loc     *ResolvedLocation
	errMsg  string
}

func NewSession() *Session {
	return &Session{}
}

// State is the snapshot the presentation layer polls.
type State struct {
	Data      *WeatherData `json:"data"`
	IsLoading bool         `json:"isLoading"`
	Error     string       `json:"error,omitempty"`
}

// Begin marks a new flow as the active one and returns its token. Any flow
// started earlier becomes stale from this point on.
func (s *Session) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = uuid.New()
	s.loading = true
	s.errMsg = ""
	return Token{id: s.active}
}

// Complete installs a successful result. Returns false when the token is
// stale, in which case the state is left untouched.
func (s *Session) Complete(tok Token, loc ResolvedLocation, data WeatherData) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.id != s.active {
		return false
	}
	s.loading = false
	s.data = &data
	s.loc = &loc
	s.errMsg = ""
	return true
}

// Fail records the flow's user-facing error message. The previous view model
// is kept; a failed fetch never retains partial data. Returns false when the
// token is stale.
func (s *Session) Fail(tok Token, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.id != s.active {
		return false
	}
	s.loading = false
	s.errMsg = message
	return true
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		IsLoading: s.loading,
		Error:     s.errMsg,
	}
	if s.data != nil {
		d := *s.data
		st.Data = &d
	}
	return st
}

// CurrentLocation returns the location of the most recently installed
// result, if there is one.
func (s *Session) CurrentLocation() (ResolvedLocation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loc == nil {
		return ResolvedLocation{}, false
	}
	return *s.loc, true
}
