// Package favorites persists the ordered list of saved city names.
package favorites

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

const (
	// Capacity bound; the oldest entry is evicted first on overflow.
	maxSaved = 10

	stateKey = "saved_locations"
)

// Store keeps the list in a small sqlite key-value table as one JSON-encoded
// entry. A corrupt or missing value reads as an empty list, never an error.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore opens (or creates) the database at path and applies the minimal
// schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("favorites: could not set WAL mode:", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS app_state (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// List returns the saved city names in insertion order.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add appends city unless it is already present, evicting from the front
// when the list grows past its bound. Returns the resulting list.
func (s *Store) Add(city string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cities, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, c := range cities {
		if c == city {
			return cities, nil
		}
	}

	cities = append(cities, city)
	if len(cities) > maxSaved {
		cities = cities[len(cities)-maxSaved:]
	}

	if err := s.save(cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// Remove deletes all occurrences of city and returns the resulting list.
// Removing a city that is not present is a no-op.
func (s *Store) Remove(city string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cities, err := s.load()
	if err != nil {
		return nil, err
	}

	kept := cities[:0]
	for _, c := range cities {
		if c != city {
			kept = append(kept, c)
		}
	}

	if err := s.save(kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// load reads the persisted list. A corrupt payload is recovered locally as
// an empty list; the next mutation rewrites it.
func (s *Store) load() ([]string, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, stateKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cities []string
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		log.Printf("favorites: corrupt saved list, treating as empty: %v", err)
		return []string{}, nil
	}
	return cities, nil
}

func (s *Store) save(cities []string) error {
	raw, err := json.Marshal(cities)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO app_state(key, value) VALUES(?, ?)`, stateKey, string(raw))
	return err
}
