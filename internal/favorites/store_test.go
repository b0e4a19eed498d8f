package favorites

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "favorites.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add("Paris"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	cities, err := s.Add("Paris")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(cities) != 1 {
		t.Fatalf("adding the same city twice should keep one entry, got %v", cities)
	}
}

func TestAddEvictsOldestPastBound(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 11; i++ {
		if _, err := s.Add(fmt.Sprintf("City %02d", i)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	cities, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(cities) != 10 {
		t.Fatalf("expected 10 entries after eviction, got %d", len(cities))
	}
	if cities[0] != "City 01" {
		t.Errorf("oldest entry should be evicted first, list starts with %q", cities[0])
	}
	if cities[9] != "City 10" {
		t.Errorf("insertion order not preserved, list ends with %q", cities[9])
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add("Paris"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	cities, err := s.Remove("Atlantis")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !reflect.DeepEqual(cities, []string{"Paris"}) {
		t.Fatalf("removing an absent city changed the list: %v", cities)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	for _, c := range []string{"Paris", "Lyon", "Nice"} {
		if _, err := s.Add(c); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	cities, err := s.Remove("Lyon")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !reflect.DeepEqual(cities, []string{"Paris", "Nice"}) {
		t.Fatalf("unexpected list after removal: %v", cities)
	}
}

func TestCorruptPayloadReadsAsEmpty(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add("Paris"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := s.db.Exec(`INSERT OR REPLACE INTO app_state(key, value) VALUES(?, ?)`, stateKey, "{not json"); err != nil {
		t.Fatalf("failed to corrupt state: %v", err)
	}

	cities, err := s.List()
	if err != nil {
		t.Fatalf("List must recover from corruption, got %v", err)
	}
	if len(cities) != 0 {
		t.Fatalf("corrupt payload should read as empty, got %v", cities)
	}

	// The next mutation rewrites a clean list.
	cities, err = s.Add("Lyon")
	if err != nil {
		t.Fatalf("Add after corruption failed: %v", err)
	}
	if !reflect.DeepEqual(cities, []string{"Lyon"}) {
		t.Fatalf("unexpected list after recovery: %v", cities)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if _, err := s.Add("Paris"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	cities, err := reopened.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !reflect.DeepEqual(cities, []string{"Paris"}) {
		t.Fatalf("list did not survive reopen: %v", cities)
	}
}
