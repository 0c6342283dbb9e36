package collection

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/usestring/schemamap/internal/cache"
)

// Info summarizes a stored collection.
type Info struct {
	Name      string    `json:"name"`
	Documents int       `json:"documents"`
	Paths     int       `json:"paths"`
	Updated   time.Time `json:"updated"`
}

// Store holds collections by name, dropping the least recently used one when
// full.
type Store struct {
	mu    sync.Mutex // makes GetOrCreate and Delete atomic
	cache *cache.LRU[*Collection]

	// set while Delete removes a collection, so the eviction hook can tell
	// an explicit delete from a capacity eviction
	deleting string
}

// NewStore creates a store holding at most maxCollections collections.
func NewStore(maxCollections int) (*Store, error) {
	s := &Store{}
	c, err := cache.NewLRU(maxCollections, s.onEvict)
	if err != nil {
		return nil, err
	}
	s.cache = c
	return s, nil
}

// onEvict runs with s.mu held, from GetOrCreate or Delete.
func (s *Store) onEvict(name string, col *Collection) {
	if name == s.deleting {
		slog.Debug("collection deleted",
			slog.String("collection", name),
			slog.Int("documents", col.Documents()),
		)
		return
	}
	slog.Info("collection evicted",
		slog.String("collection", name),
		slog.Int("documents", col.Documents()),
		slog.String("reason", "capacity"),
	)
}

// GetOrCreate returns the named collection, creating it if needed.
// The second result reports whether it was created.
func (s *Store) GetOrCreate(name string) (*Collection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if col, ok := s.cache.Get(name); ok {
		return col, false
	}
	col := New(name)
	s.cache.Put(name, col)
	slog.Debug("collection created", slog.String("collection", name))
	return col, true
}

// Get returns the named collection.
func (s *Store) Get(name string) (*Collection, bool) {
	return s.cache.Get(name)
}

// Delete removes the named collection, reporting whether it existed.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleting = name
	defer func() { s.deleting = "" }()
	return s.cache.Remove(name)
}

// List returns all collections sorted by name.
func (s *Store) List() []Info {
	names := s.cache.Names()
	sort.Strings(names)

	infos := make([]Info, 0, len(names))
	for _, name := range names {
		col, ok := s.cache.Peek(name)
		if !ok {
			continue
		}
		snap := col.Snapshot(0)
		infos = append(infos, Info{
			Name:      name,
			Documents: snap.Documents,
			Paths:     len(snap.Fields),
			Updated:   snap.Updated,
		})
	}
	return infos
}

// Len returns the number of stored collections.
func (s *Store) Len() int {
	return s.cache.Len()
}
