package region

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// StorageKey is the single fixed key the chosen region is persisted under.
const StorageKey = "pressfix_region"

// Storage is the durable key-value store backing a Store. In the HTTP layer
// it is a session cookie; tests use an in-memory map.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MemoryStorage is a map-backed Storage.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Store is the single source of truth for the active region within one
// client session. All mutation goes through SetRegion; consumers observe
// changes through Subscribe rather than polling.
type Store struct {
	mu      sync.RWMutex
	current Region
	ready   bool
	storage Storage
	nextID  int
	subs    map[int]chan Region
}

// NewStore resolves the initial region: a previously persisted explicit
// choice wins, else the serving hostname is consulted, else Unspecified.
// No network calls happen here; the store is ready when NewStore returns.
func NewStore(storage Storage, host string) *Store {
	s := &Store{
		storage: storage,
		current: Unspecified,
		subs:    make(map[int]chan Region),
	}
	if storage != nil {
		if v, err := storage.Get(StorageKey); err == nil && v != "" {
			if r := Region(v); r.Valid() {
				s.current = r
				s.ready = true
			}
		}
	}
	if !s.ready {
		s.current = InferFromHost(host)
		s.ready = true
	}
	return s
}

// Region returns the current value and the ready flag. Resolution is
// synchronous in NewStore, so ready is always true for a constructed
// store; the flag stays in the wire contract for clients that gate
// rendering on it.
func (s *Store) Region() (Region, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.ready
}

// SetRegion updates the active region. Values outside the enumeration are
// silently ignored. The in-memory value always updates; a persistence
// failure is swallowed so a broken storage never breaks the session.
func (s *Store) SetRegion(r Region) {
	if !r.Valid() {
		return
	}
	s.mu.Lock()
	s.current = r
	s.ready = true
	for _, ch := range s.subs {
		select {
		case ch <- r:
		default:
			// Slow subscriber; it will catch up on the next change.
		}
	}
	s.mu.Unlock()

	if s.storage != nil {
		if err := s.storage.Set(StorageKey, string(r)); err != nil {
			logrus.WithError(err).Warn("region: persisting choice failed")
		}
	}
}

// Subscribe registers an observer. Every SetRegion delivers the new value
// on the returned channel. The cancel func must be called when done.
func (s *Store) Subscribe() (<-chan Region, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan Region, 8)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
}

// Registry maps session ids to their Store so every tab of one browser
// session observes the same value.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// Get returns the session's store, creating it on first use.
func (r *Registry) Get(sessionID, host string, storage Storage) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[sessionID]; ok {
		return s
	}
	s := NewStore(storage, host)
	r.stores[sessionID] = s
	return s
}
