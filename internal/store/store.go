package store

import (
	"sync"
	"time"

	"cv-generator/internal/model"
)

// DefaultSessionID is the session key used when a caller supplies none.
// Every caller that relies on it shares (and overwrites) the same record;
// callers that need isolation should pass their own key.
const DefaultSessionID = "default"

// Entry is a stored CV record plus the time it was written.
type Entry struct {
	CV       *model.CVRecord
	StoredAt time.Time
}

// SessionStore maps session identifiers to CV records. Entries are replaced
// wholesale on Put (last write wins) and never expire.
type SessionStore interface {
	Put(sessionID string, cv *model.CVRecord)
	Get(sessionID string) (Entry, bool)
}

// MemoryStore is an in-memory SessionStore. Not persistent: contents are
// lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Entry)}
}

func (s *MemoryStore) Put(sessionID string, cv *model.CVRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = Entry{CV: cv, StoredAt: time.Now()}
}

func (s *MemoryStore) Get(sessionID string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	return entry, ok
}
