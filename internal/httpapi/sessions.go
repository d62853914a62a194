package httpapi

import (
	"sync"
	"time"

	"dailyvocab/internal/practice"

	"github.com/google/uuid"
)

// sessionTTL is how long an idle practice session is kept
const sessionTTL = time.Hour

type practiceEntry struct {
	mu       sync.Mutex
	userID   int64
	session  *practice.Session
	lastUsed time.Time
}

// sessionStore keeps HTTP practice sessions in memory
type sessionStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*practiceEntry
	now     func() time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		entries: make(map[uuid.UUID]*practiceEntry),
		now:     time.Now,
	}
}

// add stores a session and drops expired ones
func (s *sessionStore) add(userID int64, session *practice.Session) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		e.mu.Lock()
		expired := now.Sub(e.lastUsed) > sessionTTL
		e.mu.Unlock()
		if expired {
			delete(s.entries, id)
		}
	}

	id := uuid.New()
	s.entries[id] = &practiceEntry{userID: userID, session: session, lastUsed: now}
	return id
}

// get returns a live session and refreshes its expiry
func (s *sessionStore) get(id uuid.UUID) (*practiceEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}

	now := s.now()
	e.mu.Lock()
	defer e.mu.Unlock()
	if now.Sub(e.lastUsed) > sessionTTL {
		delete(s.entries, id)
		return nil, false
	}
	e.lastUsed = now
	return e, true
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
