package listing

import (
	"sync"
	"time"
)

const (
	storeGCThreshold = 1000
	storeGCIdle      = 12 * time.Hour
)

type storedSession struct {
	session  *Session
	lastSeen time.Time
}

// Store keeps one listing session per browser session ID. Sessions are
// dropped on logout; abandoned ones are collected once the map grows large.
type Store struct {
	fetcher Fetcher
	perPage int

	mu       sync.Mutex
	sessions map[string]*storedSession
}

func NewStore(fetcher Fetcher, perPage int) *Store {
	return &Store{
		fetcher:  fetcher,
		perPage:  perPage,
		sessions: map[string]*storedSession{},
	}
}

// Get returns the session for id, creating one bound to token if needed.
// A session created under an older token is replaced so a re-login does not
// keep issuing calls with the stale credential.
func (st *Store) Get(id string, token string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if stored, exists := st.sessions[id]; exists {
		if stored.session.Token() == token {
			stored.lastSeen = time.Now()
			st.gcLocked()
			return stored.session
		}
		delete(st.sessions, id)
	}

	created := NewSession(st.fetcher, token, st.perPage)
	st.sessions[id] = &storedSession{session: created, lastSeen: time.Now()}
	st.gcLocked()

	return created
}

// Drop removes the session for id.
func (st *Store) Drop(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *Store) gcLocked() {
	if len(st.sessions) < storeGCThreshold {
		return
	}

	cutoff := time.Now().Add(-storeGCIdle)
	for id, stored := range st.sessions {
		if stored.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}
