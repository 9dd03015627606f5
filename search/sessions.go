package search

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type sessionEntry struct {
	session  *Session
	lastUsed time.Time
}

// Sessions maps client-held ids to live search sessions.
type Sessions struct {
	mu       sync.Mutex
	fetcher  Fetcher
	ttl      time.Duration
	sessions map[string]*sessionEntry
	now      func() time.Time
}

func NewSessions(fetcher Fetcher, ttl time.Duration) *Sessions {
	return &Sessions{
		fetcher:  fetcher,
		ttl:      ttl,
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
	}
}

// Create registers a session seeded from values and returns its id. Every
// commit on the session counts as use.
func (r *Sessions) Create(values url.Values) (string, *Session) {
	id := uuid.NewString()
	s := NewSessionFromQuery(values, r.fetcher)
	s.Subscribe(func(snap Snapshot) { r.committed(id, snap) })

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &sessionEntry{session: s, lastUsed: r.now()}
	log.Debugf("[SearchSessions] Created session %s", id)
	return id, s
}

func (r *Sessions) committed(id string, snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[id]; ok {
		e.lastUsed = r.now()
	}
	log.Debugf("[SearchSessions] Session %s committed %q", id, snap.URL)
}

// Get returns the session for id and marks it as used.
func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.session, true
}

func (r *Sessions) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictIdle drops sessions unused for longer than the TTL and returns how many went.
func (r *Sessions) EvictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	evicted := 0
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// StartEvicting runs EvictIdle every interval until ctx is done.
func (r *Sessions) StartEvicting(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := r.EvictIdle(); n > 0 {
					log.Printf("[SearchSessions] Evicted %d idle sessions", n)
				}
			case <-ctx.Done():
				log.Println("[SearchSessions] Stopping eviction")
				return
			}
		}
	}()
}
