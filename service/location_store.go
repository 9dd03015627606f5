package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"prop-server/api/geolocation"
	"prop-server/config"
	"prop-server/models"

	log "github.com/sirupsen/logrus"
)

// LocationDAO persists the last known coordinate per client session.
type LocationDAO interface {
	GetLocation(session string) (*models.Coordinate, error)
	SetLocation(session string, c models.Coordinate) error
}

// LocationStore holds at most one cached coordinate for a client session.
type LocationStore struct {
	session string
	locator geolocation.Locator
	dao     LocationDAO
	timeout time.Duration

	mu     sync.Mutex
	cached *models.Coordinate
	loaded bool

	refreshes singleflight.Group
}

func NewLocationStore(session string, locator geolocation.Locator, dao LocationDAO, timeout time.Duration) *LocationStore {
	if timeout <= 0 {
		timeout = geolocation.DEFAULT_TIMEOUT
	}
	return &LocationStore{
		session: session,
		locator: locator,
		dao:     dao,
		timeout: timeout,
	}
}

// GetCached returns the last stored coordinate, or nil if none was ever captured.
// The persisted value is read once, on first use; read failures count as "none".
func (s *LocationStore) GetCached() *models.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loaded = true
		if s.cached == nil && s.dao != nil {
			c, err := s.dao.GetLocation(s.session)
			if err != nil {
				log.Warnf("[LocationStore] Could not load persisted location for %s: %v", s.session, err)
			}
			s.cached = c
		}
	}
	if s.cached == nil {
		return nil
	}
	c := *s.cached
	return &c
}

// Refresh takes a fresh reading. Callers that arrive while a reading is in
// progress wait for and share its outcome. On failure the cached coordinate
// is left as it was and a *geolocation.LocationError is returned.
func (s *LocationStore) Refresh(ctx context.Context) (models.Coordinate, error) {
	ch := s.refreshes.DoChan("refresh", func() (interface{}, error) {
		// The reading outlives any single caller's cancellation.
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.read(readCtx)
	})

	select {
	case res := <-ch:
		if res.Shared {
			log.Debugf("[LocationStore] Shared in-flight refresh for %s", s.session)
		}
		if res.Err != nil {
			return models.Coordinate{}, res.Err
		}
		return res.Val.(models.Coordinate), nil
	case <-ctx.Done():
		return models.Coordinate{}, &geolocation.LocationError{Reason: geolocation.Timeout, Err: ctx.Err()}
	}
}

func (s *LocationStore) read(ctx context.Context) (models.Coordinate, error) {
	c, err := s.locator.Locate(ctx)
	if err != nil {
		var le *geolocation.LocationError
		switch {
		case errors.As(err, &le):
		case errors.Is(err, context.DeadlineExceeded):
			err = &geolocation.LocationError{Reason: geolocation.Timeout, Err: err}
		default:
			err = &geolocation.LocationError{Reason: geolocation.Unavailable, Err: err}
		}
		log.Printf("[LocationStore] Refresh failed for %s: %v", s.session, err)
		return models.Coordinate{}, err
	}
	s.store(c)
	return c, nil
}

// Set stores a coordinate reported by the client itself.
func (s *LocationStore) Set(c models.Coordinate) error {
	if !c.Valid() {
		return fmt.Errorf("coordinate out of range: %s", c)
	}
	s.store(c)
	return nil
}

func (s *LocationStore) store(c models.Coordinate) {
	s.mu.Lock()
	s.cached = &c
	s.loaded = true
	s.mu.Unlock()

	if s.dao == nil {
		return
	}
	if err := s.dao.SetLocation(s.session, c); err != nil {
		log.Warnf("[LocationStore] Could not persist location for %s: %v", s.session, err)
	}
}

type locationEntry struct {
	store    *LocationStore
	lastUsed time.Time
}

// LocationStores owns one LocationStore per client session. Stores unused for
// longer than the idle TTL are dropped; a later request for the same session
// gets a fresh store that reloads the persisted coordinate.
type LocationStores struct {
	mu         sync.Mutex
	stores     map[string]*locationEntry
	newLocator func() geolocation.Locator
	dao        LocationDAO
	timeout    time.Duration
	ttl        time.Duration
	now        func() time.Time
}

// NewLocationStores creates a registry. newLocator is called once per session
// so each session keeps its own platform-side reading cache.
func NewLocationStores(newLocator func() geolocation.Locator, dao LocationDAO, timeout time.Duration) *LocationStores {
	return &LocationStores{
		stores:     make(map[string]*locationEntry),
		newLocator: newLocator,
		dao:        dao,
		timeout:    timeout,
		ttl:        config.LOCATION_STORE_IDLE_TTL,
		now:        time.Now,
	}
}

// For returns the store of session, creating it on first use, and marks it as used.
func (r *LocationStores) For(session string) *LocationStore {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.stores[session]
	if !ok {
		e = &locationEntry{store: NewLocationStore(session, r.newLocator(), r.dao, r.timeout)}
		r.stores[session] = e
	}
	e.lastUsed = r.now()
	return e.store
}

func (r *LocationStores) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// EvictIdle drops stores unused for longer than the TTL and returns how many went.
func (r *LocationStores) EvictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	evicted := 0
	for session, e := range r.stores {
		if e.lastUsed.Before(cutoff) {
			delete(r.stores, session)
			evicted++
		}
	}
	return evicted
}

// StartEvicting runs EvictIdle every interval until ctx is done.
func (r *LocationStores) StartEvicting(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := r.EvictIdle(); n > 0 {
					log.Printf("[LocationStores] Evicted %d idle location stores", n)
				}
			case <-ctx.Done():
				log.Println("[LocationStores] Stopping eviction")
				return
			}
		}
	}()
}
