// Package search holds the filter state machine behind the search page.
//
// A Session keeps two copies of the criteria: the scratch buffer that edits
// go to, and the committed criteria the results were fetched with. Apply
// promotes scratch to committed, rewinds the cursor and fetches page zero;
// LoadMore appends the next page. Fetches run without holding the session
// lock, and a response is only accepted if no newer fetch started meanwhile.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"prop-server/models"

	log "github.com/sirupsen/logrus"
)

const PAGE_SIZE = 12

const (
	TEXT_QUERY_ARG = "q"
	SORT_QUERY_ARG = "sort"
)

// ErrStaleResponse is returned when a fetch settled after a newer one started.
// Its result has been discarded.
var ErrStaleResponse = errors.New("search response superseded by a newer request")

// Fetcher runs a repository query. listings.ListingAPI satisfies it.
type Fetcher interface {
	Search(ctx context.Context, query url.Values) (*models.ListingPage, error)
}

type State int

const (
	Idle State = iota
	Editing
	Applying
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Applying:
		return "applying"
	}
	return "idle"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "editing":
		*s = Editing
	case "applying":
		*s = Applying
	default:
		return fmt.Errorf("unknown search state %q", text)
	}
	return nil
}

// Snapshot is a consistent copy of a session's observable state.
type Snapshot struct {
	State         State                 `json:"state"`
	Criteria      models.FilterCriteria `json:"criteria"`
	Draft         models.FilterCriteria `json:"draft"`
	Query         string                `json:"q"`
	Sort          SortMode              `json:"sort"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"size"`
	Results       []models.Listing      `json:"results"`
	Loaded        int                   `json:"loaded"`
	TotalElements int                   `json:"totalElements"`
	HasMore       bool                  `json:"hasMore"`
	Error         string                `json:"error,omitempty"`
	URL           string                `json:"url"`
}

type Session struct {
	mu      sync.Mutex
	fetcher Fetcher

	state     State
	committed models.FilterCriteria
	scratch   models.FilterCriteria
	query     string
	sort      SortMode

	page    int
	pages   [][]models.Listing
	total   int
	lastErr error

	// seq identifies the most recent fetch; pending is true while it runs.
	seq     uint64
	pending bool

	urlValues   url.Values
	subscribers []func(Snapshot)
}

// NewSession starts an idle session with empty criteria.
func NewSession(fetcher Fetcher) *Session {
	return NewSessionFromQuery(url.Values{}, fetcher)
}

// NewSessionFromQuery seeds the committed and scratch criteria, the free-text
// query and the sort mode from a shared search URL. Nothing is fetched until
// Apply is called.
func NewSessionFromQuery(values url.Values, fetcher Fetcher) *Session {
	criteria := models.ParseFilterCriteria(values).Normalized()
	s := &Session{
		fetcher:   fetcher,
		state:     Idle,
		committed: criteria,
		scratch:   criteria,
		query:     values.Get(TEXT_QUERY_ARG),
		sort:      ParseSortMode(values.Get(SORT_QUERY_ARG)),
	}
	s.urlValues = s.buildURLValues()
	return s
}

// Subscribe registers fn to be called with a snapshot every time criteria are
// committed. fn runs outside the session lock.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Edit applies fn to the scratch criteria. Results keep reflecting the
// committed criteria until Apply.
func (s *Session) Edit(fn func(*models.FilterCriteria)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.scratch)
	s.state = Editing
}

// SetQuery changes the free-text filter. It narrows the loaded pages
// immediately and never triggers a fetch.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	s.state = Editing
}

func (s *Session) SetSort(mode SortMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = mode
	s.state = Editing
}

// Apply commits the scratch criteria, rewinds to page zero and fetches it.
// Subscribers see the commit before the fetch starts.
func (s *Session) Apply(ctx context.Context) error {
	s.mu.Lock()
	s.committed = s.scratch.Normalized()
	s.scratch = s.committed
	s.page = 0
	s.pages = nil
	s.total = 0
	s.lastErr = nil
	s.state = Applying
	s.urlValues = s.buildURLValues()
	seq := s.startFetchLocked()
	query := s.fetchValuesLocked(0)
	subscribers := append([]func(Snapshot){}, s.subscribers...)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}

	log.Debugf("[SearchSession] Applying %s", query.Encode())
	result, err := s.fetcher.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		log.Debugf("[SearchSession] Dropping stale response #%d", seq)
		return ErrStaleResponse
	}
	s.settleLocked()
	if err != nil {
		s.lastErr = err
		log.Printf("[SearchSession] Search failed: %v", err)
		return err
	}
	s.pages = [][]models.Listing{result.Content}
	s.total = result.TotalElements
	return nil
}

// LoadMore fetches the next page of the committed criteria and appends it.
// It returns false without fetching when everything is loaded already or a
// fetch is still pending. On failure the loaded pages are kept and the
// cursor stays on the last page that arrived.
func (s *Session) LoadMore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.pending || !s.hasMoreLocked() {
		s.mu.Unlock()
		return false, nil
	}
	s.page++
	s.state = Applying
	seq := s.startFetchLocked()
	query := s.fetchValuesLocked(s.page)
	s.mu.Unlock()

	result, err := s.fetcher.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		log.Debugf("[SearchSession] Dropping stale page response #%d", seq)
		return true, ErrStaleResponse
	}
	s.settleLocked()
	if err != nil {
		s.page--
		s.lastErr = err
		log.Printf("[SearchSession] Load more failed, keeping %d loaded pages: %v", len(s.pages), err)
		return true, err
	}
	s.lastErr = nil
	s.pages = append(s.pages, result.Content)
	s.total = result.TotalElements
	return true, nil
}

// Reset clears all criteria, the free-text query, the cursor and the loaded
// pages. A fetch still in flight is discarded when it settles. It does not
// fetch or change the URL; call Apply to propagate.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scratch = models.FilterCriteria{}.Normalized()
	s.committed = s.scratch
	s.query = ""
	s.sort = SortNewest
	s.page = 0
	s.pages = nil
	s.total = 0
	s.lastErr = nil
	s.seq++
	s.pending = false
	s.state = Editing
}

// URLValues is the shareable query string of the last committed search.
func (s *Session) URLValues() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.urlValues)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) startFetchLocked() uint64 {
	s.seq++
	s.pending = true
	return s.seq
}

func (s *Session) settleLocked() {
	s.pending = false
	if s.state == Applying {
		s.state = Idle
	}
}

func (s *Session) hasMoreLocked() bool {
	return s.total > (s.page+1)*PAGE_SIZE
}

func (s *Session) fetchValuesLocked(page int) url.Values {
	values := s.committed.ToValues()
	for k, v := range models.PageValues(page, PAGE_SIZE) {
		values[k] = v
	}
	return values
}

func (s *Session) buildURLValues() url.Values {
	values := s.committed.ToValues()
	if s.query != "" {
		values.Set(TEXT_QUERY_ARG, s.query)
	}
	if s.sort != SortNewest && s.sort != "" {
		values.Set(SORT_QUERY_ARG, string(s.sort))
	}
	return values
}

func (s *Session) snapshotLocked() Snapshot {
	results := []models.Listing{}
	loaded := 0
	for _, p := range s.pages {
		loaded += len(p)
		results = append(results, View(p, s.query, s.sort)...)
	}
	snap := Snapshot{
		State:         s.state,
		Criteria:      s.committed,
		Draft:         s.scratch,
		Query:         s.query,
		Sort:          s.sort,
		Page:          s.page,
		PageSize:      PAGE_SIZE,
		Results:       results,
		Loaded:        loaded,
		TotalElements: s.total,
		HasMore:       s.hasMoreLocked(),
		URL:           s.urlValues.Encode(),
	}
	if s.lastErr != nil {
		snap.Error = s.lastErr.Error()
	}
	return snap
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
