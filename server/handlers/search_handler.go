package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"prop-server/models"
	"prop-server/search"

	log "github.com/sirupsen/logrus"
)

// searchEdit is the PATCH body for a search session. Criteria keys use the
// query parameter names; an empty value clears that field.
type searchEdit struct {
	Criteria map[string]string `json:"criteria"`
	Query    *string           `json:"q"`
	Sort     *string           `json:"sort"`
}

type sessionResponse struct {
	ID string `json:"id"`
	search.Snapshot
}

type SearchHandler struct {
	sessions *search.Sessions
	fetcher  search.Fetcher
}

func NewSearchHandler(sessions *search.Sessions, fetcher search.Fetcher) *SearchHandler {
	return &SearchHandler{sessions: sessions, fetcher: fetcher}
}

// Search handles GET /v1/search?<shared search url query>. It runs one
// search without keeping a session.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	s := search.NewSessionFromQuery(r.URL.Query(), h.fetcher)
	if err := s.Apply(r.Context()); err != nil {
		log.Println("Error searching listings:", err)
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// CreateSession handles POST /v1/search/sessions?<shared search url query>
// and fetches the first page.
func (h *SearchHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, s := h.sessions.Create(r.URL.Query())
	if err := s.Apply(r.Context()); err != nil {
		log.Printf("Error applying search session %s: %v", id, err)
	}
	writeJSON(w, http.StatusCreated, sessionResponse{ID: id, Snapshot: s.Snapshot()})
}

// GetSession handles GET /v1/search/sessions/{sid}
func (h *SearchHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: s.Snapshot()})
}

// EditSession handles PATCH /v1/search/sessions/{sid}. Criteria edits stay
// in the draft until apply; q and sort take effect immediately.
func (h *SearchHandler) EditSession(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var edit searchEdit
	if err := decodeJSON(r, &edit); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(edit.Criteria) > 0 {
		s.Edit(func(c *models.FilterCriteria) {
			vals := c.ToValues()
			for k, v := range edit.Criteria {
				if v == "" {
					vals.Del(k)
				} else {
					vals.Set(k, v)
				}
			}
			*c = models.ParseFilterCriteria(vals)
		})
	}
	if edit.Query != nil {
		s.SetQuery(*edit.Query)
	}
	if edit.Sort != nil {
		s.SetSort(search.ParseSortMode(*edit.Sort))
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: s.Snapshot()})
}

// ApplySession handles POST /v1/search/sessions/{sid}/apply
func (h *SearchHandler) ApplySession(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := s.Apply(r.Context()); err != nil && !errors.Is(err, search.ErrStaleResponse) {
		log.Printf("Error applying search session %s: %v", id, err)
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: s.Snapshot()})
}

// LoadMore handles POST /v1/search/sessions/{sid}/more
func (h *SearchHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	fetched, err := s.LoadMore(r.Context())
	if err != nil && !errors.Is(err, search.ErrStaleResponse) {
		log.Printf("Error loading more for search session %s: %v", id, err)
	}
	writeJSON(w, http.StatusOK, struct {
		Fetched bool `json:"fetched"`
		sessionResponse
	}{fetched, sessionResponse{ID: id, Snapshot: s.Snapshot()}})
}

// ResetSession handles POST /v1/search/sessions/{sid}/reset
func (h *SearchHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	s.Reset()
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: s.Snapshot()})
}

// DeleteSession handles DELETE /v1/search/sessions/{sid}
func (h *SearchHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(mux.Vars(r)["sid"])
	w.WriteHeader(http.StatusNoContent)
}

func (h *SearchHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *search.Session, bool) {
	id := mux.Vars(r)["sid"]
	s, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Search session not found")
		return id, nil, false
	}
	return id, s, true
}
