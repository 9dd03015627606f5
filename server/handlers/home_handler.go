package handlers

import (
	"bytes"
	"net/http"

	"prop-server/service"
	"prop-server/util"

	log "github.com/sirupsen/logrus"
)

type HomeHandler struct {
	homeService *services.HomeService
}

func NewHomeHandler(homeService *services.HomeService) *HomeHandler {
	return &HomeHandler{homeService: homeService}
}

// GetHome handles GET /v1/home[?excludeSold=true]
func (h *HomeHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	opts := services.ViewOptions{ExcludeSold: parseArgBool(r.URL.Query(), EXCLUDE_SOLD_QUERY_ARG)}

	feed := h.homeService.Home(r.Context(), session, opts)
	writeJSON(w, http.StatusOK, feed)
}

// GetHomeMap handles GET /v1/home/map and returns an HTML page.
func (h *HomeHandler) GetHomeMap(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	user, ranked := h.homeService.MapListings(r.Context(), session)

	var buf bytes.Buffer
	if err := util.PlotRankedListings(&buf, user, ranked); err != nil {
		log.Println("Error rendering listings map:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
