package handlers

import (
	"net/http"

	"prop-server/api/geocoding"
	"prop-server/api/geolocation"
	"prop-server/models"
	"prop-server/service"

	log "github.com/sirupsen/logrus"
)

type locationResponse struct {
	Location *models.Coordinate `json:"location"`
	Place    *models.Place      `json:"place,omitempty"`
	Reason   string             `json:"reason,omitempty"`
	Error    string             `json:"error,omitempty"`
}

type LocationHandler struct {
	stores   *services.LocationStores
	geocoder geocoding.ReverseGeocoder
}

func NewLocationHandler(stores *services.LocationStores, geocoder geocoding.ReverseGeocoder) *LocationHandler {
	return &LocationHandler{stores: stores, geocoder: geocoder}
}

// GetLocation handles GET /v1/location
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	c := h.stores.For(session).GetCached()
	resp := locationResponse{Location: c}
	if c != nil && h.geocoder != nil {
		place := h.geocoder.ReverseGeocode(r.Context(), *c)
		resp.Place = &place
	}
	writeJSON(w, http.StatusOK, resp)
}

// RefreshLocation handles POST /v1/location/refresh. A failed reading keeps
// the cached coordinate and reports why.
func (h *LocationHandler) RefreshLocation(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	store := h.stores.For(session)
	ctx := geolocation.WithClientIP(r.Context(), clientIP(r))

	c, err := store.Refresh(ctx)
	if err != nil {
		reason := geolocation.ReasonOf(err)
		log.Printf("Location refresh failed for %s: %v", session, err)
		writeJSON(w, statusForReason(reason), locationResponse{
			Location: store.GetCached(),
			Reason:   string(reason),
			Error:    err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, locationResponse{Location: &c})
}

// SetLocation handles PUT /v1/location with a {latitude, longitude} body
// reported by the client.
func (h *LocationHandler) SetLocation(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	var c models.Coordinate
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.stores.For(session).Set(c); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, locationResponse{Location: &c})
}

func statusForReason(reason geolocation.Reason) int {
	switch reason {
	case geolocation.PermissionDenied:
		return http.StatusForbidden
	case geolocation.Timeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusServiceUnavailable
}
