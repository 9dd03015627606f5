package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"prop-server/api"
	"prop-server/models"
	"prop-server/service"

	log "github.com/sirupsen/logrus"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// GetListing handles GET /v1/properties/{id}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	detail, err := h.listingService.Detail(r.Context(), id)
	if err != nil {
		log.Printf("Error loading listing %d: %v", id, err)
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			writeError(w, http.StatusNotFound, "Listing not found")
			return
		}
		writeError(w, http.StatusBadGateway, "Could not load listing")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// GetByListingType handles GET /v1/properties/listing-type/{type}
func (h *ListingHandler) GetByListingType(w http.ResponseWriter, r *http.Request) {
	t, err := models.ParseListingType(mux.Vars(r)["type"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session := sessionID(w, r)
	opts := services.ViewOptions{ExcludeSold: parseArgBool(r.URL.Query(), EXCLUDE_SOLD_QUERY_ARG)}
	writeJSON(w, http.StatusOK, h.listingService.ByListingType(r.Context(), session, t, opts))
}

// GetByPropertyType handles GET /v1/properties/category/{type}
func (h *ListingHandler) GetByPropertyType(w http.ResponseWriter, r *http.Request) {
	t, err := models.ParsePropertyType(mux.Vars(r)["type"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session := sessionID(w, r)
	opts := services.ViewOptions{ExcludeSold: parseArgBool(r.URL.Query(), EXCLUDE_SOLD_QUERY_ARG)}
	writeJSON(w, http.StatusOK, h.listingService.ByPropertyType(r.Context(), session, t, opts))
}

// GetNearby handles GET /v1/properties/nearby?lat={float}&lon={float}[&radius={km}]
func (h *ListingHandler) GetNearby(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	lat, err := parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+LAT_QUERY_ARG)
		return
	}
	lon, err := parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+LON_QUERY_ARG)
		return
	}
	var radius float64
	if vals.Get(RADIUS_QUERY_ARG) != "" {
		radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
		if err != nil || radius < 0 {
			writeError(w, http.StatusBadRequest, "Invalid argument "+RADIUS_QUERY_ARG)
			return
		}
	}
	if !(models.Coordinate{Latitude: lat, Longitude: lon}).Valid() {
		writeError(w, http.StatusBadRequest, "Coordinate out of range")
		return
	}

	nearby, err := h.listingService.Nearby(lat, lon, radius)
	if err != nil {
		log.Println("Error loading nearby listings:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, nearby)
}
