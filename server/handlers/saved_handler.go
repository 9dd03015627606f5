package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"prop-server/models"
	"prop-server/service"

	log "github.com/sirupsen/logrus"
)

type savedResponse struct {
	IDs      []int64          `json:"ids"`
	Listings []models.Listing `json:"listings"`
	Error    string           `json:"error,omitempty"`
}

type SavedHandler struct {
	savedService *services.SavedService
}

func NewSavedHandler(savedService *services.SavedService) *SavedHandler {
	return &SavedHandler{savedService: savedService}
}

// GetSaved handles GET /v1/saved
func (h *SavedHandler) GetSaved(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	ids, err := h.savedService.IDs(session)
	if err != nil {
		log.Println("Error reading saved listings:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []int64{}
	}

	resp := savedResponse{IDs: ids, Listings: []models.Listing{}}
	listings, err := h.savedService.Resolve(r.Context(), session)
	if err != nil {
		log.Println("Error resolving saved listings:", err)
		resp.Error = err.Error()
	} else {
		resp.Listings = listings
	}
	writeJSON(w, http.StatusOK, resp)
}

// ToggleSaved handles PUT /v1/saved/{id}
func (h *SavedHandler) ToggleSaved(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}
	session := sessionID(w, r)

	saved, err := h.savedService.Toggle(r.Context(), session, id)
	if err != nil {
		log.Println("Error toggling saved listing:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "saved": saved})
}

// ClearSaved handles DELETE /v1/saved
func (h *SavedHandler) ClearSaved(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	if err := h.savedService.Clear(session); err != nil {
		log.Println("Error clearing saved listings:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
