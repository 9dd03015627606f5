package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"prop-server/server/handlers"
)

type HomeHandler interface {
	GetHome(w http.ResponseWriter, r *http.Request)
	GetHomeMap(w http.ResponseWriter, r *http.Request)
}

type ListingHandler interface {
	GetListing(w http.ResponseWriter, r *http.Request)
	GetByListingType(w http.ResponseWriter, r *http.Request)
	GetByPropertyType(w http.ResponseWriter, r *http.Request)
	GetNearby(w http.ResponseWriter, r *http.Request)
}

type LocationHandler interface {
	GetLocation(w http.ResponseWriter, r *http.Request)
	RefreshLocation(w http.ResponseWriter, r *http.Request)
	SetLocation(w http.ResponseWriter, r *http.Request)
}

type SavedHandler interface {
	GetSaved(w http.ResponseWriter, r *http.Request)
	ToggleSaved(w http.ResponseWriter, r *http.Request)
	ClearSaved(w http.ResponseWriter, r *http.Request)
}

type SearchHandler interface {
	Search(w http.ResponseWriter, r *http.Request)
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	EditSession(w http.ResponseWriter, r *http.Request)
	ApplySession(w http.ResponseWriter, r *http.Request)
	LoadMore(w http.ResponseWriter, r *http.Request)
	ResetSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	CreateInquiry(w http.ResponseWriter, r *http.Request)
	RegisterUser(w http.ResponseWriter, r *http.Request)
	RegisterAgent(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	PasswordStrength(w http.ResponseWriter, r *http.Request)
}

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Home     HomeHandler
	Listing  ListingHandler
	Location LocationHandler
	Saved    SavedHandler
	Search   SearchHandler
	Account  AccountHandler
}

type Router struct {
	handlers Handlers
	router   *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(h Handlers, router *mux.Router) *Router {
	return &Router{
		handlers: h,
		router:   router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", handlers.Ping).Methods("GET")

	// [?excludeSold=true]
	r.router.HandleFunc("/v1/home", r.handlers.Home.GetHome).Methods("GET")
	r.router.HandleFunc("/v1/home/map", r.handlers.Home.GetHomeMap).Methods("GET")

	// expects ?lat={latitude(float)}&lon={longitude(float)}[&radius={km(float)}]
	r.router.HandleFunc("/v1/properties/nearby", r.handlers.Listing.GetNearby).Methods("GET")
	r.router.HandleFunc("/v1/properties/listing-type/{type}", r.handlers.Listing.GetByListingType).Methods("GET")
	r.router.HandleFunc("/v1/properties/category/{type}", r.handlers.Listing.GetByPropertyType).Methods("GET")
	r.router.HandleFunc("/v1/properties/{id:[0-9]+}", r.handlers.Listing.GetListing).Methods("GET")

	r.router.HandleFunc("/v1/location", r.handlers.Location.GetLocation).Methods("GET")
	r.router.HandleFunc("/v1/location", r.handlers.Location.SetLocation).Methods("PUT")
	r.router.HandleFunc("/v1/location/refresh", r.handlers.Location.RefreshLocation).Methods("POST")

	r.router.HandleFunc("/v1/saved", r.handlers.Saved.GetSaved).Methods("GET")
	r.router.HandleFunc("/v1/saved", r.handlers.Saved.ClearSaved).Methods("DELETE")
	r.router.HandleFunc("/v1/saved/{id:[0-9]+}", r.handlers.Saved.ToggleSaved).Methods("PUT")

	r.router.HandleFunc("/v1/search", r.handlers.Search.Search).Methods("GET")
	r.router.HandleFunc("/v1/search/sessions", r.handlers.Search.CreateSession).Methods("POST")
	r.router.HandleFunc("/v1/search/sessions/{sid}", r.handlers.Search.GetSession).Methods("GET")
	r.router.HandleFunc("/v1/search/sessions/{sid}", r.handlers.Search.EditSession).Methods("PATCH")
	r.router.HandleFunc("/v1/search/sessions/{sid}", r.handlers.Search.DeleteSession).Methods("DELETE")
	r.router.HandleFunc("/v1/search/sessions/{sid}/apply", r.handlers.Search.ApplySession).Methods("POST")
	r.router.HandleFunc("/v1/search/sessions/{sid}/more", r.handlers.Search.LoadMore).Methods("POST")
	r.router.HandleFunc("/v1/search/sessions/{sid}/reset", r.handlers.Search.ResetSession).Methods("POST")

	r.router.HandleFunc("/v1/inquiries", r.handlers.Account.CreateInquiry).Methods("POST")
	r.router.HandleFunc("/v1/register", r.handlers.Account.RegisterUser).Methods("POST")
	r.router.HandleFunc("/v1/agents", r.handlers.Account.RegisterAgent).Methods("POST")
	r.router.HandleFunc("/v1/password-strength", r.handlers.Account.PasswordStrength).Methods("POST")
	r.router.HandleFunc("/v1/me", r.handlers.Account.GetProfile).Methods("GET")
}
