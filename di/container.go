package di

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"prop-server/api"
	"prop-server/api/geocoding"
	"prop-server/api/geolocation"
	"prop-server/api/listings"
	"prop-server/auth"
	"prop-server/config"
	"prop-server/dao/redis"
	"prop-server/db"
	"prop-server/models"
	"prop-server/search"
	"prop-server/server"
	"prop-server/server/handlers"
	services "prop-server/service"
)

// Hyderabad city centre, used as the fixed position outside prod.
var devLocation = models.Coordinate{Latitude: 17.385, Longitude: 78.4867}

// Container holds all application dependencies.
type Container struct {
	RedisClient              db.RedisClient
	RedisListingDao          *redis.RedisListingDAO
	RedisLocationDao         *redis.RedisLocationDAO
	RedisSavedDao            *redis.RedisSavedDAO
	ListingAPI               listings.ListingAPI
	Geocoder                 geocoding.ReverseGeocoder
	AuthService              *auth.Service
	LocationStores           *services.LocationStores
	HomeService              *services.HomeService
	ListingService           *services.ListingService
	SavedService             *services.SavedService
	AccountService           *services.AccountService
	SectionsRefresherService *services.SectionsRefresherService
	SearchSessions           *search.Sessions
	MuxRouter                *mux.Router
	Router                   *server.Router
	PropHttpServer           *server.PropHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	log.Printf("initializing container - env: %s", cfg.Env)

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Initialize Redis client
	redisClient, err := db.NewGeoRedisClient(ctx, redisInternalClient)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	// Initialize Redis DAOs
	redisListingDao := redis.NewRedisListingDAO(redisClient)
	redisLocationDao := redis.NewRedisLocationDAO(redisClient)
	redisSavedDao := redis.NewRedisSavedDAO(redisClient)

	// Upstream clients - mocks outside prod
	var listingAPI listings.ListingAPI
	var geocoder geocoding.ReverseGeocoder
	var newLocator func() geolocation.Locator
	if !cfg.IsProd() {
		log.Printf("Using mock listing api from %s", config.LISTINGS_RESOURCE)
		mock, err := listings.NewListingApiClientMockFromFile(config.GetResourcePath(config.LISTINGS_RESOURCE))
		if err != nil {
			panic(fmt.Sprintf("Failed to load listings fixture: %v", err))
		}
		listingAPI = mock
		newLocator = func() geolocation.Locator {
			return &geolocation.StaticLocator{Coordinate: devLocation}
		}
	} else {
		log.Printf("Using prod listing api at %s", cfg.ListingsAPIBase)
		listingAPI = listings.NewListingApiClient(api.NewHTTPClient(cfg.ListingsAPIBase))
		geocoder = geocoding.NewClient(api.NewHTTPClient(cfg.GeocodingBase))
		newLocator = func() geolocation.Locator {
			return geolocation.NewIPLocator(cfg.GeolocationURL,
				geolocation.WithTimeout(config.GEOLOCATION_TIMEOUT),
				geolocation.WithMaxAge(config.GEOLOCATION_MAX_AGE),
			)
		}
	}

	authService := auth.NewService(cfg.SessionSecret, config.SESSION_TTL)

	// Initialize service layer
	locationStores := services.NewLocationStores(newLocator, redisLocationDao, config.GEOLOCATION_TIMEOUT)
	homeService := services.NewHomeService(listingAPI, redisListingDao, locationStores)
	listingService := services.NewListingService(listingAPI, redisListingDao, locationStores)
	savedService := services.NewSavedService(redisSavedDao, listingAPI)
	accountService := services.NewAccountService(listingAPI, authService)
	sectionsRefresherService := services.NewSectionsRefresherService(redisListingDao, listingAPI)
	searchSessions := search.NewSessions(listingAPI, cfg.SearchSessionTTL)

	// Initialize handlers and router
	muxRouter := mux.NewRouter()
	router := server.NewRouter(server.Handlers{
		Home:     handlers.NewHomeHandler(homeService),
		Listing:  handlers.NewListingHandler(listingService),
		Location: handlers.NewLocationHandler(locationStores, geocoder),
		Saved:    handlers.NewSavedHandler(savedService),
		Search:   handlers.NewSearchHandler(searchSessions, listingAPI),
		Account:  handlers.NewAccountHandler(accountService),
	}, muxRouter)

	propHttpServer := server.NewPropHttpServer(cfg.HTTPAddr, router, muxRouter)

	return &Container{
		RedisClient:              redisClient,
		RedisListingDao:          redisListingDao,
		RedisLocationDao:         redisLocationDao,
		RedisSavedDao:            redisSavedDao,
		ListingAPI:               listingAPI,
		Geocoder:                 geocoder,
		AuthService:              authService,
		LocationStores:           locationStores,
		HomeService:              homeService,
		ListingService:           listingService,
		SavedService:             savedService,
		AccountService:           accountService,
		SectionsRefresherService: sectionsRefresherService,
		SearchSessions:           searchSessions,
		MuxRouter:                muxRouter,
		Router:                   router,
		PropHttpServer:           propHttpServer,
	}
}
