package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Environments
const PROD_ENV = "prod"
const DEV_ENV = "dev"

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Listing Repository
const LISTINGS_API_BASE_URL = "http://localhost:8080/api"
const GEOCODING_BASE_URL = "https://nominatim.openstreetmap.org"

// {ip} is replaced with the client address, or dropped when unknown.
const GEOLOCATION_URL = "https://ipapi.co/{ip}/json/"

// Ranking and search
const SEARCH_PAGE_SIZE = 12
const NEARBY_RADIUS_KM = 50.0
const FEATURED_SECTION_CAP = 4
const PREMIUM_SECTION_CAP = 6
const RECENT_SECTION_CAP = 8
const SIMILAR_LISTINGS_CAP = 6

// Location capture
const GEOLOCATION_TIMEOUT = 10 * time.Second
const GEOLOCATION_MAX_AGE = 5 * time.Minute

// Per-session location stores idle out after this long; the coordinate stays in Redis
const LOCATION_STORE_IDLE_TTL = 30 * time.Minute

// Session credential lifetime: 7 days
const SESSION_TTL = 7 * 24 * time.Hour

// Sections refresher config
const SECTIONS_REFRESHER_SCHEDULE_MINUTES = 15

// Search sessions idle out after this many minutes
const SEARCH_SESSION_TTL_MINUTES = 30

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const LISTINGS_RESOURCE = "listings.json"

// Config holds the settings that vary per deployment.
type Config struct {
	Env      string
	HTTPAddr string
	LogLevel string

	ListingsAPIBase string
	GeocodingBase   string
	GeolocationURL  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionSecret string

	SectionsRefreshInterval time.Duration
	SearchSessionTTL        time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Env:      getEnv("APP_ENV", DEV_ENV),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ListingsAPIBase: getEnv("LISTINGS_API_BASE", LISTINGS_API_BASE_URL),
		GeocodingBase:   getEnv("GEOCODING_BASE", GEOCODING_BASE_URL),
		GeolocationURL:  getEnv("GEOLOCATION_URL", GEOLOCATION_URL),

		RedisAddr:     getEnv("REDIS_ADDR", REDIS_DB_ADDRESS),
		RedisPassword: getEnv("REDIS_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:       getEnvInt("REDIS_DB", REDIS_DB),

		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret"),

		SectionsRefreshInterval: time.Duration(getEnvInt("SECTIONS_REFRESH_MINUTES", SECTIONS_REFRESHER_SCHEDULE_MINUTES)) * time.Minute,
		SearchSessionTTL:        time.Duration(getEnvInt("SEARCH_SESSION_TTL_MINUTES", SEARCH_SESSION_TTL_MINUTES)) * time.Minute,
	}
}

func (c *Config) IsProd() bool {
	return c.Env == PROD_ENV
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
