package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"prop-server/db"
	"prop-server/models"

	log "github.com/sirupsen/logrus"
)

const LISTINGS_GEO_KEY_V1 = "listings_geo_v1"
const LISTINGS_GEO_PLACE_MEMBER_FORMAT_V1 = "listings_geo_place_v1:%d"

// LISTING_SECTION_KEY_FORMAT caches the last good copy of a home section.
const LISTING_SECTION_KEY_FORMAT = "listing_section_v1:%s"

// RedisListingDAO caches listing snapshots using Redis.
type RedisListingDAO struct {
	client db.RedisClient
}

// NewRedisListingDAO initializes a RedisListingDAO with the Redis client.
func NewRedisListingDAO(client db.RedisClient) *RedisListingDAO {
	return &RedisListingDAO{client: client}
}

// UpsertListing geo-indexes a listing with its JSON. Listings without
// coordinates cannot be indexed and are skipped.
func (dao *RedisListingDAO) UpsertListing(l models.Listing) error {
	c := l.Coordinate()
	if c == nil {
		return nil
	}
	ctx := dao.client.GetContext()
	member := fmt.Sprintf(LISTINGS_GEO_PLACE_MEMBER_FORMAT_V1, l.ID)
	return dao.client.AddLocationWithJSON(ctx, LISTINGS_GEO_KEY_V1, member, c.Latitude, c.Longitude, l)
}

// GetNearbyListings returns indexed listings within radiusKm, nearest first.
func (dao *RedisListingDAO) GetNearbyListings(lat, lon, radiusKm float64) ([]models.Listing, error) {
	listingsJSON, err := dao.client.GetLocationsWithinRadius(LISTINGS_GEO_KEY_V1, lat, lon, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("[RedisListingDAO] failed to get listings: %w", err)
	}

	listings := make([]models.Listing, len(listingsJSON))
	for i, listingJSON := range listingsJSON {
		if err := json.Unmarshal([]byte(listingJSON), &listings[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal listing JSON: %w", err)
		}
	}
	return listings, nil
}

// SetSection replaces the cached snapshot of a named section.
func (dao *RedisListingDAO) SetSection(name string, listings []models.Listing) error {
	key := fmt.Sprintf(LISTING_SECTION_KEY_FORMAT, name)
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("failed to marshal section %s: %w", name, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set section in redis: %w", err)
	}
	return nil
}

// GetSection returns the cached snapshot of a section, or nil on a cache miss.
func (dao *RedisListingDAO) GetSection(name string) ([]models.Listing, error) {
	key := fmt.Sprintf(LISTING_SECTION_KEY_FORMAT, name)
	str, err := dao.client.Get(key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section from redis: %w", err)
	}
	var listings []models.Listing
	if err := json.Unmarshal([]byte(str), &listings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal section JSON: %w", err)
	}
	return listings, nil
}

// ListSectionNames returns the names of all cached sections.
func (dao *RedisListingDAO) ListSectionNames() ([]string, error) {
	pattern := fmt.Sprintf(LISTING_SECTION_KEY_FORMAT, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list section keys: %w", err)
	}
	prefix := fmt.Sprintf(LISTING_SECTION_KEY_FORMAT, "")
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, prefix))
	}
	return names, nil
}

func (dao *RedisListingDAO) DeleteSection(name string) error {
	key := fmt.Sprintf(LISTING_SECTION_KEY_FORMAT, name)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete section key %s: %w", key, err)
	}
	log.Printf("[RedisListingDAO] Deleted section cache for %s", name)
	return nil
}
