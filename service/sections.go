package services

import (
	"context"
	"fmt"

	"prop-server/models"
	"prop-server/ranking"

	log "github.com/sirupsen/logrus"
)

const (
	SECTION_FEATURED = "featured"
	SECTION_PREMIUM  = "premium"
	SECTION_RECENT   = "recent"
)

// ListingCache keeps the last good copy of each section plus a geo index of
// the listings seen in them.
type ListingCache interface {
	GetSection(name string) ([]models.Listing, error)
	SetSection(name string, listings []models.Listing) error
	UpsertListing(l models.Listing) error
	GetNearbyListings(lat, lon, radiusKm float64) ([]models.Listing, error)
}

// Section is a display-ready listing collection.
type Section struct {
	Name     string           `json:"name"`
	Listings []ranking.Ranked `json:"listings"`
	// Error is set when the repository could not be read.
	Error string `json:"error,omitempty"`
	// Stale is set when Listings came from the cache after a failed read.
	Stale bool `json:"stale,omitempty"`
}

// ViewOptions are per-request display choices.
type ViewOptions struct {
	ExcludeSold bool
}

func listingTypeSection(t models.ListingType) string {
	return fmt.Sprintf("listing_type:%s", t)
}

func propertyTypeSection(t models.PropertyType) string {
	return fmt.Sprintf("property_type:%s", t)
}

// loadSection fetches a collection and snapshots it. When the fetch fails it
// falls back to the snapshot, if there is one.
func loadSection(ctx context.Context, cache ListingCache, name string, fetch func(context.Context) ([]models.Listing, error)) ([]models.Listing, string, bool) {
	listings, err := fetch(ctx)
	if err == nil {
		storeSnapshot(cache, name, listings)
		return listings, "", false
	}

	log.Printf("[Sections] Fetching %s failed: %v", name, err)
	if cache == nil {
		return []models.Listing{}, err.Error(), false
	}
	cached, cacheErr := cache.GetSection(name)
	if cacheErr != nil {
		log.Printf("[Sections] Reading cached %s failed: %v", name, cacheErr)
	}
	if cached == nil {
		return []models.Listing{}, err.Error(), false
	}
	log.Printf("[Sections] Serving %d cached listings for %s", len(cached), name)
	return cached, err.Error(), true
}

func storeSnapshot(cache ListingCache, name string, listings []models.Listing) {
	if cache == nil {
		return
	}
	if err := cache.SetSection(name, listings); err != nil {
		log.Printf("[Sections] Caching %s failed: %v", name, err)
	}
	for _, l := range listings {
		if err := cache.UpsertListing(l); err != nil {
			log.Printf("[Sections] Indexing listing %d failed: %v", l.ID, err)
		}
	}
}

// arrange ranks listings for user. Without a user coordinate the repository
// order is kept, optionally with PREMIUM listings promoted.
func arrange(listings []models.Listing, user *models.Coordinate, radiusKm float64, opts ViewOptions, premiumFirst bool, limit int) []ranking.Ranked {
	if user == nil {
		if opts.ExcludeSold {
			listings = withoutSold(listings)
		}
		if premiumFirst {
			listings = ranking.PremiumFirst(listings)
		}
	}
	ranked := ranking.RankWithDistance(listings, user, ranking.Options{RadiusKm: radiusKm, ExcludeSold: opts.ExcludeSold})
	return ranking.Cap(ranked, limit)
}

func withoutSold(listings []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Status != models.StatusSold {
			out = append(out, l)
		}
	}
	return out
}
