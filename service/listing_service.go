package services

import (
	"context"
	"fmt"

	"prop-server/api/listings"
	"prop-server/config"
	"prop-server/models"

	log "github.com/sirupsen/logrus"
)

// ListingDetail is a listing with others like it.
type ListingDetail struct {
	Listing models.Listing   `json:"listing"`
	Similar []models.Listing `json:"similar"`
}

type ListingService struct {
	listingAPI listings.ListingAPI
	cache      ListingCache
	locations  *LocationStores
	radiusKm   float64
}

func NewListingService(listingAPI listings.ListingAPI, cache ListingCache, locations *LocationStores) *ListingService {
	return &ListingService{
		listingAPI: listingAPI,
		cache:      cache,
		locations:  locations,
		radiusKm:   config.NEARBY_RADIUS_KM,
	}
}

// Detail returns a listing and up to SIMILAR_LISTINGS_CAP listings in the same
// city with the same property type. A failed similar lookup leaves Similar empty.
func (ls *ListingService) Detail(ctx context.Context, id int64) (*ListingDetail, error) {
	l, err := ls.listingAPI.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %d: %w", id, err)
	}

	detail := &ListingDetail{Listing: *l, Similar: []models.Listing{}}
	similar, err := ls.listingAPI.Similar(ctx, l.City, l.PropertyType)
	if err != nil {
		log.Printf("[ListingService] Similar listings for %d failed: %v", id, err)
		return detail, nil
	}
	for _, s := range similar {
		if s.ID == l.ID {
			continue
		}
		detail.Similar = append(detail.Similar, s)
		if len(detail.Similar) == config.SIMILAR_LISTINGS_CAP {
			break
		}
	}
	return detail, nil
}

// ByListingType serves the recent listings of one listing type.
func (ls *ListingService) ByListingType(ctx context.Context, session string, t models.ListingType, opts ViewOptions) Section {
	name := listingTypeSection(t)
	return ls.category(ctx, session, name, opts, func(ctx context.Context) ([]models.Listing, error) {
		return ls.listingAPI.RecentByListingType(ctx, t)
	})
}

// ByPropertyType serves the recent listings of one property type.
func (ls *ListingService) ByPropertyType(ctx context.Context, session string, t models.PropertyType, opts ViewOptions) Section {
	name := propertyTypeSection(t)
	return ls.category(ctx, session, name, opts, func(ctx context.Context) ([]models.Listing, error) {
		return ls.listingAPI.RecentByPropertyType(ctx, t)
	})
}

func (ls *ListingService) category(ctx context.Context, session, name string, opts ViewOptions, fetch func(context.Context) ([]models.Listing, error)) Section {
	raw, errMsg, stale := loadSection(ctx, ls.cache, name, fetch)
	user := ls.locations.For(session).GetCached()
	return Section{
		Name:     name,
		Listings: arrange(raw, user, ls.radiusKm, opts, false, -1),
		Error:    errMsg,
		Stale:    stale,
	}
}

// Nearby answers from the geo index built out of previously fetched sections.
func (ls *ListingService) Nearby(lat, lon, radiusKm float64) ([]models.Listing, error) {
	if radiusKm <= 0 {
		radiusKm = ls.radiusKm
	}
	return ls.cache.GetNearbyListings(lat, lon, radiusKm)
}
