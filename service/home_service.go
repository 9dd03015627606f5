package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"prop-server/api/listings"
	"prop-server/config"
	"prop-server/models"
	"prop-server/ranking"

	log "github.com/sirupsen/logrus"
)

// HomeFeed is the landing page: three ranked sections and the location they
// were ranked for.
type HomeFeed struct {
	Location *models.Coordinate `json:"location"`
	Featured Section            `json:"featured"`
	Premium  Section            `json:"premium"`
	Recent   Section            `json:"recent"`
}

type HomeService struct {
	listingAPI listings.ListingAPI
	cache      ListingCache
	locations  *LocationStores
	radiusKm   float64
}

func NewHomeService(listingAPI listings.ListingAPI, cache ListingCache, locations *LocationStores) *HomeService {
	return &HomeService{
		listingAPI: listingAPI,
		cache:      cache,
		locations:  locations,
		radiusKm:   config.NEARBY_RADIUS_KM,
	}
}

type sectionSpec struct {
	name         string
	fetch        func(context.Context) ([]models.Listing, error)
	premiumFirst bool
	limit        int
	out          *Section
}

// Home fetches the three sections in parallel. A failing section degrades on
// its own and never fails the feed.
func (hs *HomeService) Home(ctx context.Context, session string, opts ViewOptions) HomeFeed {
	feed := HomeFeed{Location: hs.locations.For(session).GetCached()}

	specs := []sectionSpec{
		{SECTION_FEATURED, hs.listingAPI.Featured, true, config.FEATURED_SECTION_CAP, &feed.Featured},
		{SECTION_PREMIUM, hs.listingAPI.Premium, false, config.PREMIUM_SECTION_CAP, &feed.Premium},
		{SECTION_RECENT, hs.listingAPI.Recent, true, config.RECENT_SECTION_CAP, &feed.Recent},
	}

	var g errgroup.Group
	for _, spec := range specs {
		spec := spec
		g.Go(func() error {
			raw, errMsg, stale := loadSection(ctx, hs.cache, spec.name, spec.fetch)
			*spec.out = Section{
				Name:     spec.name,
				Listings: arrange(raw, feed.Location, hs.radiusKm, opts, spec.premiumFirst, spec.limit),
				Error:    errMsg,
				Stale:    stale,
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Debugf("[HomeService] Home for %s: featured=%d premium=%d recent=%d located=%v",
		session, len(feed.Featured.Listings), len(feed.Premium.Listings), len(feed.Recent.Listings), feed.Location != nil)
	return feed
}

// MapListings returns the recent collection ranked for the session, uncapped.
func (hs *HomeService) MapListings(ctx context.Context, session string) (*models.Coordinate, []ranking.Ranked) {
	user := hs.locations.For(session).GetCached()
	raw, _, _ := loadSection(ctx, hs.cache, SECTION_RECENT, hs.listingAPI.Recent)
	return user, arrange(raw, user, hs.radiusKm, ViewOptions{}, true, -1)
}
