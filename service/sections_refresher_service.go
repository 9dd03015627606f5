package services

import (
	"context"
	"fmt"
	"time"

	"prop-server/api/listings"
	"prop-server/models"

	log "github.com/sirupsen/logrus"
)

// SectionsRefresherService periodically re-fetches the home sections so the
// snapshot cache and geo index stay warm.
type SectionsRefresherService struct {
	cache      ListingCache
	listingAPI listings.ListingAPI
}

// NewSectionsRefresherService constructs a new refresher with dependencies.
func NewSectionsRefresherService(cache ListingCache, listingAPI listings.ListingAPI) *SectionsRefresherService {
	return &SectionsRefresherService{
		cache:      cache,
		listingAPI: listingAPI,
	}
}

// StartPeriodicJob launches the background loop at the given interval. The
// loop exits when ctx is done.
func (sr *SectionsRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go sr.startPeriodicJob(ctx, interval)
}

func (sr *SectionsRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[SectionsRefresherService] Stopping periodic sections refresher job.")
			return
		case <-ticker.C:
			log.Println("[SectionsRefresherService] Running periodic sections refresher job.")
			if err := sr.RefreshSections(ctx); err != nil {
				log.Printf("[SectionsRefresherService] RefreshSections returned error: %v", err)
			} else {
				log.Println("[SectionsRefresherService] RefreshSections completed successfully.")
			}
		}
	}
}

// RefreshSections fetches every home section and stores the ones that came
// back. It fails only when none did.
func (sr *SectionsRefresherService) RefreshSections(ctx context.Context) error {
	fetchers := []struct {
		name  string
		fetch func(context.Context) ([]models.Listing, error)
	}{
		{SECTION_FEATURED, sr.listingAPI.Featured},
		{SECTION_PREMIUM, sr.listingAPI.Premium},
		{SECTION_RECENT, sr.listingAPI.Recent},
	}

	var lastErr error
	refreshed := 0
	for _, f := range fetchers {
		fetched, err := f.fetch(ctx)
		if err != nil {
			log.Printf("[SectionsRefresherService] Fetching %s failed: %v", f.name, err)
			lastErr = err
			continue
		}
		log.Printf("[SectionsRefresherService] Caching %d listings for %s", len(fetched), f.name)
		storeSnapshot(sr.cache, f.name, fetched)
		refreshed++
	}

	if refreshed == 0 && lastErr != nil {
		return fmt.Errorf("no section could be refreshed: %w", lastErr)
	}
	return nil
}
