package services

import (
	"context"
	"sync"
	"sync/atomic"

	"prop-server/api/geolocation"
	"prop-server/api/listings"
	"prop-server/dao/redis"
	"prop-server/db"
	"prop-server/models"
)

func fp(v float64) *float64 { return &v }

func listingAt(id int64, lat, lon float64, tier models.ListingTier) models.Listing {
	return models.Listing{
		ID:           id,
		Title:        "Listing",
		City:         "Hyderabad",
		PropertyType: models.PropertyTypeResidential,
		ListingType:  models.ListingTypeSale,
		Status:       models.StatusAvailable,
		Tier:         tier,
		Latitude:     fp(lat),
		Longitude:    fp(lon),
	}
}

func newMockStore() (*db.MockRedisClient, *redis.RedisListingDAO, *redis.RedisLocationDAO, *redis.RedisSavedDAO) {
	client := db.NewMockRedisClient(context.Background())
	return client, redis.NewRedisListingDAO(client), redis.NewRedisLocationDAO(client), redis.NewRedisSavedDAO(client)
}

func staticStores(dao LocationDAO, c *models.Coordinate, err error) *LocationStores {
	return NewLocationStores(func() geolocation.Locator {
		l := &geolocation.StaticLocator{Err: err}
		if c != nil {
			l.Coordinate = *c
		}
		return l
	}, dao, 0)
}

// gatedLocator blocks every Locate until release is closed.
type gatedLocator struct {
	calls   int32
	started chan struct{}
	once    sync.Once
	release chan struct{}
	coord   models.Coordinate
}

func newGatedLocator(c models.Coordinate) *gatedLocator {
	return &gatedLocator{started: make(chan struct{}), release: make(chan struct{}), coord: c}
}

func (g *gatedLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	atomic.AddInt32(&g.calls, 1)
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
		return g.coord, nil
	case <-ctx.Done():
		return models.Coordinate{}, ctx.Err()
	}
}

var _ listings.ListingAPI = (*listings.ListingApiClientMock)(nil)
