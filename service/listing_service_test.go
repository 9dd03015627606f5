package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prop-server/api/listings"
	"prop-server/models"
)

func TestDetail_SimilarExcludesSelfAndCaps(t *testing.T) {
	// Arrange
	var catalog []models.Listing
	for i := int64(1); i <= 10; i++ {
		catalog = append(catalog, listingAt(i, 17.385, 78.4867, models.TierStandard))
	}
	other := listingAt(11, 17.385, 78.4867, models.TierStandard)
	other.City = "Pune"
	catalog = append(catalog, other)
	_, cache, locDAO, _ := newMockStore()
	ls := NewListingService(listings.NewListingApiClientMock(catalog), cache, staticStores(locDAO, nil, nil))

	// Act
	detail, err := ls.Detail(context.Background(), 3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(3), detail.Listing.ID)
	assert.Len(t, detail.Similar, 6)
	for _, s := range detail.Similar {
		assert.NotEqual(t, int64(3), s.ID)
		assert.Equal(t, "Hyderabad", s.City)
	}
}

func TestDetail_NotFound(t *testing.T) {
	_, cache, locDAO, _ := newMockStore()
	ls := NewListingService(listings.NewListingApiClientMock(nil), cache, staticStores(locDAO, nil, nil))

	_, err := ls.Detail(context.Background(), 99)

	assert.Error(t, err)
}

func TestByListingType_FiltersAndDegrades(t *testing.T) {
	catalog := homeCatalog()
	catalog[0].ListingType = models.ListingTypeRent
	catalog[2].ListingType = models.ListingTypeRent
	_, cache, locDAO, _ := newMockStore()
	api := listings.NewListingApiClientMock(catalog)
	ls := NewListingService(api, cache, staticStores(locDAO, nil, nil))

	section := ls.ByListingType(context.Background(), "s1", models.ListingTypeRent, ViewOptions{})
	require.Len(t, section.Listings, 2)
	assert.Equal(t, "listing_type:RENT", section.Name)

	api.FailWith(errors.New("down"))
	section = ls.ByListingType(context.Background(), "s1", models.ListingTypeRent, ViewOptions{})
	assert.True(t, section.Stale)
	assert.Len(t, section.Listings, 2)
}

func TestByPropertyType(t *testing.T) {
	catalog := homeCatalog()
	catalog[4].PropertyType = models.PropertyTypeCommercial
	_, cache, locDAO, _ := newMockStore()
	ls := NewListingService(listings.NewListingApiClientMock(catalog), cache, staticStores(locDAO, nil, nil))

	section := ls.ByPropertyType(context.Background(), "s1", models.PropertyTypeCommercial, ViewOptions{})

	require.Len(t, section.Listings, 1)
	assert.Equal(t, int64(5), section.Listings[0].Listing.ID)
}

func TestNearby_DefaultRadius(t *testing.T) {
	_, cache, locDAO, _ := newMockStore()
	for _, l := range homeCatalog() {
		require.NoError(t, cache.UpsertListing(l))
	}
	ls := NewListingService(listings.NewListingApiClientMock(nil), cache, staticStores(locDAO, nil, nil))

	got, err := ls.Nearby(17.385, 78.4867, 0)

	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].ID)
}
