package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prop-server/api/listings"
)

func TestRefreshSections_StoresSnapshots(t *testing.T) {
	_, cache, _, _ := newMockStore()
	sr := NewSectionsRefresherService(cache, listings.NewListingApiClientMock(homeCatalog()))

	err := sr.RefreshSections(context.Background())

	require.NoError(t, err)
	for name, want := range map[string]int{SECTION_FEATURED: 3, SECTION_PREMIUM: 2, SECTION_RECENT: 5} {
		got, err := cache.GetSection(name)
		require.NoError(t, err)
		assert.Len(t, got, want, name)
	}
}

func TestRefreshSections_AllFailing(t *testing.T) {
	_, cache, _, _ := newMockStore()
	api := listings.NewListingApiClientMock(homeCatalog())
	api.FailWith(errors.New("down"))
	sr := NewSectionsRefresherService(cache, api)

	err := sr.RefreshSections(context.Background())

	assert.Error(t, err)
}

func TestStartPeriodicJob_RunsUntilCancelled(t *testing.T) {
	_, cache, _, _ := newMockStore()
	sr := NewSectionsRefresherService(cache, listings.NewListingApiClientMock(homeCatalog()))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sr.StartPeriodicJob(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		got, _ := cache.GetSection(SECTION_RECENT)
		return len(got) == 5
	}, time.Second, 10*time.Millisecond)
}
