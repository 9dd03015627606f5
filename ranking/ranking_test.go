package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prop-server/distance"
	"prop-server/models"
)

func f(v float64) *float64 { return &v }

func listing(id int64, lat, lon *float64, tier models.ListingTier, status models.PropertyStatus) models.Listing {
	return models.Listing{ID: id, Latitude: lat, Longitude: lon, Tier: tier, Status: status}
}

func ids(listings []models.Listing) []int64 {
	out := make([]int64, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestRank_NearestFirstWithinRadius(t *testing.T) {
	// Arrange: user at (10,10); L1 ~15.7 km, L2 ~1.6 km, L3 far away.
	user := &models.Coordinate{Latitude: 10.0, Longitude: 10.0}
	input := []models.Listing{
		listing(1, f(10.1), f(10.1), models.TierStandard, models.StatusAvailable),
		listing(2, f(10.01), f(10.01), models.TierStandard, models.StatusAvailable),
		listing(3, f(50.0), f(50.0), models.TierStandard, models.StatusAvailable),
	}

	// Act
	got := Rank(input, user, Options{RadiusKm: 50})

	// Assert
	assert.Equal(t, []int64{2, 1}, ids(got))
}

func TestRank_FallbackPromotesPremium(t *testing.T) {
	// Arrange
	user := &models.Coordinate{Latitude: 0, Longitude: 0}
	input := []models.Listing{
		listing(1, f(40), f(40), models.TierStandard, models.StatusAvailable),
		listing(2, f(41), f(41), models.TierPremium, models.StatusAvailable),
		listing(3, f(42), f(42), models.TierStandard, models.StatusAvailable),
	}

	// Act
	got := RankWithDistance(input, user, Options{RadiusKm: 50})

	// Assert
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].Listing.ID)
	assert.Equal(t, int64(1), got[1].Listing.ID)
	assert.Equal(t, int64(3), got[2].Listing.ID)
	for _, r := range got {
		assert.True(t, r.Fallback)
	}
}

func TestRank_NoUserCoordinateReturnsInputUnchanged(t *testing.T) {
	input := []models.Listing{
		listing(3, nil, nil, models.TierStandard, models.StatusSold),
		listing(1, f(1), f(1), models.TierPremium, models.StatusAvailable),
		listing(2, f(2), f(2), models.TierStandard, models.StatusAvailable),
	}

	got := Rank(input, nil, Options{ExcludeSold: true})

	assert.Equal(t, []int64{3, 1, 2}, ids(got))
	got[0].ID = 99
	assert.Equal(t, int64(3), input[0].ID, "ranking must not alias the input slice")
}

func TestRank_RadiusBound(t *testing.T) {
	user := &models.Coordinate{Latitude: 17.385, Longitude: 78.4867}
	var input []models.Listing
	for i := 0; i < 40; i++ {
		lat := 17.385 + float64(i)*0.05
		input = append(input, listing(int64(i), f(lat), f(78.4867), models.TierStandard, models.StatusAvailable))
	}

	for _, radius := range []float64{5, 20, 50, 100} {
		got := RankWithDistance(input, user, Options{RadiusKm: radius})
		require.NotEmpty(t, got)
		for i, r := range got {
			require.False(t, r.Fallback)
			c := r.Listing.Coordinate()
			require.NotNil(t, c)
			assert.LessOrEqual(t, distance.HaversineKm(*user, *c), radius)
			if i > 0 {
				assert.LessOrEqual(t, *got[i-1].DistanceKm, *r.DistanceKm)
			}
		}
	}
}

func TestRank_FallbackLengthAndPremiumPrecedence(t *testing.T) {
	user := &models.Coordinate{Latitude: -45, Longitude: -170}
	input := []models.Listing{
		listing(1, nil, nil, models.TierStandard, models.StatusAvailable),
		listing(2, f(10), f(10), models.TierPremium, models.StatusAvailable),
		listing(3, f(11), f(11), models.TierFeatured, models.StatusAvailable),
		listing(4, nil, nil, models.TierPremium, models.StatusAvailable),
		listing(5, f(12), f(12), models.TierStandard, models.StatusSold),
	}

	got := Rank(input, user, Options{})

	assert.Len(t, got, len(input))
	assert.Equal(t, []int64{2, 4, 1, 3, 5}, ids(got))
}

func TestRank_ExcludeSold(t *testing.T) {
	user := &models.Coordinate{Latitude: 10, Longitude: 10}
	input := []models.Listing{
		listing(1, f(10.01), f(10.01), models.TierStandard, models.StatusSold),
		listing(2, f(10.02), f(10.02), models.TierStandard, models.StatusAvailable),
		listing(3, f(60), f(60), models.TierPremium, models.StatusSold),
	}

	assert.Equal(t, []int64{2}, ids(Rank(input, user, Options{ExcludeSold: true})))
	assert.Equal(t, []int64{1, 2}, ids(Rank(input, user, Options{})))

	far := &models.Coordinate{Latitude: -60, Longitude: -60}
	assert.Equal(t, []int64{2}, ids(Rank(input, far, Options{ExcludeSold: true})))
}

func TestRank_ListingsWithoutCoordinatesAreSkippedInRadiusSet(t *testing.T) {
	user := &models.Coordinate{Latitude: 10, Longitude: 10}
	input := []models.Listing{
		listing(1, nil, f(10), models.TierPremium, models.StatusAvailable),
		listing(2, f(10.2), f(10.2), models.TierStandard, models.StatusAvailable),
	}

	assert.Equal(t, []int64{2}, ids(Rank(input, user, Options{})))
}

func TestRank_StableForEqualDistances(t *testing.T) {
	user := &models.Coordinate{Latitude: 10, Longitude: 10}
	input := []models.Listing{
		listing(7, f(10.1), f(10), models.TierStandard, models.StatusAvailable),
		listing(3, f(10.1), f(10), models.TierStandard, models.StatusAvailable),
		listing(5, f(10.1), f(10), models.TierStandard, models.StatusAvailable),
	}

	assert.Equal(t, []int64{7, 3, 5}, ids(Rank(input, user, Options{})))
}

func TestPremiumFirst(t *testing.T) {
	input := []models.Listing{
		{ID: 1, Tier: models.TierStandard},
		{ID: 2, Tier: models.TierPremium},
		{ID: 3, Tier: models.TierFeatured},
		{ID: 4, Tier: models.TierPremium},
	}

	assert.Equal(t, []int64{2, 4, 1, 3}, ids(PremiumFirst(input)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(input))
}

func TestCap(t *testing.T) {
	input := []models.Listing{{ID: 1}, {ID: 2}, {ID: 3}}

	assert.Len(t, Cap(input, 2), 2)
	assert.Len(t, Cap(input, 8), 3)
	assert.Len(t, Cap([]models.Listing(nil), 4), 0)
	assert.Len(t, Cap(input, -1), 3)
	assert.Len(t, Cap([]Ranked{{Listing: models.Listing{ID: 1}}, {Listing: models.Listing{ID: 2}}}, 1), 1)
}

func TestRank_ScenarioDistances(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km.
	user := &models.Coordinate{Latitude: 0, Longitude: 0}
	input := []models.Listing{
		listing(10, f(0), f(10/111.19), models.TierStandard, models.StatusAvailable),
		listing(60, f(0), f(60/111.19), models.TierStandard, models.StatusAvailable),
		listing(5, f(0), f(5/111.19), models.TierStandard, models.StatusAvailable),
	}

	got := RankWithDistance(input, user, Options{RadiusKm: DEFAULT_RADIUS_KM})

	require.Len(t, got, 2)
	assert.Equal(t, int64(5), got[0].Listing.ID)
	assert.Equal(t, int64(10), got[1].Listing.ID)
	assert.InDelta(t, 5.0, *got[0].DistanceKm, 0.01)
	assert.InDelta(t, 10.0, *got[1].DistanceKm, 0.01)
}

func TestRank_ScenarioFarListingsFallBackToTier(t *testing.T) {
	user := &models.Coordinate{Latitude: 0, Longitude: 0}
	input := []models.Listing{
		listing(1, f(0), f(100/111.19), models.TierStandard, models.StatusAvailable),
		listing(2, f(0), f(200/111.19), models.TierPremium, models.StatusAvailable),
	}

	assert.Equal(t, []int64{2, 1}, ids(Rank(input, user, Options{RadiusKm: DEFAULT_RADIUS_KM})))
}
