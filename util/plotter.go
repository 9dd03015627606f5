package util

import (
	"fmt"
	"io"

	"prop-server/models"
	"prop-server/ranking"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	USER_SERIES     = "You"
	NEARBY_SERIES   = "Nearby"
	FALLBACK_SERIES = "Other listings"
)

// PlotRankedListings renders a geo scatter of ranked listings, plus the user
// position when known, as a standalone HTML page.
func PlotRankedListings(w io.Writer, user *models.Coordinate, ranked []ranking.Ranked) error {
	var nearby, fallback []opts.GeoData
	for _, r := range ranked {
		c := r.Listing.Coordinate()
		if c == nil {
			continue
		}
		point := opts.GeoData{
			Name:  listingLabel(r),
			Value: []float64{c.Longitude, c.Latitude},
		}
		if r.Fallback {
			fallback = append(fallback, point)
		} else {
			nearby = append(nearby, point)
		}
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Listings Map",
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Listings near you"}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	if user != nil {
		geo.AddSeries(USER_SERIES, types.ChartEffectScatter, []opts.GeoData{
			{Name: USER_SERIES, Value: []float64{user.Longitude, user.Latitude}},
		})
	}
	if len(nearby) > 0 {
		geo.AddSeries(NEARBY_SERIES, types.ChartScatter, nearby,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false), Formatter: "{b}"}),
		)
	}
	if len(fallback) > 0 {
		geo.AddSeries(FALLBACK_SERIES, types.ChartScatter, fallback,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false), Formatter: "{b}"}),
		)
	}

	if err := geo.Render(w); err != nil {
		return fmt.Errorf("failed to render listings map: %w", err)
	}
	return nil
}

func listingLabel(r ranking.Ranked) string {
	if r.DistanceKm != nil {
		return fmt.Sprintf("%s (%.1f km)", r.Listing.Title, *r.DistanceKm)
	}
	return r.Listing.Title
}
