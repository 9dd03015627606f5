package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prop-server/models"
	"prop-server/ranking"
)

func fp(v float64) *float64 { return &v }

func TestPlotRankedListings(t *testing.T) {
	d := 1.3
	ranked := []ranking.Ranked{
		{Listing: models.Listing{ID: 1, Title: "Lake House", Latitude: fp(17.39), Longitude: fp(78.49)}, DistanceKm: &d},
		{Listing: models.Listing{ID: 2, Title: "No Coordinates"}},
	}
	var buf bytes.Buffer

	err := PlotRankedListings(&buf, &models.Coordinate{Latitude: 17.385, Longitude: 78.4867}, ranked)

	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "Listings Map")
	assert.Contains(t, html, "Lake House")
	assert.NotContains(t, html, "No Coordinates")
}

func TestPlotRankedListings_NoUser(t *testing.T) {
	var buf bytes.Buffer

	err := PlotRankedListings(&buf, nil, nil)

	require.NoError(t, err)
	assert.NotContains(t, buf.String(), `"name":"You"`)
}
