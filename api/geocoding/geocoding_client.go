// Package geocoding resolves coordinates to a city and state.
package geocoding

import (
	"context"
	"net/url"
	"strconv"

	"prop-server/api"
	"prop-server/models"

	log "github.com/sirupsen/logrus"
)

const (
	REVERSE_ENDPOINT = "/reverse"
	DEFAULT_BASE_URL = "https://nominatim.openstreetmap.org"
	REVERSE_ZOOM     = "18"
)

type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, c models.Coordinate) models.Place
}

type reverseResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
	} `json:"address"`
}

// Client talks to a Nominatim-compatible reverse geocoding service.
type Client struct {
	*api.HTTPClient
}

func NewClient(httpClient *api.HTTPClient) *Client {
	return &Client{HTTPClient: httpClient}
}

// ReverseGeocode never fails: any problem yields a Place with both fields nil.
func (c *Client) ReverseGeocode(ctx context.Context, coord models.Coordinate) models.Place {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	q.Set("zoom", REVERSE_ZOOM)
	q.Set("addressdetails", "1")

	var resp reverseResponse
	if err := c.Request(ctx, "GET", REVERSE_ENDPOINT+"?"+q.Encode(), nil, nil, &resp); err != nil {
		log.Warnf("[GeocodingClient] Reverse geocoding %s failed: %v", coord, err)
		return models.Place{}
	}

	place := models.Place{}
	for _, city := range []string{resp.Address.City, resp.Address.Town, resp.Address.Village} {
		if city != "" {
			place.City = &city
			break
		}
	}
	if resp.Address.State != "" {
		state := resp.Address.State
		place.State = &state
	}
	return place
}
