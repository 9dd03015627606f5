package listings

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"prop-server/api"
	"prop-server/models"
)

const (
	PROPERTIES_ENDPOINT       = "/properties"
	FEATURED_ENDPOINT         = "/properties/featured"
	PREMIUM_ENDPOINT          = "/properties/premium"
	RECENT_ENDPOINT           = "/properties/recent"
	RECENT_PROPERTY_ENDPOINT  = "/properties/recent/property/"
	SOLD_ENDPOINT             = "/agent/properties/sold"
	INQUIRIES_ENDPOINT        = "/inquiries"
	USER_REGISTER_ENDPOINT    = "/auth/user/register"
	AGENT_REGISTER_ENDPOINT   = "/admin/agents"
	NGROK_SKIP_WARNING_HEADER = "ngrok-skip-browser-warning"
)

// ListingApiClient embeds the common HTTPClient
type ListingApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
}

// NewListingApiClient creates a new instance of ListingApiClient
func NewListingApiClient(httpClient *api.HTTPClient) *ListingApiClient {
	// The repository is served behind an ngrok tunnel which otherwise answers with an HTML interstitial.
	httpClient.Headers[NGROK_SKIP_WARNING_HEADER] = "true"
	return &ListingApiClient{
		HTTPClient: httpClient,
	}
}

// Search runs a filtered, paged query. The answer may be a bare array or a page envelope.
func (c *ListingApiClient) Search(ctx context.Context, query url.Values) (*models.ListingPage, error) {
	var response models.ListingPage
	endpoint := PROPERTIES_ENDPOINT
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *ListingApiClient) Featured(ctx context.Context) ([]models.Listing, error) {
	return c.list(ctx, FEATURED_ENDPOINT)
}

func (c *ListingApiClient) Premium(ctx context.Context) ([]models.Listing, error) {
	return c.list(ctx, PREMIUM_ENDPOINT)
}

func (c *ListingApiClient) Recent(ctx context.Context) ([]models.Listing, error) {
	return c.list(ctx, RECENT_ENDPOINT)
}

func (c *ListingApiClient) RecentByListingType(ctx context.Context, listingType models.ListingType) ([]models.Listing, error) {
	return c.list(ctx, RECENT_ENDPOINT+"/"+url.PathEscape(string(listingType)))
}

func (c *ListingApiClient) RecentByPropertyType(ctx context.Context, propertyType models.PropertyType) ([]models.Listing, error) {
	return c.list(ctx, RECENT_PROPERTY_ENDPOINT+url.PathEscape(string(propertyType)))
}

func (c *ListingApiClient) Sold(ctx context.Context) ([]models.Listing, error) {
	return c.list(ctx, SOLD_ENDPOINT)
}

// Get retrieves a single listing given its id
func (c *ListingApiClient) Get(ctx context.Context, id int64) (*models.Listing, error) {
	var response models.Listing
	err := c.Request(ctx, http.MethodGet, PROPERTIES_ENDPOINT+"/"+strconv.FormatInt(id, 10), nil, nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Similar returns listings in the same city with the same property type.
func (c *ListingApiClient) Similar(ctx context.Context, city string, propertyType models.PropertyType) ([]models.Listing, error) {
	q := url.Values{}
	q.Set(models.CITY_QUERY_ARG, city)
	q.Set(models.PROPERTY_TYPE_QUERY_ARG, string(propertyType))
	page, err := c.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}

func (c *ListingApiClient) CreateInquiry(ctx context.Context, req models.InquiryRequest) (*models.WriteResult, error) {
	return c.PostForResult(ctx, INQUIRIES_ENDPOINT, req)
}

func (c *ListingApiClient) RegisterUser(ctx context.Context, req models.UserRegistrationRequest) (*models.WriteResult, error) {
	return c.PostForResult(ctx, USER_REGISTER_ENDPOINT, req)
}

func (c *ListingApiClient) RegisterAgent(ctx context.Context, req models.AgentRegistrationRequest) (*models.WriteResult, error) {
	return c.PostForResult(ctx, AGENT_REGISTER_ENDPOINT, req)
}

// list decodes the bare-array collection endpoints.
func (c *ListingApiClient) list(ctx context.Context, endpoint string) ([]models.Listing, error) {
	var response []models.Listing
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, nil, &response); err != nil {
		return nil, err
	}
	return response, nil
}
