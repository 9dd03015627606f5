package listings

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"prop-server/api"
	"prop-server/models"
	"prop-server/util"

	log "github.com/sirupsen/logrus"
)

// ListingApiClientMock serves an in-memory catalog for non-prod environments and tests.
type ListingApiClientMock struct {
	mu       sync.Mutex
	catalog  []models.Listing
	sold     []models.Listing
	failWith error

	Inquiries          []models.InquiryRequest
	UserRegistrations  []models.UserRegistrationRequest
	AgentRegistrations []models.AgentRegistrationRequest
	SearchQueries      []url.Values
}

// NewListingApiClientMock creates a new instance of ListingApiClientMock over catalog.
func NewListingApiClientMock(catalog []models.Listing) *ListingApiClientMock {
	return &ListingApiClientMock{catalog: catalog}
}

// NewListingApiClientMockFromFile loads the catalog from a JSON fixture.
func NewListingApiClientMockFromFile(path string) (*ListingApiClientMock, error) {
	catalog, err := util.ReadListingsFromJSON(path)
	if err != nil {
		log.Println("[ListingApiClientMock] Could not read listings fixture from json")
		return nil, err
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		util.PrintListingsPartially(catalog, 5)
	}
	return NewListingApiClientMock(catalog), nil
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (c *ListingApiClientMock) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failWith = err
}

// SetSold sets the collection returned by Sold.
func (c *ListingApiClientMock) SetSold(sold []models.Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sold = sold
}

func (c *ListingApiClientMock) Search(ctx context.Context, query url.Values) (*models.ListingPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SearchQueries = append(c.SearchQueries, query)
	if c.failWith != nil {
		return nil, c.failWith
	}

	criteria := models.ParseFilterCriteria(query)
	var matched []models.Listing
	for _, l := range c.catalog {
		if matchesCriteria(l, criteria) {
			matched = append(matched, l)
		}
	}

	page := &models.ListingPage{TotalElements: len(matched)}
	size, sizeErr := strconv.Atoi(query.Get(models.SIZE_QUERY_ARG))
	if sizeErr != nil || size <= 0 {
		page.Content = matched
		return page, nil
	}
	p, _ := strconv.Atoi(query.Get(models.PAGE_QUERY_ARG))
	start := p * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	page.Content = append([]models.Listing(nil), matched[start:end]...)
	return page, nil
}

func (c *ListingApiClientMock) Featured(ctx context.Context) ([]models.Listing, error) {
	return c.byTier(models.TierFeatured, models.TierPremium)
}

func (c *ListingApiClientMock) Premium(ctx context.Context) ([]models.Listing, error) {
	return c.byTier(models.TierPremium)
}

func (c *ListingApiClientMock) Recent(ctx context.Context) ([]models.Listing, error) {
	return c.filter(func(models.Listing) bool { return true })
}

func (c *ListingApiClientMock) RecentByListingType(ctx context.Context, listingType models.ListingType) ([]models.Listing, error) {
	return c.filter(func(l models.Listing) bool { return l.ListingType == listingType })
}

func (c *ListingApiClientMock) RecentByPropertyType(ctx context.Context, propertyType models.PropertyType) ([]models.Listing, error) {
	return c.filter(func(l models.Listing) bool { return l.PropertyType == propertyType })
}

func (c *ListingApiClientMock) Sold(ctx context.Context) ([]models.Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return nil, c.failWith
	}
	return append([]models.Listing(nil), c.sold...), nil
}

func (c *ListingApiClientMock) Get(ctx context.Context, id int64) (*models.Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return nil, c.failWith
	}
	for _, l := range c.catalog {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, &api.Error{Kind: api.ServerFailure, StatusCode: 404, Err: fmt.Errorf("listing %d not found", id)}
}

func (c *ListingApiClientMock) Similar(ctx context.Context, city string, propertyType models.PropertyType) ([]models.Listing, error) {
	return c.filter(func(l models.Listing) bool {
		return strings.EqualFold(l.City, city) && l.PropertyType == propertyType
	})
}

func (c *ListingApiClientMock) CreateInquiry(ctx context.Context, req models.InquiryRequest) (*models.WriteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return nil, c.failWith
	}
	c.Inquiries = append(c.Inquiries, req)
	return &models.WriteResult{Success: true}, nil
}

func (c *ListingApiClientMock) RegisterUser(ctx context.Context, req models.UserRegistrationRequest) (*models.WriteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return nil, c.failWith
	}
	c.UserRegistrations = append(c.UserRegistrations, req)
	id := strconv.Itoa(len(c.UserRegistrations))
	return &models.WriteResult{Success: true, Data: map[string]interface{}{"id": id}}, nil
}

func (c *ListingApiClientMock) RegisterAgent(ctx context.Context, req models.AgentRegistrationRequest) (*models.WriteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return nil, c.failWith
	}
	c.AgentRegistrations = append(c.AgentRegistrations, req)
	return &models.WriteResult{Success: true}, nil
}

func (c *ListingApiClientMock) byTier(tiers ...models.ListingTier) ([]models.Listing, error) {
	return c.filter(func(l models.Listing) bool {
		for _, t := range tiers {
			if l.Tier == t {
				return true
			}
		}
		return false
	})
}

func (c *ListingApiClientMock) filter(keep func(models.Listing) bool) ([]models.Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return nil, c.failWith
	}
	out := []models.Listing{}
	for _, l := range c.catalog {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

// matchesCriteria is a rough stand-in for the repository's own filtering.
func matchesCriteria(l models.Listing, c models.FilterCriteria) bool {
	if c.City != "" && !strings.EqualFold(l.City, c.City) {
		return false
	}
	if c.State != "" && !strings.EqualFold(l.State, c.State) {
		return false
	}
	if c.Pincode != "" && l.Pincode != c.Pincode {
		return false
	}
	if c.PropertyType != "" && string(l.PropertyType) != c.PropertyType {
		return false
	}
	if c.ListingType != "" && string(l.ListingType) != c.ListingType {
		return false
	}
	if v, err := strconv.ParseFloat(c.MinPrice, 64); err == nil && l.Price < v {
		return false
	}
	if v, err := strconv.ParseFloat(c.MaxPrice, 64); err == nil && l.Price > v {
		return false
	}
	if v, err := strconv.Atoi(c.Bedrooms); err == nil && l.Bedrooms != v {
		return false
	}
	if c.ParkingAvailable != models.TristateAny && c.ParkingAvailable != "" &&
		models.TristateOf(l.ParkingAvailable) != c.ParkingAvailable {
		return false
	}
	if v, err := strconv.Atoi(c.ParkingSpots); err == nil && l.ParkingSpots < v {
		return false
	}
	return true
}
