package listings

import (
	"context"
	"net/url"

	"prop-server/models"
)

// ListingAPI defines the interface for interacting with the Listing Repository.
type ListingAPI interface {
	Search(ctx context.Context, query url.Values) (*models.ListingPage, error)
	Featured(ctx context.Context) ([]models.Listing, error)
	Premium(ctx context.Context) ([]models.Listing, error)
	Recent(ctx context.Context) ([]models.Listing, error)
	RecentByListingType(ctx context.Context, listingType models.ListingType) ([]models.Listing, error)
	RecentByPropertyType(ctx context.Context, propertyType models.PropertyType) ([]models.Listing, error)
	Sold(ctx context.Context) ([]models.Listing, error)
	Get(ctx context.Context, id int64) (*models.Listing, error)
	Similar(ctx context.Context, city string, propertyType models.PropertyType) ([]models.Listing, error)

	CreateInquiry(ctx context.Context, req models.InquiryRequest) (*models.WriteResult, error)
	RegisterUser(ctx context.Context, req models.UserRegistrationRequest) (*models.WriteResult, error)
	RegisterAgent(ctx context.Context, req models.AgentRegistrationRequest) (*models.WriteResult, error)
}
