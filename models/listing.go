package models

import "fmt"

type PropertyType string

const (
	PropertyTypeResidential    PropertyType = "RESIDENTIAL"
	PropertyTypeCommercial     PropertyType = "COMMERCIAL"
	PropertyTypeNewDevelopment PropertyType = "NEW_DEVELOPMENT"
	PropertyTypeAgriculture    PropertyType = "AGRICULTURE"
)

type ListingType string

const (
	ListingTypeSale   ListingType = "SALE"
	ListingTypeResale ListingType = "RESALE"
	ListingTypeRent   ListingType = "RENT"
)

// PropertyStatus is the availability of a listing.
type PropertyStatus string

const (
	StatusAvailable  PropertyStatus = "AVAILABLE"
	StatusSold       PropertyStatus = "SOLD"
	StatusUnderOffer PropertyStatus = "UNDER_OFFER"
	StatusRented     PropertyStatus = "RENTED"
)

// ListingTier is the promotional classification of a listing.
// The repository calls it "listingStatus".
type ListingTier string

const (
	TierStandard ListingTier = "STANDARD"
	TierFeatured ListingTier = "FEATURED"
	TierPremium  ListingTier = "PREMIUM"
	TierRecent   ListingTier = "RECENT"
)

// ParsePropertyType accepts the upper-case repository value.
func ParsePropertyType(s string) (PropertyType, error) {
	switch t := PropertyType(s); t {
	case PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeNewDevelopment, PropertyTypeAgriculture:
		return t, nil
	}
	return "", fmt.Errorf("invalid property type: %s", s)
}

// ParseListingType accepts the upper-case repository value.
func ParseListingType(s string) (ListingType, error) {
	switch t := ListingType(s); t {
	case ListingTypeSale, ListingTypeResale, ListingTypeRent:
		return t, nil
	}
	return "", fmt.Errorf("invalid listing type: %s", s)
}

type ListingImage struct {
	ID           int64  `json:"id"`
	ImageURL     string `json:"imageUrl"`
	AltText      string `json:"altText"`
	DisplayOrder int    `json:"displayOrder"`
	IsPrimary    bool   `json:"isPrimary"`
}

// Listing is a single property record returned by the repository.
type Listing struct {
	ID           int64        `json:"id"`
	Title        string       `json:"propertyTitle"`
	Price        float64      `json:"price"`
	PropertyType PropertyType `json:"propertyType"`
	ListingType  ListingType  `json:"listingType"`
	Description  string       `json:"propertyDescription,omitempty"`

	FullAddress string `json:"fullAddress"`
	Locality    string `json:"locality"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`

	Bedrooms         int     `json:"bedrooms"`
	Bathrooms        int     `json:"bathrooms"`
	Area             float64 `json:"area"`
	CarpetArea       float64 `json:"carpetArea,omitempty"`
	BuiltUpArea      float64 `json:"builtUpArea,omitempty"`
	Floors           int     `json:"floors,omitempty"`
	TotalFloors      int     `json:"totalFloors,omitempty"`
	PropertyAge      int     `json:"propertyAge,omitempty"`
	Furnishing       string  `json:"furnishing,omitempty"`
	Amenities        string  `json:"amenities,omitempty"`
	ParkingAvailable bool    `json:"parkingAvailable"`
	ParkingSpots     int     `json:"parkingSpots"`

	Images           []ListingImage `json:"propertyImages,omitempty"`
	YoutubeVideoURL  string         `json:"youtubeVideoUrl,omitempty"`
	InstagramProfile string         `json:"instagramProfile,omitempty"`

	ContactName  string `json:"contactName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`

	Status PropertyStatus `json:"status"`
	Tier   ListingTier    `json:"listingStatus"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	ViewCount  int    `json:"viewCount"`
	IsVerified bool   `json:"isVerified"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Coordinate returns the listing position, or nil when either axis is missing.
func (l *Listing) Coordinate() *Coordinate {
	if l.Latitude == nil || l.Longitude == nil {
		return nil
	}
	return &Coordinate{Latitude: *l.Latitude, Longitude: *l.Longitude}
}

func (l *Listing) IsPremium() bool {
	return l.Tier == TierPremium
}

func (l *Listing) ToString() string {
	return fmt.Sprintf("Listing(id=%d, title=%s, city=%s, tier=%s, status=%s)",
		l.ID, l.Title, l.City, l.Tier, l.Status)
}
