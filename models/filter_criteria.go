package models

import (
	"net/url"
	"strconv"
)

// Tristate is a boolean constraint that may also be unset.
type Tristate string

const (
	TristateAny   Tristate = "any"
	TristateTrue  Tristate = "true"
	TristateFalse Tristate = "false"
)

// ParseTristate maps anything other than "true"/"false" to TristateAny.
func ParseTristate(s string) Tristate {
	if b, err := strconv.ParseBool(s); err == nil {
		return TristateOf(b)
	}
	return TristateAny
}

func TristateOf(b bool) Tristate {
	if b {
		return TristateTrue
	}
	return TristateFalse
}

// Query parameter names shared by the repository query and the shareable URL.
const (
	STATE_QUERY_ARG             = "state"
	CITY_QUERY_ARG              = "city"
	PINCODE_QUERY_ARG           = "pincode"
	PROPERTY_TYPE_QUERY_ARG     = "propertyType"
	LISTING_TYPE_QUERY_ARG      = "listingType"
	MIN_PRICE_QUERY_ARG         = "minPrice"
	MAX_PRICE_QUERY_ARG         = "maxPrice"
	BEDROOMS_QUERY_ARG          = "bedrooms"
	PARKING_AVAILABLE_QUERY_ARG = "parkingAvailable"
	PARKING_SPOTS_QUERY_ARG     = "parkingSpots"
	PAGE_QUERY_ARG              = "page"
	SIZE_QUERY_ARG              = "size"
)

// FilterCriteria mirrors the repository's search arguments. Use zero-values to omit.
// Values are kept as the user typed them; the repository does the parsing.
type FilterCriteria struct {
	State            string   `json:"state,omitempty"`
	City             string   `json:"city,omitempty"`
	Pincode          string   `json:"pincode,omitempty"`
	PropertyType     string   `json:"propertyType,omitempty"`
	ListingType      string   `json:"listingType,omitempty"`
	MinPrice         string   `json:"minPrice,omitempty"`
	MaxPrice         string   `json:"maxPrice,omitempty"`
	Bedrooms         string   `json:"bedrooms,omitempty"`
	ParkingAvailable Tristate `json:"parkingAvailable,omitempty"`
	ParkingSpots     string   `json:"parkingSpots,omitempty"`
}

// IsEmpty reports whether no field constrains the search.
func (c FilterCriteria) IsEmpty() bool {
	return c.Normalized() == FilterCriteria{ParkingAvailable: TristateAny}
}

// Normalized returns c with an unset parking constraint spelled as TristateAny.
func (c FilterCriteria) Normalized() FilterCriteria {
	if c.ParkingAvailable != TristateTrue && c.ParkingAvailable != TristateFalse {
		c.ParkingAvailable = TristateAny
	}
	return c
}

func (c FilterCriteria) ToValues() url.Values {
	q := url.Values{}

	setIf(q, STATE_QUERY_ARG, c.State)
	setIf(q, CITY_QUERY_ARG, c.City)
	setIf(q, PINCODE_QUERY_ARG, c.Pincode)
	setIf(q, PROPERTY_TYPE_QUERY_ARG, c.PropertyType)
	setIf(q, LISTING_TYPE_QUERY_ARG, c.ListingType)
	setIf(q, MIN_PRICE_QUERY_ARG, c.MinPrice)
	setIf(q, MAX_PRICE_QUERY_ARG, c.MaxPrice)
	setIf(q, BEDROOMS_QUERY_ARG, c.Bedrooms)
	if c.ParkingAvailable == TristateTrue || c.ParkingAvailable == TristateFalse {
		q.Set(PARKING_AVAILABLE_QUERY_ARG, string(c.ParkingAvailable))
	}
	setIf(q, PARKING_SPOTS_QUERY_ARG, c.ParkingSpots)

	return q
}

// ParseFilterCriteria reads criteria back from query parameters written by ToValues.
func ParseFilterCriteria(vals url.Values) FilterCriteria {
	return FilterCriteria{
		State:            vals.Get(STATE_QUERY_ARG),
		City:             vals.Get(CITY_QUERY_ARG),
		Pincode:          vals.Get(PINCODE_QUERY_ARG),
		PropertyType:     vals.Get(PROPERTY_TYPE_QUERY_ARG),
		ListingType:      vals.Get(LISTING_TYPE_QUERY_ARG),
		MinPrice:         vals.Get(MIN_PRICE_QUERY_ARG),
		MaxPrice:         vals.Get(MAX_PRICE_QUERY_ARG),
		Bedrooms:         vals.Get(BEDROOMS_QUERY_ARG),
		ParkingAvailable: ParseTristate(vals.Get(PARKING_AVAILABLE_QUERY_ARG)),
		ParkingSpots:     vals.Get(PARKING_SPOTS_QUERY_ARG),
	}
}

// PageValues returns the pagination arguments for a repository query.
func PageValues(page, size int) url.Values {
	q := url.Values{}
	q.Set(PAGE_QUERY_ARG, itoa(page))
	q.Set(SIZE_QUERY_ARG, itoa(size))
	return q
}

// lightweight helpers
func itoa(i int) string { return strconv.Itoa(i) }

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
