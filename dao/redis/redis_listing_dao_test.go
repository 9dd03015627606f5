package redis

import (
	"context"
	"encoding/json"
	"testing"

	"prop-server/db"
	"prop-server/models"
)

func fp(v float64) *float64 { return &v }

func TestRedisListingDAO_UpsertListing_Success(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisListingDAO(mockClient)

	testListing := models.Listing{
		ID:        42,
		Title:     "Lake View Villa",
		Latitude:  fp(17.385),
		Longitude: fp(78.4867),
	}

	// Act
	err := dao.UpsertListing(testListing)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	storedValue, err := mockClient.Get("listings_geo_place_v1:42")
	if err != nil {
		t.Fatalf("Expected data to be stored, got error: %v", err)
	}

	var stored models.Listing
	if err := json.Unmarshal([]byte(storedValue), &stored); err != nil {
		t.Fatalf("Failed to unmarshal stored listing data: %v", err)
	}
	if stored.Title != testListing.Title {
		t.Errorf("Expected title %s, got %s", testListing.Title, stored.Title)
	}
}

func TestRedisListingDAO_UpsertListing_SkipsMissingCoordinates(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisListingDAO(mockClient)

	if err := dao.UpsertListing(models.Listing{ID: 7}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := mockClient.Get("listings_geo_place_v1:7"); err == nil {
		t.Errorf("Expected listing without coordinates not to be indexed")
	}
}

func TestRedisListingDAO_GetNearbyListings_Success(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisListingDAO(mockClient)

	listings := []models.Listing{
		{ID: 1, Latitude: fp(17.44), Longitude: fp(78.35)},
		{ID: 2, Latitude: fp(17.39), Longitude: fp(78.49)},
		{ID: 3, Latitude: fp(19.076), Longitude: fp(72.8777)},
	}
	for _, l := range listings {
		if err := dao.UpsertListing(l); err != nil {
			t.Fatalf("UpsertListing failed: %v", err)
		}
	}

	// Act
	nearby, err := dao.GetNearbyListings(17.385, 78.4867, 50)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(nearby) != 2 {
		t.Fatalf("Expected 2 listings, got %d", len(nearby))
	}
	if nearby[0].ID != 2 || nearby[1].ID != 1 {
		t.Errorf("Expected nearest first [2 1], got [%d %d]", nearby[0].ID, nearby[1].ID)
	}
}

func TestRedisListingDAO_Sections(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisListingDAO(mockClient)

	// Cache miss
	got, err := dao.GetSection("featured")
	if err != nil || got != nil {
		t.Fatalf("Expected nil, nil on miss, got %v, %v", got, err)
	}

	section := []models.Listing{{ID: 1, Tier: models.TierPremium}, {ID: 2}}
	if err := dao.SetSection("featured", section); err != nil {
		t.Fatalf("SetSection failed: %v", err)
	}
	if err := dao.SetSection("recent", nil); err != nil {
		t.Fatalf("SetSection failed: %v", err)
	}

	got, err = dao.GetSection("featured")
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if len(got) != 2 || !got[0].IsPremium() {
		t.Errorf("Unexpected section content: %+v", got)
	}

	names, err := dao.ListSectionNames()
	if err != nil {
		t.Fatalf("ListSectionNames failed: %v", err)
	}
	if len(names) != 2 || names[0] != "featured" || names[1] != "recent" {
		t.Errorf("Unexpected section names: %v", names)
	}

	if err := dao.DeleteSection("featured"); err != nil {
		t.Fatalf("DeleteSection failed: %v", err)
	}
	got, _ = dao.GetSection("featured")
	if got != nil {
		t.Errorf("Expected section to be deleted")
	}
}

func TestRedisListingDAO_GetSection_Malformed(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisListingDAO(mockClient)
	mockClient.Set("listing_section_v1:premium", "{not json")

	if _, err := dao.GetSection("premium"); err == nil {
		t.Errorf("Expected unmarshal error")
	}
}
