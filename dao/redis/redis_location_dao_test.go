package redis

import (
	"context"
	"testing"

	"prop-server/db"
	"prop-server/models"
)

func TestRedisLocationDAO_RoundTrip(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisLocationDAO(mockClient)

	// Miss
	c, err := dao.GetLocation("s1")
	if err != nil || c != nil {
		t.Fatalf("Expected nil, nil on miss, got %v, %v", c, err)
	}

	// Act
	want := models.Coordinate{Latitude: 17.385, Longitude: 78.4867}
	if err := dao.SetLocation("s1", want); err != nil {
		t.Fatalf("SetLocation failed: %v", err)
	}
	got, err := dao.GetLocation("s1")

	// Assert
	if err != nil {
		t.Fatalf("GetLocation failed: %v", err)
	}
	if got == nil || *got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	raw, _ := mockClient.Get("user_location_v1:s1")
	if raw != `{"latitude":17.385,"longitude":78.4867}` {
		t.Errorf("Unexpected stored payload %s", raw)
	}

	other, _ := dao.GetLocation("s2")
	if other != nil {
		t.Errorf("Expected locations to be per session")
	}

	if err := dao.DeleteLocation("s1"); err != nil {
		t.Fatalf("DeleteLocation failed: %v", err)
	}
	got, _ = dao.GetLocation("s1")
	if got != nil {
		t.Errorf("Expected location to be deleted")
	}
}
