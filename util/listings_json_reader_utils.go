package util

import (
	"encoding/json"
	"fmt"
	"os"

	"prop-server/models"
)

// ReadListingsFromJSON loads a listing collection from JSON on disk, either
// a bare array or a page envelope.
func ReadListingsFromJSON(filePath string) ([]models.Listing, error) {
	page, err := ReadListingPageFromJSON(filePath)
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}

// ReadListingPageFromJSON loads a ListingPage (bare array or envelope) from JSON on disk.
func ReadListingPageFromJSON(filePath string) (*models.ListingPage, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var page models.ListingPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ListingPage: %w", err)
	}
	return &page, nil
}

// PrintListingsPartially prints key fields of the first few listings.
func PrintListingsPartially(listings []models.Listing, limit int) {
	fmt.Printf("Listings: %d\n", len(listings))
	for i, l := range listings {
		if i >= limit {
			fmt.Printf("... %d more\n", len(listings)-limit)
			return
		}
		fmt.Println(l.ToString())
	}
}
