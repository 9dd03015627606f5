// models/listing_page.go
package models

import (
	"bytes"
	"encoding/json"
)

// ListingPage is one page of repository search results.
type ListingPage struct {
	Content       []Listing `json:"content"`
	TotalElements int       `json:"totalElements"`
}

// UnmarshalJSON accepts either the paged envelope or a bare array.
// A bare array reports its own length as the total.
func (p *ListingPage) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var content []Listing
		if err := json.Unmarshal(trimmed, &content); err != nil {
			return err
		}
		p.Content = content
		p.TotalElements = len(content)
		return nil
	}

	// Alias avoids recursing into this method.
	type Alias ListingPage
	aux := (*Alias)(p)
	if err := json.Unmarshal(trimmed, aux); err != nil {
		return err
	}
	if p.TotalElements == 0 && len(p.Content) > 0 {
		p.TotalElements = len(p.Content)
	}
	return nil
}
