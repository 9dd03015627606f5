package search

import (
	"sort"
	"strings"

	"prop-server/models"
)

type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
	SortViews     SortMode = "views"
)

// ParseSortMode maps unknown or empty values to SortNewest.
func ParseSortMode(s string) SortMode {
	switch m := SortMode(s); m {
	case SortPriceLow, SortPriceHigh, SortViews:
		return m
	}
	return SortNewest
}

// MatchesText reports whether query occurs, case-insensitively, in the
// title, locality, city or full address of l. An empty query matches all.
func MatchesText(l models.Listing, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{l.Title, l.Locality, l.City, l.FullAddress} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// View filters one repository page by query and orders it by mode.
// The page itself is left untouched.
func View(page []models.Listing, query string, mode SortMode) []models.Listing {
	out := make([]models.Listing, 0, len(page))
	for _, l := range page {
		if MatchesText(l, query) {
			out = append(out, l)
		}
	}

	switch mode {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortViews:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ViewCount > out[j].ViewCount })
	}
	return out
}
