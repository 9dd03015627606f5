// Package ranking orders listings by proximity to a user.
//
// Listings within the radius come back nearest first. When none qualify the
// whole input is returned with PREMIUM listings promoted, so a section is
// never emptied just because the user is far from every listing.
package ranking

import (
	"sort"

	"prop-server/distance"
	"prop-server/models"
)

const DEFAULT_RADIUS_KM = 50.0

type Options struct {
	// RadiusKm bounds the nearby set. Zero means DEFAULT_RADIUS_KM.
	RadiusKm float64
	// ExcludeSold drops SOLD listings before ranking.
	ExcludeSold bool
}

// Ranked is a listing with the distance it was ranked by.
type Ranked struct {
	Listing models.Listing `json:"listing"`
	// DistanceKm is nil when there was no user coordinate or the listing has none.
	DistanceKm *float64 `json:"distanceKm,omitempty"`
	// Fallback is set when no listing was within the radius.
	Fallback bool `json:"fallback,omitempty"`
}

// Rank returns listings ordered for a user at user. The input is never modified.
func Rank(listings []models.Listing, user *models.Coordinate, opts Options) []models.Listing {
	ranked := RankWithDistance(listings, user, opts)
	out := make([]models.Listing, len(ranked))
	for i, r := range ranked {
		out[i] = r.Listing
	}
	return out
}

// RankWithDistance is Rank, keeping the computed distances.
func RankWithDistance(listings []models.Listing, user *models.Coordinate, opts Options) []Ranked {
	if user == nil {
		out := make([]Ranked, len(listings))
		for i, l := range listings {
			out[i] = Ranked{Listing: l}
		}
		return out
	}

	radius := opts.RadiusKm
	if radius <= 0 {
		radius = DEFAULT_RADIUS_KM
	}

	candidates := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if opts.ExcludeSold && l.Status == models.StatusSold {
			continue
		}
		candidates = append(candidates, l)
	}

	nearby := make([]Ranked, 0, len(candidates))
	for _, l := range candidates {
		c := l.Coordinate()
		if c == nil {
			continue
		}
		d := distance.HaversineKm(*user, *c)
		if d <= radius {
			nearby = append(nearby, Ranked{Listing: l, DistanceKm: &d})
		}
	}

	if len(nearby) > 0 {
		sort.SliceStable(nearby, func(i, j int) bool {
			return *nearby[i].DistanceKm < *nearby[j].DistanceKm
		})
		return nearby
	}

	fallback := PremiumFirst(candidates)
	out := make([]Ranked, len(fallback))
	for i, l := range fallback {
		r := Ranked{Listing: l, Fallback: true}
		if c := l.Coordinate(); c != nil {
			d := distance.HaversineKm(*user, *c)
			r.DistanceKm = &d
		}
		out[i] = r
	}
	return out
}

// PremiumFirst returns a copy of listings with PREMIUM entries moved to the
// front. Relative order inside each group is kept.
func PremiumFirst(listings []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.IsPremium() {
			out = append(out, l)
		}
	}
	for _, l := range listings {
		if !l.IsPremium() {
			out = append(out, l)
		}
	}
	return out
}

// Cap truncates items to at most n entries without copying. A negative n
// means no cap.
func Cap[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
