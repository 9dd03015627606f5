package services

import (
	"context"
	"fmt"

	"prop-server/api/listings"
	"prop-server/models"

	log "github.com/sirupsen/logrus"
)

// SavedDAO persists the set of listing ids a session has saved.
type SavedDAO interface {
	Add(session string, id int64) error
	Remove(session string, id int64) error
	Contains(session string, id int64) (bool, error)
	IDs(session string) ([]int64, error)
	Clear(session string) error
}

type SavedService struct {
	dao        SavedDAO
	listingAPI listings.ListingAPI
}

func NewSavedService(dao SavedDAO, listingAPI listings.ListingAPI) *SavedService {
	return &SavedService{dao: dao, listingAPI: listingAPI}
}

// Toggle flips whether id is saved and reports the new state.
func (ss *SavedService) Toggle(ctx context.Context, session string, id int64) (bool, error) {
	saved, err := ss.dao.Contains(session, id)
	if err != nil {
		return false, fmt.Errorf("failed to read saved listings: %w", err)
	}
	if saved {
		if err := ss.dao.Remove(session, id); err != nil {
			return true, fmt.Errorf("failed to unsave listing %d: %w", id, err)
		}
		log.Debugf("[SavedService] %s unsaved %d", session, id)
		return false, nil
	}
	if err := ss.dao.Add(session, id); err != nil {
		return false, fmt.Errorf("failed to save listing %d: %w", id, err)
	}
	log.Debugf("[SavedService] %s saved %d", session, id)
	return true, nil
}

func (ss *SavedService) IsSaved(session string, id int64) (bool, error) {
	return ss.dao.Contains(session, id)
}

func (ss *SavedService) IDs(session string) ([]int64, error) {
	return ss.dao.IDs(session)
}

func (ss *SavedService) Clear(session string) error {
	return ss.dao.Clear(session)
}

// Resolve returns the saved listings found in the recent collection, in
// repository order. Saved ids the collection no longer carries are skipped.
func (ss *SavedService) Resolve(ctx context.Context, session string) ([]models.Listing, error) {
	ids, err := ss.dao.IDs(session)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved listings: %w", err)
	}
	if len(ids) == 0 {
		return []models.Listing{}, nil
	}

	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	recent, err := ss.listingAPI.Recent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	out := []models.Listing{}
	for _, l := range recent {
		if _, ok := wanted[l.ID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}
