package store

import (
	"context"
	"time"

	"lunchlink/internal/models"
)

// MasterItems returns the catalog entries for a company
func (s *Store) MasterItems(companyID string) []models.MasterFoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.MasterFoodItem, 0, len(s.masterItems))
	for _, item := range s.masterItems {
		if item.CompanyID == companyID {
			items = append(items, item)
		}
	}
	return items
}

// MasterItemByID returns a catalog entry by id
func (s *Store) MasterItemByID(id string) (models.MasterFoodItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.masterItems[id]
	return item, ok
}

// SaveMasterItem upserts a catalog entry
func (s *Store) SaveMasterItem(ctx context.Context, item models.MasterFoodItem) models.MasterFoodItem {
	s.mu.Lock()
	if item.ID == "" {
		item.ID = newID("item")
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = time.Now()
	s.masterItems[item.ID] = item
	s.mu.Unlock()

	logWriteErr("master item", item.ID, s.backend.SaveMasterItem(ctx, &item))
	return item
}

// DeleteMasterItem removes a catalog entry. Menus that already snapshot
// the item keep their copies.
func (s *Store) DeleteMasterItem(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.masterItems, id)
	s.mu.Unlock()

	logWriteErr("master item", id, s.backend.DeleteMasterItem(ctx, id))
}
