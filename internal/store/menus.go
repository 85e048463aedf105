package store

import (
	"context"
	"fmt"
	"time"

	"lunchlink/internal/models"
)

// MenuForDate returns the menu published for a date and company, if any
func (s *Store) MenuForDate(date, companyID string) (models.DailyMenu, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menuForDateLocked(date, companyID)
}

func (s *Store) menuForDateLocked(date, companyID string) (models.DailyMenu, bool) {
	for _, m := range s.menus {
		if m.Date == date && m.CompanyID == companyID {
			return m, true
		}
	}
	return models.DailyMenu{}, false
}

// Menus returns every cached menu for a company
func (s *Store) Menus(companyID string) []models.DailyMenu {
	s.mu.RLock()
	defer s.mu.RUnlock()
	menus := make([]models.DailyMenu, 0, len(s.menus))
	for _, m := range s.menus {
		if m.CompanyID == companyID {
			menus = append(menus, m)
		}
	}
	return menus
}

// SaveMenu upserts a daily menu. At most one menu exists per (date,
// company): saving over an occupied date replaces that menu in place.
func (s *Store) SaveMenu(ctx context.Context, menu models.DailyMenu) models.DailyMenu {
	s.mu.Lock()
	if menu.ID == "" {
		menu.ID = newID("menu")
		menu.CreatedAt = time.Now()
	}
	menu.UpdatedAt = time.Now()
	if existing, ok := s.menuForDateLocked(menu.Date, menu.CompanyID); ok && existing.ID != menu.ID {
		delete(s.menus, existing.ID)
		menu.ID = existing.ID
	}
	s.menus[menu.ID] = menu
	s.mu.Unlock()

	logWriteErr("menu", menu.ID, s.backend.SaveMenu(ctx, &menu))
	return menu
}

// DeleteMenu removes a daily menu
func (s *Store) DeleteMenu(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.menus, id)
	s.mu.Unlock()

	logWriteErr("menu", id, s.backend.DeleteMenu(ctx, id))
}

// CopyMenuFromDate duplicates the source date's items and notes onto the
// target date. An existing target menu is replaced in place (keyed by
// date); otherwise a new menu is appended with a time-derived id. The
// source menu is never mutated.
func (s *Store) CopyMenuFromDate(ctx context.Context, srcDate, tgtDate, companyID string) (models.DailyMenu, error) {
	s.mu.Lock()
	src, ok := s.menuForDateLocked(srcDate, companyID)
	if !ok {
		s.mu.Unlock()
		return models.DailyMenu{}, fmt.Errorf("no menu exists for %s", srcDate)
	}
	items, err := src.GetItems()
	if err != nil {
		s.mu.Unlock()
		return models.DailyMenu{}, fmt.Errorf("decode menu items for %s: %w", srcDate, err)
	}
	menu := s.placeSnapshotLocked(tgtDate, companyID, items, src.Notes)
	s.mu.Unlock()

	logWriteErr("menu", menu.ID, s.backend.SaveMenu(ctx, &menu))
	return menu, nil
}

// ApplyTemplate duplicates a template's items and notes onto the target
// date with the same replace-or-append semantics as CopyMenuFromDate
func (s *Store) ApplyTemplate(ctx context.Context, templateID, tgtDate, companyID string) (models.DailyMenu, error) {
	s.mu.Lock()
	tpl, ok := s.templates[templateID]
	if !ok {
		s.mu.Unlock()
		return models.DailyMenu{}, fmt.Errorf("template %s not found", templateID)
	}
	items, err := tpl.GetItems()
	if err != nil {
		s.mu.Unlock()
		return models.DailyMenu{}, fmt.Errorf("decode template items for %s: %w", templateID, err)
	}
	menu := s.placeSnapshotLocked(tgtDate, companyID, items, tpl.Notes)
	s.mu.Unlock()

	logWriteErr("menu", menu.ID, s.backend.SaveMenu(ctx, &menu))
	return menu, nil
}

// placeSnapshotLocked writes an item/notes snapshot onto a date, reusing
// the existing menu's identity when the date is already occupied. The
// caller holds the write lock.
func (s *Store) placeSnapshotLocked(date, companyID string, items []models.MenuItem, notes string) models.DailyMenu {
	cloned := append([]models.MenuItem(nil), items...)

	menu, ok := s.menuForDateLocked(date, companyID)
	if !ok {
		menu = models.DailyMenu{
			ID:        newID("menu"),
			Date:      date,
			CompanyID: companyID,
			CreatedAt: time.Now(),
		}
	}
	menu.Notes = notes
	menu.UpdatedAt = time.Now()
	// SetItems only fails on unmarshalable values; MenuItem is plain data
	_ = menu.SetItems(cloned)
	s.menus[menu.ID] = menu
	return menu
}

// Templates returns the templates visible to a creator: their own plus
// any shared ones
func (s *Store) Templates(createdBy string) []models.MenuTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	templates := make([]models.MenuTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		if t.IsShared || t.CreatedBy == createdBy {
			templates = append(templates, t)
		}
	}
	return templates
}

// SaveTemplate upserts a reusable menu template
func (s *Store) SaveTemplate(ctx context.Context, template models.MenuTemplate) models.MenuTemplate {
	s.mu.Lock()
	if template.ID == "" {
		template.ID = newID("template")
		template.CreatedAt = time.Now()
	}
	template.UpdatedAt = time.Now()
	s.templates[template.ID] = template
	s.mu.Unlock()

	logWriteErr("template", template.ID, s.backend.SaveTemplate(ctx, &template))
	return template
}

// DeleteTemplate removes a template
func (s *Store) DeleteTemplate(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.templates, id)
	s.mu.Unlock()

	logWriteErr("template", id, s.backend.DeleteTemplate(ctx, id))
}
