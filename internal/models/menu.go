package models

import (
	"encoding/json"
	"time"
)

// MenuDateFormat is the date key format used for daily menus
const MenuDateFormat = "2006-01-02"

// DailyMenu represents the published menu for a single date.
// At most one menu exists per (date, company); the item list is stored
// as a JSON snapshot so catalog edits never rewrite published menus.
type DailyMenu struct {
	ID           string `gorm:"primary_key" json:"id"`
	Date         string `json:"date"` // YYYY-MM-DD
	ItemsJSON    string `gorm:"type:text" json:"-"`
	Notes        string `json:"notes,omitempty"`
	DepartmentID string `json:"departmentId,omitempty"`
	CompanyID    string `json:"companyId,omitempty"`
	// Transient field (ignored by GORM)
	Items     []MenuItem `gorm:"-" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TableName sets the table name for DailyMenu
func (DailyMenu) TableName() string {
	return "daily_menus"
}

// GetItems returns the deserialized menu items
func (m *DailyMenu) GetItems() ([]MenuItem, error) {
	if len(m.Items) > 0 {
		return m.Items, nil
	}
	var items []MenuItem
	if m.ItemsJSON == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(m.ItemsJSON), &items); err != nil {
		return nil, err
	}
	m.Items = items
	return items, nil
}

// SetItems serializes the menu items for storage
func (m *DailyMenu) SetItems(items []MenuItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.ItemsJSON = string(data)
	m.Items = items
	return nil
}

// ItemByID returns the menu item with the given id, if present
func (m *DailyMenu) ItemByID(id string) (MenuItem, bool) {
	items, err := m.GetItems()
	if err != nil {
		return MenuItem{}, false
	}
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

// MenuTemplate represents a named, reusable menu snapshot distinct from
// any specific day's live menu
type MenuTemplate struct {
	ID        string `gorm:"primary_key" json:"id"`
	Name      string `json:"name"`
	ItemsJSON string `gorm:"type:text" json:"-"`
	Notes     string `json:"notes,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
	IsShared  bool   `json:"isShared"`
	CompanyID string `json:"companyId,omitempty"`
	// Transient field (ignored by GORM)
	Items     []MenuItem `gorm:"-" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TableName sets the table name for MenuTemplate
func (MenuTemplate) TableName() string {
	return "menu_templates"
}

// GetItems returns the deserialized template items
func (t *MenuTemplate) GetItems() ([]MenuItem, error) {
	if len(t.Items) > 0 {
		return t.Items, nil
	}
	var items []MenuItem
	if t.ItemsJSON == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(t.ItemsJSON), &items); err != nil {
		return nil, err
	}
	t.Items = items
	return items, nil
}

// SetItems serializes the template items for storage
func (t *MenuTemplate) SetItems(items []MenuItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	t.ItemsJSON = string(data)
	t.Items = items
	return nil
}
