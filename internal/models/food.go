package models

import (
	"fmt"
	"time"
)

// FoodCategory represents the category slot a food item belongs to
type FoodCategory string

const (
	CategoryMain    FoodCategory = "main"
	CategorySoup    FoodCategory = "soup"
	CategorySalad   FoodCategory = "salad"
	CategoryDessert FoodCategory = "dessert"
	CategoryDrink   FoodCategory = "drink"
	CategorySide    FoodCategory = "side"
)

// FoodCategories lists the categories in the order kitchen views render them
var FoodCategories = []FoodCategory{
	CategoryMain,
	CategorySoup,
	CategorySalad,
	CategoryDessert,
	CategoryDrink,
	CategorySide,
}

// IsValid reports whether the category is one of the known categories
func (c FoodCategory) IsValid() bool {
	for _, cat := range FoodCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// MenuItem represents a dish placed on a daily menu or template.
// Items are snapshots: a daily menu keeps its own copy of each item so
// later catalog edits never change already-published menus.
type MenuItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    FoodCategory `json:"category"`
	Calories    int          `json:"calories"`
	DietaryTags []string     `json:"dietaryTags,omitempty"`
}

// MasterFoodItem represents an entry in the master food catalog
type MasterFoodItem struct {
	ID          string       `gorm:"primary_key" json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    FoodCategory `json:"category"`
	Calories    int          `json:"calories"`
	DietaryTags StringSlice  `gorm:"type:text" json:"dietaryTags,omitempty"`
	IsAvailable bool         `json:"isAvailable"`
	CompanyID   string       `json:"companyId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TableName sets the table name for MasterFoodItem
func (MasterFoodItem) TableName() string {
	return "master_food_items"
}

// MenuItem converts the catalog entry into a menu snapshot item
func (f *MasterFoodItem) MenuItem() MenuItem {
	return MenuItem{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Calories:    f.Calories,
		DietaryTags: append([]string(nil), f.DietaryTags...),
	}
}

// ValidateMasterFoodItem validates a catalog entry before it is saved
func ValidateMasterFoodItem(item *MasterFoodItem) error {
	if item.Name == "" {
		return fmt.Errorf("food item name is required")
	}
	if !item.Category.IsValid() {
		return fmt.Errorf("unknown food category %q", item.Category)
	}
	if item.Calories < 0 {
		return fmt.Errorf("food item calories must not be negative")
	}
	return nil
}
