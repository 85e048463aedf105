package menu

import "lunchlink/internal/models"

// Summary describes a user's current selection on a day's menu
type Summary struct {
	ItemCount     int      `json:"itemCount"`
	TotalCalories int      `json:"totalCalories"`
	DietaryTags   []string `json:"dietaryTags"`
}

// Summarize computes the selection summary: item count, calorie total,
// and the deduplicated union of dietary tags in first-seen order.
func Summarize(items []models.MenuItem) Summary {
	summary := Summary{DietaryTags: []string{}}
	seen := make(map[string]bool)

	for _, item := range items {
		summary.ItemCount++
		summary.TotalCalories += item.Calories
		for _, tag := range item.DietaryTags {
			if !seen[tag] {
				seen[tag] = true
				summary.DietaryTags = append(summary.DietaryTags, tag)
			}
		}
	}
	return summary
}

// SelectItems resolves the selected ids against a menu's item snapshots,
// silently skipping ids that no longer exist on the menu
func SelectItems(m *models.DailyMenu, ids []string) []models.MenuItem {
	selected := make([]models.MenuItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := m.ItemByID(id); ok {
			selected = append(selected, item)
		}
	}
	return selected
}
