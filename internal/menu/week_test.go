package menu

import (
	"testing"
	"time"

	"lunchlink/internal/models"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		offset int
		want   string
	}{
		{"wednesday maps to its monday", date(2025, time.March, 12, 9, 0), 0, "2025-03-10"},
		{"monday maps to itself", date(2025, time.March, 10, 9, 0), 0, "2025-03-10"},
		{"sunday belongs to the ending week", date(2025, time.March, 16, 9, 0), 0, "2025-03-10"},
		{"next week offset", date(2025, time.March, 12, 9, 0), 1, "2025-03-17"},
		{"previous week offset", date(2025, time.March, 12, 9, 0), -1, "2025-03-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.now, tt.offset).Format(models.MenuDateFormat)
			if got != tt.want {
				t.Errorf("WeekStart() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWeekDates_WeekdaysByDefault(t *testing.T) {
	now := date(2025, time.March, 12, 9, 0)
	dates := WeekDates(now, 0, nil)

	if len(dates) != WeekdaysOnly {
		t.Fatalf("WeekDates() returned %d dates, want %d", len(dates), WeekdaysOnly)
	}
	if dates[0] != "2025-03-10" {
		t.Errorf("strip starts at %s, want 2025-03-10", dates[0])
	}
	if dates[4] != "2025-03-14" {
		t.Errorf("strip ends at %s, want 2025-03-14", dates[4])
	}
}

func TestWeekDates_ExtendsWhenWeekendMenuExists(t *testing.T) {
	now := date(2025, time.March, 12, 9, 0)
	menus := []models.DailyMenu{
		{ID: "m1", Date: "2025-03-15"}, // Saturday of the viewed week
	}

	dates := WeekDates(now, 0, menus)
	if len(dates) != FullWeek {
		t.Fatalf("WeekDates() returned %d dates, want %d", len(dates), FullWeek)
	}
	if dates[6] != "2025-03-16" {
		t.Errorf("strip ends at %s, want 2025-03-16", dates[6])
	}

	// A weekend menu in a different week does not extend this strip
	other := []models.DailyMenu{{ID: "m2", Date: "2025-03-22"}}
	if got := WeekDates(now, 0, other); len(got) != WeekdaysOnly {
		t.Errorf("weekend menu outside the week extended the strip to %d days", len(got))
	}
}

func TestOrderingClosed(t *testing.T) {
	cutoff := "10:30"
	today := date(2025, time.March, 12, 10, 31)
	todayKey := "2025-03-12"

	tests := []struct {
		name string
		now  time.Time
		date string
		want bool
	}{
		{"today after cutoff is blocked", today, todayKey, true},
		{"today before cutoff is open", date(2025, time.March, 12, 10, 29), todayKey, false},
		{"today at cutoff exactly is open", date(2025, time.March, 12, 10, 30), todayKey, false},
		{"tomorrow is never blocked", today, "2025-03-13", false},
		{"yesterday is never blocked", today, "2025-03-11", false},
		{"far future is never blocked", date(2025, time.March, 12, 23, 59), "2025-04-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrderingClosed(tt.now, tt.date, cutoff); got != tt.want {
				t.Errorf("OrderingClosed(%s, %s) = %v, want %v", tt.now, tt.date, got, tt.want)
			}
		})
	}
}

func TestParseCutoff_Malformed(t *testing.T) {
	tests := []string{"", "25:00", "10:65", "banana", "10", "10:3a"}
	for _, raw := range tests {
		h, m := ParseCutoff(raw)
		if h != 10 || m != 30 {
			t.Errorf("ParseCutoff(%q) = %d:%d, want default 10:30", raw, h, m)
		}
	}

	h, m := ParseCutoff("09:15")
	if h != 9 || m != 15 {
		t.Errorf("ParseCutoff(\"09:15\") = %d:%d, want 9:15", h, m)
	}
}

func TestSummarize(t *testing.T) {
	items := []models.MenuItem{
		{ID: "a", Calories: 500, DietaryTags: []string{"vegan", "gluten-free"}},
		{ID: "b", Calories: 300, DietaryTags: []string{"vegan"}},
		{ID: "c", Calories: 50},
	}

	summary := Summarize(items)
	if summary.ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", summary.ItemCount)
	}
	if summary.TotalCalories != 850 {
		t.Errorf("TotalCalories = %d, want 850", summary.TotalCalories)
	}
	if len(summary.DietaryTags) != 2 {
		t.Fatalf("DietaryTags = %v, want deduplicated [vegan gluten-free]", summary.DietaryTags)
	}
	if summary.DietaryTags[0] != "vegan" || summary.DietaryTags[1] != "gluten-free" {
		t.Errorf("DietaryTags = %v, want first-seen order [vegan gluten-free]", summary.DietaryTags)
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	if summary.ItemCount != 0 || summary.TotalCalories != 0 {
		t.Errorf("empty selection summary = %+v, want zero values", summary)
	}
	if summary.DietaryTags == nil {
		t.Error("DietaryTags should be an empty slice, not nil")
	}
}

func TestSelectItems_SkipsUnknownIDs(t *testing.T) {
	m := &models.DailyMenu{ID: "menu-1", Date: "2025-03-12"}
	if err := m.SetItems([]models.MenuItem{
		{ID: "a", Name: "Soup", Calories: 120},
		{ID: "b", Name: "Salad", Calories: 80},
	}); err != nil {
		t.Fatalf("SetItems() error: %v", err)
	}

	selected := SelectItems(m, []string{"b", "missing", "a"})
	if len(selected) != 2 {
		t.Fatalf("SelectItems() returned %d items, want 2", len(selected))
	}
	if selected[0].ID != "b" || selected[1].ID != "a" {
		t.Errorf("SelectItems() order = [%s %s], want selection order [b a]", selected[0].ID, selected[1].ID)
	}
}
