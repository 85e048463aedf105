package menu

import (
	"time"

	"lunchlink/internal/models"
)

// WeekdaysOnly is the strip length when a tenant publishes no weekend menus
const WeekdaysOnly = 5

// FullWeek is the strip length when weekend menus exist
const FullWeek = 7

// WeekStart returns the Monday of the ISO week containing now, offset by
// weekOffset weeks. The time component is truncated to midnight in now's
// location.
func WeekStart(now time.Time, weekOffset int) time.Time {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week it ends
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, 1-weekday+7*weekOffset)
}

// WeekDates returns the date keys for the navigated week strip, Monday
// first. The strip spans Monday..Friday unless the tenant has weekend
// menus in that week, in which case it spans the full seven days.
func WeekDates(now time.Time, weekOffset int, menus []models.DailyMenu) []string {
	start := WeekStart(now, weekOffset)

	days := WeekdaysOnly
	if hasWeekendMenu(start, menus) {
		days = FullWeek
	}

	dates := make([]string, days)
	for i := 0; i < days; i++ {
		dates[i] = start.AddDate(0, 0, i).Format(models.MenuDateFormat)
	}
	return dates
}

// hasWeekendMenu reports whether a menu exists on the Saturday or Sunday
// of the week starting at monday
func hasWeekendMenu(monday time.Time, menus []models.DailyMenu) bool {
	saturday := monday.AddDate(0, 0, 5).Format(models.MenuDateFormat)
	sunday := monday.AddDate(0, 0, 6).Format(models.MenuDateFormat)
	for _, m := range menus {
		if m.Date == saturday || m.Date == sunday {
			return true
		}
	}
	return false
}
