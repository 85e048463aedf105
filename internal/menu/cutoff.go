package menu

import (
	"strconv"
	"strings"
	"time"

	"lunchlink/internal/models"
)

// DefaultCutoff applies when the tenant cutoff is missing or malformed
const DefaultCutoff = "10:30"

// ParseCutoff parses a tenant cutoff in HH:MM form. Malformed values fall
// back to DefaultCutoff rather than failing, matching how the settings
// screen has always tolerated hand-edited values.
func ParseCutoff(cutoff string) (hour, minute int) {
	parts := strings.SplitN(cutoff, ":", 2)
	if len(parts) == 2 {
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errH == nil && errM == nil && h >= 0 && h < 24 && m >= 0 && m < 60 {
			return h, m
		}
	}
	parts = strings.SplitN(DefaultCutoff, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}

// OrderingClosed reports whether placing an order for the given date key
// is locked out by the tenant cutoff. Only "today" is time-gated: past
// and future dates are never blocked by this rule.
func OrderingClosed(now time.Time, date string, cutoff string) bool {
	if date != now.Format(models.MenuDateFormat) {
		return false
	}
	hour, minute := ParseCutoff(cutoff)
	cutoffAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	return now.After(cutoffAt)
}
