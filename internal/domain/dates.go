package domain

import (
	"fmt"
	"time"
)

// ordinalSuffix returns the English ordinal suffix for a day of the month.
func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// FormatDate renders a date as "Jan 2nd, 2006", the display format used
// throughout the catalog pages.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Format("Jan"), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

// FormatOptionalDate renders a possibly-absent date, falling back to "N/A".
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return FormatDate(*t)
}
