package match

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses a schedule date in dd/MM/yyyy form into local
// midnight. Two-digit years are taken as the 2000s ("06/10/25" is
// 2025). Returns the zero time when the string is not a valid date.
func ParseDate(s string) time.Time {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}
	}

	day, errDay := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, errMonth := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, errYear := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errDay != nil || errMonth != nil || errYear != nil {
		return time.Time{}
	}

	if year < 100 {
		year += 2000
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (32/01 becomes 01/02), which would
	// silently accept garbage rows
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}
	}
	return t
}

// DaysUntil returns the day-granularity difference between the match
// date and now, both taken at local midnight. Matches seven days out
// return 7 regardless of the current time of day.
func DaysUntil(date, now time.Time) int {
	diff := midnight(date).Sub(midnight(now))
	return int(math.Round(diff.Hours() / 24))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
