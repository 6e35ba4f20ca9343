package match

import "time"

// DeriveStatus classifies a match from its raw date and time strings.
// A match with no confirmed date or time is Postponed. A match before
// today (local midnight) is Completed. A match in the current month of
// the current year within 7 days of today's day-of-month is
// UpcomingThisWeek. Everything else is Scheduled.
//
// The "this week" check deliberately compares day-of-month inside the
// current month only, so a match 3 days away across a month boundary
// counts as Scheduled, not UpcomingThisWeek. Callers downstream rely on
// this categorization, so it stays as-is.
func DeriveStatus(date, timeOfDay string, now time.Time) Status {
	if date == NA || timeOfDay == NA {
		return StatusPostponed
	}

	d := ParseDate(date)
	if d.IsZero() {
		// unparseable but present, treat as a plain future fixture
		return StatusScheduled
	}

	if d.Before(midnight(now)) {
		return StatusCompleted
	}

	if d.Year() == now.Year() && d.Month() == now.Month() && absInt(d.Day()-now.Day()) <= 7 {
		return StatusUpcomingThisWeek
	}

	return StatusScheduled
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
