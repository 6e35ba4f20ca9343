// Package calendar renders the cached schedule as an iCalendar
// document so readers can subscribe to it from their calendar app.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"volley-schedule-service/internal/match"
)

// eventDuration is the fixed length of a calendar entry; matches have
// no published end time.
const eventDuration = 2 * time.Hour

// Generate renders every non-completed match with a usable date and
// time as one VEVENT. Completed matches and rows whose date or time
// cannot be parsed are skipped.
func Generate(matches []match.Match) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Volley Schedule//volley-schedule-service//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := time.Now().UTC()
	for _, m := range matches {
		if m.Status == match.StatusCompleted {
			continue
		}
		start, ok := matchStart(m)
		if !ok {
			continue
		}
		writeEvent(&ics, m, start, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, m match.Match, start, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s\r\n", eventUID(m)))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(eventDuration))))

	summary := fmt.Sprintf("%s vs %s - %s", m.Home, m.Away, m.Status)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Volleyball match between %s and %s.", m.Home, m.Away)
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	if m.Venue != match.NA {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(m.Venue)))
	}

	ics.WriteString("CATEGORIES:Volleyball Match\r\n")
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// eventUID derives a stable identifier from the team names and date,
// lowercased with whitespace stripped.
func eventUID(m match.Match) string {
	raw := fmt.Sprintf("%s-%s-%s", m.Home, m.Away, m.Date)
	return strings.ToLower(strings.Join(strings.Fields(raw), ""))
}

// matchStart combines the match date and time into a start instant.
func matchStart(m match.Match) (time.Time, bool) {
	date := match.ParseDate(m.Date)
	if date.IsZero() {
		return time.Time{}, false
	}

	parts := strings.Split(m.Time, ":")
	if len(parts) != 2 {
		return time.Time{}, false
	}
	hour, errHour := strconv.Atoi(strings.TrimSpace(parts[0]))
	minute, errMinute := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errHour != nil || errMinute != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, false
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.Local), true
}

// formatICSTime formats a time.Time as an iCalendar datetime string.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
