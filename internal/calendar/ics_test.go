package calendar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volley-schedule-service/internal/match"
)

func TestGenerate(t *testing.T) {
	ics := Generate([]match.Match{
		{
			Home:   "Volley Club Milano",
			Away:   "Tigers",
			Date:   "15/03/2125",
			Time:   "18:00",
			Venue:  "Palestra Comunale, Via Roma 12",
			Status: match.StatusScheduled,
		},
	})

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Volley Schedule//volley-schedule-service//EN",
		"BEGIN:VEVENT",
		"UID:volleyclubmilano-tigers-15/03/2125",
		"DTSTAMP:",
		"DTSTART:",
		"DTEND:",
		"SUMMARY:Volley Club Milano vs Tigers - Scheduled",
		"LOCATION:Palestra Comunale\\, Via Roma 12",
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		assert.Contains(t, ics, field)
	}

	assert.Contains(t, ics, "\r\n", "ICS must use CRLF line endings")
}

func TestGenerateTwoHourDuration(t *testing.T) {
	ics := Generate([]match.Match{
		{Home: "A", Away: "B", Date: "15/03/2125", Time: "18:00", Venue: "V", Status: match.StatusScheduled},
	})

	var start, end string
	for _, line := range strings.Split(ics, "\r\n") {
		if strings.HasPrefix(line, "DTSTART:") {
			start = strings.TrimPrefix(line, "DTSTART:")
		}
		if strings.HasPrefix(line, "DTEND:") {
			end = strings.TrimPrefix(line, "DTEND:")
		}
	}
	require.NotEmpty(t, start)
	require.NotEmpty(t, end)
	assert.NotEqual(t, start, end)
	// same day, two hours later
	assert.Equal(t, start[:8], end[:8])
}

func TestGenerateSkipsCompletedAndUnparseable(t *testing.T) {
	ics := Generate([]match.Match{
		{Home: "Played", Away: "B", Date: "01/01/2020", Time: "18:00", Status: match.StatusCompleted},
		{Home: "NoDate", Away: "B", Date: match.NA, Time: match.NA, Status: match.StatusPostponed},
		{Home: "BadTime", Away: "B", Date: "15/03/2125", Time: "evening", Status: match.StatusScheduled},
		{Home: "Kept", Away: "B", Date: "15/03/2125", Time: "18:00", Status: match.StatusScheduled},
	})

	assert.NotContains(t, ics, "Played")
	assert.NotContains(t, ics, "NoDate")
	assert.NotContains(t, ics, "BadTime")
	assert.Contains(t, ics, "Kept")
	assert.Equal(t, 1, strings.Count(ics, "BEGIN:VEVENT"))
}

func TestGenerateEscapesSpecialCharacters(t *testing.T) {
	ics := Generate([]match.Match{
		{Home: "A; Team", Away: "B", Date: "15/03/2125", Time: "18:00", Venue: "Hall, West Wing", Status: match.StatusScheduled},
	})

	assert.Contains(t, ics, "SUMMARY:A\\; Team vs B")
	assert.Contains(t, ics, "LOCATION:Hall\\, West Wing")
}

func TestGenerateEmptySnapshot(t *testing.T) {
	ics := Generate(nil)

	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "END:VCALENDAR")
	assert.NotContains(t, ics, "BEGIN:VEVENT")
}
