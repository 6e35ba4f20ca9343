package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		time     string
		now      time.Time
		expected Status
	}{
		{
			name:     "match within the week",
			date:     "15/03/2025",
			time:     "18:00",
			now:      time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local),
			expected: StatusUpcomingThisWeek,
		},
		{
			name:     "match months ahead",
			date:     "15/03/2025",
			time:     "18:00",
			now:      time.Date(2025, time.January, 1, 12, 0, 0, 0, time.Local),
			expected: StatusScheduled,
		},
		{
			name:     "match already played",
			date:     "15/03/2025",
			time:     "18:00",
			now:      time.Date(2025, time.April, 1, 12, 0, 0, 0, time.Local),
			expected: StatusCompleted,
		},
		{
			name:     "missing date means postponed",
			date:     NA,
			time:     "18:00",
			now:      time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local),
			expected: StatusPostponed,
		},
		{
			name:     "missing time means postponed",
			date:     "15/03/2025",
			time:     NA,
			now:      time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local),
			expected: StatusPostponed,
		},
		{
			name:     "both missing means postponed",
			date:     NA,
			time:     NA,
			now:      time.Date(2099, time.December, 31, 0, 0, 0, 0, time.Local),
			expected: StatusPostponed,
		},
		{
			name:     "same day is not completed",
			date:     "10/03/2025",
			time:     "09:00",
			now:      time.Date(2025, time.March, 10, 23, 0, 0, 0, time.Local),
			expected: StatusUpcomingThisWeek,
		},
		{
			name:     "near match across month boundary stays scheduled",
			date:     "02/04/2025",
			time:     "18:00",
			now:      time.Date(2025, time.March, 30, 12, 0, 0, 0, time.Local),
			expected: StatusScheduled,
		},
		{
			name:     "unparseable date stays scheduled",
			date:     "someday",
			time:     "18:00",
			now:      time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local),
			expected: StatusScheduled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveStatus(tt.date, tt.time, tt.now))
		})
	}
}

func TestDeriveStatusPastAlwaysCompleted(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.Local)
	for _, date := range []string{"14/06/2025", "01/01/2025", "31/12/2024", "15/06/24"} {
		assert.Equal(t, StatusCompleted, DeriveStatus(date, "21:00", now), "date %s", date)
	}
}
