package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByStatus(t *testing.T) {
	matches := []Match{
		{Home: "E", Date: "01/02/2025", Status: StatusCompleted},
		{Home: "A", Date: "20/04/2025", Status: StatusScheduled},
		{Home: "B", Date: "12/03/2025", Status: StatusUpcomingThisWeek},
		{Home: "C", Date: NA, Status: StatusPostponed},
		{Home: "D", Date: "05/04/2025", Status: StatusScheduled},
	}

	SortByStatus(matches)

	order := make([]string, 0, len(matches))
	for _, m := range matches {
		order = append(order, m.Home)
	}
	assert.Equal(t, []string{"B", "D", "A", "C", "E"}, order)
}

func TestSortByStatusDateOrderWithinStatus(t *testing.T) {
	matches := []Match{
		{Home: "late", Date: "20/04/2025", Status: StatusCompleted},
		{Home: "early", Date: "01/01/2025", Status: StatusCompleted},
		{Home: "middle", Date: "15/02/2025", Status: StatusCompleted},
	}

	SortByStatus(matches)

	assert.Equal(t, "early", matches[0].Home)
	assert.Equal(t, "middle", matches[1].Home)
	assert.Equal(t, "late", matches[2].Home)
}

func TestSortByStatusStable(t *testing.T) {
	matches := []Match{
		{Home: "E", Date: "01/02/2025", Status: StatusCompleted},
		{Home: "B", Date: "12/03/2025", Status: StatusUpcomingThisWeek},
		{Home: "C", Date: NA, Status: StatusPostponed},
		{Home: "F", Date: NA, Status: StatusPostponed},
		{Home: "A", Date: "20/04/2025", Status: StatusScheduled},
	}

	SortByStatus(matches)
	sortedOnce := make([]Match, len(matches))
	copy(sortedOnce, matches)

	SortByStatus(matches)
	assert.Equal(t, sortedOnce, matches)
}
