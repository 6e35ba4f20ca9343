package match

import "sort"

// statusPriority fixes the display order of the snapshot: imminent
// matches first, played ones last.
var statusPriority = map[Status]int{
	StatusUpcomingThisWeek: 0,
	StatusScheduled:        1,
	StatusPostponed:        2,
	StatusCompleted:        3,
}

// SortByStatus orders matches by status priority, then by ascending
// match date within the same status. The sort is stable, so sorting an
// already-sorted snapshot leaves it unchanged.
func SortByStatus(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		pi, pj := statusPriority[matches[i].Status], statusPriority[matches[j].Status]
		if pi != pj {
			return pi < pj
		}
		return ParseDate(matches[i].Date).Before(ParseDate(matches[j].Date))
	})
}
