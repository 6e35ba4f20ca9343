package match

// NA is the canonical marker for a cell that had no data. It is distinct
// from the empty string and passes through every normalization untouched.
const NA = "NA"

// Status classifies a match relative to the current date.
type Status string

const (
	// StatusCompleted marks a match whose date has already passed
	StatusCompleted Status = "Completed"
	// StatusUpcomingThisWeek marks a match coming up within the week
	StatusUpcomingThisWeek Status = "UpcomingThisWeek"
	// StatusScheduled marks a match with a confirmed future date
	StatusScheduled Status = "Scheduled"
	// StatusPostponed marks a match whose date or time is not yet known
	StatusPostponed Status = "Postponed"
)

// Match represents one row of the league schedule. Matches are built in
// a single batch per refresh and never mutated afterwards.
type Match struct {
	// Matchday is the round label, kept exactly as the source wrote it
	// (some leagues use numbers, some use free text)
	Matchday string `json:"matchday"`
	// Number is the source row ordinal identifier
	Number string `json:"number"`
	// Date is the match date as dd/MM/yyyy, or NA when unscheduled
	Date string `json:"date"`
	// Time is the clock time, or NA when unscheduled
	Time string `json:"time"`
	// Home and Away are the title-cased team names
	Home string `json:"home"`
	Away string `json:"away"`
	// Venue is the normalized location text
	Venue string `json:"venue"`
	// IsHome reports whether the venue matches the configured home venue
	IsHome bool `json:"isHome"`
	// Status is derived from Date and Time, see DeriveStatus
	Status Status `json:"status"`
}
