// Package reminder identifies matches coming up in exactly seven days
// and triggers a single push notification covering them.
//
// Dispatching the same snapshot twice on the same day produces the same
// notification; nothing deduplicates repeated sends across refresh
// cycles, which is accepted.
package reminder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"volley-schedule-service/internal/match"
)

// reminderDays is how many days ahead a match must be to qualify.
const reminderDays = 7

// Sender delivers one notification payload to every subscriber.
// Per-subscriber delivery is best-effort inside the sender.
type Sender interface {
	Send(payload []byte) error
}

// Result reports what a dispatch cycle did.
type Result struct {
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
	Count  int    `json:"count"`
}

// Payload is the push message body, rendered as JSON for the service
// worker on the subscriber side.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Dispatcher filters a schedule snapshot and hands the reminder to the
// push sender.
type Dispatcher struct {
	sender Sender
	now    func() time.Time
}

// New creates a dispatcher delivering through sender.
func New(sender Sender) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		now:    time.Now,
	}
}

// Dispatch sends one reminder covering every match exactly seven days
// out. Completed and postponed matches are skipped, as are rows whose
// date cannot be parsed. When nothing qualifies no notification is
// sent and the result says why.
func (d *Dispatcher) Dispatch(matches []match.Match) (Result, error) {
	upcoming := filterUpcoming(matches, d.now())
	if len(upcoming) == 0 {
		return Result{Sent: false, Reason: "no_matches", Count: 0}, nil
	}

	payload := Payload{
		Title: fmt.Sprintf("Match reminder: %d days to go", reminderDays),
		Body:  formatBody(upcoming),
		URL:   "/",
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Result{}, errors.Wrap(err, "encoding reminder payload")
	}

	if err := d.sender.Send(raw); err != nil {
		return Result{}, errors.Wrap(err, "sending reminder notification")
	}

	return Result{Sent: true, Count: len(upcoming)}, nil
}

func filterUpcoming(matches []match.Match, now time.Time) []match.Match {
	var upcoming []match.Match
	for _, m := range matches {
		if m.Status == match.StatusCompleted || m.Status == match.StatusPostponed {
			continue
		}
		date := match.ParseDate(m.Date)
		if date.IsZero() {
			continue
		}
		if match.DaysUntil(date, now) != reminderDays {
			continue
		}
		upcoming = append(upcoming, m)
	}
	return upcoming
}

func formatBody(upcoming []match.Match) string {
	if len(upcoming) == 1 {
		m := upcoming[0]
		return fmt.Sprintf("%s vs %s - %s at %s", m.Home, m.Away, m.Date, m.Time)
	}
	return fmt.Sprintf("%d matches scheduled in %d days", len(upcoming), reminderDays)
}
