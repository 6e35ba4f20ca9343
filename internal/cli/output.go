package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"volley-schedule-service/internal/match"
	"volley-schedule-service/internal/schedule"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteSnapshot writes the schedule snapshot in the specified format.
func WriteSnapshot(w io.Writer, snap *schedule.Snapshot, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(snap)
	case FormatText:
		return writeText(w, snap)
	default:
		return errors.Errorf("unknown format: %s", format)
	}
}

func writeText(w io.Writer, snap *schedule.Snapshot) error {
	fmt.Fprintf(w, "%s - %s (updated %s)\n\n", snap.Category, snap.Team, snap.LastUpdate)

	if len(snap.Matches) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return nil
	}

	for _, m := range snap.Matches {
		marker := " "
		if m.IsHome {
			marker = "H"
		}
		fmt.Fprintf(w, "%s [%-16s] %s %s  %s vs %s\n", marker, m.Status, m.Date, m.Time, m.Home, m.Away)
		if m.Venue != match.NA {
			fmt.Fprintf(w, "     at %s\n", m.Venue)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d matches\n", len(snap.Matches))
	return nil
}
