// Package parser turns the workbook downloaded from the federation site
// into schedule matches.
//
// The workbook layout is fixed: three header rows followed by one row
// per match with seven columns (matchday, number, date, time, home
// team, away team, venue). Cells the sheet left empty come through as
// the NA sentinel. The downloaded file is deleted once parsed.
package parser

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"volley-schedule-service/internal/match"
)

// headerRows is the number of leading rows that hold column titles
// instead of match data.
const headerRows = 3

// ErrWorksheetMissing signals the workbook no longer contains the
// expected sheet, which means the site changed its export format.
var ErrWorksheetMissing = errors.New("internal error: worksheet not found in downloaded workbook")

// Parser maps a downloaded workbook into schedule matches.
type Parser struct {
	homeVenue string
	now       func() time.Time
}

// New creates a parser that flags matches played at homeVenue as home
// matches.
func New(homeVenue string) *Parser {
	return &Parser{
		homeVenue: homeVenue,
		now:       time.Now,
	}
}

// Parse reads the workbook at path and returns its matches with status
// and home/away derived. The file is removed afterwards; if removal
// fails the parsed matches are returned together with the error so the
// caller can still surface the cleanup failure.
func (p *Parser) Parse(path string) ([]match.Match, error) {
	if !strings.HasSuffix(path, ".xlsx") {
		return nil, errors.Errorf("downloaded file is not an Excel workbook: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening downloaded workbook")
	}

	matches, parseErr := p.readMatches(f)

	if err := f.Close(); err != nil && parseErr == nil {
		parseErr = errors.Wrap(err, "closing downloaded workbook")
	}
	if parseErr != nil {
		return nil, parseErr
	}

	if err := os.Remove(path); err != nil {
		return matches, errors.Wrap(err, "deleting downloaded workbook")
	}
	return matches, nil
}

func (p *Parser) readMatches(f *excelize.File) ([]match.Match, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrWorksheetMissing
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "reading worksheet rows")
	}

	now := p.now()
	matches := make([]match.Match, 0, len(rows))
	for i, row := range rows {
		if i < headerRows {
			continue
		}

		date := cell(row, 2)
		timeOfDay := cell(row, 3)
		venue := match.FormatVenue(cell(row, 6))

		matches = append(matches, match.Match{
			Matchday: cell(row, 0),
			Number:   cell(row, 1),
			Date:     date,
			Time:     timeOfDay,
			Home:     match.FormatTeam(cell(row, 4)),
			Away:     match.FormatTeam(cell(row, 5)),
			Venue:    venue,
			IsHome:   venue == p.homeVenue,
			Status:   match.DeriveStatus(date, timeOfDay, now),
		})
	}
	return matches, nil
}

// cell returns the NA sentinel for cells the sheet left empty or that
// fall past the end of the row. Rich text and numeric cells arrive
// already flattened to plain strings by the workbook reader.
func cell(row []string, idx int) string {
	if idx >= len(row) || row[idx] == "" {
		return match.NA
	}
	return row[idx]
}
