// Package extractor obtains the raw schedule workbook from the
// federation site.
//
// The site publishes the schedule only through a JavaScript-driven page:
// a category dropdown, a team autocomplete and an export button. The
// extractor drives a headless browser through that flow and waits for
// the exported workbook to land in the scratch directory. The browser
// integration is volatile, so it sits behind the narrow Extractor
// interface and tests substitute a fake.
package extractor

import "context"

// Params identifies one schedule to download.
type Params struct {
	// URL is the schedule page of the federation site
	URL string
	// Category is the visible text of the category option to select
	Category string
	// Team is the team name typed into the autocomplete filter
	Team string
	// DownloadDir is the scratch directory the workbook is saved into
	DownloadDir string
}

// Extractor downloads one schedule workbook and returns its file name
// inside the scratch directory.
type Extractor interface {
	Extract(ctx context.Context, p Params) (string, error)
}
