package gsheet

import (
	"regexp"
)

// SheetReference identifies one tab of one spreadsheet. It is the stable
// form a pasted browser URL resolves to.
type SheetReference struct {
	SpreadsheetID string
	GID           string
}

var (
	// Match patterns like:
	// https://docs.google.com/spreadsheets/d/ABC123/edit#gid=55
	// https://docs.google.com/spreadsheets/d/ABC123/edit?gid=55
	// https://docs.google.com/spreadsheets/d/ABC123/edit
	spreadsheetIDRe = regexp.MustCompile(`/spreadsheets/d/([A-Za-z0-9_-]+)`)
	gidRe           = regexp.MustCompile(`[#?&]gid=(\d+)`)
)

// ParseURL extracts the spreadsheet id and gid from a Google Sheets URL.
// The gid may appear as a fragment (#gid=N), a query parameter (?gid=N),
// or not at all, in which case it defaults to "0" (the first sheet).
// Returns ErrInvalidReference if no spreadsheet id can be located.
func ParseURL(sheetURL string) (SheetReference, error) {
	matches := spreadsheetIDRe.FindStringSubmatch(sheetURL)
	if len(matches) < 2 {
		return SheetReference{}, ErrInvalidReference
	}

	ref := SheetReference{SpreadsheetID: matches[1], GID: "0"}
	if gidMatches := gidRe.FindStringSubmatch(sheetURL); len(gidMatches) == 2 {
		ref.GID = gidMatches[1]
	}

	return ref, nil
}
