package gsheet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference is returned when a URL contains no recognizable
	// spreadsheet id. No network request is attempted in that case.
	ErrInvalidReference = errors.New("invalid Google Sheets URL: no spreadsheet id found")

	// ErrAuthRequired is returned when the export endpoint answers with an
	// HTML page instead of a PDF. That is how Google signals a missing or
	// expired session cookie for a private sheet.
	ErrAuthRequired = errors.New("got HTML instead of PDF: cookie may be expired or the sheet is not shared")

	// ErrRateLimited is returned on HTTP 429. The client never retries on
	// its own; backing off is the caller's decision.
	ErrRateLimited = errors.New("rate limited by the export endpoint")
)

// FetchError reports a non-success HTTP status from the export endpoint
// that is neither an auth failure nor rate limiting.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("export request failed with status %d", e.Status)
}
