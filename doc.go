// Package sheetcapture captures a Google Sheet as a set of trimmed,
// optionally merged raster images, suitable for posting as an attachment
// elsewhere (chat, email, issue trackers).
//
// The pipeline resolves a pasted sheet URL into a stable export reference,
// downloads the sheet's PDF export (with an optional session cookie for
// private sheets), rasterizes each page at a target DPI, auto-crops the
// surrounding whitespace, and can stack the pages into one vertical
// composite image.
//
// The CLI lives in cmd/sheet-capture; this root package exposes the same
// pipeline as a Go API so that callers can embed captures in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named sheetcapture:
//
//	import "github.com/jiewpassakorn/sheet-capture" // package sheetcapture
//
// # Quick start
//
//	result, err := sheetcapture.Run(sheetcapture.Options{
//	    URL:    "https://docs.google.com/spreadsheets/d/ABC123/edit#gid=0",
//	    Cookie: os.Getenv("SHEET_COOKIE"),
//	    DPI:    300,
//	    Merge:  true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, img := range result.Images {
//	    os.WriteFile(img.Name, img.Data, 0644)
//	}
//
// All artifacts are returned in memory; nothing is written to disk by the
// library. Persistence is the caller's explicit, separate responsibility.
//
// # Authentication
//
// Private sheets need a browser session cookie passed in [Options.Cookie].
// When the cookie is missing or expired, Google answers the export request
// with an HTML sign-in page instead of a PDF; the pipeline surfaces that as
// [gsheet.ErrAuthRequired], distinct from network failures, so callers can
// prompt for a fresh credential rather than chase connectivity.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
// # Failure classification
//
// Errors are typed per failure class and checkable with errors.Is/As:
// [gsheet.ErrInvalidReference], [gsheet.ErrAuthRequired],
// [gsheet.ErrRateLimited], [gsheet.FetchError],
// [raster.CorruptDocumentError], and [raster.ErrEmptyPageSet].
// The pipeline never retries rate-limited requests on its own; backoff is
// the caller's policy.
package sheetcapture
