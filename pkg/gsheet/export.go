package gsheet

import (
	"fmt"
	"net/url"
	"strconv"
)

// Scale codes understood by the export endpoint.
const (
	ScaleNormal      = 1
	ScaleFitToWidth  = 2
	ScaleFitToHeight = 3
	ScaleFitToPage   = 4
)

// Paper size codes understood by the export endpoint.
const (
	PaperLetter  = 0
	PaperTabloid = 1
	PaperLegal   = 2
	PaperA3      = 6
	PaperA4      = 7
)

// ExportOptions control the PDF layout produced by the export endpoint.
// The zero value is not useful; use DefaultExportOptions.
type ExportOptions struct {
	Portrait  bool
	Scale     int
	PaperSize int
}

// DefaultExportOptions returns landscape, fit-to-width, A3 paper.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Portrait:  false,
		Scale:     ScaleFitToWidth,
		PaperSize: PaperA3,
	}
}

// exportBase is the document-generation endpoint Google exposes for
// converting a sheet view into a downloadable PDF.
const exportBase = "https://docs.google.com"

// BuildExportURL builds the PDF export URL for a sheet reference. The
// parameter set disables all print chrome (sheet names, titles, page
// numbers, gridlines, frozen rows and columns) and zeroes every margin so
// the rendered pages carry content only. The endpoint treats unrecognized
// boolean encodings as defaults, so values are exact "true"/"false" strings.
func BuildExportURL(ref SheetReference, opts ExportOptions) string {
	return BuildExportURLBase(exportBase, ref, opts)
}

// BuildExportURLBase is BuildExportURL against an explicit endpoint base,
// e.g. a local test server standing in for docs.google.com.
func BuildExportURLBase(base string, ref SheetReference, opts ExportOptions) string {
	params := url.Values{}
	params.Set("format", "pdf")
	params.Set("gid", ref.GID)
	params.Set("size", strconv.Itoa(opts.PaperSize))
	params.Set("portrait", strconv.FormatBool(opts.Portrait))
	params.Set("scale", strconv.Itoa(opts.Scale))
	params.Set("fitw", "true")
	params.Set("sheetnames", "false")
	params.Set("printtitle", "false")
	params.Set("pagenumbers", "false")
	params.Set("gridlines", "false")
	params.Set("fzr", "false")
	params.Set("fzc", "false")
	params.Set("top_margin", "0")
	params.Set("bottom_margin", "0")
	params.Set("left_margin", "0")
	params.Set("right_margin", "0")

	return fmt.Sprintf("%s/spreadsheets/d/%s/export?%s",
		base, ref.SpreadsheetID, params.Encode())
}
