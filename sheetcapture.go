package sheetcapture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"

	"github.com/jiewpassakorn/sheet-capture/pkg/gsheet"
	"github.com/jiewpassakorn/sheet-capture/pkg/raster"
)

// Options configures one capture.
type Options struct {
	URL      string // Google Sheets URL (required)
	Cookie   string // session cookie for private sheets; empty = unauthenticated
	DPI      int    // rasterization density, default 600
	Format   string // "png" or "jpg", default "png"
	Portrait bool   // portrait orientation, default landscape
	Merge    bool   // stack trimmed pages into one composite image
	MaxWidth int    // downscale images wider than this; 0 = no limit
	Prefix   string // artifact name prefix, default "page"

	// ExportBase overrides the export endpoint base URL. Leave empty for
	// docs.google.com; set it to point captures at a test server.
	ExportBase string

	Logger Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Image is one encoded output artifact.
type Image struct {
	Name string
	Data []byte
}

// Result contains the capture output. All artifacts are in memory; writing
// them anywhere is the caller's responsibility.
type Result struct {
	Reference gsheet.SheetReference
	Document  *gsheet.Document // the fetched PDF export
	PageCount int              // pages in the exported document, blanks included
	Images    []Image          // one per kept page, in page order
	Composite *Image           // set only when merging produced a composite
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// exportAttempt is one rung of the export fallback ladder. Google's export
// endpoint intermittently answers 500 for certain scale/paper combinations,
// so a failed attempt falls through to the next layout.
type exportAttempt struct {
	label string
	opts  gsheet.ExportOptions
}

func exportAttempts(portrait bool) []exportAttempt {
	return []exportAttempt{
		{"A3 fit-to-width", gsheet.ExportOptions{Portrait: portrait, Scale: gsheet.ScaleFitToWidth, PaperSize: gsheet.PaperA3}},
		{"A3 normal", gsheet.ExportOptions{Portrait: portrait, Scale: gsheet.ScaleNormal, PaperSize: gsheet.PaperA3}},
		{"A3 fit-to-page", gsheet.ExportOptions{Portrait: portrait, Scale: gsheet.ScaleFitToPage, PaperSize: gsheet.PaperA3}},
	}
}

// Run executes the capture pipeline and returns the result.
func Run(opts Options) (*Result, error) {
	return RunContext(context.Background(), opts)
}

// RunContext executes the capture pipeline: resolve the URL, download the
// PDF export, rasterize each page, trim whitespace, and optionally merge
// the pages into a single composite. ctx bounds the network fetches.
func RunContext(ctx context.Context, opts Options) (*Result, error) {
	// Apply defaults.
	if opts.DPI <= 0 {
		opts.DPI = 600
	}
	if opts.Format == "" {
		opts.Format = "png"
	}
	if opts.Prefix == "" {
		opts.Prefix = "page"
	}
	if opts.Format != "png" && opts.Format != "jpg" {
		return nil, fmt.Errorf("invalid image format %q (must be png or jpg)", opts.Format)
	}

	opts.logInfo("Parsing URL...")
	ref, err := gsheet.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("resolve reference: %w", err)
	}
	opts.logInfo("Spreadsheet ID: %s", ref.SpreadsheetID)
	opts.logInfo("GID: %s", ref.GID)

	client := gsheet.NewClient(opts.Cookie)

	opts.logInfo("Downloading PDF...")
	doc, err := fetchDocument(ctx, client, ref, &opts)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}

	opts.logInfo("Rendering pages at %d DPI...", opts.DPI)
	pages, err := raster.Render(doc.Data, opts.DPI)
	if err != nil {
		return nil, fmt.Errorf("rasterize document: %w", err)
	}
	opts.logInfo("Pages found: %d", len(pages))

	result := &Result{Reference: ref, Document: doc, PageCount: len(pages)}

	ext := opts.Format
	var kept []*image.RGBA
	for _, page := range pages {
		if raster.IsBlank(page.Image, raster.White) {
			opts.logInfo("Skipping blank page %d", page.Index+1)
			continue
		}
		img := raster.Trim(page.Image, raster.White)
		img = raster.ResizeToWidth(img, opts.MaxWidth)

		data, err := raster.Encode(img, opts.Format)
		if err != nil {
			return nil, fmt.Errorf("encode page %d: %w", page.Index+1, err)
		}

		kept = append(kept, img)
		result.Images = append(result.Images, Image{
			Name: fmt.Sprintf("%s_%03d.%s", opts.Prefix, len(kept), ext),
			Data: data,
		})
	}

	if opts.Merge {
		if len(kept) == 0 {
			return nil, fmt.Errorf("merge pages: %w", raster.ErrEmptyPageSet)
		}
		// A single page merged with itself is just the page; skip the copy.
		if len(kept) > 1 {
			opts.logInfo("Merging %d pages...", len(kept))
			merged, err := raster.Composite(kept, raster.White)
			if err != nil {
				return nil, fmt.Errorf("merge pages: %w", err)
			}
			merged = raster.ResizeToWidth(merged, opts.MaxWidth)

			data, err := raster.Encode(merged, opts.Format)
			if err != nil {
				return nil, fmt.Errorf("encode composite: %w", err)
			}
			result.Composite = &Image{
				Name: fmt.Sprintf("%s_merged.%s", opts.Prefix, ext),
				Data: data,
			}
		}
	}

	return result, nil
}

// fetchDocument walks the export fallback ladder. Only an HTTP 500 moves to
// the next attempt; auth failures, rate limiting, and every other error
// surface immediately so their remediation stays visible to the caller.
func fetchDocument(ctx context.Context, client *gsheet.Client, ref gsheet.SheetReference, opts *Options) (*gsheet.Document, error) {
	attempts := exportAttempts(opts.Portrait)

	var lastErr error
	for i, attempt := range attempts {
		var exportURL string
		if opts.ExportBase != "" {
			exportURL = gsheet.BuildExportURLBase(opts.ExportBase, ref, attempt.opts)
		} else {
			exportURL = gsheet.BuildExportURL(ref, attempt.opts)
		}

		doc, err := client.FetchContext(ctx, exportURL)
		if err == nil {
			opts.logInfo("Downloaded (%s)", attempt.label)
			return doc, nil
		}

		var fe *gsheet.FetchError
		if errors.As(err, &fe) && fe.Status == http.StatusInternalServerError && i < len(attempts)-1 {
			opts.logWarn("%s failed (500), trying next layout...", attempt.label)
			lastErr = err
			continue
		}
		return nil, err
	}

	return nil, lastErr
}
