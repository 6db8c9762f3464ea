// Package raster turns a fetched PDF into trimmed, optionally merged
// images. Rendering is done with MuPDF via go-fitz; everything downstream
// of the renderer operates on plain RGBA buffers.
package raster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// CorruptDocumentError reports a PDF that could not be opened, or a single
// page that could not be rendered. Page is -1 when the document itself
// failed to open.
type CorruptDocumentError struct {
	Page int
	Err  error
}

func (e *CorruptDocumentError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("cannot open document: %v", e.Err)
	}
	return fmt.Sprintf("cannot render page %d: %v", e.Page+1, e.Err)
}

func (e *CorruptDocumentError) Unwrap() error { return e.Err }

// Page is one rendered document page. Index is the 0-based position in the
// document; pages are always produced in document order.
type Page struct {
	Index int
	Image *image.RGBA
}

// Render rasterizes every page of the PDF in data at the given density.
// MuPDF scales both axes by dpi/72, 72 dpi being the PDF reference unit.
// Output pixels are fully opaque; the source format has no meaningful
// transparency and the trimmer assumes a solid background.
//
// The fitz document handle is not safe for concurrent use, so pages are
// rendered sequentially on the single handle.
func Render(data []byte, dpi int) ([]Page, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &CorruptDocumentError{Page: -1, Err: err}
	}
	defer doc.Close()

	pages := make([]Page, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, float64(dpi))
		if err != nil {
			return nil, &CorruptDocumentError{Page: n, Err: err}
		}
		pages = append(pages, Page{Index: n, Image: img})
	}

	return pages, nil
}
