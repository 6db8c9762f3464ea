package sheetcapture

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jiewpassakorn/sheet-capture/pkg/gsheet"
	"github.com/jiewpassakorn/sheet-capture/pkg/raster"
)

// pdfPage describes one page of a generated test PDF: the page size in
// points and an optional filled black rectangle (x, y, w, h in PDF
// coordinates, origin bottom-left). A nil rect yields a blank page.
type pdfPage struct {
	width, height int
	rect          []int
}

// buildPDF assembles a minimal but well-formed PDF by hand, computing the
// xref offsets as it goes, so tests do not need fixture files.
func buildPDF(pages []pdfPage) []byte {
	var objects []string

	kids := ""
	for i := range pages {
		if i > 0 {
			kids += " "
		}
		kids += fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objects = append(objects,
		"<</Type /Catalog /Pages 2 0 R>>",
		fmt.Sprintf("<</Type /Pages /Kids [%s] /Count %d>>", kids, len(pages)),
	)

	for i, p := range pages {
		content := ""
		if p.rect != nil {
			content = fmt.Sprintf("0 0 0 rg %d %d %d %d re f\n",
				p.rect[0], p.rect[1], p.rect[2], p.rect[3])
		}
		objects = append(objects,
			fmt.Sprintf("<</Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Contents %d 0 R>>",
				p.width, p.height, 4+2*i),
			fmt.Sprintf("<</Length %d>>\nstream\n%sendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d /Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)

	return buf.Bytes()
}

func servePDF(t *testing.T, pdf []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const testSheetURL = "https://docs.google.com/spreadsheets/d/TEST123/edit#gid=7"

func TestRunCapturesAndTrims(t *testing.T) {
	// Page 1 carries a 100x60pt black box, page 2 is blank and must be
	// skipped without failing the capture.
	pdf := buildPDF([]pdfPage{
		{width: 200, height: 100, rect: []int{20, 20, 100, 60}},
		{width: 200, height: 100},
	})
	srv := servePDF(t, pdf)

	result, err := Run(Options{
		URL:        testSheetURL,
		DPI:        72, // scale factor 1: pixel sizes equal point sizes
		ExportBase: srv.URL,
	})
	if err != nil {
		t.Fatalf("Run unexpected error: %v", err)
	}

	if result.Reference.SpreadsheetID != "TEST123" || result.Reference.GID != "7" {
		t.Errorf("resolved reference = %+v, want TEST123/7", result.Reference)
	}
	if result.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", result.PageCount)
	}
	if len(result.Images) != 1 {
		t.Fatalf("kept %d images, want 1 (blank page skipped)", len(result.Images))
	}
	if result.Images[0].Name != "page_001.png" {
		t.Errorf("image name = %q, want page_001.png", result.Images[0].Name)
	}
	if result.Composite != nil {
		t.Error("Composite set without Merge requested")
	}

	decoded, err := png.Decode(bytes.NewReader(result.Images[0].Data))
	if err != nil {
		t.Fatalf("output does not decode as PNG: %v", err)
	}
	// Trimmed to the content box; allow a couple of pixels for edge
	// rendering differences between MuPDF versions.
	checkApprox(t, "trimmed width", decoded.Bounds().Dx(), 100, 2)
	checkApprox(t, "trimmed height", decoded.Bounds().Dy(), 60, 2)
}

func TestRunMerge(t *testing.T) {
	pdf := buildPDF([]pdfPage{
		{width: 200, height: 100, rect: []int{10, 10, 150, 70}},
		{width: 200, height: 100, rect: []int{10, 10, 100, 80}},
	})
	srv := servePDF(t, pdf)

	result, err := Run(Options{
		URL:        testSheetURL,
		DPI:        72,
		Merge:      true,
		Prefix:     "sheet",
		ExportBase: srv.URL,
	})
	if err != nil {
		t.Fatalf("Run unexpected error: %v", err)
	}

	if len(result.Images) != 2 {
		t.Fatalf("kept %d images, want 2", len(result.Images))
	}
	if result.Composite == nil {
		t.Fatal("Merge requested but Composite is nil")
	}
	if result.Composite.Name != "sheet_merged.png" {
		t.Errorf("composite name = %q, want sheet_merged.png", result.Composite.Name)
	}

	merged, err := png.Decode(bytes.NewReader(result.Composite.Data))
	if err != nil {
		t.Fatalf("composite does not decode as PNG: %v", err)
	}
	// Width is the max trimmed page width, height the sum of both.
	checkApprox(t, "composite width", merged.Bounds().Dx(), 150, 3)
	checkApprox(t, "composite height", merged.Bounds().Dy(), 150, 5)
}

func TestRunMergeAllBlank(t *testing.T) {
	pdf := buildPDF([]pdfPage{{width: 200, height: 100}})
	srv := servePDF(t, pdf)

	_, err := Run(Options{URL: testSheetURL, DPI: 72, Merge: true, ExportBase: srv.URL})
	if !errors.Is(err, raster.ErrEmptyPageSet) {
		t.Errorf("Run error = %v, want ErrEmptyPageSet", err)
	}
}

func TestRunFallbackLadder(t *testing.T) {
	pdf := buildPDF([]pdfPage{{width: 200, height: 100, rect: []int{10, 10, 120, 70}}})

	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	defer srv.Close()

	result, err := Run(Options{URL: testSheetURL, DPI: 72, ExportBase: srv.URL})
	if err != nil {
		t.Fatalf("Run unexpected error: %v", err)
	}
	if requests != 2 {
		t.Errorf("server saw %d requests, want 2 (one 500, one success)", requests)
	}
	if len(result.Images) != 1 {
		t.Errorf("kept %d images, want 1", len(result.Images))
	}
}

func TestRunErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "HTML response is an auth failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte("<html>Sign in</html>"))
			},
			wantErr: gsheet.ErrAuthRequired,
		},
		{
			name: "429 is rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErr: gsheet.ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := Run(Options{URL: testSheetURL, DPI: 72, ExportBase: srv.URL})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunCorruptDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("this is not a pdf"))
	}))
	defer srv.Close()

	_, err := Run(Options{URL: testSheetURL, DPI: 72, ExportBase: srv.URL})
	var cde *raster.CorruptDocumentError
	if !errors.As(err, &cde) {
		t.Errorf("Run error = %v, want *raster.CorruptDocumentError", err)
	}
}

func TestRunInvalidReference(t *testing.T) {
	_, err := Run(Options{URL: "https://example.com/not-a-sheet"})
	if !errors.Is(err, gsheet.ErrInvalidReference) {
		t.Errorf("Run error = %v, want ErrInvalidReference", err)
	}
}

func TestRunInvalidFormat(t *testing.T) {
	_, err := Run(Options{URL: testSheetURL, Format: "gif"})
	if err == nil {
		t.Fatal("Run expected error for unsupported format, got nil")
	}
}

func checkApprox(t *testing.T, label string, got, want, tolerance int) {
	t.Helper()
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		t.Errorf("%s = %d, want %d (tolerance %d)", label, got, want, tolerance)
	}
}
