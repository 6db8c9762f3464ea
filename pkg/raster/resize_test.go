package raster

import (
	"image"
	"testing"
)

func TestResizeToWidth(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		maxWidth   int
		wantW      int
		wantH      int
	}{
		{
			name: "downscale preserving aspect ratio",
			srcW: 3200, srcH: 1600,
			maxWidth: 1600,
			wantW:    1600, wantH: 800,
		},
		{
			name: "image at the limit passes through",
			srcW: 1600, srcH: 900,
			maxWidth: 1600,
			wantW:    1600, wantH: 900,
		},
		{
			name: "image under the limit passes through",
			srcW: 800, srcH: 600,
			maxWidth: 1600,
			wantW:    800, wantH: 600,
		},
		{
			name: "zero max width disables resizing",
			srcW: 5000, srcH: 100,
			maxWidth: 0,
			wantW:    5000, wantH: 100,
		},
		{
			name: "extreme aspect ratio clamps height to 1",
			srcW: 10000, srcH: 2,
			maxWidth: 100,
			wantW:    100, wantH: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newPage(tt.srcW, tt.srcH, image.Rect(0, 0, tt.srcW, tt.srcH))
			got := ResizeToWidth(src, tt.maxWidth)

			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("ResizeToWidth = %dx%d, want %dx%d",
					got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeToWidthNoOpReturnsSameImage(t *testing.T) {
	src := newPage(100, 100, image.Rectangle{})
	if got := ResizeToWidth(src, 200); got != src {
		t.Error("ResizeToWidth under the limit should return the input unchanged")
	}
}
