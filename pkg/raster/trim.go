package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// White is the background color sheets export against. Non-white sheet
// themes are not detected; trimming always diffs against this color.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// minContentPx is the smallest content box considered meaningful. Pages
// whose non-background content is narrower or shorter than this are
// treated as blank and skipped by callers.
const minContentPx = 50

// ContentBounds returns the bounding box of all pixels that differ from
// the background color. The zero rectangle means every pixel matches the
// background.
func ContentBounds(img *image.RGBA, bg color.Color) image.Rectangle {
	br, bgG, bb, _ := bg.RGBA()
	bgR8, bgG8, bgB8 := uint8(br>>8), uint8(bgG>>8), uint8(bb>>8)

	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride:]
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := (x - bounds.Min.X) * 4
			if row[i] != bgR8 || row[i+1] != bgG8 || row[i+2] != bgB8 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if minX > maxX || minY > maxY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Trim crops img to the bounding box of its non-background content. A page
// with no content at all is returned unchanged: a blank page is a valid
// outcome, not an error. Trimming an already-trimmed page is a no-op.
func Trim(img *image.RGBA, bg color.Color) *image.RGBA {
	box := ContentBounds(img, bg)
	if box.Empty() || box == img.Bounds() {
		return img
	}

	cropped := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Draw(cropped, cropped.Bounds(), img, box.Min, draw.Src)
	return cropped
}

// IsBlank reports whether a page carries too little content to keep. The
// threshold matches the capture pipeline's historical behavior: anything
// smaller than a 50x50 pixel content box is noise from margins or stray
// cell borders.
func IsBlank(img *image.RGBA, bg color.Color) bool {
	box := ContentBounds(img, bg)
	if box.Empty() {
		return true
	}
	return box.Dx() < minContentPx || box.Dy() < minContentPx
}
