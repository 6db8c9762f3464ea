package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// ErrEmptyPageSet is returned when a merge is requested with zero pages.
// It signals an upstream logic error, not a transient condition.
var ErrEmptyPageSet = errors.New("cannot composite an empty page set")

// Composite stacks pages vertically into a single image. The canvas is as
// wide as the widest page and as tall as the sum of page heights, filled
// with the background color; each page is pasted left-aligned, top to
// bottom in input order, with no spacing.
func Composite(pages []*image.RGBA, bg color.Color) (*image.RGBA, error) {
	if len(pages) == 0 {
		return nil, ErrEmptyPageSet
	}

	width, height := 0, 0
	for _, p := range pages {
		if w := p.Bounds().Dx(); w > width {
			width = w
		}
		height += p.Bounds().Dy()
	}

	merged := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(merged, merged.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	y := 0
	for _, p := range pages {
		h := p.Bounds().Dy()
		dst := image.Rect(0, y, p.Bounds().Dx(), y+h)
		draw.Draw(merged, dst, p, p.Bounds().Min, draw.Src)
		y += h
	}

	return merged, nil
}
