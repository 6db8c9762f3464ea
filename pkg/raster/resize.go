package raster

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ResizeToWidth downscales img to maxWidth pixels wide, preserving aspect
// ratio, using Catmull-Rom resampling. Images at or under the limit, or a
// maxWidth of zero, pass through untouched. Upscaling is never performed.
func ResizeToWidth(img *image.RGBA, maxWidth int) *image.RGBA {
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return img
	}

	ratio := float64(maxWidth) / float64(img.Bounds().Dx())
	height := int(float64(img.Bounds().Dy()) * ratio)
	if height < 1 {
		height = 1
	}

	resized := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.CatmullRom.Scale(resized, resized.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return resized
}
