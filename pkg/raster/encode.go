package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

// jpegQuality is fixed at 95: the output is meant to be read, and sheet
// content (thin gridlines, small text) degrades visibly below that.
const jpegQuality = 95

// EncodePNG encodes img as lossless PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEG encodes img as quality-95 JPEG.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode dispatches on format, which must be "png" or "jpg".
func Encode(img image.Image, format string) ([]byte, error) {
	switch format {
	case "png":
		return EncodePNG(img)
	case "jpg":
		return EncodeJPEG(img)
	default:
		return nil, fmt.Errorf("unsupported image format %q (must be png or jpg)", format)
	}
}
