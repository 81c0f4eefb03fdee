package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"

	// Decoders for the accepted upload formats
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/finmanager/backend/internal/domain/shared"
	"golang.org/x/image/draw"
)

// DefaultMaxImageBytes is the upload size limit when none is configured
const DefaultMaxImageBytes = 1 << 20

const (
	startQuality = 90
	minQuality   = 50
	qualityStep  = 10
	shrinkFactor = 0.9
)

var (
	ErrEmptyImage       = shared.NewDomainError("INVALID_INPUT", "No image content received")
	ErrUndecodableImage = shared.NewDomainError("INVALID_INPUT", "Cannot decode uploaded image")
)

// Compress re-encodes an uploaded image as a JPEG no larger than maxBytes.
// Transparent areas are flattened onto white. The quality drops from 90 to
// 50 in steps of 10 before the image is shrunk by 10% per round.
// A 1x1 image that still exceeds maxBytes is returned as is.
func Compress(data []byte, maxBytes int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUndecodableImage
	}
	img := flatten(src)

	quality := startQuality
	var buf bytes.Buffer
	for {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
		if buf.Len() <= maxBytes {
			return buf.Bytes(), nil
		}
		if quality > minQuality {
			quality -= qualityStep
			continue
		}

		b := img.Bounds()
		if b.Dx() == 1 && b.Dy() == 1 {
			return buf.Bytes(), nil
		}
		img = shrink(img, shrinkFactor)
	}
}

// flatten draws src over an opaque white canvas
func flatten(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// shrink scales both dimensions by factor, never below one pixel
func shrink(src *image.RGBA, factor float64) *image.RGBA {
	b := src.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
