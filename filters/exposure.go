package filters

import (
	"image"
	"image/draw"
	"math"
)

// Exposure applies a brightness adjustment of the given number of stops
// to img and returns the result as a new RGBA image with the same bounds.
// Each color channel is scaled by 2^stops and clamped; alpha is left
// untouched. stops == 0 scales by exactly 1.0 and reproduces the input
// bit for bit.
//
// The returned image never aliases img's pixels, so callers can keep
// mutating-free references to both.
func Exposure(img image.Image, stops float64) *image.RGBA {
	out := Flatten(img)
	factor := math.Exp2(stops)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = clamp8(float64(out.Pix[i]) * factor)
		out.Pix[i+1] = clamp8(float64(out.Pix[i+1]) * factor)
		out.Pix[i+2] = clamp8(float64(out.Pix[i+2]) * factor)
	}
	return out
}

// Flatten renders any image, including the lazy kernel wrappers, into a
// freshly allocated RGBA image preserving the source bounds.
func Flatten(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}
