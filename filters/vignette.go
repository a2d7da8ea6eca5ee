package filters

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// vignette darkens pixels radially towards the image edges. The falloff
// ellipse is fitted to the image bounds, so the effect adapts to each
// source without parameters.
type vignette struct {
	// Strength in [0, 1]: how dark the farthest corner gets.
	Strength float64
}

func (vignette) ID() ID        { return Vignette }
func (vignette) Label() string { return "Vignette" }

// Apply implements the Filter interface.
func (v *vignette) Apply(src image.Image) image.Image {
	bounds := src.Bounds()
	center := bounds.Min.Add(bounds.Max).Div(2)
	c := mgl64.Vec2{float64(center.X), float64(center.Y)}
	radius := mgl64.Vec2{
		float64(bounds.Max.X) - c.X(),
		float64(bounds.Max.Y) - c.Y(),
	}
	if radius.X() == 0 || radius.Y() == 0 {
		return src
	}
	at := func(x, y int, under color.Color) color.Color {
		// Normalized squared elliptical distance from the center:
		// 0 at the center, 1 on the inscribed ellipse, >1 in the corners.
		dx := (float64(x) - c.X()) / radius.X()
		dy := (float64(y) - c.Y()) / radius.Y()
		dist := dx*dx + dy*dy
		if dist <= vignetteInner {
			return under
		}
		t := (dist - vignetteInner) / (vignetteOuter - vignetteInner)
		if t > 1 {
			t = 1
		}
		// Smoothstep, so the falloff has no visible ring.
		t = t * t * (3 - 2*t)
		factor := 1 - v.Strength*t
		r, g, b, a := rgb8(under)
		return color.RGBA{
			R: clamp8(r * factor),
			G: clamp8(g * factor),
			B: clamp8(b * factor),
			A: a,
		}
	}
	return &filterImage{src, at}
}

const (
	vignetteInner = 0.3
	vignetteOuter = 2.0
)
