package filters

import (
	"image"
	"image/color"
)

// The point kernels below transform each pixel independently of its
// position. They share the filterImage wrapper, like the position-aware
// kernels, so the engine treats them all uniformly.

// luminance is the Rec. 601 luma of the given 8-bit channels.
func luminance(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

type sepia struct{}

func (sepia) ID() ID        { return Sepia }
func (sepia) Label() string { return "Sepia" }

// Apply implements the Filter interface.
func (s *sepia) Apply(src image.Image) image.Image {
	return &filterImage{src, s.at}
}

func (s *sepia) at(x, y int, under color.Color) color.Color {
	r, g, b, a := rgb8(under)
	return color.RGBA{
		R: clamp8(0.393*r + 0.769*g + 0.189*b),
		G: clamp8(0.349*r + 0.686*g + 0.168*b),
		B: clamp8(0.272*r + 0.534*g + 0.131*b),
		A: a,
	}
}

type mono struct{}

func (mono) ID() ID        { return Mono }
func (mono) Label() string { return "Mono" }

// Apply implements the Filter interface.
func (m *mono) Apply(src image.Image) image.Image {
	return &filterImage{src, m.at}
}

func (m *mono) at(x, y int, under color.Color) color.Color {
	r, g, b, a := rgb8(under)
	l := clamp8(luminance(r, g, b))
	return color.RGBA{R: l, G: l, B: l, A: a}
}

// noir is a high-contrast monochrome: luma stretched around mid-gray.
type noir struct{}

func (noir) ID() ID        { return Noir }
func (noir) Label() string { return "Noir" }

const noirContrast = 1.5

// Apply implements the Filter interface.
func (n *noir) Apply(src image.Image) image.Image {
	return &filterImage{src, n.at}
}

func (n *noir) at(x, y int, under color.Color) color.Color {
	r, g, b, a := rgb8(under)
	l := clamp8((luminance(r, g, b)-128)*noirContrast + 128)
	return color.RGBA{R: l, G: l, B: l, A: a}
}

// chrome boosts saturation by pushing each channel away from the pixel's
// luma.
type chrome struct{}

func (chrome) ID() ID        { return Chrome }
func (chrome) Label() string { return "Chrome" }

const chromeSaturation = 1.4

// Apply implements the Filter interface.
func (c *chrome) Apply(src image.Image) image.Image {
	return &filterImage{src, c.at}
}

func (c *chrome) at(x, y int, under color.Color) color.Color {
	r, g, b, a := rgb8(under)
	l := luminance(r, g, b)
	return color.RGBA{
		R: clamp8(l + chromeSaturation*(r-l)),
		G: clamp8(l + chromeSaturation*(g-l)),
		B: clamp8(l + chromeSaturation*(b-l)),
		A: a,
	}
}
