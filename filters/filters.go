// Package filters holds the color-transformation kernels and the static
// catalog that names them. Kernels are pure: they never modify the source
// image, they wrap it and compute pixels on demand.
package filters

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// ID is an opaque token naming a color-transformation kernel. The zero
// value None means "no filter".
type ID int

const (
	None ID = iota
	Sepia
	Mono
	Noir
	Chrome
	Vignette
)

// OriginalLabel is the label used when no filter is selected.
const OriginalLabel = "Original"

// Filter is a color-transformation kernel. Apply wraps the source image;
// the returned image computes filtered pixels lazily.
type Filter interface {
	ID() ID
	Label() string
	Apply(image.Image) image.Image
}

// catalog order is fixed at startup; it is the order presented to users.
var catalog = []Filter{
	&sepia{},
	&mono{},
	&noir{},
	&chrome{},
	&vignette{Strength: 0.75},
}

// Entry is one catalog row: a human-readable label and the opaque
// identifier the engine uses to select the kernel.
type Entry struct {
	Label string
	ID    ID
}

// Catalog returns the fixed, ordered list of available filters.
func Catalog() []Entry {
	entries := make([]Entry, 0, len(catalog))
	for _, f := range catalog {
		entries = append(entries, Entry{Label: f.Label(), ID: f.ID()})
	}
	return entries
}

// Get returns the filter kernel for the given identifier.
func Get(id ID) (Filter, bool) {
	for _, f := range catalog {
		if f.ID() == id {
			return f, true
		}
	}
	return nil, false
}

// ByLabel finds a filter by its label, case-insensitively. Used by the
// command line to translate user input into identifiers.
func ByLabel(label string) (Filter, bool) {
	for _, f := range catalog {
		if strings.EqualFold(f.Label(), label) {
			return f, true
		}
	}
	return nil, false
}

// Apply runs the kernel named by id over src. This is the boundary the
// adjustment engine calls: the engine never inspects kernels beyond the
// identifier.
func Apply(src image.Image, id ID) (image.Image, error) {
	f, ok := Get(id)
	if !ok {
		return nil, fmt.Errorf("no filter kernel registered for id=%d", id)
	}
	return f.Apply(src), nil
}

// filterImage wraps a source image with a per-pixel transformation.
type filterImage struct {
	source image.Image
	atFn   func(x, y int, under color.Color) color.Color
}

// ColorModel returns the Image's color model.
func (f *filterImage) ColorModel() color.Model { return f.source.ColorModel() }

// Bounds returns the domain for which At can return non-zero color.
// The bounds do not necessarily contain the point (0, 0).
func (f *filterImage) Bounds() image.Rectangle { return f.source.Bounds() }

// At returns the color of the pixel at (x, y).
func (f *filterImage) At(x, y int) color.Color {
	return f.atFn(x, y, f.source.At(x, y))
}

// clamp8 clamps a float64 channel value to the uint8 range, rounding.
func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// rgb8 extracts 8-bit channels from a color. Alpha is returned separately
// and is always passed through kernels untouched.
func rgb8(c color.Color) (r, g, b float64, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return float64(r16 >> 8), float64(g16 >> 8), float64(b16 >> 8), uint8(a16 >> 8)
}
