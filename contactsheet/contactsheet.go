// Package contactsheet renders the comparison gallery into a single
// image: a grid of snapshot thumbnails, each with its label drawn
// underneath, so saved variants can be compared side by side.
package contactsheet

import (
	"errors"
	"image"
	"image/color"
	stddraw "image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/golang/glog"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"

	"github.com/janpfeifer/retouch/gallery"
)

// DPI constant. Ideally it would be read from the system.
const DPI = 96

// Options controls the sheet layout. The zero value gets sensible
// defaults.
type Options struct {
	// Columns in the grid. Default 3.
	Columns int

	// ThumbWidth is the width each snapshot is scaled down to; taller
	// snapshots keep their aspect ratio. Snapshots narrower than this
	// are left unscaled. Default 320.
	ThumbWidth int

	// Padding between cells, in pixels. Default 12.
	Padding int

	// LabelSize is the label font size in points. Default 14.
	LabelSize float64

	// Background of the sheet. Default near-black.
	Background color.Color
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.Columns <= 0 {
		out.Columns = 3
	}
	if out.ThumbWidth <= 0 {
		out.ThumbWidth = 320
	}
	if out.Padding <= 0 {
		out.Padding = 12
	}
	if out.LabelSize <= 0 {
		out.LabelSize = 14
	}
	if out.Background == nil {
		out.Background = color.RGBA{R: 24, G: 24, B: 24, A: 255}
	}
	return out
}

// Render lays the snapshots out newest first, left to right, top to
// bottom, and returns the composed sheet.
func Render(snaps []gallery.Snapshot, opts Options) (*image.RGBA, error) {
	if len(snaps) == 0 {
		return nil, errors.New("empty gallery, nothing to render")
	}
	opts = opts.withDefaults()

	thumbs := make([]*image.RGBA, len(snaps))
	labels := make([]*image.RGBA, len(snaps))
	maxThumbH, maxLabelH := 0, 0
	for i, snap := range snaps {
		thumbs[i] = thumbnail(snap.Image(), opts.ThumbWidth)
		labels[i] = renderLabel(snap.Label(), opts.LabelSize, color.White)
		if h := thumbs[i].Rect.Dy(); h > maxThumbH {
			maxThumbH = h
		}
		if h := labels[i].Rect.Dy(); h > maxLabelH {
			maxLabelH = h
		}
	}

	columns := opts.Columns
	if columns > len(snaps) {
		columns = len(snaps)
	}
	rows := (len(snaps) + columns - 1) / columns
	cellW := opts.ThumbWidth + opts.Padding
	cellH := maxThumbH + maxLabelH + 2*opts.Padding

	sheet := image.NewRGBA(image.Rect(0, 0,
		columns*cellW+opts.Padding, rows*cellH+opts.Padding))
	stddraw.Draw(sheet, sheet.Rect, image.NewUniform(opts.Background), image.Point{}, stddraw.Src)

	for i := range snaps {
		col, row := i%columns, i/columns
		x := opts.Padding + col*cellW
		y := opts.Padding + row*cellH

		thumb := thumbs[i]
		target := image.Rect(x, y, x+thumb.Rect.Dx(), y+thumb.Rect.Dy())
		stddraw.Draw(sheet, target, thumb, thumb.Rect.Min, stddraw.Src)

		label := labels[i]
		ly := y + maxThumbH + opts.Padding/2
		ltarget := image.Rect(x, ly, x+label.Rect.Dx(), ly+label.Rect.Dy())
		stddraw.Draw(sheet, ltarget, label, label.Rect.Min, stddraw.Over)
	}
	glog.V(2).Infof("contact sheet: %d snapshots, %dx%d",
		len(snaps), sheet.Rect.Dx(), sheet.Rect.Dy())
	return sheet, nil
}

// thumbnail scales img down to the given width, preserving aspect ratio.
// Images already narrow enough are copied unscaled.
func thumbnail(img *image.RGBA, width int) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Dx() <= width {
		out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		stddraw.Draw(out, out.Rect, img, bounds.Min, stddraw.Src)
		return out
	}
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(out, out.Rect, img, bounds, draw.Src, nil)
	return out
}

var (
	goboldOnce sync.Once
	goboldFont *truetype.Font
)

// renderLabel draws text into a tightly sized RGBA image.
func renderLabel(text string, size float64, col color.Color) *image.RGBA {
	goboldOnce.Do(func() {
		var err error
		goboldFont, err = truetype.Parse(gobold.TTF)
		if err != nil {
			glog.Fatalf("Failed to parse golang.org/x/image/font/gofont/gobold TTF: %v", err)
		}
	})
	d := &font.Drawer{
		Src: image.NewUniform(col),
		Face: truetype.NewFace(goboldFont, &truetype.Options{
			Size:       size,
			DPI:        DPI,
			Hinting:    font.HintingFull,
			SubPixelsX: 8,
			SubPixelsY: 8,
		}),
		Dot: fixed.Point26_6{X: 0, Y: fixed.Int26_6(size * 64)},
	}
	boundingRect, _ := d.BoundString(text)
	rendered := image.NewRGBA(image.Rect(0, 0,
		boundingRect.Max.X.Ceil()+1, boundingRect.Max.Y.Ceil()+int(size/2)))
	d.Dst = rendered
	d.DrawString(text)
	normalizeAlpha(rendered)
	return rendered
}

// normalizeAlpha stretches the label's alpha channel so the brightest
// anti-aliased pixel is fully opaque.
func normalizeAlpha(img *image.RGBA) {
	var maxAlpha uint8
	for ii := 0; ii < len(img.Pix); ii += 4 {
		if alpha := img.Pix[ii+3]; alpha > maxAlpha {
			maxAlpha = alpha
		}
	}
	if maxAlpha == 0 {
		return
	}
	const M = 1<<8 - 1
	maxAlpha16 := uint16(maxAlpha)
	for ii := 0; ii < len(img.Pix); ii += 4 {
		img.Pix[ii+3] = uint8(uint16(img.Pix[ii+3]) * M / maxAlpha16)
	}
}
