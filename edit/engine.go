package edit

import (
	"errors"
	"fmt"
	"image"

	"github.com/golang/glog"

	"github.com/janpfeifer/retouch/filters"
)

// Kernel is the filter backend collaborator: it applies the kernel named
// by id to src and returns the transformed image. The engine treats it as
// opaque beyond the identifier.
type Kernel interface {
	Apply(src image.Image, id filters.ID) (image.Image, error)
}

// KernelFunc adapts a plain function to the Kernel interface.
type KernelFunc func(src image.Image, id filters.ID) (image.Image, error)

// Apply implements the Kernel interface.
func (f KernelFunc) Apply(src image.Image, id filters.ID) (image.Image, error) {
	return f(src, id)
}

// RenderError reports a failure to move the source image through the
// pipeline. Stage names the pipeline stage that failed.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error at %s stage: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Engine renders previews. It is stateless: two calls with the same
// source and state produce bit-identical output, regardless of what was
// rendered in between.
type Engine struct {
	kernel Kernel
}

// NewEngine creates an engine backed by the given filter kernel. Passing
// nil uses the built-in catalog kernels.
func NewEngine(kernel Kernel) *Engine {
	if kernel == nil {
		kernel = KernelFunc(filters.Apply)
	}
	return &Engine{kernel: kernel}
}

// Render applies state to source and returns the displayable preview.
// The pipeline always starts from source, never from a prior render:
//
//  1. copy source into the working representation,
//  2. apply the selected filter, if any (a kernel failure is logged and
//     the unfiltered working image is kept for this pass),
//  3. apply the exposure adjustment unconditionally,
//  4. flatten back into a displayable image with the source's bounds.
func (e *Engine) Render(source image.Image, state State) (*image.RGBA, error) {
	if source == nil {
		return nil, &RenderError{Stage: "decode", Err: errors.New("no source image")}
	}
	bounds := source.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, &RenderError{Stage: "decode", Err: fmt.Errorf("source image has empty bounds %v", bounds)}
	}

	working := image.Image(source)
	if state.FilterID != filters.None {
		filtered, err := e.kernel.Apply(working, state.FilterID)
		if err != nil {
			// Best effort: show the image without the filter rather
			// than failing the whole render.
			glog.Errorf("filter id=%d (%s) failed, rendering without it: %v",
				state.FilterID, state.FilterLabel, err)
		} else {
			working = filtered
		}
	}

	out := filters.Exposure(working, state.Brightness)
	if got := out.Bounds(); got != bounds {
		return nil, &RenderError{Stage: "flatten",
			Err: fmt.Errorf("output bounds %v do not match source bounds %v", got, bounds)}
	}
	return out, nil
}
