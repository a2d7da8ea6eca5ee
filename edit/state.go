// Package edit implements the non-destructive adjustment pipeline: the
// stateless rendering engine and the mutable edit session that drives it.
// Every preview is recomputed from the originally loaded source image, so
// successive edits never compound quality loss.
package edit

import "github.com/janpfeifer/retouch/filters"

// State is the full description of the current adjustment: which filter
// kernel is selected (filters.None for none) and the exposure value.
type State struct {
	// FilterID selects the color filter; filters.None means no filter.
	FilterID filters.ID

	// FilterLabel is the human-readable name matching FilterID, or
	// filters.OriginalLabel when FilterID is filters.None.
	FilterLabel string

	// Brightness is the exposure adjustment in [-1, 1] stops. 0 leaves
	// the image untouched.
	Brightness float64
}

// DefaultState is the state of a freshly loaded image: no filter,
// brightness 0.
func DefaultState() State {
	return State{FilterID: filters.None, FilterLabel: filters.OriginalLabel}
}

// ClampBrightness restricts v to the valid brightness range [-1, 1].
func ClampBrightness(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
