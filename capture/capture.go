// Package capture supplies screen captures as an alternative image
// source for the edit session.
package capture

import (
	"fmt"
	"image"

	"github.com/golang/glog"
	"github.com/kbinani/screenshot"
)

// Primary captures the first active display.
func Primary() (*image.RGBA, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays to capture")
	}
	if n > 1 {
		glog.Warningf("%d displays active, capturing the first one.", n)
	}
	return Display(0)
}

// Display captures display number n.
func Display(n int) (*image.RGBA, error) {
	bounds := screenshot.GetDisplayBounds(n)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture display %d: %w", n, err)
	}
	glog.V(2).Infof("captured display %d, bounds: %+v", n, bounds)
	return img, nil
}
