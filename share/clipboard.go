// Package share sends rendered previews and committed snapshots to
// outside destinations: the system clipboard and Google Drive.
package share

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/golang/glog"
	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// CopyImage places img on the system clipboard as PNG.
func CopyImage(img image.Image) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", clipboardErr)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode clipboard image: %w", err)
	}
	glog.V(2).Infof("copying image to clipboard (%d bytes)", buf.Len())
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}
