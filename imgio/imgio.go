// Package imgio is the codec boundary between raw encoded bytes and the
// images the pipeline works on. The pipeline itself never touches
// encoded bytes; it receives a Codec and decoded images.
package imgio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/golang/glog"

	// Formats the standard codec understands.
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Codec decodes raw image bytes and encodes images back. Implementations
// must be safe for concurrent use.
type Codec interface {
	Decode(r io.Reader) (image.Image, string, error)
	Encode(w io.Writer, img image.Image, format string) error
}

// DecodeError reports that source bytes could not be decoded. The caller
// is expected to surface it and leave its session untouched.
type DecodeError struct {
	Path string // empty when decoding from a reader without a name
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot decode image: %v", e.Err)
	}
	return fmt.Sprintf("cannot decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failure to encode an image for output.
type EncodeError struct {
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cannot encode image as %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Std is the standard codec: it decodes png, jpeg, gif, bmp, tiff and
// webp, and encodes png and jpeg.
type Std struct {
	// JPEGQuality is used when encoding jpeg; 0 means jpeg.DefaultQuality.
	JPEGQuality int
}

// Decode implements the Codec interface.
func (c Std) Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	glog.V(2).Infof("decoded %s image, bounds=%v", format, img.Bounds())
	return img, format, nil
}

// Encode implements the Codec interface.
func (c Std) Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png", "":
		if err := png.Encode(w, img); err != nil {
			return &EncodeError{Format: "png", Err: err}
		}
	case "jpeg", "jpg":
		quality := c.JPEGQuality
		if quality == 0 {
			quality = jpeg.DefaultQuality
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return &EncodeError{Format: "jpeg", Err: err}
		}
	default:
		return &EncodeError{Format: format, Err: fmt.Errorf("unsupported output format")}
	}
	return nil
}

// LoadFile decodes the image stored at path using codec.
func LoadFile(codec Codec, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()
	img, _, err := codec.Decode(f)
	if err != nil {
		var derr *DecodeError
		if errors.As(err, &derr) {
			derr.Path = path
			return nil, derr
		}
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// SaveFile encodes img at path, choosing the format from the file
// extension (".jpg"/".jpeg" for jpeg, anything else png).
func SaveFile(codec Codec, path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{Format: formatForPath(path), Err: err}
	}
	defer f.Close()
	return codec.Encode(f, img, formatForPath(path))
}

func formatForPath(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			switch path[i+1:] {
			case "jpg", "jpeg", "JPG", "JPEG":
				return "jpeg"
			}
			return "png"
		}
	}
	return "png"
}
