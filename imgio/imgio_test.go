package imgio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 1, color.RGBA{R: 200, G: 10, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestStd_DecodePNG(t *testing.T) {
	img, format, err := Std{}.Decode(bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

func TestStd_DecodeGarbage(t *testing.T) {
	_, _, err := Std{}.Decode(bytes.NewReader([]byte("not an image at all")))
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

func TestStd_EncodeRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 1, color.RGBA{R: 5, G: 6, B: 7, A: 255})

	var buf bytes.Buffer
	require.NoError(t, Std{}.Encode(&buf, src, "png"))

	img, format, err := Std{}.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, "png", format)
	r, g, b, _ := img.At(0, 1).RGBA()
	require.Equal(t, uint32(5), r>>8)
	require.Equal(t, uint32(6), g>>8)
	require.Equal(t, uint32(7), b>>8)
}

func TestStd_EncodeUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Std{}.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)), "heic")
	var eerr *EncodeError
	require.ErrorAs(t, err, &eerr)
	require.Equal(t, "heic", eerr.Format)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(Std{}, filepath.Join(t.TempDir(), "nope.png"))
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.NotEmpty(t, derr.Path)
}

func TestLoadAndSaveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t), 0644))

	img, err := LoadFile(Std{}, path)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.jpg")
	require.NoError(t, SaveFile(Std{}, out, img))
	reloaded, err := LoadFile(Std{}, out)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), reloaded.Bounds())
}

func TestFormatForPath(t *testing.T) {
	require.Equal(t, "jpeg", formatForPath("a/b/photo.jpg"))
	require.Equal(t, "jpeg", formatForPath("photo.JPEG"))
	require.Equal(t, "png", formatForPath("photo.png"))
	require.Equal(t, "png", formatForPath("no-extension"))
}
