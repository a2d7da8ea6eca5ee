package filters

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

// testImage builds a small gradient with distinct channel values.
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 30),
				G: uint8(y * 40),
				B: uint8((x + y) * 10),
				A: 255,
			})
		}
	}
	return img
}

func TestCatalog_OrderAndLookup(t *testing.T) {
	entries := Catalog()
	require.Equal(t, []Entry{
		{Label: "Sepia", ID: Sepia},
		{Label: "Mono", ID: Mono},
		{Label: "Noir", ID: Noir},
		{Label: "Chrome", ID: Chrome},
		{Label: "Vignette", ID: Vignette},
	}, entries)

	for _, entry := range entries {
		f, ok := Get(entry.ID)
		require.True(t, ok)
		require.Equal(t, entry.Label, f.Label())
	}
	_, ok := Get(None)
	require.False(t, ok)
}

func TestByLabel_CaseInsensitive(t *testing.T) {
	f, ok := ByLabel("sepia")
	require.True(t, ok)
	require.Equal(t, Sepia, f.ID())

	_, ok = ByLabel("Kodachrome")
	require.False(t, ok)
}

func TestApply_UnknownID(t *testing.T) {
	_, err := Apply(testImage(), ID(999))
	require.Error(t, err)
}

func TestMono_EqualChannels(t *testing.T) {
	out := Flatten(mustApply(t, testImage(), Mono))
	for i := 0; i < len(out.Pix); i += 4 {
		require.Equal(t, out.Pix[i], out.Pix[i+1])
		require.Equal(t, out.Pix[i], out.Pix[i+2])
		require.Equal(t, uint8(255), out.Pix[i+3])
	}
}

func TestSepia_KnownPixel(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 200, A: 255})
	out := Flatten(mustApply(t, src, Sepia))

	// 0.393*100 + 0.769*50 + 0.189*200 = 115.55 -> 116, etc.
	require.Equal(t, uint8(116), out.Pix[0])
	require.Equal(t, uint8(103), out.Pix[1])
	require.Equal(t, uint8(80), out.Pix[2])
	require.Equal(t, uint8(255), out.Pix[3])
}

func TestVignette_CenterUntouchedCornersDarker(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 200, 200, 200, 255
	}
	out := Flatten(mustApply(t, src, Vignette))

	cr, _, _, _ := out.At(32, 32).RGBA()
	require.Equal(t, uint32(200), cr>>8)
	kr, _, _, _ := out.At(0, 0).RGBA()
	require.Less(t, kr>>8, uint32(200))
}

func TestFilters_Deterministic(t *testing.T) {
	src := testImage()
	for _, entry := range Catalog() {
		a := Flatten(mustApply(t, src, entry.ID))
		b := Flatten(mustApply(t, src, entry.ID))
		require.Equal(t, a.Pix, b.Pix, "filter %s not deterministic", entry.Label)
	}
}

func TestExposure_ZeroIsNoOp(t *testing.T) {
	src := testImage()
	out := Exposure(src, 0)
	require.Equal(t, src.Pix, out.Pix)
	require.NotSame(t, &src.Pix[0], &out.Pix[0])
}

func TestExposure_StopsScaleAndClamp(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 60, G: 200, B: 0, A: 255})

	up := Exposure(src, 1) // one stop up doubles the channels
	require.Equal(t, uint8(120), up.Pix[0])
	require.Equal(t, uint8(255), up.Pix[1]) // clamped
	require.Equal(t, uint8(0), up.Pix[2])
	require.Equal(t, uint8(255), up.Pix[3]) // alpha untouched

	down := Exposure(src, -1)
	require.Equal(t, uint8(30), down.Pix[0])
	require.Equal(t, uint8(100), down.Pix[1])
}

func TestExposure_PreservesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 18, 26))
	out := Exposure(src, 0.5)
	require.Equal(t, src.Bounds(), out.Bounds())
}

func mustApply(t *testing.T, src image.Image, id ID) image.Image {
	t.Helper()
	out, err := Apply(src, id)
	require.NoError(t, err)
	return out
}
