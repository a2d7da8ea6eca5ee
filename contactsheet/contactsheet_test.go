package contactsheet

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/janpfeifer/retouch/gallery"
)

func testGallery(t *testing.T, n int) []gallery.Snapshot {
	t.Helper()
	g := gallery.New()
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 100, 80))
		_, err := g.Commit(img, "Sepia", float64(i)/10)
		require.NoError(t, err)
	}
	return g.Snapshots()
}

func TestRender_Empty(t *testing.T) {
	_, err := Render(nil, Options{})
	require.Error(t, err)
}

func TestRender_GridDimensions(t *testing.T) {
	snaps := testGallery(t, 5)
	sheet, err := Render(snaps, Options{Columns: 2, ThumbWidth: 100, Padding: 10})
	require.NoError(t, err)

	// 5 snapshots in 2 columns -> 3 rows. Thumbnails stay 100x80.
	labelH := sheet.Rect.Dy()/3 - 80 - 20
	require.Greater(t, labelH, 0)
	require.Equal(t, 2*(100+10)+10, sheet.Rect.Dx())
}

func TestRender_SingleSnapshotSingleColumn(t *testing.T) {
	snaps := testGallery(t, 1)
	sheet, err := Render(snaps, Options{ThumbWidth: 100, Padding: 10})
	require.NoError(t, err)
	require.Equal(t, 100+2*10, sheet.Rect.Dx())
}

func TestThumbnail_ScalesDownOnly(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 640, 480))
	small := thumbnail(big, 320)
	require.Equal(t, image.Rect(0, 0, 320, 240), small.Rect)

	tiny := image.NewRGBA(image.Rect(0, 0, 100, 50))
	same := thumbnail(tiny, 320)
	require.Equal(t, image.Rect(0, 0, 100, 50), same.Rect)
}

func TestRenderLabel_NonEmpty(t *testing.T) {
	label := renderLabel("Sepia (+20%)", 14, color.White)
	require.Greater(t, label.Rect.Dx(), 0)
	require.Greater(t, label.Rect.Dy(), 0)

	// Some pixel must be fully opaque after alpha normalization.
	opaque := false
	for i := 3; i < len(label.Pix); i += 4 {
		if label.Pix[i] == 255 {
			opaque = true
			break
		}
	}
	require.True(t, opaque)
}
