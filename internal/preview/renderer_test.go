package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeGray(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.RGBA{R: 255, A: 255})
	}
	b, w, h, err := encodeGray(img, 80)
	require.NoError(t, err)
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, h)

	decoded, err := jpeg.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, color.GrayModel, decoded.ColorModel())
}

func TestRenderPageRejectsBadPage(t *testing.T) {
	_, _, _, err := RenderPageToJPEG("unused.pdf", 0, 72, 80)
	assert.ErrorContains(t, err, "out of range")
}

func TestWriteFirstPageMissingPDF(t *testing.T) {
	dir := t.TempDir()
	err := WriteFirstPage(filepath.Join(dir, "absent.pdf"), filepath.Join(dir, "p.jpg"), 0)
	assert.Error(t, err)
}
