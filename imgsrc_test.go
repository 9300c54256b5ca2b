package segchain

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGray builds a w*h image.Gray from row-major luma samples, for use
// across this package's tests.
func newTestGray(w, h int, pix []uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: pix[y*w+x]})
		}
	}
	return img
}

func TestNewImageLumaValidation(t *testing.T) {
	_, err := NewImageLuma(nil)
	assert.Error(t, err)

	empty := image.NewGray(image.Rect(0, 0, 0, 0))
	_, err = NewImageLuma(empty)
	assert.Error(t, err)
}

func TestImageLumaAtGray(t *testing.T) {
	img := newTestGray(2, 1, []uint8{10, 200})
	src, err := NewImageLuma(img)
	require.NoError(t, err)

	w, h := src.Dims()
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, uint8(10), src.at(0, 0))
	assert.Equal(t, uint8(200), src.at(1, 0))
}
