package segchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLinksValidation(t *testing.T) {
	src, err := NewSliceSource([]uint8{0, 0, 0, 0}, 0, 2, 2, 2)
	require.NoError(t, err)

	_, err = BuildLinks(nil, 0)
	assert.Error(t, err)

	_, err = BuildLinks(src, -1)
	assert.Error(t, err, "negative threshold must be rejected")
}

func TestBuildLinksExactEqualitySymmetry(t *testing.T) {
	// 2x2 uniform block: every pixel links to both its neighbours.
	src, err := NewSliceSource([]uint8{5, 5, 5, 5}, 0, 2, 2, 2)
	require.NoError(t, err)

	links, err := BuildLinks(src, 0)
	require.NoError(t, err)
	require.Len(t, links, 4)

	assert.Equal(t, EAST|SOUTH, links[0])
	assert.Equal(t, WEST|SOUTH, links[1])
	assert.Equal(t, EAST|NORTH, links[2])
	assert.Equal(t, WEST|NORTH, links[3])
}

func TestBuildLinksThresholdSeparatesRegions(t *testing.T) {
	// A checkerboard of 0/100: no link should form with threshold 10.
	src, err := NewSliceSource([]uint8{0, 100, 100, 0}, 0, 2, 2, 2)
	require.NoError(t, err)

	links, err := BuildLinks(src, 10)
	require.NoError(t, err)
	for _, l := range links {
		assert.Equal(t, uint8(0), l)
	}
}

func TestBuildLinksViaImageLuma(t *testing.T) {
	// BuildLinks must dispatch through any PixelSource, not just
	// SliceSource, as long as it implements rasterSource[uint8].
	img := newTestGray(2, 2, []uint8{9, 9, 9, 9})
	src, err := NewImageLuma(img)
	require.NoError(t, err)

	links, err := BuildLinks(src, 0)
	require.NoError(t, err)
	assert.Equal(t, EAST|SOUTH, links[0])
}
