package segchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRegionsTwoBlocks(t *testing.T) {
	// 4x1 raster: two linked 2x1 blocks, unlinked from each other.
	src, err := NewSliceSource([]uint8{1, 1, 9, 9}, 0, 4, 1, 4)
	require.NoError(t, err)
	links, err := BuildLinks(src, 0)
	require.NoError(t, err)

	points, segs := extractRegions(links, 4, 1)
	require.Len(t, segs, 2)
	assert.Len(t, points, 4)

	assert.Equal(t, 2, segs[0].Count())
	assert.Equal(t, BBox{XMin: 0, XMax: 1, YMin: 0, YMax: 0}, segs[0].BBox)
	assert.Equal(t, 2, segs[1].Count())
	assert.Equal(t, BBox{XMin: 2, XMax: 3, YMin: 0, YMax: 0}, segs[1].BBox)
}

func TestExtractRegionsStripsOwnedBit(t *testing.T) {
	src, err := NewSliceSource([]uint8{1, 1}, 0, 2, 1, 2)
	require.NoError(t, err)
	links, err := BuildLinks(src, 0)
	require.NoError(t, err)

	points, _ := extractRegions(links, 2, 1)
	for _, p := range points {
		assert.Equal(t, uint8(0), p.Link&owned, "owned bit must never leak into emitted points")
	}
}

func TestExtractRegionsSingleRowRasterOrder(t *testing.T) {
	// Three isolated pixels: seeding order must match raster-scan order.
	src, err := NewSliceSource([]uint8{1, 2, 3}, 0, 3, 1, 3)
	require.NoError(t, err)
	links, err := BuildLinks(src, 0)
	require.NoError(t, err)

	_, segs := extractRegions(links, 3, 1)
	require.Len(t, segs, 3)
	assert.Equal(t, 0, segs[0].BBox.XMin)
	assert.Equal(t, 1, segs[1].BBox.XMin)
	assert.Equal(t, 2, segs[2].BBox.XMin)
}
