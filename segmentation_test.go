package segchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptySource is a PixelSource over a 0x0 image, which SliceSource's own
// validation refuses to construct but NewSegmentation must still accept.
type emptySource struct{}

func (emptySource) Dims() (int, int) { return 0, 0 }
func (emptySource) Type() PixelType  { return U8 }

func newTestSegmentation(t *testing.T) *Segmentation {
	t.Helper()
	// Two 2x2 blocks side by side, separated by a column of a different value.
	pix := []uint8{
		1, 1, 9, 2, 2,
		1, 1, 9, 2, 2,
	}
	src, err := NewSliceSource(pix, 0, 5, 2, 5)
	require.NoError(t, err)
	sgm, err := NewSegmentation(src, 0)
	require.NoError(t, err)
	return sgm
}

func TestNewSegmentationValidation(t *testing.T) {
	_, err := NewSegmentation(nil, 0)
	assert.Error(t, err)
}

func TestNewSegmentationEmptyImageIsValid(t *testing.T) {
	sgm, err := NewSegmentation(emptySource{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, sgm.NSegments())
	assert.Equal(t, 0, sgm.ImageWidth())
	assert.Equal(t, 0, sgm.ImageHeight())
	assert.EqualValues(t, 1, sgm.NRefs())

	pool, err := NewChainPool(sgm, DefaultChainOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, pool.Number())
}

func TestSegmentationBasics(t *testing.T) {
	sgm := newTestSegmentation(t)
	require.Equal(t, 3, sgm.NSegments())
	assert.Equal(t, 5, sgm.ImageWidth())
	assert.Equal(t, 2, sgm.ImageHeight())

	counts := sgm.Counts()
	assert.ElementsMatch(t, []int{4, 2, 4}, counts)

	_, err := sgm.BBox(99)
	assert.Error(t, err)
}

func TestSegmentationRefcounting(t *testing.T) {
	sgm := newTestSegmentation(t)
	assert.EqualValues(t, 1, sgm.NRefs())
	sgm.Ref()
	assert.EqualValues(t, 2, sgm.NRefs())
	sgm.Unref()
	sgm.Unref()
	assert.EqualValues(t, 0, sgm.NRefs())

	assert.Panics(t, func() { sgm.Unref() })
}

func TestSegmentationSelect(t *testing.T) {
	sgm := newTestSegmentation(t)

	_, err := sgm.Select(nil)
	assert.Error(t, err)
	_, err = sgm.Select([]int{99})
	assert.Error(t, err)

	sub, err := sgm.Select([]int{2, 0, 0})
	require.NoError(t, err)
	require.Equal(t, 3, sub.NSegments())
	assert.EqualValues(t, 1, sub.NRefs())

	origPts, err := sgm.Points(0)
	require.NoError(t, err)
	subPts, err := sub.Points(1)
	require.NoError(t, err)
	assert.Equal(t, origPts, subPts)

	// The selection owns an independent point buffer.
	subPts[0].X = -1
	origPtsAgain, err := sgm.Points(0)
	require.NoError(t, err)
	assert.NotEqual(t, subPts[0], origPtsAgain[0])
}
