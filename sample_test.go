package segchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSliceSourceValidation(t *testing.T) {
	pix := []uint8{1, 2, 3, 4}
	_, err := NewSliceSource(pix, 0, 2, 2, 2)
	require.NoError(t, err)

	_, err = NewSliceSource[uint8](nil, 0, 2, 2, 2)
	assert.Error(t, err)

	_, err = NewSliceSource(pix, 0, 0, 2, 2)
	assert.Error(t, err)

	_, err = NewSliceSource(pix, 0, 2, 2, 1)
	assert.Error(t, err, "stride smaller than width must be rejected")

	_, err = NewSliceSource(pix, 0, 3, 3, 3)
	assert.Error(t, err, "buffer too short for the declared dimensions must be rejected")
}

func TestSliceSourceType(t *testing.T) {
	u8, err := NewSliceSource([]uint8{0}, 0, 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, U8, u8.Type())

	f64, err := NewSliceSource([]float64{0}, 0, 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, F64, f64.Type())
}

func TestAbsDiffLEUnsignedNoOverflow(t *testing.T) {
	assert.True(t, absDiffLE(uint8(0), uint8(255), 255))
	assert.False(t, absDiffLE(uint8(0), uint8(255), 10))
	assert.True(t, absDiffLE(uint8(10), uint8(5), 5))
}

func TestExactEqual(t *testing.T) {
	assert.True(t, exactEqual(int32(5), int32(5)))
	assert.False(t, exactEqual(int32(5), int32(6)))
}
