package segchain

// Sample is the set of numeric pixel sample types the link builder is
// instantiated over: the 8/16/32/64-bit signed and unsigned integers and
// the two floating-point precisions named in spec.md §3. Complex and
// colour pixel types are recognised by PixelType but have no Sample
// instantiation — they are rejected before a generic builder is ever
// selected.
type Sample interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// PixelSource is the image view the link builder reads from: a
// (base, offset, pitch, width, height) view in spec.md §4.1 terms,
// minus the pointer arithmetic a host-language binding would otherwise
// need. Concrete sources are SliceSource[T] (a caller-owned numeric
// raster) and the image.Image adapters in imgsrc.go.
type PixelSource interface {
	// Dims returns the image width and height in pixels.
	Dims() (width, height int)
	// Type reports the pixel sample type this source carries.
	Type() PixelType
}

// SliceSource is a PixelSource backed by a flat, row-major numeric slice,
// the direct analogue of the C (base, offset, pitch) triple.
type SliceSource[T Sample] struct {
	Pix                    []T
	Offset                 int
	Width, Height, Stride  int
}

// NewSliceSource validates and constructs a SliceSource. It returns
// InvalidArgumentError if the stride is smaller than the width, if either
// dimension is non-positive, or if the backing slice is too short for the
// declared geometry.
func NewSliceSource[T Sample](pix []T, offset, width, height, stride int) (SliceSource[T], error) {
	var zero SliceSource[T]
	if pix == nil {
		return zero, InvalidArgumentError("nil pixel buffer")
	}
	if width <= 0 || height <= 0 {
		return zero, InvalidArgumentError("non-positive image dimensions")
	}
	if stride < width {
		return zero, InvalidArgumentError("stride < width")
	}
	if offset < 0 || offset+stride*(height-1)+width > len(pix) {
		return zero, InvalidArgumentError("pixel buffer too short for declared geometry")
	}
	return SliceSource[T]{Pix: pix, Offset: offset, Width: width, Height: height, Stride: stride}, nil
}

func (s SliceSource[T]) Dims() (int, int) { return s.Width, s.Height }

func (s SliceSource[T]) Type() PixelType {
	var z T
	return sampleTag(z)
}

func (s SliceSource[T]) at(x, y int) T {
	return s.Pix[s.Offset+y*s.Stride+x]
}

// sampleTag maps a zero value of T to its PixelType tag. The argument is
// only used for static dispatch; its value is never read.
func sampleTag[T Sample](_ T) PixelType {
	switch any(_zero[T]()).(type) {
	case int8:
		return I8
	case uint8:
		return U8
	case int16:
		return I16
	case uint16:
		return U16
	case int32:
		return I32
	case uint32:
		return U32
	case int64:
		return I64
	case uint64:
		return U64
	case float32:
		return F32
	case float64:
		return F64
	default:
		return NONE
	}
}

func _zero[T any]() T {
	var z T
	return z
}

// absDiffLE reports whether |a-b| <= threshold in T's own numeric space,
// per spec.md §4.1: unsigned types use max(a,b)-min(a,b) to avoid
// underflow, integer types otherwise widen only as needed, and signed
// integers/floats use ordinary subtraction and an absolute value.
func absDiffLE[T Sample](a, b T, threshold float64) bool {
	switch va := any(a).(type) {
	case uint8:
		vb := any(b).(uint8)
		d := va - vb
		if va < vb {
			d = vb - va
		}
		return float64(d) <= threshold
	case uint16:
		vb := any(b).(uint16)
		d := va - vb
		if va < vb {
			d = vb - va
		}
		return float64(d) <= threshold
	case uint32:
		vb := any(b).(uint32)
		d := va - vb
		if va < vb {
			d = vb - va
		}
		return float64(d) <= threshold
	case uint64:
		vb := any(b).(uint64)
		d := va - vb
		if va < vb {
			d = vb - va
		}
		return float64(d) <= threshold
	default:
		fa, fb := float64(a), float64(b)
		d := fa - fb
		if d < 0 {
			d = -d
		}
		return d <= threshold
	}
}

// exactEqual implements the threshold==0 fast path: equality, never a
// floating-point fabs comparison, so integer types compare exactly and
// floats compare by ==.
func exactEqual[T Sample](a, b T) bool {
	return a == b
}
