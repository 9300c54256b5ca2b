package segchain

// PixelType is the closed set of numeric sample types the link builder
// knows how to dispatch on. Complex and colour variants are recognised by
// the tag but rejected by the segmentation path.
type PixelType int

// The pixel-type tag set. Numeric identifiers are not part of the external
// ABI, but the set of names is.
const (
	NONE PixelType = iota
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	F32
	F64
	CPLX_F32
	CPLX_F64
	RGB
	RGBA
)

func (t PixelType) String() string {
	switch t {
	case NONE:
		return "NONE"
	case I8:
		return "I8"
	case U8:
		return "U8"
	case I16:
		return "I16"
	case U16:
		return "U16"
	case I32:
		return "I32"
	case U32:
		return "U32"
	case I64:
		return "I64"
	case U64:
		return "U64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	case CPLX_F32:
		return "CPLX_F32"
	case CPLX_F64:
		return "CPLX_F64"
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	default:
		return "PixelType(?)"
	}
}

// supported reports whether the segmentation path handles this pixel type.
// Complex and colour tags are recognised but unsupported.
func (t PixelType) supported() bool {
	switch t {
	case I8, U8, I16, U16, I32, U32, I64, U64, F32, F64:
		return true
	default:
		return false
	}
}

// Link bitmap codes, exposed so hosts can interpret a Point's Link
// attribute. OWNED is internal to the region extractor and must never
// appear in an emitted Point.
const (
	EAST  uint8 = 1
	WEST  uint8 = 2
	NORTH uint8 = 4
	SOUTH uint8 = 8
	owned uint8 = 0x80

	linkMask = EAST | WEST | NORTH | SOUTH
)

// Point is a single pixel location plus the four-direction link mask it had
// at extraction time (the OWNED bit, if any, is always stripped).
type Point struct {
	X, Y int16
	Link uint8
}

// BBox is an axis-aligned, inclusive-on-both-ends integer bounding box.
type BBox struct {
	XMin, XMax, YMin, YMax int
}

// Width returns xmax - xmin + 1.
func (b BBox) Width() int { return b.XMax - b.XMin + 1 }

// Height returns ymax - ymin + 1.
func (b BBox) Height() int { return b.YMax - b.YMin + 1 }

// Center returns the floating-point centre ((xmin+xmax)/2, (ymin+ymax)/2).
func (b BBox) Center() (xcen, ycen float64) {
	return float64(b.XMin+b.XMax) / 2, float64(b.YMin+b.YMax) / 2
}

// FBBox is a floating-point bounding box, used for chain geometry after an
// affine transform has been applied.
type FBBox struct {
	XMin, XMax, YMin, YMax float64
}
