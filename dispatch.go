package segchain

// BuildLinks fills a link bitmap the same shape as src such that bit EAST
// of (x,y) is set iff (x+1,y) is in range and |I(x,y)-I(x+1,y)| <= threshold
// (and symmetrically WEST, NORTH, SOUTH), per spec.md §4.1. threshold must
// be non-negative; threshold == 0 uses exact equality rather than a
// fabs-style comparison, which matters for integer types and to preserve
// exact-match semantics.
//
// BuildLinks is the one runtime dispatch table the design notes describe:
// it selects a specialised generic builder per supported numeric type
// through a switch on the source's pixel-type tag, followed by a type
// assertion to the matching rasterSource instantiation.
func BuildLinks(src PixelSource, threshold float64) ([]uint8, error) {
	if src == nil {
		return nil, InvalidArgumentError("nil pixel source")
	}
	if threshold < 0 {
		return nil, InvalidArgumentError("negative threshold")
	}
	w, h := src.Dims()
	if w <= 0 || h <= 0 {
		return nil, InvalidArgumentError("non-positive image dimensions")
	}
	if !src.Type().supported() {
		return nil, InvalidArgumentError("unsupported or unrecognised pixel type: " + src.Type().String())
	}

	// Dispatch table keyed on the pixel-type tag: one specialised generic
	// builder per supported numeric type. Any PixelSource — a
	// SliceSource[T] or an image.Image adapter — is eligible as long as it
	// implements the matching at(x,y) accessor.
	switch src.Type() {
	case I8:
		if s, ok := src.(rasterSource[int8]); ok {
			return buildLinks[int8](s, w, h, threshold), nil
		}
	case U8:
		if s, ok := src.(rasterSource[uint8]); ok {
			return buildLinks[uint8](s, w, h, threshold), nil
		}
	case I16:
		if s, ok := src.(rasterSource[int16]); ok {
			return buildLinks[int16](s, w, h, threshold), nil
		}
	case U16:
		if s, ok := src.(rasterSource[uint16]); ok {
			return buildLinks[uint16](s, w, h, threshold), nil
		}
	case I32:
		if s, ok := src.(rasterSource[int32]); ok {
			return buildLinks[int32](s, w, h, threshold), nil
		}
	case U32:
		if s, ok := src.(rasterSource[uint32]); ok {
			return buildLinks[uint32](s, w, h, threshold), nil
		}
	case I64:
		if s, ok := src.(rasterSource[int64]); ok {
			return buildLinks[int64](s, w, h, threshold), nil
		}
	case U64:
		if s, ok := src.(rasterSource[uint64]); ok {
			return buildLinks[uint64](s, w, h, threshold), nil
		}
	case F32:
		if s, ok := src.(rasterSource[float32]); ok {
			return buildLinks[float32](s, w, h, threshold), nil
		}
	case F64:
		if s, ok := src.(rasterSource[float64]); ok {
			return buildLinks[float64](s, w, h, threshold), nil
		}
	}
	return nil, InvalidArgumentError("pixel source does not implement at() for its declared type")
}
