package segchain

import "sync/atomic"

// Segmentation is an immutable, reference-counted handle owning one shared
// point buffer (all points, segment after segment, tightly packed) and one
// parallel array of segments, plus the source image's dimensions. It is
// safe for concurrent read-only use by multiple goroutines once
// construction (or Select) has returned, per spec.md §5 — but must not be
// mutated, and has no mutating methods.
type Segmentation struct {
	width, height int
	points        []Point
	segs          []Segment
	refs          atomic.Int32
}

// NewSegmentation runs the link builder over src and collapses the result
// into an ordered list of segments, per spec.md §4.1-§4.2. threshold must be
// non-negative. The returned handle has a reference count of one. A 0x0
// source is a valid, explicit edge case: it yields a handle with zero
// segments rather than an error.
func NewSegmentation(src PixelSource, threshold float64) (*Segmentation, error) {
	if src == nil {
		return nil, InvalidArgumentError("nil pixel source")
	}
	w, h := src.Dims()
	if w == 0 && h == 0 {
		sgm := &Segmentation{}
		sgm.refs.Store(1)
		return sgm, nil
	}
	if w <= 0 || h <= 0 {
		return nil, InvalidArgumentError("non-positive image dimensions")
	}
	links, err := BuildLinks(src, threshold)
	if err != nil {
		return nil, err
	}
	points, segs := extractRegions(links, w, h)
	sgm := &Segmentation{width: w, height: h, points: points, segs: segs}
	sgm.refs.Store(1)
	return sgm, nil
}

// Ref increments the reference count and returns the same handle, the Go
// analogue of the C link() call.
func (s *Segmentation) Ref() *Segmentation {
	s.refs.Add(1)
	return s
}

// Unref decrements the reference count. Segmentation carries no external
// resource beyond Go-managed memory, so a Segmentation whose count reaches
// zero simply becomes eligible for garbage collection; Unref still panics
// if called more times than the handle was ever referenced, since that
// indicates a use-after-free bug in the caller.
func (s *Segmentation) Unref() {
	if s.refs.Add(-1) < 0 {
		panic(unexpectedError("Unref called on a Segmentation with no outstanding references"))
	}
}

// NRefs reports the current reference count.
func (s *Segmentation) NRefs() int32 { return s.refs.Load() }

// ImageWidth returns the width of the source image in pixels.
func (s *Segmentation) ImageWidth() int { return s.width }

// ImageHeight returns the height of the source image in pixels.
func (s *Segmentation) ImageHeight() int { return s.height }

// NSegments returns the number of segments in the handle.
func (s *Segmentation) NSegments() int { return len(s.segs) }

func (s *Segmentation) segment(i int) (Segment, error) {
	if i < 0 || i >= len(s.segs) {
		return Segment{}, InvalidArgumentError("segment index out of range")
	}
	return s.segs[i], nil
}

// BBox returns the bounding box of segment i.
func (s *Segmentation) BBox(i int) (BBox, error) {
	seg, err := s.segment(i)
	return seg.BBox, err
}

// BBoxes returns the bounding boxes of every segment, in segment order.
func (s *Segmentation) BBoxes() []BBox {
	out := make([]BBox, len(s.segs))
	for i, seg := range s.segs {
		out[i] = seg.BBox
	}
	return out
}

// Center returns segment i's floating-point centre.
func (s *Segmentation) Center(i int) (xcen, ycen float64, err error) {
	seg, err := s.segment(i)
	return seg.XCen, seg.YCen, err
}

// Centers returns the floating-point centres of every segment, in segment
// order.
func (s *Segmentation) Centers() (xcens, ycens []float64) {
	xcens = make([]float64, len(s.segs))
	ycens = make([]float64, len(s.segs))
	for i, seg := range s.segs {
		xcens[i], ycens[i] = seg.XCen, seg.YCen
	}
	return xcens, ycens
}

// Count returns the number of points in segment i.
func (s *Segmentation) Count(i int) (int, error) {
	seg, err := s.segment(i)
	return seg.pointCount, err
}

// Counts returns the point counts of every segment, in segment order.
func (s *Segmentation) Counts() []int {
	out := make([]int, len(s.segs))
	for i, seg := range s.segs {
		out[i] = seg.pointCount
	}
	return out
}

// Points returns the (copied) points of segment i, in the breadth-first
// order the region extractor produced them.
func (s *Segmentation) Points(i int) ([]Point, error) {
	seg, err := s.segment(i)
	if err != nil {
		return nil, err
	}
	out := make([]Point, seg.pointCount)
	copy(out, s.points[seg.pointStart:seg.pointStart+seg.pointCount])
	return out, nil
}

func (s *Segmentation) pointsRaw(i int) []Point {
	seg := s.segs[i]
	return s.points[seg.pointStart : seg.pointStart+seg.pointCount]
}

// Select constructs a new handle containing only the segments at the given
// indices, in the given order. Points of those segments are copied, so the
// new handle owns an independent point buffer; duplicates and reorderings
// are permitted. The new handle has a reference count of one. It returns
// InvalidArgumentError if indices is empty or any entry is out of range.
func (s *Segmentation) Select(indices []int) (*Segmentation, error) {
	if s == nil {
		return nil, InvalidArgumentError("nil segmentation")
	}
	if len(indices) == 0 {
		return nil, InvalidArgumentError("empty index list")
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.segs) {
			return nil, InvalidArgumentError("select index out of range")
		}
	}

	newSegs := make([]Segment, len(indices))
	var totalPoints int
	for _, idx := range indices {
		totalPoints += s.segs[idx].pointCount
	}
	newPoints := make([]Point, 0, totalPoints)
	for i, idx := range indices {
		src := s.segs[idx]
		start := len(newPoints)
		newPoints = append(newPoints, s.pointsRaw(idx)...)
		newSegs[i] = Segment{
			BBox:       src.BBox,
			XCen:       src.XCen,
			YCen:       src.YCen,
			pointStart: start,
			pointCount: src.pointCount,
		}
	}

	out := &Segmentation{width: s.width, height: s.height, points: newPoints, segs: newSegs}
	out.refs.Store(1)
	return out, nil
}
