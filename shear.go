package segchain

import "math"

// Affine is the 4-entry affine shear matrix a chain is fit under:
// tx = a[0]*x + a[1]*y, ty = a[2]*x + a[3]*y. IdentityAffine leaves points
// unchanged; a[2] carries the negated vertical shear, a[1] the negated
// horizontal shear, per spec.md §4.5's glossary.
type Affine [4]float64

// IdentityAffine is the zero-shear matrix.
func IdentityAffine() Affine { return Affine{1, 0, 0, 1} }

func (a Affine) apply(x, y float64) (tx, ty float64) {
	return a[0]*x + a[1]*y, a[2]*x + a[3]*y
}

// fitLine performs the weighted first-order linear regression of spec.md
// §4.5: the minimiser (xm, ym, alpha) of Σ(y - ym - alpha*(x - xm))². It
// reports a singularError when the point set has zero x-spread, which the
// caller treats as "alignment test fails".
func fitLine(xs, ys []float64) (xm, ym, alpha float64, err error) {
	n := len(xs)
	if n == 0 {
		return 0, 0, 0, singularError("empty point set")
	}
	var sx, sy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
	}
	xm, ym = sx/float64(n), sy/float64(n)

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - xm
		sxx += dx * dx
		sxy += dx * (ys[i] - ym)
	}
	if sxx <= 0 {
		return xm, ym, 0, singularError("zero x-spread in regression")
	}
	return xm, ym, sxy / sxx, nil
}

// shortLineAccept implements the alignment test of spec.md §4.5: fit xs/ys,
// reject on a singular fit or a slope over the bound, and reject if any
// point's residual exceeds aatol + artol*mean(heights).
func shortLineAccept(xs, ys, heights []float64, slope, aatol, artol float64) bool {
	xm, ym, alpha, err := fitLine(xs, ys)
	if err != nil {
		return false
	}
	if math.Abs(alpha) > slope {
		return false
	}
	var hsum float64
	for _, h := range heights {
		hsum += h
	}
	hm := hsum / float64(len(heights))
	thresh := aatol + artol*hm
	for i := range xs {
		resid := alpha*(xs[i]-xm) - (ys[i] - ym)
		if math.Abs(resid) > thresh {
			return false
		}
	}
	return true
}

// segmentTransformedBBox computes the transformed bounding box of a
// segment's boundary points (points whose link mask is not all four
// directions) under a, per spec.md §4.5. A segment with no boundary points
// — which should not occur for any segment the region extractor emits —
// defensively yields the zero box.
func segmentTransformedBBox(points []Point, a Affine) FBBox {
	var box FBBox
	first := true
	for _, p := range points {
		if p.Link&linkMask == linkMask {
			continue
		}
		tx, ty := a.apply(float64(p.X), float64(p.Y))
		if first {
			box = FBBox{XMin: tx, XMax: tx, YMin: ty, YMax: ty}
			first = false
			continue
		}
		if tx < box.XMin {
			box.XMin = tx
		}
		if tx > box.XMax {
			box.XMax = tx
		}
		if ty < box.YMin {
			box.YMin = ty
		}
		if ty > box.YMax {
			box.YMax = ty
		}
	}
	return box
}

func transformAll(points [][]Point, a Affine) []FBBox {
	out := make([]FBBox, len(points))
	for i, p := range points {
		out[i] = segmentTransformedBBox(p, a)
	}
	return out
}

func unionFBBox(boxes []FBBox) FBBox {
	if len(boxes) == 0 {
		return FBBox{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		if b.XMin < out.XMin {
			out.XMin = b.XMin
		}
		if b.XMax > out.XMax {
			out.XMax = b.XMax
		}
		if b.YMin < out.YMin {
			out.YMin = b.YMin
		}
		if b.YMax > out.YMax {
			out.YMax = b.YMax
		}
	}
	return out
}

// fitVerticalShear iteratively regresses a chain's transformed box centres
// against x to remove the line's overall tilt, per spec.md §4.5. It seeds
// the affine to identity, runs at least one iteration, and caps at ten;
// exceeding the cap without converging is reported as a singularError so the
// caller discards the chain rather than emit a misfit.
func fitVerticalShear(points [][]Point, prec float64) (shear float64, a Affine, bbox FBBox, err error) {
	a = IdentityAffine()
	for iter := 0; iter < 10; iter++ {
		boxes := transformAll(points, a)
		cb := unionFBBox(boxes)

		xs := make([]float64, len(boxes))
		ys := make([]float64, len(boxes))
		for i, b := range boxes {
			xs[i] = (b.XMin + b.XMax) / 2
			ys[i] = (b.YMin + b.YMax) / 2
		}
		_, _, alpha, ferr := fitLine(xs, ys)
		if ferr != nil {
			return 0, a, FBBox{}, singularError("vertical shear regression is singular")
		}

		shear += alpha
		a[2] = -shear

		w := cb.XMax - cb.XMin
		if math.Abs(alpha) <= prec/(1+w) {
			return shear, a, cb, nil
		}
	}
	return 0, a, FBBox{}, singularError("vertical shear did not converge")
}

// fitHorizontalShear exhaustively searches a symmetric grid of shears
// around zero for the one that maximises total inter-segment spacing along
// the transformed x axis, per spec.md §4.5. Ties resolve to the smaller
// absolute shear because zero is tried first and the search visits
// increasing magnitudes in order, with the strict ">" comparison keeping
// the first (smallest) value found for any tied maximum.
func fitHorizontalShear(points [][]Point, a Affine) (shear float64, finalA Affine, bbox FBBox) {
	cb := unionFBBox(transformAll(points, a))
	l := len(points)

	w := (1 + cb.XMax - cb.XMin) / float64(l)
	h := 1 + cb.YMax - cb.YMin
	step := 0.25 / h
	bound := 0.5 * w / h

	bestShear, bestSpacing := 0.0, math.Inf(-1)
	try := func(s float64) {
		if math.Abs(s) > bound {
			return
		}
		a2 := a
		a2[1] = -s
		boxes := transformAll(points, a2)
		var spacing float64
		for k := 1; k < l; k++ {
			spacing += boxes[k].XMin - boxes[k-1].XMax
		}
		if spacing > bestSpacing {
			bestSpacing, bestShear = spacing, s
		}
	}

	try(0)
	steps := int(math.Ceil(bound / step))
	for i := 1; i <= steps; i++ {
		s := float64(i) * step
		try(s)
		try(-s)
	}

	finalA = a
	finalA[1] = -bestShear
	return bestShear, finalA, unionFBBox(transformAll(points, finalA))
}
