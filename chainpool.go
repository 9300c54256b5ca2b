package segchain

// ChainOptions tunes the chain pool builder, per spec.md §4.4-§4.5. The zero
// value is not usable directly; start from DefaultChainOptions.
type ChainOptions struct {
	SAbsTol float64 // absolute size tolerance between chained segments
	SRelTol float64 // relative size tolerance, clamped to [0,1]
	DRMin   float64 // minimum horizontal gap/height ratio
	DRMax   float64 // maximum horizontal gap/height ratio
	Slope   float64 // maximum |dy/dx| for an alignment-compatible pair
	AAbsTol float64 // absolute alignment residual tolerance
	ARelTol float64 // relative alignment residual tolerance (times mean height)
	Prec    float64 // vertical shear convergence precision
	LMin    int     // minimum emitted chain length, in segments
	LMax    int     // maximum chain length the builder will consider
}

// DefaultChainOptions returns the tuning spec.md §4.4 documents as the
// baseline for ordinary printed text.
func DefaultChainOptions() ChainOptions {
	return ChainOptions{
		SAbsTol: 2.0,
		SRelTol: 0.05,
		DRMin:   0.4,
		DRMax:   2.5,
		Slope:   0.3,
		AAbsTol: 2.0,
		ARelTol: 0.05,
		Prec:    0.05,
		LMin:    3,
		LMax:    10,
	}
}

// normalized clamps negative tolerances to zero and repairs an inverted or
// too-small length range, rather than rejecting the whole builder over a
// single out-of-range tuning scalar — the resolution spec.md §9 Open
// Questions leaves to the implementation.
func (o ChainOptions) normalized() ChainOptions {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return v
	}
	o.SAbsTol = clamp(o.SAbsTol)
	o.SRelTol = clamp(o.SRelTol)
	if o.SRelTol > 1 {
		o.SRelTol = 1
	}
	o.DRMin = clamp(o.DRMin)
	o.DRMax = clamp(o.DRMax)
	if o.DRMax < o.DRMin {
		o.DRMin, o.DRMax = o.DRMax, o.DRMin
	}
	o.Slope = clamp(o.Slope)
	o.AAbsTol = clamp(o.AAbsTol)
	o.ARelTol = clamp(o.ARelTol)
	o.Prec = clamp(o.Prec)
	if o.LMin < 2 {
		o.LMin = 2
	}
	if o.LMax < o.LMin {
		o.LMax = o.LMin
	}
	return o
}

// Chain is one maximal, alignment-compatible run of segments, in ascending
// x order, together with the affine fit fitChain converged on.
type Chain struct {
	segments []int // indices into the parent Segmentation, ascending xcen
	vshear   float64
	hshear   float64
	bbox     FBBox
	affine   Affine
}

// ChainPool holds the maximal chains spec.md §4.3-§4.6 extracts from a
// Segmentation. It borrows its Segmentation rather than owning a reference:
// building a pool does not change the Segmentation's reference count.
type ChainPool struct {
	sgm    *Segmentation
	opts   ChainOptions
	chains []Chain
}

// NewChainPool builds the chain-construction graph over sgm's segments,
// extends it level by level, and fits an affine shear to every maximal
// chain of length >= opts.LMin, per spec.md §4.3-§4.6. It returns
// InvalidArgumentError if sgm is nil. A segmentation with no segments (for
// instance one built over a 0x0 image) is valid input and simply yields a
// pool with Number() == 0.
func NewChainPool(sgm *Segmentation, opts ChainOptions) (*ChainPool, error) {
	if sgm == nil {
		return nil, InvalidArgumentError("nil segmentation")
	}
	opts = opts.normalized()

	g := newChainGraph(sgm, opts)
	g.buildLevel1()
	g.extendLevels()

	var chains []Chain
	for p := g.head; p != -1; p = g.links[p].next {
		link := g.links[p]
		if link.level+1 < opts.LMin {
			break // the global list is level-non-increasing; nothing further qualifies
		}
		if link.nparents != 0 {
			continue
		}
		positions := g.reconstruct(false, p)
		chain, err := g.fitChain(positions)
		if err != nil {
			continue // singular or non-converging fit: discard, don't emit a misfit
		}
		chains = append(chains, chain)
	}

	return &ChainPool{sgm: sgm, opts: opts, chains: chains}, nil
}

// fitChain assembles the segment/point data for the chain at positions
// (x-sorted leaf indices) and fits its affine shear.
func (g *chainGraph) fitChain(positions []int32) (Chain, error) {
	segments := make([]int, len(positions))
	points := make([][]Point, len(positions))
	for i, pos := range positions {
		origIdx := g.leaves[pos].segIdx
		segments[i] = origIdx
		points[i] = g.sgm.pointsRaw(origIdx)
	}

	vshear, a, _, err := fitVerticalShear(points, g.opts.Prec)
	if err != nil {
		return Chain{}, err
	}
	hshear, finalA, bbox := fitHorizontalShear(points, a)

	return Chain{
		segments: segments,
		vshear:   vshear,
		hshear:   hshear,
		bbox:     bbox,
		affine:   finalA,
	}, nil
}

// Number returns the number of chains in the pool.
func (p *ChainPool) Number() int { return len(p.chains) }

// ImageWidth returns the source image's width in pixels.
func (p *ChainPool) ImageWidth() int { return p.sgm.ImageWidth() }

// ImageHeight returns the source image's height in pixels.
func (p *ChainPool) ImageHeight() int { return p.sgm.ImageHeight() }

// Segmentation returns the Segmentation the pool was built from. The
// returned handle is borrowed; callers that want to keep it past the pool's
// lifetime should Ref it.
func (p *ChainPool) Segmentation() *Segmentation { return p.sgm }

func (p *ChainPool) chain(i int) (Chain, error) {
	if i < 0 || i >= len(p.chains) {
		return Chain{}, InvalidArgumentError("chain index out of range")
	}
	return p.chains[i], nil
}

// Length returns the number of segments in chain i.
func (p *ChainPool) Length(i int) (int, error) {
	c, err := p.chain(i)
	return len(c.segments), err
}

// BBox returns the transformed bounding box of chain i, as fit under its
// affine.
func (p *ChainPool) BBox(i int) (FBBox, error) {
	c, err := p.chain(i)
	return c.bbox, err
}

// VerticalShear returns the fitted vertical shear of chain i.
func (p *ChainPool) VerticalShear(i int) (float64, error) {
	c, err := p.chain(i)
	return c.vshear, err
}

// HorizontalShear returns the fitted horizontal shear of chain i.
func (p *ChainPool) HorizontalShear(i int) (float64, error) {
	c, err := p.chain(i)
	return c.hshear, err
}

// Affine returns the final affine matrix chain i was fit under.
func (p *ChainPool) Affine(i int) (Affine, error) {
	c, err := p.chain(i)
	return c.affine, err
}

// Segments returns the segment indices of chain i, into the ChainPool's
// Segmentation, in ascending x order.
func (p *ChainPool) Segments(i int) ([]int, error) {
	c, err := p.chain(i)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(c.segments))
	copy(out, c.segments)
	return out, nil
}
