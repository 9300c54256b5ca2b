package segchain

import "sort"

// leafNode is a level-0 chainable: one x-sorted segment. It tracks the
// same nparents/firstLink bookkeeping a chainLink does, per spec.md §3's
// "chainable node (tagged variant)".
type leafNode struct {
	segIdx    int   // index into the source Segmentation's segment array
	nparents  int32 // number of chainlinks referencing this leaf as a child
	firstLink int32 // head of the singly linked list (via chainLink.nextLink) of links whose left child is this leaf; -1 if none
}

// chainLink is a node in the chain-construction DAG: level 1 pairs two
// segments, level >= 2 pairs a chain with an extension. left/right reference
// either a leafNode (leftIsLeaf/rightIsLeaf true, index into leaves) or
// another chainLink (index into links), avoiding the struct-prefix
// aliasing the original C "chainable_t" overlay relies on, per the design
// note in spec.md §9.
type chainLink struct {
	level       int
	leftIsLeaf  bool
	leftIdx     int32
	rightIsLeaf bool
	rightIdx    int32
	first, last int32 // leftmost/rightmost segment, as an index into leaves

	nparents  int32
	firstLink int32 // links whose left child is this link; -1 if none
	nextLink  int32 // next entry in the left-child-owner's firstLink list; -1 if none
	next      int32 // global insertion-order thread; -1 if none. Points at the link created immediately before this one.
}

// chainGraph is the arena that NewChainPool builds and discards wholesale
// after extracting the maximal chains, per the "single arena local to
// chainpool_new" strategy in spec.md §9.
type chainGraph struct {
	opts       ChainOptions
	sgm        *Segmentation
	sortedSegs []Segment // x-sorted copy of sgm's segments
	leaves     []leafNode
	links      []chainLink
	head       int32 // index into links of the most recently created link, or -1
}

func newChainGraph(sgm *Segmentation, opts ChainOptions) *chainGraph {
	n := sgm.NSegments()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return sgm.segs[order[i]].XCen < sgm.segs[order[j]].XCen
	})

	g := &chainGraph{
		opts:       opts,
		sgm:        sgm,
		sortedSegs: make([]Segment, n),
		leaves:     make([]leafNode, n),
		head:       -1,
	}
	for pos, origIdx := range order {
		g.sortedSegs[pos] = sgm.segs[origIdx]
		g.leaves[pos] = leafNode{segIdx: origIdx, firstLink: -1}
	}
	return g
}

func (g *chainGraph) nodeLast(isLeaf bool, idx int32) int32 {
	if isLeaf {
		return idx
	}
	return g.links[idx].last
}

func (g *chainGraph) nodeFirst(isLeaf bool, idx int32) int32 {
	if isLeaf {
		return idx
	}
	return g.links[idx].first
}

func (g *chainGraph) nodeFirstLink(isLeaf bool, idx int32) int32 {
	if isLeaf {
		return g.leaves[idx].firstLink
	}
	return g.links[idx].firstLink
}

// reconstruct walks the chain defined by node down its left-child rib,
// collecting the rightmost segment contributed at every level, per the
// identity reconstruct(node) = reconstruct(node.left) ++ [last(node.right)]
// (and reconstruct(leaf) = [leaf]) that follows from the chain-graph's
// construction invariant. The result is the dense, x-ascending sequence of
// leaf positions covered by node.
func (g *chainGraph) reconstruct(isLeaf bool, idx int32) []int32 {
	if isLeaf {
		return []int32{idx}
	}
	link := g.links[idx]
	out := g.reconstruct(link.leftIsLeaf, link.leftIdx)
	out = append(out, g.nodeLast(link.rightIsLeaf, link.rightIdx))
	return out
}

// shortLineAccept fits the regression of spec.md §4.5 over the union of the
// segments at existing (leaf positions) plus candidate, and reports whether
// candidate is alignment-compatible.
func (g *chainGraph) shortLineAccept(existing []int32, candidate int32) bool {
	n := len(existing) + 1
	xs := make([]float64, n)
	ys := make([]float64, n)
	heights := make([]float64, n)
	for i, pos := range existing {
		s := g.sortedSegs[pos]
		xs[i], ys[i] = s.XCen, s.YCen
		heights[i] = float64(s.Height())
	}
	last := g.sortedSegs[candidate]
	xs[n-1], ys[n-1] = last.XCen, last.YCen
	heights[n-1] = float64(last.Height())
	return shortLineAccept(xs, ys, heights, g.opts.Slope, g.opts.AAbsTol, g.opts.ARelTol)
}

// newLevel1Link splices a new level-1 chainlink pairing leaves leftPos and
// rightPos into the global list, the left leaf's firstLink list, and bumps
// both leaves' nparents, per spec.md §4.4 step 2.
func (g *chainGraph) newLevel1Link(leftPos, rightPos int32) {
	idx := int32(len(g.links))
	g.links = append(g.links, chainLink{
		level:       1,
		leftIsLeaf:  true,
		leftIdx:     leftPos,
		rightIsLeaf: true,
		rightIdx:    rightPos,
		first:       leftPos,
		last:        rightPos,
		firstLink:   -1,
		nextLink:    g.leaves[leftPos].firstLink,
		next:        g.head,
	})
	g.leaves[leftPos].firstLink = idx
	g.head = idx
	g.leaves[leftPos].nparents++
	g.leaves[rightPos].nparents++
}

// newExtLink splices a new chainlink extending topIdx with extIdx (both
// chainLink indices of equal level), per spec.md §4.4 step 3.
func (g *chainGraph) newExtLink(topIdx, extIdx int32) {
	idx := int32(len(g.links))
	g.links = append(g.links, chainLink{
		level:       g.links[topIdx].level + 1,
		leftIsLeaf:  false,
		leftIdx:     topIdx,
		rightIsLeaf: false,
		rightIdx:    extIdx,
		first:       g.nodeFirst(false, topIdx),
		last:        g.nodeLast(false, extIdx),
		firstLink:   -1,
		nextLink:    g.links[topIdx].firstLink,
		next:        g.head,
	})
	g.links[topIdx].firstLink = idx
	g.head = idx
	g.links[topIdx].nparents++
	g.links[extIdx].nparents++
}

// buildLevel1 is step 2 of spec.md §4.4: over the x-sorted segments, insert
// a level-1 chainlink between every compatible pair, applying the
// redundancy pruning rule.
func (g *chainGraph) buildLevel1() {
	o := g.opts
	sa := 1 + 2*o.SAbsTol
	sq := 2 - o.SRelTol
	sr := 2 + o.SRelTol
	rmax := o.DRMax / 2
	rmin := o.DRMin / 2

	n := len(g.sortedSegs)
	for leftPos := 0; leftPos < n; leftPos++ {
		left := g.sortedSegs[leftPos]
		lh := float64(left.Height())
		hmax := (sr*lh + sa) / sq
		hmin := (sq*lh - sa) / sr
		xbound := left.XCen + rmax*(lh+hmax)

		for rightPos := leftPos + 1; rightPos < n; rightPos++ {
			right := g.sortedSegs[rightPos]
			if right.XCen >= xbound {
				break
			}
			rh := float64(right.Height())
			if !(hmin < rh && rh < hmax) {
				continue
			}
			dx := right.XCen - left.XCen
			if absf(right.YCen-left.YCen) > o.Slope*absf(dx) {
				continue
			}
			if !(1+rmin*float64(left.Width()+right.Width()) <= dx && dx <= rmax*(lh+rh)) {
				continue
			}

			redundant := false
			for li := g.leaves[leftPos].firstLink; li != -1; li = g.links[li].nextLink {
				mid := g.links[li].last
				if g.shortLineAccept([]int32{int32(leftPos), int32(rightPos)}, mid) {
					redundant = true
					break
				}
			}
			if redundant {
				continue
			}
			g.newLevel1Link(int32(leftPos), int32(rightPos))
		}
	}
}

// extendLevels is step 3 of spec.md §4.4: sweep each level in turn,
// extending every link at the current level with any alignment-compatible
// sibling, until a sweep creates nothing new.
func (g *chainGraph) extendLevels() {
	currentLevel := 1
	for {
		var tops []int32
		for p := g.head; p != -1 && g.links[p].level == currentLevel; p = g.links[p].next {
			tops = append(tops, p)
		}
		if len(tops) == 0 {
			return
		}
		createdAny := false
		for _, topIdx := range tops {
			chain := g.reconstruct(false, topIdx)
			assertf(len(chain) <= len(g.leaves), "chain length %d exceeds segment count %d", len(chain), len(g.leaves))

			if len(chain)+1 > g.opts.LMax {
				continue // extending would exceed the configured chain length cap
			}

			rightIsLeaf, rightIdx := g.links[topIdx].rightIsLeaf, g.links[topIdx].rightIdx
			for extIdx := g.nodeFirstLink(rightIsLeaf, rightIdx); extIdx != -1; {
				nextExt := g.links[extIdx].nextLink
				candidate := g.links[extIdx].last
				if g.shortLineAccept(chain, candidate) {
					g.newExtLink(topIdx, extIdx)
					createdAny = true
				}
				extIdx = nextExt
			}
		}
		if !createdAny {
			return
		}
		currentLevel++
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
