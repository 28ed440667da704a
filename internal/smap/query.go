package smap

import "sort"

// mapping is a piecewise linear map from self coordinates to reference
// coordinates. Every segment shares the one strand. Units are the bases per
// coordinate on each axis, so a peptide residue maps onto its whole codon.
type mapping struct {
	segs     []Segment
	strand   Strand
	selfUnit int
	refUnit  int
}

func newMapping(segs []Segment, strand Strand, selfUnit, refUnit int) *mapping {
	if len(segs) == 0 {
		panic("smap: a map needs at least one segment")
	}
	return &mapping{segs: segs, strand: strand, selfUnit: selfUnit, refUnit: refUnit}
}

// first and last are the outer self bounds of the map.
func (m *mapping) first() int { return m.segs[0].SelfStart }
func (m *mapping) last() int  { return m.segs[len(m.segs)-1].SelfEnd }

// interp maps x inside s. A start lands on the first base of x and an end
// on its last base, clamped to the segment.
func (m *mapping) interp(s Segment, x int, end bool) int {
	off := (x - s.SelfStart) * m.selfUnit
	if end {
		off += m.selfUnit - 1
	}
	d := off / m.refUnit

	if m.strand == Reverse {
		y := s.RefStart - d
		if y < s.RefEnd {
			y = s.RefEnd
		}
		return y
	}
	y := s.RefStart + d
	if y > s.RefEnd {
		y = s.RefEnd
	}
	return y
}

// span is where an ascending interval falls in a map.
type span struct {
	// lo and hi are the interval after clipping onto segments
	lo, hi int

	// i1 and i2 are the indexes of the segments holding lo and hi
	i1, i2 int

	// status uses the X1 flags for the low end and X2 for the high end
	status Status
}

// span locates lo <= hi in the map.
func (m *mapping) span(lo, hi int) span {
	segs := m.segs
	last := len(segs) - 1
	sp := span{lo: lo, hi: hi}

	if hi < segs[0].SelfStart {
		sp.status = X1NoOverlapExternal
		return sp
	}
	if lo > segs[last].SelfEnd {
		sp.status = X2NoOverlapExternal
		return sp
	}

	// lowest segment ending at or after lo, highest starting at or before hi
	sp.i1 = sort.Search(len(segs), func(i int) bool { return segs[i].SelfEnd >= lo })
	sp.i2 = sort.Search(len(segs), func(i int) bool { return segs[i].SelfStart > hi }) - 1
	if sp.i2 < sp.i1 {
		sp.status = NoOverlapInternal
		return sp
	}

	if lo < segs[sp.i1].SelfStart {
		sp.lo = segs[sp.i1].SelfStart
		if sp.i1 == 0 {
			sp.status |= X1ExternalClip
		} else {
			sp.status |= X1InternalClip
		}
	}
	if hi > segs[sp.i2].SelfEnd {
		sp.hi = segs[sp.i2].SelfEnd
		if sp.i2 == last {
			sp.status |= X2ExternalClip
		} else {
			sp.status |= X2InternalClip
		}
	}
	if sp.i1 != sp.i2 {
		sp.status |= InternalGaps
	}
	return sp
}

// mapInterval maps [x1, x2] in either order. The result keeps the query's
// order and its flags name the query's own ends.
func (m *mapping) mapInterval(x1, x2 int) Result {
	swapped := x1 > x2
	lo, hi := x1, x2
	if swapped {
		lo, hi = x2, x1
	}

	sp := m.span(lo, hi)
	r := Result{X1: x1, X2: x2, Status: sp.status}
	if swapped {
		r.Status = swapEnds(r.Status)
	}
	if !r.Status.Mapped() {
		return r
	}

	ylo := m.interp(m.segs[sp.i1], sp.lo, false)
	yhi := m.interp(m.segs[sp.i2], sp.hi, true)
	if swapped {
		r.Y1, r.Y2, r.X1, r.X2 = yhi, ylo, sp.hi, sp.lo
	} else {
		r.Y1, r.Y2, r.X1, r.X2 = ylo, yhi, sp.lo, sp.hi
	}
	return r
}

// swapEnds exchanges the X1 and X2 flags.
func swapEnds(s Status) Status {
	pairs := [][2]Status{
		{X1ExternalClip, X2ExternalClip},
		{X1InternalClip, X2InternalClip},
		{X1NoOverlapExternal, X2NoOverlapExternal},
	}
	for _, p := range pairs {
		a, b := s&p[0] != 0, s&p[1] != 0
		s &^= p[0] | p[1]
		if a {
			s |= p[1]
		}
		if b {
			s |= p[0]
		}
	}
	return s
}

// inverse is the same map read from reference to self.
func (m *mapping) inverse() *mapping {
	n := len(m.segs)
	inv := make([]Segment, n)
	for i, s := range m.segs {
		if m.strand == Reverse {
			inv[n-1-i] = Segment{SelfStart: s.RefEnd, SelfEnd: s.RefStart, RefStart: s.SelfEnd, RefEnd: s.SelfStart}
		} else {
			inv[i] = Segment{SelfStart: s.RefStart, SelfEnd: s.RefEnd, RefStart: s.SelfStart, RefEnd: s.SelfEnd}
		}
	}
	return &mapping{segs: inv, strand: m.strand, selfUnit: m.refUnit, refUnit: m.selfUnit}
}
