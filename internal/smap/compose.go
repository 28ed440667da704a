package smap

import "sort"

// localMap aligns a child against its direct parent: Ref holds parent
// coordinates, Self holds child coordinates, ordered by Self.
type localMap struct {
	segs   []Segment
	kind   ConversionKind
	strand Strand
}

// invert swaps the roles of parent and child.
func (l localMap) invert() localMap {
	n := len(l.segs)
	inv := make([]Segment, n)
	for i, s := range l.segs {
		if l.strand == Reverse {
			inv[n-1-i] = Segment{SelfStart: s.RefEnd, SelfEnd: s.RefStart, RefStart: s.SelfEnd, RefEnd: s.SelfStart}
		} else {
			inv[i] = Segment{SelfStart: s.RefStart, SelfEnd: s.RefEnd, RefStart: s.SelfStart, RefEnd: s.SelfEnd}
		}
	}
	return localMap{segs: inv, kind: l.kind.Inverse(), strand: l.strand}
}

// childUnit is the bases per child coordinate for a parent counted in
// parentUnit. The kind has to agree with the parent's alphabet.
func childUnit(kind ConversionKind, parentUnit int) (int, bool) {
	switch kind {
	case DnaToPeptide:
		return peptideUnit, parentUnit == dnaUnit
	case PeptideToDna:
		return dnaUnit, parentUnit == peptideUnit
	}
	return parentUnit, true
}

// compose maps a child's local alignment through its parent's map, giving the
// child's map onto the parent's reference. Local segments that miss the parent
// map are dropped; those crossing parent gaps are split at each parent
// segment boundary.
//
// A dropped segment is reported as a plain X1ExternalClip whichever end it
// fell off, so the status is coarse.
func compose(local localMap, parent *mapping) ([]Segment, Status) {
	pu := parent.selfUnit
	cu, ok := childUnit(local.kind, pu)
	if !ok || len(local.segs) == 0 || local.strand == Invalid {
		return nil, Error
	}

	var out []Segment
	var status Status
	for _, l := range local.segs {
		sp := parent.span(l.refLow(), l.refHigh())
		if !sp.status.Mapped() {
			status |= X1ExternalClip
			continue
		}
		status |= sp.status & (Clip | InternalGaps)

		for i := sp.i1; i <= sp.i2; i++ {
			q := parent.segs[i]
			a, b := max(sp.lo, q.SelfStart), min(sp.hi, q.SelfEnd)
			if a > b {
				continue
			}
			if piece, ok := project(l, local.strand, a, b, pu, cu, q, parent.strand, parent.refUnit); ok {
				out = append(out, piece)
			}
		}
	}

	if len(out) == 0 {
		return nil, status | NoOverlapInternal
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SelfStart < out[j].SelfStart })
	return out, status
}

// project carries the parent range [a, b] of local segment l through parent
// segment q. Only whole child coordinates inside [a, b] are kept: a start is
// rounded up to the next complete codon and an end down to the last one.
func project(l Segment, ls Strand, a, b, pu, cu int, q Segment, qs Strand, ru int) (Segment, bool) {
	// offsets along l, in parent coordinates
	kLo, kHi := a-l.RefStart, b-l.RefStart
	if ls == Reverse {
		kLo, kHi = l.RefStart-b, l.RefStart-a
	}

	jLo := ceilDiv(kLo*pu, cu)
	jHi := (kHi*pu+pu)/cu - 1
	if jMax := l.SelfEnd - l.SelfStart; jHi > jMax {
		jHi = jMax
	}
	if jLo > jHi {
		return Segment{}, false
	}

	// root coordinate of the base'th base along l
	root := func(base int) int {
		k, rem := base/pu, base%pu
		pos, intra := l.RefStart+k, rem
		if ls == Reverse {
			pos, intra = l.RefStart-k, pu-1-rem
		}
		d := ((pos-q.SelfStart)*pu + intra) / ru
		if qs == Reverse {
			return q.RefStart - d
		}
		return q.RefStart + d
	}

	return Segment{
		SelfStart: l.SelfStart + jLo,
		SelfEnd:   l.SelfStart + jHi,
		RefStart:  root(jLo * cu),
		RefEnd:    root(jHi*cu + cu - 1),
	}, true
}

// Clipped is an aligned parent/self interval pair after clipping.
type Clipped struct {
	ParentStart, ParentEnd int
	SelfStart, SelfEnd     int
}

// clipAlignment projects a clip of an ungapped block's parent interval onto
// its self interval, then re-derives the parent interval from the rounded
// self interval so both land on codon boundaries. Invalid strands are
// inferred from the direction of each interval.
func clipAlignment(kind ConversionKind, refStrand, matchStrand Strand,
	parentStart, parentEnd, clippedParentStart, clippedParentEnd, selfStart, selfEnd int) (Clipped, Status) {
	if refStrand == Invalid {
		refStrand = strandOf(parentStart, parentEnd)
	}
	if matchStrand == Invalid {
		matchStrand = strandOf(selfStart, selfEnd)
	}
	if refStrand == Invalid || matchStrand == Invalid {
		return Clipped{}, Error
	}

	pd, sd := 1, 1
	if refStrand == Reverse {
		pd = -1
	}
	if matchStrand == Reverse {
		sd = -1
	}

	parentSpan := (parentEnd - parentStart) * pd
	kLo := (clippedParentStart - parentStart) * pd
	kHi := (clippedParentEnd - parentStart) * pd
	if parentSpan < 0 || kLo < 0 || kHi > parentSpan || kLo > kHi {
		return Clipped{}, Error
	}

	pu, cu := kind.units()
	jLo := ceilDiv(kLo*pu, cu)
	jHi := (kHi*pu+pu)/cu - 1
	if selfSpan := (selfEnd - selfStart) * sd; jHi > selfSpan {
		jHi = selfSpan
	}
	if jLo > jHi {
		return Clipped{}, NoOverlapInternal
	}

	c := Clipped{
		SelfStart:   selfStart + sd*jLo,
		SelfEnd:     selfStart + sd*jHi,
		ParentStart: parentStart + pd*(jLo*cu/pu),
		ParentEnd:   parentStart + pd*((jHi*cu+cu-1)/pu),
	}

	var status Status
	if c.ParentStart != parentStart {
		status |= X1ExternalClip
	}
	if c.ParentEnd != parentEnd {
		status |= X2ExternalClip
	}
	return c, status
}

// verifyLocalMap checks a local alignment before it is used: self
// coordinates inside 1..childLen, each segment running with the strand, and
// consecutive segments neither overlapping nor turning back.
func verifyLocalMap(local localMap, childLen int) Status {
	segs := local.segs
	if len(segs) == 0 || local.strand == Invalid {
		return Error
	}
	if segs[0].SelfStart < 1 || segs[len(segs)-1].SelfEnd > childLen {
		return Error
	}

	// DNA children of a peptide may start and end inside one residue
	shared := 0
	if local.kind == PeptideToDna {
		shared = 1
	}

	for i, s := range segs {
		if s.SelfStart > s.SelfEnd {
			return Error
		}
		if local.strand == Forward && s.RefStart > s.RefEnd {
			return Error
		}
		if local.strand == Reverse && s.RefStart < s.RefEnd {
			return Error
		}
		if i == 0 {
			continue
		}

		p := segs[i-1]
		if s.SelfStart <= p.SelfEnd {
			return Error
		}
		if local.strand == Forward && s.RefStart+shared <= p.RefEnd {
			return Error
		}
		if local.strand == Reverse && s.RefStart-shared >= p.RefEnd {
			return Error
		}
	}
	return PerfectMap
}
