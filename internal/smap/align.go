package smap

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jjtimmons/smap/internal/store"
)

// cigarOp is one operation of a match string, eg "12M" or "3I".
var cigarOp = regexp.MustCompile(`(\d+)([MIDN=X])`)

// declaration is a child's declared place in its parent and the units on
// each side.
type declaration struct {
	child      store.Key
	start, end int

	parentUnit, childUnit int

	// childLen bounds the child's coordinates
	childLen int

	// lo and hi are the parent coordinates a block may be clipped to
	lo, hi int
}

func (d declaration) strand() Strand {
	if d.end < d.start {
		return Reverse
	}
	return Forward
}

// childSpan is the declared interval's length counted in child coordinates.
func (d declaration) childSpan() int {
	return (abs(d.end-d.start) + 1) * d.parentUnit / d.childUnit
}

// alignment reads the local map of d.child against parent. Gapped Align rows
// come first, then a match string; with neither the declared interval is one
// ungapped block.
func (b *builder) alignment(parent *store.Object, d declaration) (localMap, Status) {
	tags := []struct {
		tag  string
		kind ConversionKind
	}{
		{b.schema.Align, DnaToDna},
		{b.schema.AlignDNAPep, DnaToPeptide},
		{b.schema.AlignPepDNA, PeptideToDna},
	}
	for _, t := range tags {
		rows := parent.RowsFor(t.tag, d.child)
		if len(rows) == 0 {
			continue
		}
		if t.kind != kindOf(d.parentUnit, d.childUnit) {
			return localMap{}, Error
		}
		segs, status := gapped(rows, d)
		return localMap{segs: segs, kind: t.kind, strand: d.strand()}, status
	}

	kind := kindOf(d.parentUnit, d.childUnit)
	for _, r := range parent.RowsFor(b.schema.MatchString, d.child) {
		cigar, ok := r.String(1)
		if !ok {
			return localMap{}, Error
		}
		segs, status := matchString(cigar, d)
		return localMap{segs: segs, kind: kind, strand: d.strand()}, status
	}

	return ungapped(kind, d)
}

// block is one Align row: the parent and child positions it starts at and
// an optional length in child coordinates.
type block struct {
	p, c, n int
}

// gapped turns Align rows into segments. A block without a length runs up to
// the next block on whichever axis comes first, and the last block runs to
// the end of the declared interval.
func gapped(rows []store.Row, d declaration) ([]Segment, Status) {
	blocks := make([]block, 0, len(rows))
	for _, r := range rows {
		p, ok1 := r.Int(1)
		c, ok2 := r.Int(2)
		if !ok1 || !ok2 || p < 1 || c < 1 {
			return nil, Error
		}
		n, _ := r.Int(3)
		blocks = append(blocks, block{p: p, c: c, n: n})
	}
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].c < blocks[j].c })

	dir := 1
	if d.strand() == Reverse {
		dir = -1
	}
	pu, cu := d.parentUnit, d.childUnit

	segs := make([]Segment, 0, len(blocks))
	for i, bl := range blocks {
		n := bl.n
		if n == 0 {
			if i+1 < len(blocks) {
				next := blocks[i+1]
				n = min(next.c-bl.c, abs(next.p-bl.p)*pu/cu)
			} else {
				n = min(d.childSpan()-bl.c+1, (abs(d.end-bl.p)+1)*pu/cu)
			}
		}
		if n <= 0 {
			return nil, Error
		}

		refSpan := ceilDiv(n*cu, pu)
		segs = append(segs, Segment{
			SelfStart: bl.c,
			SelfEnd:   bl.c + n - 1,
			RefStart:  bl.p,
			RefEnd:    bl.p + dir*(refSpan-1),
		})
	}
	return segs, PerfectMap
}

// matchString decodes a CIGAR style string starting at the declared start
// and at child position 1. M, = and X align, I skips child and D or N skip
// parent coordinates.
func matchString(cigar string, d declaration) ([]Segment, Status) {
	cigar = strings.Join(strings.Fields(cigar), "")
	ops := cigarOp.FindAllStringSubmatch(cigar, -1)

	consumed := 0
	for _, op := range ops {
		consumed += len(op[0])
	}
	if len(ops) == 0 || consumed != len(cigar) {
		return nil, Error
	}

	dir := 1
	if d.strand() == Reverse {
		dir = -1
	}
	pu, cu := d.parentUnit, d.childUnit

	var segs []Segment
	p, c := d.start, 1
	for _, op := range ops {
		n, err := strconv.Atoi(op[1])
		if err != nil || n == 0 {
			return nil, Error
		}

		switch op[2] {
		case "M", "=", "X":
			refSpan := ceilDiv(n*cu, pu)
			s := Segment{SelfStart: c, SelfEnd: c + n - 1, RefStart: p, RefEnd: p + dir*(refSpan-1)}
			if last := len(segs) - 1; last >= 0 && segs[last].SelfEnd+1 == s.SelfStart && segs[last].RefEnd+dir == s.RefStart {
				segs[last].SelfEnd, segs[last].RefEnd = s.SelfEnd, s.RefEnd
			} else {
				segs = append(segs, s)
			}
			c += n
			p += dir * refSpan
		case "I":
			c += n
		case "D", "N":
			p += dir * n
		}
	}

	if len(segs) == 0 {
		return nil, NoData
	}
	return segs, PerfectMap
}

// ungapped treats the declared interval as a single block, first clipped to
// the parent's valid range [d.lo, d.hi].
func ungapped(kind ConversionKind, d declaration) (localMap, Status) {
	strand := d.strand()
	lo, hi := min(d.start, d.end), max(d.start, d.end)
	if hi < d.lo || lo > d.hi {
		return localMap{}, NoOverlapInternal
	}

	clamp := func(x int) int { return max(d.lo, min(d.hi, x)) }
	clip, status := clipAlignment(kind, strand, Forward,
		d.start, d.end, clamp(d.start), clamp(d.end), 1, d.childSpan())
	if !status.Mapped() {
		return localMap{}, status
	}

	seg := Segment{
		RefStart:  clip.ParentStart,
		RefEnd:    clip.ParentEnd,
		SelfStart: clip.SelfStart,
		SelfEnd:   clip.SelfEnd,
	}
	return localMap{segs: []Segment{seg}, kind: kind, strand: strand}, status | NoData
}
