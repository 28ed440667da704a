package smap

import (
	"sort"

	"github.com/jjtimmons/smap/internal/store"
)

// Fragment is one object's contribution to the assembled DNA.
type Fragment struct {
	Key    store.Key
	Strand Strand

	// Length is the number of bases the object places on the root
	Length int

	// Segments map the object's unspliced coordinates onto the root
	Segments []Segment
}

// Provenance lists the objects whose DNA makes up the assembly, ordered by
// where they start on the root.
func (c *Context) Provenance() []Fragment {
	c.live()

	var frags []Fragment
	c.root.walk(func(n *Node) bool {
		if n.unit != dnaUnit {
			return true
		}
		seq, ok := c.sequence(n.Key)
		if !ok {
			return true
		}

		f := Fragment{Key: n.Key, Strand: n.Strand}
		for _, s := range n.Unspliced {
			if s.SelfStart > len(seq) {
				break
			}
			f.Length += min(s.SelfEnd, len(seq)) - s.SelfStart + 1
			f.Segments = append(f.Segments, s)
		}
		if f.Length > 0 {
			frags = append(frags, f)
		}
		return true
	})

	sort.SliceStable(frags, func(i, j int) bool {
		a, b := frags[i].start(), frags[j].start()
		if a != b {
			return a < b
		}
		return frags[i].Key < frags[j].Key
	})
	return frags
}

// start is the lowest root coordinate of the fragment.
func (f Fragment) start() int {
	lo := f.Segments[0].refLow()
	for _, s := range f.Segments[1:] {
		lo = min(lo, s.refLow())
	}
	return lo
}
