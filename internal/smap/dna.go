package smap

import (
	"github.com/jjtimmons/smap/internal/store"
)

// Base is one position of an assembled sequence.
type Base struct {
	// Value is the base, an ambiguity code where contributions disagree
	Value byte

	// HasConflict is set when two contributions disagreed here
	HasConflict bool
}

// Conflict is a disagreement found while assembling DNA.
type Conflict struct {
	// Key is the object whose base disagreed with the one already placed
	Key store.Key

	// Position is the root coordinate of the base
	Position int

	// Existing is the base that was placed first, New the one that disagreed
	Existing, New byte
}

// MismatchFunc is called on every conflict. Returning false stops assembly.
type MismatchFunc func(Conflict) bool

// interval is a closed range of root coordinates.
type interval struct {
	lo, hi int
}

// AssembleDNA stitches the DNA of every object in the Context into one
// sequence over the root window. Bases no object covers are 'n'. It returns
// false when the root does not count bases, when no DNA could be placed, or
// when onMismatch stopped the assembly.
func (c *Context) AssembleDNA(onMismatch MismatchFunc) ([]byte, bool) {
	bases, ok := c.AssembleBases(onMismatch)
	if !ok {
		return nil, false
	}

	dna := make([]byte, len(bases))
	for i, b := range bases {
		dna[i] = b.Value
	}
	return dna, true
}

// AssembleBases is AssembleDNA keeping which bases were in conflict.
func (c *Context) AssembleBases(onMismatch MismatchFunc) ([]Base, bool) {
	c.live()
	if c.root.unit != dnaUnit {
		return nil, false
	}

	a := &assembly{ctx: c, out: make([]Base, c.length), onMismatch: onMismatch}
	if !a.node(c.root, nil) || !a.placed {
		return nil, false
	}

	for i := range a.out {
		if a.out[i].Value == 0 {
			a.out[i].Value = 'n'
		}
	}
	return a.out, true
}

// assembly is the state of one AssembleBases call.
type assembly struct {
	ctx        *Context
	out        []Base
	placed     bool
	onMismatch MismatchFunc
}

// node places n's sequence and then its children's. exempt are the root
// intervals where n may overwrite what is there, inherited from its ancestors.
func (a *assembly) node(n *Node, exempt []interval) bool {
	for _, m := range n.Mismatches {
		r := n.unspliced.mapInterval(m.Start, m.End)
		if r.Status.Mapped() {
			exempt = append(exempt[:len(exempt):len(exempt)], interval{lo: min(r.Y1, r.Y2), hi: max(r.Y1, r.Y2)})
		}
	}

	if n.unit == dnaUnit {
		if seq, ok := a.ctx.sequence(n.Key); ok {
			if !a.place(n, seq, exempt) {
				return false
			}
		}
	}

	for _, child := range n.Children {
		if !a.node(child, exempt) {
			return false
		}
	}
	return true
}

// place writes seq, in n's unspliced coordinates, onto the root.
func (a *assembly) place(n *Node, seq []byte, exempt []interval) bool {
	for _, s := range n.Unspliced {
		for x := s.SelfStart; x <= s.SelfEnd && x <= len(seq); x++ {
			y := s.RefStart + (x - s.SelfStart)
			b := lower(seq[x-1])
			if n.Strand == Reverse {
				y = s.RefStart - (x - s.SelfStart)
				b = complementBase(b)
			}
			if y < 1 || y > len(a.out) {
				continue
			}
			a.placed = true

			cur := &a.out[y-1]
			switch {
			case cur.Value == 0:
				cur.Value = b
			case cur.Value == b:
			case exempted(exempt, y):
				*cur = Base{Value: b}
			default:
				conflict := Conflict{Key: n.Key, Position: y, Existing: cur.Value, New: b}
				*cur = Base{Value: ambiguity(cur.Value, b), HasConflict: true}
				if a.onMismatch != nil && !a.onMismatch(conflict) {
					return false
				}
			}
		}
	}
	return true
}

func exempted(exempt []interval, y int) bool {
	for _, e := range exempt {
		if y >= e.lo && y <= e.hi {
			return true
		}
	}
	return false
}

// sequence is the DNA an object points at, or the DNA stored under its name.
func (c *Context) sequence(key store.Key) ([]byte, bool) {
	name := key.Name()
	if obj, ok := c.st.Object(key); ok {
		if rows := obj.Rows(c.schema.DNA); len(rows) > 0 {
			if s, ok := rows[0].String(0); ok && s != "" {
				name = s
			}
		}
	}
	return c.st.DNA(name)
}
