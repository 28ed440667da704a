package smap

import (
	"sync"

	"github.com/jjtimmons/smap/internal/store"
)

// Node is one object placed in a Context.
type Node struct {
	// Key is the object's identity
	Key store.Key

	// ParentKey is the object this node was reached from, empty for the root
	ParentKey store.Key

	// Length is the object's own length, spliced if it has exons
	Length int

	// UnsplicedLength is the length before splicing
	UnsplicedLength int

	// Strand is the orientation relative to the root
	Strand Strand

	// Offset is where the object was declared to start in ParentKey's coordinates
	Offset int

	// Kind is the conversion of the alignment the node was placed with
	Kind ConversionKind

	// AlignID names the alignment the node was placed with, if any
	AlignID string

	// Segments map the node's coordinates onto the root
	Segments []Segment

	// Unspliced maps the unspliced coordinates onto the root. Children are
	// declared in these coordinates. Equal to Segments without exons.
	Unspliced []Segment

	// Mismatches are spans of unspliced coordinates exempt from conflict checks
	Mismatches []MismatchRegion

	// Children are the nodes discovered from this one, in discovery order
	Children []*Node

	parent   *Node
	unit     int
	rootUnit int

	fwd, unspliced *mapping
	inverseOnce    sync.Once
	inverse        *mapping
}

// newNode fixes the node's maps. Segments must not be empty.
func newNode(key store.Key, segs, unspliced []Segment, strand Strand, unit, rootUnit int) *Node {
	n := &Node{
		Key:       key,
		Strand:    strand,
		Segments:  segs,
		Unspliced: unspliced,
		unit:      unit,
		rootUnit:  rootUnit,
	}
	n.fwd = newMapping(segs, strand, unit, rootUnit)
	n.unspliced = newMapping(unspliced, strand, unit, rootUnit)
	return n
}

// Parent is the node this one was discovered from.
func (n *Node) Parent() *Node {
	return n.parent
}

// Peptide reports whether the node's coordinates count residues.
func (n *Node) Peptide() bool {
	return n.unit == peptideUnit
}

// inverseMap builds the reference-to-self map once.
func (n *Node) inverseMap() *mapping {
	n.inverseOnce.Do(func() {
		n.inverse = n.fwd.inverse()
	})
	return n.inverse
}

// walk visits n and its descendants depth first.
func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// mismatchAt reports whether the unspliced position x is exempt.
func (n *Node) mismatchAt(x int) bool {
	for _, m := range n.Mismatches {
		if m.contains(x) {
			return true
		}
	}
	return false
}
