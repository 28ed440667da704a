package smap

import "fmt"

// Strand is an orientation relative to a reference.
type Strand int

const (
	// Forward coordinates increase with the reference
	Forward Strand = iota
	// Reverse coordinates decrease as the reference increases
	Reverse
	// Invalid is an orientation that could not be determined
	Invalid
)

// strandOf infers a strand from the sign of end - start. A single position
// has no direction.
func strandOf(start, end int) Strand {
	switch {
	case end > start:
		return Forward
	case end < start:
		return Reverse
	}
	return Invalid
}

// Flip returns the opposite strand.
func (s Strand) Flip() Strand {
	switch s {
	case Forward:
		return Reverse
	case Reverse:
		return Forward
	}
	return Invalid
}

// Join returns the strand of a map composed through another with strand o.
func (s Strand) Join(o Strand) Strand {
	if s == Invalid || o == Invalid {
		return Invalid
	}
	if s == o {
		return Forward
	}
	return Reverse
}

func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	}
	return "?"
}

// ConversionKind says which alphabets an alignment relates.
type ConversionKind int

const (
	// DnaToDna aligns bases to bases
	DnaToDna ConversionKind = iota
	// DnaToPeptide aligns a DNA parent to a peptide child
	DnaToPeptide
	// PeptideToDna aligns a peptide parent to a DNA child
	PeptideToDna
)

// dnaUnit and peptideUnit are the bases per coordinate.
const (
	dnaUnit     = 1
	peptideUnit = 3
)

// units returns the bases per parent and child coordinate.
func (k ConversionKind) units() (parent, child int) {
	switch k {
	case DnaToPeptide:
		return dnaUnit, peptideUnit
	case PeptideToDna:
		return peptideUnit, dnaUnit
	}
	return dnaUnit, dnaUnit
}

// Inverse swaps the roles of parent and child.
func (k ConversionKind) Inverse() ConversionKind {
	switch k {
	case DnaToPeptide:
		return PeptideToDna
	case PeptideToDna:
		return DnaToPeptide
	}
	return DnaToDna
}

// kindOf picks the conversion between a parent and child counted in the given units.
func kindOf(parentUnit, childUnit int) ConversionKind {
	switch {
	case parentUnit == dnaUnit && childUnit == peptideUnit:
		return DnaToPeptide
	case parentUnit == peptideUnit && childUnit == dnaUnit:
		return PeptideToDna
	}
	return DnaToDna
}

func (k ConversionKind) String() string {
	switch k {
	case DnaToPeptide:
		return "DnaToPeptide"
	case PeptideToDna:
		return "PeptideToDna"
	}
	return "DnaToDna"
}

// Segment is one ungapped block of a map. Self coordinates always ascend;
// reference coordinates ascend on the forward strand and descend on the reverse.
type Segment struct {
	RefStart, RefEnd   int
	SelfStart, SelfEnd int
}

func (s Segment) String() string {
	return fmt.Sprintf("[%d,%d]->[%d,%d]", s.SelfStart, s.SelfEnd, s.RefStart, s.RefEnd)
}

// refLow and refHigh are the reference bounds regardless of strand.
func (s Segment) refLow() int {
	if s.RefStart < s.RefEnd {
		return s.RefStart
	}
	return s.RefEnd
}

func (s Segment) refHigh() int {
	if s.RefStart > s.RefEnd {
		return s.RefStart
	}
	return s.RefEnd
}

// MismatchRegion is a span of an object's own coordinates where its sequence
// may disagree with sequence already placed.
type MismatchRegion struct {
	Start, End int
}

func (m MismatchRegion) contains(x int) bool {
	return x >= m.Start && x <= m.End
}

// ceilDiv is a/b rounded up, for non-negative a and positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
