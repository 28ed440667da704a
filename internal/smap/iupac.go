package smap

// nucleotide bits of each IUPAC code
var iupacBits = map[byte]uint8{
	'a': 1, 'c': 2, 'g': 4, 't': 8,
	'm': 1 | 2, 'r': 1 | 4, 'w': 1 | 8,
	's': 2 | 4, 'y': 2 | 8, 'k': 4 | 8,
	'v': 1 | 2 | 4, 'h': 1 | 2 | 8, 'd': 1 | 4 | 8, 'b': 2 | 4 | 8,
	'n': 1 | 2 | 4 | 8,
}

// iupacCode is the letter for each set of nucleotide bits
var iupacCode = [16]byte{
	'n', 'a', 'c', 'm', 'g', 'r', 's', 'v',
	't', 'w', 'y', 'h', 'k', 'd', 'b', 'n',
}

var complement = map[byte]byte{
	'a': 't', 'c': 'g', 'g': 'c', 't': 'a',
	'r': 'y', 'y': 'r',
	's': 's', 'w': 'w',
	'k': 'm', 'm': 'k',
	'b': 'v', 'v': 'b',
	'd': 'h', 'h': 'd',
	'n': 'n',
}

// bits is the nucleotide set of a base, every nucleotide if unknown.
func bits(b byte) uint8 {
	if v, ok := iupacBits[lower(b)]; ok {
		return v
	}
	return 15
}

// ambiguity is the IUPAC code covering both a and b.
func ambiguity(a, b byte) byte {
	return iupacCode[bits(a)|bits(b)]
}

// complementBase is the complement of b, n if it is not a base.
func complementBase(b byte) byte {
	if c, ok := complement[lower(b)]; ok {
		return c
	}
	return 'n'
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
