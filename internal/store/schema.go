package store

// Schema names the tags the mapping engine reads. It is built once by the
// caller and handed to the engine, instead of resolving tag names lazily.
type Schema struct {
	// SChild rows are [child, start, end] in the parent's coordinates
	SChild string

	// SParent rows are [parent]
	SParent string

	// Align rows are [child, parentPos, childPos, (length)], DNA to DNA
	Align string

	// AlignDNAPep rows have the same layout with a DNA parent and peptide child
	AlignDNAPep string

	// AlignPepDNA rows have the same layout with a peptide parent and DNA child
	AlignPepDNA string

	// MatchString rows are [child, cigar]
	MatchString string

	// AlignID rows are [child, id]
	AlignID string

	// SourceExons rows are [start, end] in the object's unspliced coordinates
	SourceExons string

	// Mismatch rows are [], [pos] or [start, end]
	Mismatch string

	// DNA rows are [dnaName, length]
	DNA string

	// Peptide rows are [length] and mark an object counted in residues
	Peptide string
}

// DefaultSchema returns the tag names used by the genome database.
func DefaultSchema() *Schema {
	return &Schema{
		SChild:      "S_Child",
		SParent:     "S_Parent",
		Align:       "Align",
		AlignDNAPep: "AlignDNAPep",
		AlignPepDNA: "AlignPepDNA",
		MatchString: "Match_string",
		AlignID:     "Align_id",
		SourceExons: "Source_exons",
		Mismatch:    "Mismatch",
		DNA:         "DNA",
		Peptide:     "Peptide",
	}
}
