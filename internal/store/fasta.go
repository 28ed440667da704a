package store

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// WriteFASTA writes one sequence as FASTA, width bases per line. A width of
// zero writes the sequence on a single line.
func WriteFASTA(w io.Writer, id, desc string, dna []byte, width int) error {
	if width <= 0 {
		width = max(len(dna), 1)
	}

	s := linear.NewSeq(id, alphabet.BytesToLetters(dna), alphabet.DNAredundant)
	s.Desc = desc

	out := fasta.NewWriter(w, width)
	if _, err := out.Write(s); err != nil {
		return fmt.Errorf("failed to write %s: %w", id, err)
	}
	return nil
}

// LoadFASTA adds every sequence in the FASTA files to the DNA table,
// keyed by the sequence ID.
func (m *Mem) LoadFASTA(paths ...string) error {
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("failed to open DNA file %s: %w", p, err)
		}
		err = m.ReadFASTA(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to read DNA file %s: %w", p, err)
		}
	}
	return nil
}

// ReadFASTA adds every sequence read from r.
func (m *Mem) ReadFASTA(r io.Reader) error {
	in := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	for {
		s, err := in.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		l := s.(*linear.Seq)
		dna := make([]byte, len(l.Seq))
		for i, v := range l.Seq {
			dna[i] = byte(v)
		}
		m.AddDNA(l.ID, dna)
	}
}
