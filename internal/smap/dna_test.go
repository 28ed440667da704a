package smap

import (
	"bytes"
	"testing"

	"github.com/jjtimmons/smap/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_AssembleDNA(t *testing.T) {
	top := store.Key("Sequence:top")
	c1, c2 := store.Key("Sequence:c1"), store.Key("Sequence:c2")
	r := store.Key("Sequence:r")

	tests := []struct {
		name  string
		st    *store.Mem
		root  store.Key
		want  string
		found bool
	}{
		{
			"children concatenated at their offsets",
			store.NewMem().
				Add(top, "DNA", store.Row{"top", 20}).
				Add(top, "S_Child", store.Row{string(c1), 1, 10}, store.Row{string(c2), 11, 20}).
				Add(c1, "DNA", store.Row{"c1", 10}).
				Add(c2, "DNA", store.Row{"c2", 10}).
				AddDNA("c1", []byte("ACGTACGTAC")).
				AddDNA("c2", []byte("ggggcccctt")),
			top,
			"acgtacgtacggggcccctt",
			true,
		},
		{
			"reverse child is complemented",
			store.NewMem().
				Add(top, "DNA", store.Row{"top", 10}).
				Add(top, "S_Child", store.Row{string(r), 10, 1}).
				Add(r, "DNA", store.Row{"r", 10}).
				AddDNA("r", []byte("aaccggttac")),
			top,
			"gtaaccggtt",
			true,
		},
		{
			"uncovered bases are n",
			store.NewMem().
				Add(top, "DNA", store.Row{"top", 12}).
				Add(top, "S_Child", store.Row{string(c1), 1, 10}).
				Add(c1, "DNA", store.Row{"c1", 10}).
				AddDNA("c1", []byte("acgtacgtac")),
			top,
			"acgtacgtacnn",
			true,
		},
		{
			"no sequence anywhere",
			scenarioStore(),
			keyChr,
			"",
			false,
		},
		{
			"peptide root",
			store.NewMem().Add(keyProtein, "Peptide", store.Row{10}),
			keyProtein,
			"",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := build(t, tt.st, tt.root, 0, 0, nil)
			got, ok := c.AssembleDNA(nil)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

// conflictStore holds a 10bp root and a child over 1..4 disagreeing at 4.
func conflictStore() (*store.Mem, store.Key, store.Key) {
	root, child := store.Key("Sequence:ref"), store.Key("Sequence:c")
	st := store.NewMem().
		Add(root, "DNA", store.Row{"ref", 10}).
		Add(root, "S_Child", store.Row{string(child), 1, 4}).
		Add(child, "DNA", store.Row{"c", 4}).
		AddDNA("ref", []byte("acgtacgtac")).
		AddDNA("c", []byte("acgg"))
	return st, root, child
}

func TestContext_AssembleDNA_Conflict(t *testing.T) {
	st, root, child := conflictStore()
	c := build(t, st, root, 0, 0, nil)

	var conflicts []Conflict
	dna, ok := c.AssembleDNA(func(cf Conflict) bool {
		conflicts = append(conflicts, cf)
		return true
	})
	require.True(t, ok)
	assert.Equal(t, "acgkacgtac", string(dna))
	assert.Equal(t, []Conflict{{Key: child, Position: 4, Existing: 't', New: 'g'}}, conflicts)

	bases, ok := c.AssembleBases(nil)
	require.True(t, ok)
	assert.True(t, bases[3].HasConflict)
	assert.False(t, bases[2].HasConflict)

	dna, ok = c.AssembleDNA(func(Conflict) bool { return false })
	assert.False(t, ok)
	assert.Nil(t, dna)
}

func TestContext_AssembleDNA_Mismatch(t *testing.T) {
	st, root, child := conflictStore()
	st.Add(child, "Mismatch", store.Row{4})
	c := build(t, st, root, 0, 0, nil)

	dna, ok := c.AssembleDNA(func(cf Conflict) bool {
		t.Errorf("unexpected conflict %+v", cf)
		return true
	})
	require.True(t, ok)
	assert.Equal(t, "acggacgtac", string(dna))
}

func Test_ambiguity(t *testing.T) {
	assert.Equal(t, byte('r'), ambiguity('a', 'g'))
	assert.Equal(t, byte('y'), ambiguity('C', 't'))
	assert.Equal(t, byte('v'), ambiguity('m', 'g'))
	assert.Equal(t, byte('n'), ambiguity('x', 'a'))
	assert.Equal(t, byte('a'), complementBase('T'))
	assert.Equal(t, byte('y'), complementBase('r'))
}

func TestContext_Provenance(t *testing.T) {
	top := store.Key("Sequence:top")
	c1, c2 := store.Key("Sequence:c1"), store.Key("Sequence:c2")
	st := store.NewMem().
		Add(top, "DNA", store.Row{"top", 20}).
		Add(top, "S_Child", store.Row{string(c2), 20, 11}, store.Row{string(c1), 1, 8}).
		Add(c1, "DNA", store.Row{"c1", 10}).
		Add(c2, "DNA", store.Row{"c2", 10}).
		AddDNA("c1", []byte("acgtacgt")).
		AddDNA("c2", []byte("ggggcccctt"))

	c := build(t, st, top, 0, 0, nil)
	assert.Equal(t, []Fragment{
		{Key: c1, Strand: Forward, Length: 8, Segments: []Segment{{1, 8, 1, 8}}},
		{Key: c2, Strand: Reverse, Length: 10, Segments: []Segment{{20, 11, 1, 10}}},
	}, c.Provenance())
}

func TestContext_Dump(t *testing.T) {
	st := scenarioStore().
		Add(keyFwd, "Mismatch", store.Row{3, 5}).
		Add(keyChr, "S_Child", store.Row{"Sequence:bad", 1, 5}).
		Add(keyChr, "Match_string", store.Row{"Sequence:bad", "5Q"})
	c := build(t, st, keyChr, 0, 0, nil)

	var out bytes.Buffer
	require.NoError(t, c.Dump(&out, DumpOptions{Segments: true, Mismatches: true}))
	dump := out.String()

	assert.Contains(t, dump, "smap of Sequence:chr, 1..100 (+), area 1..100, 4 objects\n")
	assert.Contains(t, dump, "\n  Sequence:a + length 20 at 11 in Sequence:chr, DnaToDna\n    segments [1,20]->[11,30]\n    mismatches 3..5\n")
	assert.Contains(t, dump, "  Sequence:b - length 20 at 60 in Sequence:chr, DnaToDna\n")
	assert.Contains(t, dump, "  Sequence:m + length 20 at 11 in Sequence:chr, DnaToDna [est-7]\n")
	assert.Contains(t, dump, "skipped:\n  Sequence:bad (from Sequence:chr): Error")
	assert.NotContains(t, dump, "rawNode")

	out.Reset()
	require.NoError(t, c.Dump(&out, DumpOptions{Raw: true}))
	assert.Contains(t, out.String(), "rawNode")
	assert.Contains(t, out.String(), "AlignID: (string) (len=5) \"est-7\"")
	assert.NotContains(t, out.String(), "segments [")
}
