package command

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jjtimmons/smap/internal/smap"
	"github.com/jjtimmons/smap/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStore = `
objects:
  - id: Sequence:chr
    tags:
      DNA: [["chr", 100]]
      S_Child:
        - ["Sequence:a", 11, 30]
        - ["Sequence:b", 60, 41]
  - id: Sequence:a
    tags:
      DNA: [["a", 20]]
      S_Parent: [["Sequence:chr"]]
  - id: Sequence:b
    tags:
      DNA: [["b", 20]]
      S_Parent: [["Sequence:chr"]]
  - id: Sequence:lost
    tags:
      DNA: [["lost", 5]]
`

func newRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	st, err := store.ParseYAML([]byte(testStore))
	require.NoError(t, err)

	var out bytes.Buffer
	return &Runner{Store: st, Out: &out, Dump: smap.DumpOptions{Segments: true}}, &out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *Request
		wantErr bool
	}{
		{
			"from only",
			"smap -from Sequence:a",
			&Request{Verb: Map, From: "Sequence:a"},
			false,
		},
		{
			"coords and target",
			"smap -from Sequence:a -coords 5 1 -to Sequence:chr",
			&Request{Verb: Map, From: "Sequence:a", To: "Sequence:chr", X1: 5, X2: 1},
			false,
		},
		{
			"dump with an area",
			"SMAP -dump -coords 1 50 -area 10 20 -from Sequence:chr",
			&Request{Verb: Map, From: "Sequence:chr", X1: 1, X2: 50, Dump: true, AreaStart: 10, AreaEnd: 20},
			false,
		},
		{
			"quoted object",
			`smap -from "Sequence:my seq"`,
			&Request{Verb: Map, From: "Sequence:my seq"},
			false,
		},
		{
			"length",
			"smaplength Protein:p",
			&Request{Verb: Length, From: "Protein:p"},
			false,
		},
		{"no from", "smap -coords 1 2", nil, true},
		{"missing coordinate", "smap -from Sequence:a -coords 1", nil, true},
		{"bad coordinate", "smap -from Sequence:a -coords 1 x", nil, true},
		{"object without a class", "smap -from chr", nil, true},
		{"unknown option", "smap -from Sequence:a -bogus", nil, true},
		{"area without dump", "smap -from Sequence:a -area 1 2", nil, true},
		{"dump with a target", "smap -dump -from Sequence:a -to Sequence:chr", nil, true},
		{"length without an object", "smaplength", nil, true},
		{"unknown verb", "find Sequence:a", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := Tokenize(tt.line)
			require.NoError(t, err)

			got, err := Parse(words)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUsage), "%v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			"child onto its root",
			"smap -from Sequence:a",
			"SMAP Sequence:chr 11 30 1 20 PerfectMap\n",
		},
		{
			"reverse child",
			"smap -from Sequence:b -coords 1 5",
			"SMAP Sequence:chr 60 56 1 5 PerfectMap\n",
		},
		{
			"clipped",
			"smap -from Sequence:a -coords 1 25 -to Sequence:chr",
			"SMAP Sequence:chr 11 30 1 20 X2ExternalClip\n",
		},
		{
			"parent onto its child",
			"smap -from Sequence:chr -to Sequence:a",
			"SMAP Sequence:a 1 20 11 30 X1ExternalClip,X2ExternalClip\n",
		},
		{
			"no overlap",
			"smap -from Sequence:a -coords 30 40",
			"SMAP Sequence:chr 0 0 30 40 X2NoOverlapExternal\n",
		},
		{
			"length",
			"smaplength Sequence:a",
			"SMAPLENGTH Sequence:a 20\n",
		},
		{
			"comment",
			"// smap -from Sequence:a",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out := newRunner(t)
			require.NoError(t, r.Run(tt.line))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunner_Run_Errors(t *testing.T) {
	r, out := newRunner(t)

	err := r.Run("smap -from Sequence:lost -to Sequence:chr")
	assert.True(t, errors.Is(err, smap.ErrNotFound))

	err = r.Run("smap -from Sequence:missing")
	assert.True(t, errors.Is(err, store.ErrUnknownObject))

	err = r.Run("smaplength Sequence:missing")
	assert.True(t, errors.Is(err, store.ErrUnknownObject))

	err = r.Run(`smap -from "Sequence:a`)
	assert.Error(t, err)

	assert.Empty(t, out.String())
}

func TestRunner_Dump(t *testing.T) {
	r, out := newRunner(t)

	require.NoError(t, r.Run("smap -dump -from Sequence:chr"))
	assert.Contains(t, out.String(), "smap of Sequence:chr, 1..100 (+), area 1..100, 3 objects\n")
	assert.Contains(t, out.String(), "  Sequence:a + length 20 at 11 in Sequence:chr, DnaToDna\n    segments [1,20]->[11,30]\n")

	out.Reset()
	require.NoError(t, r.Run("smap -dump -area 1 35 -from Sequence:chr"))
	assert.Contains(t, out.String(), "area 1..35, 2 objects\n")
	assert.NotContains(t, out.String(), "Sequence:b")
}

func TestRunner_Shell(t *testing.T) {
	r, out := newRunner(t)

	in := strings.Join([]string{
		"smaplength Sequence:a",
		"",
		"// a comment",
		"smap -from",
		"smap -from Sequence:b",
	}, "\n")

	failed, err := r.Shell(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SMAPLENGTH Sequence:a 20", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "// smap error: -from needs an object"), lines[1])
	assert.Equal(t, "SMAP Sequence:chr 60 41 1 20 PerfectMap", lines[2])
}
