package smap

import (
	"testing"

	"github.com/jjtimmons/smap/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_clipAlignment(t *testing.T) {
	type args struct {
		kind                     ConversionKind
		refStrand, matchStrand   Strand
		parentStart, parentEnd   int
		clippedStart, clippedEnd int
		selfStart, selfEnd       int
	}
	tests := []struct {
		name       string
		args       args
		want       Clipped
		wantStatus Status
	}{
		{
			"unclipped",
			args{DnaToDna, Forward, Forward, 11, 30, 11, 30, 1, 20},
			Clipped{ParentStart: 11, ParentEnd: 30, SelfStart: 1, SelfEnd: 20},
			PerfectMap,
		},
		{
			"reverse parent clipped at its start",
			args{DnaToDna, Reverse, Forward, 60, 41, 55, 41, 1, 20},
			Clipped{ParentStart: 55, ParentEnd: 41, SelfStart: 6, SelfEnd: 20},
			X1ExternalClip,
		},
		{
			"peptide clip rounds up to a whole codon",
			args{DnaToPeptide, Forward, Forward, 11, 40, 21, 40, 1, 10},
			Clipped{ParentStart: 23, ParentEnd: 40, SelfStart: 5, SelfEnd: 10},
			X1ExternalClip,
		},
		{
			"peptide clip rounds the end down",
			args{DnaToPeptide, Forward, Forward, 11, 40, 11, 38, 1, 10},
			Clipped{ParentStart: 11, ParentEnd: 37, SelfStart: 1, SelfEnd: 9},
			X2ExternalClip,
		},
		{
			"strands inferred",
			args{DnaToDna, Invalid, Invalid, 30, 11, 30, 11, 20, 1},
			Clipped{ParentStart: 30, ParentEnd: 11, SelfStart: 20, SelfEnd: 1},
			PerfectMap,
		},
		{
			"no strand for a single position",
			args{DnaToDna, Invalid, Invalid, 5, 5, 5, 5, 3, 3},
			Clipped{},
			Error,
		},
		{
			"clip outside the parent interval",
			args{DnaToDna, Forward, Forward, 10, 20, 5, 20, 1, 11},
			Clipped{},
			Error,
		},
		{
			"less than a codon left",
			args{DnaToPeptide, Forward, Forward, 11, 13, 12, 13, 1, 1},
			Clipped{},
			NoOverlapInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.args
			got, status := clipAlignment(a.kind, a.refStrand, a.matchStrand,
				a.parentStart, a.parentEnd, a.clippedStart, a.clippedEnd, a.selfStart, a.selfEnd)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func Test_verifyLocalMap(t *testing.T) {
	tests := []struct {
		name     string
		local    localMap
		childLen int
		want     Status
	}{
		{
			"two blocks",
			localMap{segs: []Segment{{1, 10, 1, 10}, {31, 40, 11, 20}}, strand: Forward},
			20,
			PerfectMap,
		},
		{
			"past the end of the child",
			localMap{segs: []Segment{{1, 10, 1, 10}, {31, 40, 11, 20}}, strand: Forward},
			15,
			Error,
		},
		{
			"overlapping self",
			localMap{segs: []Segment{{1, 10, 1, 10}, {31, 40, 10, 19}}, strand: Forward},
			20,
			Error,
		},
		{
			"parent turns back",
			localMap{segs: []Segment{{11, 20, 1, 10}, {15, 24, 11, 20}}, strand: Forward},
			20,
			Error,
		},
		{
			"ascending parent on the reverse strand",
			localMap{segs: []Segment{{11, 20, 1, 10}}, strand: Reverse},
			20,
			Error,
		},
		{
			"reverse blocks",
			localMap{segs: []Segment{{40, 31, 1, 10}, {20, 11, 11, 20}}, strand: Reverse},
			20,
			PerfectMap,
		},
		{
			"dna blocks sharing a residue",
			localMap{segs: []Segment{{1, 1, 1, 3}, {1, 2, 4, 6}}, kind: PeptideToDna, strand: Forward},
			6,
			PerfectMap,
		},
		{
			"empty",
			localMap{strand: Forward},
			20,
			Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, verifyLocalMap(tt.local, tt.childLen))
		})
	}
}

func Test_compose(t *testing.T) {
	root := newMapping([]Segment{{1, 100, 1, 100}}, Forward, dnaUnit, dnaUnit)
	gappedParent := newMapping([]Segment{{1, 10, 1, 10}, {11, 20, 21, 30}}, Forward, dnaUnit, dnaUnit)

	tests := []struct {
		name       string
		local      localMap
		parent     *mapping
		want       []Segment
		wantStatus Status
	}{
		{
			"identity",
			localMap{segs: []Segment{{11, 30, 1, 20}}, strand: Forward},
			root,
			[]Segment{{11, 30, 1, 20}},
			PerfectMap,
		},
		{
			"split at a parent gap",
			localMap{segs: []Segment{{1, 30, 1, 30}}, strand: Forward},
			gappedParent,
			[]Segment{{1, 10, 1, 10}, {11, 20, 21, 30}},
			X2ExternalClip | InternalGaps,
		},
		{
			"peptide child",
			localMap{segs: []Segment{{11, 40, 1, 10}}, kind: DnaToPeptide, strand: Forward},
			root,
			[]Segment{{11, 40, 1, 10}},
			PerfectMap,
		},
		{
			"segment off the parent is dropped",
			localMap{segs: []Segment{{1, 10, 1, 10}, {41, 50, 11, 20}}, strand: Forward},
			newMapping([]Segment{{1, 20, 1, 20}}, Forward, dnaUnit, dnaUnit),
			[]Segment{{1, 10, 1, 10}},
			X1ExternalClip,
		},
		{
			"nothing left",
			localMap{segs: []Segment{{41, 50, 1, 10}}, strand: Forward},
			newMapping([]Segment{{1, 20, 1, 20}}, Forward, dnaUnit, dnaUnit),
			nil,
			X1ExternalClip | NoOverlapInternal,
		},
		{
			"peptide kind under a peptide parent",
			localMap{segs: []Segment{{1, 10, 1, 10}}, kind: DnaToPeptide, strand: Forward},
			newMapping([]Segment{{1, 30, 1, 10}}, Forward, peptideUnit, dnaUnit),
			nil,
			Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, status := compose(tt.local, tt.parent)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func Test_localMap_invert(t *testing.T) {
	l := localMap{segs: []Segment{{40, 31, 1, 10}, {20, 11, 11, 20}}, kind: DnaToPeptide, strand: Reverse}
	inv := l.invert()

	assert.Equal(t, PeptideToDna, inv.kind)
	assert.Equal(t, []Segment{{20, 11, 11, 20}, {10, 1, 31, 40}}, inv.segs)
	assert.Equal(t, PerfectMap, verifyLocalMap(inv, 40))
}

func Test_matchString(t *testing.T) {
	d := declaration{start: 11, end: 40, parentUnit: dnaUnit, childUnit: dnaUnit}

	segs, status := matchString("10M 10D 10M", d)
	require.Equal(t, PerfectMap, status)
	assert.Equal(t, []Segment{{11, 20, 1, 10}, {31, 40, 11, 20}}, segs)

	segs, status = matchString("5M2I3=4X", d)
	require.Equal(t, PerfectMap, status)
	assert.Equal(t, []Segment{{11, 15, 1, 5}, {16, 22, 8, 14}}, segs)

	_, status = matchString("10Q", d)
	assert.Equal(t, Error, status)

	_, status = matchString("3I", d)
	assert.Equal(t, NoData, status)

	rev := declaration{start: 40, end: 11, parentUnit: dnaUnit, childUnit: dnaUnit}
	segs, status = matchString("10M10N10M", rev)
	require.Equal(t, PerfectMap, status)
	assert.Equal(t, []Segment{{40, 31, 1, 10}, {20, 11, 11, 20}}, segs)
}

func Test_gapped(t *testing.T) {
	d := declaration{start: 11, end: 40, parentUnit: dnaUnit, childUnit: dnaUnit}

	// lengths inferred from the next block and from the declaration
	segs, status := gapped([]store.Row{
		{"Sequence:m", 31, 11},
		{"Sequence:m", 11, 1},
	}, d)
	require.Equal(t, PerfectMap, status)
	assert.Equal(t, []Segment{{11, 20, 1, 10}, {31, 40, 11, 20}}, segs)

	pep := declaration{start: 11, end: 40, parentUnit: dnaUnit, childUnit: peptideUnit}
	segs, status = gapped([]store.Row{{"Protein:p", 11, 1, 10}}, pep)
	require.Equal(t, PerfectMap, status)
	assert.Equal(t, []Segment{{11, 40, 1, 10}}, segs)

	_, status = gapped([]store.Row{{"Sequence:m", 0, 1}}, d)
	assert.Equal(t, Error, status)
}
