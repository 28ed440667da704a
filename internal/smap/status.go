package smap

import "strings"

// Status describes how a mapping request went. It is a set of flags; the
// zero value is PerfectMap.
type Status uint32

const (
	// InternalGaps means the interval spans more than one segment
	InternalGaps Status = 1 << iota
	// X1ExternalClip means x1 was before the first segment and was moved onto it
	X1ExternalClip
	// X1InternalClip means x1 was in a gap between segments
	X1InternalClip
	// X2ExternalClip means x2 was past the last segment and was moved onto it
	X2ExternalClip
	// X2InternalClip means x2 was in a gap between segments
	X2InternalClip
	// X1NoOverlapExternal means the interval lies wholly outside the map, on x1's side
	X1NoOverlapExternal
	// X2NoOverlapExternal means the interval lies wholly outside the map, on x2's side
	X2NoOverlapExternal
	// NoOverlapInternal means the interval lies wholly in one gap
	NoOverlapInternal
	// OutsideArea means the result is valid but outside the requested area
	OutsideArea
	// Error means the alignment data is malformed
	Error
	// BadArgs means the caller passed unusable coordinates
	BadArgs
	// NoData means there was no alignment to read
	NoData
)

const (
	// PerfectMap is a clean, complete mapping
	PerfectMap Status = 0

	// Clip is any of the clip flags
	Clip = X1ExternalClip | X1InternalClip | X2ExternalClip | X2InternalClip

	// NoOverlap is any of the no-overlap flags
	NoOverlap = X1NoOverlapExternal | X2NoOverlapExternal | NoOverlapInternal

	// failed statuses leave the mapped coordinates undefined
	failed = NoOverlap | Error | BadArgs
)

// statusNames is the canonical rendering order.
var statusNames = []struct {
	flag Status
	name string
}{
	{InternalGaps, "InternalGaps"},
	{X1ExternalClip, "X1ExternalClip"},
	{X1InternalClip, "X1InternalClip"},
	{X2ExternalClip, "X2ExternalClip"},
	{X2InternalClip, "X2InternalClip"},
	{X1NoOverlapExternal, "X1NoOverlapExternal"},
	{X2NoOverlapExternal, "X2NoOverlapExternal"},
	{NoOverlapInternal, "NoOverlapInternal"},
	{OutsideArea, "OutsideArea"},
	{Error, "Error"},
	{BadArgs, "BadArgs"},
	{NoData, "NoData"},
}

// Has reports whether any of the flags in f are set.
func (s Status) Has(f Status) bool {
	return s&f != 0
}

// Mapped reports whether the mapped coordinates can be used.
func (s Status) Mapped() bool {
	return s&failed == 0
}

// String joins the set flags with commas, in a fixed order.
func (s Status) String() string {
	if s == PerfectMap {
		return "PerfectMap"
	}

	var names []string
	for _, n := range statusNames {
		if s&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// Result is the answer to a mapping query.
type Result struct {
	// Y1 and Y2 are the mapped coordinates, in the order of the query
	Y1, Y2 int

	// X1 and X2 are the query coordinates actually used, after clipping
	X1, X2 int

	Status Status
}
