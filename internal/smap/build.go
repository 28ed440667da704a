package smap

import (
	"fmt"
	"log"
	"os"

	"github.com/jjtimmons/smap/internal/store"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// Options control how a Context is built.
type Options struct {
	// AreaStart and AreaEnd bound the display window, in root coordinates.
	// Children wholly outside it are not placed. Zero means no window.
	AreaStart, AreaEnd int

	// Schema names the tags to read. DefaultSchema is used when nil
	Schema *store.Schema

	// Verbose logs every object that is left out of the map
	Verbose bool
}

// direction is which way an object was reached.
type direction int

const (
	down direction = iota
	up
)

// builder discovers the object tree around the root.
type builder struct {
	ctx     *Context
	st      store.Store
	schema  *store.Schema
	verbose bool

	rootUnit int
}

// Build creates the Context for root over [x1, x2] of the root's own
// coordinates. x2 < x1 builds the map on the reverse strand. Zero
// coordinates stand for the ends of the root object.
func Build(st store.Store, root store.Key, x1, x2 int, opts *Options) (*Context, error) {
	if opts == nil {
		opts = &Options{}
	}
	schema := opts.Schema
	if schema == nil {
		schema = store.DefaultSchema()
	}

	obj, ok := st.Object(root)
	if !ok {
		return nil, fmt.Errorf("failed to build smap of %s: %w", root, store.ErrUnknownObject)
	}
	if x1 < 0 || x2 < 0 {
		return nil, fmt.Errorf("coordinates %d %d: %w", x1, x2, ErrBadArgs)
	}

	length := unsplicedLength(st, schema, obj)
	if length == 0 {
		length = declaredSpan(st, schema, obj)
	}
	x1, x2 = wholeExtent(x1, x2, length)
	if x1 < 1 || x2 < 1 {
		return nil, fmt.Errorf("%s has no length and no coordinates were given: %w", root, ErrBadArgs)
	}

	strand := Forward
	lo, hi := x1, x2
	if x2 < x1 {
		strand = Reverse
		lo, hi = x2, x1
	}
	span := hi - lo + 1

	seg := Segment{SelfStart: lo, SelfEnd: hi, RefStart: 1, RefEnd: span}
	if strand == Reverse {
		seg.RefStart, seg.RefEnd = span, 1
	}

	unit := unitOf(obj, schema)
	n := newNode(root, []Segment{seg}, []Segment{seg}, strand, unit, unit)
	n.Length = max(length, hi)
	n.UnsplicedLength = n.Length
	n.Mismatches = mismatches(obj, schema, n.UnsplicedLength)

	ctx := &Context{
		root:   n,
		st:     st,
		schema: schema,
		length: span,
		nodes:  map[store.Key]*Node{root: n},
	}
	if opts.AreaStart != 0 || opts.AreaEnd != 0 {
		if opts.AreaStart < 0 || opts.AreaEnd < 0 {
			return nil, fmt.Errorf("area %d %d: %w", opts.AreaStart, opts.AreaEnd, ErrBadArgs)
		}
		a1, a2 := wholeExtent(opts.AreaStart, opts.AreaEnd, span)
		ctx.hasArea = true
		ctx.areaStart, ctx.areaEnd = min(a1, a2), max(a1, a2)
	}

	b := &builder{ctx: ctx, st: st, schema: schema, verbose: opts.Verbose, rootUnit: unit}
	b.expand(n, false)
	return ctx, nil
}

// expand places the children of n that fall in the map and, unless n was
// reached from its parent, the parent of n.
func (b *builder) expand(n *Node, parentVisited bool) {
	obj, ok := b.st.Object(n.Key)
	if !ok {
		return
	}

	for _, row := range obj.Rows(b.schema.SChild) {
		child, ok1 := row.Key(0)
		start, ok2 := row.Int(1)
		end, ok3 := row.Int(2)
		if !ok1 || !ok2 || !ok3 || start < 1 || end < 1 {
			b.skip(child, n.Key, BadArgs, "malformed child declaration")
			continue
		}
		if _, seen := b.ctx.nodes[child]; seen {
			continue
		}

		r := n.unspliced.mapInterval(start, end)
		if !r.Status.Mapped() || b.ctx.outsideArea(r.Y1, r.Y2) {
			continue
		}
		b.addNode(n, obj, child, start, end, down)
	}

	if parentVisited {
		return
	}

	// an object has at most one parent, the first valid row
	for _, row := range obj.Rows(b.schema.SParent) {
		parent, ok := row.Key(0)
		if !ok {
			continue
		}
		if _, seen := b.ctx.nodes[parent]; seen {
			return
		}

		pObj, ok := b.st.Object(parent)
		if !ok {
			b.skip(parent, n.Key, NoData, "parent is not in the database")
			return
		}
		rows := pObj.RowsFor(b.schema.SChild, n.Key)
		if len(rows) == 0 {
			b.skip(parent, n.Key, NoData, "parent does not declare "+string(n.Key))
			return
		}
		start, ok1 := rows[0].Int(1)
		end, ok2 := rows[0].Int(2)
		if !ok1 || !ok2 || start < 1 || end < 1 {
			b.skip(parent, n.Key, BadArgs, "malformed child declaration")
			return
		}
		b.addNode(n, pObj, parent, start, end, up)
		return
	}
}

// addNode places key, reached from the node from. declaring is the object
// holding the S_Child line [start, end]: from's object going down, key's
// object going up. Each object is placed at most once; a later path to it
// returns the existing node without linking it again, which is what stops
// cycles in the database. A nil return means the object could not be placed.
func (b *builder) addNode(from *Node, declaring *store.Object, key store.Key, start, end int, dir direction) *Node {
	if n, seen := b.ctx.nodes[key]; seen {
		return n
	}

	obj, _ := b.st.Object(key)
	unit := unitOf(obj, b.schema)
	exons, status := exonMap(obj, b.schema)
	if status == Error {
		b.skip(key, from.Key, Error, "bad Source_exons")
		return nil
	}

	d := declaration{start: start, end: end}
	if dir == down {
		d.child = key
		d.parentUnit, d.childUnit = from.unit, unit
		d.childLen = unsplicedLength(b.st, b.schema, obj)
		if d.childLen == 0 {
			d.childLen = d.childSpan()
		}
		d.lo, d.hi = from.unspliced.first(), from.unspliced.last()
	} else {
		d.child = from.Key
		d.parentUnit, d.childUnit = unit, from.unit
		d.childLen = from.UnsplicedLength
		d.lo, d.hi = 1, unsplicedLength(b.st, b.schema, obj)
	}

	local, status := b.alignment(declaring, d)
	if !status.Mapped() {
		b.skip(key, from.Key, status, "alignment does not overlap")
		return nil
	}
	if v := verifyLocalMap(local, d.childLen); v != PerfectMap {
		b.skip(key, from.Key, v, "alignment is not colinear or exceeds the child")
		return nil
	}

	var pl placement
	if dir == down {
		pl = placeChild(from, local, exons, unit)
	} else {
		pl = unspliceThenRecompose(from, local, exons, unit)
	}
	if !pl.status.Mapped() || len(pl.segs) == 0 {
		b.skip(key, from.Key, pl.status, "alignment does not map onto the root")
		return nil
	}

	n := newNode(key, pl.segs, pl.unspliced, pl.strand, unit, b.rootUnit)
	n.ParentKey = from.Key
	n.parent = from
	n.Offset = start
	n.Kind = local.kind
	n.UnsplicedLength = d.childLen
	if dir == up {
		n.UnsplicedLength = d.hi
	}
	n.Length = n.UnsplicedLength
	if len(exons) > 0 {
		n.Length = splicedLength(exons)
	}
	n.Mismatches = mismatches(obj, b.schema, n.UnsplicedLength)
	if rows := declaring.RowsFor(b.schema.AlignID, d.child); len(rows) > 0 {
		n.AlignID, _ = rows[0].String(1)
	}

	b.ctx.nodes[key] = n
	from.Children = append(from.Children, n)
	b.expand(n, dir == down)
	return n
}

// skip records an object left out of the map.
func (b *builder) skip(key, from store.Key, status Status, reason string) {
	s := Skip{Key: key, From: from, Status: status, Reason: reason}
	b.ctx.Skipped = append(b.ctx.Skipped, s)
	if b.verbose {
		stderr.Printf("smap: skipping %s", s)
	}
}

// unitOf is the bases per coordinate of an object.
func unitOf(obj *store.Object, schema *store.Schema) int {
	if obj.Has(schema.Peptide) {
		return peptideUnit
	}
	return dnaUnit
}

// unsplicedLength is an object's own length: its DNA, its peptide length, or
// the furthest coordinate its children and exons reach.
func unsplicedLength(st store.Store, schema *store.Schema, obj *store.Object) int {
	for _, r := range obj.Rows(schema.DNA) {
		if n, ok := r.Int(1); ok && n > 0 {
			return n
		}
		if name, ok := r.String(0); ok {
			if dna, ok := st.DNA(name); ok {
				return len(dna)
			}
		}
	}
	for _, r := range obj.Rows(schema.Peptide) {
		if n, ok := r.Int(0); ok && n > 0 {
			return n
		}
	}

	length := 0
	for _, r := range obj.Rows(schema.SChild) {
		start, _ := r.Int(1)
		end, _ := r.Int(2)
		length = max(length, max(start, end))
	}
	for _, r := range obj.Rows(schema.SourceExons) {
		end, _ := r.Int(1)
		length = max(length, end)
	}
	return length
}

// mismatches reads the Mismatch rows. A bare tag covers the whole object.
func mismatches(obj *store.Object, schema *store.Schema, length int) []MismatchRegion {
	if !obj.Has(schema.Mismatch) {
		return nil
	}

	rows := obj.Rows(schema.Mismatch)
	if len(rows) == 0 {
		return []MismatchRegion{{Start: 1, End: length}}
	}

	var regions []MismatchRegion
	for _, r := range rows {
		start, ok1 := r.Int(0)
		end, ok2 := r.Int(1)
		switch {
		case !ok1:
			regions = append(regions, MismatchRegion{Start: 1, End: length})
		case !ok2:
			regions = append(regions, MismatchRegion{Start: start, End: start})
		default:
			regions = append(regions, MismatchRegion{Start: min(start, end), End: max(start, end)})
		}
	}
	return regions
}

// FindRoot follows S_Parent from key to the top of its tree.
func FindRoot(st store.Store, schema *store.Schema, key store.Key) store.Key {
	if schema == nil {
		schema = store.DefaultSchema()
	}

	seen := map[store.Key]bool{key: true}
	for {
		obj, ok := st.Object(key)
		if !ok {
			return key
		}

		next := store.Key("")
		for _, r := range obj.Rows(schema.SParent) {
			if k, ok := r.Key(0); ok {
				next = k
				break
			}
		}
		if next == "" || seen[next] {
			return key
		}
		if _, ok := st.Object(next); !ok {
			return key
		}
		seen[next] = true
		key = next
	}
}

// ObjectLength is the length of an object as it would be placed in a map:
// spliced when it has exons, otherwise its own length, falling back on the
// span its parent declares for it.
func ObjectLength(st store.Store, schema *store.Schema, key store.Key) (int, error) {
	if schema == nil {
		schema = store.DefaultSchema()
	}

	obj, ok := st.Object(key)
	if !ok {
		return 0, fmt.Errorf("%s: %w", key, store.ErrUnknownObject)
	}

	exons, status := exonMap(obj, schema)
	if status == Error {
		return 0, fmt.Errorf("%s has malformed %s", key, schema.SourceExons)
	}
	if len(exons) > 0 {
		return splicedLength(exons), nil
	}

	if n := unsplicedLength(st, schema, obj); n > 0 {
		return n, nil
	}
	return declaredSpan(st, schema, obj), nil
}

// declaredSpan is the length an object's parent declares for it, counted in
// the object's own coordinates.
func declaredSpan(st store.Store, schema *store.Schema, obj *store.Object) int {
	for _, r := range obj.Rows(schema.SParent) {
		parent, ok := r.Key(0)
		if !ok {
			continue
		}
		pObj, ok := st.Object(parent)
		if !ok {
			continue
		}
		for _, row := range pObj.RowsFor(schema.SChild, obj.Key) {
			start, ok1 := row.Int(1)
			end, ok2 := row.Int(2)
			if ok1 && ok2 {
				pu, cu := unitOf(pObj, schema), unitOf(obj, schema)
				return (abs(end-start) + 1) * pu / cu
			}
		}
	}
	return 0
}
