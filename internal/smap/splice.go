package smap

import (
	"sort"

	"github.com/jjtimmons/smap/internal/store"
)

// exonMap reads an object's Source_exons as a local map from spliced
// coordinates (Self) onto the object's unspliced coordinates (Ref).
func exonMap(obj *store.Object, schema *store.Schema) ([]Segment, Status) {
	rows := obj.Rows(schema.SourceExons)
	if len(rows) == 0 {
		return nil, NoData
	}

	exons := make([]Segment, 0, len(rows))
	for _, r := range rows {
		start, ok1 := r.Int(0)
		end, ok2 := r.Int(1)
		if !ok1 || !ok2 || start < 1 || end < start {
			return nil, Error
		}
		exons = append(exons, Segment{RefStart: start, RefEnd: end})
	}
	sort.Slice(exons, func(i, j int) bool { return exons[i].RefStart < exons[j].RefStart })

	v := 1
	for i := range exons {
		if i > 0 && exons[i].RefStart <= exons[i-1].RefEnd {
			return nil, Error
		}
		exons[i].SelfStart = v
		exons[i].SelfEnd = v + exons[i].RefEnd - exons[i].RefStart
		v = exons[i].SelfEnd + 1
	}
	return exons, PerfectMap
}

// splicedLength is the total length of the exons.
func splicedLength(exons []Segment) int {
	if len(exons) == 0 {
		return 0
	}
	return exons[len(exons)-1].SelfEnd
}

// splice applies exons to an unspliced map, giving the spliced map.
func splice(unspliced *mapping, exons []Segment) ([]Segment, Status) {
	return compose(localMap{segs: exons, kind: DnaToDna, strand: Forward}, unspliced)
}

// placement is a new node's maps and orientation.
type placement struct {
	segs, unspliced []Segment
	strand          Strand
	status          Status
}

// placeChild composes a child's local alignment through its parent's
// unspliced map, then applies the child's own exons.
func placeChild(parent *Node, local localMap, exons []Segment, unit int) placement {
	unspliced, status := compose(local, parent.unspliced)
	if !status.Mapped() {
		return placement{status: status}
	}

	pl := placement{segs: unspliced, unspliced: unspliced, strand: local.strand.Join(parent.Strand), status: status}
	return pl.resplice(exons, unit, parent.rootUnit)
}

// unspliceThenRecompose places a parent reached from its child. The child's
// local alignment inside the parent is inverted and composed through the
// child's unspliced map, which removes the child's splicing. The parent's
// own exons are then applied to the result.
func unspliceThenRecompose(child *Node, local localMap, exons []Segment, unit int) placement {
	inv := local.invert()
	unspliced, status := compose(inv, child.unspliced)
	if !status.Mapped() {
		return placement{status: status}
	}

	pl := placement{segs: unspliced, unspliced: unspliced, strand: inv.strand.Join(child.Strand), status: status}
	return pl.resplice(exons, unit, child.rootUnit)
}

// resplice replaces segs with the spliced map when there are exons.
func (pl placement) resplice(exons []Segment, unit, rootUnit int) placement {
	if len(exons) == 0 {
		return pl
	}

	spliced, status := splice(newMapping(pl.unspliced, pl.strand, unit, rootUnit), exons)
	if !status.Mapped() {
		pl.status |= status
		pl.segs = nil
		return pl
	}
	pl.segs = spliced
	pl.status |= status &^ Clip
	return pl
}
