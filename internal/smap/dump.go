package smap

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/jjtimmons/smap/internal/store"
)

// DumpOptions pick the sections of a Dump.
type DumpOptions struct {
	// Segments lists each node's map onto the root
	Segments bool

	// Mismatches lists each node's mismatch regions
	Mismatches bool

	// Raw appends every node's fields in full
	Raw bool
}

// rawNode is a Node without its links, for spew.
type rawNode struct {
	Key, ParentKey          store.Key
	Length, UnsplicedLength int
	Strand, Kind            string
	Offset                  int
	AlignID                 string
	Segments, Unspliced     []Segment
	Mismatches              []MismatchRegion
}

var rawConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Dump writes the tree of the Context, one node per line indented under its
// parent, followed by the objects that were left out.
func (c *Context) Dump(w io.Writer, opts DumpOptions) error {
	c.live()

	p := &printer{w: w}
	a1, a2 := c.Area()
	p.printf("smap of %s, 1..%d (%s), area %d..%d, %d objects\n",
		c.root.Key, c.length, c.root.Strand, a1, a2, len(c.nodes))

	var dumpNode func(n *Node, depth int)
	dumpNode = func(n *Node, depth int) {
		indent := strings.Repeat("  ", depth)
		p.printf("%s%s %s length %d", indent, n.Key, n.Strand, n.Length)
		if n.Length != n.UnsplicedLength {
			p.printf(" unspliced %d", n.UnsplicedLength)
		}
		if n.parent != nil {
			p.printf(" at %d in %s, %s", n.Offset, n.ParentKey, n.Kind)
		}
		if n.AlignID != "" {
			p.printf(" [%s]", n.AlignID)
		}
		p.printf("\n")

		if opts.Segments {
			p.printf("%s  segments %s\n", indent, segmentList(n.Segments))
			if len(n.Segments) != len(n.Unspliced) || n.Length != n.UnsplicedLength {
				p.printf("%s  unspliced %s\n", indent, segmentList(n.Unspliced))
			}
		}
		if opts.Mismatches && len(n.Mismatches) > 0 {
			regions := make([]string, len(n.Mismatches))
			for i, m := range n.Mismatches {
				regions[i] = fmt.Sprintf("%d..%d", m.Start, m.End)
			}
			p.printf("%s  mismatches %s\n", indent, strings.Join(regions, " "))
		}

		for _, child := range n.Children {
			dumpNode(child, depth+1)
		}
	}
	dumpNode(c.root, 0)

	if len(c.Skipped) > 0 {
		p.printf("skipped:\n")
		for _, s := range c.Skipped {
			p.printf("  %s\n", s)
		}
	}

	if opts.Raw {
		c.root.walk(func(n *Node) bool {
			rawConfig.Fdump(w, rawNode{
				Key:             n.Key,
				ParentKey:       n.ParentKey,
				Length:          n.Length,
				UnsplicedLength: n.UnsplicedLength,
				Strand:          n.Strand.String(),
				Kind:            n.Kind.String(),
				Offset:          n.Offset,
				AlignID:         n.AlignID,
				Segments:        n.Segments,
				Unspliced:       n.Unspliced,
				Mismatches:      n.Mismatches,
			})
			return true
		})
	}
	return p.err
}

func segmentList(segs []Segment) string {
	s := make([]string, len(segs))
	for i, seg := range segs {
		s[i] = seg.String()
	}
	return strings.Join(s, " ")
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
