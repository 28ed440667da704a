package smap

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/jjtimmons/smap/internal/store"
)

var (
	// ErrNotFound is returned for objects that are not in the Context
	ErrNotFound = errors.New("object is not in the smap")

	// ErrBadArgs is returned when a Context cannot be built from the arguments
	ErrBadArgs = errors.New("bad arguments")
)

// Context is the coordinate map built around one root object. It owns every
// Node reachable from the root and is read-only once built.
type Context struct {
	// Skipped are the objects left out because their alignments were unusable
	Skipped []Skip

	root   *Node
	st     store.Store
	schema *store.Schema

	// length of the root window, in root coordinates 1..length
	length int

	hasArea            bool
	areaStart, areaEnd int

	// nodes indexes the tree by object; it owns nothing
	nodes map[store.Key]*Node
	last  atomic.Pointer[Node]

	released bool
}

// Skip records an object that was discovered but not placed.
type Skip struct {
	Key    store.Key
	From   store.Key
	Status Status
	Reason string
}

func (s Skip) String() string {
	return fmt.Sprintf("%s (from %s): %s, %s", s.Key, s.From, s.Status, s.Reason)
}

func (c *Context) live() {
	if c == nil || c.released {
		panic("smap: use of a released Context")
	}
}

// Root is the node the Context was built around.
func (c *Context) Root() *Node {
	c.live()
	return c.root
}

// Length is the size of the root window.
func (c *Context) Length() int {
	c.live()
	return c.length
}

// Area is the display window in root coordinates. Without one it is the whole map.
func (c *Context) Area() (start, end int) {
	c.live()
	if !c.hasArea {
		return 1, c.length
	}
	return c.areaStart, c.areaEnd
}

// Node returns the node placed for key.
func (c *Context) Node(key store.Key) (*Node, bool) {
	c.live()
	if n := c.last.Load(); n != nil && n.Key == key {
		return n, true
	}
	n, ok := c.nodes[key]
	if ok {
		c.last.Store(n)
	}
	return n, ok
}

// Objects returns the key of every object in the Context, sorted.
func (c *Context) Objects() []store.Key {
	c.live()
	keys := make([]store.Key, 0, len(c.nodes))
	for k := range c.nodes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Release drops the whole tree. The Context cannot be used afterwards.
func (c *Context) Release() {
	c.live()
	c.root = nil
	c.nodes = nil
	c.last.Store(nil)
	c.Skipped = nil
	c.released = true
}

// MapInterval maps [x1, x2] of the object onto the root. A zero coordinate
// stands for the object's own extent: x1 becomes 1 and x2 its length.
func (c *Context) MapInterval(key store.Key, x1, x2 int) (Result, error) {
	n, ok := c.Node(key)
	if !ok {
		return Result{X1: x1, X2: x2, Status: BadArgs}, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return c.mapNode(n, x1, x2), nil
}

// MapIntervalInverse maps [x1, x2] of the root onto the object.
func (c *Context) MapIntervalInverse(key store.Key, x1, x2 int) (Result, error) {
	n, ok := c.Node(key)
	if !ok {
		return Result{X1: x1, X2: x2, Status: BadArgs}, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if x1 < 0 || x2 < 0 {
		return Result{X1: x1, X2: x2, Status: BadArgs}, nil
	}
	x1, x2 = wholeExtent(x1, x2, c.length)
	return n.inverseMap().mapInterval(x1, x2), nil
}

// IsReverseOnPath reports whether [x1, x2] of the object runs backwards on the root.
func (c *Context) IsReverseOnPath(key store.Key, x1, x2 int) (bool, error) {
	n, ok := c.Node(key)
	if !ok {
		return false, fmt.Errorf("%s: %w", key, ErrNotFound)
	}

	r := c.mapNode(n, x1, x2)
	if !r.Status.Mapped() {
		return false, nil
	}
	if r.X1 == r.X2 || r.Y1 == r.Y2 {
		return n.Strand == Reverse, nil
	}
	return (r.X2 > r.X1) != (r.Y2 > r.Y1), nil
}

func (c *Context) mapNode(n *Node, x1, x2 int) Result {
	c.live()
	if x1 < 0 || x2 < 0 {
		return Result{X1: x1, X2: x2, Status: BadArgs}
	}

	x1, x2 = wholeExtent(x1, x2, n.Length)
	r := n.fwd.mapInterval(x1, x2)
	if r.Status.Mapped() && c.outsideArea(r.Y1, r.Y2) {
		r.Status |= OutsideArea
	}
	return r
}

// outsideArea reports whether [y1, y2] misses the display window entirely.
func (c *Context) outsideArea(y1, y2 int) bool {
	if !c.hasArea {
		return false
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return y2 < c.areaStart || y1 > c.areaEnd
}

// wholeExtent substitutes zero coordinates with the ends of 1..length.
func wholeExtent(x1, x2, length int) (int, int) {
	if x1 == 0 {
		x1 = 1
	}
	if x2 == 0 {
		x2 = length
	}
	return x1, x2
}
