// Package quadtree implements a point-region quadtree with an integer
// bounding box, a handle-keyed auxiliary value store per node, and the
// pre-order/post-order traversals the force kernels in forcelayout use
// for Barnes-Hut accumulation. Coincident points at the same coordinate
// are kept in a singly-linked overflow list on the leaf rather than
// nested one level deeper, matching the reference quadtree this was
// translated from.
package quadtree

import (
	"math"

	"github.com/onnwee/forcelayout/internal/layouterr"
)

// Visit is the traversal decision a pre-order callback returns.
type Visit int

const (
	// Continue descends into the quad's children (a no-op on a leaf).
	Continue Visit = iota
	// Skip prunes the quad's subtree from the traversal.
	Skip
)

// Extent is an axis-aligned bounding box, [x0,y0) inclusive to [x1,y1)
// exclusive.
type Extent struct {
	X0, Y0, X1, Y1 float64
}

type kind uint8

const (
	leafKind kind = iota
	internalKind
)

type entry[T any] struct {
	value T
	next  *entry[T]
}

func (e *entry[T]) append(v T) {
	n := e
	for n.next != nil {
		n = n.next
	}
	n.next = &entry[T]{value: v}
}

func (e *entry[T]) values() []T {
	var out []T
	for n := e; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

type node[Q any, T any] struct {
	kind     kind
	x, y     float64
	data     *entry[T]
	children [4]*node[Q, T]
	handle   int
}

type store[Q any] struct {
	values []Q
}

func (s *store[Q]) insertZero() int {
	var zero Q
	s.values = append(s.values, zero)
	return len(s.values) - 1
}

func (s *store[Q]) get(h int) *Q {
	return &s.values[h]
}

// Quadtree is a generic point-region quadtree. Q is the per-node
// auxiliary aggregate (e.g. accumulated charge or radius); T is the
// per-point payload (e.g. a particle index).
type Quadtree[Q any, T any] struct {
	x0, y0, x1, y1 int64
	hasExtent      bool
	root           *node[Q, T]
	store          store[Q]
}

// New returns an empty quadtree.
func New[Q any, T any]() *Quadtree[Q, T] {
	return &Quadtree[Q, T]{}
}

// FromPoints builds a quadtree by inserting n points produced by at, in
// order 0..n-1.
func FromPoints[Q any, T any](n int, at func(i int) (x, y float64, value T)) *Quadtree[Q, T] {
	t := New[Q, T]()
	for i := 0; i < n; i++ {
		x, y, v := at(i)
		t.Insert(x, y, v)
	}
	return t
}

// Extent returns the integer bounding box currently covering the tree.
func (q *Quadtree[Q, T]) Extent() (min, max [2]int64) {
	return [2]int64{q.x0, q.y0}, [2]int64{q.x1, q.y1}
}

// Empty reports whether the tree holds no points.
func (q *Quadtree[Q, T]) Empty() bool {
	return q.root == nil
}

// Cover expands the tree's bounding box, if necessary, so that it
// contains (x, y). Existing nodes are preserved by wrapping the current
// root under new internal nodes; a leaf or empty root is left in place
// (only the bookkeeping box grows) since there is nothing to wrap.
func (q *Quadtree[Q, T]) Cover(x, y float64) {
	if math.IsNaN(x) {
		panic(layouterr.New(layouterr.ErrQuadtreeNaN, "encountered NaN value for x"))
	}
	if math.IsNaN(y) {
		panic(layouterr.New(layouterr.ErrQuadtreeNaN, "encountered NaN value for y"))
	}

	xi := int64(math.Floor(x))
	yi := int64(math.Floor(y))

	if !q.hasExtent {
		q.x0, q.y0 = xi, yi
		q.x1, q.y1 = xi+1, yi+1
		q.hasExtent = true
		return
	}

	x0, y0, x1, y1 := q.x0, q.y0, q.x1, q.y1
	z := x1 - x0
	if z <= 0 {
		z = 1
	}

	wrapRoot := q.root != nil && q.root.kind == internalKind
	var cur *node[Q, T]
	if wrapRoot {
		cur = q.root
	}

	for x0 > xi || xi >= x1 || y0 > yi || yi >= y1 {
		i := 0
		if yi < y0 {
			i = 2
		}
		if xi < x0 {
			i |= 1
		}
		parent := q.newEmptyInternal()
		parent.children[i] = cur
		cur = parent
		z *= 2
		switch i {
		case 0:
			x1 = x0 + z
			y1 = y0 + z
		case 1:
			x0 = x1 - z
			y1 = y0 + z
		case 2:
			x1 = x0 + z
			y0 = y1 - z
		case 3:
			x0 = x1 - z
			y0 = y1 - z
		}
	}

	if wrapRoot {
		q.root = cur
	}
	q.x0, q.y0, q.x1, q.y1 = x0, y0, x1, y1
}

func (q *Quadtree[Q, T]) newEmptyInternal() *node[Q, T] {
	return &node[Q, T]{kind: internalKind, handle: q.store.insertZero()}
}

func (q *Quadtree[Q, T]) newLeaf(x, y float64, value T) *node[Q, T] {
	return &node[Q, T]{
		kind:   leafKind,
		x:      x,
		y:      y,
		data:   &entry[T]{value: value},
		handle: q.store.insertZero(),
	}
}

// Insert adds a point with its payload to the tree, growing the
// bounding box with Cover as needed. Points landing on the exact same
// coordinate are appended to that leaf's overflow list rather than
// subdividing further.
func (q *Quadtree[Q, T]) Insert(x, y float64, value T) {
	q.Cover(x, y)

	if q.root == nil {
		q.root = q.newLeaf(x, y, value)
		return
	}

	ix := newIndexer(float64(q.x0), float64(q.y0), float64(q.x1), float64(q.y1))
	n := q.root

	for {
		switch n.kind {
		case internalKind:
			i := ix.getAndDescend(x, y)
			if n.children[i] != nil {
				n = n.children[i]
				continue
			}
			n.children[i] = q.newLeaf(x, y, value)
			return
		default: // leafKind
			if x == n.x && y == n.y {
				n.data.append(value)
				return
			}

			xp, yp := n.x, n.y
			oldData := n.data
			oldHandle := n.handle

			n.kind = internalKind
			n.x, n.y = 0, 0
			n.data = nil
			n.children = [4]*node[Q, T]{}
			n.handle = q.store.insertZero()

			cur := n
			for {
				j := ix.get(xp, yp)
				i := ix.getAndDescend(x, y)
				if i != j {
					cur.children[i] = q.newLeaf(x, y, value)
					cur.children[j] = &node[Q, T]{kind: leafKind, x: xp, y: yp, data: oldData, handle: oldHandle}
					return
				}
				child := q.newEmptyInternal()
				cur.children[i] = child
				cur = child
			}
		}
	}
}

// indexer tracks a shrinking extent while descending the tree, mapping
// a point to one of the four quadrants of the current extent.
type indexer struct {
	x0, y0, x1, y1 float64
	xm, ym         float64
}

func newIndexer(x0, y0, x1, y1 float64) indexer {
	return indexer{x0: x0, y0: y0, x1: x1, y1: y1, xm: (x0 + x1) / 2, ym: (y0 + y1) / 2}
}

func (ix indexer) get(x, y float64) int {
	i := 0
	if y >= ix.ym {
		i = 2
	}
	if x >= ix.xm {
		i |= 1
	}
	return i
}

func (ix *indexer) getAndDescend(x, y float64) int {
	right := x >= ix.xm
	if right {
		ix.x0 = ix.xm
	} else {
		ix.x1 = ix.xm
	}
	bottom := y >= ix.ym
	if bottom {
		ix.y0 = ix.ym
	} else {
		ix.y1 = ix.ym
	}
	ix.xm = (ix.x0 + ix.x1) / 2
	ix.ym = (ix.y0 + ix.y1) / 2
	i := 0
	if bottom {
		i = 2
	}
	if right {
		i |= 1
	}
	return i
}

// Quad is the read/write handle a traversal callback receives for one
// node: its extent, its auxiliary value, and (for leaves) its point and
// payload data.
type Quad[Q any, T any] struct {
	store  *store[Q]
	node   *node[Q, T]
	extent Extent
}

// Extent returns the quad's bounding box.
func (q Quad[Q, T]) Extent() Extent { return q.extent }

// Value returns a pointer to the quad's auxiliary aggregate, writable
// in place during accumulation.
func (q Quad[Q, T]) Value() *Q { return q.store.get(q.node.handle) }

// IsLeaf reports whether the quad is a leaf.
func (q Quad[Q, T]) IsLeaf() bool { return q.node.kind == leafKind }

// IsInternal reports whether the quad is an internal node.
func (q Quad[Q, T]) IsInternal() bool { return q.node.kind == internalKind }

// Leaf returns a leaf's point, its primary payload, and any additional
// payloads sharing the exact same coordinate. Calling this on an
// internal quad panics.
func (q Quad[Q, T]) Leaf() (x, y float64, data T, others []T) {
	if q.node.kind != leafKind {
		panic("quadtree: Leaf called on internal quad")
	}
	x, y = q.node.x, q.node.y
	data = q.node.data.value
	if q.node.data.next != nil {
		others = q.node.data.next.values()
	}
	return
}

// Children returns, per quadrant (0..3), a pointer to that child's
// auxiliary value, or nil if the quadrant is empty. Calling this on a
// leaf quad panics.
func (q Quad[Q, T]) Children() [4]*Q {
	if q.node.kind != internalKind {
		panic("quadtree: Children called on leaf quad")
	}
	var out [4]*Q
	for i, c := range q.node.children {
		if c != nil {
			out[i] = q.store.get(c.handle)
		}
	}
	return out
}

type frame[Q any, T any] struct {
	node   *node[Q, T]
	extent Extent
}

func childExtents(e Extent) (tl, tr, bl, br Extent) {
	xm := (e.X0 + e.X1) / 2
	ym := (e.Y0 + e.Y1) / 2
	tl = Extent{e.X0, e.Y0, xm, ym}
	tr = Extent{xm, e.Y0, e.X1, ym}
	bl = Extent{e.X0, ym, xm, e.Y1}
	br = Extent{xm, ym, e.X1, e.Y1}
	return
}

// Visit walks the tree pre-order, calling cb on each quad. Quadrant 0
// is visited before 1, 2, 3 within a node; returning Skip from cb
// prunes that quad's subtree.
func (q *Quadtree[Q, T]) Visit(cb func(Quad[Q, T]) Visit) {
	if q.root == nil {
		return
	}
	root := Extent{float64(q.x0), float64(q.y0), float64(q.x1), float64(q.y1)}
	stack := []frame[Q, T]{{q.root, root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		quad := Quad[Q, T]{store: &q.store, node: f.node, extent: f.extent}
		if cb(quad) == Continue && f.node.kind == internalKind {
			tl, tr, bl, br := childExtents(f.extent)
			if c := f.node.children[3]; c != nil {
				stack = append(stack, frame[Q, T]{c, br})
			}
			if c := f.node.children[2]; c != nil {
				stack = append(stack, frame[Q, T]{c, bl})
			}
			if c := f.node.children[1]; c != nil {
				stack = append(stack, frame[Q, T]{c, tr})
			}
			if c := f.node.children[0]; c != nil {
				stack = append(stack, frame[Q, T]{c, tl})
			}
		}
	}
}

// VisitAfter walks the tree post-order (children before parent,
// quadrant 0 before 1 before 2 before 3), calling cb on each quad.
// There is no skip: post-order aggregation always needs every node.
func (q *Quadtree[Q, T]) VisitAfter(cb func(Quad[Q, T])) {
	if q.root == nil {
		return
	}
	root := Extent{float64(q.x0), float64(q.y0), float64(q.x1), float64(q.y1)}
	stack := []frame[Q, T]{{q.root, root}}
	var order []frame[Q, T]

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node.kind == internalKind {
			tl, tr, bl, br := childExtents(f.extent)
			if c := f.node.children[0]; c != nil {
				stack = append(stack, frame[Q, T]{c, tl})
			}
			if c := f.node.children[1]; c != nil {
				stack = append(stack, frame[Q, T]{c, tr})
			}
			if c := f.node.children[2]; c != nil {
				stack = append(stack, frame[Q, T]{c, bl})
			}
			if c := f.node.children[3]; c != nil {
				stack = append(stack, frame[Q, T]{c, br})
			}
		}
		order = append(order, f)
	}

	for i := len(order) - 1; i >= 0; i-- {
		cb(Quad[Q, T]{store: &q.store, node: order[i].node, extent: order[i].extent})
	}
}
