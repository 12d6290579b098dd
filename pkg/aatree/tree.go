package aatree

import (
	"golang.org/x/exp/constraints"
)

// Purpose tells a [Comparator] which tree operation is comparing keys.
type Purpose int

const (
	PurposeInsert Purpose = iota
	PurposeDelete
	PurposeFind
)

var purposes = [...]Purpose{PurposeInsert, PurposeDelete, PurposeFind}

func (p Purpose) String() string {
	switch p {
	case PurposeInsert:
		return "insert"
	case PurposeDelete:
		return "delete"
	case PurposeFind:
		return "find"
	default:
		return "unknown"
	}
}

// Comparator orders keys. Compare returns a negative number when a sorts before b,
// zero when they are equal and a positive number otherwise.
type Comparator[T any] interface {
	Compare(a, b T, p Purpose) int
}

// CompareFunc adapts a purpose-independent comparison function to [Comparator].
type CompareFunc[T any] func(a, b T) int

// Compare calls f(a, b).
func (f CompareFunc[T]) Compare(a, b T, _ Purpose) int { return f(a, b) }

// Node is a tree node. Its fields are managed by the owning [Tree].
type Node[T any] struct {
	data        T
	level       int
	left, right *Node[T]
}

// Data returns the key stored in n.
func (n *Node[T]) Data() T { return n.data }

// Level returns the AA level of n, or 0 for a nil node.
func (n *Node[T]) Level() int { return level(n) }

// Left returns the left child, or nil.
func (n *Node[T]) Left() *Node[T] { return n.left }

// Right returns the right child, or nil.
func (n *Node[T]) Right() *Node[T] { return n.right }

func level[T any](n *Node[T]) int {
	if n == nil {
		return 0
	}
	return n.level
}

// Tree is an AA-tree. The zero value is not usable; create trees with [New],
// [NewFunc] or [NewOrdered].
type Tree[T any] struct {
	root  *Node[T]
	count int
	cmp   Comparator[T]
}

// New creates an empty tree ordered by cmp.
func New[T any](cmp Comparator[T]) *Tree[T] {
	return &Tree[T]{cmp: cmp}
}

// NewFunc creates an empty tree ordered by a purpose-independent function.
func NewFunc[T any](cmp func(a, b T) int) *Tree[T] {
	return New[T](CompareFunc[T](cmp))
}

// NewOrdered creates an empty tree using the natural order of T.
func NewOrdered[T constraints.Ordered]() *Tree[T] {
	return NewFunc(func(a, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
}

// Count returns the number of keys in the tree.
func (t *Tree[T]) Count() int { return t.count }

// Root returns the root node, or nil when the tree is empty.
func (t *Tree[T]) Root() *Node[T] { return t.root }

// Clear removes all keys.
func (t *Tree[T]) Clear() {
	t.root = nil
	t.count = 0
}

func (t *Tree[T]) compare(a, b T, p Purpose) int {
	return t.cmp.Compare(a, b, p)
}

// =============================================================================
// Rotations
// =============================================================================

// skew rotates right when the left child is on the same level as n.
func skew[T any](n *Node[T]) *Node[T] {
	if n == nil || n.left == nil || n.left.level != n.level {
		return n
	}
	l := n.left
	n.left = l.right
	l.right = n
	return l
}

// split rotates left and promotes the right child when the right grandchild is
// on the same level as n.
func split[T any](n *Node[T]) *Node[T] {
	if n == nil || n.right == nil || n.right.right == nil || n.right.right.level != n.level {
		return n
	}
	r := n.right
	n.right = r.left
	r.left = n
	r.level++
	return r
}

// =============================================================================
// Traversal History
// =============================================================================

type side int

const (
	sideRoot side = iota
	sideLeft
	sideRight
)

// step records one node visited on the way down together with the link that
// leads to it, so rotations can reattach subtrees while unwinding.
type step[T any] struct {
	node   *Node[T]
	parent *Node[T]
	side   side
}

func (t *Tree[T]) attach(s step[T], n *Node[T]) {
	switch s.side {
	case sideLeft:
		s.parent.left = n
	case sideRight:
		s.parent.right = n
	default:
		t.root = n
	}
}

// pathCap estimates the depth of the tree: AA-trees are at most 2*log2(n+1) deep.
func (t *Tree[T]) pathCap() int {
	d := 2
	for n := t.count + 1; n > 0; n >>= 1 {
		d += 2
	}
	return d
}

// =============================================================================
// Insert
// =============================================================================

// Insert adds data to the tree and reports whether a node was created.
// Keys that compare equal to an existing key are stored to its left.
func (t *Tree[T]) Insert(data T) bool {
	if t.root == nil {
		t.root = t.newNode(data)
		return true
	}

	path := make([]step[T], 0, t.pathCap())
	path = append(path, step[T]{node: t.root, side: sideRoot})

	cur := t.root
	var parent *Node[T]
	goLeft := true
	for cur != nil {
		parent = cur
		goLeft = t.compare(data, cur.data, PurposeInsert) <= 0
		if goLeft {
			cur = cur.left
			if cur != nil {
				path = append(path, step[T]{node: cur, parent: parent, side: sideLeft})
			}
		} else {
			cur = cur.right
			if cur != nil {
				path = append(path, step[T]{node: cur, parent: parent, side: sideRight})
			}
		}
	}

	if goLeft {
		parent.left = t.newNode(data)
	} else {
		parent.right = t.newNode(data)
	}

	for i := len(path) - 1; i >= 0; i-- {
		s := path[i]
		n := skew(s.node)
		n = split(n)
		t.attach(s, n)
	}
	return true
}

func (t *Tree[T]) newNode(data T) *Node[T] {
	t.count++
	return &Node[T]{data: data, level: 1}
}

// =============================================================================
// Delete
// =============================================================================

// Delete removes one key equal to data and reports whether a key was removed.
//
// The matched node keeps its position: it receives the key of the in-order
// successor found at the bottom of the search path, and the successor's node is
// unlinked instead. Levels are then repaired along the recorded path.
func (t *Tree[T]) Delete(data T) bool {
	if t.root == nil {
		return false
	}

	path := make([]step[T], 0, t.pathCap())
	path = append(path, step[T]{node: t.root, side: sideRoot})

	var deleted *Node[T]
	cur := t.root
	for {
		var next *Node[T]
		sd := sideLeft
		if t.compare(data, cur.data, PurposeDelete) < 0 {
			next = cur.left
		} else {
			deleted = cur
			next = cur.right
			sd = sideRight
		}
		if next == nil {
			break
		}
		path = append(path, step[T]{node: next, parent: cur, side: sd})
		cur = next
	}

	removed := false
	if deleted != nil && t.compare(data, deleted.data, PurposeDelete) == 0 {
		last := path[len(path)-1]
		path = path[:len(path)-1]

		deleted.data = last.node.data
		if c := last.node.right; c != nil {
			last.node.data = c.data
			last.node.left = c.left
			last.node.right = c.right
			last.node.level = c.level
		} else {
			t.attach(last, nil)
		}
		t.count--
		removed = true
	}

	for i := len(path) - 1; i >= 0; i-- {
		s := path[i]
		n := s.node
		if level(n.left) >= n.level-1 && level(n.right) >= n.level-1 {
			continue
		}
		n.level--
		if n.right != nil && n.right.level > n.level {
			n.right.level = n.level
		}
		n = skew(n)
		n.right = skew(n.right)
		if n.right != nil {
			n.right.right = skew(n.right.right)
		}
		n = split(n)
		n.right = split(n.right)
		t.attach(s, n)
	}
	return removed
}

// DeleteMin removes and returns the smallest key.
func (t *Tree[T]) DeleteMin() (T, bool) {
	min, ok := t.FindMin()
	if ok {
		t.Delete(min)
	}
	return min, ok
}

// DeleteMax removes and returns the largest key.
func (t *Tree[T]) DeleteMax() (T, bool) {
	max, ok := t.FindMax()
	if ok {
		t.Delete(max)
	}
	return max, ok
}

// =============================================================================
// Queries
// =============================================================================

// FindMin returns the smallest key.
func (t *Tree[T]) FindMin() (T, bool) {
	var zero T
	n := t.root
	if n == nil {
		return zero, false
	}
	for n.left != nil {
		n = n.left
	}
	return n.data, true
}

// FindMax returns the largest key.
func (t *Tree[T]) FindMax() (T, bool) {
	var zero T
	n := t.root
	if n == nil {
		return zero, false
	}
	for n.right != nil {
		n = n.right
	}
	return n.data, true
}

// FindNextBiggest returns the smallest key strictly greater than data.
// data does not need to be stored in the tree.
func (t *Tree[T]) FindNextBiggest(data T) (T, bool) {
	var (
		cand T
		ok   bool
	)
	for n := t.root; n != nil; {
		if t.compare(data, n.data, PurposeFind) < 0 {
			cand, ok = n.data, true
			n = n.left
		} else {
			n = n.right
		}
	}
	return cand, ok
}

// FindNextSmallest returns the largest key strictly smaller than data.
// data does not need to be stored in the tree.
func (t *Tree[T]) FindNextSmallest(data T) (T, bool) {
	var (
		cand T
		ok   bool
	)
	for n := t.root; n != nil; {
		if t.compare(data, n.data, PurposeFind) > 0 {
			cand, ok = n.data, true
			n = n.right
		} else {
			n = n.left
		}
	}
	return cand, ok
}

// Contains reports whether a key equal to data is stored.
func (t *Tree[T]) Contains(data T) bool {
	for n := t.root; n != nil; {
		c := t.compare(data, n.data, PurposeFind)
		switch {
		case c == 0:
			return true
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return false
}

// FindNodes returns every stored key equal to data, in no particular order.
func (t *Tree[T]) FindNodes(data T) []T {
	var out []T
	t.findNodes(t.root, data, &out)
	return out
}

func (t *Tree[T]) findNodes(n *Node[T], data T, out *[]T) {
	if n == nil {
		return
	}
	c := t.compare(data, n.data, PurposeFind)
	switch {
	case c == 0:
		*out = append(*out, n.data)
		t.findNodes(n.left, data, out)
		t.findNodes(n.right, data, out)
	case c < 0:
		t.findNodes(n.left, data, out)
	default:
		t.findNodes(n.right, data, out)
	}
}

// Ascend calls fn for every key in ascending order until fn returns false.
func (t *Tree[T]) Ascend(fn func(T) bool) {
	ascend(t.root, fn)
}

func ascend[T any](n *Node[T], fn func(T) bool) bool {
	if n == nil {
		return true
	}
	return ascend(n.left, fn) && fn(n.data) && ascend(n.right, fn)
}

// Values returns all keys in ascending order.
func (t *Tree[T]) Values() []T {
	out := make([]T, 0, t.count)
	t.Ascend(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}
