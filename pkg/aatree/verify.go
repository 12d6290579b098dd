package aatree

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Tree.Verify].
var (
	// ErrLevels is returned when a node violates the AA level rules.
	ErrLevels = errors.New("aatree: level invariant violated")

	// ErrOrder is returned when keys are not in search-tree order.
	ErrOrder = errors.New("aatree: order invariant violated")

	// ErrSize is returned when Count disagrees with the number of reachable nodes.
	ErrSize = errors.New("aatree: size mismatch")
)

// VerifyLevels reports whether every node satisfies the AA-tree level rules:
//   - leaves have level 1
//   - a left child is exactly one level below its parent
//   - a right child is on its parent's level or one below
//   - a right grandchild is strictly below its grandparent
//   - nodes above level 1 have two children
func (t *Tree[T]) VerifyLevels() bool {
	return verifyLevels(t.root)
}

func verifyLevels[T any](n *Node[T]) bool {
	if n == nil {
		return true
	}
	if n.left == nil && n.right == nil && n.level != 1 {
		return false
	}
	if level(n.left) != n.level-1 {
		return false
	}
	if rl := level(n.right); rl != n.level && rl != n.level-1 {
		return false
	}
	if n.right != nil && level(n.right.right) >= n.level {
		return false
	}
	if n.level > 1 && (n.left == nil || n.right == nil) {
		return false
	}
	return verifyLevels(n.left) && verifyLevels(n.right)
}

// VerifyBST reports whether every key lies within [min, max] and every subtree
// lies within the bounds set by its ancestors, under every comparison purpose.
func (t *Tree[T]) VerifyBST(min, max T) bool {
	for _, p := range purposes {
		if !t.verifyBST(t.root, min, max, p) {
			return false
		}
	}
	return true
}

func (t *Tree[T]) verifyBST(n *Node[T], min, max T, p Purpose) bool {
	if n == nil {
		return true
	}
	if t.compare(min, n.data, p) > 0 || t.compare(max, n.data, p) < 0 {
		return false
	}
	return t.verifyBST(n.left, min, n.data, p) && t.verifyBST(n.right, n.data, max, p)
}

// VerifyOrder reports whether every node is ordered after its left child and
// before its right child, under every comparison purpose. Keys that compare
// equal may sit on either side after rotations.
func (t *Tree[T]) VerifyOrder() bool {
	for _, p := range purposes {
		if !t.verifyOrder(t.root, p) {
			return false
		}
	}
	return true
}

func (t *Tree[T]) verifyOrder(n *Node[T], p Purpose) bool {
	if n == nil {
		return true
	}
	if n.left != nil && t.compare(n.data, n.left.data, p) < 0 {
		return false
	}
	if n.right != nil && t.compare(n.data, n.right.data, p) > 0 {
		return false
	}
	return t.verifyOrder(n.left, p) && t.verifyOrder(n.right, p)
}

// ComputeSize counts the nodes of the subtree rooted at n.
func (t *Tree[T]) ComputeSize(n *Node[T]) int {
	if n == nil {
		return 0
	}
	return 1 + t.ComputeSize(n.left) + t.ComputeSize(n.right)
}

// Verify checks levels, in-order key order and size. It returns nil for a
// well-formed tree.
func (t *Tree[T]) Verify() error {
	if !t.VerifyLevels() {
		return ErrLevels
	}
	if !t.VerifyOrder() {
		return ErrOrder
	}
	var (
		prev    T
		started bool
		bad     bool
	)
	t.Ascend(func(v T) bool {
		if started && t.compare(prev, v, PurposeFind) > 0 {
			bad = true
			return false
		}
		prev, started = v, true
		return true
	})
	if bad {
		return ErrOrder
	}
	if got := t.ComputeSize(t.root); got != t.count {
		return fmt.Errorf("%w: count %d, reachable %d", ErrSize, t.count, got)
	}
	return nil
}
