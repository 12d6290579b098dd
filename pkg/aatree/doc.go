// Package aatree provides a generic AA-tree, a self-balancing binary search tree
// used as the ordered container behind sweep-line event queues and status structures.
//
// # Overview
//
// An AA-tree is a red-black tree variant that stores an integer level per node
// instead of a color. Balance is restored after every mutation with two local
// rotations:
//
//   - Skew: a right rotation applied when a left child has the same level as its parent
//   - Split: a left rotation applied when a right grandchild has the same level as its
//     grandparent; the promoted node gains one level
//
// Empty subtrees are nil children and have level 0. Real nodes have level 1 or more.
//
// # Comparison Purposes
//
// Keys are ordered by a [Comparator] that is told why it is being called:
// [PurposeInsert], [PurposeDelete] or [PurposeFind]. Most callers ignore the purpose
// and use [NewFunc] or [NewOrdered]. Callers whose ordering depends on external state,
// such as a sweep-line status structure that orders segments by their position along
// the current sweep line, can order keys differently while inserting, deleting or
// searching.
//
// A comparator returning 0 defines equality for [Tree.Delete], [Tree.Contains] and
// [Tree.FindNodes].
//
// # Basic Usage
//
//	t := aatree.NewOrdered[int]()
//	t.Insert(5)
//	t.Insert(1)
//	t.Insert(9)
//
//	min, _ := t.FindMin()            // 1
//	next, ok := t.FindNextBiggest(5) // 9, true
//	t.Delete(5)
//
// # Duplicates
//
// Duplicate keys are permitted. Insert sends keys that compare equal to the left.
// Delete removes one matching key per call.
//
// # Verification
//
// [Tree.VerifyLevels], [Tree.VerifyBST], [Tree.VerifyOrder] and [Tree.ComputeSize]
// check the structural invariants independently of the mutation code. They are
// intended for tests and debug assertions. [Tree.Verify] runs all of them and
// returns a descriptive error.
//
// # Concurrency
//
// A Tree is not safe for concurrent use. Concurrent read-only calls (Find*, Contains,
// Ascend, Verify*) are safe as long as no goroutine mutates the tree.
package aatree
