// Package tree is a worked example of traversal code written once against
// the database capability: a binary tree whose subtrees sit behind
// authenticated references, with a generic build routine and a path lookup
// that behave identically on the owning and replay sides of a session.
package tree

import "github.com/authds/authds/shared"

// Direction selects a child when walking down a tree.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Tree is a binary tree. A node is either a leaf holding a value or a
// branch holding two authenticated references to its subtrees; raw subtrees
// are never embedded.
type Tree[A any] struct {
	Leaf  *A                     `json:"leaf,omitempty"`
	Left  *shared.Proof[Tree[A]] `json:"left,omitempty"`
	Right *shared.Proof[Tree[A]] `json:"right,omitempty"`
}

// IsLeaf reports whether the node holds a value rather than children.
func (t *Tree[A]) IsLeaf() bool { return t.Leaf != nil }

// NewLeaf builds a leaf node.
func NewLeaf[A any](value A) *Tree[A] {
	return &Tree[A]{Leaf: &value}
}

// NewBranch authenticates the freshly built subtrees and assembles their
// parent. On the replay side the references carry commitments only.
func NewBranch[A any](db shared.Database, left, right *Tree[A]) (*Tree[A], error) {
	lp, err := shared.Auth(db, *left)
	if err != nil {
		return nil, err
	}
	rp, err := shared.Auth(db, *right)
	if err != nil {
		return nil, err
	}
	return &Tree[A]{Left: &lp, Right: &rp}, nil
}

// Lookup walks path from root, opening one authenticated reference per
// step. It returns the value at the path's end; ok is false when a leaf is
// reached before the path is exhausted or when the path ends on a branch.
func Lookup[A any](db shared.Database, root *Tree[A], path []Direction) (A, bool, error) {
	var zero A
	node := *root
	for _, d := range path {
		if node.IsLeaf() {
			return zero, false, nil
		}
		ref := node.Left
		if d == Right {
			ref = node.Right
		}
		next, err := shared.Unauth(db, *ref)
		if err != nil {
			return zero, false, err
		}
		node = next
	}
	if !node.IsLeaf() {
		return zero, false, nil
	}
	return *node.Leaf, true, nil
}
