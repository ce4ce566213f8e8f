// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/scenic-ui/scenic/math32"
)

// Trail is an ordered root-to-leaf path through the scene DAG. Because a
// node may have multiple parents, the node alone does not identify where
// on screen it appears; the trail does. Trails are value-semantic: the
// engine hands out fresh trails and never mutates one it has given away.
type Trail struct {
	nodes []*Node
}

// NewTrail returns a trail over a copy of the given root-to-leaf node list.
func NewTrail(nodes []*Node) *Trail {
	t := &Trail{nodes: slices.Clone(nodes)}
	t.Validate()
	return t
}

// Copy returns an independent copy of this trail.
func (t *Trail) Copy() *Trail {
	return &Trail{nodes: slices.Clone(t.nodesOrNil())}
}

// A nil *Trail is a valid empty trail for all read operations; pointers
// over nothing carry a nil trail.

// Len returns the number of nodes in the trail.
func (t *Trail) Len() int { return len(t.nodesOrNil()) }

// Node returns the i-th node from the root, or nil if out of range.
func (t *Trail) Node(i int) *Node {
	nodes := t.nodesOrNil()
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}

// Nodes returns a copy of the root-to-leaf node list.
func (t *Trail) Nodes() []*Node { return slices.Clone(t.nodesOrNil()) }

// Root returns the first node of the trail, or nil if empty.
func (t *Trail) Root() *Node { return t.Node(0) }

// Leaf returns the last node of the trail, or nil if empty.
func (t *Trail) Leaf() *Node { return t.Node(t.Len() - 1) }

// Extended returns a new trail with the given node appended as the leaf.
func (t *Trail) Extended(n *Node) *Trail {
	cur := t.nodesOrNil()
	nodes := make([]*Node, 0, len(cur)+1)
	nodes = append(nodes, cur...)
	nodes = append(nodes, n)
	return NewTrail(nodes)
}

// Sub returns a new trail over nodes [0, length) of this trail.
func (t *Trail) Sub(length int) *Trail {
	nodes := t.nodesOrNil()
	length = max(0, min(length, len(nodes)))
	return &Trail{nodes: slices.Clone(nodes[:length])}
}

// Equals reports whether the two trails contain the same nodes in the same
// order. A nil trail equals only a nil or empty trail.
func (t *Trail) Equals(other *Trail) bool {
	if t == nil || other == nil {
		return t.Len() == 0 && other.Len() == 0
	}
	return slices.Equal(t.nodes, other.nodes)
}

// Len on a nil trail is 0, so branch computations accept nil for "no trail".
func (t *Trail) nodesOrNil() []*Node {
	if t == nil {
		return nil
	}
	return t.nodes
}

// BranchIndex returns the length of the longest common root-anchored prefix
// of the two trails: the index of the first differing node. Either trail
// may be nil (treated as empty).
func (t *Trail) BranchIndex(other *Trail) int {
	a, b := t.nodesOrNil(), other.nodesOrNil()
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

// Matrix returns the composite local-to-global transform of the trail:
// the root's transform applied last, the leaf's first.
func (t *Trail) Matrix() math32.Matrix2 {
	m := math32.Identity2()
	for _, n := range t.nodesOrNil() {
		m = m.Mul(n.transform)
	}
	return m
}

// GlobalToLocal maps a global-coordinate point into the leaf node's local
// coordinate frame.
func (t *Trail) GlobalToLocal(p math32.Vector2) math32.Vector2 {
	return t.Matrix().Inverse().MulVector2AsPoint(p)
}

// InputEnabledLength returns the number of leading trail nodes up to and
// including the last node before the first input-disabled node. An
// input-disabled node cuts off itself and everything below it.
func (t *Trail) InputEnabledLength() int {
	for i, n := range t.nodesOrNil() {
		if !n.inputEnabled {
			return i
		}
	}
	return t.Len()
}

// InputEnabledSub returns the trail truncated at the first input-disabled
// node; used as the delivery trail for non-focus events.
func (t *Trail) InputEnabledSub() *Trail {
	return t.Sub(t.InputEnabledLength())
}

// ContainsDisposed reports whether any node of the trail has been disposed.
func (t *Trail) ContainsDisposed() bool {
	for _, n := range t.nodesOrNil() {
		if n.disposed {
			return true
		}
	}
	return false
}

// Validate checks (in debug builds) that consecutive trail nodes are
// connected parent-child edges and that no node is disposed.
func (t *Trail) Validate() {
	if !Debug {
		return
	}
	for i, n := range t.nodes {
		devAssert(n != nil, "Trail: nil node at index %d", i)
		devAssert(!n.disposed, "Trail: disposed node %d at index %d", idOf(n), i)
		if i > 0 {
			devAssert(slices.Contains(t.nodes[i-1].children, n),
				"Trail: node %d at index %d is not a child of %d", idOf(n), i, idOf(t.nodes[i-1]))
		}
	}
}

func (t *Trail) String() string {
	if t == nil {
		return "Trail(nil)"
	}
	ids := make([]string, len(t.nodes))
	for i, n := range t.nodes {
		ids[i] = fmt.Sprintf("%d", n.id)
	}
	return "Trail(" + strings.Join(ids, "/") + ")"
}
