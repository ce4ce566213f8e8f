// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/scenic-ui/scenic/events"

	"github.com/scenic-ui/scenic/math32"
)

// The picker answers "what is under this point": a recursive front-to-back
// descent of the DAG returning the trail to the deepest hit node. Two
// summary counters are maintained incrementally on every node so the
// descent can prune aggressively:
//
//	subtreeHittable    number of individually hittable nodes in the
//	                   subtree (including self); zero prunes the subtree
//	subtreeCustomArea  number of nodes with a custom mouse/touch hit area
//	                   in the subtree; zero allows bounds-based pruning
//	                   (custom areas may extend beyond cached bounds)
//
// The counters propagate as deltas along every parent edge. In a DAG a
// diamond double-counts descendants through both edges, which is harmless:
// only the zero/non-zero distinction is consulted.

// selfHittable reports whether this node itself can be the target of a hit:
// pickable:false never, pickable:true always, pickable:nil only when input
// listeners are present.
func (n *Node) updateSelfHittable() {
	h := true
	switch {
	case n.pickable != nil && !*n.pickable:
		h = false
	case n.pickable == nil && len(n.listeners) == 0:
		h = false
	}
	if h == n.selfHittable {
		return
	}
	n.selfHittable = h
	if h {
		n.applySummaryDelta(1, 0)
	} else {
		n.applySummaryDelta(-1, 0)
	}
}

func (n *Node) updateSelfCustomArea() {
	c := n.mouseArea != nil || n.touchArea != nil
	if c == n.selfCustomArea {
		return
	}
	n.selfCustomArea = c
	if c {
		n.applySummaryDelta(0, 1)
	} else {
		n.applySummaryDelta(0, -1)
	}
}

// applySummaryDelta adjusts this node's subtree summaries and propagates
// the same delta along every parent edge.
func (n *Node) applySummaryDelta(dHittable, dCustomArea int) {
	if dHittable == 0 && dCustomArea == 0 {
		return
	}
	n.subtreeHittable += dHittable
	n.subtreeCustomArea += dCustomArea
	devAssert(n.subtreeHittable >= 0 && n.subtreeCustomArea >= 0,
		"applySummaryDelta: negative summary on node %d (hittable %d, custom %d)",
		n.id, n.subtreeHittable, n.subtreeCustomArea)
	for _, p := range n.parents {
		p.applySummaryDelta(dHittable, dCustomArea)
	}
}

// SubtreeHittable reports whether any node in this subtree (including this
// node) can be hit.
func (n *Node) SubtreeHittable() bool { return n.subtreeHittable > 0 }

// HitTest returns the trail from this node to the deepest node under the
// given point for the given pointer kind, or nil if nothing is hit. The
// point is in this node's parent coordinate frame (global coordinates when
// called on a display root). Children are tested front to back (last child
// first), children before self, so the topmost content wins.
//
// Invisible and input-disabled subtrees are pruned: every trail to a
// descendant passes through the disabled node, so pruning at the node
// itself is exact and costs one flag check per visited node. Content
// behind a disabled subtree is therefore hit instead. Focus events never
// pass through here; they arrive with an externally supplied trail.
//
// Bounds are validated up front; hit-testing itself never mutates the graph.
func (n *Node) HitTest(point math32.Vector2, kind events.PointerKind) *Trail {
	n.ValidateBounds()
	stack := make([]*Node, 0, 16)
	return n.hitTest(point, kind, &stack)
}

func (n *Node) hitTest(point math32.Vector2, kind events.PointerKind, stack *[]*Node) *Trail {
	if !n.visible || !n.inputEnabled || n.subtreeHittable == 0 {
		return nil
	}
	local := n.transform.Inverse().MulVector2AsPoint(point)

	// Cached bounds bound every hit region in the subtree unless a custom
	// hit area is present somewhere below.
	if n.subtreeCustomArea == 0 && !n.localBounds.ContainsPoint(local) {
		return nil
	}
	if n.clipArea != nil && !n.clipArea.Contains(local) {
		return nil
	}

	*stack = append(*stack, n)
	defer func() { *stack = (*stack)[:len(*stack)-1] }()

	for i := len(n.children) - 1; i >= 0; i-- {
		if trail := n.children[i].hitTest(local, kind, stack); trail != nil {
			return trail
		}
	}

	if n.selfHittable && n.containsSelf(local, kind) {
		return NewTrail(*stack)
	}
	return nil
}

// containsSelf tests the node's own hit region at the given local point.
// A custom area for the pointer kind overrides the self-bounds test
// entirely; pen pointers use the touch area.
func (n *Node) containsSelf(local math32.Vector2, kind events.PointerKind) bool {
	var area Shape
	switch kind {
	case events.MousePointer:
		area = n.mouseArea
	case events.TouchPointer, events.PenPointer:
		area = n.touchArea
	}
	if area != nil {
		return area.Contains(local)
	}
	if !n.selfBounds.ContainsPoint(local) {
		return false
	}
	if n.selfShape != nil {
		return n.selfShape.Contains(local)
	}
	return true
}
