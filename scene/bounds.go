// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"slices"

	"github.com/scenic-ui/scenic/math32"
)

// BoundsEpsilon is the tolerance below which bounds changes are not
// considered changes: caches are still updated, but change notifications
// and upward invalidation are suppressed.
const BoundsEpsilon = 1.0e-5

// maxValidatePasses bounds the fixed-point iteration count checked by the
// debug oscillation assert in [Node.ValidateBounds].
const maxValidatePasses = 1000

// The bounds engine maintains four cached boxes per node, validated lazily:
//
//	self bounds   extent of the node's own painted content, local coords
//	child bounds  union of children's full bounds, local coords
//	local bounds  self ∪ child, intersected with the clip area's bounds
//	full bounds   local bounds mapped through the transform, parent coords
//
// Invalidation is O(dirty path to roots) and early-exits on already-dirty
// nodes; validation recomputes exactly the dirty subtree. Change
// notifications fire only when a box moves by more than [BoundsEpsilon],
// and only after the caches and flags for that level are consistent, so a
// listener may re-invalidate mid-validation; the fixed-point loop in
// [Node.ValidateBounds] absorbs that.

// InvalidateSelf invalidates this node's self bounds and cascades the
// invalidation upward. If box is non-nil the self bounds are set to it
// directly (the renderer reporting a known new extent); otherwise they are
// marked dirty for recomputation via [Node.SelfBoundsFn].
func (n *Node) InvalidateSelf(box *math32.Box2) {
	if box != nil {
		changed := !n.selfBounds.AlmostEqual(*box, BoundsEpsilon)
		old := n.selfBounds
		n.selfBounds = *box
		n.selfDirty = false
		if changed {
			n.SelfBoundsChanged.Emit(old)
		}
	} else {
		n.selfDirty = true
	}
	n.invalidateLocal()
}

// invalidateChildBounds marks the child (and therefore local and full)
// bounds dirty and propagates to parents. Early-exits when already dirty,
// which keeps repeated invalidation of a shared DAG region cheap.
func (n *Node) invalidateChildBounds() {
	if n.childDirty && n.localDirty && n.fullDirty {
		return
	}
	n.childDirty = true
	n.localDirty = true
	n.fullDirty = true
	for _, p := range n.parents {
		p.invalidateChildBounds()
	}
}

func (n *Node) invalidateLocal() {
	if n.localDirty && n.fullDirty {
		return
	}
	n.localDirty = true
	n.fullDirty = true
	for _, p := range n.parents {
		p.invalidateChildBounds()
	}
}

func (n *Node) invalidateFull() {
	if n.fullDirty {
		return
	}
	n.fullDirty = true
	for _, p := range n.parents {
		p.invalidateChildBounds()
	}
}

func (n *Node) anyDirty() bool {
	return n.selfDirty || n.childDirty || n.localDirty || n.fullDirty
}

// ValidateBounds brings all four cached boxes of this node (and its dirty
// descendants) up to date. Because change listeners may mutate the graph or
// re-invalidate bounds mid-validation, validation runs to a fixed point.
// Oscillating listeners (mutually re-invalidating forever) are a bug in the
// listeners; the debug assert catches them.
func (n *Node) ValidateBounds() {
	passes := 0
	for n.anyDirty() {
		n.validatePass()
		passes++
		devAssert(passes < maxValidatePasses,
			"ValidateBounds: node %d failed to converge after %d passes; a bounds listener is re-invalidating every pass", n.id, passes)
	}
}

func (n *Node) validatePass() {
	if n.selfDirty {
		n.selfDirty = false
		if n.SelfBoundsFn != nil {
			sb := n.SelfBoundsFn(n)
			changed := !n.selfBounds.AlmostEqual(sb, BoundsEpsilon)
			old := n.selfBounds
			n.selfBounds = sb
			if changed {
				n.SelfBoundsChanged.Emit(old)
			}
		}
	}

	if n.childDirty {
		cb := math32.B2Empty()
		for _, c := range slices.Clone(n.children) {
			c.ValidateBounds()
			if n.excludeInvisible && !c.visible {
				continue
			}
			cb = cb.Union(c.fullBounds)
		}
		n.childDirty = false
		changed := !n.childBounds.AlmostEqual(cb, BoundsEpsilon)
		old := n.childBounds
		n.childBounds = cb
		if changed {
			n.localDirty = true
			n.fullDirty = true
			n.ChildBoundsChanged.Emit(old)
		}
	}

	if n.localDirty {
		n.localDirty = false
		if !n.localOverridden {
			lb := n.selfBounds.Union(n.childBounds)
			if n.clipArea != nil {
				lb = lb.Intersect(n.clipArea.Bounds())
			}
			if !n.localBounds.AlmostEqual(lb, BoundsEpsilon) {
				old := n.localBounds
				n.localBounds = lb
				n.fullDirty = true
				n.updateMaxDimension()
				n.LocalBoundsChanged.Emit(old)
			} else {
				n.localBounds = lb
				n.updateMaxDimension()
			}
		}
	}

	if n.fullDirty {
		n.fullDirty = false
		var fb math32.Box2
		if n.transformBoundsPrecise && !n.transform.IsAxisAligned() {
			fb = math32.B2Empty()
			n.accumulateExactBounds(n.transform, &fb)
		} else {
			fb = n.localBounds.MulMatrix2(n.transform)
			if Debug && n.transformBoundsPrecise {
				// Fast and exact paths must agree on axis-aligned
				// transforms of leaf painted nodes.
				if n.painted && len(n.children) == 0 && n.clipArea == nil && !n.localOverridden {
					exact := math32.B2Empty()
					n.accumulateExactBounds(n.transform, &exact)
					devAssert(fb.AlmostEqual(exact, 1.0e-3),
						"validatePass: axis-aligned full bounds %v disagree with exact union %v on node %d", fb, exact, n.id)
				}
			}
		}
		changed := !n.fullBounds.AlmostEqual(fb, BoundsEpsilon)
		old := n.fullBounds
		n.fullBounds = fb
		if changed {
			for _, p := range n.parents {
				p.invalidateChildBounds()
			}
			n.BoundsChanged.Emit(old)
		}
	}
}

// updateMaxDimension applies the max width/height constraint: if the local
// bounds exceed the configured maxima, a corrective uniform scale is
// prepended to the transform. The correction is relative to the previously
// applied scale, so re-running on unchanged bounds is a no-op.
func (n *Node) updateMaxDimension() {
	if n.maxWidth == 0 && n.maxHeight == 0 {
		return
	}
	if n.localBounds.IsEmpty() {
		return
	}
	size := n.localBounds.Size()
	ideal := float32(1)
	if n.maxWidth > 0 && size.X > 0 {
		ideal = math32.Min(ideal, n.maxWidth/size.X)
	}
	if n.maxHeight > 0 && size.Y > 0 {
		ideal = math32.Min(ideal, n.maxHeight/size.Y)
	}
	if math32.Abs(ideal-n.appliedScale) < BoundsEpsilon {
		return
	}
	factor := ideal / n.appliedScale
	n.appliedScale = ideal
	n.transform = n.transform.Scale(factor, factor)
	n.fullDirty = true
}

// accumulateExactBounds unions the exactly transformed self bounds of every
// painted node in this subtree into fb, with m accumulating the transforms
// from the subtree root's parent coordinate frame. Used for full bounds when
// transform-bounds-precise is on and the transform has rotation or shear,
// where transforming the axis-aligned local box would overshoot.
func (n *Node) accumulateExactBounds(m math32.Matrix2, fb *math32.Box2) {
	if n.painted && !n.selfBounds.IsEmpty() {
		*fb = fb.Union(n.selfBounds.MulMatrix2(m))
	}
	for _, c := range n.children {
		if n.excludeInvisible && !c.visible {
			continue
		}
		c.accumulateExactBounds(m.Mul(c.transform), fb)
	}
}

// Validated accessors:

// SelfBounds returns the extent of this node's own painted content in
// local coordinates, validating first.
func (n *Node) SelfBounds() math32.Box2 {
	n.ValidateBounds()
	return n.selfBounds
}

// ChildBounds returns the union of children's full bounds in local
// coordinates, validating first.
func (n *Node) ChildBounds() math32.Box2 {
	n.ValidateBounds()
	return n.childBounds
}

// LocalBounds returns self ∪ child bounds (clipped if a clip area is set)
// in local coordinates, validating first.
func (n *Node) LocalBounds() math32.Box2 {
	n.ValidateBounds()
	return n.localBounds
}

// Bounds returns the full bounds: local bounds mapped into the parent
// coordinate frame, validating first.
func (n *Node) Bounds() math32.Box2 {
	n.ValidateBounds()
	return n.fullBounds
}

// SetLocalBoundsOverride pins the local bounds to the given box, bypassing
// recomputation from self and child bounds, until called with nil.
func (n *Node) SetLocalBoundsOverride(box *math32.Box2) {
	if box != nil {
		n.localOverridden = true
		changed := !n.localBounds.AlmostEqual(*box, BoundsEpsilon)
		old := n.localBounds
		n.localBounds = *box
		n.localDirty = false
		if changed {
			n.invalidateFull()
			n.LocalBoundsChanged.Emit(old)
		}
	} else {
		if !n.localOverridden {
			return
		}
		n.localOverridden = false
		n.invalidateLocal()
	}
}
