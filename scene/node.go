// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene implements the core of scenic: a DAG of renderable nodes
// with cached bounding boxes, recursive hit-testing, trails (root-to-leaf
// paths through the DAG), pointers, and the event dispatch envelope.
//
// Nodes form a directed acyclic graph rather than a tree: a node may have
// multiple parents, and therefore multiple trails from a root to it. Bounds
// and events are computed per trail. All of scenic is single-threaded and
// event-loop driven; re-entrancy (listeners mutating the graph mid-dispatch
// or mid-validation) is the supported hazard, not parallelism.
package scene

import (
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/jinzhu/copier"

	"github.com/scenic-ui/scenic/math32"
)

// nodeID is the process-unique id counter for nodes.
var nodeID atomic.Uint64

// Bool returns a pointer to the given bool, for use with [Node.SetPickable].
func Bool(b bool) *bool {
	return &b
}

// Node is a vertex in the scene DAG. It carries a local transform, the
// visibility/pickability/input flags, optional custom hit areas, input
// listeners, and the four cached bounding boxes maintained by the bounds
// engine (see bounds.go).
//
// Nodes are created detached via [NewNode], attached with
// [Node.AddChild]/[Node.InsertChild], and destroyed with [Node.Dispose].
// Child order determines front-to-back stacking: the last child is
// frontmost for both painting and hit-testing.
type Node struct {
	id uint64

	parents  []*Node
	children []*Node

	transform math32.Matrix2

	visible      bool
	enabled      bool
	inputEnabled bool
	pickable     *bool // tri-state: nil = inherit

	mouseArea Shape
	touchArea Shape
	clipArea  Shape
	selfShape Shape // precise self-containment test; nil = self bounds only

	listeners []*Listener

	maxWidth     float32 // 0 = unconstrained
	maxHeight    float32
	appliedScale float32

	transformBoundsPrecise bool
	excludeInvisible       bool
	painted                bool

	// SelfBoundsFn, if set, recomputes the self bounds during validation
	// (the renderer collaborator's "content extent" query). When nil, self
	// bounds only change via [Node.InvalidateSelf] with an explicit box.
	SelfBoundsFn func(n *Node) math32.Box2

	selfBounds  math32.Box2
	childBounds math32.Box2
	localBounds math32.Box2
	fullBounds  math32.Box2

	selfDirty       bool
	childDirty      bool
	localDirty      bool
	fullDirty       bool
	localOverridden bool

	// Structural emitters; see [Emitter]. External reactive layers
	// computing "all trails displaying node X" must subscribe to exactly
	// this set plus RootedChanged and Disposed.
	ChildAdded    Emitter[*Node]
	ChildRemoved  Emitter[*Node]
	ParentAdded   Emitter[*Node]
	ParentRemoved Emitter[*Node]
	RootedChanged Emitter[bool]
	Disposed      Emitter[*Node]

	// Bounds emitters fire with the *previous* box once the corresponding
	// cache has settled; see bounds.go for the re-entrancy contract.
	SelfBoundsChanged  Emitter[math32.Box2]
	ChildBoundsChanged Emitter[math32.Box2]
	LocalBoundsChanged Emitter[math32.Box2]
	BoundsChanged      Emitter[math32.Box2]

	// Picker summaries, maintained incrementally (see picker.go).
	selfHittable      bool
	selfCustomArea    bool
	subtreeHittable   int
	subtreeCustomArea int

	rootSource bool
	rootedRefs int

	disposed bool
	removing bool
}

// NewNode returns a new detached node with default state: visible, enabled,
// input-enabled, inherit pickability, identity transform, empty bounds.
func NewNode() *Node {
	n := &Node{
		id:           nodeID.Add(1),
		transform:    math32.Identity2(),
		visible:      true,
		enabled:      true,
		inputEnabled: true,
		appliedScale: 1,
	}
	n.selfBounds.SetEmpty()
	n.childBounds.SetEmpty()
	n.localBounds.SetEmpty()
	n.fullBounds.SetEmpty()
	return n
}

// ID returns the process-unique id of this node.
func (n *Node) ID() uint64 { return n.id }

// IsDisposed returns whether [Node.Dispose] has been called.
func (n *Node) IsDisposed() bool { return n.disposed }

// Structure:

// NumChildren returns the number of children this node has.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the child at the given index, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a copy of the ordered child list (last = frontmost).
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Parents returns a copy of the parent list (unordered).
func (n *Node) Parents() []*Node { return slices.Clone(n.parents) }

// HasAncestor returns whether anc is an ancestor of this node along any
// parent path (a node is not its own ancestor).
func (n *Node) HasAncestor(anc *Node) bool {
	visited := map[*Node]bool{}
	return n.hasAncestor(anc, visited)
}

func (n *Node) hasAncestor(anc *Node, visited map[*Node]bool) bool {
	for _, p := range n.parents {
		if visited[p] {
			continue
		}
		visited[p] = true
		if p == anc || p.hasAncestor(anc, visited) {
			return true
		}
	}
	return false
}

// CanAddChild returns whether the given node may be added as a child of
// this node without violating the DAG invariants: no nil or disposed nodes,
// no duplicate edges, and no cycles (the child must not be this node or any
// of its ancestors).
func (n *Node) CanAddChild(child *Node) bool {
	if child == nil || child == n || n.disposed || child.disposed {
		return false
	}
	if slices.Contains(n.children, child) {
		return false
	}
	if n == child || n.HasAncestor(child) {
		return false
	}
	return true
}

// AddChild adds the given node at the end of the child list (frontmost).
func (n *Node) AddChild(child *Node) {
	n.InsertChild(len(n.children), child)
}

// InsertChild adds the given node at the given index in the child list.
// Inserting a node that would create a cycle, a duplicate edge, or involve
// a disposed node is an invariant violation (debug panic, silently ignored
// in production).
func (n *Node) InsertChild(i int, child *Node) {
	if !n.CanAddChild(child) {
		devAssert(false, "InsertChild: cannot add node %d as child of %d", idOf(child), n.id)
		return
	}
	devAssert(i >= 0 && i <= len(n.children), "InsertChild: index %d out of range", i)
	i = max(0, min(i, len(n.children)))

	n.children = slices.Insert(n.children, i, child)
	child.parents = append(child.parents, n)

	n.applySummaryDelta(child.subtreeHittable, child.subtreeCustomArea)
	n.invalidateChildBounds()
	if n.isRooted() {
		child.incRooted()
	}

	n.ChildAdded.Emit(child)
	child.ParentAdded.Emit(n)
}

// RemoveChild removes the given node from this node's child list, returning
// false if it is not a child. Re-entrant removal of a node already mid-removal
// is absorbed (listeners reacting to removal signals may attempt it).
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || child.removing {
		return false
	}
	idx := slices.Index(n.children, child)
	if idx < 0 {
		devAssert(false, "RemoveChild: node %d is not a child of %d", child.id, n.id)
		return false
	}
	child.removing = true
	defer func() { child.removing = false }()

	n.children = slices.Delete(n.children, idx, idx+1)
	pidx := slices.Index(child.parents, n)
	if pidx >= 0 {
		child.parents = slices.Delete(child.parents, pidx, pidx+1)
	}

	n.applySummaryDelta(-child.subtreeHittable, -child.subtreeCustomArea)
	n.invalidateChildBounds()
	if n.isRooted() {
		child.decRooted()
	}

	n.ChildRemoved.Emit(child)
	child.ParentRemoved.Emit(n)
	return true
}

// RemoveChildAt removes the child at the given index, returning false if
// the index is out of range.
func (n *Node) RemoveChildAt(i int) bool {
	if i < 0 || i >= len(n.children) {
		return false
	}
	return n.RemoveChild(n.children[i])
}

// Dispose detaches this node from all parents and children, releases its
// listeners, and fires the Disposed emitter. A disposed node must not appear
// in any live trail; dispatch skips disposed targets defensively.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	for _, p := range slices.Clone(n.parents) {
		p.RemoveChild(n)
	}
	for _, c := range slices.Clone(n.children) {
		n.RemoveChild(c)
	}
	n.listeners = nil
	n.updateSelfHittable()
	n.disposed = true
	n.Disposed.Emit(n)
}

func idOf(n *Node) uint64 {
	if n == nil {
		return 0
	}
	return n.id
}

// Flags:

// Visible returns whether this node (and therefore its subtree) is shown.
func (n *Node) Visible() bool { return n.visible }

// SetVisible sets visibility. Invisible subtrees are pruned from
// hit-testing, and may be excluded from parent bounds (see
// [Node.SetExcludeInvisibleChildrenFromBounds]).
func (n *Node) SetVisible(v bool) {
	if n.visible == v {
		return
	}
	n.visible = v
	for _, p := range n.parents {
		p.invalidateChildBounds()
	}
}

// Enabled returns the enabled flag. Enabled is an application-level flag
// independent of input-enabled; it does not affect hit-testing.
func (n *Node) Enabled() bool { return n.enabled }

// SetEnabled sets the enabled flag.
func (n *Node) SetEnabled(v bool) { n.enabled = v }

// InputEnabled returns whether this node and its subtree can receive
// input events.
func (n *Node) InputEnabled() bool { return n.inputEnabled }

// SetInputEnabled sets whether this node and its subtree can receive input
// events. Input-disabled subtrees are pruned from hit-testing, so content
// behind them is hit instead, and externally supplied trails truncate at
// the first input-disabled node for event delivery; focus events are
// exempt (see events.IsFocusType).
func (n *Node) SetInputEnabled(v bool) { n.inputEnabled = v }

// Pickable returns the tri-state pickable flag: nil inherits ("pickable if
// it has input listeners"), true forces pickable regardless of listeners,
// false forces unpickable regardless of listeners.
func (n *Node) Pickable() *bool {
	if n.pickable == nil {
		return nil
	}
	v := *n.pickable
	return &v
}

// SetPickable sets the tri-state pickable flag; see [Node.Pickable] and
// [Bool]. A pickable:false node is never itself returned from hit-testing,
// but hit-testing still descends into its subtree when a descendant is
// known to be hittable.
func (n *Node) SetPickable(p *bool) {
	if p == nil {
		n.pickable = nil
	} else {
		v := *p
		n.pickable = &v
	}
	n.updateSelfHittable()
}

// Painted returns whether this node paints visible content itself
// (as opposed to being a pure container).
func (n *Node) Painted() bool { return n.painted }

// SetPainted sets whether this node paints visible content. Painted nodes
// contribute their self bounds to precise transformed-bounds unions.
func (n *Node) SetPainted(v bool) {
	if n.painted == v {
		return
	}
	n.painted = v
	n.invalidateFull()
}

// Input listeners:

// AddInputListener appends the given listener to this node's ordered
// listener list. Duplicate registration is an invariant violation.
func (n *Node) AddInputListener(l *Listener) {
	if l == nil {
		return
	}
	if slices.Contains(n.listeners, l) {
		devAssert(false, "AddInputListener: duplicate listener on node %d", n.id)
		return
	}
	n.listeners = append(n.listeners, l)
	n.updateSelfHittable()
}

// RemoveInputListener removes the given listener, returning false if it
// is not registered.
func (n *Node) RemoveInputListener(l *Listener) bool {
	idx := slices.Index(n.listeners, l)
	if idx < 0 {
		devAssert(false, "RemoveInputListener: listener not found on node %d", n.id)
		return false
	}
	n.listeners = slices.Delete(n.listeners, idx, idx+1)
	n.updateSelfHittable()
	return true
}

// InputListeners returns a copy of the ordered input listener list.
func (n *Node) InputListeners() []*Listener { return slices.Clone(n.listeners) }

// Hit areas and shapes:

// MouseArea returns the custom mouse hit area, or nil.
func (n *Node) MouseArea() Shape { return n.mouseArea }

// SetMouseArea sets a custom hit area used instead of self bounds when
// hit-testing mouse pointers. It affects hit-testing only, not bounds.
func (n *Node) SetMouseArea(s Shape) {
	n.mouseArea = s
	n.updateSelfCustomArea()
}

// TouchArea returns the custom touch/pen hit area, or nil.
func (n *Node) TouchArea() Shape { return n.touchArea }

// SetTouchArea sets a custom hit area used instead of self bounds when
// hit-testing touch and pen pointers.
func (n *Node) SetTouchArea(s Shape) {
	n.touchArea = s
	n.updateSelfCustomArea()
}

// ClipArea returns the clip shape constraining this node's local bounds
// and hit-testing, or nil.
func (n *Node) ClipArea() Shape { return n.clipArea }

// SetClipArea sets the clip shape. Points outside the clip are never hits,
// and local bounds are intersected with the clip's bounds.
func (n *Node) SetClipArea(s Shape) {
	n.clipArea = s
	n.invalidateLocal()
}

// SelfShape returns the precise self-containment shape, or nil.
func (n *Node) SelfShape() Shape { return n.selfShape }

// SetSelfShape sets a precise containment test for this node's own painted
// content (e.g. an exact arc or path). When nil, self-bounds containment
// alone decides self hits.
func (n *Node) SetSelfShape(s Shape) { n.selfShape = s }

// Transform:

// Transform returns the local-to-parent affine transform.
func (n *Node) Transform() math32.Matrix2 { return n.transform }

// SetTransform sets the local-to-parent affine transform.
func (n *Node) SetTransform(m math32.Matrix2) {
	if n.transform == m {
		return
	}
	n.transform = m
	n.invalidateFull()
}

// MaxWidth returns the maximum width constraint (0 = unconstrained).
func (n *Node) MaxWidth() float32 { return n.maxWidth }

// SetMaxWidth sets a maximum width; when local bounds exceed it, a
// corrective uniform scale is applied to the transform during bounds
// validation. Repeated validation is idempotent.
func (n *Node) SetMaxWidth(w float32) {
	n.maxWidth = w
	n.invalidateLocal()
}

// MaxHeight returns the maximum height constraint (0 = unconstrained).
func (n *Node) MaxHeight() float32 { return n.maxHeight }

// SetMaxHeight sets a maximum height; see [Node.SetMaxWidth].
func (n *Node) SetMaxHeight(h float32) {
	n.maxHeight = h
	n.invalidateLocal()
}

// AppliedScale returns the corrective scale currently applied by the
// max-dimension constraint (1 when unconstrained).
func (n *Node) AppliedScale() float32 { return n.appliedScale }

// SetTransformBoundsPrecise sets whether full bounds use the exact
// transformed-shape union (handles rotation/shear without overshoot,
// at one matrix multiply per painted descendant) instead of the fast
// axis-aligned approximation.
func (n *Node) SetTransformBoundsPrecise(v bool) {
	if n.transformBoundsPrecise == v {
		return
	}
	n.transformBoundsPrecise = v
	n.invalidateFull()
}

// SetExcludeInvisibleChildrenFromBounds sets whether invisible children
// are excluded from this node's child bounds union.
func (n *Node) SetExcludeInvisibleChildrenFromBounds(v bool) {
	if n.excludeInvisible == v {
		return
	}
	n.excludeInvisible = v
	n.invalidateChildBounds()
}

// Rootedness:

// SetRootSource marks this node as a top-level display root (or unmarks
// it). Rootedness propagates to all descendants and fires RootedChanged
// on zero/non-zero transitions.
func (n *Node) SetRootSource(v bool) {
	if n.rootSource == v {
		return
	}
	was := n.isRooted()
	n.rootSource = v
	n.rootedTransition(was)
}

// IsRooted returns whether this node is reachable from a top-level
// display root.
func (n *Node) IsRooted() bool { return n.isRooted() }

func (n *Node) isRooted() bool { return n.rootSource || n.rootedRefs > 0 }

func (n *Node) incRooted() {
	was := n.isRooted()
	n.rootedRefs++
	n.rootedTransition(was)
}

func (n *Node) decRooted() {
	was := n.isRooted()
	n.rootedRefs--
	if n.rootedRefs < 0 {
		slog.Error("scenic: rooted reference count underflow", "node", n.id)
		n.rootedRefs = 0
	}
	n.rootedTransition(was)
}

func (n *Node) rootedTransition(was bool) {
	now := n.isRooted()
	if was == now {
		return
	}
	n.RootedChanged.Emit(now)
	for _, c := range slices.Clone(n.children) {
		if now {
			c.incRooted()
		} else {
			c.decRooted()
		}
	}
}

// Clone returns a detached copy of this node's own state (flags, transform,
// areas, constraints) with fresh identity, no parents/children, no
// listeners, and invalidated bounds. Structure is not cloned: trails and
// subtrees are per-DAG state that a copy must rebuild.
func (n *Node) Clone() *Node {
	nc := NewNode()
	type cloneFields struct {
		Visible, Enabled, InputEnabled bool
		Transform                      math32.Matrix2
		MaxWidth, MaxHeight            float32
		TransformBoundsPrecise         bool
		ExcludeInvisible               bool
		Painted                        bool
	}
	src := cloneFields{
		Visible: n.visible, Enabled: n.enabled, InputEnabled: n.inputEnabled,
		Transform: n.transform, MaxWidth: n.maxWidth, MaxHeight: n.maxHeight,
		TransformBoundsPrecise: n.transformBoundsPrecise,
		ExcludeInvisible:       n.excludeInvisible, Painted: n.painted,
	}
	var dst cloneFields
	if err := copier.CopyWithOption(&dst, &src, copier.Option{DeepCopy: true}); err != nil {
		slog.Error("scene.Node.Clone", "err", err)
		return nc
	}
	nc.visible = dst.Visible
	nc.enabled = dst.Enabled
	nc.inputEnabled = dst.InputEnabled
	nc.transform = dst.Transform
	nc.maxWidth = dst.MaxWidth
	nc.maxHeight = dst.MaxHeight
	nc.transformBoundsPrecise = dst.TransformBoundsPrecise
	nc.excludeInvisible = dst.ExcludeInvisible
	nc.painted = dst.Painted
	nc.SetPickable(n.pickable)
	nc.mouseArea = n.mouseArea
	nc.touchArea = n.touchArea
	nc.clipArea = n.clipArea
	nc.selfShape = n.selfShape
	nc.updateSelfCustomArea()
	nc.InvalidateSelf(&n.selfBounds)
	return nc
}
