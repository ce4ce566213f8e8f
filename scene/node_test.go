// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcyclicity(t *testing.T) {
	a := NewNode()
	b := NewNode()
	c := NewNode()
	a.AddChild(b)
	b.AddChild(c)

	assert.False(t, a.CanAddChild(a))
	assert.False(t, c.CanAddChild(a), "adding a under c would create a cycle")
	assert.False(t, c.CanAddChild(b))
	assert.False(t, a.CanAddChild(b), "duplicate edge")
	assert.True(t, a.CanAddChild(c), "diamond edges are allowed")

	Debug = true
	defer func() { Debug = false }()
	assert.Panics(t, func() { c.AddChild(a) })
	assert.True(t, b.HasAncestor(a))
	assert.False(t, a.HasAncestor(b))
}

func TestDiamond(t *testing.T) {
	root := NewNode()
	left := NewNode()
	right := NewNode()
	shared := NewNode()
	root.AddChild(left)
	root.AddChild(right)
	left.AddChild(shared)
	right.AddChild(shared)

	assert.Equal(t, 2, len(shared.Parents()))
	assert.True(t, shared.HasAncestor(root))

	// One listener on the shared node must make the root's subtree
	// hittable through both edges, and removal must fully undo it.
	l := NewListener()
	shared.AddInputListener(l)
	assert.True(t, root.SubtreeHittable())
	shared.RemoveInputListener(l)
	assert.False(t, root.SubtreeHittable())
}

func TestSummaryMaintenance(t *testing.T) {
	root := NewNode()
	mid := NewNode()
	leaf := NewNode()
	root.AddChild(mid)
	mid.AddChild(leaf)

	assert.False(t, root.SubtreeHittable())

	l := NewListener()
	leaf.AddInputListener(l)
	assert.True(t, root.SubtreeHittable())
	assert.True(t, mid.SubtreeHittable())

	leaf.RemoveInputListener(l)
	assert.False(t, root.SubtreeHittable())

	leaf.SetPickable(Bool(true))
	assert.True(t, root.SubtreeHittable())
	leaf.SetPickable(Bool(false))
	assert.False(t, root.SubtreeHittable())
	leaf.SetPickable(nil)
	assert.False(t, root.SubtreeHittable())

	// Detaching a subtree must subtract its contribution.
	leaf.SetPickable(Bool(true))
	require.True(t, root.SubtreeHittable())
	root.RemoveChild(mid)
	assert.False(t, root.SubtreeHittable())
	assert.True(t, mid.SubtreeHittable())
}

func TestStructureEmitters(t *testing.T) {
	parent := NewNode()
	child := NewNode()

	var log []string
	parent.ChildAdded.Listen(func(n *Node) { log = append(log, "childAdded") })
	parent.ChildRemoved.Listen(func(n *Node) { log = append(log, "childRemoved") })
	child.ParentAdded.Listen(func(n *Node) { log = append(log, "parentAdded") })
	child.ParentRemoved.Listen(func(n *Node) { log = append(log, "parentRemoved") })

	parent.AddChild(child)
	parent.RemoveChild(child)
	assert.Equal(t, []string{"childAdded", "parentAdded", "childRemoved", "parentRemoved"}, log)
}

func TestReentrantRemoval(t *testing.T) {
	parent := NewNode()
	child := NewNode()
	parent.AddChild(child)

	removed := 0
	child.ParentRemoved.Listen(func(p *Node) {
		removed++
		// Reacting to the removal by removing again must be absorbed.
		assert.False(t, p.RemoveChild(child))
	})
	assert.True(t, parent.RemoveChild(child))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, parent.NumChildren())
}

func TestRootedness(t *testing.T) {
	root := NewNode()
	mid := NewNode()
	leaf := NewNode()
	mid.AddChild(leaf)

	var changes []bool
	leaf.RootedChanged.Listen(func(v bool) { changes = append(changes, v) })

	root.SetRootSource(true)
	assert.False(t, leaf.IsRooted())

	root.AddChild(mid)
	assert.True(t, mid.IsRooted())
	assert.True(t, leaf.IsRooted())
	assert.Equal(t, []bool{true}, changes)

	root.RemoveChild(mid)
	assert.False(t, leaf.IsRooted())
	assert.Equal(t, []bool{true, false}, changes)

	// A second rooted parent keeps the subtree rooted after losing one.
	other := NewNode()
	other.SetRootSource(true)
	root.AddChild(mid)
	other.AddChild(mid)
	root.RemoveChild(mid)
	assert.True(t, leaf.IsRooted())
}

func TestDispose(t *testing.T) {
	parent := NewNode()
	n := NewNode()
	child := NewNode()
	parent.AddChild(n)
	n.AddChild(child)
	n.AddInputListener(NewListener())

	disposed := false
	n.Disposed.Listen(func(*Node) { disposed = true })

	n.Dispose()
	assert.True(t, n.IsDisposed())
	assert.True(t, disposed)
	assert.Equal(t, 0, parent.NumChildren())
	assert.Equal(t, 0, len(child.Parents()))
	assert.Empty(t, n.InputListeners())
	assert.False(t, parent.SubtreeHittable())

	// Disposed nodes cannot rejoin the graph.
	assert.False(t, parent.CanAddChild(n))
}

func TestClone(t *testing.T) {
	n := NewNode()
	n.SetVisible(false)
	n.SetPickable(Bool(true))
	n.SetMaxWidth(50)
	n.SetTouchArea(NewRect(0, 0, 20, 20))
	n.AddInputListener(NewListener())
	parent := NewNode()
	parent.AddChild(n)

	c := n.Clone()
	assert.NotEqual(t, n.ID(), c.ID())
	assert.False(t, c.Visible())
	require.NotNil(t, c.Pickable())
	assert.True(t, *c.Pickable())
	assert.Equal(t, float32(50), c.MaxWidth())
	assert.NotNil(t, c.TouchArea())
	assert.Empty(t, c.Parents(), "structure is not cloned")
	assert.Empty(t, c.InputListeners(), "listeners are not cloned")
}
