// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scenic-ui/scenic/math32"
)

// chain builds a parent→child chain and returns the nodes root-first.
func chain(n int) []*Node {
	nodes := make([]*Node, n)
	for i := range nodes {
		nodes[i] = NewNode()
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}
	return nodes
}

func TestTrailBasics(t *testing.T) {
	nodes := chain(3)
	tr := NewTrail(nodes)
	assert.Equal(t, 3, tr.Len())
	assert.Same(t, nodes[0], tr.Root())
	assert.Same(t, nodes[2], tr.Leaf())
	assert.Nil(t, tr.Node(5))

	sub := tr.Sub(2)
	assert.Equal(t, 2, sub.Len())
	assert.Same(t, nodes[1], sub.Leaf())

	assert.True(t, tr.Equals(tr.Copy()))
	assert.False(t, tr.Equals(sub))

	leaf := NewNode()
	nodes[2].AddChild(leaf)
	ext := tr.Extended(leaf)
	assert.Equal(t, 4, ext.Len())
	assert.Same(t, leaf, ext.Leaf())
	assert.Equal(t, 3, tr.Len(), "Extended does not mutate the receiver")
}

func TestTrailNilSafety(t *testing.T) {
	var tr *Trail
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Leaf())
	assert.Equal(t, 0, tr.BranchIndex(nil))
	assert.True(t, tr.Equals(nil))
	assert.Equal(t, 0, tr.InputEnabledSub().Len())
}

func TestBranchIndex(t *testing.T) {
	nodes := chain(4)
	a, b := nodes[0], nodes[1]
	x := NewNode()
	y := NewNode()
	b.AddChild(x)
	x.AddChild(y)

	old := NewTrail([]*Node{a, b, nodes[2], nodes[3]})
	next := NewTrail([]*Node{a, b, x, y})
	assert.Equal(t, 2, old.BranchIndex(next))
	assert.Equal(t, 2, next.BranchIndex(old))
	assert.Equal(t, 4, old.BranchIndex(old))
	assert.Equal(t, 0, old.BranchIndex(nil))

	prefix := old.Sub(2)
	assert.Equal(t, 2, old.BranchIndex(prefix))
}

func TestInputEnabledTruncation(t *testing.T) {
	nodes := chain(4)
	tr := NewTrail(nodes)
	assert.Equal(t, 4, tr.InputEnabledLength())

	// Disabling a node cuts off the node itself and everything below it.
	nodes[2].SetInputEnabled(false)
	assert.Equal(t, 2, tr.InputEnabledLength())
	sub := tr.InputEnabledSub()
	assert.Equal(t, 2, sub.Len())
	assert.Same(t, nodes[1], sub.Leaf())

	nodes[0].SetInputEnabled(false)
	assert.Equal(t, 0, tr.InputEnabledLength())
}

func TestTrailMatrix(t *testing.T) {
	nodes := chain(3)
	nodes[0].SetTransform(math32.Translate2D(10, 0))
	nodes[1].SetTransform(math32.Scale2D(2, 2))
	nodes[2].SetTransform(math32.Translate2D(1, 1))

	tr := NewTrail(nodes)
	// Leaf-local origin: translate by (1,1), scale by 2, translate by (10,0).
	p := tr.Matrix().MulVector2AsPoint(math32.Vec2(0, 0))
	assert.InDelta(t, 12, p.X, 1.0e-4)
	assert.InDelta(t, 2, p.Y, 1.0e-4)

	back := tr.GlobalToLocal(p)
	assert.InDelta(t, 0, back.X, 1.0e-4)
	assert.InDelta(t, 0, back.Y, 1.0e-4)
}

func TestTrailValidate(t *testing.T) {
	Debug = true
	defer func() { Debug = false }()

	a := NewNode()
	b := NewNode()
	assert.Panics(t, func() { NewTrail([]*Node{a, b}) },
		"adjacent trail nodes must be parent and child")

	a.AddChild(b)
	assert.NotPanics(t, func() { NewTrail([]*Node{a, b}) })
}
