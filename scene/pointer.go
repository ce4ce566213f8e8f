// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"log/slog"
	"slices"

	"github.com/scenic-ui/scenic/events"

	"github.com/scenic-ui/scenic/math32"
)

// MousePointerID is the id of the singleton mouse pointer. Touch and pen
// pointer ids are platform-assigned and non-negative.
const MousePointerID = -1

// Pointer is one input position source: the singleton persistent mouse, or
// a transient per-contact touch point or pen. It tracks the current global
// position, the hovered trail, whether the button/contact is down, and the
// pointer-attached listeners that observe this pointer regardless of where
// on the scene later events land (the drag pattern).
type Pointer struct {
	// ID identifies the pointer: [MousePointerID] for the mouse,
	// platform-assigned non-negative ids for touch contacts and pens.
	ID int

	// Kind is the pointer's input modality.
	Kind events.PointerKind

	point   math32.Vector2
	located bool

	trail *Trail

	// LastContext is the platform context of the most recent event seen
	// by this pointer, used when synthesizing enter/exit activity from
	// scene graph changes rather than device events.
	LastContext any

	listeners        []*Listener
	attached         bool
	attachedListener *Listener

	down bool
}

// NewMousePointer returns the persistent mouse pointer. Its position is
// unknown until the first event arrives.
func NewMousePointer() *Pointer {
	return &Pointer{ID: MousePointerID, Kind: events.MousePointer}
}

// NewTouchPointer returns a transient pointer for a touch contact or pen,
// created already located and down at the given point.
func NewTouchPointer(id int, kind events.PointerKind, point math32.Vector2) *Pointer {
	return &Pointer{ID: id, Kind: kind, point: point, located: true, down: true}
}

// Point returns the current global position; meaningful only once
// [Pointer.Located] reports true.
func (p *Pointer) Point() math32.Vector2 { return p.point }

// Located returns whether the pointer has reported a position yet. The
// mouse starts unlocated; touch pointers are born located.
func (p *Pointer) Located() bool { return p.located }

// UpdatePoint moves the pointer to the given global position, returning
// whether the position actually changed (a newly located pointer counts
// as changed).
func (p *Pointer) UpdatePoint(point math32.Vector2) bool {
	if p.located && p.point == point {
		return false
	}
	p.point = point
	p.located = true
	return true
}

// IsDown returns whether the button or contact is currently down.
func (p *Pointer) IsDown() bool { return p.down }

// SetDown sets the down state.
func (p *Pointer) SetDown(down bool) { p.down = down }

// Trail returns the hovered trail (root to the deepest hit node), or nil
// when the pointer is over nothing.
func (p *Pointer) Trail() *Trail { return p.trail }

// SetTrail replaces the hovered trail; branch-change events are the
// dispatcher's job, this only records the state.
func (p *Pointer) SetTrail(t *Trail) { p.trail = t }

// InputEnabledTrail returns the hovered trail truncated at the first
// input-disabled node, or nil when there is no trail.
func (p *Pointer) InputEnabledTrail() *Trail {
	if p.trail == nil {
		return nil
	}
	return p.trail.InputEnabledSub()
}

// IsTouchLike returns whether the pointer is transient (touch or pen):
// it appears on down and vanishes on up, so exit/out activity must be
// synthesized at the end of its lifecycle.
func (p *Pointer) IsTouchLike() bool {
	return p.Kind == events.TouchPointer || p.Kind == events.PenPointer
}

// AddListener adds a pointer-attached listener. If attach is true the
// listener claims exclusivity: attaching while another listener is already
// attached is a recoverable error (logged, and the attach downgraded),
// since two behaviors contending for a drag is an application bug.
func (p *Pointer) AddListener(l *Listener, attach bool) {
	if l == nil {
		return
	}
	if slices.Contains(p.listeners, l) {
		devAssert(false, "Pointer.AddListener: duplicate listener on pointer %d", p.ID)
		return
	}
	p.listeners = append(p.listeners, l)
	if attach {
		if p.attached {
			slog.Error("scenic: pointer already has an attached listener",
				"pointer", p.ID, "kind", p.Kind.String())
			devAssert(false, "Pointer.AddListener: pointer %d already attached", p.ID)
			return
		}
		p.attached = true
		p.attachedListener = l
	}
}

// RemoveListener removes a pointer-attached listener, releasing the
// attachment if it held one. Returns false if not registered.
func (p *Pointer) RemoveListener(l *Listener) bool {
	idx := slices.Index(p.listeners, l)
	if idx < 0 {
		devAssert(false, "Pointer.RemoveListener: listener not found on pointer %d", p.ID)
		return false
	}
	p.listeners = slices.Delete(p.listeners, idx, idx+1)
	if p.attachedListener == l {
		p.attached = false
		p.attachedListener = nil
	}
	return true
}

// Listeners returns a copy of the pointer-attached listener list.
func (p *Pointer) Listeners() []*Listener { return slices.Clone(p.listeners) }

// IsAttached returns whether a listener currently holds the exclusive
// attachment (e.g. a drag in progress).
func (p *Pointer) IsAttached() bool { return p.attached }
