// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the logical input event vocabulary shared by the
// scene graph and the input dispatcher: event [Type] names, pointer kinds,
// and a lock-free [Queue] for cross-goroutine intake of raw platform events.
//
// The standard [JavaScript Event](https://developer.mozilla.org/en-US/docs/Web/Events)
// names provide the basis for the event type names: listeners are registered
// under names like "down" and "enter", optionally prefixed with a pointer
// kind ("mousedown", "touchenter") to receive only events from that kind of
// pointer. Prefixed entries are always consulted before unprefixed ones.
package events

// Type is the logical type of an input event. It determines which listener
// entry is invoked during dispatch.
type Type string

const (
	// Down is a button or touch press on the trail under the pointer.
	Down Type = "down"

	// Up is a button or touch release. For touch-like pointers, Up is
	// followed by synthesized Exit/Out events since such pointers have
	// no natural hover-away.
	Up Type = "up"

	// Move is sent for every pointer movement, bubbling along the new trail
	// before any boundary events fire.
	Move Type = "move"

	// Cancel is a platform-initiated interruption of a pointer sequence
	// (e.g. an OS gesture taking over a touch).
	Cancel Type = "cancel"

	// Enter is sent, non-bubbling, to each node newly gained by a pointer's
	// trail, in branch-to-leaf order.
	Enter Type = "enter"

	// Exit is sent, non-bubbling, to each node lost from a pointer's trail,
	// in leaf-to-branch order.
	Exit Type = "exit"

	// Over bubbles from the new leaf when a pointer's leaf node changes.
	// It fires before the Enter sequence.
	Over Type = "over"

	// Out bubbles from the old leaf when a pointer's leaf node changes.
	// It fires after the Exit sequence.
	Out Type = "out"

	// Wheel is a scroll event, delivered to the mouse pointer's current trail.
	Wheel Type = "wheel"

	// KeyDown and KeyUp are keyboard events, delivered to the focused trail.
	KeyDown Type = "keydown"
	KeyUp   Type = "keyup"

	// Focus, Blur, FocusIn, and FocusOut are accessibility-originated focus
	// events. They are delivered even past a trail's input-enabled cutoff.
	Focus    Type = "focus"
	Blur     Type = "blur"
	FocusIn  Type = "focusin"
	FocusOut Type = "focusout"

	// Input and Change are accessibility-originated value events.
	Input  Type = "input"
	Change Type = "change"

	// Click is a synthetic activation event from assistive technology.
	Click Type = "click"
)

// PointerKind is the kind of input source behind a pointer.
type PointerKind int32

const (
	// MousePointer is the persistent, singleton mouse.
	MousePointer PointerKind = iota

	// TouchPointer is a transient touch contact, created on start and
	// destroyed on end/cancel.
	TouchPointer

	// PenPointer is a transient pen contact, hit-tested like touch.
	PenPointer

	// PDOMPointer is the singleton accessibility pointer; its trails come
	// from the accessibility tree rather than geometric hit-testing.
	PDOMPointer
)

var pointerKindNames = []string{"mouse", "touch", "pen", "pdom"}

func (pk PointerKind) String() string {
	if pk < 0 || int(pk) >= len(pointerKindNames) {
		return "unknown"
	}
	return pointerKindNames[pk]
}

// ParsePointerKind returns the pointer kind for the given platform
// pointer-type string. The second return is false for unknown or empty
// strings; empty strings are expected (some platform event specs allow
// them) and are resolved by the dispatcher's heuristic.
func ParsePointerKind(s string) (PointerKind, bool) {
	for i, nm := range pointerKindNames {
		if nm == s {
			return PointerKind(i), true
		}
	}
	return TouchPointer, false
}

// Prefixed returns the pointer-kind-prefixed name for the given type,
// e.g. Prefixed(MousePointer, Up) == "mouseup". A listener's prefixed
// entry is always tried before its plain entry.
func Prefixed(pk PointerKind, typ Type) Type {
	return Type(pk.String() + string(typ))
}

// IsFocusType returns whether the given type is one of the accessibility
// focus events that are dispatched even to nodes beyond a trail's
// input-enabled cutoff.
func IsFocusType(typ Type) bool {
	switch typ {
	case Focus, Blur, FocusIn, FocusOut:
		return true
	}
	return false
}
