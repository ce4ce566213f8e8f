// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/scenic-ui/scenic/events"

// Listener receives dispatched input events. The On map is keyed by event
// type; dispatch invokes the pointer-kind-prefixed entry ("mouseup") first
// and then the generic entry ("up"), with the abort latch checked between
// the two. Listeners are compared by pointer identity for registration,
// removal, and pointer attachment.
type Listener struct {
	On map[events.Type]func(e *Event)
}

// NewListener returns a listener with an initialized On map.
func NewListener() *Listener {
	return &Listener{On: map[events.Type]func(e *Event){}}
}

// Event is the envelope delivered to input listeners. One Event instance is
// shared across the full bubbling traversal of a single dispatch, so the
// abort and handle latches observed by later listeners reflect earlier ones.
type Event struct {
	// Trail is the root-to-target path this event is dispatched along.
	// Nil for events with no scene target (e.g. global key events).
	Trail *Trail

	// Type is the un-prefixed event type ("down", "enter", ...).
	Type events.Type

	// Pointer is the originating pointer, nil for non-pointer events.
	Pointer *Pointer

	// Context carries the platform event that triggered this dispatch
	// (see input.Context); scenic treats it as opaque.
	Context any

	// CurrentTarget is the node whose listeners are currently being
	// invoked during bubbling; nil for pointer-attached and global
	// listeners.
	CurrentTarget *Node

	aborted bool
	handled bool
}

// Target returns the leaf of the trail: the node the event is targeted at.
// Nil for trail-less events.
func (e *Event) Target() *Node {
	if e.Trail == nil {
		return nil
	}
	return e.Trail.Leaf()
}

// Abort stops all further listener processing for this event: remaining
// listeners on the current node and all ancestor nodes are skipped.
// Irreversible for this event.
func (e *Event) Abort() { e.aborted = true }

// IsAborted returns whether [Event.Abort] was called.
func (e *Event) IsAborted() bool { return e.aborted }

// Handle marks the event handled: bubbling stops after the current node's
// listeners finish. Remaining listeners on the current node still run.
// Irreversible for this event.
func (e *Event) Handle() { e.handled = true }

// IsHandled returns whether [Event.Handle] was called.
func (e *Event) IsHandled() bool { return e.handled }
