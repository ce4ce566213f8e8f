// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"log/slog"
	"slices"
	"time"

	"github.com/scenic-ui/scenic/events"

	"github.com/scenic-ui/scenic/math32"
	"github.com/scenic-ui/scenic/scene"
)

// globalListeners receive events from every dispatcher, after display
// listeners. Like the rest of scenic this list is event-loop-confined.
var globalListeners []*scene.Listener

// AddGlobalListener registers a listener receiving events from all
// dispatchers, after each dispatcher's own listeners.
func AddGlobalListener(l *scene.Listener) {
	if l == nil || slices.Contains(globalListeners, l) {
		return
	}
	globalListeners = append(globalListeners, l)
}

// RemoveGlobalListener unregisters a cross-dispatcher listener.
func RemoveGlobalListener(l *scene.Listener) {
	if i := slices.Index(globalListeners, l); i >= 0 {
		globalListeners = slices.Delete(globalListeners, i, i+1)
	}
}

// Dispatcher converts raw platform events for one display into logical
// events on that display's scene graph. It owns the live pointer set (the
// singleton mouse, the singleton accessibility pointer, and transient
// touch/pen contacts), the per-display listener list, and the raw event
// batch.
//
// All methods must be called from the event-loop goroutine; [Dispatcher.Enqueue]
// is the one cross-goroutine entry point.
type Dispatcher struct {
	root *scene.Node

	mouse    *scene.Pointer
	pdom     *scene.Pointer
	pointers []*scene.Pointer

	listeners []*scene.Listener

	recorder  Recorder
	replaying bool

	// BatchEnabled batches raw events for flushing at a controlled time;
	// when off, every batched event runs immediately.
	BatchEnabled bool

	batched  []func()
	flushing bool
	intake   events.Queue[func()]

	clickSuppression time.Duration
	lastUpTime       time.Time
}

// NewDispatcher returns a dispatcher for the scene graph rooted at the
// given node, which is marked as a top-level display root. Behavior
// defaults match [DefaultSettings]; see [Dispatcher.ApplySettings].
func NewDispatcher(root *scene.Node) *Dispatcher {
	d := &Dispatcher{
		root:             root,
		BatchEnabled:     true,
		clickSuppression: 80 * time.Millisecond,
	}
	d.intake.Init()
	root.SetRootSource(true)
	return d
}

// Root returns the display root this dispatcher hit-tests against.
func (d *Dispatcher) Root() *scene.Node { return d.root }

// AddListener registers a display-level listener, receiving events not
// handled by any trail target.
func (d *Dispatcher) AddListener(l *scene.Listener) {
	if l == nil || slices.Contains(d.listeners, l) {
		return
	}
	d.listeners = append(d.listeners, l)
}

// RemoveListener unregisters a display-level listener.
func (d *Dispatcher) RemoveListener(l *scene.Listener) {
	if i := slices.Index(d.listeners, l); i >= 0 {
		d.listeners = slices.Delete(d.listeners, i, i+1)
	}
}

// Pointers:

// Mouse returns the singleton mouse pointer, creating it on first use.
func (d *Dispatcher) Mouse() *scene.Pointer {
	if d.mouse == nil {
		d.mouse = scene.NewMousePointer()
	}
	return d.mouse
}

// PDOMPointerID is the reserved id of the accessibility pointer.
const PDOMPointerID = -2

// PDOMPointer returns the singleton accessibility pointer, creating it on
// first use.
func (d *Dispatcher) PDOMPointer() *scene.Pointer {
	if d.pdom == nil {
		d.pdom = &scene.Pointer{ID: PDOMPointerID, Kind: events.PDOMPointer}
	}
	return d.pdom
}

// FindPointer returns the live transient pointer with the given id, or the
// mouse if its id matches, or nil.
func (d *Dispatcher) FindPointer(id int) *scene.Pointer {
	for _, p := range d.pointers {
		if p.ID == id {
			return p
		}
	}
	if d.mouse != nil && d.mouse.ID == id {
		return d.mouse
	}
	return nil
}

// LivePointers returns a copy of the transient pointer set.
func (d *Dispatcher) LivePointers() []*scene.Pointer { return slices.Clone(d.pointers) }

func (d *Dispatcher) removePointer(p *scene.Pointer) {
	if i := slices.Index(d.pointers, p); i >= 0 {
		d.pointers = slices.Delete(d.pointers, i, i+1)
	}
}

// Entry points. Each is one recordable action (see action.go); the
// exported method records and delegates to the unexported body that the
// replay path calls directly.

// MouseDown handles a mouse button press at the given global point.
func (d *Dispatcher) MouseDown(id int, point math32.Vector2, ctx *Context) {
	d.record(ActionMouseDown, pointerParams(id, point, ctx))
	d.mouseDown(id, point, ctx)
}

func (d *Dispatcher) mouseDown(id int, point math32.Vector2, ctx *Context) {
	m := d.Mouse()
	m.ID = id
	d.sharedDown(m, point, ctx)
}

// MouseUp handles a mouse button release.
func (d *Dispatcher) MouseUp(point math32.Vector2, ctx *Context) {
	d.record(ActionMouseUp, pointerParams(d.Mouse().ID, point, ctx))
	d.sharedUp(d.Mouse(), point, ctx, events.Up)
}

// MouseMove handles mouse movement. Move events are never deduplicated:
// a numerically identical point still dispatches.
func (d *Dispatcher) MouseMove(point math32.Vector2, ctx *Context) {
	d.record(ActionMouseMove, pointerParams(d.Mouse().ID, point, ctx))
	d.sharedMove(d.Mouse(), point, ctx)
}

// Wheel handles a scroll event, dispatched along the mouse's current
// trail. The trail is re-resolved at the event point first (scrolling can
// arrive without an intervening move), so the stored trail stays current.
func (d *Dispatcher) Wheel(point math32.Vector2, ctx *Context) {
	d.record(ActionWheel, pointerParams(d.Mouse().ID, point, ctx))
	m := d.Mouse()
	m.UpdatePoint(point)
	d.branchChange(m, ctx, d.root.HitTest(m.Point(), m.Kind), false)
	d.dispatchEvent(m.Trail(), events.Wheel, m, ctx, true, false)
}

// TouchStart handles a new touch contact, allocating a transient pointer.
func (d *Dispatcher) TouchStart(id int, point math32.Vector2, ctx *Context) {
	d.record(ActionTouchStart, pointerParams(id, point, ctx))
	d.touchStart(id, events.TouchPointer, point, ctx)
}

func (d *Dispatcher) touchStart(id int, kind events.PointerKind, point math32.Vector2, ctx *Context) {
	if existing := d.FindPointer(id); existing != nil && existing.IsTouchLike() {
		// Platform resent a start for a live contact; treat as a move.
		d.sharedMove(existing, point, ctx)
		return
	}
	p := scene.NewTouchPointer(id, kind, point)
	d.pointers = append(d.pointers, p)
	d.sharedDown(p, point, ctx)
}

// TouchMove handles movement of a live touch contact. Unknown ids are
// silently ignored (the contact may already have ended).
func (d *Dispatcher) TouchMove(id int, point math32.Vector2, ctx *Context) {
	d.record(ActionTouchMove, pointerParams(id, point, ctx))
	if p := d.FindPointer(id); p != nil && p.IsTouchLike() {
		d.sharedMove(p, point, ctx)
	}
}

// TouchEnd handles the lifting of a touch contact: after the up dispatch
// the pointer exits all content and leaves the live set.
func (d *Dispatcher) TouchEnd(id int, point math32.Vector2, ctx *Context) {
	d.record(ActionTouchEnd, pointerParams(id, point, ctx))
	if p := d.FindPointer(id); p != nil && p.IsTouchLike() {
		d.sharedUp(p, point, ctx, events.Up)
	}
}

// TouchCancel handles platform cancellation of a touch contact.
func (d *Dispatcher) TouchCancel(id int, point math32.Vector2, ctx *Context) {
	d.record(ActionTouchCancel, pointerParams(id, point, ctx))
	if p := d.FindPointer(id); p != nil && p.IsTouchLike() {
		d.sharedUp(p, point, ctx, events.Cancel)
	}
}

// PenStart, PenMove, PenEnd, and PenCancel handle pen contacts, which are
// transient like touch but hit-test with the touch area and carry the pen
// listener prefix.

func (d *Dispatcher) PenStart(id int, point math32.Vector2, ctx *Context) {
	d.record(ActionPenStart, pointerParams(id, point, ctx))
	d.touchStart(id, events.PenPointer, point, ctx)
}

func (d *Dispatcher) PenMove(id int, point math32.Vector2, ctx *Context) {
	d.record(ActionPenMove, pointerParams(id, point, ctx))
	if p := d.FindPointer(id); p != nil && p.IsTouchLike() {
		d.sharedMove(p, point, ctx)
	}
}

func (d *Dispatcher) PenEnd(id int, point math32.Vector2, ctx *Context) {
	d.record(ActionPenEnd, pointerParams(id, point, ctx))
	if p := d.FindPointer(id); p != nil && p.IsTouchLike() {
		d.sharedUp(p, point, ctx, events.Up)
	}
}

func (d *Dispatcher) PenCancel(id int, point math32.Vector2, ctx *Context) {
	d.record(ActionPenCancel, pointerParams(id, point, ctx))
	if p := d.FindPointer(id); p != nil && p.IsTouchLike() {
		d.sharedUp(p, point, ctx, events.Cancel)
	}
}

// Pointer-event entry points with a platform type string. An empty type is
// resolved by heuristic: the tracked mouse's id classifies as mouse,
// anything else as touch. An unknown non-empty type is an invariant
// violation on down; logged and dropped in production.

// PointerDown classifies and handles a unified pointer press.
func (d *Dispatcher) PointerDown(id int, typ string, point math32.Vector2, ctx *Context) {
	kind, ok := d.classify(id, typ)
	if !ok {
		scene.DevAssert(false, "PointerDown: unknown pointer type %q", typ)
		slog.Error("scenic/input: unknown pointer type on pointerdown; event dropped",
			"type", typ, "id", id)
		return
	}
	switch kind {
	case events.MousePointer:
		d.MouseDown(id, point, ctx)
	case events.PenPointer:
		d.PenStart(id, point, ctx)
	default:
		d.TouchStart(id, point, ctx)
	}
}

// PointerMove classifies and handles a unified pointer move.
func (d *Dispatcher) PointerMove(id int, typ string, point math32.Vector2, ctx *Context) {
	kind, ok := d.classify(id, typ)
	if !ok {
		slog.Warn("scenic/input: unknown pointer type on pointermove", "type", typ, "id", id)
		return
	}
	switch kind {
	case events.MousePointer:
		d.MouseMove(point, ctx)
	case events.PenPointer:
		d.PenMove(id, point, ctx)
	default:
		d.TouchMove(id, point, ctx)
	}
}

// PointerUp classifies and handles a unified pointer release.
func (d *Dispatcher) PointerUp(id int, typ string, point math32.Vector2, ctx *Context) {
	kind, ok := d.classify(id, typ)
	if !ok {
		slog.Warn("scenic/input: unknown pointer type on pointerup", "type", typ, "id", id)
		return
	}
	switch kind {
	case events.MousePointer:
		d.MouseUp(point, ctx)
	case events.PenPointer:
		d.PenEnd(id, point, ctx)
	default:
		d.TouchEnd(id, point, ctx)
	}
}

// PointerCancel classifies and handles a unified pointer cancellation.
// Cancel for a mouse is unexpected but recoverable: logged, then processed.
func (d *Dispatcher) PointerCancel(id int, typ string, point math32.Vector2, ctx *Context) {
	kind, ok := d.classify(id, typ)
	if !ok {
		slog.Warn("scenic/input: unknown pointer type on pointercancel", "type", typ, "id", id)
		return
	}
	switch kind {
	case events.MousePointer:
		slog.Warn("scenic/input: pointercancel received for mouse pointer", "id", id)
		d.record(ActionMouseUp, pointerParams(id, point, ctx))
		d.sharedUp(d.Mouse(), point, ctx, events.Cancel)
	case events.PenPointer:
		d.PenCancel(id, point, ctx)
	default:
		d.TouchCancel(id, point, ctx)
	}
}

func (d *Dispatcher) classify(id int, typ string) (events.PointerKind, bool) {
	if typ == "" {
		if d.mouse != nil && d.mouse.ID == id {
			return events.MousePointer, true
		}
		return events.TouchPointer, true
	}
	return events.ParsePointerKind(typ)
}

// KeyDown dispatches a keyboard press along the focused trail (the
// accessibility pointer's current trail). With no focus the event reaches
// only display and global listeners.
func (d *Dispatcher) KeyDown(ctx *Context) {
	d.record(ActionKeyDown, keyParams(ctx))
	d.dispatchEvent(d.focusedTrail(), events.KeyDown, d.pdom, ctx, true, false)
}

// KeyUp dispatches a keyboard release along the focused trail.
func (d *Dispatcher) KeyUp(ctx *Context) {
	d.record(ActionKeyUp, keyParams(ctx))
	d.dispatchEvent(d.focusedTrail(), events.KeyUp, d.pdom, ctx, true, false)
}

func (d *Dispatcher) focusedTrail() *scene.Trail {
	if d.pdom == nil {
		return nil
	}
	return d.pdom.Trail()
}

// PDOMEvent dispatches an accessibility-originated event along a trail
// supplied by the accessibility tree (no geometric hit-test). Click events
// arriving within the suppression window after a pointer up are dropped as
// likely duplicates from assistive-technology event synthesis.
func (d *Dispatcher) PDOMEvent(typ events.Type, trail *scene.Trail, ctx *Context) {
	d.record(ActionPDOMEvent, pdomParams(typ, ctx))
	if typ == events.Click && !d.lastUpTime.IsZero() &&
		time.Since(d.lastUpTime) < d.clickSuppression {
		slog.Debug("scenic/input: click suppressed as assistive-tech duplicate")
		return
	}
	p := d.PDOMPointer()
	p.SetTrail(trail)
	p.LastContext = ctx
	d.dispatchEvent(trail, typ, p, ctx, true, events.IsFocusType(typ))
}

// Shared pointer handlers:

func (d *Dispatcher) sharedDown(p *scene.Pointer, point math32.Vector2, ctx *Context) {
	p.UpdatePoint(point)
	trail := d.root.HitTest(p.Point(), p.Kind)
	d.branchChange(p, ctx, trail, false)
	p.SetDown(true)
	d.dispatchEvent(trail, events.Down, p, ctx, true, false)
}

func (d *Dispatcher) sharedMove(p *scene.Pointer, point math32.Vector2, ctx *Context) {
	p.UpdatePoint(point)
	trail := d.root.HitTest(p.Point(), p.Kind)
	d.branchChange(p, ctx, trail, true)
}

func (d *Dispatcher) sharedUp(p *scene.Pointer, point math32.Vector2, ctx *Context, typ events.Type) {
	p.UpdatePoint(point)
	trail := d.root.HitTest(p.Point(), p.Kind)
	d.branchChange(p, ctx, trail, false)
	p.SetDown(false)
	d.dispatchEvent(trail, typ, p, ctx, true, false)
	d.lastUpTime = time.Now()
	if p.IsTouchLike() {
		// Transient pointers have no hover-away: leaving the screen is
		// an exit from everything.
		d.branchChange(p, ctx, nil, false)
		d.removePointer(p)
	}
}

// branchChange performs the boundary dispatch for a pointer whose hit trail
// may have changed, then stores the new trail:
//
//  1. bubbling move along the new trail (moves only)
//  2. non-bubbling exit to each node lost, leaf-to-branch
//  3. bubbling out from the old leaf, if the leaf changed
//  4. bubbling over from the new leaf, if the leaf changed (before enters,
//     mirroring the exit/out pairing in reverse)
//  5. non-bubbling enter to each node gained, branch-to-leaf
//
// Boundary events target the input-enabled truncations of both trails, so
// disabling input on an ancestor behaves as if the subtree vanished.
func (d *Dispatcher) branchChange(p *scene.Pointer, ctx *Context, newTrail *scene.Trail, sendMove bool) {
	oldIE := p.InputEnabledTrail()
	newIE := newTrail.InputEnabledSub()

	if sendMove {
		d.dispatchEvent(newTrail, events.Move, p, ctx, true, false)
	}

	branch := oldIE.BranchIndex(newIE)
	leafChanged := oldIE.Leaf() != newIE.Leaf()

	for i := oldIE.Len() - 1; i >= branch; i-- {
		d.dispatchEvent(oldIE.Sub(i+1), events.Exit, p, ctx, false, false)
	}
	if leafChanged && oldIE.Len() > 0 {
		d.dispatchEvent(oldIE, events.Out, p, ctx, true, false)
	}
	if leafChanged && newIE.Len() > 0 {
		d.dispatchEvent(newIE, events.Over, p, ctx, true, false)
	}
	for i := branch; i < newIE.Len(); i++ {
		d.dispatchEvent(newIE.Sub(i+1), events.Enter, p, ctx, false, false)
	}

	p.SetTrail(newTrail)
	p.LastContext = ctx
}

// dispatchEvent constructs the event envelope and delivers it in the fixed
// phase order: pointer listeners, trail targets (leaf to root if bubbling,
// leaf only if not), display listeners, global listeners. The handle latch
// stops phase/target advancement after the current target's listeners run;
// the abort latch stops everything immediately.
func (d *Dispatcher) dispatchEvent(trail *scene.Trail, typ events.Type, p *scene.Pointer, ctx *Context, bubbles, fireEvenIfInputDisabled bool) *scene.Event {
	e := &scene.Event{Trail: trail, Type: typ, Pointer: p, Context: ctx}
	pk := events.MousePointer
	if p != nil {
		pk = p.Kind
	}

	if p != nil {
		fireListeners(p.Listeners(), e, pk, p != nil)
	}

	if !e.IsAborted() && !e.IsHandled() && trail != nil {
		cutoff := trail.InputEnabledLength()
		if fireEvenIfInputDisabled || events.IsFocusType(typ) {
			cutoff = trail.Len()
		}
		last := cutoff - 1
		first := cutoff - 1
		if bubbles {
			first = 0
		}
		for i := last; i >= first; i-- {
			target := trail.Node(i)
			if target == nil || target.IsDisposed() {
				continue
			}
			e.CurrentTarget = target
			fireListeners(target.InputListeners(), e, pk, p != nil)
			if e.IsAborted() || e.IsHandled() {
				break
			}
		}
		e.CurrentTarget = nil
	}

	if !e.IsAborted() && !e.IsHandled() {
		fireListeners(slices.Clone(d.listeners), e, pk, p != nil)
	}
	if !e.IsAborted() && !e.IsHandled() {
		fireListeners(slices.Clone(globalListeners), e, pk, p != nil)
	}
	return e
}

// fireListeners invokes one target's listeners in add-order. Each listener's
// pointer-kind-prefixed entry runs before its plain entry, with the abort
// latch checked between the two and between listeners; the handle latch does
// not stop listeners within the current target.
func fireListeners(ls []*scene.Listener, e *scene.Event, pk events.PointerKind, prefixed bool) {
	for _, l := range ls {
		if e.IsAborted() {
			return
		}
		if l == nil || l.On == nil {
			continue
		}
		if prefixed {
			if fn := l.On[events.Prefixed(pk, e.Type)]; fn != nil {
				fn(e)
				if e.IsAborted() {
					return
				}
			}
		}
		if fn := l.On[e.Type]; fn != nil {
			fn(e)
		}
	}
}
