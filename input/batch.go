// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

// Enqueue hands a raw event callback to the dispatcher from any goroutine
// (platform input threads deliver here). Enqueued callbacks join the batch
// at the start of the next [Dispatcher.FlushEvents] on the event-loop
// goroutine.
func (d *Dispatcher) Enqueue(fn func()) {
	if fn == nil {
		return
	}
	d.intake.Send(fn)
}

// BatchEvent queues a raw event callback for the next flush. When batching
// is disabled, or when triggerImmediate is set (the platform requires
// synchronous handling, e.g. a user-gesture-gated action), pending events
// are flushed and the callback runs now, preserving received order.
func (d *Dispatcher) BatchEvent(fn func(), triggerImmediate bool) {
	if fn == nil {
		return
	}
	if !d.BatchEnabled || triggerImmediate {
		d.FlushEvents()
		fn()
		return
	}
	d.batched = append(d.batched, fn)
}

// FlushEvents runs all batched event callbacks in received order. A handler
// may batch further events mid-flush; the loop re-reads the live length
// every iteration so those run in this same flush. A nested flush call from
// a handler is absorbed by the re-entrancy guard.
func (d *Dispatcher) FlushEvents() {
	if d.flushing {
		return
	}
	d.flushing = true
	defer func() { d.flushing = false }()

	for {
		fn, ok := d.intake.Next()
		if !ok {
			break
		}
		d.batched = append(d.batched, fn)
	}

	for i := 0; i < len(d.batched); i++ {
		d.batched[i]()
	}
	d.batched = d.batched[:0]
}
