// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "slices"

// Emitter is a multi-subscriber notification channel for one kind of value.
// Reactive layers subscribe to the structural emitters on [Node]
// (child/parent added/removed, rooted changes, disposal) to stay correctly
// invalidated; the bounds and hit-test engines are synchronously
// authoritative at the moment an emitter fires.
//
// Emitter is not safe for concurrent use; like the rest of scenic it assumes
// a single event-loop goroutine. The subscriber list is defensively copied
// before iteration, so subscribers may add or remove subscriptions (including
// their own) from within a callback.
type Emitter[T any] struct {
	nextID uint64
	subs   []emitterSub[T]
}

type emitterSub[T any] struct {
	id uint64
	fn func(T)
}

// Listen subscribes the given function and returns a subscription id
// for [Emitter.Remove].
func (e *Emitter[T]) Listen(fn func(T)) uint64 {
	e.nextID++
	e.subs = append(e.subs, emitterSub[T]{id: e.nextID, fn: fn})
	return e.nextID
}

// Remove unsubscribes the subscription with the given id.
// Removing an id that is not subscribed is a no-op.
func (e *Emitter[T]) Remove(id uint64) {
	for i, s := range e.subs {
		if s.id == id {
			e.subs = slices.Delete(e.subs, i, i+1)
			return
		}
	}
}

// HasListeners returns whether any subscriptions are active.
func (e *Emitter[T]) HasListeners() bool {
	return len(e.subs) > 0
}

// Emit calls all subscribed functions with the given value, in
// subscription order.
func (e *Emitter[T]) Emit(v T) {
	if len(e.subs) == 0 {
		return
	}
	subs := slices.Clone(e.subs)
	for _, s := range subs {
		s.fn(v)
	}
}
