// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input converts raw platform events into typed logical events
// delivered in a precise order to scene listeners: the dispatcher tracks
// pointers, hit-tests trails, performs branch-change (enter/exit/over/out)
// dispatch, batches raw events, and wraps every entry point in a recordable
// action for record/replay.
package input

import (
	"log/slog"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// serializableProps is the fixed whitelist of raw platform event properties
// preserved by [Context.Serialize]. Everything else on the platform event is
// opaque and dropped.
var serializableProps = []string{
	"altKey", "button", "charCode", "clientX", "clientY", "code",
	"ctrlKey", "deltaMode", "deltaX", "deltaY", "deltaZ", "key",
	"keyCode", "metaKey", "pageX", "pageY", "pointerId", "pointerType",
	"relatedTarget", "shiftKey", "target", "type", "which",
}

// Context wraps the raw platform event that triggered a dispatch. The
// dispatcher treats the Raw map as opaque except for the serialization
// whitelist and the default-action machinery.
type Context struct {
	// Raw holds the platform event's properties.
	Raw map[string]any

	// Passive marks contexts whose platform registration forbids
	// default-action suppression; [Context.PreventDefault] is a no-op.
	Passive bool

	// FromAssistiveTech marks contexts synthesized by the accessibility
	// tree; default-action suppression is skipped for these.
	FromAssistiveTech bool

	preventDefault func()
	defaultStopped bool
}

// NewContext returns a context over the given raw platform properties.
// preventDefault, if non-nil, is invoked to suppress the platform's
// default action.
func NewContext(raw map[string]any, preventDefault func()) *Context {
	if raw == nil {
		raw = map[string]any{}
	}
	return &Context{Raw: raw, preventDefault: preventDefault}
}

// PreventDefault suppresses the platform's default action for this event.
// Skipped (with a debug log) for passive registrations and
// assistive-technology-originated input, where suppression is either
// forbidden or would break the assistive flow.
func (c *Context) PreventDefault() {
	if c == nil {
		return
	}
	if c.Passive || c.FromAssistiveTech {
		slog.Debug("scenic/input: preventDefault skipped",
			"passive", c.Passive, "assistive", c.FromAssistiveTech)
		return
	}
	c.defaultStopped = true
	if c.preventDefault != nil {
		c.preventDefault()
	}
}

// DefaultPrevented returns whether [Context.PreventDefault] took effect.
func (c *Context) DefaultPrevented() bool { return c != nil && c.defaultStopped }

// Serialize returns a JSON object holding the whitelisted properties of the
// raw platform event, for the record/replay collaborator.
func (c *Context) Serialize() string {
	out := "{}"
	if c == nil {
		return out
	}
	for _, k := range serializableProps {
		v, ok := c.Raw[k]
		if !ok {
			continue
		}
		var err error
		out, err = sjson.Set(out, k, v)
		if err != nil {
			slog.Warn("scenic/input: cannot serialize event property", "key", k, "err", err)
		}
	}
	return out
}

// DeserializeContext reconstructs a context from [Context.Serialize] output.
// The resulting context has no platform event behind it, so default-action
// suppression is recorded but has no external effect.
func DeserializeContext(data string) *Context {
	raw := map[string]any{}
	if gjson.Valid(data) {
		for k, v := range gjson.Parse(data).Map() {
			raw[k] = v.Value()
		}
	}
	return NewContext(raw, nil)
}
