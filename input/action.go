// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/scenic-ui/scenic/events"
	"github.com/scenic-ui/scenic/math32"
)

// Action names one recordable input operation. Every externally-observable
// dispatcher entry point is exactly one action taking plain-old-data
// parameters, so a recording of (action, params) pairs replays the full
// input stream without the original platform events.
type Action string

const (
	ActionMouseDown   Action = "mouseDown"
	ActionMouseUp     Action = "mouseUp"
	ActionMouseMove   Action = "mouseMove"
	ActionWheel       Action = "wheel"
	ActionTouchStart  Action = "touchStart"
	ActionTouchMove   Action = "touchMove"
	ActionTouchEnd    Action = "touchEnd"
	ActionTouchCancel Action = "touchCancel"
	ActionPenStart    Action = "penStart"
	ActionPenMove     Action = "penMove"
	ActionPenEnd      Action = "penEnd"
	ActionPenCancel   Action = "penCancel"
	ActionKeyDown     Action = "keyDown"
	ActionKeyUp       Action = "keyUp"
	ActionPDOMEvent   Action = "pdomEvent"
)

var highFrequencyActions = map[Action]bool{
	ActionMouseMove: true,
	ActionTouchMove: true,
	ActionPenMove:   true,
	ActionWheel:     true,
}

// HighFrequency reports whether this action fires at device sample rate;
// recorders commonly thin or gate these.
func (a Action) HighFrequency() bool { return highFrequencyActions[a] }

// Recorder intercepts every dispatcher action for serialization. The
// params argument is the JSON produced by the action's parameter encoder
// and accepted verbatim by [Dispatcher.Replay].
type Recorder interface {
	Record(action Action, paramsJSON string, highFrequency bool)
}

// SetRecorder installs (or with nil, removes) the action recorder.
func (d *Dispatcher) SetRecorder(r Recorder) { d.recorder = r }

func (d *Dispatcher) record(a Action, params string) {
	if d.recorder == nil || d.replaying {
		return
	}
	d.recorder.Record(a, params, a.HighFrequency())
}

func pointerParams(id int, point math32.Vector2, ctx *Context) string {
	out, _ := sjson.Set("{}", "id", id)
	out, _ = sjson.Set(out, "point.x", point.X)
	out, _ = sjson.Set(out, "point.y", point.Y)
	out, _ = sjson.SetRaw(out, "event", ctx.Serialize())
	return out
}

func keyParams(ctx *Context) string {
	out, _ := sjson.SetRaw("{}", "event", ctx.Serialize())
	return out
}

func pdomParams(typ events.Type, ctx *Context) string {
	out, _ := sjson.Set("{}", "type", string(typ))
	out, _ = sjson.SetRaw(out, "event", ctx.Serialize())
	return out
}

// Replay re-invokes the given action from its recorded parameters, without
// re-recording it. Replayed PDOM events carry no trail (the accessibility
// tree of the recording session is gone), so they reach only pointer,
// display, and global listeners.
func (d *Dispatcher) Replay(a Action, paramsJSON string) error {
	if !gjson.Valid(paramsJSON) {
		return fmt.Errorf("input: invalid action params for %q", a)
	}
	g := gjson.Parse(paramsJSON)
	id := int(g.Get("id").Int())
	point := math32.Vec2(float32(g.Get("point.x").Float()), float32(g.Get("point.y").Float()))
	ctx := DeserializeContext(g.Get("event").Raw)

	d.replaying = true
	defer func() { d.replaying = false }()

	switch a {
	case ActionMouseDown:
		d.MouseDown(id, point, ctx)
	case ActionMouseUp:
		d.MouseUp(point, ctx)
	case ActionMouseMove:
		d.MouseMove(point, ctx)
	case ActionWheel:
		d.Wheel(point, ctx)
	case ActionTouchStart:
		d.TouchStart(id, point, ctx)
	case ActionTouchMove:
		d.TouchMove(id, point, ctx)
	case ActionTouchEnd:
		d.TouchEnd(id, point, ctx)
	case ActionTouchCancel:
		d.TouchCancel(id, point, ctx)
	case ActionPenStart:
		d.PenStart(id, point, ctx)
	case ActionPenMove:
		d.PenMove(id, point, ctx)
	case ActionPenEnd:
		d.PenEnd(id, point, ctx)
	case ActionPenCancel:
		d.PenCancel(id, point, ctx)
	case ActionKeyDown:
		d.KeyDown(ctx)
	case ActionKeyUp:
		d.KeyUp(ctx)
	case ActionPDOMEvent:
		d.PDOMEvent(events.Type(g.Get("type").String()), nil, ctx)
	default:
		return fmt.Errorf("input: unknown action %q", a)
	}
	return nil
}
