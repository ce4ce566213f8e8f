// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "fmt"

// Debug enables development-time invariant checks throughout scenic.
// When enabled, misuse of the API (cycle-creating inserts, operating on
// disposed nodes, malformed trails) panics with a descriptive message
// instead of silently corrupting state. Production builds leave it off;
// data-dependent conditions never panic regardless of this flag.
var Debug = false

// DevAssert panics if cond is false and [Debug] is enabled. Sibling
// packages share this invariant-check policy.
func DevAssert(cond bool, format string, args ...any) {
	if Debug && !cond {
		panic("scenic: " + fmt.Sprintf(format, args...))
	}
}

func devAssert(cond bool, format string, args ...any) {
	DevAssert(cond, format, args...)
}
