// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFO(t *testing.T) {
	q := &Queue[int]{}
	q.Init()

	_, ok := q.Next()
	assert.False(t, ok)

	for i := 0; i < 10; i++ {
		q.Send(i)
	}
	assert.Equal(t, uint64(10), q.Len())

	for i := 0; i < 10; i++ {
		v, ok := q.Next()
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok = q.Next()
	assert.False(t, ok)
	assert.Equal(t, uint64(0), q.Len())
}

func TestQueueConcurrent(t *testing.T) {
	q := &Queue[int]{}
	q.Init()

	const n = 1000
	var wg sync.WaitGroup
	for s := 0; s < 4; s++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				q.Send(i)
			}
		}()
	}
	wg.Wait()

	count := 0
	for {
		_, ok := q.Next()
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 4*n, count)
}

func TestParsePointerKind(t *testing.T) {
	pk, ok := ParsePointerKind("mouse")
	assert.True(t, ok)
	assert.Equal(t, MousePointer, pk)

	pk, ok = ParsePointerKind("pen")
	assert.True(t, ok)
	assert.Equal(t, PenPointer, pk)

	_, ok = ParsePointerKind("")
	assert.False(t, ok)

	_, ok = ParsePointerKind("gamepad")
	assert.False(t, ok)
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, Type("mouseup"), Prefixed(MousePointer, Up))
	assert.Equal(t, Type("touchdown"), Prefixed(TouchPointer, Down))
	assert.Equal(t, Type("pdomfocus"), Prefixed(PDOMPointer, Focus))
}
