// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides typed wrappers around [sync.Pool].
package pool

import (
	"bytes"
	"sync"
)

// Pool is a typed [sync.Pool]. Values returned to it are passed through reset first.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New returns a Pool allocating with fn. A nil reset leaves returned values unchanged.
func New[T any](fn func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		pool:  sync.Pool{New: func() any { return fn() }},
		reset: reset,
	}
}

// Get takes a value from the pool.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put hands x back to the pool.
func (p *Pool[T]) Put(x T) {
	if p.reset != nil {
		p.reset(x)
	}
	p.pool.Put(x)
}

// maxBuffer bounds the capacity of buffers kept by [Buffer].
const maxBuffer = 1 << 20

// Buffer pools stream reassembly buffers. Buffers grown past 1MiB are dropped.
var Buffer = &bufferPool{New(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)}

type bufferPool struct{ *Pool[*bytes.Buffer] }

func (p *bufferPool) Put(b *bytes.Buffer) {
	if b.Cap() > maxBuffer {
		return
	}
	p.Pool.Put(b)
}
