// Package io provides small io.Writer/io.Reader helpers used by protocol
// and transport code.
package io

import "io"

// RingBuffer is a fixed-capacity io.Writer that keeps only the most
// recently written bytes, overwriting the oldest once full. It's used to
// retain a bounded snapshot of a response body while decoding it, so a
// decode failure can be diagnosed without buffering the whole body.
type RingBuffer struct {
	buf   []byte
	start int
	len   int
}

// NewRingBuffer wraps buf as ring storage. The capacity is len(buf); buf is
// used in place, not copied.
func NewRingBuffer(buf []byte) *RingBuffer {
	return &RingBuffer{buf: buf}
}

// Write implements io.Writer, always succeeding and overwriting the oldest
// bytes once the buffer is full.
func (r *RingBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if cap := len(r.buf); cap == 0 {
		return n, nil
	} else if len(p) > cap {
		p = p[len(p)-cap:]
	}

	for _, b := range p {
		end := (r.start + r.len) % len(r.buf)
		r.buf[end] = b
		if r.len < len(r.buf) {
			r.len++
		} else {
			r.start = (r.start + 1) % len(r.buf)
		}
	}
	return n, nil
}

// Read implements io.Reader, draining the buffer in write order (oldest
// first) and returning io.EOF once drained.
func (r *RingBuffer) Read(p []byte) (int, error) {
	if r.len == 0 {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) && r.len > 0 {
		p[n] = r.buf[r.start]
		r.start = (r.start + 1) % len(r.buf)
		r.len--
		n++
	}
	return n, nil
}

// Bytes returns a copy of the buffered bytes in write order without
// consuming them.
func (r *RingBuffer) Bytes() []byte {
	out := make([]byte, r.len)
	for i := 0; i < r.len; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}
