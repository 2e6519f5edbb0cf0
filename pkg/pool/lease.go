// Package pool provides reusable buffer owners for transfer-heavy callers:
// pooled leases over recycled byte buffers and a size-class arena carving
// blocks out of one backing allocation.
package pool

import (
	"github.com/valyala/bytebufferpool"

	"github.com/srediag/dma-buf/pkg/dma"
)

// Lease is a pooled byte-buffer owner. The payload is sized exactly once,
// at acquisition, and never grown afterwards, so its address stays put for
// the whole lease and both capabilities are safe to hand to a transfer.
//
// Only the []byte payloads are pooled, not the Lease headers.
type Lease struct {
	bb *bytebufferpool.ByteBuffer
}

// Acquire leases a buffer of n bytes from the pool. The payload is zeroed.
func Acquire(n int) *Lease {
	bb := bytebufferpool.Get()
	if cap(bb.B) < n {
		bb.B = make([]byte, n)
	}
	bb.B = bb.B[:n]
	for i := range bb.B {
		bb.B[i] = 0
	}
	return &Lease{bb: bb}
}

// ReadBuffer returns the lease's full window.
func (l *Lease) ReadBuffer() (*byte, int) {
	return dma.ProjectSlice(l.bb.B)
}

// WriteBuffer returns the lease's full window.
func (l *Lease) WriteBuffer() (*byte, int) {
	return dma.ProjectSlice(l.bb.B)
}

// Bytes exposes the payload. Do not append to it; growth would move the
// address out from under an in-flight transfer.
func (l *Lease) Bytes() []byte {
	return l.bb.B
}

// Len reports the payload length in bytes.
func (l *Lease) Len() int {
	return len(l.bb.B)
}

// Release returns the payload to the pool. The caller must have observed
// completion of every transfer using the lease; the window is dead after
// this call.
func (l *Lease) Release() {
	if l.bb == nil {
		return
	}
	bytebufferpool.Put(l.bb)
	l.bb = nil
}

var (
	_ dma.ReadBuffer[byte]  = (*Lease)(nil)
	_ dma.WriteBuffer[byte] = (*Lease)(nil)
)
