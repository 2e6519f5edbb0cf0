package dma

import (
	"errors"
	"fmt"
)

// ErrRangeOutOfBounds reports a slice request that is inverted or reaches
// past the owner's window.
var ErrRangeOutOfBounds = errors.New("dma: range out of bounds")

// ReadBufferSlice narrows a read owner to a sub-window.
//
// The range is resolved against the owner exactly once, at construction;
// afterwards every capability query returns the frozen (pointer, length)
// without re-querying the owner. Inner dissolves the slice and hands the
// original owner back in full, so narrowing a buffer for one transfer never
// forfeits the whole allocation.
type ReadBufferSlice[W Word, B ReadBuffer[W]] struct {
	ptr   *W
	n     int
	inner B
}

// SliceRead narrows owner to r. It queries the owner once, resolves r
// against the reported length and fails with ErrRangeOutOfBounds when the
// request is inverted or reaches past it; on failure the owner is left
// untouched and remains with the caller. The word type must be supplied
// explicitly.
func SliceRead[W Word, B ReadBuffer[W]](owner B, r Range) (*ReadBufferSlice[W, B], error) {
	base, n := owner.ReadBuffer()
	start, end, ok := r.resolve(n)
	if !ok {
		return nil, fmt.Errorf("%w: slicing read window of %d words", ErrRangeOutOfBounds, n)
	}
	return &ReadBufferSlice[W, B]{
		ptr:   wordAdd(base, start),
		n:     end - start,
		inner: owner,
	}, nil
}

// ReadBuffer returns the frozen window captured at construction.
func (s *ReadBufferSlice[W, B]) ReadBuffer() (*W, int) {
	return s.ptr, s.n
}

// Inner dissolves the slice and returns the original owner, unsliced.
func (s *ReadBufferSlice[W, B]) Inner() B {
	return s.inner
}

// WriteBufferSlice is the write-side counterpart of ReadBufferSlice. The
// owner's write query runs exactly once, at construction; later capability
// queries return the captured mutable window directly.
type WriteBufferSlice[W Word, B WriteBuffer[W]] struct {
	ptr   *W
	n     int
	inner B
}

// SliceWrite narrows owner to r, following the same construction discipline
// as SliceRead.
func SliceWrite[W Word, B WriteBuffer[W]](owner B, r Range) (*WriteBufferSlice[W, B], error) {
	base, n := owner.WriteBuffer()
	start, end, ok := r.resolve(n)
	if !ok {
		return nil, fmt.Errorf("%w: slicing write window of %d words", ErrRangeOutOfBounds, n)
	}
	return &WriteBufferSlice[W, B]{
		ptr:   wordAdd(base, start),
		n:     end - start,
		inner: owner,
	}, nil
}

// WriteBuffer returns the frozen window captured at construction.
func (s *WriteBufferSlice[W, B]) WriteBuffer() (*W, int) {
	return s.ptr, s.n
}

// Inner dissolves the slice and returns the original owner, unsliced.
func (s *WriteBufferSlice[W, B]) Inner() B {
	return s.inner
}
