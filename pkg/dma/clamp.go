package dma

// ClampedReadBuffer narrows a read owner to a sub-window without ever
// failing.
//
// Unlike ReadBufferSlice it stores the requested range unresolved: every
// capability query re-queries the owner for its current window and clamps
// the range to whatever length it reports. A request past the buffer
// silently collapses to a zero-length window at its edge instead of
// surfacing an error, and a change in the owner's length is tracked rather
// than frozen.
type ClampedReadBuffer[W Word, B ReadBuffer[W]] struct {
	r     Range
	inner B
}

// ClampRead narrows owner to r. Construction cannot fail; r is kept as
// given and clamped on every query.
func ClampRead[W Word, B ReadBuffer[W]](owner B, r Range) *ClampedReadBuffer[W, B] {
	return &ClampedReadBuffer[W, B]{r: r, inner: owner}
}

func (c *ClampedReadBuffer[W, B]) ReadBuffer() (*W, int) {
	base, n := c.inner.ReadBuffer()
	start, end := c.r.clamp(n)
	return wordAdd(base, start), end - start
}

// Inner returns the wrapped owner.
func (c *ClampedReadBuffer[W, B]) Inner() B {
	return c.inner
}

// ClampedWriteBuffer is the write-side counterpart of ClampedReadBuffer.
// Each capability query re-invokes the owner's write query; that re-query
// is the one mutation the write contract permits while a transfer is
// outstanding.
type ClampedWriteBuffer[W Word, B WriteBuffer[W]] struct {
	r     Range
	inner B
}

// ClampWrite narrows owner to r without validation.
func ClampWrite[W Word, B WriteBuffer[W]](owner B, r Range) *ClampedWriteBuffer[W, B] {
	return &ClampedWriteBuffer[W, B]{r: r, inner: owner}
}

func (c *ClampedWriteBuffer[W, B]) WriteBuffer() (*W, int) {
	base, n := c.inner.WriteBuffer()
	start, end := c.r.clamp(n)
	return wordAdd(base, start), end - start
}

// Inner returns the wrapped owner.
func (c *ClampedWriteBuffer[W, B]) Inner() B {
	return c.inner
}
