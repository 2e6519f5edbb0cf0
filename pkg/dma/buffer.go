package dma

// ReadBuffer is the capability a buffer owner implements to be usable as a
// DMA read source.
//
// Implementations guarantee that the returned window references live memory
// for the full duration of any transfer using it, and that repeated calls
// with no intervening exclusive operation on the owner return the identical
// pair. Violating either guarantee is a caller bug, not a reportable error.
type ReadBuffer[W Word] interface {
	// ReadBuffer returns the start of the readable window and its length
	// in words.
	ReadBuffer() (*W, int)
}

// WriteBuffer is the capability a buffer owner implements to be usable as a
// DMA write destination.
//
// WriteBuffer is the one mutation permitted on the owner while a write
// transfer is outstanding. It may prepare backing state lazily, but it must
// not move the reported address across calls.
type WriteBuffer[W Word] interface {
	// WriteBuffer returns the start of the writable window and its length
	// in words.
	WriteBuffer() (*W, int)
}

// Pinned is the stable-address dereference contract: Deref must return the
// same address on every call on the same instance while no exclusive
// operation runs on it, and the payload must not be tied to a shorter
// lifetime than the owner itself.
type Pinned[T any] interface {
	Deref() *T
}

// PinnedMut extends Pinned with exclusive access to the same payload.
// DerefMut must report the address Deref reports.
type PinnedMut[T any] interface {
	Pinned[T]
	DerefMut() *T
}

// OwnerReadBuffer adapts any pinned owner into the read capability by
// projecting its dereferenced payload. This is how container types become
// DMA-usable without implementing ReadBuffer by hand: correctness rests
// entirely on the owner's stable-address guarantee and the word type's
// any-bit-pattern guarantee.
type OwnerReadBuffer[W Word, T any, B Pinned[T]] struct {
	owner B
}

// OwnedRead wraps owner for DMA reads. The word and target types are not
// inferable from the owner and must be supplied explicitly.
func OwnedRead[W Word, T any, B Pinned[T]](owner B) *OwnerReadBuffer[W, T, B] {
	return &OwnerReadBuffer[W, T, B]{owner: owner}
}

func (b *OwnerReadBuffer[W, T, B]) ReadBuffer() (*W, int) {
	return Project[W](b.owner.Deref())
}

// Inner returns the wrapped owner.
func (b *OwnerReadBuffer[W, T, B]) Inner() B {
	return b.owner
}

// OwnerWriteBuffer is the write-side counterpart of OwnerReadBuffer.
type OwnerWriteBuffer[W Word, T any, B PinnedMut[T]] struct {
	owner B
}

// OwnedWrite wraps owner for DMA writes.
func OwnedWrite[W Word, T any, B PinnedMut[T]](owner B) *OwnerWriteBuffer[W, T, B] {
	return &OwnerWriteBuffer[W, T, B]{owner: owner}
}

func (b *OwnerWriteBuffer[W, T, B]) WriteBuffer() (*W, int) {
	return Project[W](b.owner.DerefMut())
}

// Inner returns the wrapped owner.
func (b *OwnerWriteBuffer[W, T, B]) Inner() B {
	return b.owner
}

// UninitWriteBuffer is a write-only owner over uninitialized storage.
// It has no read capability: reading requires initialized data.
type UninitWriteBuffer[W Word, T any] struct {
	u *Uninit[T]
}

// WriteUninit wraps uninitialized storage as a write destination.
func WriteUninit[W Word, T any](u *Uninit[T]) *UninitWriteBuffer[W, T] {
	return &UninitWriteBuffer[W, T]{u: u}
}

func (b *UninitWriteBuffer[W, T]) WriteBuffer() (*W, int) {
	return ProjectUninit[W](b.u)
}

// Inner returns the wrapped storage; AssumeInit it once the transfer has
// completed.
func (b *UninitWriteBuffer[W, T]) Inner() *Uninit[T] {
	return b.u
}

// Buffer is a fixed-capacity heap owner of a word slice. It never
// reallocates its payload, so the backing address is stable for the
// owner's lifetime; it satisfies both capabilities.
type Buffer[W Word] struct {
	words []W
}

// NewBuffer allocates a zeroed buffer of n words.
func NewBuffer[W Word](n int) *Buffer[W] {
	return &Buffer[W]{words: make([]W, n)}
}

// WrapBuffer takes ownership of s. The caller must not grow or reslice s
// afterwards; doing so would break the stable-address guarantee.
func WrapBuffer[W Word](s []W) *Buffer[W] {
	return &Buffer[W]{words: s}
}

func (b *Buffer[W]) ReadBuffer() (*W, int) {
	return ProjectSlice(b.words)
}

func (b *Buffer[W]) WriteBuffer() (*W, int) {
	return ProjectSlice(b.words)
}

// Words exposes the payload. Inspect it only while no transfer is in
// flight.
func (b *Buffer[W]) Words() []W {
	return b.words
}

// Len reports the payload length in words.
func (b *Buffer[W]) Len() int {
	return len(b.words)
}
