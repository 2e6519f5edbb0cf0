package dma

import "unsafe"

// Project reinterprets the memory of *v as a window of words.
//
// The pointer is the address of *v and the length is the total byte size of
// T divided by the byte width of W. With T = W this projects a single
// scalar (length 1); with T = [N]W it projects the whole array (length N).
// Byte sizes that do not divide evenly truncate toward zero, leaving the
// trailing remainder outside the window.
func Project[W Word, T any](v *T) (*W, int) {
	n := int(unsafe.Sizeof(*v) / SizeOf[W]())
	return (*W)(unsafe.Pointer(v)), n
}

// ProjectSlice projects the backing array of s: the pointer is the address
// of the first element and the length is the element count. The window does
// not cover the slice's spare capacity.
func ProjectSlice[W Word](s []W) (*W, int) {
	return unsafe.SliceData(s), len(s)
}

// Uninit wraps storage whose contents are not yet meaningful. It exists so
// a write transfer can target memory that only becomes initialized when the
// transfer completes; there is deliberately no read projection for it.
type Uninit[T any] struct {
	value T
}

// NewUninit returns uninitialized storage for a T.
func NewUninit[T any]() *Uninit[T] {
	return &Uninit[T]{}
}

// AssumeInit returns the payload. Call it only after a completed write
// transfer (or other initialization) has filled the storage.
func (u *Uninit[T]) AssumeInit() *T {
	return &u.value
}

// ProjectUninit is the write-only projection of uninitialized storage,
// equivalent to Project over the wrapped value.
func ProjectUninit[W Word, T any](u *Uninit[T]) (*W, int) {
	return Project[W](&u.value)
}
