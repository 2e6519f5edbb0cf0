// Package api defines the contracts between the transfer engine and the
// driver backends that move bytes.
package api

import "unsafe"

// Controller is the interface a DMA backend implements. The engine resolves
// capability windows to raw endpoints and hands them here; the backend must
// not retain either pointer past the call.
//
// A software backend copies in place; a hardware backend programs the
// controller with the two addresses and a byte count of words*wordSize and
// returns only after the hardware acknowledges completion.
type Controller interface {
	// CanAccess reports whether the backend accepts a transfer of the
	// given byte count.
	CanAccess(bytes int) bool
	// Transfer moves words*wordSize bytes from src to dst. Overlapping
	// windows must behave like memmove.
	Transfer(dst, src unsafe.Pointer, words int, wordSize uintptr) error
}
