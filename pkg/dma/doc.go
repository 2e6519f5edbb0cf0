// Package dma defines the safety contracts that let DMA engines read from
// and write to memory owned by Go code.
//
// The package is contract-only: it performs no transfers and owns no
// hardware. A buffer owner advertises a (pointer, length) window through
// ReadBuffer or WriteBuffer; a driver programs hardware with that window and
// must keep the owner alive and unmutated until the hardware acknowledges
// completion. The guarantees are preconditions, not runtime checks:
//
//   - ReadBuffer must return the same window on every call while no
//     exclusive operation runs on the owner.
//   - WriteBuffer is the only mutation permitted on the owner while a write
//     transfer is outstanding, and it must not move the reported address.
//   - The window must reference live memory for the full duration of any
//     in-flight transfer. Freeing the owner mid-transfer is a caller bug
//     this package cannot detect.
//
// Word types are restricted to fixed-width integers so that whatever bytes
// hardware deposits, the result is a valid value.
//
// The slice adaptors narrow an owner's window for a single transfer without
// forfeiting the original: ReadBufferSlice/WriteBufferSlice validate the
// range once and freeze it, the Clamped variants re-query and saturate on
// every call, and both hand the untouched owner back through Inner.
package dma
