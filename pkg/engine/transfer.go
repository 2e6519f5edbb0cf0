/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package engine

import (
	"context"
	"sync/atomic"

	"github.com/srediag/dma-buf/pkg/dma"
)

// Transfer is the handle for one submitted transfer. It completes exactly
// once; afterwards Done reports true and Err carries the outcome.
type Transfer struct {
	id    string
	words int
	run   func() error

	// done closing publishes err: every read of err must be ordered after
	// observing the channel closed.
	done      chan struct{}
	completed atomic.Bool
	err       error
}

func newTransfer(id string, words int, run func() error) *Transfer {
	return &Transfer{
		id:    id,
		words: words,
		run:   run,
		done:  make(chan struct{}),
	}
}

// complete records the outcome and releases waiters. Second and later calls
// are ignored.
func (t *Transfer) complete(err error) {
	if !t.completed.CompareAndSwap(false, true) {
		return
	}
	t.err = err
	close(t.done)
}

// ID returns the transfer's identifier.
func (t *Transfer) ID() string {
	return t.id
}

// Words reports the transfer length in words.
func (t *Transfer) Words() int {
	return t.words
}

// Done reports whether the transfer has completed. It can be called in a
// polling loop for non-blocking use; once it reports true, Err is safe to
// read.
func (t *Transfer) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the transfer completes or ctx is cancelled. On
// cancellation the transfer itself keeps running; the buffers must still
// not be released until Done reports true.
func (t *Transfer) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the transfer outcome once Done reports true.
func (t *Transfer) Err() error {
	return t.err
}

// CopyTransfer binds a Transfer to the two owners it moves data between.
// The owners stay with the handle until Free, so they cannot be mutated or
// released while the transfer is in flight.
type CopyTransfer[W dma.Word, S dma.ReadBuffer[W], D dma.WriteBuffer[W]] struct {
	*Transfer
	src S
	dst D
}

// Free waits for completion and returns both owners to the caller. It is
// the only way to get the owners back, which makes releasing them
// mid-transfer a compile-visible mistake rather than a silent one.
func (t *CopyTransfer[W, S, D]) Free(ctx context.Context) (src S, dst D, err error) {
	err = t.Wait(ctx)
	return t.src, t.dst, err
}
