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
	"fmt"
	"unsafe"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/dma-buf/pkg/dma"
)

// Copy submits a transfer moving min(len(src), len(dst)) words from src to
// dst. Both capability queries run exactly once, here; the returned handle
// holds both owners until Free. The word type must be supplied explicitly.
func Copy[W dma.Word, S dma.ReadBuffer[W], D dma.WriteBuffer[W]](ctx context.Context, e *Engine, src S, dst D) (*CopyTransfer[W, S, D], error) {
	if e.tracer != nil {
		var span trace.Span
		ctx, span = e.tracer.Start(ctx, "engine.Copy")
		defer span.End()
	}
	sptr, sn := src.ReadBuffer()
	dptr, dn := dst.WriteBuffer()
	words := min(sn, dn)
	wordSize := dma.SizeOf[W]()
	if !e.backend.CanAccess(words * int(wordSize)) {
		return nil, fmt.Errorf("%w: %d words of %d bytes", ErrBackendRejected, words, wordSize)
	}

	s, d := unsafe.Pointer(sptr), unsafe.Pointer(dptr)
	t := newTransfer(uuid.NewString(), words, func() error {
		return e.backend.Transfer(d, s, words, wordSize)
	})
	if err := e.enqueue(ctx, t); err != nil {
		return nil, err
	}
	return &CopyTransfer[W, S, D]{Transfer: t, src: src, dst: dst}, nil
}
