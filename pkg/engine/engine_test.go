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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srediag/dma-buf/pkg/dma"
)

// counterValue extracts a Counter's value for assertions.
func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	_ = c.Write(m)
	return m.GetCounter().GetValue()
}

func TestCopyTransfer(t *testing.T) {
	ctx := context.Background()
	e, err := New(nil)
	require.NoError(t, err)
	defer func() { _ = e.Close() }()

	src := dma.WrapBuffer([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	dst := dma.NewBuffer[byte](8)

	tr, err := Copy[byte](ctx, e, src, dst)
	require.NoError(t, err)
	assert.Equal(t, 8, tr.Words())
	assert.NotEmpty(t, tr.ID())

	gotSrc, gotDst, err := tr.Free(ctx)
	require.NoError(t, err)
	assert.Same(t, src, gotSrc)
	assert.Same(t, dst, gotDst)
	assert.Equal(t, src.Words(), dst.Words())
	assert.True(t, tr.Done())
}

func TestCopyShorterDestination(t *testing.T) {
	ctx := context.Background()
	e, err := New(nil)
	require.NoError(t, err)
	defer func() { _ = e.Close() }()

	src := dma.WrapBuffer([]uint32{10, 20, 30, 40})
	dst := dma.NewBuffer[uint32](2)

	tr, err := Copy[uint32](ctx, e, src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Words())

	_, _, err = tr.Free(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint32{10, 20}, dst.Words())
}

func TestCopyIntoUninit(t *testing.T) {
	ctx := context.Background()
	e, err := New(nil)
	require.NoError(t, err)
	defer func() { _ = e.Close() }()

	src := dma.WrapBuffer([]uint8{0xA, 0xB, 0xC, 0xD})
	u := dma.NewUninit[[4]uint8]()
	dst := dma.WriteUninit[uint8](u)

	tr, err := Copy[uint8](ctx, e, src, dst)
	require.NoError(t, err)
	_, _, err = tr.Free(ctx)
	require.NoError(t, err)

	got := u.AssumeInit()
	assert.Equal(t, [4]uint8{0xA, 0xB, 0xC, 0xD}, *got)
}

func TestCopyThroughSliceAdaptors(t *testing.T) {
	ctx := context.Background()
	e, err := New(nil)
	require.NoError(t, err)
	defer func() { _ = e.Close() }()

	src := dma.WrapBuffer([]byte("0123456789"))
	dst := dma.NewBuffer[byte](128)

	window, err := dma.SliceWrite[byte](dst, dma.Span(8, 18))
	require.NoError(t, err)

	tr, err := Copy[byte](ctx, e, src, window)
	require.NoError(t, err)
	_, window, err = tr.Free(ctx)
	require.NoError(t, err)

	recovered := window.Inner()
	assert.Equal(t, 128, recovered.Len())
	assert.Equal(t, []byte("0123456789"), recovered.Words()[8:18])
}

func TestSubmitAfterClose(t *testing.T) {
	ctx := context.Background()
	e, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, e.Close())

	src := dma.NewBuffer[byte](4)
	dst := dma.NewBuffer[byte](4)
	_, err = Copy[byte](ctx, e, src, dst)
	assert.ErrorIs(t, err, ErrEngineClosed)
	assert.True(t, e.Closed())

	// Close is idempotent.
	assert.NoError(t, e.Close())
}

func TestEngineMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	cfg := DefaultConfig()
	cfg.Registerer = reg
	e, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = e.Close() }()

	src := dma.WrapBuffer(make([]byte, 64))
	dst := dma.NewBuffer[byte](64)
	tr, err := Copy[byte](ctx, e, src, dst)
	require.NoError(t, err)
	_, _, err = tr.Free(ctx)
	require.NoError(t, err)

	assert.Equal(t, float64(1), counterValue(e.submitted))
	assert.Equal(t, float64(1), counterValue(e.completed))
	assert.Equal(t, float64(0), counterValue(e.failed))
	assert.Equal(t, float64(64), counterValue(e.wordsCopied))
	assert.Equal(t, 0, e.InFlight())
}
