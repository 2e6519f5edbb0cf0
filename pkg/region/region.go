// Package region provides a page-backed memory region that satisfies the
// DMA buffer capabilities.
//
// A Region is mapped outside the Go heap (on Linux; heap-backed elsewhere),
// so its address is stable for the region's whole lifetime and may be
// handed to hardware. Platform-specific mapping lives in internal/mem.
package region

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	internalmem "github.com/srediag/dma-buf/internal/mem"
	"github.com/srediag/dma-buf/pkg/dma"
)

// ErrNotEnoughMemory reports that the host lacks headroom for the requested
// region.
var ErrNotEnoughMemory = errors.New("region: not enough available memory")

// Options defines options for opening a region.
type Options struct {
	// Name identifies a /dev/shm backing file so the region can be shared
	// with another process. Empty maps the region anonymously.
	Name string
	// Size is the region size in bytes.
	Size int
	// Create indicates whether a named backing file may be created.
	Create bool

	Meter  metric.Meter
	Tracer trace.Tracer
}

// Region is a mapped memory region usable as a DMA source or destination.
type Region struct {
	mapping *internalmem.MappedRegion
	name    string
	closed  atomic.Bool

	tracer trace.Tracer
	opens  metric.Int64Counter
	closes metric.Int64Counter
}

// Open maps a region with the given options.
func Open(ctx context.Context, opts Options) (*Region, error) {
	if opts.Size <= 0 {
		return nil, errors.New("region: invalid size")
	}
	if opts.Tracer != nil {
		var span trace.Span
		ctx, span = opts.Tracer.Start(ctx, "region.Open")
		defer span.End()
	}
	if !internalmem.CanReserve(uint64(opts.Size)) {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotEnoughMemory, opts.Size)
	}
	mapping, err := internalmem.Map(internalmem.MapOptions{
		Name:   opts.Name,
		Size:   opts.Size,
		Create: opts.Create,
	})
	if err != nil {
		return nil, err
	}
	r := &Region{
		mapping: mapping,
		name:    opts.Name,
		tracer:  opts.Tracer,
	}
	if opts.Meter != nil {
		r.opens, _ = opts.Meter.Int64Counter("dma_region_opens_total")
		r.closes, _ = opts.Meter.Int64Counter("dma_region_closes_total")
	}
	if r.opens != nil {
		r.opens.Add(ctx, 1)
	}
	return r, nil
}

// ReadBuffer returns the region's full window.
func (r *Region) ReadBuffer() (*byte, int) {
	return dma.ProjectSlice(r.mapping.Addr)
}

// WriteBuffer returns the region's full window.
func (r *Region) WriteBuffer() (*byte, int) {
	return dma.ProjectSlice(r.mapping.Addr)
}

// Bytes exposes the mapped payload. Inspect it only while no transfer is in
// flight.
func (r *Region) Bytes() []byte {
	return r.mapping.Addr
}

// Len reports the region size in bytes.
func (r *Region) Len() int {
	return len(r.mapping.Addr)
}

// Name returns the backing identifier, empty for anonymous regions.
func (r *Region) Name() string {
	return r.name
}

// Close unmaps the region. The caller must have observed completion of
// every transfer targeting the region; unmapping mid-transfer frees the
// window under the hardware. Close is idempotent.
func (r *Region) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	if r.closes != nil {
		r.closes.Add(context.Background(), 1)
	}
	return internalmem.Unmap(r.mapping)
}

var (
	_ dma.ReadBuffer[byte]  = (*Region)(nil)
	_ dma.WriteBuffer[byte] = (*Region)(nil)
)
