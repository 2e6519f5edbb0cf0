/*
 * Copyright 2025 SREDiag Authors
 * Copyright 2023 CloudWeGo Authors
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

// Package engine is a software transfer engine consuming the dma buffer
// capabilities. It stands in for a hardware DMA driver: it resolves
// capability windows once at submission, moves the bytes on a worker pool,
// and releases buffer ownership only after completion. Real hardware
// backends plug in through api.Controller.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	queuepkg "github.com/Workiva/go-datastructures/queue"
	"github.com/cenkalti/backoff/v4"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/dma-buf/api"
)

var (
	// ErrEngineClosed reports a submission to a closed engine.
	ErrEngineClosed = errors.New("engine: closed")
	// ErrBackendRejected reports a transfer the backend cannot accept.
	ErrBackendRejected = errors.New("engine: backend rejected transfer")
)

// closeDrainInterval paces the in-flight drain poll during Close.
const closeDrainInterval = 10 * time.Millisecond

// Engine dispatches submitted transfers from a pending queue onto a worker
// pool and tracks them until completion.
type Engine struct {
	cfg     *Config
	backend api.Controller

	pending  *queuepkg.Queue
	workers  *ants.Pool
	inflight cmap.ConcurrentMap[string, *Transfer]
	wg       sync.WaitGroup
	closed   atomic.Bool

	submitted   prometheus.Counter
	completed   prometheus.Counter
	failed      prometheus.Counter
	wordsCopied prometheus.Counter

	transfers metric.Int64Counter
	tracer    trace.Tracer
}

// New creates and starts an engine. A nil cfg selects DefaultConfig.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := VerifyConfig(cfg); err != nil {
		return nil, err
	}
	workers, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		backend:  cfg.Backend,
		pending:  queuepkg.New(int64(cfg.QueueDepth)),
		workers:  workers,
		inflight: cmap.New[*Transfer](),
		tracer:   cfg.Tracer,
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dma_transfers_submitted_total",
			Help: "Total number of submitted transfers.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dma_transfers_completed_total",
			Help: "Total number of completed transfers.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dma_transfers_failed_total",
			Help: "Total number of failed transfers.",
		}),
		wordsCopied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dma_words_copied_total",
			Help: "Total number of words moved by completed transfers.",
		}),
	}
	if e.backend == nil {
		e.backend = memmoveController{}
	}
	if cfg.Registerer != nil {
		cfg.Registerer.MustRegister(e.submitted, e.completed, e.failed, e.wordsCopied)
	}
	if cfg.Meter != nil {
		e.transfers, _ = cfg.Meter.Int64Counter("dma_transfers")
	}
	e.wg.Add(1)
	go e.dispatch()
	return e, nil
}

// dispatch drains the pending queue onto the worker pool until the queue is
// disposed.
func (e *Engine) dispatch() {
	defer e.wg.Done()
	for {
		items, err := e.pending.Get(1)
		if err != nil {
			return
		}
		for _, item := range items {
			t := item.(*Transfer)
			if err := e.workers.Submit(func() { e.execute(t) }); err != nil {
				e.finish(t, err)
			}
		}
	}
}

func (e *Engine) execute(t *Transfer) {
	e.finish(t, t.run())
}

func (e *Engine) finish(t *Transfer, err error) {
	e.inflight.Remove(t.id)
	if err != nil {
		e.failed.Inc()
		internalLogger.warnf("transfer %s failed: %v", t.id, err)
	} else {
		e.completed.Inc()
		e.wordsCopied.Add(float64(t.words))
		internalLogger.debugf("transfer %s completed, words=%d", t.id, t.words)
	}
	t.complete(err)
}

// enqueue registers t as in flight and hands it to the dispatcher.
func (e *Engine) enqueue(ctx context.Context, t *Transfer) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	e.inflight.Set(t.id, t)
	e.submitted.Inc()
	if e.transfers != nil {
		e.transfers.Add(ctx, 1)
	}
	if err := e.pending.Put(t); err != nil {
		e.inflight.Remove(t.id)
		return fmt.Errorf("%w: %v", ErrEngineClosed, err)
	}
	return nil
}

// InFlight reports the number of transfers submitted but not yet completed.
func (e *Engine) InFlight() int {
	return e.inflight.Count()
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	return e.closed.Load()
}

// Close rejects further submissions, waits for in-flight transfers to
// drain, and releases the worker pool. It is idempotent.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	drain := func() error {
		if n := e.inflight.Count(); n > 0 {
			return fmt.Errorf("engine: %d transfers still in flight", n)
		}
		return nil
	}
	err := backoff.Retry(drain, backoff.WithMaxRetries(backoff.NewConstantBackOff(closeDrainInterval), 500))
	e.pending.Dispose()
	e.wg.Wait()
	e.workers.Release()
	if err != nil {
		internalLogger.errorf("engine closed with transfers in flight: %v", err)
		if debugMode {
			e.dumpInFlight()
		}
	}
	return err
}

// dumpInFlight logs the transfers still registered, one line each. Close
// calls it in debug mode when the drain times out.
func (e *Engine) dumpInFlight() {
	for _, id := range e.inflight.Keys() {
		internalLogger.errorf("stuck transfer: %s", id)
	}
}

// memmoveController is the default in-process backend: an overlap-safe copy
// standing in for a hardware controller.
type memmoveController struct{}

func (memmoveController) CanAccess(bytes int) bool {
	return bytes >= 0
}

func (memmoveController) Transfer(dst, src unsafe.Pointer, words int, wordSize uintptr) error {
	n := words * int(wordSize)
	if n == 0 {
		return nil
	}
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
	return nil
}

var _ api.Controller = memmoveController{}
