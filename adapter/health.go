// Package adapter provides glue between dma-buf components and external
// monitoring systems.
package adapter

import (
	"fmt"

	"github.com/heptiolabs/healthcheck"

	"github.com/srediag/dma-buf/pkg/engine"
)

// NewHealthHandler exposes engine liveness and readiness as an HTTP
// handler. Liveness fails once the engine is closed; readiness fails while
// more than maxInFlight transfers are outstanding.
func NewHealthHandler(e *engine.Engine, maxInFlight int) healthcheck.Handler {
	h := healthcheck.NewHandler()
	h.AddLivenessCheck("engine-open", func() error {
		if e.Closed() {
			return fmt.Errorf("engine closed")
		}
		return nil
	})
	h.AddReadinessCheck("inflight-below-limit", func() error {
		if n := e.InFlight(); n > maxInFlight {
			return fmt.Errorf("%d transfers in flight, limit %d", n, maxInFlight)
		}
		return nil
	})
	return h
}
