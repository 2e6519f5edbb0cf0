package adapter

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/dma-buf/pkg/engine"
	"github.com/srediag/dma-buf/pkg/region"
)

// Telemetry bundles the OpenTelemetry instruments injected into dma-buf
// components.
type Telemetry struct {
	Meter  metric.Meter
	Tracer trace.Tracer
}

// ApplyEngine wires the instruments into an engine configuration.
func (t Telemetry) ApplyEngine(cfg *engine.Config) {
	cfg.Meter = t.Meter
	cfg.Tracer = t.Tracer
}

// ApplyRegion wires the instruments into region open options.
func (t Telemetry) ApplyRegion(opts *region.Options) {
	opts.Meter = t.Meter
	opts.Tracer = t.Tracer
}
