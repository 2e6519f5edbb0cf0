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
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/dma-buf/api"
)

// Config holds engine creation parameters.
type Config struct {
	// Workers is the copy worker pool size.
	Workers int
	// QueueDepth caps descriptors queued ahead of dispatch.
	QueueDepth int
	// Backend performs the transfers. Nil selects the in-process memmove
	// backend.
	Backend api.Controller
	// Registerer receives the engine's prometheus collectors. Nil skips
	// registration; the counters still work unregistered.
	Registerer prometheus.Registerer
	// Meter and Tracer enable OpenTelemetry instrumentation when non-nil.
	Meter  metric.Meter
	Tracer trace.Tracer
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Workers:    4,
		QueueDepth: 1024,
	}
}

// VerifyConfig checks cfg for values the engine cannot run with.
func VerifyConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.QueueDepth < 1 {
		return fmt.Errorf("queue depth must be at least 1, got %d", cfg.QueueDepth)
	}
	return nil
}
