// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegistryMetric defines the service registry instrumentation
type RegistryMetric struct {
	serviceCount metric.Int64Gauge
	spawnCount   metric.Int64Counter
}

// NewRegistryMetric creates an instance of RegistryMetric
func NewRegistryMetric(meter metric.Meter) (*RegistryMetric, error) {
	registryMetric := new(RegistryMetric)
	var err error

	if registryMetric.serviceCount, err = meter.Int64Gauge(
		"registry_service_count",
		metric.WithDescription("Number of services known to the registry"),
	); err != nil {
		return nil, fmt.Errorf("failed to create serviceCount instrument, %w", err)
	}

	if registryMetric.spawnCount, err = meter.Int64Counter(
		"registry_spawn_count",
		metric.WithDescription("Total number of service instances spawned, restarts included"),
	); err != nil {
		return nil, fmt.Errorf("failed to create spawnCount instrument, %w", err)
	}

	return registryMetric, nil
}

// ServiceCount returns the registered services gauge
func (x *RegistryMetric) ServiceCount() metric.Int64Gauge {
	return x.serviceCount
}

// SpawnCount returns the service spawn counter
func (x *RegistryMetric) SpawnCount() metric.Int64Counter {
	return x.spawnCount
}
