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

package actor

import (
	"context"
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/messages/errors"
	imetric "github.com/tochemey/messages/internal/metric"
	"github.com/tochemey/messages/internal/validation"
	"github.com/tochemey/messages/log"
)

// Service is an actor reachable by name through a Registry.
// The name must be unique across all service types.
type Service interface {
	Actor
	// ServiceName returns the stable name the service is registered under.
	// It is called on the zero value of the service.
	ServiceName() string
}

// servicePtr lets the registry construct a fresh *T for a service type T
type servicePtr[T any] interface {
	*T
	Service
}

// registered is the part of an Address the registry needs without knowing its actor type
type registered interface {
	Connected() bool
	Stop()
	WaitForStop(ctx context.Context) error
	Release()
}

// RegistryOption configures a Registry.
type RegistryOption func(r *Registry)

// WithRegistryLogger sets the registry logger
func WithRegistryLogger(logger log.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithServiceOptions sets the options of the contexts services are spawned on
func WithServiceOptions(opts ...Option) RegistryOption {
	return func(r *Registry) {
		r.serviceOptions = opts
	}
}

// WithRegistryMetricProvider sets the otel MeterProvider used for the registry instruments
func WithRegistryMetricProvider(provider metric.MeterProvider) RegistryOption {
	return func(r *Registry) {
		r.meterProvider = provider
	}
}

// Registry maps service names to the addresses of singleton actors. A
// service is spawned on first lookup and spawned again when found stopped.
type Registry struct {
	mu             sync.Mutex
	services       map[string]registered
	logger         log.Logger
	serviceOptions []Option
	meterProvider  metric.MeterProvider
	metric         *imetric.RegistryMetric
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry()
})

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		services: make(map[string]registered),
		logger:   log.DefaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}

	registryMetric, err := imetric.NewRegistryMetric(imetric.NewProvider(r.meterProvider).Meter())
	if err != nil {
		r.logger.Warnf("registry metrics disabled: %v", err)
	}
	r.metric = registryMetric
	return r
}

// DefaultRegistry returns the process-wide Registry used by GetService.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// GetService returns an Address of the singleton T from the process-wide
// Registry, spawning it when it is not running.
//
//	addr, err := actor.GetService[Cache](ctx)
func GetService[T any, S servicePtr[T]](ctx context.Context) (*Address[S], error) {
	return Lookup[T, S](ctx, defaultRegistry())
}

// Lookup returns an Address of the singleton T held by r. A fresh T is
// spawned when the name is unknown or the stored service has stopped. The
// caller owns the returned handle. Two service types sharing a name is a
// programming error and panics.
func Lookup[T any, S servicePtr[T]](ctx context.Context, r *Registry) (*Address[S], error) {
	service := S(new(T))
	name := service.ServiceName()
	if err := validation.NewNameValidator(name, gerrors.NewErrInvalidServiceName(name)).Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, ok := r.services[name]; ok {
		addr, ok := stored.(*Address[S])
		if !ok {
			r.logger.Panicf("two or more services share the name %s: requested %T, stored %T", name, addr, stored)
		}
		if addr.Connected() {
			return addr.Clone(), nil
		}
		addr.Release()
		delete(r.services, name)
	}

	// the registry keeps the service running past the caller's context
	addr, err := Spawn(context.WithoutCancel(ctx), service, append([]Option{WithName(name)}, r.serviceOptions...)...)
	if err != nil {
		return nil, err
	}

	r.services[name] = addr
	r.logger.Infof("service %s spawned", name)
	if r.metric != nil {
		r.metric.SpawnCount().Add(ctx, 1)
		r.metric.ServiceCount().Record(ctx, int64(len(r.services)))
	}
	return addr.Clone(), nil
}

// Names returns the names of the services currently held by the registry.
func (r *Registry) Names() mapset.Set[string] {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := mapset.NewSetWithSize[string](len(r.services))
	for name := range r.services {
		names.Add(name)
	}
	return names
}

// StopAll stops every service concurrently and waits for them to be gone.
// A later lookup spawns the service again.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	services := r.services
	r.services = make(map[string]registered)
	r.mu.Unlock()

	var (
		mu   sync.Mutex
		errs error
		eg   errgroup.Group
	)
	for name, addr := range services {
		eg.Go(func() error {
			defer addr.Release()
			addr.Stop()
			if err := addr.WaitForStop(ctx); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("failed to stop service %s: %w", name, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()

	if r.metric != nil {
		r.metric.ServiceCount().Record(ctx, 0)
	}
	return errs
}
