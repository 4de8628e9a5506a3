// File: control/metrics.go
// Prometheus instrumentation for buffer factories.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package control exposes factory accounting as Prometheus metrics. Two
// pieces: a Collector that samples a factory's gauges on scrape, and a
// decorator that counts allocation and recycle traffic flowing through a
// factory.
package control

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buffer"
)

// FactoryCollector samples a factory's accounting on every scrape. The
// pool label distinguishes factories sharing one registry.
type FactoryCollector struct {
	factory   api.BufferFactory
	used      *prometheus.Desc
	capacity  *prometheus.Desc
	available *prometheus.Desc
}

// NewFactoryCollector builds a collector for f labeled with the pool name.
func NewFactoryCollector(pool string, f api.BufferFactory) *FactoryCollector {
	labels := prometheus.Labels{"pool": pool}
	return &FactoryCollector{
		factory: f,
		used: prometheus.NewDesc(
			"hioload_buf_used_bytes",
			"Bytes of cached buffer memory currently held by the pool.",
			nil, labels,
		),
		capacity: prometheus.NewDesc(
			"hioload_buf_capacity_bytes",
			"Configured cache memory ceiling of the pool.",
			nil, labels,
		),
		available: prometheus.NewDesc(
			"hioload_buf_available_bytes",
			"Cache memory the pool can still absorb before refusing buffers.",
			nil, labels,
		),
	}
}

func (c *FactoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.used
	ch <- c.capacity
	ch <- c.available
}

func (c *FactoryCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.used, prometheus.GaugeValue, float64(c.factory.Size()))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.factory.Capacity()))
	ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, float64(c.factory.Available()))
}

// InstrumentedFactory decorates a factory with traffic counters. It embeds
// the wrapped factory, so everything not counted passes straight through.
type InstrumentedFactory struct {
	api.BufferFactory

	allocations prometheus.Counter
	failures    prometheus.Counter
	recycled    prometheus.Counter
	destroyed   prometheus.Counter
}

// Instrument wraps f, registering its counters with reg under the pool
// label.
func Instrument(pool string, f api.BufferFactory, reg prometheus.Registerer) *InstrumentedFactory {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"pool": pool}
	return &InstrumentedFactory{
		BufferFactory: f,
		allocations: factory.NewCounter(prometheus.CounterOpts{
			Name:        "hioload_buf_allocations_total",
			Help:        "Buffers handed out by the pool.",
			ConstLabels: labels,
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Name:        "hioload_buf_allocation_failures_total",
			Help:        "Allocation requests the pool could not satisfy.",
			ConstLabels: labels,
		}),
		recycled: factory.NewCounter(prometheus.CounterOpts{
			Name:        "hioload_buf_recycled_total",
			Help:        "Freed buffers the pool accepted back into its cache.",
			ConstLabels: labels,
		}),
		destroyed: factory.NewCounter(prometheus.CounterOpts{
			Name:        "hioload_buf_destroyed_total",
			Help:        "Freed buffers the pool destroyed instead of caching.",
			ConstLabels: labels,
		}),
	}
}

func (f *InstrumentedFactory) Allocate(size int) (*buffer.Buffer, error) {
	b, err := f.BufferFactory.Allocate(size)
	if err != nil {
		f.failures.Inc()
		return nil, err
	}
	f.allocations.Inc()
	return b, nil
}

func (f *InstrumentedFactory) AllocateDefault() (*buffer.Buffer, error) {
	b, err := f.BufferFactory.AllocateDefault()
	if err != nil {
		f.failures.Inc()
		return nil, err
	}
	f.allocations.Inc()
	return b, nil
}

func (f *InstrumentedFactory) Free(b *buffer.Buffer) bool {
	if f.BufferFactory.Free(b) {
		f.recycled.Inc()
		return true
	}
	f.destroyed.Inc()
	return false
}
