// File: cmd/bufbench/bench.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/codec"
	"github.com/momentics/hioload-buf/control"
	"github.com/momentics/hioload-buf/stream"
)

var (
	flagWorkers     int
	flagIterations  int
	flagMetricsAddr string
)

// benchCmd hammers one factory with concurrent allocate/free traffic plus a
// stream/codec round-trip per iteration, then reports the accounting.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run concurrent allocate/free traffic against a pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newFactory()
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		instrumented := control.Instrument(flagStrategy, f, reg)
		if err := reg.Register(control.NewFactoryCollector(flagStrategy, f)); err != nil {
			return err
		}
		if flagMetricsAddr != "" {
			go serveMetrics(flagMetricsAddr, reg)
		}

		slog.Info("bench starting",
			"strategy", flagStrategy,
			"workers", flagWorkers,
			"iterations", flagIterations)

		var failures atomic.Int64
		start := time.Now()
		var wg sync.WaitGroup
		for w := 0; w < flagWorkers; w++ {
			wg.Add(1)
			go func(seed int64) {
				defer wg.Done()
				if err := benchWorker(instrumented, seed, flagIterations); err != nil {
					failures.Add(1)
					slog.Error("worker failed", "err", err)
				}
			}(int64(w))
		}
		wg.Wait()
		elapsed := time.Since(start)

		slog.Info("bench finished",
			"elapsed", elapsed,
			"failed_workers", failures.Load())
		report(cmd, f)
		f.Clear()
		return nil
	},
}

// benchWorker allocates a random size, round-trips a message through a
// stream, and frees, once per iteration.
func benchWorker(f api.BufferFactory, seed int64, iterations int) error {
	rng := rand.New(rand.NewSource(seed))
	s, err := stream.New(f)
	if err != nil {
		return err
	}
	defer s.Free()

	for i := 0; i < iterations; i++ {
		size := 1 + rng.Intn(flagMaxSize)
		b, err := f.Allocate(size)
		if err != nil {
			return err
		}

		w := codec.NewWriter(s)
		w.PutInt64(int64(i))
		w.PutString("bench")
		if err := w.Err(); err != nil {
			f.Free(b)
			return err
		}
		r := codec.NewReader(s)
		r.Int64()
		_ = r.String()
		r.Sync()

		f.Free(b)
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	slog.Info("metrics listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics server stopped", "err", err)
	}
}

func init() {
	benchCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 8, "concurrent workers")
	benchCmd.Flags().IntVarP(&flagIterations, "iterations", "n", 100000, "iterations per worker")
	benchCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")
	rootCmd.AddCommand(benchCmd)
}
