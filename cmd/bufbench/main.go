// File: cmd/bufbench/main.go
// bufbench exercises buffer pools from the command line.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/pool"
)

var (
	flagStrategy    string
	flagCapacity    int64
	flagDefaultSize int
	flagMinSize     int
	flagMaxSize     int
	flagMinPower    int
	flagMaxPower    int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bufbench",
	Short: "Benchmark and inspect hioload-buf pools",
	Long: `bufbench drives the hioload-buf allocator strategies under load,
pre-warms pools, and reports their accounting.`,
	SilenceUsage: true,
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagStrategy, "strategy", "s", "binary", "pool strategy: heap, direct, fixed, binary, map")
	pf.Int64Var(&flagCapacity, "capacity", pool.DefaultMaxMemory, "cache memory ceiling in bytes")
	pf.IntVar(&flagDefaultSize, "default-size", 0, "default allocation size (0 keeps the strategy default)")
	pf.IntVar(&flagMinSize, "min-size", 64, "smallest cacheable buffer (fixed, map)")
	pf.IntVar(&flagMaxSize, "max-size", 4096, "largest cacheable buffer (fixed, map)")
	pf.IntVar(&flagMinPower, "min-power", 6, "smallest cacheable power of two (binary)")
	pf.IntVar(&flagMaxPower, "max-power", 12, "largest cacheable power of two (binary)")
}

// newFactory builds the factory the flags describe.
func newFactory() (api.BufferFactory, error) {
	var f api.BufferFactory
	switch flagStrategy {
	case "heap":
		f = pool.NewHeapFactory()
	case "direct":
		f = pool.NewDirectFactory()
	case "fixed":
		f = pool.NewFixedFactory(flagMaxSize, flagMinSize)
	case "binary":
		f = pool.NewBinaryFactory(flagMinPower, flagMaxPower)
	case "map":
		f = pool.NewMapFactory(flagMaxSize, flagMinSize)
	default:
		return nil, fmt.Errorf("unknown strategy %q", flagStrategy)
	}
	f.SetCapacity(flagCapacity)
	if flagDefaultSize > 0 {
		f.SetDefaultSize(flagDefaultSize)
	}
	return f, nil
}

// report prints one factory accounting snapshot.
func report(cmd *cobra.Command, f api.BufferFactory) {
	stats := api.StatsOf(f)
	cmd.Printf("strategy      %s\n", flagStrategy)
	cmd.Printf("used          %d bytes\n", stats.Used)
	cmd.Printf("capacity      %d bytes\n", stats.Capacity)
	cmd.Printf("available     %d bytes\n", stats.Available)
	cmd.Printf("default size  %d bytes\n", stats.DefaultSize)
}
