// File: cmd/bufbench/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"github.com/spf13/cobra"
)

var flagSweep int

// statsCmd runs a short allocate/free sweep so the cache has something in
// it, then prints the accounting a flag combination produces.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the accounting a flag combination produces",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newFactory()
		if err != nil {
			return err
		}
		for i := 0; i < flagSweep; i++ {
			b, err := f.Allocate(1 + i%flagMaxSize)
			if err != nil {
				return err
			}
			f.Free(b)
		}
		report(cmd, f)
		f.Clear()
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&flagSweep, "sweep", 64, "allocate/free pairs to run before reporting")
	rootCmd.AddCommand(statsCmd)
}
