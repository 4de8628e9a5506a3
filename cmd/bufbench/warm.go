// File: cmd/bufbench/warm.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// warmCmd pre-fills a pool's cache up to its capacity and reports how much
// memory the strategy claimed.
var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Pre-fill a pool's cache and report the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newFactory()
		if err != nil {
			return err
		}
		added := f.Fill()
		slog.Info("pool warmed", "strategy", flagStrategy, "added_bytes", added)
		report(cmd, f)
		f.Clear()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(warmCmd)
}
