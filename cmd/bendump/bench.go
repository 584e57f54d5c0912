// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ardverk/bencoding/bencode"
	"github.com/ardverk/bencoding/pkg/log"
	"github.com/ardverk/bencoding/pkg/metrics"
)

func init() {
	prometheus.MustRegister(promDecodeDurationSeconds)
}

var promDecodeDurationSeconds = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bendump_decode_duration_seconds",
		Help:    "The duration of time it takes to decode one bencoded value",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	},
	[]string{"error"},
)

// recordDecodeDuration records the duration of time it took to decode one
// value.
func recordDecodeDuration(err error, duration time.Duration) {
	var errString string
	if err != nil {
		errString = err.Error()
	}

	promDecodeDurationSeconds.
		WithLabelValues(errString).
		Observe(duration.Seconds())
}

// benchCmd returns the bench subcommand, which decodes the same input
// repeatedly and reports throughput.
func benchCmd() *cobra.Command {
	var iterations int
	var debugAddr string

	cmd := &cobra.Command{
		Use:   "bench <file>",
		Short: "Measure decode throughput",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(os.ExpandEnv(args[0]))
			if err != nil {
				return errors.Wrap(err, "failed to open input")
			}
			defer f.Close()

			r, err := wrapCompressed(f)
			if err != nil {
				return errors.Wrap(err, "failed to open compressed input")
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return errors.Wrap(err, "failed to read input")
			}

			if debugAddr != "" {
				srv := metrics.NewServer(debugAddr)
				log.Info("started serving debug endpoints", log.Fields{"addr": debugAddr})
				defer func() {
					srv.Stop().Wait()
				}()
			}

			start := time.Now()
			for i := 0; i < iterations; i++ {
				iterStart := time.Now()
				_, err := bencode.Unmarshal(data)
				recordDecodeDuration(err, time.Since(iterStart))
				if err != nil {
					return errors.Wrap(err, "decode failed")
				}
			}
			elapsed := time.Since(start)

			perOp := elapsed / time.Duration(iterations)
			throughput := float64(len(data)) * float64(iterations) / elapsed.Seconds() / (1 << 20)
			log.Info("bench complete", log.Fields{
				"iterations": iterations,
				"elapsed":    elapsed,
				"per_op":     perOp,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%d iterations in %v (%v/op, %.2f MiB/s)\n",
				iterations, elapsed, perOp, throughput)
			return nil
		},
	}

	cmd.Flags().IntVar(&iterations, "n", 1000, "number of decode iterations")
	cmd.Flags().StringVar(&debugAddr, "debug-addr", "", "serve pprof and prometheus metrics on this address")

	return cmd
}
