package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	sboxeval "github.com/themarkrogers/ai-s-box"
	"github.com/themarkrogers/ai-s-box/core"
	"github.com/themarkrogers/ai-s-box/metrics/ddt"
	"github.com/themarkrogers/ai-s-box/metrics/normalize"
	"github.com/themarkrogers/ai-s-box/metrics/walsh"
	"github.com/themarkrogers/ai-s-box/sboxes"
	"github.com/themarkrogers/ai-s-box/utils"
)

func newBenchmarkCmd() *cobra.Command {
	var (
		iterations int
		name       string
		randomBits int
		naive      bool
	)
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Time the DDT and Walsh engines on a builtin S-box",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations < 1 {
				iterations = 1
			}
			target, err := benchmarkTarget(name, randomBits)
			if err != nil {
				return err
			}
			return runBenchmark(cmd.Context(), cmd.OutOrStdout(), target, iterations, naive)
		},
	}
	cmd.Flags().IntVar(&iterations, "iterations", 10, "Iterations per measurement")
	cmd.Flags().StringVarP(&name, "builtin", "b", "aes", "Builtin S-box to measure")
	cmd.Flags().IntVar(&randomBits, "random-bits", 0, "Measure a random permutation of this width instead of a builtin")
	cmd.Flags().BoolVar(&naive, "naive", false, "Also time the naive Walsh reference")
	return cmd
}

// benchTarget is a flattened S-box under measurement.
type benchTarget struct {
	name string
	sbox sboxeval.SBox
	n, m int
}

func benchmarkTarget(name string, randomBits int) (benchTarget, error) {
	if randomBits > 0 {
		if err := core.ValidateParams(sboxeval.Params{InputBits: randomBits, OutputBits: randomBits}); err != nil {
			return benchTarget{}, fmt.Errorf("random width %d: %w", randomBits, err)
		}
		seed, err := utils.SecureRandomBytes(32)
		if err != nil {
			return benchTarget{}, err
		}
		perm, err := utils.SeededPermutation(seed, 1<<uint(randomBits))
		if err != nil {
			return benchTarget{}, err
		}
		return benchTarget{
			name: fmt.Sprintf("random-%d", randomBits),
			sbox: perm,
			n:    randomBits,
			m:    randomBits,
		}, nil
	}

	b, err := sboxes.Lookup(name)
	if err != nil {
		return benchTarget{}, err
	}
	// Builtins are flattened once; the benchmark measures the engines only.
	sbox, err := flatten(b)
	if err != nil {
		return benchTarget{}, err
	}
	return benchTarget{name: b.Name, sbox: sbox, n: b.Params.InputBits, m: b.Params.OutputBits}, nil
}

func runBenchmark(ctx context.Context, out io.Writer, target benchTarget, iterations int, naive bool) error {
	sbox, n, m := target.sbox, target.n, target.m

	fmt.Fprintf(out, "S-box Evaluation Benchmark\n")
	fmt.Fprintf(out, "==========================\n")
	fmt.Fprintf(out, "S-box: %s (n=%d, m=%d)\n", target.name, n, m)
	fmt.Fprintf(out, "Fingerprint: %s\n", utils.Fingerprint(sbox))
	fmt.Fprintf(out, "Iterations: %d\n\n", iterations)

	measure := func(label string, fn func() error) error {
		var total time.Duration
		for i := 0; i < iterations; i++ {
			start := time.Now()
			err := fn()
			total += time.Since(start)
			if err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}
		}
		fmt.Fprintf(out, "  %-14s %v (avg)\n", label+":", total/time.Duration(iterations))
		return nil
	}

	if err := measure("DDT", func() error {
		_, err := ddt.Compute(ctx, sbox, n, m)
		return err
	}); err != nil {
		return err
	}
	if err := measure("Walsh (fast)", func() error {
		_, err := walsh.Compute(ctx, sbox, n, m, walsh.Fast)
		return err
	}); err != nil {
		return err
	}
	if naive {
		if err := measure("Walsh (naive)", func() error {
			_, err := walsh.Compute(ctx, sbox, n, m, walsh.Naive)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

func flatten(b sboxes.Builtin) (sboxeval.SBox, error) {
	parsers := normalize.DefaultParsers()
	if b.BinaryFirst {
		parsers = normalize.BinaryFirstParsers()
	}
	res, err := normalize.Normalize(b.Table, b.Params.Indexing, parsers...)
	if err != nil {
		return nil, err
	}
	return res.SBox, nil
}
