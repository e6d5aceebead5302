// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// vector1d_check runs the bulk vector operations over random vectors, sequentially and in
// parallel, and reports whether the results match and how long each took.
//
// Usage:
//
//	vector1d_check -sizes=1000,1000000 -workers=8 -storage=dense,sparse
//
// It exits with status 1 if any parallel result differs from the sequential one.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/vector1d/pkg/core/parallel"
	"github.com/gomlx/vector1d/pkg/core/vector"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

var (
	flagSizes     = flag.String("sizes", "1000,100000,1000000", "Comma-separated list of vector sizes to check.")
	flagStorage   = flag.String("storage", "dense,sparse,float16", "Comma-separated list of storage families: dense, sparse or float16.")
	flagWorkers   = flag.Int("workers", 0, "Number of workers of the parallel executor. 0 uses the process-wide configuration.")
	flagThreshold = flag.Int("threshold", -1, "Minimum size to parallelize. Negative uses the process-wide configuration.")
	flagRounds    = flag.Int("rounds", 3, "Number of times each operation is timed, the fastest is reported.")
	flagSeed      = flag.Uint64("seed", 42, "Seed of the random vector contents.")
	flagDensity   = flag.Float64("density", 0.3, "Fraction of non-zero cells in the random vectors.")
)

var constructors = map[string]func(n int) (*vector.Vector, error){
	"dense":   vector.NewDense,
	"sparse":  vector.NewSparse,
	"float16": vector.NewFloat16,
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	sizes, err := parseSizes(*flagSizes)
	if err != nil {
		klog.Errorf("Invalid -sizes: %+v", err)
		os.Exit(1)
	}
	storages := strings.Split(*flagStorage, ",")
	for _, storage := range storages {
		if _, found := constructors[storage]; !found {
			klog.Errorf("Unknown storage family %q in -storage, valid values are %v", storage, sortedStorages())
			os.Exit(1)
		}
	}

	exec := parallel.New(parallel.WithWorkers(*flagWorkers), parallel.WithThreshold(*flagThreshold))
	klog.V(1).Infof("Parallel executor: %d workers, threshold %s cells",
		exec.Workers(), humanize.Comma(int64(exec.Threshold())))

	output := termenv.NewOutput(os.Stdout)
	bar := progressbar.NewOptions(len(sizes)*len(storages)*len(checks),
		progressbar.OptionSetDescription("Checking"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(output.Profile != termenv.Ascii),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
	)
	rng := rand.New(rand.NewPCG(*flagSeed, 0))
	var results []checkResult
	for _, storage := range storages {
		for _, n := range sizes {
			x, y := randomVector(rng, storage, n), randomVector(rng, storage, n)
			for _, c := range checks {
				results = append(results, runCheck(c, storage, x, y, exec))
				_ = bar.Add(1)
			}
		}
	}
	_ = bar.Finish()

	if !report(results) {
		os.Exit(1)
	}
}

// parseSizes parses a comma-separated list of non-negative sizes.
func parseSizes(list string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(strings.ReplaceAll(part, "_", ""))
		if err != nil {
			return nil, errors.Wrapf(err, "size %q", part)
		}
		if n < 0 {
			return nil, errors.Errorf("size %d is negative", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.New("no sizes given")
	}
	return sizes, nil
}

// randomVector returns a vector of the given storage family with small integer values, so that
// sums are exact regardless of the order of evaluation.
func randomVector(rng *rand.Rand, storage string, n int) *vector.Vector {
	values := make([]float64, n)
	for i := range values {
		if rng.Float64() < *flagDensity {
			values[i] = float64(rng.IntN(201) - 100)
		}
	}
	v := must.M1(constructors[storage](n))
	must.M(v.AssignValues(values))
	return v
}

// report prints the results table, and returns whether all checks passed.
func report(results []checkResult) bool {
	fmt.Println(titleStyle.Render("Sequential vs parallel"))
	table := newResultsTable()
	table.Table.Headers("Storage", "Size", "Operation", "Sequential", "Parallel", "Speedup", "Result")
	allMatch := true
	for _, r := range results {
		status := "ok"
		if r.err != nil {
			status = r.err.Error()
		} else if !r.match {
			status = fmt.Sprintf("MISMATCH: %s != %s", r.sequential, r.parallel)
		}
		failed := r.err != nil || !r.match
		allMatch = allMatch && !failed
		speedup := "-"
		if r.parallelTime > 0 {
			speedup = fmt.Sprintf("%.2fx", float64(r.sequentialTime)/float64(r.parallelTime))
		}
		table.Row(failed, r.storage, humanize.Comma(int64(r.size)), r.name,
			r.sequentialTime.String(), r.parallelTime.String(), speedup, status)
	}
	fmt.Println(table.Table.Render())
	return allMatch
}
