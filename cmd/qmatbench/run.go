// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"cmp"
	"fmt"
	"io"
	"log"
	"slices"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-highway-qmatvec/hwy/contrib/workerpool"
)

type runOptions struct {
	kernel     string
	rows       []int
	cols       []int
	batch      []int
	density    float64
	workers    int
	iterations int
	seed       uint64
	verbose    bool
}

// measurement is one timed shape.
type measurement struct {
	kernel  string
	shape   shape
	n       int
	nsPerOp float64
}

func (m measurement) gops() float64 { return m.shape.gops(m.nsPerOp) }

func newRunCmd(printer func() (*message.Printer, error)) *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time a kernel over a grid of shapes",
		Long: "Time a kernel over every combination of --rows, --cols and --batch.\n" +
			"Results are printed as benchmark lines that 'qmatbench report' can read,\n" +
			"followed by a summary.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := printer()
			if err != nil {
				return err
			}
			return runBench(cmd.OutOrStdout(), p, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.kernel, "kernel", "dense", "kernel to time: dense, perchannel or sparse")
	f.IntSliceVar(&opts.rows, "rows", []int{256}, "matrix rows")
	f.IntSliceVar(&opts.cols, "cols", []int{1024}, "matrix columns")
	f.IntSliceVar(&opts.batch, "batch", []int{1}, "batch sizes")
	f.Float64Var(&opts.density, "density", 0.25, "fraction of nonzero blocks for the sparse kernel")
	f.IntVar(&opts.workers, "workers", 1, "worker goroutines; 1 runs the single-threaded kernels, 0 uses GOMAXPROCS")
	f.IntVar(&opts.iterations, "iterations", 0, "fixed iteration count; 0 lets the testing package pick")
	f.Uint64Var(&opts.seed, "seed", 1, "random seed for weights and activations")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log workload details")
	return cmd
}

func runBench(w io.Writer, p *message.Printer, opts runOptions) error {
	kernel, ok := kernelAliases[opts.kernel]
	if !ok {
		names := lo.Keys(kernelAliases)
		slices.Sort(names)
		return fmt.Errorf("unknown kernel %q (want one of %v)", opts.kernel, names)
	}
	if opts.density < 0 || opts.density > 1 {
		return fmt.Errorf("--density %v outside [0, 1]", opts.density)
	}

	shapes := shapeGrid(opts.rows, opts.cols, opts.batch)
	if len(shapes) == 0 {
		return fmt.Errorf("empty shape grid")
	}

	var exec workerpool.Executor
	if opts.workers != 1 {
		pool := workerpool.New(opts.workers)
		defer pool.Close()
		exec = pool
	}

	results := make([]measurement, 0, len(shapes))
	for _, s := range shapes {
		wl, err := newWorkload(kernel, s, opts.density, opts.seed)
		if err != nil {
			return err
		}
		if opts.verbose && kernel == kernelSparse {
			log.Printf("%v: %d/%d blocks nonzero (density %.3f)", s, wl.stats.NonzeroBlocks, wl.stats.TotalBlocks, wl.stats.Density())
		}
		n, ns := measure(opts.iterations, func() { wl.step(exec) })
		m := measurement{kernel: kernel, shape: s, n: n, nsPerOp: ns}
		results = append(results, m)
		fmt.Fprintf(w, "Benchmark%s/%v\t%d\t%.1f ns/op\n", kernel, s, n, ns)
	}

	fmt.Fprintln(w)
	printSummary(w, p, results)
	return nil
}

// shapeGrid returns every positive rows×cols×batch combination.
func shapeGrid(rows, cols, batch []int) []shape {
	var out []shape
	for _, r := range lo.Uniq(rows) {
		for _, c := range lo.Uniq(cols) {
			for _, b := range lo.Uniq(batch) {
				if r > 0 && c > 0 && b > 0 {
					out = append(out, shape{Rows: r, Cols: c, Batch: b})
				}
			}
		}
	}
	return out
}

// measure times fn. With iterations > 0 it runs exactly that many calls;
// otherwise testing.Benchmark chooses the count.
func measure(iterations int, fn func()) (n int, nsPerOp float64) {
	if iterations > 0 {
		start := time.Now()
		for range iterations {
			fn()
		}
		return iterations, float64(time.Since(start).Nanoseconds()) / float64(iterations)
	}
	r := testing.Benchmark(func(b *testing.B) {
		for range b.N {
			fn()
		}
	})
	return r.N, float64(r.T.Nanoseconds()) / float64(max(r.N, 1))
}

func printSummary(w io.Writer, p *message.Printer, results []measurement) {
	if len(results) == 0 {
		return
	}
	sorted := slices.Clone(results)
	slices.SortFunc(sorted, func(a, b measurement) int {
		return cmp.Compare(b.gops(), a.gops())
	})
	for _, m := range sorted {
		p.Fprintf(w, "%-40s %14d ops/call %10.2f GOPS\n", m.shape.String(), int64(m.shape.ops()), m.gops())
	}
	best := lo.MaxBy(results, func(a, b measurement) bool { return a.gops() > b.gops() })
	total := lo.SumBy(results, func(m measurement) float64 { return m.gops() })
	p.Fprintf(w, "best %v at %.2f GOPS, mean %.2f GOPS over %d shapes\n",
		best.shape, best.gops(), total/float64(len(results)), len(results))
}
