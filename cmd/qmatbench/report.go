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
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"
	"golang.org/x/tools/benchmark/parse"
)

// reportRow aggregates every run of one benchmark in one input.
type reportRow struct {
	Source  string
	Kernel  string
	Shape   shape
	Runs    int
	NsPerOp float64
	GOPS    float64
}

func newReportCmd(printer func() (*message.Printer, error)) *cobra.Command {
	var kernelFilter string
	cmd := &cobra.Command{
		Use:   "report [file ...]",
		Short: "Summarize 'go test -bench' output as GOPS per shape",
		Long: "Read benchmark output from each file (or stdin when none is given or the\n" +
			"name is '-') and print the mean ns/op and GOPS for every benchmark named\n" +
			"with rows=R/cols=C/batch=B.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := printer()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			sets, err := loadSets(cmd.Context(), args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			rows := summarize(args, sets)
			if kernelFilter != "" {
				rows = lo.Filter(rows, func(r reportRow, _ int) bool { return r.Kernel == kernelFilter })
			}
			if len(rows) == 0 {
				return fmt.Errorf("no benchmarks with rows/cols/batch in their names")
			}
			return printReport(cmd.OutOrStdout(), p, rows, len(args) > 1)
		},
	}
	cmd.Flags().StringVar(&kernelFilter, "kernel", "", "only report this kernel, e.g. DenseMultiplyAccumulate")
	return cmd
}

// loadSets parses every source concurrently. Results are index-aligned with
// sources. At most one source may be "-".
func loadSets(ctx context.Context, sources []string, stdin io.Reader) ([]parse.Set, error) {
	if lo.Count(sources, "-") > 1 {
		return nil, fmt.Errorf("stdin given more than once")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sets := make([]parse.Set, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var r io.Reader = stdin
			if src != "-" {
				f, err := os.Open(src)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			set, err := parse.ParseSet(r)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", src, err)
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

// summarize averages repeated runs (-count > 1) of each named benchmark.
// Benchmarks whose names lack a shape are skipped.
func summarize(sources []string, sets []parse.Set) []reportRow {
	var rows []reportRow
	for i, set := range sets {
		for name, runs := range set {
			kernel, s, ok := parseBenchName(name)
			if !ok || len(runs) == 0 {
				continue
			}
			measured := lo.Filter(runs, func(b *parse.Benchmark, _ int) bool {
				return b.Measured&parse.NsPerOp != 0
			})
			if len(measured) == 0 {
				continue
			}
			ns := lo.SumBy(measured, func(b *parse.Benchmark) float64 { return b.NsPerOp }) / float64(len(measured))
			rows = append(rows, reportRow{
				Source:  sources[i],
				Kernel:  kernel,
				Shape:   s,
				Runs:    len(measured),
				NsPerOp: ns,
				GOPS:    s.gops(ns),
			})
		}
	}
	slices.SortFunc(rows, func(a, b reportRow) int {
		return cmp.Or(
			cmp.Compare(a.Kernel, b.Kernel),
			cmp.Compare(a.Shape.Rows, b.Shape.Rows),
			cmp.Compare(a.Shape.Cols, b.Shape.Cols),
			cmp.Compare(a.Shape.Batch, b.Shape.Batch),
			cmp.Compare(a.Source, b.Source),
		)
	})
	return rows
}

func printReport(w io.Writer, p *message.Printer, rows []reportRow, withSource bool) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	header := "kernel\tshape\truns\tns/op\tGOPS\t"
	if withSource {
		header = "source\t" + header
	}
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		if withSource {
			fmt.Fprintf(tw, "%s\t", r.Source)
		}
		p.Fprintf(tw, "%s\t%v\t%d\t%.1f\t%.2f\t\n", r.Kernel, r.Shape, r.Runs, r.NsPerOp, r.GOPS)
	}
	return tw.Flush()
}
