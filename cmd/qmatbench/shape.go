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
	"fmt"
	"strconv"
	"strings"
)

// shape is the problem size of one kernel call.
type shape struct {
	Rows, Cols, Batch int
}

func (s shape) String() string {
	return fmt.Sprintf("rows=%d/cols=%d/batch=%d", s.Rows, s.Cols, s.Batch)
}

// ops counts one multiply and one add per weight per batch entry.
func (s shape) ops() float64 {
	return 2 * float64(s.Rows) * float64(s.Cols) * float64(s.Batch)
}

// gops converts a per-call latency into billions of operations per second.
func (s shape) gops(nsPerOp float64) float64 {
	if nsPerOp <= 0 {
		return 0
	}
	return s.ops() / nsPerOp
}

// parseBenchName splits "BenchmarkKernel/rows=R/cols=C/batch=B-8" into the
// kernel name and shape. The trailing GOMAXPROCS suffix is optional. Names
// without all three dimensions are rejected.
func parseBenchName(name string) (kernel string, s shape, ok bool) {
	name, found := strings.CutPrefix(name, "Benchmark")
	if !found {
		return "", shape{}, false
	}
	if i := strings.LastIndexByte(name, '-'); i >= 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			name = name[:i]
		}
	}

	parts := strings.Split(name, "/")
	kernel = parts[0]
	for _, p := range parts[1:] {
		key, val, _ := strings.Cut(p, "=")
		var dim *int
		switch key {
		case "rows":
			dim = &s.Rows
		case "cols":
			dim = &s.Cols
		case "batch":
			dim = &s.Batch
		default:
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return "", shape{}, false
		}
		*dim = n
	}
	if kernel == "" || s.Rows == 0 || s.Cols == 0 || s.Batch == 0 {
		return "", shape{}, false
	}
	return kernel, s, true
}
