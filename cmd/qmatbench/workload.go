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
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/ajroetker/go-highway-qmatvec/hwy/contrib/qmatvec"
	"github.com/ajroetker/go-highway-qmatvec/hwy/contrib/quantize"
	"github.com/ajroetker/go-highway-qmatvec/hwy/contrib/workerpool"
)

// Kernel names double as benchmark names so run output and package
// benchmarks land in the same report rows.
const (
	kernelDense      = "DenseMultiplyAccumulate"
	kernelPerChannel = "DenseMultiplyAccumulatePerChannel"
	kernelSparse     = "BatchedSparseMultiplyAccumulate"
)

var kernelAliases = map[string]string{
	"dense":      kernelDense,
	"perchannel": kernelPerChannel,
	"sparse":     kernelSparse,
}

var errColsOverBudget = errors.New("cols exceed the kernel's overflow budget")

// workload holds quantized operands for one kernel and shape.
type workload struct {
	kernel string
	shape  shape

	weights    []int8
	packed     []int8
	ledger     []uint8
	stats      qmatvec.LedgerStats
	vectors    []int8
	scales     []float32
	perChannel []float32
	offsets    []int32
	result     []float32
}

// newWorkload quantizes random float weights and activations for kernel.
// For the sparse kernel, each 16-column block survives with probability
// density.
func newWorkload(kernel string, s shape, density float64, seed uint64) (*workload, error) {
	switch kernel {
	case kernelDense:
		if s.Cols > qmatvec.MaxSafeCols {
			return nil, fmt.Errorf("%s: %d > %d: %w", kernel, s.Cols, qmatvec.MaxSafeCols, errColsOverBudget)
		}
	case kernelPerChannel:
		if s.Cols > qmatvec.MaxSafeColsPerChannel {
			return nil, fmt.Errorf("%s: %d > %d: %w", kernel, s.Cols, qmatvec.MaxSafeColsPerChannel, errColsOverBudget)
		}
	case kernelSparse:
	default:
		return nil, fmt.Errorf("unknown kernel %q", kernel)
	}

	r := rand.New(rand.NewPCG(seed, uint64(s.Rows)<<32|uint64(s.Cols)))
	w := &workload{kernel: kernel, shape: s}

	floats := make([]float32, s.Rows*s.Cols)
	for i := range floats {
		floats[i] = float32(r.NormFloat64())
	}
	w.weights = make([]int8, len(floats))
	_, _, weightScale := quantize.SymmetricQuantizeFloats(floats, w.weights)

	acts := make([]float32, s.Batch*s.Cols)
	for i := range acts {
		acts[i] = float32(r.NormFloat64())
	}
	w.vectors = make([]int8, len(acts))
	w.scales = make([]float32, s.Batch)
	w.result = make([]float32, s.Batch*s.Rows)

	switch kernel {
	case kernelPerChannel:
		w.offsets = make([]int32, s.Batch)
		quantize.QuantizeBatch(acts, s.Batch, s.Cols, w.vectors, w.scales, w.offsets, true)
		w.perChannel = make([]float32, s.Rows)
		for i := range w.perChannel {
			w.perChannel[i] = weightScale
		}
	case kernelSparse:
		quantize.QuantizeBatch(acts, s.Batch, s.Cols, w.vectors, w.scales, nil, false)
		for i := range w.scales {
			w.scales[i] *= weightScale
		}
		if s.Cols%qmatvec.BlockSize == 0 {
			for start := 0; start < len(w.weights); start += qmatvec.BlockSize {
				if r.Float64() >= density {
					clear(w.weights[start : start+qmatvec.BlockSize])
				}
			}
		}
		var err error
		w.packed, w.ledger, err = qmatvec.BuildLedger(w.weights, s.Rows, s.Cols)
		if err != nil {
			return nil, fmt.Errorf("%s %v: %w", kernel, s, err)
		}
		w.stats, err = qmatvec.ValidateLedger(w.ledger, len(w.packed), s.Rows, s.Cols)
		if err != nil {
			return nil, fmt.Errorf("%s %v: %w", kernel, s, err)
		}
	default:
		quantize.QuantizeBatch(acts, s.Batch, s.Cols, w.vectors, w.scales, nil, false)
		for i := range w.scales {
			w.scales[i] *= weightScale
		}
	}
	return w, nil
}

// step runs the kernel once. A nil pool uses the single-threaded kernels.
func (w *workload) step(pool workerpool.Executor) {
	s := w.shape
	switch w.kernel {
	case kernelDense:
		if pool == nil {
			qmatvec.DenseMultiplyAccumulate(w.weights, s.Rows, s.Cols, w.vectors, w.scales, s.Batch, w.result, 1)
			return
		}
		qmatvec.ParallelDenseMultiplyAccumulate(pool, w.weights, s.Rows, s.Cols, w.vectors, w.scales, s.Batch, w.result, 1)
	case kernelPerChannel:
		if pool == nil {
			qmatvec.DenseMultiplyAccumulatePerChannel(w.weights, s.Rows, s.Cols, w.vectors, w.scales, s.Batch,
				w.result, 1, w.perChannel, w.offsets)
			return
		}
		qmatvec.ParallelDenseMultiplyAccumulatePerChannel(pool, w.weights, s.Rows, s.Cols, w.vectors, w.scales, s.Batch,
			w.result, 1, w.perChannel, w.offsets)
	case kernelSparse:
		if pool == nil {
			qmatvec.BatchedSparseMultiplyAccumulate(w.packed, w.ledger, s.Rows, s.Cols, w.vectors, w.scales, s.Batch, w.result, 1)
			return
		}
		qmatvec.ParallelBatchedSparseMultiplyAccumulate(pool, w.packed, w.ledger, s.Rows, s.Cols, w.vectors, w.scales, s.Batch, w.result, 1)
	}
}
