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

package qmatvec

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randomWeights returns symmetric int8 values in [-127, 127].
func randomWeights(r *rand.Rand, n int) []int8 {
	out := make([]int8, n)
	for i := range out {
		out[i] = int8(r.IntN(255) - 127)
	}
	return out
}

// randomInputs returns int8 values over the full range [-128, 127].
func randomInputs(r *rand.Rand, n int) []int8 {
	out := make([]int8, n)
	for i := range out {
		out[i] = int8(r.IntN(256) - 128)
	}
	return out
}

func randomScales(r *rand.Rand, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = 0.001 + r.Float32()*0.1
	}
	return out
}

func randomResult(r *rand.Rand, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = r.Float32()*2 - 1
	}
	return out
}

// sparsify zeroes each 16-wide block of m with probability p.
func sparsify(r *rand.Rand, m []int8, rows, cols int, p float64) {
	for row := range rows {
		for blk := range cols / BlockSize {
			if r.Float64() < p {
				start := row*cols + blk*BlockSize
				clear(m[start : start+BlockSize])
			}
		}
	}
}

// referenceDense computes the symmetric kernel with plain integer arithmetic.
func referenceDense(matrix []int8, rows, cols int, vectors []int8, scales []float32,
	nBatch int, result []float32, stride int) {
	for b := range nBatch {
		for r := range rows {
			var sum int64
			for c := range cols {
				sum += int64(matrix[r*cols+c]) * int64(vectors[b*cols+c])
			}
			result[(b*rows+r)*stride] += float32(float32(sum) * scales[b])
		}
	}
}

// referencePerChannel computes sum_c row[c]*(vec[c]-offset) directly.
func referencePerChannel(matrix []int8, rows, cols int, vectors []int8, scales []float32,
	nBatch int, result []float32, stride int, perChannel []float32, offsets []int32) {
	for b := range nBatch {
		for r := range rows {
			var sum int64
			for c := range cols {
				sum += int64(matrix[r*cols+c]) * (int64(vectors[b*cols+c]) - int64(offsets[b]))
			}
			result[(b*rows+r)*stride] += float32(float32(sum) * scales[b] * perChannel[r])
		}
	}
}

var floatOpts = cmpopts.EquateApprox(1e-6, 1e-5)

func assertFloatsEqual(t *testing.T, want, got []float32) {
	t.Helper()
	if diff := cmp.Diff(want, got, floatOpts); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}
