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
	"fmt"
	"testing"
)

// Benchmark names encode rows/cols/batch so `qmatbench report` can convert
// ns/op into multiply-accumulates per second.
var benchShapes = []struct {
	rows, cols, nBatch int
}{
	{256, 256, 1},
	{512, 1024, 4},
	{1024, 2048, 8},
}

func BenchmarkDenseMultiplyAccumulate(b *testing.B) {
	for _, s := range benchShapes {
		b.Run(fmt.Sprintf("rows=%d/cols=%d/batch=%d", s.rows, s.cols, s.nBatch), func(b *testing.B) {
			r := newRand(1)
			matrix := randomWeights(r, s.rows*s.cols)
			vectors := randomInputs(r, s.nBatch*s.cols)
			scales := randomScales(r, s.nBatch)
			result := make([]float32, s.nBatch*s.rows)
			b.SetBytes(int64(len(matrix)))
			b.ResetTimer()
			for range b.N {
				DenseMultiplyAccumulate(matrix, s.rows, s.cols, vectors, scales, s.nBatch, result, 1)
			}
		})
	}
}

func BenchmarkDenseMultiplyAccumulatePerChannel(b *testing.B) {
	for _, s := range benchShapes {
		b.Run(fmt.Sprintf("rows=%d/cols=%d/batch=%d", s.rows, s.cols, s.nBatch), func(b *testing.B) {
			r := newRand(2)
			matrix := randomWeights(r, s.rows*s.cols)
			vectors := randomInputs(r, s.nBatch*s.cols)
			scales := randomScales(r, s.nBatch)
			perChannel := randomScales(r, s.rows)
			offsets := make([]int32, s.nBatch)
			result := make([]float32, s.nBatch*s.rows)
			b.SetBytes(int64(len(matrix)))
			b.ResetTimer()
			for range b.N {
				DenseMultiplyAccumulatePerChannel(matrix, s.rows, s.cols, vectors, scales, s.nBatch, result, 1, perChannel, offsets)
			}
		})
	}
}

func BenchmarkBatchedSparseMultiplyAccumulate(b *testing.B) {
	for _, s := range benchShapes {
		b.Run(fmt.Sprintf("rows=%d/cols=%d/batch=%d", s.rows, s.cols, s.nBatch), func(b *testing.B) {
			r := newRand(3)
			dense := randomWeights(r, s.rows*s.cols)
			sparsify(r, dense, s.rows, s.cols, 0.75)
			packed, ledger, err := BuildLedger(dense, s.rows, s.cols)
			if err != nil {
				b.Fatal(err)
			}
			vectors := randomInputs(r, s.nBatch*s.cols)
			scales := randomScales(r, s.nBatch)
			result := make([]float32, s.nBatch*s.rows)
			b.SetBytes(int64(len(packed)))
			b.ResetTimer()
			for range b.N {
				BatchedSparseMultiplyAccumulate(packed, ledger, s.rows, s.cols, vectors, scales, s.nBatch, result, 1)
			}
		})
	}
}
