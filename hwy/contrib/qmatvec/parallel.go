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

import "github.com/ajroetker/go-highway-qmatvec/hwy/contrib/workerpool"

// ParallelDenseMultiplyAccumulate is the parallel version of
// DenseMultiplyAccumulate. The nBatch*mRows outputs are split into
// contiguous ranges; each worker runs the serial kernel on its range, so
// workers never write the same result element.
func ParallelDenseMultiplyAccumulate(pool workerpool.Executor, matrix []int8, mRows, mCols int,
	vectors []int8, scales []float32, nBatch int, result []float32, resultStride int) {
	if mRows == 0 || nBatch == 0 {
		return
	}
	pool.ParallelFor(nBatch*mRows, func(start, end int) {
		for start < end {
			batch, row := start/mRows, start%mRows
			n := min(end-start, mRows-row)
			DenseMultiplyAccumulate(matrix[row*mCols:], n, mCols,
				vectors[batch*mCols:], scales[batch:], 1,
				result[start*resultStride:], resultStride)
			start += n
		}
	})
}

// ParallelDenseMultiplyAccumulatePerChannel is the parallel version of
// DenseMultiplyAccumulatePerChannel, split the same way as
// ParallelDenseMultiplyAccumulate.
func ParallelDenseMultiplyAccumulatePerChannel(pool workerpool.Executor, matrix []int8, mRows, mCols int,
	vectors []int8, scales []float32, nBatch int, result []float32, resultStride int,
	perChannelScale []float32, inputOffset []int32) {
	if mRows == 0 || nBatch == 0 {
		return
	}
	pool.ParallelFor(nBatch*mRows, func(start, end int) {
		for start < end {
			batch, row := start/mRows, start%mRows
			n := min(end-start, mRows-row)
			DenseMultiplyAccumulatePerChannel(matrix[row*mCols:], n, mCols,
				vectors[batch*mCols:], scales[batch:], 1,
				result[start*resultStride:], resultStride,
				perChannelScale[row:], inputOffset[batch:])
			start += n
		}
	})
}

// atomicExecutor is implemented by executors that can hand out single
// indices dynamically, such as *workerpool.Pool.
type atomicExecutor interface {
	ParallelForAtomic(n int, fn func(i int))
}

// ParallelBatchedSparseMultiplyAccumulate is the parallel version of
// BatchedSparseMultiplyAccumulate. Rows of a sparse matrix can only be
// located by walking the ledger, so work is split by batch entry.
func ParallelBatchedSparseMultiplyAccumulate(pool workerpool.Executor, matrix []int8, ledger []uint8,
	mRows, mCols int, vectors []int8, scales []float32, nBatch int, results []float32, resultStride int) {
	if nBatch == 0 {
		return
	}
	one := func(batch int) {
		SparseMultiplyAccumulate(matrix, ledger, mRows, mCols,
			vectors[batch*mCols:], scales[batch],
			results[batch*resultStride*mRows:], resultStride)
	}
	if ae, ok := pool.(atomicExecutor); ok {
		ae.ParallelForAtomic(nBatch, one)
		return
	}
	pool.ParallelFor(nBatch, func(start, end int) {
		BatchedSparseMultiplyAccumulate(matrix, ledger, mRows, mCols,
			vectors[start*mCols:], scales[start:], end-start,
			results[start*resultStride*mRows:], resultStride)
	})
}
