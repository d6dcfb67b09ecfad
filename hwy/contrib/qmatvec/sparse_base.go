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

import "github.com/ajroetker/go-highway-qmatvec/hwy"

// SparseMultiplyAccumulate multiplies a block-sparse int8 matrix by one int8
// vector and accumulates into result:
//
//	result[r*resultStride] += float32(sum over ledger blocks of block · vector[col:col+16]) * scale
//
// Parameters:
//   - matrix: the nonzero 16-wide blocks, concatenated in ledger order
//   - ledger: per row, a count byte followed by that many block indices
//   - vector: dense [mCols] int8
//   - result: destination, advanced by resultStride per row
//
// mCols must be a multiple of BlockSize; there is no remainder path.
func SparseMultiplyAccumulate(matrix []int8, ledger []uint8, mRows, mCols int,
	vector []int8, scale float32, result []float32, resultStride int) {
	if hwy.DebugChecks {
		hwy.Assert(mCols%BlockSize == 0, "SparseMultiplyAccumulate: m_cols %d not a multiple of %d", mCols, BlockSize)
		checkBudget("SparseMultiplyAccumulate", mCols, MaxSparseCols)
	}
	cursor := NewLedgerCursor(matrix, ledger)
	out := 0
	for range mRows {
		dotprod := hwy.ZeroInt32x4()
		for n := cursor.NextRow(); n > 0; n-- {
			block, col := cursor.NextBlock()
			if hwy.DebugChecks {
				hwy.Assert(col+BlockSize <= mCols, "SparseMultiplyAccumulate: block at column %d beyond m_cols %d", col, mCols)
			}
			vec := hwy.LoadInt8x16(vector[col:])
			// dotprod += vec · block
			dotprod = hwy.AddInt32x4(dotprod, DotProdInt8x4x4(vec, block))
		}
		result[out] += float32(float32(ReduceInt32x4(dotprod)) * scale)
		out += resultStride
	}
}

// BatchedSparseMultiplyAccumulate applies SparseMultiplyAccumulate to each of
// nBatch contiguous vectors. Batch b uses scales[b] and writes its mRows
// outputs starting at results[b*resultStride*mRows], so batches occupy
// consecutive, disjoint row blocks of the destination.
func BatchedSparseMultiplyAccumulate(matrix []int8, ledger []uint8, mRows, mCols int,
	vectors []int8, scales []float32, nBatch int, results []float32, resultStride int) {
	for batch := range nBatch {
		SparseMultiplyAccumulate(matrix, ledger, mRows, mCols,
			vectors[batch*mCols:], scales[batch],
			results[batch*resultStride*mRows:], resultStride)
	}
}
