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

var onesU8 = hwy.SetUint8x16(1)

// DenseMultiplyAccumulate multiplies an int8 matrix by a batch of int8
// vectors and accumulates the dequantized products into result:
//
//	result[(b*mRows+r)*resultStride] += float32(sum_c matrix[r,c]*vectors[b,c]) * scales[b]
//
// Parameters:
//   - matrix: [mRows, mCols] int8, row-major
//   - vectors: [nBatch, mCols] int8, contiguous
//   - scales: one dequantization scale per batch entry
//   - result: destination, advanced by resultStride per row across all
//     batches; existing values are added to, not replaced
//
// mCols need not be a multiple of BlockSize; trailing columns are handled
// with scalar code. The int32 accumulator is exact for mCols <= MaxSafeCols.
func DenseMultiplyAccumulate(matrix []int8, mRows, mCols int, vectors []int8,
	scales []float32, nBatch int, result []float32, resultStride int) {
	if hwy.DebugChecks {
		checkBudget("DenseMultiplyAccumulate", mCols, MaxSafeCols)
	}
	aligned := mCols &^ (BlockSize - 1)
	out := 0
	for batch := range nBatch {
		vec := vectors[batch*mCols : (batch+1)*mCols]
		scale := scales[batch]
		for row := 0; row < mRows; row, out = row+1, out+resultStride {
			rowData := matrix[row*mCols : (row+1)*mCols]

			dotprod := hwy.ZeroInt32x4()
			col := 0
			for ; col < aligned; col += BlockSize {
				v := hwy.LoadInt8x16(vec[col:])
				r := hwy.LoadInt8x16(rowData[col:])
				// dotprod += vec · row
				dotprod = hwy.AddInt32x4(dotprod, DotProdInt8x4x4(v, r))
			}
			sum := ReduceInt32x4(dotprod)

			// Scalar tail
			for ; col < mCols; col++ {
				sum += int32(rowData[col]) * int32(vec[col])
			}

			result[out] += float32(float32(sum) * scale)
		}
	}
}

// DenseMultiplyAccumulatePerChannel is DenseMultiplyAccumulate for
// asymmetrically quantized inputs and per-channel quantized weights:
//
//	sum  = sum_c matrix[r,c] * vectors[b,c]
//	sum -= (sum_c matrix[r,c]) * inputOffset[b]
//	result[(b*mRows+r)*resultStride] += float32(sum) * scales[b] * perChannelScale[r]
//
// which equals sum_c matrix[r,c]*(vectors[b,c]-inputOffset[b]). Only the
// input zero point is removed; the matrix is assumed symmetric.
//
// The row sum is carried in int16 lanes across blocks, so mCols must not
// exceed MaxSafeColsPerChannel.
func DenseMultiplyAccumulatePerChannel(matrix []int8, mRows, mCols int, vectors []int8,
	scales []float32, nBatch int, result []float32, resultStride int,
	perChannelScale []float32, inputOffset []int32) {
	if hwy.DebugChecks {
		checkBudget("DenseMultiplyAccumulatePerChannel", mCols, MaxSafeColsPerChannel)
	}
	aligned := mCols &^ (BlockSize - 1)
	out := 0
	for batch := range nBatch {
		vec := vectors[batch*mCols : (batch+1)*mCols]
		scale := scales[batch]
		offset := inputOffset[batch]
		for row := 0; row < mRows; row, out = row+1, out+resultStride {
			rowData := matrix[row*mCols : (row+1)*mCols]

			dotprod := hwy.ZeroInt32x4()
			rowSum16 := hwy.ZeroInt16x8()
			col := 0
			for ; col < aligned; col += BlockSize {
				v := hwy.LoadInt8x16(vec[col:])
				r := hwy.LoadInt8x16(rowData[col:])
				dotprod = hwy.AddInt32x4(dotprod, DotProdInt8x4x4(v, r))

				// Pairwise add the 16 row values by multiplying with ones.
				rowSum16 = hwy.AddInt16x8(rowSum16, hwy.SatWidenMulPairwiseAdd(onesU8, r))
			}
			rowSum32 := hwy.WidenMulPairwiseAdd(rowSum16, ones16)
			sum := ReduceInt32x4(dotprod)
			rowSum := ReduceInt32x4(rowSum32)

			// Scalar tail
			for ; col < mCols; col++ {
				sum += int32(rowData[col]) * int32(vec[col])
				rowSum += int32(rowData[col])
			}

			sum -= rowSum * offset
			result[out] += float32(float32(sum) * scale * perChannelScale[row])
		}
	}
}
