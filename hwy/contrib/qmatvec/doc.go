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

// Package qmatvec provides int8 quantized matrix × batched-vector kernels
// for hybrid (int8 weights, float32 output) inference.
//
// # Kernels
//
//   - DenseMultiplyAccumulate: symmetric quantization, one scale per batch.
//   - DenseMultiplyAccumulatePerChannel: adds a per-row scale and a
//     per-batch input zero point.
//   - SparseMultiplyAccumulate: 16-wide block-sparse matrix walked with a
//     ledger, single vector.
//   - BatchedSparseMultiplyAccumulate: the sparse kernel repeated per batch.
//
// Every kernel accumulates into result; it never overwrites. Callers that
// want a fresh product must zero the destination first.
//
// # Algorithm
//
// Columns are consumed in blocks of 16 int8 values. Each block goes through
// DotProdInt8x4x4, which reproduces the SSSE3 sequence
//
//	b = sign(a)·b; a = |a|             // PSIGNB, PABSB
//	p16 = sat16(a0·b0 + a1·b1)         // PMADDUBSW
//	p32 = p16[2i] + p16[2i+1]          // PMADDWD with ones
//
// into a 4-lane int32 accumulator, reduced once per row by ReduceInt32x4.
// Dense kernels finish columns past the last full block with scalar code.
//
// # Ledger format
//
// A sparse matrix stores only its nonzero 16-wide blocks, concatenated in
// row order. The ledger holds, per row, one count byte followed by that many
// block indices (in units of 16 columns):
//
//	row 0: [2, 0, 3]   blocks covering columns 0..15 and 48..63
//	row 1: [0]         no nonzero blocks
//	row 2: [1, 1]      block covering columns 16..31
//
// BuildLedger produces this layout from a dense matrix and ValidateLedger
// checks one produced elsewhere.
//
// # Preconditions
//
// The kernels do not validate their inputs. Dimensions, buffer lengths and
// ledger consistency are the caller's contract; see the MaxSafe* constants
// for the accumulator overflow budget. Building with -tags hwydebug turns on
// assertions for block alignment and the overflow budget.
//
// Matrix values must lie in [-127, 127] (symmetric quantization): the sign of
// the vector operand is transferred onto the matrix operand, and -(-128) is
// not representable, exactly like the hardware sequence this mirrors. Vector
// values may use the full int8 range.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-highway-qmatvec/hwy/contrib/qmatvec"
//
//	result := make([]float32, nBatch*rows)
//	qmatvec.DenseMultiplyAccumulate(weights, rows, cols, vectors, scales, nBatch, result, 1)
package qmatvec
