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
	"math"

	"github.com/ajroetker/go-highway-qmatvec/hwy"
)

// BlockSize is the number of int8 columns consumed per lane operation and the
// unit of sparse block indexing.
const BlockSize = 16

// Overflow budget for weights in [-127, 127] and inputs in [-128, 127].
const (
	// MaxSafeCols is the widest row whose dot product cannot overflow the
	// int32 accumulator: cols·128·127 <= MaxInt32, rounded down to a block.
	MaxSafeCols = (math.MaxInt32 / (128 * 127)) &^ (BlockSize - 1)

	// MaxSafeColsPerChannel bounds the per-channel kernel, whose row sum is
	// kept in int16 lanes that gain up to ±254 per block.
	MaxSafeColsPerChannel = 128 * BlockSize

	// MaxSparseCols is the widest row a byte-sized ledger index can address.
	MaxSparseCols = (math.MaxUint8 + 1) * BlockSize
)

// checkBudget asserts mCols is within limit. Only called under hwy.DebugChecks.
func checkBudget(kernel string, mCols, limit int) {
	hwy.Assert(mCols <= limit, "%s: m_cols %d exceeds overflow budget %d", kernel, mCols, limit)
}
