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

var ones16 = hwy.SetInt16x8(1)

// DotProdInt8x4x4 computes the dot product of two 16-lane int8 vectors as
// four int32 partial sums; their total is the full dot product.
//
// PMADDUBSW treats its first operand as unsigned, so the sign of a is moved
// onto b and a is replaced by |a| before the multiply. The result is exact
// when b is in [-127, 127]; a may be any int8 value, since |a| <= 128 keeps
// every pair of products within int16.
func DotProdInt8x4x4(a, b hwy.Int8x16) hwy.Int32x4 {
	b = hwy.CopySignInt8x16(b, a)
	ua := hwy.AbsInt8x16(a)
	// sumprod[i] = a[2i]*b[2i] + a[2i+1]*b[2i+1], i = 0..7
	sumprod := hwy.SatWidenMulPairwiseAdd(ua, b)
	// sum[i] = sumprod[2i] + sumprod[2i+1], i = 0..3
	return hwy.WidenMulPairwiseAdd(sumprod, ones16)
}

// ReduceInt32x4 returns the sum of the four lanes of acc, folding the high
// half onto the low half and then the two low lanes onto lane 0.
func ReduceInt32x4(acc hwy.Int32x4) int32 {
	// High half of acc in both halves.
	shuffle := hwy.InterleaveUpper64(acc, acc)
	// Low half now holds sums of twos.
	acc = hwy.AddInt32x4(acc, shuffle)
	// Swap the two low lanes.
	shuffle = hwy.Shuffle2301(acc)
	acc = hwy.AddInt32x4(acc, shuffle)
	return hwy.GetLane0(acc)
}
