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

// Package hwy provides fixed-width 128-bit integer lane operations for
// quantized inference kernels.
//
// Every operation reproduces the lane semantics of the x86 SSSE3 tier
// bit-for-bit, including where it wraps and where it saturates, so kernels
// written against this package produce the same integers on every platform. Vectors are plain arrays: they live on the
// stack, are passed by value and never allocate.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-highway-qmatvec/hwy"
//
//	a := hwy.LoadInt8x16(row)
//	b := hwy.LoadInt8x16(vec)
//	prod := hwy.SatWidenMulPairwiseAdd(hwy.AbsInt8x16(a), hwy.CopySignInt8x16(b, a))
//	sum := hwy.WidenMulPairwiseAdd(prod, hwy.SetInt16x8(1))
package hwy

// VectorBytes is the width of every vector type in this package.
const VectorBytes = 16

// Int8x16 holds 16 signed 8-bit lanes.
type Int8x16 [16]int8

// Uint8x16 holds 16 unsigned 8-bit lanes.
type Uint8x16 [16]uint8

// Int16x8 holds 8 signed 16-bit lanes.
type Int16x8 [8]int16

// Int32x4 holds 4 signed 32-bit lanes.
type Int32x4 [4]int32

// NumLanes returns the number of lanes in v.
func (v Int8x16) NumLanes() int { return len(v) }

// NumLanes returns the number of lanes in v.
func (v Uint8x16) NumLanes() int { return len(v) }

// NumLanes returns the number of lanes in v.
func (v Int16x8) NumLanes() int { return len(v) }

// NumLanes returns the number of lanes in v.
func (v Int32x4) NumLanes() int { return len(v) }
