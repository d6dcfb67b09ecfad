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

// Package quantize converts float32 activations into the int8 vectors,
// per-batch scales and zero-point offsets consumed by package qmatvec.
//
// # Core Functions
//
//   - SymmetricQuantizeFloats(values []float32, quantized []int8) (min, max, scale float32)
//   - AsymmetricQuantizeFloats(values []float32, quantized []int8) (scale float32, offset int32)
//   - QuantizeBatch(values []float32, nBatch, n int, quantized []int8, scales []float32, offsets []int32, asymmetric bool)
//
// # Symmetric Quantization
//
// Values map onto [-127, 127] around zero, so -128 never appears and the
// output can be used as either kernel operand:
//
//	range = max(|min|, |max|)
//	quantized[i] = clamp(round(values[i] * 127 / range), -127, 127)
//	scale = range / 127
//
// # Asymmetric Quantization
//
// Values map onto the full int8 range [-128, 127] with a zero point chosen
// so that 0.0 is exactly representable:
//
//	quantized[i] = clamp(offset + round(values[i] / scale), -128, 127)
//	values[i] ~= scale * (quantized[i] - offset)
//
// The offset is what DenseMultiplyAccumulatePerChannel expects in
// inputOffset.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-highway-qmatvec/hwy/contrib/quantize"
//
//	acts := []float32{0.5, -1.25, 3.0, 0}
//	q := make([]int8, len(acts))
//	_, _, scale := quantize.SymmetricQuantizeFloats(acts, q)
//	qmatvec.DenseMultiplyAccumulate(weights, rows, len(acts), q, []float32{scale * weightScale}, 1, out, 1)
package quantize
