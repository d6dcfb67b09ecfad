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

package quantize

import "math"

const (
	symmetricMax  = 127
	asymmetricMin = math.MinInt8
	asymmetricMax = math.MaxInt8
)

func minMax(values []float32) (lo, hi float32) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// SymmetricQuantizeFloats quantizes values into [-127, 127] and returns the
// observed range and the scale that maps quantized back to float:
// values[i] ~= scale * quantized[i]. An all-zero input gives scale 1.
func SymmetricQuantizeFloats(values []float32, quantized []int8) (lo, hi, scale float32) {
	if len(quantized) < len(values) {
		panic("quantized slice too small")
	}
	lo, hi = minMax(values)
	r := max(float32(math.Abs(float64(lo))), float32(math.Abs(float64(hi))))
	if r == 0 {
		clear(quantized[:len(values)])
		return lo, hi, 1
	}

	inv := symmetricMax / r
	for i, v := range values {
		q := int32(math.Round(float64(v * inv)))
		quantized[i] = int8(min(symmetricMax, max(-symmetricMax, q)))
	}
	return lo, hi, r / symmetricMax
}

// AsymmetricQuantizeFloats quantizes values into [-128, 127] with a zero
// point. The float range is widened to include 0 and the zero point is
// nudged onto an integer, so that 0.0 quantizes exactly to offset.
// An all-zero input gives scale 1 and offset 0.
func AsymmetricQuantizeFloats(values []float32, quantized []int8) (scale float32, offset int32) {
	if len(quantized) < len(values) {
		panic("quantized slice too small")
	}
	lo, hi := minMax(values)
	rmin := float64(min(lo, 0))
	rmax := float64(max(hi, 0))
	if rmin == rmax {
		clear(quantized[:len(values)])
		return 1, 0
	}

	const qmin, qmax = float64(asymmetricMin), float64(asymmetricMax)
	s := (rmax - rmin) / (qmax - qmin)

	// Pick whichever end of the range loses less precision.
	fromMin := qmin - rmin/s
	fromMax := qmax - rmax/s
	fromMinErr := math.Abs(qmin) + math.Abs(rmin/s)
	fromMaxErr := math.Abs(qmax) + math.Abs(rmax/s)
	zp := fromMax
	if fromMinErr < fromMaxErr {
		zp = fromMin
	}
	switch {
	case zp <= qmin:
		offset = asymmetricMin
	case zp >= qmax:
		offset = asymmetricMax
	default:
		offset = int32(math.Round(zp))
	}

	scale = float32(s)
	inv := 1 / scale
	for i, v := range values {
		q := offset + int32(math.Round(float64(v*inv)))
		quantized[i] = int8(min(asymmetricMax, max(asymmetricMin, q)))
	}
	return scale, offset
}

// QuantizeBatch quantizes nBatch rows of n values each, writing one scale
// per row into scales. With asymmetric set, zero points are written into
// offsets; otherwise offsets may be nil.
func QuantizeBatch(values []float32, nBatch, n int, quantized []int8,
	scales []float32, offsets []int32, asymmetric bool) {
	if len(values) < nBatch*n {
		panic("values slice too small")
	}
	if len(quantized) < nBatch*n {
		panic("quantized slice too small")
	}
	if len(scales) < nBatch {
		panic("scales slice too small")
	}
	if asymmetric && len(offsets) < nBatch {
		panic("offsets slice too small")
	}

	for b := range nBatch {
		row := values[b*n : (b+1)*n]
		q := quantized[b*n : (b+1)*n]
		if asymmetric {
			scales[b], offsets[b] = AsymmetricQuantizeFloats(row, q)
		} else {
			_, _, scales[b] = SymmetricQuantizeFloats(row, q)
		}
	}
}
