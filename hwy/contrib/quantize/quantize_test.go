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

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ajroetker/go-highway-qmatvec/hwy/contrib/qmatvec"
)

func TestSymmetricQuantizeFloats(t *testing.T) {
	tests := []struct {
		name      string
		input     []float32
		want      []int8
		wantMin   float32
		wantMax   float32
		wantScale float32
	}{
		{
			name:      "empty",
			input:     []float32{},
			want:      []int8{},
			wantScale: 1,
		},
		{
			name:      "all zeros",
			input:     []float32{0, 0, 0},
			want:      []int8{0, 0, 0},
			wantScale: 1,
		},
		{
			name:      "unit range",
			input:     []float32{-1, -0.5, 0, 0.5, 1},
			want:      []int8{-127, -64, 0, 64, 127},
			wantMin:   -1,
			wantMax:   1,
			wantScale: 1.0 / 127,
		},
		{
			name:      "negative side dominates",
			input:     []float32{-254, 127, 1},
			want:      []int8{-127, 64, 1},
			wantMin:   -254,
			wantMax:   127,
			wantScale: 2,
		},
		{
			name:      "single value",
			input:     []float32{-3},
			want:      []int8{-127},
			wantMin:   -3,
			wantMax:   -3,
			wantScale: 3.0 / 127,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]int8, len(tt.input))
			lo, hi, scale := SymmetricQuantizeFloats(tt.input, got)
			if lo != tt.wantMin || hi != tt.wantMax {
				t.Errorf("min, max = %v, %v, want %v, %v", lo, hi, tt.wantMin, tt.wantMax)
			}
			if math.Abs(float64(scale-tt.wantScale)) > 1e-7 {
				t.Errorf("scale = %v, want %v", scale, tt.wantScale)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSymmetricQuantizeFloatsNeverMinInt8(t *testing.T) {
	r := rand.New(rand.NewPCG(4, 5))
	values := make([]float32, 4096)
	for i := range values {
		values[i] = float32(r.NormFloat64() * 10)
	}
	q := make([]int8, len(values))
	_, _, scale := SymmetricQuantizeFloats(values, q)
	for i, v := range q {
		if v == math.MinInt8 {
			t.Fatalf("index %d quantized to -128", i)
		}
		if err := math.Abs(float64(values[i] - scale*float32(v))); err > float64(scale)/2+1e-5 {
			t.Fatalf("index %d: %v reconstructs to %v (error %v > scale/2)", i, values[i], scale*float32(v), err)
		}
	}
}

func TestAsymmetricQuantizeFloats(t *testing.T) {
	tests := []struct {
		name       string
		input      []float32
		want       []int8
		wantScale  float32
		wantOffset int32
	}{
		{
			name:      "all zeros",
			input:     []float32{0, 0},
			want:      []int8{0, 0},
			wantScale: 1,
		},
		{
			name:       "non-negative",
			input:      []float32{0, 127.5, 255},
			want:       []int8{-128, 0, 127},
			wantScale:  1,
			wantOffset: -128,
		},
		{
			name:       "non-positive",
			input:      []float32{-255, -127.5, 0},
			want:       []int8{-128, -1, 127},
			wantScale:  1,
			wantOffset: 127,
		},
		{
			name:       "straddles zero",
			input:      []float32{-128, 0, 127},
			want:       []int8{-128, 0, 127},
			wantScale:  1,
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]int8, len(tt.input))
			scale, offset := AsymmetricQuantizeFloats(tt.input, got)
			if math.Abs(float64(scale-tt.wantScale)) > 1e-6 {
				t.Errorf("scale = %v, want %v", scale, tt.wantScale)
			}
			if offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", offset, tt.wantOffset)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAsymmetricQuantizeFloatsZeroExact(t *testing.T) {
	r := rand.New(rand.NewPCG(8, 9))
	for iter := range 200 {
		values := make([]float32, 33)
		lo := -r.Float32() * 50
		hi := r.Float32() * 10
		for i := range values {
			values[i] = lo + r.Float32()*(hi-lo)
		}
		values[7] = 0
		q := make([]int8, len(values))
		scale, offset := AsymmetricQuantizeFloats(values, q)
		if offset < math.MinInt8 || offset > math.MaxInt8 {
			t.Fatalf("iter %d: offset %d outside int8", iter, offset)
		}
		if int32(q[7]) != offset {
			t.Fatalf("iter %d: 0.0 quantized to %d, want offset %d", iter, q[7], offset)
		}
		for i, v := range q {
			back := scale * float32(int32(v)-offset)
			if err := math.Abs(float64(values[i] - back)); err > 1.01*float64(scale) {
				t.Fatalf("iter %d index %d: %v reconstructs to %v", iter, i, values[i], back)
			}
		}
	}
}

func TestQuantizeBatch(t *testing.T) {
	const nBatch, n = 3, 5
	values := []float32{
		1, 2, 3, 4, 5,
		0, 0, 0, 0, 0,
		-10, 10, 0, 5, -5,
	}

	t.Run("symmetric", func(t *testing.T) {
		q := make([]int8, nBatch*n)
		scales := make([]float32, nBatch)
		QuantizeBatch(values, nBatch, n, q, scales, nil, false)
		for b := range nBatch {
			wantQ := make([]int8, n)
			_, _, wantScale := SymmetricQuantizeFloats(values[b*n:(b+1)*n], wantQ)
			if scales[b] != wantScale {
				t.Errorf("batch %d: scale %v, want %v", b, scales[b], wantScale)
			}
			for i := range n {
				if q[b*n+i] != wantQ[i] {
					t.Errorf("batch %d index %d: got %d, want %d", b, i, q[b*n+i], wantQ[i])
				}
			}
		}
	})

	t.Run("asymmetric", func(t *testing.T) {
		q := make([]int8, nBatch*n)
		scales := make([]float32, nBatch)
		offsets := make([]int32, nBatch)
		QuantizeBatch(values, nBatch, n, q, scales, offsets, true)
		for b := range nBatch {
			wantQ := make([]int8, n)
			wantScale, wantOffset := AsymmetricQuantizeFloats(values[b*n:(b+1)*n], wantQ)
			if scales[b] != wantScale || offsets[b] != wantOffset {
				t.Errorf("batch %d: (%v, %d), want (%v, %d)", b, scales[b], offsets[b], wantScale, wantOffset)
			}
		}
	})

	t.Run("short offsets", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for nil offsets with asymmetric")
			}
		}()
		QuantizeBatch(values, nBatch, n, make([]int8, nBatch*n), make([]float32, nBatch), nil, true)
	})
}

// TestQuantizedMatVecApproximatesFloat runs the full path: quantize float
// weights and activations, multiply with the int8 kernels, and compare
// against the float product.
func TestQuantizedMatVecApproximatesFloat(t *testing.T) {
	const rows, cols, nBatch = 8, 96, 2
	r := rand.New(rand.NewPCG(1, 2))
	weights := make([]float32, rows*cols)
	for i := range weights {
		weights[i] = float32(r.NormFloat64())
	}
	acts := make([]float32, nBatch*cols)
	for i := range acts {
		acts[i] = float32(r.NormFloat64())
	}

	want := make([]float32, nBatch*rows)
	for b := range nBatch {
		for row := range rows {
			var sum float64
			for c := range cols {
				sum += float64(weights[row*cols+c]) * float64(acts[b*cols+c])
			}
			want[b*rows+row] = float32(sum)
		}
	}

	qw := make([]int8, rows*cols)
	_, _, wScale := SymmetricQuantizeFloats(weights, qw)

	// Tolerance: a few quantization steps accumulated over cols products.
	tol := func(scale float32) float64 { return 3 * math.Sqrt(cols) * float64(scale*wScale) * 127 }

	t.Run("symmetric", func(t *testing.T) {
		qa := make([]int8, nBatch*cols)
		scales := make([]float32, nBatch)
		QuantizeBatch(acts, nBatch, cols, qa, scales, nil, false)
		for b := range scales {
			scales[b] *= wScale
		}
		got := make([]float32, nBatch*rows)
		qmatvec.DenseMultiplyAccumulate(qw, rows, cols, qa, scales, nBatch, got, 1)
		for i := range got {
			if d := math.Abs(float64(got[i] - want[i])); d > tol(scales[i/rows]/wScale) {
				t.Errorf("output %d: got %v, want %v (diff %v)", i, got[i], want[i], d)
			}
		}
	})

	t.Run("asymmetric per-channel", func(t *testing.T) {
		qa := make([]int8, nBatch*cols)
		scales := make([]float32, nBatch)
		offsets := make([]int32, nBatch)
		QuantizeBatch(acts, nBatch, cols, qa, scales, offsets, true)
		perChannel := make([]float32, rows)
		for i := range perChannel {
			perChannel[i] = wScale
		}
		got := make([]float32, nBatch*rows)
		qmatvec.DenseMultiplyAccumulatePerChannel(qw, rows, cols, qa, scales, nBatch, got, 1, perChannel, offsets)
		for i := range got {
			if d := math.Abs(float64(got[i] - want[i])); d > tol(scales[i/rows]) {
				t.Errorf("output %d: got %v, want %v (diff %v)", i, got[i], want[i], d)
			}
		}
	})
}

// The reciprocal is taken of the float32 scale, so every value quantizes
// exactly as offset + round(v * (1/scale)) computed in float32.
func TestAsymmetricQuantizeFloatsUsesFloat32Reciprocal(t *testing.T) {
	r := rand.New(rand.NewPCG(12, 13))
	for iter := range 500 {
		values := make([]float32, 64)
		lo := -r.Float32() * 7
		hi := r.Float32() * 13
		for i := range values {
			values[i] = lo + r.Float32()*(hi-lo)
		}
		q := make([]int8, len(values))
		scale, offset := AsymmetricQuantizeFloats(values, q)
		inv := 1 / scale
		for i, v := range values {
			want := offset + int32(math.Round(float64(v*inv)))
			want = min(math.MaxInt8, max(math.MinInt8, want))
			if int32(q[i]) != want {
				t.Fatalf("iter %d index %d: %v quantized to %d, want %d (scale %v, offset %d)",
					iter, i, v, q[i], want, scale, offset)
			}
		}
	}
}
