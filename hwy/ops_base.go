package hwy

import "math"

// This file provides pure Go implementations of the 128-bit integer lane
// operations. Each function documents the SSSE3 instruction whose lane
// semantics it reproduces; results are identical on every GOARCH.

// LoadInt8x16 loads the first 16 values of src.
// Panics if len(src) < 16.
func LoadInt8x16(src []int8) Int8x16 {
	return Int8x16(src[:16])
}

// LoadUint8x16 loads the first 16 values of src.
// Panics if len(src) < 16.
func LoadUint8x16(src []uint8) Uint8x16 {
	return Uint8x16(src[:16])
}

// StoreInt32x4 writes the 4 lanes of v to dst.
func StoreInt32x4(v Int32x4, dst []int32) {
	copy(dst[:4], v[:])
}

// StoreInt16x8 writes the 8 lanes of v to dst.
func StoreInt16x8(v Int16x8, dst []int16) {
	copy(dst[:8], v[:])
}

// SetInt8x16 returns a vector with all lanes set to value.
func SetInt8x16(value int8) Int8x16 {
	var v Int8x16
	for i := range v {
		v[i] = value
	}
	return v
}

// SetUint8x16 returns a vector with all lanes set to value.
func SetUint8x16(value uint8) Uint8x16 {
	var v Uint8x16
	for i := range v {
		v[i] = value
	}
	return v
}

// SetInt16x8 returns a vector with all lanes set to value.
func SetInt16x8(value int16) Int16x8 {
	return Int16x8{value, value, value, value, value, value, value, value}
}

// SetInt32x4 returns a vector with all lanes set to value.
func SetInt32x4(value int32) Int32x4 {
	return Int32x4{value, value, value, value}
}

// ZeroInt16x8 returns a vector with all lanes zero.
func ZeroInt16x8() Int16x8 {
	return Int16x8{}
}

// ZeroInt32x4 returns a vector with all lanes zero.
func ZeroInt32x4() Int32x4 {
	return Int32x4{}
}

// AddInt16x8 performs lane-wise wrapping addition (PADDW).
func AddInt16x8(a, b Int16x8) Int16x8 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// AddInt32x4 performs lane-wise wrapping addition (PADDD).
func AddInt32x4(a, b Int32x4) Int32x4 {
	return Int32x4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// AbsInt8x16 returns the absolute value of each lane as an unsigned byte
// (PABSB). The lane -128 maps to 128, which is representable unsigned.
func AbsInt8x16(a Int8x16) Uint8x16 {
	var r Uint8x16
	for i, x := range a {
		if x < 0 {
			r[i] = uint8(-int16(x))
		} else {
			r[i] = uint8(x)
		}
	}
	return r
}

// CopySignInt8x16 transfers the sign of a onto b (PSIGNB): lanes where a is
// negative are negated, lanes where a is zero become zero, and the remaining
// lanes are kept. Negation wraps, so -(-128) stays -128.
func CopySignInt8x16(b, a Int8x16) Int8x16 {
	var r Int8x16
	for i, s := range a {
		switch {
		case s < 0:
			r[i] = -b[i]
		case s > 0:
			r[i] = b[i]
		}
	}
	return r
}

// SatWidenMulPairwiseAdd multiplies unsigned a by signed b lane-wise, then
// adds adjacent products into 8 int16 lanes with signed saturation
// (PMADDUBSW):
//
//	r[i] = sat16(a[2i]*b[2i] + a[2i+1]*b[2i+1])
func SatWidenMulPairwiseAdd(a Uint8x16, b Int8x16) Int16x8 {
	var r Int16x8
	for i := range r {
		lo := int32(a[2*i]) * int32(b[2*i])
		hi := int32(a[2*i+1]) * int32(b[2*i+1])
		r[i] = saturateInt16(lo + hi)
	}
	return r
}

// WidenMulPairwiseAdd multiplies int16 lanes and adds adjacent products into
// 4 int32 lanes (PMADDWD). The only overflowing input, four lanes of -32768,
// wraps to math.MinInt32 exactly like the instruction.
//
//	r[i] = a[2i]*b[2i] + a[2i+1]*b[2i+1]
func WidenMulPairwiseAdd(a, b Int16x8) Int32x4 {
	var r Int32x4
	for i := range r {
		lo := int64(a[2*i]) * int64(b[2*i])
		hi := int64(a[2*i+1]) * int64(b[2*i+1])
		r[i] = int32(lo + hi)
	}
	return r
}

// InterleaveUpper64 returns the upper 64-bit halves of a and b
// (PUNPCKHQDQ): {a[2], a[3], b[2], b[3]}.
func InterleaveUpper64(a, b Int32x4) Int32x4 {
	return Int32x4{a[2], a[3], b[2], b[3]}
}

// Shuffle2301 swaps adjacent 32-bit lanes (PSHUFD with _MM_SHUFFLE(2,3,0,1)):
// {v[1], v[0], v[3], v[2]}.
func Shuffle2301(v Int32x4) Int32x4 {
	return Int32x4{v[1], v[0], v[3], v[2]}
}

// GetLane0 returns the lowest lane (MOVD).
func GetLane0(v Int32x4) int32 {
	return v[0]
}

func saturateInt16(x int32) int16 {
	if x > math.MaxInt16 {
		return math.MaxInt16
	}
	if x < math.MinInt16 {
		return math.MinInt16
	}
	return int16(x)
}
