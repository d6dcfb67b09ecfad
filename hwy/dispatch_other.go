//go:build !amd64 && !arm64

package hwy

func init() {
	// Non-amd64/arm64 architectures have no int8 tier yet.
	// Future implementations will add:
	// - wasm: SIMD128 i16x8.extmul
	// - riscv64: Vector extension vwmacc
	setScalarMode()
}

// HasSSSE3 returns false on non-x86 platforms.
func HasSSSE3() bool {
	return false
}

// HasVNNI returns false on non-x86 platforms.
func HasVNNI() bool {
	return false
}

// HasARMDotProd returns false on non-ARM64 platforms.
func HasARMDotProd() bool {
	return false
}
