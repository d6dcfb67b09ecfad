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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// hasVNNI indicates AVX-512 VNNI (VPDPBUSD), the fused successor of the
// PMADDUBSW + PMADDWD pair.
var hasVNNI bool

func init() {
	// Check if SIMD is disabled via environment variable
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	detectCPUFeatures()
}

func detectCPUFeatures() {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW:
		currentLevel = DispatchAVX512
		currentWidth = 64
		currentName = "avx512"
	case cpu.X86.HasAVX2:
		currentLevel = DispatchAVX2
		currentWidth = 32
		currentName = "avx2"
	case cpu.X86.HasSSSE3:
		currentLevel = DispatchSSSE3
		currentWidth = 16
		currentName = "ssse3"
	default:
		// SSE2 is baseline for amd64
		currentLevel = DispatchSSE2
		currentWidth = 16
		currentName = "sse2"
	}
	hasVNNI = cpu.X86.HasAVX512VNNI
}

// HasSSSE3 returns true if the CPU supports PABSB, PSIGNB and PMADDUBSW.
func HasSSSE3() bool {
	return cpu.X86.HasSSSE3 && currentLevel != DispatchScalar
}

// HasVNNI returns true if the CPU supports AVX-512 VNNI int8 dot products.
func HasVNNI() bool {
	return hasVNNI
}

// HasARMDotProd returns false on x86 (SDOT is ARM-specific).
func HasARMDotProd() bool {
	return false
}
