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

package hwy

import (
	"os"
	"strconv"
)

// DispatchLevel represents the instruction tier detected on this CPU.
//
// The lane operations in this package do not switch implementation on the
// level; it is reported so callers that choose between kernel families can
// confirm the int8 tier is present before calling into it.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD tier, or HWY_NO_SIMD was set.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 only (x86-64 baseline, no PMADDUBSW).
	DispatchSSE2

	// DispatchSSSE3 indicates SSSE3: PABSB, PSIGNB and PMADDUBSW are available.
	DispatchSSSE3

	// DispatchAVX2 indicates AVX2 (256-bit integer SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 with byte/word instructions.
	DispatchAVX512

	// DispatchNEON indicates ARM NEON (128-bit SIMD).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchSSSE3:
		return "ssse3"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel is the detected SIMD level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the SIMD register width in bytes for the current level.
var currentWidth int

// currentName is the human-readable name of the current SIMD level.
var currentName string

// CurrentLevel returns the detected instruction tier.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes.
// For example: 16 for SSSE3/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current SIMD target.
func CurrentName() string {
	return currentName
}

// HasInt8Tier reports whether the CPU natively provides a signed 8-bit
// multiply-accumulate path (PMADDUBSW on x86, SDOT/SMLAL on arm64).
func HasInt8Tier() bool {
	return currentLevel >= DispatchSSSE3
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, Highway reports the scalar tier regardless of CPU capabilities.
// This is useful for testing and debugging.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16 // Use 16-byte vectors even in scalar mode for consistency
	currentName = "scalar"
}
