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

// Package main prints the CPU features that decide which int8 tier the
// qmatvec kernels would use, along with their overflow budgets.
package main

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-highway-qmatvec/hwy"
	"github.com/ajroetker/go-highway-qmatvec/hwy/contrib/qmatvec"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Println()

	fmt.Printf("Highway dispatch level: %s\n", hwy.CurrentLevel())
	fmt.Printf("Highway dispatch width: %d bytes\n", hwy.CurrentWidth())
	fmt.Printf("Highway dispatch name: %s\n", hwy.CurrentName())
	fmt.Printf("HWY_NO_SIMD: %v\n", hwy.NoSimdEnv())
	fmt.Printf("Debug checks: %v\n", hwy.DebugChecks)
	fmt.Println()

	switch runtime.GOARCH {
	case "arm64":
		printARM64Features()
	case "amd64":
		printAMD64Features()
	}

	fmt.Println()
	fmt.Printf("Highway HasInt8Tier:   %v\n", hwy.HasInt8Tier())
	fmt.Printf("Highway HasSSSE3:      %v\n", hwy.HasSSSE3())
	fmt.Printf("Highway HasVNNI:       %v\n", hwy.HasVNNI())
	fmt.Printf("Highway HasARMDotProd: %v\n", hwy.HasARMDotProd())

	fmt.Println()
	fmt.Println("=== qmatvec overflow budgets (columns) ===")
	fmt.Printf("  Dense:       %d\n", qmatvec.MaxSafeCols)
	fmt.Printf("  Per-channel: %d\n", qmatvec.MaxSafeColsPerChannel)
	fmt.Printf("  Sparse:      %d\n", qmatvec.MaxSparseCols)
}

func printARM64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
	fmt.Printf("  HasASIMD:    %v (NEON baseline)\n", cpu.ARM64.HasASIMD)
	fmt.Printf("  HasASIMDDP:  %v (SDOT/UDOT, ARMv8.2-A)\n", cpu.ARM64.HasASIMDDP)
	fmt.Printf("  HasSVE:      %v (Scalable Vector Extension)\n", cpu.ARM64.HasSVE)
	fmt.Printf("  HasSVE2:     %v (SVE2)\n", cpu.ARM64.HasSVE2)
}

func printAMD64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
	fmt.Printf("  HasSSE2:        %v\n", cpu.X86.HasSSE2)
	fmt.Printf("  HasSSSE3:       %v (PMADDUBSW, PSIGNB, PABSB)\n", cpu.X86.HasSSSE3)
	fmt.Printf("  HasSSE41:       %v\n", cpu.X86.HasSSE41)
	fmt.Printf("  HasAVX2:        %v\n", cpu.X86.HasAVX2)
	fmt.Printf("  HasAVX512F:     %v\n", cpu.X86.HasAVX512F)
	fmt.Printf("  HasAVX512BW:    %v\n", cpu.X86.HasAVX512BW)
	fmt.Printf("  HasAVX512VNNI:  %v (VPDPBUSD)\n", cpu.X86.HasAVX512VNNI)
}
