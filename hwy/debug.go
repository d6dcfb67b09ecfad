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

import "fmt"

// Assert panics with a formatted message when cond is false.
//
// Kernels guard their calls with the DebugChecks constant so release builds
// compile the check, and its argument boxing, away entirely:
//
//	if hwy.DebugChecks {
//		hwy.Assert(cols%16 == 0, "cols %d not a multiple of 16", cols)
//	}
//
// Build with -tags hwydebug to enable.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic("hwy: assertion failed: " + fmt.Sprintf(format, args...))
	}
}
