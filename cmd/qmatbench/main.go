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

// Command qmatbench measures the int8 matrix × batched-vector kernels and
// summarizes benchmark output.
//
// Usage:
//
//	qmatbench run --kernel dense --rows 256,1024 --cols 1024 --batch 1,8
//	go test -bench . ./hwy/contrib/qmatvec | tee new.txt
//	qmatbench report new.txt old.txt
//
// Both subcommands understand benchmark names of the form
// Benchmark<Kernel>/rows=R/cols=C/batch=B, which is what run prints and what
// the package benchmarks are named.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("qmatbench: ")
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
