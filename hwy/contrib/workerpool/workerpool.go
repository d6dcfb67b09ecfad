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

// Package workerpool provides a persistent worker pool for splitting kernel
// calls across goroutines. A Pool is created once and reused, so a batch of
// matrix-vector products pays no goroutine spawn or channel allocation per
// call.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	qmatvec.ParallelDenseMultiplyAccumulate(pool, weights, rows, cols, vectors, scales, nBatch, result, 1)
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Executor runs fn over [0, n) split into contiguous, disjoint ranges and
// returns once every range has completed.
type Executor interface {
	ParallelFor(n int, fn func(start, end int))
}

// Serial is an Executor that runs the whole range on the calling goroutine.
type Serial struct{}

// ParallelFor calls fn(0, n) when n > 0.
func (Serial) ParallelFor(n int, fn func(start, end int)) {
	if n > 0 {
		fn(0, n)
	}
}

// Pool is a persistent worker pool. Workers are spawned once by New and
// live until Close.
type Pool struct {
	numWorkers int
	work       chan task
	// mu is held for reading while tasks are sent, so Close cannot close
	// work under a sender.
	mu     sync.RWMutex
	closed bool
}

type task struct {
	fn   func()
	done *sync.WaitGroup
}

// New creates a pool with numWorkers goroutines.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		work:       make(chan task, numWorkers*2),
	}
	for range numWorkers {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	for t := range p.work {
		t.fn()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers after queued work drains. It waits for calls
// that are already handing out tasks. Calling Close more than once, or
// alongside ParallelFor, is safe; a closed pool runs ParallelFor on the
// caller's goroutine.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.work)
	}
}

// ParallelFor splits [0, n) into at most NumWorkers contiguous chunks and
// blocks until fn has returned for all of them.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.work <- task{fn: func() { fn(start, end) }, done: &wg}
	}
	p.mu.RUnlock()
	wg.Wait()
}

// ParallelForAtomic hands out single indices through an atomic counter,
// which balances load when the cost per index varies (for example sparse
// rows with very different block counts).
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	p.mu.RLock()
	if workers == 1 || p.closed {
		p.mu.RUnlock()
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.work <- task{
			fn: func() {
				for {
					i := int(next.Add(1)) - 1
					if i >= n {
						return
					}
					fn(i)
				}
			},
			done: &wg,
		}
	}
	p.mu.RUnlock()
	wg.Wait()
}
