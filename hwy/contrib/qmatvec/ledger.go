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

package qmatvec

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-highway-qmatvec/hwy"
)

var (
	// ErrColsNotBlockAligned is returned when m_cols is not a multiple of BlockSize.
	ErrColsNotBlockAligned = errors.New("qmatvec: m_cols is not a multiple of the block size")

	// ErrTooManyBlocks is returned when a row has more blocks than a ledger
	// byte can index or count.
	ErrTooManyBlocks = errors.New("qmatvec: row has more blocks than a ledger byte can address")

	// ErrMalformedLedger is returned by ValidateLedger.
	ErrMalformedLedger = errors.New("qmatvec: malformed ledger")
)

// LedgerCursor walks a block-sparse matrix and its ledger in lockstep.
//
// Two read positions advance independently: one over ledger bytes, one over
// packed matrix data. The packed position moves by exactly BlockSize for
// every block index consumed from the ledger, regardless of the index value;
// the index only locates the matching slice of the dense vector.
//
// A LedgerCursor is a value type and performs no bounds validation beyond
// Go's own slice checks.
type LedgerCursor struct {
	ledger []uint8
	matrix []int8
	li     int
	mi     int
}

// NewLedgerCursor returns a cursor positioned at the first row.
func NewLedgerCursor(matrix []int8, ledger []uint8) LedgerCursor {
	return LedgerCursor{ledger: ledger, matrix: matrix}
}

// NextRow consumes a row's count byte and returns the number of nonzero
// blocks that follow. Exactly that many NextBlock calls must come next.
func (c *LedgerCursor) NextRow() int {
	n := int(c.ledger[c.li])
	c.li++
	return n
}

// NextBlock consumes one block index and returns the next packed block
// together with the first dense column it covers.
func (c *LedgerCursor) NextBlock() (block hwy.Int8x16, col int) {
	col = int(c.ledger[c.li]) * BlockSize
	c.li++
	block = hwy.LoadInt8x16(c.matrix[c.mi:])
	c.mi += BlockSize
	return block, col
}

// LedgerOffset returns the number of ledger bytes consumed so far.
func (c *LedgerCursor) LedgerOffset() int {
	return c.li
}

// MatrixOffset returns the number of packed matrix values consumed so far.
func (c *LedgerCursor) MatrixOffset() int {
	return c.mi
}

// LedgerStats summarizes the sparsity of a ledger.
type LedgerStats struct {
	Rows          int
	NonzeroBlocks int
	TotalBlocks   int
}

// Density returns the fraction of blocks stored, in [0, 1].
func (s LedgerStats) Density() float64 {
	if s.TotalBlocks == 0 {
		return 0
	}
	return float64(s.NonzeroBlocks) / float64(s.TotalBlocks)
}

// BuildLedger converts a dense [mRows, mCols] matrix into packed nonzero
// blocks and the ledger that indexes them. A block is kept when any of its
// 16 values is nonzero.
func BuildLedger(dense []int8, mRows, mCols int) (packed []int8, ledger []uint8, err error) {
	if mCols%BlockSize != 0 {
		return nil, nil, fmt.Errorf("build ledger with m_cols=%d: %w", mCols, ErrColsNotBlockAligned)
	}
	if mCols > MaxSparseCols {
		return nil, nil, fmt.Errorf("build ledger with m_cols=%d: %w", mCols, ErrTooManyBlocks)
	}
	if len(dense) < mRows*mCols {
		panic("matrix slice too small")
	}

	blocksPerRow := mCols / BlockSize
	for row := range mRows {
		rowData := dense[row*mCols : (row+1)*mCols]
		countAt := len(ledger)
		ledger = append(ledger, 0)
		count := 0
		for blk := range blocksPerRow {
			block := rowData[blk*BlockSize : (blk+1)*BlockSize]
			if isZeroBlock(block) {
				continue
			}
			count++
			if count > 255 {
				return nil, nil, fmt.Errorf("build ledger row %d: %d nonzero blocks: %w", row, count, ErrTooManyBlocks)
			}
			ledger = append(ledger, uint8(blk))
			packed = append(packed, block...)
		}
		ledger[countAt] = uint8(count)
	}
	return packed, ledger, nil
}

func isZeroBlock(block []int8) bool {
	for _, v := range block {
		if v != 0 {
			return false
		}
	}
	return true
}

// ValidateLedger checks that ledger describes mRows rows of an mCols-wide
// matrix whose packed data holds exactly packedLen values. It returns the
// ledger's sparsity statistics on success.
//
// The kernels never call this; it is meant for producers and loaders of
// sparse weights.
func ValidateLedger(ledger []uint8, packedLen, mRows, mCols int) (LedgerStats, error) {
	stats := LedgerStats{Rows: mRows}
	if mCols%BlockSize != 0 {
		return stats, fmt.Errorf("validate ledger with m_cols=%d: %w", mCols, ErrColsNotBlockAligned)
	}
	blocksPerRow := mCols / BlockSize
	stats.TotalBlocks = mRows * blocksPerRow

	li := 0
	for row := range mRows {
		if li >= len(ledger) {
			return stats, fmt.Errorf("row %d: ledger ends at byte %d: %w", row, li, ErrMalformedLedger)
		}
		count := int(ledger[li])
		li++
		if count > blocksPerRow {
			return stats, fmt.Errorf("row %d: count %d exceeds %d blocks per row: %w", row, count, blocksPerRow, ErrMalformedLedger)
		}
		if li+count > len(ledger) {
			return stats, fmt.Errorf("row %d: ledger truncated, need %d index bytes: %w", row, count, ErrMalformedLedger)
		}
		prev := -1
		for _, idx := range ledger[li : li+count] {
			if int(idx) >= blocksPerRow {
				return stats, fmt.Errorf("row %d: block index %d out of range [0, %d): %w", row, idx, blocksPerRow, ErrMalformedLedger)
			}
			if int(idx) <= prev {
				return stats, fmt.Errorf("row %d: block index %d not increasing: %w", row, idx, ErrMalformedLedger)
			}
			prev = int(idx)
		}
		li += count
		stats.NonzeroBlocks += count
	}
	if li != len(ledger) {
		return stats, fmt.Errorf("%d trailing ledger bytes: %w", len(ledger)-li, ErrMalformedLedger)
	}
	if want := stats.NonzeroBlocks * BlockSize; packedLen != want {
		return stats, fmt.Errorf("packed matrix holds %d values, ledger needs %d: %w", packedLen, want, ErrMalformedLedger)
	}
	return stats, nil
}
