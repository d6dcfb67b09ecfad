// Package contrib groups the integer kernels built on the hwy lane types.
//
// Subpackages:
//   - qmatvec: int8 matrix × batched-vector multiply-accumulate, dense and
//     block-sparse, with per-channel zero-point correction
//   - quantize: float32 → int8 symmetric and asymmetric quantization that
//     produces qmatvec's vectors, scales and offsets
//   - workerpool: persistent goroutine pool behind the Parallel* drivers
//
// # Example Usage
//
//	import (
//	    "github.com/ajroetker/go-highway-qmatvec/hwy/contrib/qmatvec"
//	    "github.com/ajroetker/go-highway-qmatvec/hwy/contrib/quantize"
//	)
//
//	q := make([]int8, len(acts))
//	_, _, s := quantize.SymmetricQuantizeFloats(acts, q)
//	qmatvec.DenseMultiplyAccumulate(weights, rows, cols, q, []float32{s * wScale}, 1, out, 1)
package contrib
