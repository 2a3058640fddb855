package cpu

import (
	"fmt"

	"github.com/starlight-ml/starlight/internal/parallel"
	"github.com/starlight-ml/starlight/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N)
//
// Output columns are split across goroutines. Every output element is
// accumulated by a single goroutine in ascending K order, so the result is
// identical for any parallel configuration.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result := cpu.alloc("matmul", tensor.Shape{m, n}, a.DType())

	switch a.DType() {
	case tensor.Float32:
		matmulTyped(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n, cpu.par)
	case tensor.Float64:
		matmulTyped(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n, cpu.par)
	case tensor.Int32:
		matmulTyped(result.AsInt32(), a.AsInt32(), b.AsInt32(), m, k, n, cpu.par)
	case tensor.Int64:
		matmulTyped(result.AsInt64(), a.AsInt64(), b.AsInt64(), m, k, n, cpu.par)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// matmulTyped computes C = A @ B with an i-k-j loop over the column range
// [lo, hi). c must be zeroed.
func matmulTyped[T tensor.DType](c, a, b []T, m, k, n int, par parallel.Config) {
	parallel.For(n, par, func(lo, hi int) {
		for i := 0; i < m; i++ {
			row := c[i*n+lo : i*n+hi]
			for kk := 0; kk < k; kk++ {
				aik := a[i*k+kk]
				bRow := b[kk*n+lo : kk*n+hi]
				for j := range row {
					row[j] += aik * bRow[j]
				}
			}
		}
	})
}
