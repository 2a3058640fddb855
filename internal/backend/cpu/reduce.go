package cpu

import (
	"fmt"
	"math"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	y := backend.SumDim(x, -1, true)   // [2, 3, 4] -> [2, 3, 1]
//	z := backend.SumDim(x, -1, false)  // [2, 3, 4] -> [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	outShape, outer, size, inner := reduceLayout(x.Shape(), dim, keepDim)
	result := cpu.alloc("sumdim", outShape, x.DType())

	switch x.DType() {
	case tensor.Float32:
		sumDimTyped(result.AsFloat32(), x.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		sumDimTyped(result.AsFloat64(), x.AsFloat64(), outer, size, inner)
	case tensor.Int32:
		sumDimTyped(result.AsInt32(), x.AsInt32(), outer, size, inner)
	case tensor.Int64:
		sumDimTyped(result.AsInt64(), x.AsInt64(), outer, size, inner)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s", x.DType()))
	}
	return result
}

// Norm computes the Euclidean norm along dim.
// Squares are accumulated in float64 regardless of the input dtype.
func (cpu *CPUBackend) Norm(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	outShape, outer, size, inner := reduceLayout(x.Shape(), dim, keepDim)
	result := cpu.alloc("norm", outShape, x.DType())

	switch x.DType() {
	case tensor.Float32:
		normTyped(result.AsFloat32(), x.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		normTyped(result.AsFloat64(), x.AsFloat64(), outer, size, inner)
	default:
		panic(fmt.Sprintf("norm: expected floating point tensor, got %s", x.DType()))
	}
	return result
}

// reduceLayout views shape as [outer, size, inner] around dim.
func reduceLayout(shape tensor.Shape, dim int, keepDim bool) (outShape tensor.Shape, outer, size, inner int) {
	dim = shape.Dim(dim)

	outer, inner = 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	size = shape[dim]

	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, len(shape)-1)
		outShape = append(outShape, shape[:dim]...)
		outShape = append(outShape, shape[dim+1:]...)
	}
	return outShape, outer, size, inner
}

func sumDimTyped[T tensor.DType](dst, src []T, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			var sum T
			for s := 0; s < size; s++ {
				sum += src[(o*size+s)*inner+in]
			}
			dst[o*inner+in] = sum
		}
	}
}

func normTyped[T tensor.Float](dst, src []T, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			var sum float64
			for s := 0; s < size; s++ {
				v := float64(src[(o*size+s)*inner+in])
				sum += v * v
			}
			dst[o*inner+in] = T(math.Sqrt(sum))
		}
	}
}
