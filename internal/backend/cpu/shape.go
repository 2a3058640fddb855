package cpu

import (
	"fmt"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// Reshape returns a view of t with a new shape. The buffer is shared.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	return t.WithShape(newShape)
}

// Transpose swaps the dimensions of a 2D tensor into a new buffer.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor) *tensor.RawTensor {
	shape := t.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: expected 2D tensor, got shape %v", shape))
	}
	rows, cols := shape[0], shape[1]

	result := cpu.alloc("transpose", tensor.Shape{cols, rows}, t.DType())
	switch t.DType() {
	case tensor.Float32:
		transposeTyped(result.AsFloat32(), t.AsFloat32(), rows, cols)
	case tensor.Float64:
		transposeTyped(result.AsFloat64(), t.AsFloat64(), rows, cols)
	case tensor.Int32:
		transposeTyped(result.AsInt32(), t.AsInt32(), rows, cols)
	case tensor.Int64:
		transposeTyped(result.AsInt64(), t.AsInt64(), rows, cols)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}
	return result
}

func transposeTyped[T tensor.DType](dst, src []T, rows, cols int) {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst[j*rows+i] = src[i*cols+j]
		}
	}
}
