package cpu

import (
	"fmt"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// Cast converts the tensor to a different data type.
// Returns x itself when the dtype already matches.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x
	}

	result := cpu.alloc("cast", x.Shape(), dtype)
	switch x.DType() {
	case tensor.Float32:
		castFrom(result, x.AsFloat32())
	case tensor.Float64:
		castFrom(result, x.AsFloat64())
	case tensor.Int32:
		castFrom(result, x.AsInt32())
	case tensor.Int64:
		castFrom(result, x.AsInt64())
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}
	return result
}

func castFrom[F tensor.DType](result *tensor.RawTensor, src []F) {
	switch result.DType() {
	case tensor.Float32:
		convert(result.AsFloat32(), src)
	case tensor.Float64:
		convert(result.AsFloat64(), src)
	case tensor.Int32:
		convert(result.AsInt32(), src)
	case tensor.Int64:
		convert(result.AsInt64(), src)
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", result.DType()))
	}
}

func convert[T, F tensor.DType](dst []T, src []F) {
	for i, v := range src {
		dst[i] = T(v)
	}
}
