package cpu

import (
	"fmt"
	"math"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// MulScalar multiplies every element by scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.scalar("mulscalar", x, scalar, true)
}

// AddScalar adds scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.scalar("addscalar", x, scalar, false)
}

func (cpu *CPUBackend) scalar(op string, x *tensor.RawTensor, s float64, mul bool) *tensor.RawTensor {
	result := cpu.alloc(op, x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		scalarTyped(tensor.Slice[float32](result), x.AsFloat32(), float32(s), mul)
	case tensor.Float64:
		scalarTyped(tensor.Slice[float64](result), x.AsFloat64(), s, mul)
	case tensor.Int32:
		scalarTyped(tensor.Slice[int32](result), x.AsInt32(), int32(s), mul)
	case tensor.Int64:
		scalarTyped(tensor.Slice[int64](result), x.AsInt64(), int64(s), mul)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, x.DType()))
	}
	return result
}

func scalarTyped[T tensor.DType](dst, src []T, s T, mul bool) {
	if mul {
		for i, v := range src {
			dst[i] = v * s
		}
		return
	}
	for i, v := range src {
		dst[i] = v + s
	}
}

// Sqrt computes the element-wise square root of a floating point tensor.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("sqrt", x, math.Sqrt)
}

// SiLU applies the sigmoid-weighted linear unit: x * sigmoid(x) = x / (1 + exp(-x)).
func (cpu *CPUBackend) SiLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("silu", x, silu)
}

func silu(v float64) float64 {
	return v / (1 + math.Exp(-v))
}

// unaryFloat evaluates f in float64 and stores the result in x's dtype.
func (cpu *CPUBackend) unaryFloat(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := cpu.alloc(op, x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		unaryTyped(result.AsFloat32(), x.AsFloat32(), f)
	case tensor.Float64:
		unaryTyped(result.AsFloat64(), x.AsFloat64(), f)
	default:
		panic(fmt.Sprintf("%s: expected floating point tensor, got %s", op, x.DType()))
	}
	return result
}

func unaryTyped[T tensor.Float](dst, src []T, f func(float64) float64) {
	for i, v := range src {
		dst[i] = T(f(float64(v)))
	}
}
