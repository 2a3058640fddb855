package cpu

import (
	"fmt"

	"github.com/starlight-ml/starlight/internal/tensor"
)

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

func (op binaryOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSub:
		return "sub"
	case opMul:
		return "mul"
	case opDiv:
		return "div"
	default:
		return "unknown"
	}
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opAdd, a, b)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opSub, a, b)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opMul, a, b)
}

// Div performs element-wise division with broadcasting.
// Integer division by zero panics.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opDiv, a, b)
}

func (cpu *CPUBackend) binary(op binaryOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result := cpu.alloc(op.String(), outShape, a.DType())
	switch a.DType() {
	case tensor.Float32:
		binaryTyped[float32](op, result, a, b, needsBroadcast)
	case tensor.Float64:
		binaryTyped[float64](op, result, a, b, needsBroadcast)
	case tensor.Int32:
		binaryTyped[int32](op, result, a, b, needsBroadcast)
	case tensor.Int64:
		binaryTyped[int64](op, result, a, b, needsBroadcast)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}
	return result
}

func binaryFunc[T tensor.DType](op binaryOp) func(x, y T) T {
	switch op {
	case opAdd:
		return func(x, y T) T { return x + y }
	case opSub:
		return func(x, y T) T { return x - y }
	case opMul:
		return func(x, y T) T { return x * y }
	case opDiv:
		return func(x, y T) T { return x / y }
	default:
		panic(fmt.Sprintf("unknown binary op %d", op))
	}
}

func binaryTyped[T tensor.DType](op binaryOp, result, a, b *tensor.RawTensor, needsBroadcast bool) {
	f := binaryFunc[T](op)
	dst := tensor.Slice[T](result)
	x := tensor.Slice[T](a)
	y := tensor.Slice[T](b)

	if !needsBroadcast {
		for i := range dst {
			dst[i] = f(x[i], y[i])
		}
		return
	}

	outShape := result.Shape()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)
	outStrides := result.Strides()

	for i := range dst {
		rem := i
		offA, offB := 0, 0
		for d := range outShape {
			idx := rem / outStrides[d]
			rem %= outStrides[d]
			offA += idx * aStrides[d]
			offB += idx * bStrides[d]
		}
		dst[i] = f(x[offA], y[offB])
	}
}

// broadcastStrides returns strides of in aligned to out's rank, with zero
// stride on broadcast dimensions.
func broadcastStrides(in, out tensor.Shape) []int {
	strides := make([]int, len(out))
	inStrides := in.ComputeStrides()
	shift := len(out) - len(in)
	for d := range in {
		if in[d] != 1 {
			strides[d+shift] = inStrides[d]
		}
	}
	return strides
}
