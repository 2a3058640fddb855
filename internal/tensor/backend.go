package tensor

// Backend is the capability set the model needs from a compute backend.
//
// Binary operations broadcast NumPy-style. Operations never modify their
// inputs in place.
//
// Shape violations and out-of-range indices panic with a descriptive
// message; callers check their own preconditions before dispatching.
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul multiplies 2D tensors: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor) *RawTensor // 2D only

	// Scalar operations
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	AddScalar(x *RawTensor, scalar float64) *RawTensor

	// Element-wise math and activations
	Sqrt(x *RawTensor) *RawTensor
	SiLU(x *RawTensor) *RawTensor // x * sigmoid(x)

	// Reductions along one dimension
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Norm(x *RawTensor, dim int, keepDim bool) *RawTensor // Euclidean norm

	// Embedding looks up rows of weight [N, D] by int32 indices of any shape,
	// producing [...indices.shape, D].
	Embedding(weight, indices *RawTensor) *RawTensor

	// Cast converts to a different data type.
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
