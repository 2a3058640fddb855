package tensor

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a := tensor.Ones[float32](Shape{3, 1}, backend)
//	b := tensor.Ones[float32](Shape{3, 5}, backend)
//	c := a.Add(b) // Shape: [3, 5] (broadcasted)
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Mul(t.raw, other.raw), t.backend)
}

// Div performs element-wise division with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Div(t.raw, other.raw), t.backend)
}

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) → (M, N).
//
// Example:
//
//	a := tensor.Randn[float32](Shape{3, 4}, rng, backend)
//	b := tensor.Randn[float32](Shape{4, 5}, rng, backend)
//	c := a.MatMul(b) // Shape: [3, 5]
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.MatMul(t.raw, other.raw), t.backend)
}

// Reshape returns a tensor with the same data but different shape.
// The new shape must have the same number of elements.
//
// Example:
//
//	emb := wte.Embedding(tokens)   // Shape: [2, 40, 16]
//	flat := emb.Reshape(2, 40*16) // Shape: [2, 640]
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	return New[T, B](t.backend.Reshape(t.raw, Shape(newShape)), t.backend)
}

// Transpose swaps the two dimensions of a 2D tensor.
func (t *Tensor[T, B]) Transpose() *Tensor[T, B] {
	return New[T, B](t.backend.Transpose(t.raw), t.backend)
}

// T is shorthand for Transpose.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	return t.Transpose()
}

// MulScalar multiplies every element by scalar.
func (t *Tensor[T, B]) MulScalar(scalar float64) *Tensor[T, B] {
	return New[T, B](t.backend.MulScalar(t.raw, scalar), t.backend)
}

// AddScalar adds scalar to every element.
func (t *Tensor[T, B]) AddScalar(scalar float64) *Tensor[T, B] {
	return New[T, B](t.backend.AddScalar(t.raw, scalar), t.backend)
}

// Sqrt computes the element-wise square root.
func (t *Tensor[T, B]) Sqrt() *Tensor[T, B] {
	return New[T, B](t.backend.Sqrt(t.raw), t.backend)
}

// SiLU applies x * sigmoid(x) element-wise.
func (t *Tensor[T, B]) SiLU() *Tensor[T, B] {
	return New[T, B](t.backend.SiLU(t.raw), t.backend)
}

// SumDim sums along dim. Negative dims count from the end.
func (t *Tensor[T, B]) SumDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T, B](t.backend.SumDim(t.raw, dim, keepDim), t.backend)
}

// Norm computes the Euclidean norm along dim. Negative dims count from the end.
//
// Example:
//
//	x := tensor.Randn[float64](Shape{2, 768}, rng, backend)
//	n := x.Norm(-1, true) // Shape: [2, 1]
func (t *Tensor[T, B]) Norm(dim int, keepDim bool) *Tensor[T, B] {
	return New[T, B](t.backend.Norm(t.raw, dim, keepDim), t.backend)
}

// Embedding treats t as a [N, D] lookup table and gathers the rows named by
// indices, returning [...indices.shape, D].
func (t *Tensor[T, B]) Embedding(indices *Tensor[int32, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Embedding(t.raw, indices.raw), t.backend)
}

// Float32 casts the tensor to float32.
func (t *Tensor[T, B]) Float32() *Tensor[float32, B] {
	return New[float32, B](t.backend.Cast(t.raw, Float32), t.backend)
}

// Float64 casts the tensor to float64.
func (t *Tensor[T, B]) Float64() *Tensor[float64, B] {
	return New[float64, B](t.backend.Cast(t.raw, Float64), t.backend)
}

// Int32 casts the tensor to int32, truncating toward zero.
func (t *Tensor[T, B]) Int32() *Tensor[int32, B] {
	return New[int32, B](t.backend.Cast(t.raw, Int32), t.backend)
}

// Cast converts t to element type U.
//
// Example:
//
//	x64 := tensor.Cast[float64](x) // elevated precision copy of x
func Cast[U, T DType, B Backend](t *Tensor[T, B]) *Tensor[U, B] {
	return New[U, B](t.backend.Cast(t.raw, DataTypeOf[U]()), t.backend)
}
