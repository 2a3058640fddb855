package nn

import (
	"fmt"
	"math/rand"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T (+ b)
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the optional bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(640, 768, false, rng, backend)
//	output := layer.Forward(input) // [batch, 640] -> [batch, 768]
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // [out_features, in_features]
	bias        *Parameter[B] // [out_features], nil when disabled
}

// NewLinear creates a new Linear layer.
//
// Weights (and bias, if enabled) are drawn from U(-1/sqrt(in), 1/sqrt(in)).
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, useBias bool, rng *rand.Rand, backend B) *Linear[B] {
	weight := KaimingUniform(inFeatures, tensor.Shape{outFeatures, inFeatures}, rng, backend)

	l := &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", weight),
	}
	if useBias {
		bias := KaimingUniform(inFeatures, tensor.Shape{outFeatures}, rng, backend)
		l.bias = NewParameter("bias", bias)
	}
	return l
}

// NewLinearWithWeight creates a bias-free Linear layer around an existing
// [out_features, in_features] weight.
func NewLinearWithWeight[B tensor.Backend](weight *tensor.Tensor[float32, B]) *Linear[B] {
	shape := weight.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("NewLinearWithWeight: weight must be 2D, got shape %v", shape))
	}
	return &Linear[B]{
		inFeatures:  shape[1],
		outFeatures: shape[0],
		weight:      NewParameter("weight", weight),
	}
}

// Forward computes y = x @ W.T (+ b).
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, inputShape[1]))
	}

	// [batch, in] @ [in, out] = [batch, out]
	output := input.MatMul(l.weight.Tensor().T())

	if l.bias != nil {
		output = output.Add(l.bias.Tensor().Reshape(1, l.outFeatures))
	}
	return output
}

// Parameters returns [weight, bias] if bias is present, otherwise [weight].
func (l *Linear[B]) Parameters() []*Parameter[B] {
	if l.bias != nil {
		return []*Parameter[B]{l.weight, l.bias}
	}
	return []*Parameter[B]{l.weight}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter, or nil.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}
