// Package nn implements the neural network modules Starlight is built from.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named weight tensors
//   - Linear: Fully connected layer with optional bias
//   - Embedding: Token lookup table
//   - SiLU: Sigmoid-weighted linear unit
//   - SRMSNorm: Parameter-free scaled RMS normalization
//   - PreActFFN: Pre-activation feed-forward block
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/starlight-ml/starlight/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all weights owned by the module
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all parameters of this module, including those of
	// nested modules. Modules without weights return an empty slice.
	Parameters() []*Parameter[B]
}
