package nn

import (
	"github.com/starlight-ml/starlight/internal/tensor"
)

// SiLU (Sigmoid Linear Unit), also known as Swish.
//
//	SiLU(x) = x * sigmoid(x) = x / (1 + exp(-x))
type SiLU[B tensor.Backend] struct{}

// NewSiLU creates a new SiLU activation module.
func NewSiLU[B tensor.Backend]() *SiLU[B] {
	return &SiLU[B]{}
}

// Forward applies SiLU element-wise.
func (s *SiLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.SiLU()
}

// Parameters returns an empty slice (SiLU has no weights).
func (s *SiLU[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}
