package nn

import (
	"math"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// DefaultNormEpsilon is the epsilon Starlight uses when none is configured.
const DefaultNormEpsilon = 1e-6

// SRMSNorm rescales the last dimension so that its L2 norm becomes sqrt(d):
//
//	y = x / (d^-0.5 * ||x||_2 + eps)
//
// Unlike RMSNorm it has no learnable scale. The arithmetic runs in float64 and
// the result is cast back to float32. The module is stateless apart from
// Epsilon, so one instance may normalize tensors of any width.
//
// Example:
//
//	norm := nn.NewSRMSNorm[B](1e-6)
//	y := norm.Forward(x) // [..., d] -> [..., d]
type SRMSNorm[B tensor.Backend] struct {
	Epsilon float64
}

// NewSRMSNorm creates an SRMSNorm with the given epsilon.
func NewSRMSNorm[B tensor.Backend](epsilon float64) *SRMSNorm[B] {
	return &SRMSNorm[B]{Epsilon: epsilon}
}

// Forward applies SRMSNormFunc with the module's epsilon.
func (n *SRMSNorm[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return SRMSNormFunc(x, n.Epsilon)
}

// Parameters returns an empty slice (SRMSNorm has no weights).
func (n *SRMSNorm[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// SRMSNormFunc normalizes x along its last dimension.
//
// An all-zero row stays zero: the divisor collapses to eps.
func SRMSNormFunc[B tensor.Backend](x *tensor.Tensor[float32, B], eps float64) *tensor.Tensor[float32, B] {
	d := x.Shape().Last()

	x64 := tensor.Cast[float64](x)
	denom := x64.Norm(-1, true).
		MulScalar(1 / math.Sqrt(float64(d))).
		AddScalar(eps)

	return x64.Div(denom).Float32()
}
