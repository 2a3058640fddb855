package nn

import (
	"math/rand"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// PreActFFN is a pre-activation feed-forward block.
//
// Architecture:
//
//	x -> SiLU -> SRMSNorm -> Up (dModel->dFF) -> SiLU -> SRMSNorm -> Down (dFF->dModel)
//
// Both projections are bias-free. The block returns only the branch output;
// the caller adds the residual: h = h + ffn.Forward(h).
//
// Example:
//
//	ffn := nn.NewPreActFFN(768, 768, 1e-6, rng, backend)
//	h = h.Add(ffn.Forward(h))
type PreActFFN[B tensor.Backend] struct {
	Up   *Linear[B] // wu: [dFF, dModel]
	Down *Linear[B] // wd: [dModel, dFF]
	Act  *SiLU[B]
	Norm *SRMSNorm[B]
}

// NewPreActFFN creates a block with Up and Down initialized from rng, in that
// order.
func NewPreActFFN[B tensor.Backend](dModel, dFF int, eps float64, rng *rand.Rand, backend B) *PreActFFN[B] {
	return &PreActFFN[B]{
		Up:   NewLinear(dModel, dFF, false, rng, backend),
		Down: NewLinear(dFF, dModel, false, rng, backend),
		Act:  NewSiLU[B](),
		Norm: NewSRMSNorm[B](eps),
	}
}

// Forward computes the branch output.
//
// Input shape: [batch, dModel]
// Output shape: [batch, dModel]
func (f *PreActFFN[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	h := f.Norm.Forward(f.Act.Forward(x))
	h = f.Up.Forward(h)
	h = f.Norm.Forward(f.Act.Forward(h))
	return f.Down.Forward(h)
}

// Parameters returns the block's parameters named "wu.weight" and "wd.weight".
func (f *PreActFFN[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{
		f.Up.Weight().Prefixed("wu"),
		f.Down.Weight().Prefixed("wd"),
	}
}
