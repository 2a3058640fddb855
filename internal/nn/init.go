package nn

import (
	"math"
	"math/rand"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// KaimingUniform initializes a weight of the given shape from
// U(-1/sqrt(fan_in), 1/sqrt(fan_in)).
//
// This is the bound PyTorch's nn.Linear uses for its default initialization
// (kaiming_uniform with a = sqrt(5)).
//
// Passing the same seeded rng produces the same weights.
func KaimingUniform[B tensor.Backend](fanIn int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	bound := 1.0 / math.Sqrt(float64(fanIn))
	return tensor.Uniform[float32](shape, -bound, bound, rng, backend)
}

// Normal initializes a tensor from N(0, 1).
func Normal[B tensor.Backend](shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	return tensor.Randn[float32](shape, rng, backend)
}
