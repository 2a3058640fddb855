package nn

import (
	"fmt"
	"math/rand"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// Embedding is a lookup table that maps discrete indices to dense vectors.
//
//   - Weight: [NumEmbed, EmbedDim]
//   - Forward: indices [batch, seq] -> embeddings [batch, seq, EmbedDim]
//
// Example:
//
//	embed := nn.NewEmbedding(91, 16, rng, backend)
//	embeddings := embed.Forward(tokens) // [2, 40] -> [2, 40, 16]
type Embedding[B tensor.Backend] struct {
	Weight   *Parameter[B] // [NumEmbed, EmbedDim]
	NumEmbed int           // vocabulary size
	EmbedDim int           // vector size
}

// NewEmbedding creates an Embedding with weights drawn from N(0, 1).
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, rng *rand.Rand, backend B) *Embedding[B] {
	weight := Normal(tensor.Shape{numEmbeddings, embeddingDim}, rng, backend)
	return NewEmbeddingWithWeight(weight)
}

// NewEmbeddingWithWeight creates an Embedding around an existing
// [numEmbeddings, embeddingDim] weight.
func NewEmbeddingWithWeight[B tensor.Backend](weight *tensor.Tensor[float32, B]) *Embedding[B] {
	shape := weight.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("NewEmbeddingWithWeight: weight must be 2D, got shape %v", shape))
	}
	return &Embedding[B]{
		Weight:   NewParameter("weight", weight),
		NumEmbed: shape[0],
		EmbedDim: shape[1],
	}
}

// Forward looks up the embedding vector for every index.
// Panics if an index is outside [0, NumEmbed).
func (e *Embedding[B]) Forward(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	return e.Weight.Tensor().Embedding(indices)
}

// Parameters returns [Weight].
func (e *Embedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.Weight}
}
