package cpu

import (
	"fmt"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// Embedding performs embedding lookup.
// weight: [numEmbeddings, embeddingDim]
// indices: any shape of int32 indices
// output: [...indices.shape, embeddingDim]
//
// Panics if an index falls outside [0, numEmbeddings).
func (cpu *CPUBackend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	if indices.DType() != tensor.Int32 {
		panic(fmt.Sprintf("embedding: indices must be int32, got %s", indices.DType()))
	}

	weightShape := weight.Shape()
	if len(weightShape) != 2 {
		panic(fmt.Sprintf("embedding: weight must be 2D, got shape %v", weightShape))
	}
	numEmbeddings, embeddingDim := weightShape[0], weightShape[1]

	outShape := append(indices.Shape().Clone(), embeddingDim)
	result := cpu.alloc("embedding", outShape, weight.DType())

	idx := indices.AsInt32()
	switch weight.DType() {
	case tensor.Float32:
		embeddingTyped(result.AsFloat32(), weight.AsFloat32(), idx, numEmbeddings, embeddingDim)
	case tensor.Float64:
		embeddingTyped(result.AsFloat64(), weight.AsFloat64(), idx, numEmbeddings, embeddingDim)
	default:
		panic(fmt.Sprintf("embedding: unsupported weight dtype %s", weight.DType()))
	}
	return result
}

func embeddingTyped[T tensor.Float](dst, weight []T, indices []int32, numEmbeddings, embeddingDim int) {
	for i, raw := range indices {
		row := int(raw)
		if row < 0 || row >= numEmbeddings {
			panic(fmt.Sprintf("embedding: index %d out of bounds [0, %d)", row, numEmbeddings))
		}
		copy(dst[i*embeddingDim:(i+1)*embeddingDim], weight[row*embeddingDim:(row+1)*embeddingDim])
	}
}
