// Copyright 2026 Starlight Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn exposes the building blocks of the Starlight network.
package nn

import (
	"math/rand"

	"github.com/starlight-ml/starlight/internal/nn"
	"github.com/starlight-ml/starlight/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a named weight tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a linear layer with weights in U(-1/sqrt(in), 1/sqrt(in)).
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, useBias bool, rng *rand.Rand, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, useBias, rng, backend)
}

// NewLinearWithWeight creates a bias-free linear layer around an existing
// [out, in] weight.
func NewLinearWithWeight[B tensor.Backend](weight *tensor.Tensor[float32, B]) *Linear[B] {
	return nn.NewLinearWithWeight(weight)
}

// Embedding is a lookup table from token ids to vectors.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// NewEmbedding creates an embedding with weights drawn from N(0, 1).
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, rng *rand.Rand, backend B) *Embedding[B] {
	return nn.NewEmbedding(numEmbeddings, embeddingDim, rng, backend)
}

// NewEmbeddingWithWeight creates an embedding around an existing
// [numEmbeddings, embeddingDim] weight.
func NewEmbeddingWithWeight[B tensor.Backend](weight *tensor.Tensor[float32, B]) *Embedding[B] {
	return nn.NewEmbeddingWithWeight(weight)
}

// SiLU is the activation x * sigmoid(x).
type SiLU[B tensor.Backend] = nn.SiLU[B]

// NewSiLU creates a SiLU activation.
func NewSiLU[B tensor.Backend]() *SiLU[B] {
	return nn.NewSiLU[B]()
}

// SRMSNorm is the parameter-free normalization y = x / (d^-0.5 * ||x|| + eps).
type SRMSNorm[B tensor.Backend] = nn.SRMSNorm[B]

// NewSRMSNorm creates an SRMSNorm.
func NewSRMSNorm[B tensor.Backend](epsilon float64) *SRMSNorm[B] {
	return nn.NewSRMSNorm[B](epsilon)
}

// SRMSNormFunc normalizes x along its last dimension.
func SRMSNormFunc[B tensor.Backend](x *tensor.Tensor[float32, B], eps float64) *tensor.Tensor[float32, B] {
	return nn.SRMSNormFunc(x, eps)
}

// PreActFFN is the pre-activation feed-forward block.
type PreActFFN[B tensor.Backend] = nn.PreActFFN[B]

// NewPreActFFN creates a feed-forward block.
func NewPreActFFN[B tensor.Backend](dModel, dFF int, eps float64, rng *rand.Rand, backend B) *PreActFFN[B] {
	return nn.NewPreActFFN(dModel, dFF, eps, rng, backend)
}

// Compile-time checks.
var (
	_ Module[tensor.Backend] = (*Linear[tensor.Backend])(nil)
	_ Module[tensor.Backend] = (*SiLU[tensor.Backend])(nil)
	_ Module[tensor.Backend] = (*SRMSNorm[tensor.Backend])(nil)
	_ Module[tensor.Backend] = (*PreActFFN[tensor.Backend])(nil)
)
