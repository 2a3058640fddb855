// Copyright 2026 Starlight Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the tensors Starlight computes on.
//
// The package re-exports:
//   - Tensor[T, B]: Generic tensor with element type T on backend B
//   - RawTensor: Untyped storage that backends operate on
//   - Backend: Capability set a compute backend implements
//   - Shape, DataType, Device: Core type definitions
//
// Example:
//
//	backend := cpu.New()
//	tokens := tensor.Full[int32](tensor.Shape{1, 40}, 1, backend)
package tensor

import (
	"math/rand"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// DType is a constraint for tensor element types: float32, float64, int32, int64.
type DType = tensor.DType

// Float is the floating point subset of DType.
type Float = tensor.Float

// DataType is the runtime element type tag.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Device is the device where tensor data resides.
type Device = tensor.Device

// CPU is the only supported device.
const CPU Device = tensor.CPU

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Backend is the compute backend interface.
type Backend = tensor.Backend

// RawTensor is untyped, row-major tensor storage.
type RawTensor = tensor.RawTensor

// Tensor is a typed tensor on backend B.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// NewRaw allocates a zero-filled RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor holding a copy of data.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice(data, shape, b)
}

// Zeros creates a zero-filled tensor.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T](shape, b)
}

// Full creates a tensor with every element set to value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full(shape, value, b)
}

// Randn creates a tensor drawn from N(0, 1) using rng.
func Randn[T Float, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	return tensor.Randn[T](shape, rng, b)
}
