// Copyright 2026 Starlight Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starlight-ml/starlight/backend/cpu"
	"github.com/starlight-ml/starlight/tensor"
)

func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.Backend)(nil)
}

func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3}, raw.Shape())
	assert.Equal(t, tensor.Float32, raw.DType())
	assert.Equal(t, 24, raw.ByteSize())
}

func TestTensorAPI(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 4, 6, 8}, x.Add(x).Data())

	tok := tensor.Full[int32](tensor.Shape{1, 4}, 3, backend)
	assert.Equal(t, []int32{3, 3, 3, 3}, tok.Data())
	assert.Equal(t, tensor.Shape{2}, tensor.Zeros[float64](tensor.Shape{2}, backend).Shape())
}
