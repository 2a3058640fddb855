package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/starlight-ml/starlight/internal/backend/cpu"
	"github.com/starlight-ml/starlight/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataType(t *testing.T) {
	tests := []struct {
		dtype   tensor.DataType
		size    int
		isFloat bool
		name    string
	}{
		{tensor.Float32, 4, true, "float32"},
		{tensor.Float64, 8, true, "float64"},
		{tensor.Int32, 4, false, "int32"},
		{tensor.Int64, 8, false, "int64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.size, tt.dtype.Size())
			assert.Equal(t, tt.isFloat, tt.dtype.IsFloat())
			assert.Equal(t, tt.name, tt.dtype.String())
		})
	}

	assert.Equal(t, tensor.Float32, tensor.DataTypeOf[float32]())
	assert.Equal(t, tensor.Int32, tensor.DataTypeOf[int32]())
}

func TestShape(t *testing.T) {
	s := tensor.Shape{2, 3, 4}

	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, []int{12, 4, 1}, s.ComputeStrides())
	assert.Equal(t, 4, s.Last())
	assert.Equal(t, 2, s.Dim(-1))
	assert.Panics(t, func() { s.Dim(3) })

	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 2, s[0])

	assert.NoError(t, s.Validate())
	assert.Error(t, tensor.Shape{2, 0}.Validate())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      tensor.Shape
		want      tensor.Shape
		broadcast bool
		wantErr   bool
	}{
		{"same", tensor.Shape{3, 5}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, false, false},
		{"column", tensor.Shape{3, 1}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, true, false},
		{"rank", tensor.Shape{5}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, true, false},
		{"incompatible", tensor.Shape{3, 4}, tensor.Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := tensor.BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}
}

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	assert.Equal(t, float32(6), x.At(1, 2))

	x.Set(10, 0, 1)
	assert.Equal(t, []float32{1, 10, 3, 4, 5, 6}, x.Data())

	_, err = tensor.FromSlice([]float32{1, 2}, tensor.Shape{3}, backend)
	assert.Error(t, err)
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	assert.Equal(t, []int32{7, 7, 7}, tensor.Full[int32](tensor.Shape{3}, 7, backend).Data())
	assert.Equal(t, []float64{1, 1}, tensor.Ones[float64](tensor.Shape{2}, backend).Data())

	a := tensor.Randn[float32](tensor.Shape{4, 4}, rand.New(rand.NewSource(1)), backend)
	b := tensor.Randn[float32](tensor.Shape{4, 4}, rand.New(rand.NewSource(1)), backend)
	assert.Equal(t, a.Data(), b.Data(), "same seed must give the same tensor")

	u := tensor.Uniform[float32](tensor.Shape{1000}, -0.5, 0.5, rand.New(rand.NewSource(2)), backend)
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, float32(-0.5))
		assert.Less(t, v, float32(0.5))
	}
}

func TestOps(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	assert.Equal(t, []float32{2, 4, 6, 8}, x.Add(x).Data())
	assert.Equal(t, []float32{7, 10, 15, 22}, x.MatMul(x).Data())
	assert.Equal(t, []float32{1, 3, 2, 4}, x.T().Data())
	assert.Equal(t, tensor.Shape{4}, x.Reshape(4).Shape())
	assert.Equal(t, []float32{3, 7}, x.SumDim(-1, false).Data())
	assert.Equal(t, []float32{0, 0, 0, 0}, x.Sub(x).Data())
	assert.Equal(t, []float32{1, 4, 9, 16}, x.Mul(x).Data())
	assert.Equal(t, []float32{1, 2, 3, 4}, x.Mul(x).Sqrt().Data())
}

func TestEmbedding(t *testing.T) {
	backend := cpu.New()
	weight, err := tensor.FromSlice([]float32{0, 1, 10, 11, 20, 21}, tensor.Shape{3, 2}, backend)
	require.NoError(t, err)
	idx, err := tensor.FromSlice([]int32{2, 0}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	out := weight.Embedding(idx)

	assert.Equal(t, tensor.Shape{1, 2, 2}, out.Shape())
	assert.Equal(t, []float32{20, 21, 0, 1}, out.Data())
}

func TestCast(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{0.5, 1.5}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	x64 := tensor.Cast[float64](x)
	assert.Equal(t, tensor.Float64, x64.DType())
	assert.Equal(t, []float64{0.5, 1.5}, x64.Data())
	assert.Equal(t, []float32{0.5, 1.5}, x64.Float32().Data())
	assert.Equal(t, []float64{0.5, 1.5}, x.Float64().Data())
	assert.Equal(t, []int32{0, 1}, x.Int32().Data())
}

func TestClone_IsIndependent(t *testing.T) {
	backend := cpu.New()
	x := tensor.Zeros[float32](tensor.Shape{2}, backend)

	y := x.Clone()
	y.Set(1, 0)

	assert.Equal(t, float32(0), x.At(0))
	assert.Equal(t, "Tensor[float32][2] on CPU", x.String())
}
