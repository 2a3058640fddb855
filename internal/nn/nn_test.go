package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/starlight-ml/starlight/internal/backend/cpu"
	"github.com/starlight-ml/starlight/internal/nn"
	"github.com/starlight-ml/starlight/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func l2(row []float32) float64 {
	var sum float64
	for _, v := range row {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestLinear_Forward(t *testing.T) {
	backend := cpu.New()
	weight, err := tensor.FromSlice([]float32{
		1, 0, 0,
		0, 1, 1,
	}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	layer := nn.NewLinearWithWeight(weight)

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	y := layer.Forward(x)

	assert.Equal(t, tensor.Shape{2, 2}, y.Shape())
	assert.Equal(t, []float32{1, 5, 4, 11}, y.Data())
	assert.Len(t, layer.Parameters(), 1)
}

func TestLinear_Bias(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(4, 3, true, rand.New(rand.NewSource(0)), backend)

	require.NotNil(t, layer.Bias())
	assert.Len(t, layer.Parameters(), 2)
	assert.Equal(t, 4*3+3, nn.CountParameters(layer.Parameters()))

	y := layer.Forward(tensor.Zeros[float32](tensor.Shape{1, 4}, backend))
	assert.Equal(t, layer.Bias().Tensor().Data(), y.Data(), "zero input yields the bias")
}

func TestLinear_WrongWidthPanics(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(4, 3, false, rand.New(rand.NewSource(0)), backend)

	assert.Panics(t, func() {
		layer.Forward(tensor.Zeros[float32](tensor.Shape{1, 5}, backend))
	})
}

func TestKaimingUniform_Bound(t *testing.T) {
	backend := cpu.New()
	w := nn.KaimingUniform(64, tensor.Shape{32, 64}, rand.New(rand.NewSource(3)), backend)

	bound := float32(1 / math.Sqrt(64))
	for _, v := range w.Data() {
		assert.LessOrEqual(t, v, bound)
		assert.GreaterOrEqual(t, v, -bound)
	}
}

func TestEmbedding_Forward(t *testing.T) {
	backend := cpu.New()
	weight, err := tensor.FromSlice([]float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{3, 3}, backend)
	require.NoError(t, err)
	embed := nn.NewEmbeddingWithWeight(weight)

	indices, err := tensor.FromSlice([]int32{2, 0, 1, 2}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	out := embed.Forward(indices)

	assert.Equal(t, tensor.Shape{2, 2, 3}, out.Shape())
	assert.Equal(t, []float32{7, 8, 9, 1, 2, 3, 4, 5, 6, 7, 8, 9}, out.Data())
	assert.Equal(t, 3, embed.NumEmbed)
	assert.Equal(t, 3, embed.EmbedDim)
}

func TestEmbedding_OutOfRangePanics(t *testing.T) {
	backend := cpu.New()
	embed := nn.NewEmbedding(4, 2, rand.New(rand.NewSource(0)), backend)
	indices, err := tensor.FromSlice([]int32{4}, tensor.Shape{1, 1}, backend)
	require.NoError(t, err)

	assert.Panics(t, func() { embed.Forward(indices) })
}

func TestSiLU_Forward(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{0, 1, -1}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)

	y := nn.NewSiLU[*cpu.CPUBackend]().Forward(x).Data()

	assert.Equal(t, float32(0), y[0])
	assert.InDelta(t, 0.7310586, y[1], 1e-6)
	assert.InDelta(t, -0.2689414, y[2], 1e-6)
}

func TestSRMSNorm_NormIsSqrtD(t *testing.T) {
	backend := cpu.New()
	norm := nn.NewSRMSNorm[*cpu.CPUBackend](nn.DefaultNormEpsilon)

	for _, d := range []int{1, 16, 640, 768} {
		x := tensor.Randn[float32](tensor.Shape{3, d}, rand.New(rand.NewSource(int64(d))), backend)
		y := norm.Forward(x)

		require.Equal(t, x.Shape(), y.Shape())
		data := y.Data()
		for r := 0; r < 3; r++ {
			got := l2(data[r*d : (r+1)*d])
			assert.InEpsilon(t, math.Sqrt(float64(d)), got, 1e-4, "d=%d row=%d", d, r)
		}
	}
}

func TestSRMSNorm_KnownValues(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	y := nn.SRMSNormFunc(x, 0).Data()

	// ||x|| = 5, d^-0.5 * 5 = 5/sqrt(2)
	s := math.Sqrt(2) / 5
	assert.InDelta(t, 3*s, y[0], 1e-6)
	assert.InDelta(t, 4*s, y[1], 1e-6)
}

func TestSRMSNorm_ZeroRowStaysZero(t *testing.T) {
	backend := cpu.New()
	x := tensor.Zeros[float32](tensor.Shape{2, 8}, backend)

	y := nn.SRMSNormFunc(x, nn.DefaultNormEpsilon)

	for _, v := range y.Data() {
		assert.Equal(t, float32(0), v)
		assert.False(t, math.IsNaN(float64(v)))
	}
}

func TestSRMSNorm_ScaleInvariant(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float32](tensor.Shape{1, 32}, rand.New(rand.NewSource(9)), backend)

	a := nn.SRMSNormFunc(x, 0).Data()
	b := nn.SRMSNormFunc(x.MulScalar(8), 0).Data()

	assert.InDeltaSlice(t, a, b, 1e-5)
}

func TestPreActFFN(t *testing.T) {
	backend := cpu.New()
	ffn := nn.NewPreActFFN(8, 12, nn.DefaultNormEpsilon, rand.New(rand.NewSource(0)), backend)

	params := ffn.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "wu.weight", params[0].Name())
	assert.Equal(t, "wd.weight", params[1].Name())
	assert.Equal(t, tensor.Shape{12, 8}, params[0].Tensor().Shape())
	assert.Equal(t, tensor.Shape{8, 12}, params[1].Tensor().Shape())
	assert.Equal(t, 2*8*12, nn.CountParameters(params))

	x := tensor.Randn[float32](tensor.Shape{3, 8}, rand.New(rand.NewSource(1)), backend)
	y := ffn.Forward(x)
	assert.Equal(t, tensor.Shape{3, 8}, y.Shape())

	// Input is not mutated and the block is pure.
	before := append([]float32(nil), x.Data()...)
	again := ffn.Forward(x)
	assert.Equal(t, before, x.Data())
	assert.Equal(t, y.Data(), again.Data())
}

func TestPreActFFN_MatchesManualComposition(t *testing.T) {
	backend := cpu.New()
	ffn := nn.NewPreActFFN(4, 6, nn.DefaultNormEpsilon, rand.New(rand.NewSource(5)), backend)
	x := tensor.Randn[float32](tensor.Shape{2, 4}, rand.New(rand.NewSource(6)), backend)

	h := nn.SRMSNormFunc(x.SiLU(), nn.DefaultNormEpsilon)
	h = h.MatMul(ffn.Up.Weight().Tensor().T())
	h = nn.SRMSNormFunc(h.SiLU(), nn.DefaultNormEpsilon)
	want := h.MatMul(ffn.Down.Weight().Tensor().T())

	assert.Equal(t, want.Data(), ffn.Forward(x).Data())
}
