package model

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/starlight-ml/starlight/internal/nn"
	"github.com/starlight-ml/starlight/internal/tensor"
)

// Starlight is a pre-activation residual MLP over a fixed-length token
// sequence.
//
// Architecture:
//
//	tokens [B, NSeq]
//	  -> wte            [B, NSeq, DEmbd]
//	  -> flatten        [B, NSeq*DEmbd]
//	  -> norm -> winput -> norm           [B, DModel]
//	  -> h = h + ffn_i(h), i = 0..NLayer-1
//	  -> norm -> woutput                  [B, NOutput]
//
// Weights are not modified after New, so Forward may be called concurrently.
type Starlight[B tensor.Backend] struct {
	cfg     Config
	wte     *nn.Embedding[B]
	winput  *nn.Linear[B]
	ffns    []*nn.PreActFFN[B]
	woutput *nn.Linear[B]
	norm    *nn.SRMSNorm[B] // shared by every model-level normalization
	backend B
}

// New builds a Starlight model with freshly initialized weights.
//
// Weights are drawn from a single seeded source in the order wte, winput,
// ffns.0.wu, ffns.0.wd, ..., woutput.
func New[B tensor.Backend](cfg Config, backend B, opts ...Option) *Starlight[B] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	//nolint:gosec // math/rand is appropriate for weight initialization
	rng := rand.New(rand.NewSource(o.seed))

	m := &Starlight[B]{
		cfg:     cfg,
		wte:     nn.NewEmbedding(cfg.NVocab, cfg.DEmbd, rng, backend),
		winput:  nn.NewLinear(cfg.DEmbd*cfg.NSeq, cfg.DModel, false, rng, backend),
		ffns:    make([]*nn.PreActFFN[B], cfg.NLayer),
		norm:    nn.NewSRMSNorm[B](cfg.NormEps),
		backend: backend,
	}
	for i := range m.ffns {
		m.ffns[i] = nn.NewPreActFFN(cfg.DModel, cfg.DFF, cfg.NormEps, rng, backend)
		if o.progress != nil {
			o.progress(i+1, cfg.NLayer)
		}
	}
	m.woutput = nn.NewLinear(cfg.DModel, cfg.NOutput, false, rng, backend)
	return m
}

// Forward maps a [batch, NSeq] token tensor to [batch, NOutput] scores.
//
// A tensor that is not rank 2 or has an empty batch yields ErrInputShape; a
// last dimension other than NSeq yields ErrSequenceLength. Both are reported
// before any computation. Tokens outside [0, NVocab) panic in the embedding
// lookup.
func (m *Starlight[B]) Forward(tokens *tensor.Tensor[int32, B]) (*tensor.Tensor[float32, B], error) {
	shape := tokens.Shape()
	if len(shape) != 2 || shape[0] < 1 {
		return nil, fmt.Errorf("forward: got shape %v: %w", shape, ErrInputShape)
	}
	if shape[1] != m.cfg.NSeq {
		return nil, fmt.Errorf("forward: got %d tokens, want %d: %w", shape[1], m.cfg.NSeq, ErrSequenceLength)
	}
	batch := shape[0]

	x := m.wte.Forward(tokens).Reshape(batch, m.cfg.NSeq*m.cfg.DEmbd)
	x = m.norm.Forward(x)
	x = m.winput.Forward(x)
	x = m.norm.Forward(x)

	for _, ffn := range m.ffns {
		x = x.Add(ffn.Forward(x))
	}

	x = m.norm.Forward(x)
	return m.woutput.Forward(x), nil
}

// Parameters returns the model's parameters in construction order, named
// wte.weight, winput.weight, ffns.<i>.wu.weight, ffns.<i>.wd.weight and
// woutput.weight.
func (m *Starlight[B]) Parameters() []*nn.Parameter[B] {
	params := make([]*nn.Parameter[B], 0, 3+2*len(m.ffns))
	params = append(params, m.wte.Weight.Prefixed("wte"))
	params = append(params, m.winput.Weight().Prefixed("winput"))
	for i, ffn := range m.ffns {
		prefix := "ffns." + strconv.Itoa(i)
		for _, p := range ffn.Parameters() {
			params = append(params, p.Prefixed(prefix))
		}
	}
	params = append(params, m.woutput.Weight().Prefixed("woutput"))
	return params
}

// NumParameters returns the total number of scalar weights.
func (m *Starlight[B]) NumParameters() int {
	return nn.CountParameters(m.Parameters())
}

// Config returns a copy of the model's configuration.
func (m *Starlight[B]) Config() Config {
	return m.cfg
}

// Backend returns the backend the model computes on.
func (m *Starlight[B]) Backend() B {
	return m.backend
}
