package model

import (
	"fmt"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// Result is the slice-level output of one forward pass.
type Result struct {
	Shape  tensor.Shape // [batch, NOutput]
	Scores [][]float32  // one row per input row
	Digest uint64       // Digest of the output tensor
}

// CheckTokens validates a batch of token rows without running the model.
func (c Config) CheckTokens(rows [][]int32) error {
	if len(rows) == 0 {
		return fmt.Errorf("empty batch: %w", ErrInputShape)
	}
	for i, row := range rows {
		if len(row) != c.NSeq {
			return fmt.Errorf("row %d has %d tokens, want %d: %w", i, len(row), c.NSeq, ErrSequenceLength)
		}
		for j, tok := range row {
			if tok < 0 || int(tok) >= c.NVocab {
				return fmt.Errorf("row %d position %d: token %d not in [0, %d): %w", i, j, tok, c.NVocab, ErrTokenRange)
			}
		}
	}
	return nil
}

// Run validates rows, packs them into a [len(rows), NSeq] tensor, runs
// Forward and copies the scores out.
func (m *Starlight[B]) Run(rows [][]int32) (*Result, error) {
	if err := m.cfg.CheckTokens(rows); err != nil {
		return nil, err
	}

	flat := make([]int32, 0, len(rows)*m.cfg.NSeq)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	tokens, err := tensor.FromSlice(flat, tensor.Shape{len(rows), m.cfg.NSeq}, m.backend)
	if err != nil {
		return nil, fmt.Errorf("pack tokens: %w", err)
	}

	out, err := m.Forward(tokens)
	if err != nil {
		return nil, err
	}

	data := out.Data()
	n := m.cfg.NOutput
	scores := make([][]float32, len(rows))
	for i := range scores {
		scores[i] = append([]float32(nil), data[i*n:(i+1)*n]...)
	}
	return &Result{
		Shape:  out.Shape().Clone(),
		Scores: scores,
		Digest: Digest(out),
	}, nil
}

// Score is Run without the metadata.
func (m *Starlight[B]) Score(rows [][]int32) ([][]float32, error) {
	res, err := m.Run(rows)
	if err != nil {
		return nil, err
	}
	return res.Scores, nil
}

// Constant returns batch rows of NSeq copies of token, the dummy input the
// CLI feeds the model.
func (c Config) Constant(batch int, token int32) [][]int32 {
	rows := make([][]int32, batch)
	for i := range rows {
		row := make([]int32, c.NSeq)
		for j := range row {
			row[j] = token
		}
		rows[i] = row
	}
	return rows
}
