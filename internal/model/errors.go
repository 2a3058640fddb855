package model

import "errors"

var (
	// ErrInputShape is returned when the token tensor is not [batch, seq]
	// with batch >= 1.
	ErrInputShape = errors.New("input must be a non-empty [batch, seq] token tensor")

	// ErrSequenceLength is returned when the token tensor's last dimension
	// differs from Config.NSeq.
	ErrSequenceLength = errors.New("sequence length mismatch")

	// ErrTokenRange is returned by Score when a token falls outside
	// [0, Config.NVocab).
	ErrTokenRange = errors.New("token out of vocabulary range")
)
