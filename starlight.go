// Copyright 2026 Starlight Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package starlight is a pre-activation residual MLP that maps a fixed-length
// sequence of game-state tokens to a vector of move scores.
//
// Example:
//
//	m := starlight.New(starlight.DefaultConfig(), starlight.WithSeed(7))
//	scores, err := m.Score([][]int32{tokens})
package starlight

import (
	"github.com/starlight-ml/starlight/backend/cpu"
	"github.com/starlight-ml/starlight/internal/model"
	"github.com/starlight-ml/starlight/tensor"
)

// Config holds the model hyperparameters.
type Config = model.Config

// Option configures model construction.
type Option = model.Option

// Result is the output of Model.Run.
type Result = model.Result

// Model is a Starlight network on backend B.
type Model[B tensor.Backend] = model.Starlight[B]

// Errors returned by Forward, Run and Score.
var (
	ErrInputShape     = model.ErrInputShape
	ErrSequenceLength = model.ErrSequenceLength
	ErrTokenRange     = model.ErrTokenRange
)

// DefaultConfig returns the reference configuration (95,124,400 parameters).
func DefaultConfig() Config {
	return model.DefaultConfig()
}

// LoadConfig reads a YAML configuration, keeping defaults for missing keys.
func LoadConfig(path string) (Config, error) {
	return model.LoadConfig(path)
}

// WithSeed sets the weight initialization seed.
func WithSeed(seed int64) Option {
	return model.WithSeed(seed)
}

// WithProgress reports block construction progress.
func WithProgress(fn func(done, total int)) Option {
	return model.WithProgress(fn)
}

// New builds a model on a default CPU backend.
func New(cfg Config, opts ...Option) *Model[*cpu.Backend] {
	return model.New(cfg, cpu.New(), opts...)
}

// NewWithBackend builds a model on the given backend.
func NewWithBackend[B tensor.Backend](cfg Config, backend B, opts ...Option) *Model[B] {
	return model.New(cfg, backend, opts...)
}

// FormatHash renders a fingerprint or digest as 16 hex digits.
func FormatHash(h uint64) string {
	return model.FormatHash(h)
}
