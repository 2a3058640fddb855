// Copyright 2026 Starlight Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
//
// Matrix multiplication splits output columns across goroutines; every
// kernel uses a fixed accumulation order, so results do not depend on the
// worker count.
//
// Example:
//
//	backend := cpu.New(cpu.WithWorkers(4))
//	m := starlight.NewWithBackend(starlight.DefaultConfig(), backend)
package cpu

import (
	internalcpu "github.com/starlight-ml/starlight/internal/backend/cpu"
	"github.com/starlight-ml/starlight/internal/parallel"
	"github.com/starlight-ml/starlight/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Option configures a Backend.
type Option = internalcpu.Option

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend using one worker per CPU unless configured
// otherwise.
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// WithWorkers sets the number of matmul goroutines. n <= 1 runs serially.
func WithWorkers(n int) Option {
	cfg := parallel.DefaultConfig()
	cfg.Workers = n
	if n <= 1 {
		cfg = parallel.Serial()
	}
	return internalcpu.WithParallel(cfg)
}
