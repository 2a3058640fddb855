// Package cpu implements tensor.Backend in pure Go.
package cpu

import (
	"fmt"

	"github.com/starlight-ml/starlight/internal/parallel"
	"github.com/starlight-ml/starlight/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// The backend holds no mutable state, so one instance may serve concurrent
// forward passes.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel sets how matmul work is split across goroutines.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.par = cfg
	}
}

// New creates a new CPU backend that uses every available CPU.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Parallel returns the backend's parallel configuration.
func (cpu *CPUBackend) Parallel() parallel.Config {
	return cpu.par
}

func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

var _ tensor.Backend = (*CPUBackend)(nil)
