// Package parallel splits index ranges across goroutines for the CPU backend.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Workers  int // Upper bound on goroutines; <= 1 runs inline.
	MinChunk int // Smallest range handed to one goroutine.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		MinChunk: 8,
	}
}

// Serial returns a Config that always runs inline.
func Serial() Config {
	return Config{Workers: 1, MinChunk: 1}
}

// Chunks returns the half-open ranges [lo, hi) that For would dispatch for n items.
func (c Config) Chunks(n int) [][2]int {
	if n <= 0 {
		return nil
	}
	size := n
	if c.Workers > 1 {
		size = max((n+c.Workers-1)/c.Workers, c.MinChunk, 1)
	}

	chunks := make([][2]int, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		chunks = append(chunks, [2]int{lo, min(lo+size, n)})
	}
	return chunks
}

// For calls fn on disjoint ranges covering [0, n) and waits for all of them.
// Ranges never overlap, so fn may write to per-index output without locking.
func For(n int, cfg Config, fn func(lo, hi int)) {
	chunks := cfg.Chunks(n)
	if len(chunks) <= 1 {
		if n > 0 {
			fn(0, n)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for _, ch := range chunks {
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(ch[0], ch[1])
	}
	wg.Wait()
}
