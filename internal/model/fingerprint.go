package model

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/starlight-ml/starlight/internal/tensor"
)

// Fingerprint hashes every parameter name and its raw bytes, in parameter
// order. Two models with equal fingerprints hold the same weights.
func (m *Starlight[B]) Fingerprint() uint64 {
	h := xxhash.New()
	for _, p := range m.Parameters() {
		_, _ = h.WriteString(p.Name())
		_, _ = h.Write([]byte{0})
		_, _ = h.Write(p.Tensor().Raw().Bytes())
	}
	return h.Sum64()
}

// Digest hashes the raw bytes of t. Bit-identical tensors have equal digests.
func Digest[T tensor.DType, B tensor.Backend](t *tensor.Tensor[T, B]) uint64 {
	return xxhash.Sum64(t.Raw().Bytes())
}

// FormatHash renders a fingerprint or digest as 16 hex digits.
func FormatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}
