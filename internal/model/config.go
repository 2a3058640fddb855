// Package model assembles the Starlight network from nn modules.
package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/starlight-ml/starlight/internal/nn"
)

// Config holds the Starlight hyperparameters.
//
// A model copies its Config at construction; later changes to the caller's
// value have no effect on it.
type Config struct {
	DModel  int     `yaml:"d_model" json:"d_model"`   // residual stream width
	DFF     int     `yaml:"d_ff" json:"d_ff"`         // feed-forward hidden width
	DEmbd   int     `yaml:"d_embd" json:"d_embd"`     // token embedding width
	NSeq    int     `yaml:"n_seq" json:"n_seq"`       // tokens per example
	NLayer  int     `yaml:"n_layer" json:"n_layer"`   // feed-forward blocks
	NVocab  int     `yaml:"n_vocab" json:"n_vocab"`   // embedding table rows
	NOutput int     `yaml:"n_output" json:"n_output"` // scores per example
	NormEps float64 `yaml:"norm_eps" json:"norm_eps"`
}

// DefaultConfig returns the reference Starlight configuration.
func DefaultConfig() Config {
	return Config{
		DModel:  768,
		DFF:     768,
		DEmbd:   16,
		NSeq:    40,
		NLayer:  80,
		NVocab:  91,
		NOutput: 338,
		NormEps: nn.DefaultNormEpsilon,
	}
}

// NumParameters returns the parameter count implied by the configuration:
//
//	NVocab*DEmbd + DEmbd*NSeq*DModel + NLayer*2*DModel*DFF + DModel*NOutput
func (c Config) NumParameters() int {
	return c.NVocab*c.DEmbd +
		c.DEmbd*c.NSeq*c.DModel +
		c.NLayer*2*c.DModel*c.DFF +
		c.DModel*c.NOutput
}

// LoadConfig reads a YAML configuration file. Keys absent from the file
// keep their DefaultConfig values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML onto DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}
