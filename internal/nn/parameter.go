package nn

import (
	"github.com/starlight-ml/starlight/internal/tensor"
)

// Parameter is a named weight tensor owned by a module.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
type Parameter[B tensor.Backend] struct {
	name   string                     // e.g. "weight", "ffns.3.wu.weight"
	tensor *tensor.Tensor[float32, B] // the parameter values
}

// NewParameter creates a new parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// NumElements returns the number of scalars in the parameter.
func (p *Parameter[B]) NumElements() int {
	return p.tensor.NumElements()
}

// Prefixed returns a parameter sharing p's tensor under prefix + "." + name.
func (p *Parameter[B]) Prefixed(prefix string) *Parameter[B] {
	return NewParameter(prefix+"."+p.name, p.tensor)
}

// CountParameters sums the element counts of params.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	total := 0
	for _, p := range params {
		total += p.NumElements()
	}
	return total
}
