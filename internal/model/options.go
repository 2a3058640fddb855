package model

// ProgressFunc is called after each feed-forward block is initialized.
type ProgressFunc func(done, total int)

type options struct {
	seed     int64
	progress ProgressFunc
}

// Option configures model construction.
type Option func(*options)

// WithSeed sets the seed for weight initialization. Models built from the
// same Config and seed have identical weights. The default seed is 0.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithProgress installs a callback reporting block construction.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}
