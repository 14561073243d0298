package qsim

// Option configures a Circuit at construction time.
type Option func(*Circuit)

// WithStrictUnitarity makes Execute validate every distinct gate matrix
// against M·M† ≈ I before any amplitude is touched. Off by default since the
// built-in gates are unitary by construction.
func WithStrictUnitarity() Option {
	return func(c *Circuit) {
		c.strictUnitary = true
	}
}

// WithMaxQubits lowers the capacity ceiling enforced when Execute allocates
// the state. Values above MaxQubits are clamped.
func WithMaxQubits(n int) Option {
	return func(c *Circuit) {
		c.maxQubits = n
	}
}
