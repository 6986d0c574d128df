// SPDX-License-Identifier: MIT
// context.go — Context and functional options.
//
// Context carries the parameters a pricing call needs beyond its contract
// arguments: simulation count, step count, seed, thread count, the
// antithetic flag, the model selector, and (for SABR) the model's own
// quadruple. It is created once via NewContext, configured with Option
// values applied in order, and passed by reference into every pricing call.
//
// Design goals (mirrors the functional-options-over-globals philosophy used
// throughout this codebase): no global mutable state; defaults are named
// constants; later options override earlier ones; getters on a nil
// receiver return defaults rather than panicking.
package mcoptions

import "github.com/optionlab/mcoptions/rng"

// Model selects the underlying stochastic process for model-dispatched
// pricing calls.
type Model int

const (
	ModelGBM Model = iota
	ModelHeston
	ModelSABR
)

// Defaults, single source of truth for Context zero-value behavior.
const (
	DefaultSimulations = 100000
	DefaultSteps        = 252
	DefaultSeed         = uint64(0xDEADBEEF)
	DefaultThreads      = 1
	DefaultAntithetic   = false
	DefaultModel        = ModelGBM
)

// SABRParams holds the SABR model quadruple (alpha, beta, rho, nu).
type SABRParams struct {
	Alpha float64
	Beta  float64
	Rho   float64
	Nu    float64
}

// Context is the parameter carrier consumed by every pricing call. The zero
// Context is not usable directly; obtain one via NewContext.
type Context struct {
	simulations int
	steps       int
	seed        uint64
	threads     int
	antithetic  bool
	model       Model
	sabr        SABRParams
	allocator   Allocator

	masterRNG *rng.State
	lastErr   error
}

// Option mutates a Context during construction. Option constructors never
// panic; out-of-range values are clamped or ignored per the field's
// documented policy, matching the original design's setter semantics.
type Option func(c *Context)

// NewContext returns a Context initialized with documented defaults, then
// applies each Option in order.
func NewContext(opts ...Option) *Context {
	c := &Context{
		simulations: DefaultSimulations,
		steps:       DefaultSteps,
		seed:        DefaultSeed,
		threads:     DefaultThreads,
		antithetic:  DefaultAntithetic,
		model:       DefaultModel,
		allocator:   DefaultAllocator,
	}
	c.masterRNG = rng.NewState(c.seed)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithSimulations sets the simulation count. Values below 1 are clamped to 1.
func WithSimulations(n int) Option {
	return func(c *Context) {
		if n < 1 {
			n = 1
		}
		c.simulations = n
	}
}

// WithSteps sets the step count. Values below 1 are clamped to 1.
func WithSteps(n int) Option {
	return func(c *Context) {
		if n < 1 {
			n = 1
		}
		c.steps = n
	}
}

// WithSeed sets the master seed and re-seeds the master PRNG, matching the
// original setter's "seed changes re-seed the master PRNG" invariant.
func WithSeed(seed uint64) Option {
	return func(c *Context) {
		c.seed = seed
		c.masterRNG = rng.NewState(seed)
	}
}

// WithThreads sets the worker thread count. Zero is coerced to 1.
func WithThreads(n int) Option {
	return func(c *Context) {
		if n < 1 {
			n = 1
		}
		c.threads = n
	}
}

// WithAntithetic enables or disables antithetic-variate pairing.
func WithAntithetic(enabled bool) Option {
	return func(c *Context) { c.antithetic = enabled }
}

// WithModel sets the model selector for model-dispatched pricing calls.
func WithModel(m Model) Option {
	return func(c *Context) { c.model = m }
}

// WithSABRParams sets the SABR model quadruple.
func WithSABRParams(alpha, beta, rho, nu float64) Option {
	return func(c *Context) {
		c.sabr = SABRParams{Alpha: alpha, Beta: beta, Rho: rho, Nu: nu}
	}
}

// WithAllocator installs a custom scratch-buffer Allocator. A nil allocator
// is a no-op and leaves the current allocator in place.
func WithAllocator(a Allocator) Option {
	return func(c *Context) {
		if a != nil {
			c.allocator = a
		}
	}
}

// Getters. All are no-op-safe on a nil Context, returning the documented
// zero default, mirroring "getters return zero defaults" for a null context.

func (c *Context) Simulations() int {
	if c == nil {
		return DefaultSimulations
	}
	return c.simulations
}

func (c *Context) Steps() int {
	if c == nil {
		return DefaultSteps
	}
	return c.steps
}

func (c *Context) Seed() uint64 {
	if c == nil {
		return DefaultSeed
	}
	return c.seed
}

func (c *Context) Threads() int {
	if c == nil {
		return DefaultThreads
	}
	return c.threads
}

func (c *Context) Antithetic() bool {
	return c != nil && c.antithetic
}

func (c *Context) ModelSelector() Model {
	if c == nil {
		return DefaultModel
	}
	return c.model
}

func (c *Context) SABR() SABRParams {
	if c == nil {
		return SABRParams{}
	}
	return c.sabr
}

func (c *Context) allocatorOrDefault() Allocator {
	if c == nil || c.allocator == nil {
		return DefaultAllocator
	}
	return c.allocator
}

// LastError returns the error recorded by the most recent pricing call that
// failed validation or execution on this Context, or nil.
func (c *Context) LastError() error {
	if c == nil {
		return ErrInvalidArgument
	}
	return c.lastErr
}

func (c *Context) setLastError(err error) {
	if c != nil {
		c.lastErr = err
	}
}

// masterState returns the Context's master PRNG. Callers must not mutate it
// directly; derive thread substreams via rng.Jumped.
func (c *Context) masterState() *rng.State {
	if c == nil || c.masterRNG == nil {
		return rng.NewState(DefaultSeed)
	}
	return c.masterRNG
}

// FellerSatisfied reports whether the Feller condition 2*kappa*theta > sigma^2
// holds for the given Heston parameters. Violating it does not prevent
// pricing under the full-truncation scheme; this is an advisory query.
func (c *Context) FellerSatisfied(kappa, theta, sigma float64) bool {
	return 2*kappa*theta > sigma*sigma
}
