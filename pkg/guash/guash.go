// Package guash is the embedding API for goguash: construct an Engine,
// register host functions, bind host variables, and evaluate guash source
// against it (spec.md §4.6's "init/set_variable/get_variable/register
// function/evaluate" host surface).
package guash

import (
	"github.com/kconner/goguash/internal/interp"
	"github.com/kconner/goguash/internal/namespace"
	"github.com/kconner/goguash/internal/status"
	"github.com/kconner/goguash/internal/value"
)

// Engine is one interpreter instance: a root Namespace plus whatever
// host functions and variables the embedder has registered.
type Engine struct {
	root *namespace.Namespace
}

// Option configures an Engine at construction, grounded on the teacher's
// LexerOption functional-options pattern (internal/lexer.Option).
type Option func(*engineConfig)

type engineConfig struct {
	buckets int
	argv    []string
	env     map[string]string
	version string
}

// WithNamespaceBuckets overrides the default bucket count (32, spec.md
// §4.2) used by every Namespace frame the Engine creates.
func WithNamespaceBuckets(n int) Option {
	return func(c *engineConfig) { c.buckets = n }
}

// WithArgv binds argv as a 0-indexed Array of Strings at root scope under
// the name "argv" (SPEC_FULL.md §7's supplemented `init` convention,
// grounded on guash's C `main(argc, argv)` entry point).
func WithArgv(argv []string) Option {
	return func(c *engineConfig) { c.argv = argv }
}

// WithEnv binds each entry as an individual Namespace variable at root
// scope under its own name (SPEC_FULL.md §7).
func WithEnv(env map[string]string) Option {
	return func(c *engineConfig) { c.env = env }
}

// WithVersion binds a `VERSION` String variable at root scope
// (SPEC_FULL.md §7's interpreter-identification convention).
func WithVersion(v string) Option {
	return func(c *engineConfig) { c.version = v }
}

// New constructs an Engine and performs spec.md §4.6's `init` binding step.
func New(opts ...Option) *Engine {
	cfg := engineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	root := namespace.New(cfg.buckets)
	e := &Engine{root: root}

	if cfg.argv != nil {
		arr := value.NewArray()
		for i, a := range cfg.argv {
			s := value.NewString(a)
			s.SetStored(true)
			_ = arr.Set(value.NewInteger(int64(i)), s)
		}
		arr.SetStored(true)
		root.Set("argv", arr, namespace.ScopeLocal)
	}
	for k, v := range cfg.env {
		s := value.NewString(v)
		s.SetStored(true)
		root.Set(k, s, namespace.ScopeLocal)
	}
	if cfg.version != "" {
		s := value.NewString(cfg.version)
		s.SetStored(true)
		root.Set("VERSION", s, namespace.ScopeLocal)
	}

	return e
}

// RegisterHostFunction registers a Go-implemented builtin under name at
// root scope (spec.md §4.6).
func (e *Engine) RegisterHostFunction(name string, fn namespace.HostFunc) {
	e.root.DefineFunction(name, namespace.FunctionEntry{Name: name, Host: fn})
}

// SetVariable binds name to v at root scope, taking ownership of v (it is
// marked Stored). Embedders pass freshly constructed Values, not ones still
// referenced elsewhere.
func (e *Engine) SetVariable(name string, v value.Value) {
	v.SetStored(true)
	e.root.Set(name, v, namespace.ScopeGlobal)
}

// GetVariable reads name from root scope, returning an unstored clone (the
// caller owns the returned Value and may Release it).
func (e *Engine) GetVariable(name string) (value.Value, bool) {
	v, ok := e.root.Get(name, namespace.ScopeGlobal)
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// Evaluate runs src as a full program against the Engine's root namespace
// and returns the value of its final expression (spec.md §4.4/§4.6).
// An uncaught Error status surfaces as a non-nil error (a *status.Error
// carrying the machine-readable Status); EXIT ends the program without one.
func (e *Engine) Evaluate(src string) (value.Value, error) {
	v, st, err := interp.Run(src, e.root)
	if err != nil {
		if err.Status == status.EXIT {
			return v, nil
		}
		return nil, err
	}
	_ = st
	return v, nil
}

// Expression evaluates src exactly as Evaluate does (statement sequencing
// included) and returns its value — a convenience entry point for embedders who only
// ever pass one-liners (spec.md §4.6's simpler "evaluate an expression"
// host call, distinct from running a whole program).
func (e *Engine) Expression(src string) (value.Value, error) {
	return e.Evaluate(src)
}

// LastTestError returns the message of the most recent Error downgraded by
// a `test { ... }` block, or "" if none has run yet (SPEC_FULL.md §4's
// resolution of the `test` open question).
func (e *Engine) LastTestError() string {
	return e.root.LastTestError
}
