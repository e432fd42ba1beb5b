// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package packrat implements a memoizing recursive descent parser of integer
// arithmetic expressions.
//
// The accepted language is
//
//	Additive  = Multitive [ ( "+" | "-" ) Additive ] .
//	Multitive = Primary [ ( "*" | "/" ) Multitive ] .
//	Primary   = "(" Additive ")" | number .
//	number    = digit { digit } .
//	digit     = "0" … "9" .
//
// Chains of operators of the same precedence associate to the right, "1-2-3"
// is Subtract(Number(1), Subtract(Number(2), Number(3))). There is no white
// space and no unary operator.
//
// Every successful match of a rule is recorded in a table indexed by input
// offset, so no rule body runs twice with success at the same offset. Failed
// matches are not recorded.
package packrat // modernc.org/packrat

import (
	"fmt"
	"io"
	"math"
	"sync"
)

var (
	defaultConfig = mustConfig()

	// Cursor offsets are 32 bit.
	maxInputSize = math.MaxInt32
)

func mustConfig(opts ...ConfigOption) *Config {
	cfg, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Parse parses input using the default configuration. It returns the tree
// and a cursor positioned after the longest prefix matched. Parse does not
// require the whole input to be consumed. On failure the error matches
// ErrNoParse or ErrResources.
func Parse(input string) (Expr, Cursor, error) {
	r, err := defaultConfig.Parse("", []byte(input))
	if err != nil {
		return nil, Cursor{}, err
	}

	return r.Expr, r.End, nil
}

type ConfigOption func(*Config) error

// Config configures parsing.
//
// Config instances can be shared, the instance is never mutated once created
// and configured.
type Config struct {
	budget   int
	cache    Cache
	maxDepth int
	trace    *lockedWriter

	configured bool
	memoize    bool
	requireEOF bool
}

// NewConfig returns a newly created config or an error, if any. The defaults
// are memoization enabled, a budget of 1e7 rule executions, rules nested at
// most 1e5 deep, partial consumption allowed, no cache and no trace.
func NewConfig(opts ...ConfigOption) (*Config, error) {
	r := &Config{
		budget:   parserBudget,
		maxDepth: parserMaxDepth,
		memoize:  true,
	}

	defer func() { r.configured = true }()

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ConfigMemoize configures memoization. Results do not depend on it, only
// the amount of work done does.
func ConfigMemoize(b bool) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return errorf("ConfigMemoize: Config instance already configured")
		}

		cfg.memoize = b
		return nil
	}
}

// ConfigBudget configures the maximum number of rule body executions of one
// parse.
func ConfigBudget(n int) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return errorf("ConfigBudget: Config instance already configured")
		}

		if n <= 0 {
			return errorf("ConfigBudget: invalid budget %v", n)
		}

		cfg.budget = n
		return nil
	}
}

// ConfigMaxDepth configures the maximum nesting of rule executions of one
// parse. Every parenthesis level nests several rules. Exceeding the limit
// fails the parse with ErrResources.
func ConfigMaxDepth(n int) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return errorf("ConfigMaxDepth: Config instance already configured")
		}

		if n <= 0 {
			return errorf("ConfigMaxDepth: invalid depth %v", n)
		}

		cfg.maxDepth = n
		return nil
	}
}

// ConfigRequireEOF configures whether a parse that does not consume the whole
// input fails.
func ConfigRequireEOF(b bool) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return errorf("ConfigRequireEOF: Config instance already configured")
		}

		cfg.requireEOF = b
		return nil
	}
}

// ConfigCache configures a cache of results shared by all parses using the
// Config.
func ConfigCache(c Cache) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return errorf("ConfigCache: Config instance already configured")
		}

		cfg.cache = c
		return nil
	}
}

// ConfigTrace configures a writer receiving a line for every rule accepted,
// rejected or served from the memo table. Lines of concurrent parses are not
// interleaved within a line.
func ConfigTrace(w io.Writer) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return errorf("ConfigTrace: Config instance already configured")
		}

		if w != nil {
			cfg.trace = &lockedWriter{w: w}
		}
		return nil
	}
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *lockedWriter) Write(b []byte) (int, error) {
	w.mu.Lock()

	defer w.mu.Unlock()

	return w.w.Write(b)
}

// Result is the outcome of a successful parse.
type Result struct {
	Expr Expr
	// End is positioned after the longest prefix matched.
	End   Cursor
	Stats Stats
	// Cached is true if the result was served by the configured Cache.
	Cached bool
}

// Parse parses buf and returns a *Result or an error, if any. Inputs longer
// than math.MaxInt32 bytes are rejected with ErrResources. Positions are
// reported as if buf is coming from a file named name. The buffer becomes
// owned by the *Result and must not be modified after calling Parse.
func (cfg *Config) Parse(name string, buf []byte) (*Result, error) {
	if len(buf) > maxInputSize {
		return nil, fmt.Errorf("%s: input of %v bytes exceeds %v: %w", name, h(len(buf)), h(maxInputSize), ErrResources)
	}

	start := NewCursor(name, buf)
	if cfg.cache != nil {
		if e, end, ok := cfg.cache.Get(string(buf)); ok && end <= len(buf) {
			return cfg.result(&Result{Expr: e, End: start.seek(int32(end)), Cached: true})
		}
	}

	var trace io.Writer
	if cfg.trace != nil {
		trace = cfg.trace
	}
	p := newParser(start, cfg.memoize, cfg.budget, cfg.maxDepth, trace)
	e, end, err := p.parse()
	if err != nil {
		return nil, err
	}

	if cfg.cache != nil {
		cfg.cache.Put(string(buf), e, end.Offset())
	}
	return cfg.result(&Result{Expr: e, End: end, Stats: p.stats})
}

func (cfg *Config) result(r *Result) (*Result, error) {
	if cfg.requireEOF && !r.End.EOF() {
		return nil, newSyntaxError(r.End, r.End.Offset())
	}

	return r, nil
}

// Input is a named input of ParseAll.
type Input struct {
	Name string
	Buf  []byte
}

// Outcome is the result of parsing one Input.
type Outcome struct {
	Input  Input
	Result *Result
	Err    error
}

// ParseAll parses inputs concurrently. Outcomes are in the order of inputs.
// The returned error, if any, combines the errors of all failed inputs.
func (cfg *Config) ParseAll(inputs []Input) ([]Outcome, error) {
	r := make([]Outcome, len(inputs))
	p := newParallel()
	for i, v := range inputs {
		i, v := i, v
		p.exec(func() error {
			r[i].Input = v
			r[i].Result, r[i].Err = cfg.Parse(v.Name, v.Buf)
			if r[i].Err != nil {
				return errorf("%s: %v", v.Name, r[i].Err)
			}

			return nil
		})
	}
	return r, p.wait()
}
