package qbench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Artifact is the opaque compiled form of a circuit produced by a Backend.
// Only the Backend that produced it can execute it.
type Artifact interface{}

// Backend is an external compiler/simulator.
// Both methods block until the backend answers or ctx is done.
type Backend interface {
	Name() string
	Compile(ctx context.Context, c *Circuit, optLevel int) (Artifact, error)
	Execute(ctx context.Context, a Artifact) ([]complex128, error)
}

// Path tells which backend produced a compiled artifact.
type Path uint8

const (
	PathPreferred Path = iota + 1
	PathFallback
)

func (p Path) String() string {
	switch p {
	case PathPreferred:
		return "preferred"
	case PathFallback:
		return "fallback"
	}
	return "unknown"
}

// Compiled is a cache entry: the artifact tagged with the path that produced it.
type Compiled struct {
	Path     Path
	Artifact Artifact
}

type cacheKey struct {
	params   Params
	optLevel int
}

// Orchestrator compiles circuits on a preferred backend, falls back to a generic backend when the
// preferred one fails, and memoizes compiled artifacts per (params, optimization level).
// Entries are never evicted. An Orchestrator is safe for concurrent use; concurrent Compile calls
// for the same key share a single compilation.
type Orchestrator struct {
	preferred Backend
	fallback  Backend

	mu      sync.RWMutex
	entries map[cacheKey]Compiled
	flight  singleflight.Group

	log     zerolog.Logger
	metrics *Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = l.With().Str("component", "orchestrator").Logger() }
}

// WithMetrics sets the collectors the orchestrator updates.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// NewOrchestrator returns an orchestrator with an empty cache.
// preferred may be nil, in which case every circuit takes the fallback path. fallback must not be nil.
func NewOrchestrator(preferred, fallback Backend, opts ...Option) *Orchestrator {
	if fallback == nil {
		panic("qbench: NewOrchestrator needs a fallback backend")
	}
	o := &Orchestrator{
		preferred: preferred,
		fallback:  fallback,
		entries:   make(map[cacheKey]Compiled),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}
	return o
}

// Compile builds the circuit for params, compiles it and stores the result under
// (params, optLevel), replacing any earlier entry. A failing preferred backend is not an error:
// the generic backend is used instead. Only build errors and fallback failures are returned.
func (o *Orchestrator) Compile(ctx context.Context, params Params, optLevel int) error {
	key := cacheKey{params: params, optLevel: optLevel}
	_, err, shared := o.flight.Do(flightKey(key), func() (interface{}, error) {
		c, err := build(params)
		if err != nil {
			return nil, err
		}
		compiled, err := o.compile(ctx, c, optLevel)
		if err != nil {
			return nil, fmt.Errorf("compile %v: %w", params, err)
		}
		o.mu.Lock()
		o.entries[key] = compiled
		o.mu.Unlock()
		o.log.Debug().
			Str("params", params.String()).
			Int("opt_level", optLevel).
			Stringer("path", compiled.Path).
			Msg("compiled circuit cached")
		return compiled, nil
	})
	if shared {
		o.log.Debug().Str("params", params.String()).Msg("joined in-flight compilation")
	}
	return err
}

// Lookup returns the cached compilation for (params, optLevel).
func (o *Orchestrator) Lookup(params Params, optLevel int) (Compiled, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	c, ok := o.entries[cacheKey{params: params, optLevel: optLevel}]
	return c, ok
}

// Len returns the number of cached compilations.
func (o *Orchestrator) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.entries)
}

// Run returns the state vector for params. On a cache hit only the cached artifact is executed.
// On a miss the circuit is built, compiled and executed from scratch via Simulate; the result of
// that path is not cached.
func (o *Orchestrator) Run(ctx context.Context, params Params, optLevel int) ([]complex128, error) {
	compiled, ok := o.Lookup(params, optLevel)
	if !ok {
		o.metrics.CacheLookups.WithLabelValues("miss").Inc()
		o.log.Debug().
			Str("params", params.String()).
			Int("opt_level", optLevel).
			Msg("no cached compilation, rebuilding")
		return o.Simulate(ctx, params, optLevel)
	}
	o.metrics.CacheLookups.WithLabelValues("hit").Inc()
	amps, err := o.backendFor(compiled.Path).Execute(ctx, compiled.Artifact)
	if err != nil {
		return nil, fmt.Errorf("execute cached %v on %s path: %w", params, compiled.Path, err)
	}
	o.metrics.Executions.WithLabelValues(compiled.Path.String()).Inc()
	return amps, nil
}

// Simulate builds, compiles and executes params without touching the cache.
// The preferred backend is tried first; if either its compilation or its execution fails, the
// generic backend compiles and executes the circuit instead.
func (o *Orchestrator) Simulate(ctx context.Context, params Params, optLevel int) ([]complex128, error) {
	c, err := build(params)
	if err != nil {
		return nil, err
	}
	if o.preferred != nil {
		a, err := o.preferred.Compile(ctx, c, optLevel)
		if err == nil {
			amps, execErr := o.preferred.Execute(ctx, a)
			if execErr == nil {
				o.metrics.Executions.WithLabelValues(PathPreferred.String()).Inc()
				return amps, nil
			}
			o.preferredFailed("execute", execErr)
		} else {
			o.preferredFailed("compile", err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
	}
	a, err := o.fallback.Compile(ctx, c, optLevel)
	if err != nil {
		return nil, fmt.Errorf("compile %v on %s: %w", params, o.fallback.Name(), err)
	}
	amps, err := o.fallback.Execute(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("execute %v on %s: %w", params, o.fallback.Name(), err)
	}
	o.metrics.Executions.WithLabelValues(PathFallback.String()).Inc()
	return amps, nil
}

// Sample returns the amplitudes at the given basis-state indices, following the cache semantics
// of Run. Indices may repeat; each must lie in [0, 2^n).
func (o *Orchestrator) Sample(ctx context.Context, params Params, optLevel int, indices []int) ([]complex128, error) {
	amps, err := o.Run(ctx, params, optLevel)
	if err != nil {
		return nil, err
	}
	return selectAmplitudes(amps, indices)
}

func selectAmplitudes(amps []complex128, indices []int) ([]complex128, error) {
	out := make([]complex128, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(amps) {
			return nil, fmt.Errorf("%w: amplitude index %d out of range [0,%d)", ErrInvalidArgument, idx, len(amps))
		}
		out[i] = amps[idx]
	}
	return out, nil
}

func (o *Orchestrator) compile(ctx context.Context, c *Circuit, optLevel int) (Compiled, error) {
	if o.preferred != nil {
		start := time.Now()
		a, err := o.preferred.Compile(ctx, c, optLevel)
		if err == nil {
			o.compiled(PathPreferred, start)
			return Compiled{Path: PathPreferred, Artifact: a}, nil
		}
		o.preferredFailed("compile", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Compiled{}, ctxErr
		}
	}
	start := time.Now()
	a, err := o.fallback.Compile(ctx, c, optLevel)
	if err != nil {
		return Compiled{}, fmt.Errorf("%s: %w", o.fallback.Name(), err)
	}
	o.compiled(PathFallback, start)
	return Compiled{Path: PathFallback, Artifact: a}, nil
}

func (o *Orchestrator) compiled(p Path, start time.Time) {
	o.metrics.Compiles.WithLabelValues(p.String()).Inc()
	o.metrics.CompileSeconds.WithLabelValues(p.String()).Observe(time.Since(start).Seconds())
}

func (o *Orchestrator) preferredFailed(stage string, err error) {
	o.metrics.PreferredFailures.WithLabelValues(stage).Inc()
	o.log.Debug().
		Err(err).
		Str("backend", o.preferred.Name()).
		Str("stage", stage).
		Msg("preferred backend failed, using fallback")
}

func (o *Orchestrator) backendFor(p Path) Backend {
	if p == PathPreferred {
		return o.preferred
	}
	return o.fallback
}

func build(params Params) (*Circuit, error) {
	if params == nil {
		return nil, errors.New("qbench: nil params")
	}
	c, err := params.Build()
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("build %v: %w", params, err)
	}
	return c, nil
}

func flightKey(k cacheKey) string {
	return fmt.Sprintf("%T|%v|%d", k.params, k.params, k.optLevel)
}
