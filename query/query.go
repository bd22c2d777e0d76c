// Package query answers movie set-algebra and costar questions over an index.
// Queries only read the index.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mlwelles/castIndex/index"
	"github.com/mlwelles/castIndex/internal/logging"
	"github.com/mlwelles/castIndex/internal/metrics"
)

// Reader is the read side of the index the engine needs.
type Reader interface {
	MovieActors(movie string) (index.Set, error)
	ActorMovies(actor string) (index.Set, error)
}

// Engine runs queries against a Reader.
type Engine struct {
	r       Reader
	logger  *logging.Logger
	metrics metrics.Collector
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Pass nil to disable logging.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l == nil {
			l = logging.NoopLogger()
		}
		e.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. Pass nil to disable metrics.
func WithMetricsCollector(c metrics.Collector) Option {
	return func(e *Engine) {
		if c == nil {
			c = metrics.Noop{}
		}
		e.metrics = c
	}
}

// New returns an Engine reading from r.
func New(r Reader, optFns ...Option) *Engine {
	e := &Engine{
		r:       r,
		logger:  logging.NoopLogger(),
		metrics: metrics.Noop{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(e)
		}
	}
	return e
}

// ByMovies applies op to the casts of movies a and b. It fails with
// ErrUnknownMovie, and no partial result, if either title is unknown.
func (e *Engine) ByMovies(ctx context.Context, a, b string, op Operator) (index.Set, error) {
	start := time.Now()
	result, err := e.byMovies(a, b, op)
	e.done(ctx, metrics.KindMovies, start, result, err)
	return result, err
}

// Run executes a parsed MovieQuery.
func (e *Engine) Run(ctx context.Context, q MovieQuery) (index.Set, error) {
	return e.ByMovies(ctx, q.A, q.B, q.Operator)
}

// Costars returns every actor sharing at least one movie with actor,
// excluding actor. Unknown actors fail with ErrUnknownActor.
func (e *Engine) Costars(ctx context.Context, actor string) (index.Set, error) {
	start := time.Now()
	result, err := e.costars(actor)
	e.done(ctx, metrics.KindCostars, start, result, err)
	return result, err
}

func (e *Engine) byMovies(a, b string, op Operator) (index.Set, error) {
	castA, err := e.cast(a)
	if err != nil {
		return index.Set{}, err
	}
	castB, err := e.cast(b)
	if err != nil {
		return index.Set{}, err
	}
	return op.Apply(castA, castB), nil
}

func (e *Engine) costars(actor string) (index.Set, error) {
	actor = strings.TrimSpace(actor)
	films, err := e.r.ActorMovies(actor)
	if errors.Is(err, index.ErrNotFound) {
		return index.Set{}, fmt.Errorf("%w: %q", ErrUnknownActor, actor)
	}
	if err != nil {
		return index.Set{}, err
	}

	casts := make([]index.Set, 0, films.Len())
	for movie := range films.All() {
		cast, err := e.cast(movie)
		if err != nil {
			return index.Set{}, err
		}
		casts = append(casts, cast)
	}
	return index.UnionAll(casts...).Without(actor), nil
}

func (e *Engine) cast(movie string) (index.Set, error) {
	cast, err := e.r.MovieActors(movie)
	if errors.Is(err, index.ErrNotFound) {
		return index.Set{}, fmt.Errorf("%w: %q", ErrUnknownMovie, movie)
	}
	return cast, err
}

func (e *Engine) done(ctx context.Context, kind string, start time.Time, result index.Set, err error) {
	e.metrics.RecordQuery(kind, result.Len(), time.Since(start), err)
	e.logger.LogQuery(ctx, kind, result.Len(), err)
}
