package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mlwelles/castIndex/index"
	"github.com/mlwelles/castIndex/internal/logging"
	"github.com/mlwelles/castIndex/internal/metrics"
	"github.com/mlwelles/castIndex/persist"
	"github.com/mlwelles/castIndex/query"
)

// app holds what every command needs once global flags are resolved.
type app struct {
	logger    *logging.Logger
	basic     *metrics.Basic
	prom      *metrics.Prometheus
	metrics   metrics.Collector
	persister *persist.Persister

	metricsAddr string
	sessionID   string

	stdin  io.Reader
	stdout io.Writer
}

func newApp(g Globals, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	logger, err := logging.New(stderr, g.LogFormat, g.LogLevel)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	logger = logger.WithSession(id)

	if g.NoColor {
		color.NoColor = true
	}

	a := &app{
		logger:      logger,
		basic:       &metrics.Basic{},
		metricsAddr: g.MetricsAddr,
		sessionID:   id,
		stdin:       stdin,
		stdout:      stdout,
	}
	collectors := metrics.Multi{a.basic}
	if g.MetricsAddr != "" {
		a.prom = metrics.NewPrometheus()
		collectors = append(collectors, a.prom)
	}
	a.metrics = collectors

	opts := []persist.Option{persist.WithLogger(logger)}
	if g.S3Endpoint != "" {
		client, err := persist.NewMinioClient(g.S3Endpoint, g.S3AccessKey, g.S3SecretKey, g.S3Secure)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		opts = append(opts, persist.WithS3(client))
	}
	a.persister = persist.NewPersister(opts...)
	return a, nil
}

// serve runs fn, alongside a metrics endpoint when one is configured. The
// listener is bound before fn starts, so a bad address fails the command
// immediately. fn receives a context that is canceled if the endpoint stops
// serving; the endpoint is shut down once fn returns.
func (a *app) serve(ctx context.Context, fn func(context.Context) error) error {
	defer a.summary(ctx)
	if a.prom == nil {
		return fn(ctx)
	}

	ln, err := net.Listen("tcp", a.metricsAddr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.prom.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.InfoContext(gctx, "serving metrics", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := fn(gctx)
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
			err = serr
		}
		return err
	})
	return g.Wait()
}

func (a *app) summary(ctx context.Context) {
	s := a.basic.Stats()
	a.logger.DebugContext(ctx, "session finished",
		"queries", s.Queries,
		"query_errors", s.QueryErrors,
		"merges", s.Merges,
		"saves", s.Saves,
		"query_avg", time.Duration(s.QueryAvgNanos),
	)
}

// load reads location into a new index.
func (a *app) load(ctx context.Context, location string) (*index.Index, error) {
	start := time.Now()
	records, err := a.persister.Load(ctx, location)
	ix := index.New()
	edges := 0
	if err == nil {
		edges = ix.LoadFrom(records)
	}
	d := time.Since(start)
	a.metrics.RecordLoad(edges, d, err)
	a.logger.LogLoad(ctx, location, edges, d, err)
	if err != nil {
		return nil, err
	}
	return ix, nil
}

// save writes ix to location.
func (a *app) save(ctx context.Context, location string, ix *index.Index) error {
	start := time.Now()
	n, err := a.persister.Save(ctx, location, ix)
	d := time.Since(start)
	a.metrics.RecordSave(n, d, err)
	a.logger.LogSave(ctx, location, n, d, err)
	return err
}

func (a *app) engine(ix *index.Index) *query.Engine {
	return query.New(ix,
		query.WithLogger(a.logger),
		query.WithMetricsCollector(a.metrics),
	)
}
