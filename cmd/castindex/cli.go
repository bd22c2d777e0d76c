package main

import (
	"context"
	"fmt"
	"time"

	"github.com/matthewmcneely/modusgraph"

	"github.com/mlwelles/castIndex/movies"
	"github.com/mlwelles/castIndex/query"
	"github.com/mlwelles/castIndex/session"
)

// CLI is the castindex command tree.
type CLI struct {
	Globals

	Session SessionCmd `cmd:"" default:"withargs" help:"Run the interactive menu (default)."`
	Movies  MoviesCmd  `cmd:"" help:"Combine the casts of two movies with &, | or ^."`
	Costars CostarsCmd `cmd:"" help:"List everyone who shared a movie with an actor."`
	Merge   MergeCmd   `cmd:"" help:"Add a movie and its actors, then save."`
	Publish PublishCmd `cmd:"" help:"Mirror the index into Dgraph."`
}

// Globals are flags shared by every command.
type Globals struct {
	LogLevel    string `name:"log-level" help:"Log level." default:"warn" enum:"debug,info,warn,error" env:"CASTINDEX_LOG_LEVEL"`
	LogFormat   string `name:"log-format" help:"Log format." default:"text" enum:"text,json" env:"CASTINDEX_LOG_FORMAT"`
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address, e.g. :2112." env:"CASTINDEX_METRICS_ADDR"`

	S3Endpoint  string `name:"s3-endpoint" help:"S3-compatible endpoint for s3:// locations." env:"CASTINDEX_S3_ENDPOINT"`
	S3AccessKey string `name:"s3-access-key" help:"S3 access key." env:"CASTINDEX_S3_ACCESS_KEY"`
	S3SecretKey string `name:"s3-secret-key" help:"S3 secret key." env:"CASTINDEX_S3_SECRET_KEY"`
	S3Secure    bool   `name:"s3-secure" help:"Use TLS for S3." default:"true" negatable:"" env:"CASTINDEX_S3_SECURE"`

	NoColor bool `name:"no-color" help:"Disable colored output." env:"CASTINDEX_NO_COLOR"`
}

type SessionCmd struct {
	Input  string `arg:"" help:"Cast file to load (path, file://, s3://)."`
	Output string `arg:"" help:"Where Save and Exit writes the index."`
}

func (c *SessionCmd) Run(ctx context.Context, a *app) error {
	fmt.Fprint(a.stdout, "Starting pre processing... ")
	ix, err := a.load(ctx, c.Input)
	if err != nil {
		fmt.Fprintln(a.stdout)
		return err
	}
	fmt.Fprintln(a.stdout, "Done")

	s := session.New(ix, a.persister, c.Output, a.stdin, a.stdout,
		session.WithLogger(a.logger),
		session.WithMetricsCollector(a.metrics),
	)
	return s.Run(ctx)
}

type MoviesCmd struct {
	Input    string `arg:"" help:"Cast file to load."`
	A        string `arg:"" name:"movie-a" help:"First movie title."`
	B        string `arg:"" name:"movie-b" help:"Second movie title."`
	Operator string `arg:"" name:"op" help:"& (both), | (either) or ^ (exactly one)."`
}

func (c *MoviesCmd) Run(ctx context.Context, a *app) error {
	op, err := query.ParseOperator(c.Operator)
	if err != nil {
		return err
	}
	ix, err := a.load(ctx, c.Input)
	if err != nil {
		return err
	}
	result, err := a.engine(ix).ByMovies(ctx, c.A, c.B, op)
	if err != nil {
		return err
	}
	session.Render(a.stdout, result)
	return nil
}

type CostarsCmd struct {
	Input string `arg:"" help:"Cast file to load."`
	Actor string `arg:"" help:"Actor name."`
}

func (c *CostarsCmd) Run(ctx context.Context, a *app) error {
	ix, err := a.load(ctx, c.Input)
	if err != nil {
		return err
	}
	result, err := a.engine(ix).Costars(ctx, c.Actor)
	if err != nil {
		return err
	}
	session.Render(a.stdout, result)
	return nil
}

type MergeCmd struct {
	Input  string   `arg:"" help:"Cast file to load."`
	Output string   `arg:"" help:"Where to write the merged index."`
	Title  string   `arg:"" help:"Movie title."`
	Actors []string `arg:"" optional:"" help:"Actors to add to the movie."`
}

func (c *MergeCmd) Run(ctx context.Context, a *app) error {
	ix, err := a.load(ctx, c.Input)
	if err != nil {
		return err
	}
	start := time.Now()
	err = ix.MergeMovie(c.Title, c.Actors)
	a.metrics.RecordMerge(len(c.Actors), time.Since(start), err)
	a.logger.LogMerge(ctx, c.Title, len(c.Actors), err)
	if err != nil {
		return err
	}
	return a.save(ctx, c.Output, ix)
}

type PublishCmd struct {
	Input      string `arg:"" help:"Cast file to load."`
	DgraphURI  string `name:"dgraph-uri" help:"Dgraph connection, e.g. dgraph://localhost:9080 or file:///tmp/castindex." required:"" env:"CASTINDEX_DGRAPH_URI"`
	AutoSchema bool   `name:"auto-schema" help:"Create the schema from the node types." default:"true" negatable:""`
}

func (c *PublishCmd) Run(ctx context.Context, a *app) error {
	ix, err := a.load(ctx, c.Input)
	if err != nil {
		return err
	}
	client, err := movies.New(c.DgraphURI, modusgraph.WithAutoSchema(c.AutoSchema))
	if err != nil {
		return err
	}
	defer client.Close()

	stats, err := client.Publish(ctx, ix)
	if err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "index published",
		"uri", c.DgraphURI,
		"actors", stats.Actors,
		"films", stats.Films,
		"edges", stats.Edges,
	)
	fmt.Fprintf(a.stdout, "Published %d actors, %d films, %d edges\n", stats.Actors, stats.Films, stats.Edges)
	return nil
}
