package movies

import (
	"context"
	"errors"
	"fmt"

	"github.com/matthewmcneely/modusgraph"

	"github.com/mlwelles/castIndex/index"
)

// Client mirrors a cast index into Dgraph.
type Client struct {
	conn modusgraph.Client
}

// PublishStats counts what a Publish wrote.
type PublishStats struct {
	Actors int
	Films  int
	Edges  int
}

var errNoUID = errors.New("upsert returned no uid")

// New connects to the Dgraph instance at uri, e.g. "dgraph://localhost:9080"
// or "file:///tmp/castindex" for an embedded engine.
func New(uri string, opts ...modusgraph.ClientOpt) (*Client, error) {
	conn, err := modusgraph.NewClient(uri, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", uri, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() {
	c.conn.Close()
}

// QueryRaw runs a DQL query and returns the JSON response.
func (c *Client) QueryRaw(ctx context.Context, query string, vars map[string]string) ([]byte, error) {
	return c.conn.QueryRaw(ctx, query, vars)
}

// Publish upserts every actor in ix once by name, then upserts every film
// with its cast linked by UID. Publishing the same index twice leaves the
// graph unchanged.
func (c *Client) Publish(ctx context.Context, ix *index.Index) (PublishStats, error) {
	var stats PublishStats

	uids := make(map[string]string, ix.Stats().Actors)
	for name := range ix.Actors() {
		a := &Actor{Name: name}
		if err := c.conn.Upsert(ctx, a, "name"); err != nil {
			return stats, fmt.Errorf("upsert actor %q: %w", name, err)
		}
		if a.UID == "" {
			return stats, fmt.Errorf("upsert actor %q: %w", name, errNoUID)
		}
		uids[name] = a.UID
		stats.Actors++
	}

	for _, f := range Graph(ix) {
		for i := range f.Starring {
			f.Starring[i].UID = uids[f.Starring[i].Name]
		}
		if err := c.conn.Upsert(ctx, f, "name"); err != nil {
			return stats, fmt.Errorf("upsert film %q: %w", f.Name, err)
		}
		stats.Films++
		stats.Edges += len(f.Starring)
	}
	return stats, nil
}
