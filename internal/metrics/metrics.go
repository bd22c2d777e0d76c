// Package metrics records operation counts and latencies for the index.
package metrics

import (
	"sync/atomic"
	"time"
)

// Collector receives one call per completed operation.
//
// Implementations must be safe for concurrent use: the metrics endpoint reads
// them while a session is running.
type Collector interface {
	// RecordLoad is called after the index is loaded with the number of edges read.
	RecordLoad(edges int, duration time.Duration, err error)

	// RecordSave is called after the index is written with the number of bytes produced.
	RecordSave(bytes int, duration time.Duration, err error)

	// RecordMerge is called after each movie merge with the number of actors supplied.
	RecordMerge(actors int, duration time.Duration, err error)

	// RecordQuery is called after each query. kind is "movies" or "costars".
	RecordQuery(kind string, results int, duration time.Duration, err error)
}

// Noop is a Collector that discards everything.
type Noop struct{}

func (Noop) RecordLoad(int, time.Duration, error)          {}
func (Noop) RecordSave(int, time.Duration, error)          {}
func (Noop) RecordMerge(int, time.Duration, error)         {}
func (Noop) RecordQuery(string, int, time.Duration, error) {}

// Basic keeps simple in-memory counters.
type Basic struct {
	Loads         atomic.Int64
	LoadErrors    atomic.Int64
	EdgesLoaded   atomic.Int64
	Saves         atomic.Int64
	SaveErrors    atomic.Int64
	BytesSaved    atomic.Int64
	Merges        atomic.Int64
	MergeErrors   atomic.Int64
	Queries       atomic.Int64
	QueryErrors   atomic.Int64
	QueryNanos    atomic.Int64
	CostarQueries atomic.Int64
}

// RecordLoad implements Collector.
func (b *Basic) RecordLoad(edges int, _ time.Duration, err error) {
	b.Loads.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.EdgesLoaded.Add(int64(edges))
}

// RecordSave implements Collector.
func (b *Basic) RecordSave(bytes int, _ time.Duration, err error) {
	b.Saves.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
		return
	}
	b.BytesSaved.Add(int64(bytes))
}

// RecordMerge implements Collector.
func (b *Basic) RecordMerge(_ int, _ time.Duration, err error) {
	b.Merges.Add(1)
	if err != nil {
		b.MergeErrors.Add(1)
	}
}

// RecordQuery implements Collector.
func (b *Basic) RecordQuery(kind string, _ int, duration time.Duration, err error) {
	b.Queries.Add(1)
	b.QueryNanos.Add(duration.Nanoseconds())
	if kind == KindCostars {
		b.CostarQueries.Add(1)
	}
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// Stats is a point-in-time copy of Basic.
type Stats struct {
	Loads, LoadErrors, EdgesLoaded int64
	Saves, SaveErrors, BytesSaved  int64
	Merges, MergeErrors            int64
	Queries, QueryErrors           int64
	CostarQueries                  int64
	QueryAvgNanos                  int64
}

// Stats returns a snapshot of the counters.
func (b *Basic) Stats() Stats {
	s := Stats{
		Loads:         b.Loads.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		EdgesLoaded:   b.EdgesLoaded.Load(),
		Saves:         b.Saves.Load(),
		SaveErrors:    b.SaveErrors.Load(),
		BytesSaved:    b.BytesSaved.Load(),
		Merges:        b.Merges.Load(),
		MergeErrors:   b.MergeErrors.Load(),
		Queries:       b.Queries.Load(),
		QueryErrors:   b.QueryErrors.Load(),
		CostarQueries: b.CostarQueries.Load(),
	}
	if s.Queries > 0 {
		s.QueryAvgNanos = b.QueryNanos.Load() / s.Queries
	}
	return s
}

// Query kinds passed to RecordQuery.
const (
	KindMovies  = "movies"
	KindCostars = "costars"
)

// Multi fans every call out to several collectors.
type Multi []Collector

func (m Multi) RecordLoad(edges int, d time.Duration, err error) {
	for _, c := range m {
		c.RecordLoad(edges, d, err)
	}
}

func (m Multi) RecordSave(bytes int, d time.Duration, err error) {
	for _, c := range m {
		c.RecordSave(bytes, d, err)
	}
}

func (m Multi) RecordMerge(actors int, d time.Duration, err error) {
	for _, c := range m {
		c.RecordMerge(actors, d, err)
	}
}

func (m Multi) RecordQuery(kind string, results int, d time.Duration, err error) {
	for _, c := range m {
		c.RecordQuery(kind, results, d, err)
	}
}
