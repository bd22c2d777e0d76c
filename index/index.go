package index

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/mlwelles/castIndex/record"
)

// Index is the bidirectional movie/actor index.
type Index struct {
	movies *dictionary
	actors *dictionary

	// movieToActors and actorToMovies are keyed by interned ID and always
	// describe the same edge set.
	movieToActors map[uint32]*roaring.Bitmap
	actorToMovies map[uint32]*roaring.Bitmap

	edges int
}

// Stats summarizes the size of an Index.
type Stats struct {
	Movies int
	Actors int
	Edges  int
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		movies:        newDictionary(),
		actors:        newDictionary(),
		movieToActors: make(map[uint32]*roaring.Bitmap),
		actorToMovies: make(map[uint32]*roaring.Bitmap),
	}
}

// LoadFrom adds an edge for every (actor, movie) pair in records and returns
// the number of edges that were not already present. Records repeating an
// actor are merged, never overwritten.
func (ix *Index) LoadFrom(records []record.Record) int {
	added := 0
	for _, r := range records {
		actor := strings.TrimSpace(r.Actor)
		if actor == "" {
			continue
		}
		for _, m := range r.Movies {
			m = strings.TrimSpace(m)
			if m == "" {
				continue
			}
			if ix.addEdge(ix.movies.intern(m), ix.actors.intern(actor)) {
				added++
			}
		}
	}
	return added
}

// MovieActors returns the cast of movie, or ErrNotFound.
func (ix *Index) MovieActors(movie string) (Set, error) {
	id, ok := ix.movies.lookup(strings.TrimSpace(movie))
	if !ok {
		return Set{}, ErrNotFound
	}
	return newSet(ix.movieToActors[id].Clone(), ix.actors), nil
}

// ActorMovies returns the movies actor appears in, or ErrNotFound.
func (ix *Index) ActorMovies(actor string) (Set, error) {
	id, ok := ix.actors.lookup(strings.TrimSpace(actor))
	if !ok {
		return Set{}, ErrNotFound
	}
	return newSet(ix.actorToMovies[id].Clone(), ix.movies), nil
}

// HasActor reports whether actor appears in any movie.
func (ix *Index) HasActor(actor string) bool {
	_, ok := ix.actors.lookup(strings.TrimSpace(actor))
	return ok
}

// HasMovie reports whether movie has any actor.
func (ix *Index) HasMovie(movie string) bool {
	_, ok := ix.movies.lookup(strings.TrimSpace(movie))
	return ok
}

// MergeMovie adds an edge between title and every name in actors. An
// existing cast is extended, never replaced. Blank and repeated actor names
// are ignored; if none remain the index is left untouched and
// ErrInsufficientData is returned. Names containing record.Delimiter or a
// line break are rejected with ErrInvalidName.
func (ix *Index) MergeMovie(title string, actors []string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyName
	}
	if err := checkName(title); err != nil {
		return err
	}
	for _, a := range actors {
		if err := checkName(strings.TrimSpace(a)); err != nil {
			return err
		}
	}
	names := normalize(actors)
	if len(names) == 0 {
		return ErrInsufficientData
	}

	// Nothing below can fail, so both mappings always move together.
	mid := ix.movies.intern(title)
	for _, a := range names {
		ix.addEdge(mid, ix.actors.intern(a))
	}
	return nil
}

// Actors yields every actor with their movies, ordered by actor name.
func (ix *Index) Actors() iter.Seq2[string, Set] {
	return ix.walk(ix.actors, ix.actorToMovies, ix.movies)
}

// Movies yields every movie with its cast, ordered by title.
func (ix *Index) Movies() iter.Seq2[string, Set] {
	return ix.walk(ix.movies, ix.movieToActors, ix.actors)
}

// Stats returns the number of movies, actors and edges.
func (ix *Index) Stats() Stats {
	return Stats{
		Movies: ix.movies.len(),
		Actors: ix.actors.len(),
		Edges:  ix.edges,
	}
}

func (ix *Index) addEdge(mid, aid uint32) bool {
	cast, ok := ix.movieToActors[mid]
	if !ok {
		cast = roaring.New()
		ix.movieToActors[mid] = cast
	}
	films, ok := ix.actorToMovies[aid]
	if !ok {
		films = roaring.New()
		ix.actorToMovies[aid] = films
	}
	films.Add(mid)
	if cast.CheckedAdd(aid) {
		ix.edges++
		return true
	}
	return false
}

func (ix *Index) walk(keys *dictionary, m map[uint32]*roaring.Bitmap, values *dictionary) iter.Seq2[string, Set] {
	return func(yield func(string, Set) bool) {
		ids := make([]uint32, 0, keys.len())
		for id := range m {
			ids = append(ids, id)
		}
		slices.SortFunc(ids, func(a, b uint32) int {
			return strings.Compare(keys.name(a), keys.name(b))
		})
		for _, id := range ids {
			if !yield(keys.name(id), newSet(m[id].Clone(), values)) {
				return
			}
		}
	}
}

func checkName(name string) error {
	if strings.Contains(name, record.Delimiter) || strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func normalize(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
