package movies_test

import (
	"context"
	"encoding/json"
	"os"
	"slices"
	"sync"
	"testing"

	"github.com/matthewmcneely/modusgraph"

	"github.com/mlwelles/castIndex/index"
	"github.com/mlwelles/castIndex/movies"
)

// testAddr returns the Dgraph gRPC address or empty if not set.
func testAddr() string {
	return os.Getenv("DGRAPH_TEST_ADDR")
}

// skipIfNoDgraph skips the test if DGRAPH_TEST_ADDR is not set or -short is passed.
func skipIfNoDgraph(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testAddr() == "" {
		t.Skip("Skipping: DGRAPH_TEST_ADDR not set")
	}
}

// newTestClient creates a movies.Client connected to the test Dgraph instance.
func newTestClient(t *testing.T) *movies.Client {
	t.Helper()
	c, err := movies.New("dgraph://"+testAddr(), modusgraph.WithAutoSchema(true))
	if err != nil {
		t.Fatalf("movies.New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

// Names are prefixed so the tests can share a Dgraph instance with other data.
const (
	heat      = "castindex-it Heat"
	godfather = "castindex-it The Godfather"
	topGun    = "castindex-it Top Gun"
	pacino    = "castindex-it Al Pacino"
	deNiro    = "castindex-it Robert De Niro"
	kilmer    = "castindex-it Val Kilmer"
	brando    = "castindex-it Marlon Brando"
	cruise    = "castindex-it Tom Cruise"
)

func testIndex(t *testing.T) *index.Index {
	t.Helper()
	ix := index.New()
	for title, cast := range map[string][]string{
		heat:      {pacino, deNiro, kilmer},
		godfather: {pacino, brando},
		topGun:    {kilmer, cruise},
	} {
		if err := ix.MergeMovie(title, cast); err != nil {
			t.Fatalf("MergeMovie(%q): %v", title, err)
		}
	}
	return ix
}

var (
	seedOnce  sync.Once
	seedErr   error
	seedStats movies.PublishStats
)

// seedData publishes the test index exactly once across all tests.
func seedData(t *testing.T, c *movies.Client) {
	t.Helper()
	seedOnce.Do(func() {
		seedStats, seedErr = c.Publish(context.Background(), testIndex(t))
	})
	if seedErr != nil {
		t.Fatalf("seed data: %v", seedErr)
	}
}

type actorResult struct {
	Q []movies.Actor `json:"q"`
}

type filmResult struct {
	Q []movies.Film `json:"q"`
}

func queryActors(t *testing.T, c *movies.Client, name string) []movies.Actor {
	t.Helper()
	query := `query actors($name: string) {
		q(func: eq(name, $name)) @filter(type(Actor)) {
			uid
			name
			films: ~starring {
				uid
				name
			}
		}
	}`
	resp, err := c.QueryRaw(context.Background(), query, map[string]string{"$name": name})
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	var out actorResult
	if err := json.Unmarshal(resp, &out); err != nil {
		t.Fatalf("decode %s: %v", resp, err)
	}
	return out.Q
}

func filmNames(films []movies.Film) []string {
	names := make([]string, 0, len(films))
	for _, f := range films {
		names = append(names, f.Name)
	}
	slices.Sort(names)
	return names
}

// --- Publish tests ---

func TestPublishStats(t *testing.T) {
	skipIfNoDgraph(t)
	c := newTestClient(t)
	seedData(t, c)

	want := movies.PublishStats{Actors: 5, Films: 3, Edges: 7}
	if seedStats != want {
		t.Fatalf("Publish stats = %+v, want %+v", seedStats, want)
	}
}

func TestPublishIsIdempotent(t *testing.T) {
	skipIfNoDgraph(t)
	c := newTestClient(t)
	seedData(t, c)
	ctx := context.Background()

	if _, err := c.Publish(ctx, testIndex(t)); err != nil {
		t.Fatalf("second Publish: %v", err)
	}

	actors := queryActors(t, c, pacino)
	if len(actors) != 1 {
		t.Fatalf("expected exactly one %q node after republish, got %d", pacino, len(actors))
	}
	if got := filmNames(actors[0].Films); !slices.Equal(got, []string{heat, godfather}) {
		t.Errorf("films of %q = %v", pacino, got)
	}
}

// --- Reverse relationship tests ---

// TestActorReverseEdge verifies that an actor reaches its films through the
// ~starring reverse edge.
func TestActorReverseEdge(t *testing.T) {
	skipIfNoDgraph(t)
	c := newTestClient(t)
	seedData(t, c)

	actors := queryActors(t, c, kilmer)
	if len(actors) == 0 {
		t.Fatalf("expected to find %q", kilmer)
	}
	got := filmNames(actors[0].Films)
	t.Logf("Actor: %s (uid=%s), reverse films: %v", actors[0].Name, actors[0].UID, got)
	if !slices.Equal(got, []string{heat, topGun}) {
		t.Fatalf("films of %q = %v, want [%s %s]", kilmer, got, heat, topGun)
	}
}

// TestFilmStarring verifies the forward edge carries the same cast as the
// index.
func TestFilmStarring(t *testing.T) {
	skipIfNoDgraph(t)
	c := newTestClient(t)
	seedData(t, c)

	query := `query film($name: string) {
		q(func: eq(name, $name)) @filter(type(Film)) {
			uid
			name
			starring {
				uid
				name
			}
		}
	}`
	resp, err := c.QueryRaw(context.Background(), query, map[string]string{"$name": heat})
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	var out filmResult
	if err := json.Unmarshal(resp, &out); err != nil {
		t.Fatalf("decode %s: %v", resp, err)
	}
	if len(out.Q) != 1 {
		t.Fatalf("expected one film %q, got %d", heat, len(out.Q))
	}

	ix := testIndex(t)
	cast, err := ix.MovieActors(heat)
	if err != nil {
		t.Fatalf("MovieActors: %v", err)
	}
	var got []string
	for _, a := range out.Q[0].Starring {
		if a.UID == "" {
			t.Errorf("cast member %q has no uid", a.Name)
		}
		got = append(got, a.Name)
	}
	slices.Sort(got)
	if !slices.Equal(got, cast.Names()) {
		t.Fatalf("starring = %v, want %v", got, cast.Names())
	}
}

// --- Raw DQL query tests ---

// TestQueryRawCostars walks film -> cast -> films in one query, the graph
// equivalent of a costars lookup.
func TestQueryRawCostars(t *testing.T) {
	skipIfNoDgraph(t)
	c := newTestClient(t)
	seedData(t, c)
	ctx := context.Background()

	query := `query costars($name: string) {
		var(func: eq(name, $name)) @filter(type(Actor)) {
			self as uid
			~starring {
				cast as starring
			}
		}
		q(func: uid(cast), orderasc: name) @filter(NOT uid(self)) {
			name
		}
	}`
	resp, err := c.QueryRaw(ctx, query, map[string]string{"$name": pacino})
	if err != nil {
		t.Fatalf("QueryRaw with vars: %v", err)
	}
	var out actorResult
	if err := json.Unmarshal(resp, &out); err != nil {
		t.Fatalf("decode %s: %v", resp, err)
	}

	var got []string
	for _, a := range out.Q {
		got = append(got, a.Name)
	}
	want := []string{brando, kilmer, deNiro}
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("costars of %q = %v, want %v", pacino, got, want)
	}
}

func TestQueryRawEmptyResult(t *testing.T) {
	skipIfNoDgraph(t)
	c := newTestClient(t)
	ctx := context.Background()

	// Query for something that definitely doesn't exist.
	query := `{
		q(func: eq(name, "zzzNonExistentFilm99999")) {
			uid
			name
		}
	}`
	resp, err := c.QueryRaw(ctx, query, nil)
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}

	// Should return valid JSON even with no results.
	if len(resp) == 0 {
		t.Fatal("QueryRaw returned empty response for no-match query")
	}
	var out filmResult
	if err := json.Unmarshal(resp, &out); err != nil {
		t.Fatalf("decode %s: %v", resp, err)
	}
	if len(out.Q) != 0 {
		t.Errorf("expected no results, got %d", len(out.Q))
	}
}
