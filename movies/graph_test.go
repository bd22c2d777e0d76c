package movies

import (
	"slices"
	"testing"

	"github.com/mlwelles/castIndex/index"
	"github.com/mlwelles/castIndex/record"
)

func names(cast []Actor) []string {
	out := make([]string, 0, len(cast))
	for _, a := range cast {
		out = append(out, a.Name)
	}
	return out
}

func TestGraph(t *testing.T) {
	ix := index.New()
	ix.LoadFrom([]record.Record{
		{Actor: "Bob", Movies: []string{"MovieY", "MovieX"}},
		{Actor: "Alice", Movies: []string{"MovieX"}},
	})

	films := Graph(ix)
	if len(films) != 2 {
		t.Fatalf("expected 2 films, got %d", len(films))
	}

	if films[0].Name != "MovieX" || films[1].Name != "MovieY" {
		t.Fatalf("films out of order: %q, %q", films[0].Name, films[1].Name)
	}
	if got := names(films[0].Starring); !slices.Equal(got, []string{"Alice", "Bob"}) {
		t.Errorf("MovieX starring = %v", got)
	}
	if got := names(films[1].Starring); !slices.Equal(got, []string{"Bob"}) {
		t.Errorf("MovieY starring = %v", got)
	}
	for _, f := range films {
		if f.UID != "" {
			t.Errorf("film %q has uid %q before publish", f.Name, f.UID)
		}
	}
}

func TestGraphEdgesMatchIndex(t *testing.T) {
	ix := index.New()
	if err := ix.MergeMovie("Heat", []string{"Al Pacino", "Robert De Niro"}); err != nil {
		t.Fatal(err)
	}
	if err := ix.MergeMovie("Heat", []string{"Val Kilmer"}); err != nil {
		t.Fatal(err)
	}
	if err := ix.MergeMovie("The Godfather", []string{"Al Pacino"}); err != nil {
		t.Fatal(err)
	}

	edges := 0
	for _, f := range Graph(ix) {
		edges += len(f.Starring)
	}
	if want := ix.Stats().Edges; edges != want {
		t.Fatalf("graph has %d edges, index has %d", edges, want)
	}
}

func TestGraphEmpty(t *testing.T) {
	if films := Graph(index.New()); len(films) != 0 {
		t.Fatalf("expected no films, got %d", len(films))
	}
}
