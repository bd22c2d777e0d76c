package movies

import "github.com/mlwelles/castIndex/index"

// Graph projects ix into film nodes, ordered by title, each carrying its
// cast ordered by name. No UIDs are assigned.
func Graph(ix *index.Index) []*Film {
	films := make([]*Film, 0, ix.Stats().Movies)
	for title, cast := range ix.Movies() {
		f := &Film{Name: title, Starring: make([]Actor, 0, cast.Len())}
		for _, name := range cast.Names() {
			f.Starring = append(f.Starring, Actor{Name: name})
		}
		films = append(films, f)
	}
	return films
}
