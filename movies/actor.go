package movies

// Actor is a performer node. Films is read through the reverse of Film's
// starring edge.
type Actor struct {
	UID   string   `json:"uid,omitempty"`
	DType []string `json:"dgraph.type,omitempty"`
	Name  string   `json:"name,omitempty" dgraph:"index=exact,term,trigram,fulltext upsert"`
	Films []Film   `json:"films,omitempty" dgraph:"predicate=~starring reverse"`
}
