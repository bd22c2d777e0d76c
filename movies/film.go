package movies

type Film struct {
	UID      string   `json:"uid,omitempty"`
	DType    []string `json:"dgraph.type,omitempty"`
	Name     string   `json:"name,omitempty" dgraph:"index=exact,term,trigram,fulltext upsert"`
	Starring []Actor  `json:"starring,omitempty" dgraph:"predicate=starring reverse count"`
}
