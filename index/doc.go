// Package index holds the bidirectional movie/actor index.
//
// The index is one edge set viewed from two directions: every movie maps to
// the actors in its cast and every actor maps to the movies they appear in.
// Both views are owned by Index and only change together, so for any movie m
// and actor a, a is in the cast of m exactly when m is in the filmography of a.
//
// Names are interned into dense uint32 IDs per kind and each side of the
// mapping is a Roaring bitmap of counterpart IDs, which makes the set algebra
// used by queries (union, intersection, symmetric difference) bitmap
// operations.
//
// Index is not safe for concurrent use.
package index
