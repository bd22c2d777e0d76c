// Package persist reads and writes the cast file.
//
// The file holds one actor per line, "actor, movie1, movie2, ...", with actors
// and each actor's movies sorted. Names cannot contain commas; there is no
// escaping.
//
// Files can live on local disk, in memory (tests) or in S3-compatible object
// storage, and are compressed according to their extension (.gz, .zst, .lz4).
package persist
